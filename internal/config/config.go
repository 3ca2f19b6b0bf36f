package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	TelegramToken string

	// Google Sheets — опциональны: без них журнал событий отключается.
	SpreadsheetID            string
	GoogleServiceAccountJSON string

	Timezone       string
	ReminderHour   int
	ReminderMinute int
	ReminderDays   []time.Weekday

	Thresholds Thresholds

	HTTPAddr string
	LogLevel string
}

// Thresholds — пороги достижений, переопределяются через окружение.
type Thresholds struct {
	StreakShort int // streak_3
	StreakLong  int // streak_10
	WorkoutsMid int // workouts_10
	WorkoutsBig int // workouts_50
	HoldSeconds int // hold_60
	Pullups     int // pullup_king
}

func FromEnv() (Config, error) {
	var c Config
	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	c.Timezone = getEnv("TIMEZONE", "Europe/Moscow")
	c.ReminderHour = getEnvInt("REMINDER_HOUR", 17)
	c.ReminderMinute = getEnvInt("REMINDER_MINUTE", 0)

	days, err := parseWeekdays(getEnv("REMINDER_DAYS", "mon,wed,fri"))
	if err != nil {
		return c, err
	}
	c.ReminderDays = days

	c.Thresholds = Thresholds{
		StreakShort: getEnvInt("ACH_STREAK_SHORT", 3),
		StreakLong:  getEnvInt("ACH_STREAK_LONG", 10),
		WorkoutsMid: getEnvInt("ACH_WORKOUTS_MID", 10),
		WorkoutsBig: getEnvInt("ACH_WORKOUTS_BIG", 50),
		HoldSeconds: getEnvInt("ACH_HOLD_SECONDS", 60),
		Pullups:     getEnvInt("ACH_PULLUPS", 100),
	}

	c.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	c.LogLevel = getEnv("LOG_LEVEL", "info")

	if c.TelegramToken == "" {
		return c, fmt.Errorf("TELEGRAM_BOT_TOKEN is empty")
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		return c, fmt.Errorf("REMINDER_HOUR out of range: %d", c.ReminderHour)
	}
	if c.ReminderMinute < 0 || c.ReminderMinute > 59 {
		return c, fmt.Errorf("REMINDER_MINUTE out of range: %d", c.ReminderMinute)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return c, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}

	return c, nil
}

// Location загружает настроенный часовой пояс. FromEnv уже проверил его.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

func parseWeekdays(raw string) ([]time.Weekday, error) {
	out := []time.Weekday{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		d, ok := weekdayNames[p[:min(3, len(p))]]
		if !ok {
			return nil, fmt.Errorf("REMINDER_DAYS: unknown weekday %q", p)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("REMINDER_DAYS is empty")
	}
	return out, nil
}
