package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"forearm-bot/internal/config"
	"forearm-bot/internal/content"
	"forearm-bot/internal/logger"
	"forearm-bot/internal/models"
	"forearm-bot/internal/registry"
	"forearm-bot/internal/scheduler"
	"forearm-bot/internal/sheets"
	"forearm-bot/internal/stats"
	"forearm-bot/internal/util"
)

type App struct {
	cfg    config.Config
	bot    *tgbotapi.BotAPI
	log    logger.Logger
	users  *registry.Registry
	engine *stats.Engine
	sched  *scheduler.Scheduler
	events *sheets.EventLog
}

func New(cfg config.Config, log logger.Logger, users *registry.Registry,
	engine *stats.Engine, events *sheets.EventLog) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	b.Debug = false
	return &App{
		cfg:    cfg,
		bot:    b,
		log:    log,
		users:  users,
		engine: engine,
		events: events,
	}, nil
}

// AttachScheduler замыкает цикл зависимостей: планировщику нужен App как
// отправитель, App ставит расписание через планировщик.
func (a *App) AttachScheduler(s *scheduler.Scheduler) {
	a.sched = s
}

func (a *App) Run(ctx context.Context) error {
	a.events.Log("BOT_START", 0, "", "Бот запущен", "")
	a.log.Info("bot is up, polling for updates")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			go a.handleUpdate(upd)
		}
	}
}

// handleUpdate — граница обработки: любая ошибка или паника гасится здесь,
// логируется событием ERROR и превращается в извинение пользователю.
func (a *App) handleUpdate(upd tgbotapi.Update) {
	var chatID int64
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorf("panic in handler: %v", r)
			a.events.Log("ERROR", chatID, "", fmt.Sprintf("panic: %v", r), "")
			if chatID != 0 {
				_ = a.SendText(chatID, "😔 Что-то пошло не так. Попробуй ещё раз.")
			}
		}
	}()

	var err error
	switch {
	case upd.Message != nil:
		chatID = upd.Message.Chat.ID
		err = a.handleMessage(upd.Message)
	case upd.CallbackQuery != nil:
		chatID = upd.CallbackQuery.From.ID
		err = a.handleCallback(upd.CallbackQuery)
	default:
		return
	}

	if err != nil {
		a.log.Errorf("handle update for chat %d: %v", chatID, err)
		a.events.Log("ERROR", chatID, "", err.Error(), "")
		_ = a.SendText(chatID, "😔 Что-то пошло не так. Попробуй ещё раз.")
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

// SendReminder — точка доставки для планировщика.
func (a *App) SendReminder(chatID int64) error {
	text := content.RandomPhrase() + "\n\n" + content.ReminderText
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = workoutMenuKeyboard()
	_, err := a.bot.Send(msg)
	return err
}

// ---------- Сообщения ----------

func (a *App) handleMessage(m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	txt := strings.TrimSpace(m.Text)

	switch {
	case strings.HasPrefix(txt, "/start"):
		return a.cmdStart(m)
	case strings.HasPrefix(txt, "/status"), strings.HasPrefix(txt, "/stats"):
		return a.cmdStatus(m)
	case strings.HasPrefix(txt, "/test"), strings.HasPrefix(txt, "/log"):
		return a.cmdTest(m)
	case strings.HasPrefix(txt, "/workout"):
		return a.cmdWorkout(chatID)
	case strings.HasPrefix(txt, "/fact"):
		return a.SendText(chatID, content.RandomFact())
	case strings.HasPrefix(txt, "/achievements"):
		return a.cmdAchievements(chatID)
	case strings.HasPrefix(txt, "/stop"):
		return a.cmdStop(m)
	case strings.HasPrefix(txt, "/help"):
		return a.SendText(chatID, helpText)
	default:
		return a.SendText(chatID, "Не понимаю 🤷 Список команд: /help")
	}
}

func (a *App) cmdStart(m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	firstName := ""
	username := ""
	if m.From != nil {
		firstName = m.From.FirstName
		if m.From.UserName != "" {
			username = m.From.UserName
		} else {
			username = "NoUsername"
		}
	}

	a.users.Register(chatID, firstName, username)
	a.sched.Schedule(chatID)

	text := fmt.Sprintf("Привет, %s! 👋\n\n"+
		"Я буду напоминать тебе про упражнения для предплечий.\n"+
		"📅 Расписание: %s в %02d:%02d\n"+
		"✅ Ты успешно зарегистрирован!\n\n"+
		"Команды:\n"+
		"/workout — записать тренировку\n"+
		"/status — проверить статус и статистику\n"+
		"/test — получить тестовое напоминание\n"+
		"/fact — факт о предплечьях\n"+
		"/achievements — достижения\n"+
		"/help — справка",
		a.users.DisplayName(chatID), a.scheduleDays(), a.cfg.ReminderHour, a.cfg.ReminderMinute)
	return a.SendText(chatID, text)
}

func (a *App) cmdStatus(m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	a.events.Log("STATUS_CHECK", chatID, userName(m), "", "")

	if !a.users.IsRegistered(chatID) {
		return a.SendText(chatID, "❌ Ты не зарегистрирован. Напиши /start")
	}

	s := a.engine.GetOrCreateStats(chatID)
	text := fmt.Sprintf("✅ Ты в списке! Напоминания придут:\n📅 %s в %02d:%02d\n\n%s",
		a.scheduleDays(), a.cfg.ReminderHour, a.cfg.ReminderMinute, statsBlock(s, len(a.engine.Catalog())))
	return a.SendText(chatID, text)
}

func (a *App) cmdTest(m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	a.events.Log("TEST_REMINDER", chatID, userName(m), "", "")
	return a.SendReminder(chatID)
}

func (a *App) cmdWorkout(chatID int64) error {
	if !a.users.IsRegistered(chatID) {
		return a.SendText(chatID, "Сначала зарегистрируйся: /start")
	}
	msg := tgbotapi.NewMessage(chatID, "💪 Сколько секунд продержался в висе?")
	msg.ReplyMarkup = holdKeyboard()
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) cmdAchievements(chatID int64) error {
	if !a.users.IsRegistered(chatID) {
		return a.SendText(chatID, "Сначала зарегистрируйся: /start")
	}
	s := a.engine.GetOrCreateStats(chatID)

	b := strings.Builder{}
	b.WriteString("🏆 Достижения:\n\n")
	for _, rule := range a.engine.Catalog() {
		mark := "🔒"
		if s.HasAchievement(rule.ID) {
			mark = "✅"
		}
		b.WriteString(fmt.Sprintf("%s %s %s — %s\n", mark, rule.Icon, rule.Title, rule.Description))
	}
	return a.SendText(chatID, b.String())
}

func (a *App) cmdStop(m *tgbotapi.Message) error {
	chatID := m.Chat.ID
	a.sched.Unschedule(chatID)
	a.events.Log("SCHEDULE_REMOVED", chatID, userName(m), "Напоминания отключены", "")
	return a.SendText(chatID, "🔕 Напоминания отключены. Вернуть — /start")
}

// ---------- Кнопки ----------

func (a *App) handleCallback(q *tgbotapi.CallbackQuery) error {
	chatID := q.From.ID

	// ack, чтобы кнопка перестала «крутиться»
	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.bot.Request(cb)

	action, ok := decodeAction(q.Data)
	if !ok {
		a.log.Warnf("unknown callback data from chat %d: %q", chatID, q.Data)
		return a.SendText(chatID, "Эта кнопка устарела. Попробуй /workout")
	}
	return a.dispatch(chatID, action)
}

func (a *App) dispatch(chatID int64, action Action) error {
	switch action.Kind {
	case ActionWorkoutMenu:
		return a.cmdWorkout(chatID)

	case ActionPickHold:
		msg := tgbotapi.NewMessage(chatID,
			fmt.Sprintf("⏱ Вис %d сек. Сколько подтягиваний за подход?", action.Hold))
		msg.ReplyMarkup = repsKeyboard(action.Hold)
		_, err := a.bot.Send(msg)
		return err

	case ActionLogWorkout, ActionQuickLog:
		return a.logWorkout(chatID, action.Hold, action.Reps)

	case ActionShowFact:
		return a.SendText(chatID, content.RandomFact())

	default:
		return a.SendText(chatID, "Эта кнопка устарела. Попробуй /workout")
	}
}

func (a *App) logWorkout(chatID int64, hold, reps int) error {
	if !a.users.IsRegistered(chatID) {
		return a.SendText(chatID, "Сначала зарегистрируйся: /start")
	}

	s, unlocked := a.engine.LogWorkout(chatID, hold, reps)

	b := strings.Builder{}
	b.WriteString(content.RandomComment())
	b.WriteString("\n\n")
	b.WriteString(statsBlock(s, len(a.engine.Catalog())))
	for _, ach := range unlocked {
		b.WriteString(fmt.Sprintf("\n%s Новое достижение: %s!", ach.Icon, ach.Title))
	}
	return a.SendText(chatID, b.String())
}

// ---------- Клавиатуры и тексты ----------

func workoutMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💪 Записать тренировку", "w:menu"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚡ Быстрая запись (25с / 6)", "w:simple"),
		),
	)
}

func holdKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for _, h := range holdChoices {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(h)+" сек", holdData(h)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚡ Быстрая запись (25с / 6)", "w:simple"),
		),
	)
}

func repsKeyboard(hold int) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for _, r := range repsChoices {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(r), setData(hold, r)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func statsBlock(s models.WorkoutStats, catalogSize int) string {
	return fmt.Sprintf("📊 Статистика:\n"+
		"🏋️ %s\n"+
		"⏱ Суммарный вис: %d сек\n"+
		"🏅 Лучший вис: %d сек\n"+
		"💪 Подтягиваний: %d\n"+
		"🔥 Серия: %s\n"+
		"🏆 Достижений: %d из %d",
		util.PluralRU(s.WorkoutsDone, "тренировка", "тренировки", "тренировок"),
		s.TotalHoldTime, s.MaxHoldTime, s.PullupsDone,
		util.PluralRU(s.CurrentStreak, "день", "дня", "дней"),
		len(s.Achievements), catalogSize)
}

var weekdayRU = map[time.Weekday]string{
	time.Monday: "ПН", time.Tuesday: "ВТ", time.Wednesday: "СР",
	time.Thursday: "ЧТ", time.Friday: "ПТ", time.Saturday: "СБ", time.Sunday: "ВС",
}

func (a *App) scheduleDays() string {
	out := []string{}
	for _, d := range a.cfg.ReminderDays {
		out = append(out, weekdayRU[d])
	}
	return strings.Join(out, ", ")
}

func userName(m *tgbotapi.Message) string {
	if m.From == nil {
		return ""
	}
	return m.From.UserName
}

const helpText = `🤖 Forearm Bot — команды:

/start — регистрация и расписание напоминаний
/workout — записать тренировку
/status — статус и статистика
/achievements — достижения
/test — тестовое напоминание
/fact — факт о предплечьях
/stop — отключить напоминания
/help — это сообщение

📅 Напоминания приходят по расписанию: понедельник, среда и пятница.
💪 Тренировка: 3 подхода виса и 3 подхода подтягиваний.`
