package models

import "time"

// UserProfile живёт в памяти с момента /start до перезапуска процесса.
type UserProfile struct {
	ChatID       int64
	FirstName    string
	Username     string
	RegisteredAt time.Time
}

// WorkoutStats — накопленная статистика тренировок одного чата.
// Все счётчики монотонные, кроме CurrentStreak (сбрасывается при пропуске).
type WorkoutStats struct {
	ChatID        int64
	WorkoutsDone  int
	TotalHoldTime int // секунды, суммарно по всем подходам
	MaxHoldTime   int // секунды, лучший одиночный вис
	PullupsDone   int
	CurrentStreak int
	LastWorkout   *time.Time
	Achievements  []string // ids в порядке получения, без дублей
}

func (s *WorkoutStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Clone возвращает независимую копию (слайс достижений тоже копируется).
func (s *WorkoutStats) Clone() WorkoutStats {
	out := *s
	if s.LastWorkout != nil {
		t := *s.LastWorkout
		out.LastWorkout = &t
	}
	out.Achievements = append([]string(nil), s.Achievements...)
	return out
}

// Achievement — неизменяемая запись каталога достижений.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
}
