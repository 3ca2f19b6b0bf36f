package stats

import (
	"fmt"
	"sync"
	"time"

	"forearm-bot/internal/content"
	"forearm-bot/internal/models"
	"forearm-bot/internal/storage"
)

// Подходов в одной тренировке; вис и подтягивания засчитываются трижды.
const setsPerWorkout = 3

// Разрыв в календарных днях, после которого серия обнуляется.
const maxStreakGapDays = 2

type EventSink interface {
	Log(eventType string, chatID int64, username, message, extra string)
}

// Engine — движок статистики и достижений. Мутации по одному chat id
// сериализуются через именованный мьютекс: параллельная двойная отправка
// «записать тренировку» не должна портить счётчики и дублировать достижения.
type Engine struct {
	store   storage.Store
	catalog []content.Rule
	sink    EventSink
	loc     *time.Location
	now     func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewEngine(store storage.Store, catalog []content.Rule, sink EventSink, loc *time.Location) *Engine {
	return &Engine{
		store:   store,
		catalog: catalog,
		sink:    sink,
		loc:     loc,
		now:     time.Now,
		locks:   map[int64]*sync.Mutex{},
	}
}

func (e *Engine) lockFor(chatID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[chatID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[chatID] = l
	}
	return l
}

// GetOrCreateStats возвращает запись или нулевую заготовку. Не падает.
func (e *Engine) GetOrCreateStats(chatID int64) models.WorkoutStats {
	s, ok := e.store.GetStats(chatID)
	if !ok {
		s = models.WorkoutStats{ChatID: chatID}
	}
	return s
}

// Catalog — каталог достижений в порядке объявления.
func (e *Engine) Catalog() []content.Rule {
	return e.catalog
}

// LogWorkout записывает тренировку и возвращает обновлённую статистику
// вместе со свежеразблокированными достижениями (в порядке каталога).
//
// Серия: сравнивается дата ПРЕДЫДУЩЕЙ тренировки с текущей. Разрыв
// > 2 календарных дней сбрасывает серию на 1, иначе серия растёт — в том
// числе при повторной записи в тот же день (разрыв 0 дней).
func (e *Engine) LogWorkout(chatID int64, holdSeconds, pullupReps int) (models.WorkoutStats, []models.Achievement) {
	if holdSeconds < 0 {
		holdSeconds = 0
	}
	if pullupReps < 0 {
		pullupReps = 0
	}

	l := e.lockFor(chatID)
	l.Lock()
	defer l.Unlock()

	s := e.GetOrCreateStats(chatID)
	now := e.now().In(e.loc)

	s.WorkoutsDone++
	s.TotalHoldTime += holdSeconds * setsPerWorkout
	if holdSeconds > s.MaxHoldTime {
		s.MaxHoldTime = holdSeconds
	}
	s.PullupsDone += pullupReps * setsPerWorkout

	// Важно: до перезаписи LastWorkout, иначе разрыв всегда нулевой.
	prev := s.LastWorkout
	switch {
	case prev == nil:
		s.CurrentStreak = 1
	case dayGap(*prev, now, e.loc) <= maxStreakGapDays:
		s.CurrentStreak++
	default:
		s.CurrentStreak = 1
	}
	s.LastWorkout = &now

	unlocked := []models.Achievement{}
	for _, rule := range e.catalog {
		if s.HasAchievement(rule.ID) {
			continue
		}
		if rule.Unlocked(s) {
			s.Achievements = append(s.Achievements, rule.ID)
			unlocked = append(unlocked, rule.Achievement)
		}
	}

	e.store.UpsertStats(s)

	e.sink.Log("WORKOUT_LOGGED", chatID, "",
		fmt.Sprintf("Вис %d сек, подтягивания %d", holdSeconds, pullupReps),
		fmt.Sprintf("workouts=%d streak=%d", s.WorkoutsDone, s.CurrentStreak))
	for _, a := range unlocked {
		e.sink.Log("ACHIEVEMENT_UNLOCKED", chatID, "", a.Title, a.ID)
	}

	return s, unlocked
}

// dayGap — разница в календарных днях между двумя моментами в заданном
// поясе. Даты сравниваются в UTC, чтобы перевод часов не давал 23-часовых
// «дней».
func dayGap(a, b time.Time, loc *time.Location) int {
	gap := int(calendarDay(b, loc).Sub(calendarDay(a, loc)).Hours() / 24)
	if gap < 0 {
		gap = -gap
	}
	return gap
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
