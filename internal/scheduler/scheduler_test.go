package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forearm-bot/internal/logger"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []int64
	err   error
}

func (f *fakeSender) SendReminder(chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, chatID)
	return f.err
}

func (f *fakeSender) sent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakePresence struct {
	registered map[int64]bool
}

func (f *fakePresence) IsRegistered(chatID int64) bool { return f.registered[chatID] }

type fakeSink struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeSink) Log(eventType string, chatID int64, username, message, extra string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
}

func (f *fakeSink) has(eventType string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == eventType {
			return true
		}
	}
	return false
}

func newTestScheduler(t *testing.T, sender *fakeSender, presence *fakePresence, sink *fakeSink) *Scheduler {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	s := New(sender, presence, sink, logger.New("error"), loc,
		[]time.Weekday{time.Monday, time.Wednesday, time.Friday}, 17, 0)
	s.dryFire = true // таймерные горутины в тестах не нужны
	return s
}

func TestScheduleInstallsThreeTriggers(t *testing.T) {
	s := newTestScheduler(t, &fakeSender{}, &fakePresence{registered: map[int64]bool{1: true}}, &fakeSink{})

	s.Schedule(1)

	triggers := s.ActiveTriggers(1)
	require.Len(t, triggers, 3)
	days := []time.Weekday{}
	for _, tr := range triggers {
		assert.Equal(t, ReminderName, tr.Name)
		assert.Equal(t, 17, tr.Hour)
		assert.Equal(t, 0, tr.Minute)
		days = append(days, tr.Weekday)
	}
	assert.ElementsMatch(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, days)
}

func TestScheduleIsIdempotent(t *testing.T) {
	sink := &fakeSink{}
	s := newTestScheduler(t, &fakeSender{}, &fakePresence{registered: map[int64]bool{1: true}}, sink)

	for i := 0; i < 5; i++ {
		s.Schedule(1)
	}

	assert.Len(t, s.ActiveTriggers(1), 3, "повторный /start не должен плодить триггеры")
	assert.True(t, sink.has("SCHEDULE_SET"))
}

func TestScheduleIsPerChat(t *testing.T) {
	s := newTestScheduler(t, &fakeSender{}, &fakePresence{registered: map[int64]bool{}}, &fakeSink{})

	s.Schedule(1)
	s.Schedule(2)

	assert.Len(t, s.ActiveTriggers(1), 3)
	assert.Len(t, s.ActiveTriggers(2), 3)

	s.Unschedule(1)
	assert.Empty(t, s.ActiveTriggers(1))
	assert.Len(t, s.ActiveTriggers(2), 3)
}

func TestFireForAbsentChatRemovesTriggerSilently(t *testing.T) {
	sender := &fakeSender{}
	sink := &fakeSink{}
	s := newTestScheduler(t, sender, &fakePresence{registered: map[int64]bool{}}, sink)

	s.Schedule(42)
	triggers := s.ActiveTriggers(42)
	require.Len(t, triggers, 3)

	keep := s.fire(triggers[0])

	assert.False(t, keep)
	assert.Zero(t, sender.sent(), "отписавшемуся ничего не отправляется")
	assert.Len(t, s.ActiveTriggers(42), 2, "снимается только сработавший триггер")
	assert.False(t, sink.has("REMINDER_SENT"))
}

func TestFireSendsReminder(t *testing.T) {
	sender := &fakeSender{}
	sink := &fakeSink{}
	s := newTestScheduler(t, sender, &fakePresence{registered: map[int64]bool{42: true}}, sink)

	s.Schedule(42)
	keep := s.fire(s.ActiveTriggers(42)[0])

	assert.True(t, keep)
	assert.Equal(t, 1, sender.sent())
	assert.True(t, sink.has("REMINDER_SENT"))
}

func TestFireDeliveryFailureKeepsSchedule(t *testing.T) {
	sender := &fakeSender{err: errors.New("bot was blocked by the user")}
	sink := &fakeSink{}
	s := newTestScheduler(t, sender, &fakePresence{registered: map[int64]bool{42: true}}, sink)

	s.Schedule(42)
	keep := s.fire(s.ActiveTriggers(42)[0])

	assert.True(t, keep, "сбой доставки не снимает расписание")
	assert.Len(t, s.ActiveTriggers(42), 3)
	assert.True(t, sink.has("ERROR"))
	assert.False(t, sink.has("REMINDER_SENT"))
}

func TestUntilNext(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")

	// Понедельник 12:00 → понедельник 17:00 того же дня.
	mondayNoon := time.Date(2025, 6, 2, 12, 0, 0, 0, loc)
	assert.Equal(t, 5*time.Hour, untilNext(mondayNoon, time.Monday, 17, 0))

	// Понедельник 18:00 → следующий понедельник.
	mondayEvening := time.Date(2025, 6, 2, 18, 0, 0, 0, loc)
	assert.Equal(t, 7*24*time.Hour-time.Hour, untilNext(mondayEvening, time.Monday, 17, 0))

	// Ровно момент срабатывания → полная неделя.
	mondayFive := time.Date(2025, 6, 2, 17, 0, 0, 0, loc)
	assert.Equal(t, 7*24*time.Hour, untilNext(mondayFive, time.Monday, 17, 0))

	// Понедельник → среда.
	assert.Equal(t, 2*24*time.Hour+5*time.Hour, untilNext(mondayNoon, time.Wednesday, 17, 0))

	// Пятница → понедельник (через выходные).
	friday := time.Date(2025, 6, 6, 17, 30, 0, 0, loc)
	assert.Equal(t, 2*24*time.Hour+23*time.Hour+30*time.Minute, untilNext(friday, time.Monday, 17, 0))
}
