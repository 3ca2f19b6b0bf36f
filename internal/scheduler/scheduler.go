package scheduler

import (
	"sync"
	"time"

	"forearm-bot/internal/logger"
)

// ReminderName — стабильное имя триггеров напоминаний: перерегистрация
// находит и снимает старые триггеры по нему, чтобы не дублировать отправку.
const ReminderName = "forearm_reminder"

// Sender доставляет напоминание. Возвращённая ошибка логируется,
// расписание при этом сохраняется.
type Sender interface {
	SendReminder(chatID int64) error
}

// Presence отвечает, числится ли чат в реестре. Отрицательный ответ при
// срабатывании триггера означает отписку: триггер снимает сам себя.
type Presence interface {
	IsRegistered(chatID int64) bool
}

type EventSink interface {
	Log(eventType string, chatID int64, username, message, extra string)
}

// Trigger — одна еженедельная точка срабатывания для конкретного чата.
type Trigger struct {
	ChatID  int64
	Name    string
	Weekday time.Weekday
	Hour    int
	Minute  int

	stop chan struct{}
}

// Scheduler держит по три еженедельных триггера на зарегистрированный чат.
// Реализация — горутина с таймером на триггер и стоп-канал для снятия.
type Scheduler struct {
	sender   Sender
	presence Presence
	sink     EventSink
	log      logger.Logger

	loc     *time.Location
	days    []time.Weekday
	hour    int
	minute  int
	now     func() time.Time
	dryFire bool // тестовый режим: не запускать горутины таймеров

	mu       sync.Mutex
	triggers map[int64][]*Trigger
}

func New(sender Sender, presence Presence, sink EventSink, log logger.Logger,
	loc *time.Location, days []time.Weekday, hour, minute int) *Scheduler {
	return &Scheduler{
		sender:   sender,
		presence: presence,
		sink:     sink,
		log:      log,
		loc:      loc,
		days:     days,
		hour:     hour,
		minute:   minute,
		now:      time.Now,
		triggers: map[int64][]*Trigger{},
	}
}

// Schedule идемпотентно (пере)ставит напоминания для чата: сначала снимает
// все триггеры с именем ReminderName, затем ставит по одному на каждый
// настроенный день недели. Повторный /start не приводит к двойной отправке.
func (s *Scheduler) Schedule(chatID int64) {
	s.mu.Lock()
	s.removeLocked(chatID, ReminderName)
	for _, day := range s.days {
		t := &Trigger{
			ChatID:  chatID,
			Name:    ReminderName,
			Weekday: day,
			Hour:    s.hour,
			Minute:  s.minute,
			stop:    make(chan struct{}),
		}
		s.triggers[chatID] = append(s.triggers[chatID], t)
		if !s.dryFire {
			go s.run(t)
		}
	}
	s.mu.Unlock()

	s.log.Infof("scheduled reminders for chat %d", chatID)
	s.sink.Log("SCHEDULE_SET", chatID, "", "Напоминания запланированы", "")
}

// Unschedule снимает все триггеры чата с именем ReminderName.
func (s *Scheduler) Unschedule(chatID int64) {
	s.mu.Lock()
	s.removeLocked(chatID, ReminderName)
	s.mu.Unlock()
}

// ActiveTriggers перечисляет действующие триггеры чата.
func (s *Scheduler) ActiveTriggers(chatID int64) []*Trigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Trigger(nil), s.triggers[chatID]...)
}

func (s *Scheduler) removeLocked(chatID int64, name string) {
	kept := s.triggers[chatID][:0]
	for _, t := range s.triggers[chatID] {
		if t.Name == name {
			close(t.stop)
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		delete(s.triggers, chatID)
		return
	}
	s.triggers[chatID] = kept
}

// removeOne снимает один конкретный триггер (самоснятие при отписке).
func (s *Scheduler) removeOne(tr *Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.triggers[tr.ChatID][:0]
	for _, t := range s.triggers[tr.ChatID] {
		if t == tr {
			close(t.stop)
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		delete(s.triggers, tr.ChatID)
		return
	}
	s.triggers[tr.ChatID] = kept
}

func (s *Scheduler) run(t *Trigger) {
	for {
		wait := untilNext(s.now().In(s.loc), t.Weekday, t.Hour, t.Minute)
		timer := time.NewTimer(wait)
		select {
		case <-t.stop:
			timer.Stop()
			return
		case <-timer.C:
			if !s.fire(t) {
				return
			}
		}
	}
}

// fire обрабатывает одно срабатывание. Возвращает false, если триггер
// снял сам себя.
func (s *Scheduler) fire(t *Trigger) bool {
	if !s.presence.IsRegistered(t.ChatID) {
		s.log.Infof("chat %d is gone, removing trigger", t.ChatID)
		s.removeOne(t)
		return false
	}

	if err := s.sender.SendReminder(t.ChatID); err != nil {
		// Доставка не удалась (например, бот заблокирован) — расписание
		// остаётся, следующая попытка через неделю.
		s.log.Errorf("send reminder to chat %d: %v", t.ChatID, err)
		s.sink.Log("ERROR", t.ChatID, "", "Ошибка отправки: "+err.Error(), "")
		return true
	}

	s.log.Infof("reminder sent to chat %d", t.ChatID)
	s.sink.Log("REMINDER_SENT", t.ChatID, "", "", "")
	return true
}

// untilNext — время до ближайшего следующего срабатывания weekday hh:mm,
// считая от from (в поясе from). Момент ровно «сейчас» не считается
// следующим: возвращается полная неделя.
func untilNext(from time.Time, day time.Weekday, hour, minute int) time.Duration {
	next := time.Date(from.Year(), from.Month(), from.Day(), hour, minute, 0, 0, from.Location())
	daysAhead := (int(day) - int(from.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, daysAhead)
	if !next.After(from) {
		next = next.AddDate(0, 0, 7)
	}
	return next.Sub(from)
}
