package registry

import (
	"fmt"
	"time"

	"forearm-bot/internal/models"
	"forearm-bot/internal/storage"
)

// EventSink принимает записи для внешнего журнала. Вызов не может упасть.
type EventSink interface {
	Log(eventType string, chatID int64, username, message, extra string)
}

// Registry отвечает за регистрацию пользователей и поиск профилей.
type Registry struct {
	store storage.Store
	sink  EventSink
	loc   *time.Location
	now   func() time.Time
}

func New(store storage.Store, sink EventSink, loc *time.Location) *Registry {
	return &Registry{store: store, sink: sink, loc: loc, now: time.Now}
}

// Register — идемпотентный upsert: повторный /start перезаписывает профиль
// со свежим временем регистрации. Всегда успешен.
func (r *Registry) Register(chatID int64, firstName, username string) models.UserProfile {
	p := models.UserProfile{
		ChatID:       chatID,
		FirstName:    firstName,
		Username:     username,
		RegisteredAt: r.now().In(r.loc),
	}
	r.store.UpsertUser(p)
	r.sink.Log("START", chatID, username,
		fmt.Sprintf("Пользователь %s запустил бота", firstName), "")
	return p
}

func (r *Registry) Lookup(chatID int64) (models.UserProfile, bool) {
	return r.store.GetUser(chatID)
}

// IsRegistered используется планировщиком: отсутствие в реестре означает
// отписку, и сработавший триггер снимает сам себя.
func (r *Registry) IsRegistered(chatID int64) bool {
	_, ok := r.store.GetUser(chatID)
	return ok
}

// DisplayName возвращает имя для приветствий; для незнакомого чата —
// нейтральную заглушку, а не ошибку.
func (r *Registry) DisplayName(chatID int64) string {
	p, ok := r.store.GetUser(chatID)
	if !ok || p.FirstName == "" {
		return "Атлет"
	}
	return p.FirstName
}

func (r *Registry) Count() int {
	return r.store.CountUsers()
}
