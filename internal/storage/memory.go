package storage

import (
	"sync"

	"forearm-bot/internal/models"
)

// Store — хранилище профилей и статистики, ключ — chat id.
// Сейчас реализация только in-memory; интерфейс оставляет место для
// персистентного хранилища без изменения логики движка.
type Store interface {
	GetUser(chatID int64) (models.UserProfile, bool)
	UpsertUser(p models.UserProfile)
	DeleteUser(chatID int64)
	CountUsers() int

	// GetStats возвращает копию записи и false, если записи ещё нет.
	GetStats(chatID int64) (models.WorkoutStats, bool)
	UpsertStats(s models.WorkoutStats)
}

type MemoryStore struct {
	mu    sync.RWMutex
	users map[int64]models.UserProfile
	stats map[int64]models.WorkoutStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: map[int64]models.UserProfile{},
		stats: map[int64]models.WorkoutStats{},
	}
}

func (m *MemoryStore) GetUser(chatID int64) (models.UserProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.users[chatID]
	return p, ok
}

func (m *MemoryStore) UpsertUser(p models.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[p.ChatID] = p
}

func (m *MemoryStore) DeleteUser(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, chatID)
}

func (m *MemoryStore) CountUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

func (m *MemoryStore) GetStats(chatID int64) (models.WorkoutStats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stats[chatID]
	if !ok {
		return models.WorkoutStats{ChatID: chatID}, false
	}
	return s.Clone(), true
}

func (m *MemoryStore) UpsertStats(s models.WorkoutStats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[s.ChatID] = s.Clone()
}
