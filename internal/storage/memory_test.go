package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forearm-bot/internal/models"
)

func TestUserLifecycle(t *testing.T) {
	m := NewMemoryStore()

	_, ok := m.GetUser(1)
	assert.False(t, ok)
	assert.Zero(t, m.CountUsers())

	m.UpsertUser(models.UserProfile{ChatID: 1, FirstName: "Иван"})
	p, ok := m.GetUser(1)
	require.True(t, ok)
	assert.Equal(t, "Иван", p.FirstName)
	assert.Equal(t, 1, m.CountUsers())

	m.UpsertUser(models.UserProfile{ChatID: 1, FirstName: "Пётр"})
	p, _ = m.GetUser(1)
	assert.Equal(t, "Пётр", p.FirstName)
	assert.Equal(t, 1, m.CountUsers())

	m.DeleteUser(1)
	_, ok = m.GetUser(1)
	assert.False(t, ok)
	assert.Zero(t, m.CountUsers())
}

func TestGetStatsReturnsExplicitZeroValue(t *testing.T) {
	m := NewMemoryStore()

	s, ok := m.GetStats(5)
	assert.False(t, ok)
	assert.Equal(t, int64(5), s.ChatID)
	assert.Zero(t, s.WorkoutsDone)
	assert.Nil(t, s.LastWorkout)
}

func TestStatsCopiesAreIndependent(t *testing.T) {
	m := NewMemoryStore()

	now := time.Now()
	m.UpsertStats(models.WorkoutStats{
		ChatID:       5,
		WorkoutsDone: 2,
		LastWorkout:  &now,
		Achievements: []string{"first_workout"},
	})

	s1, _ := m.GetStats(5)
	s1.Achievements = append(s1.Achievements, "hold_60")
	s1.WorkoutsDone = 99
	*s1.LastWorkout = now.Add(time.Hour)

	s2, _ := m.GetStats(5)
	assert.Equal(t, 2, s2.WorkoutsDone)
	assert.Equal(t, []string{"first_workout"}, s2.Achievements)
	assert.True(t, s2.LastWorkout.Equal(now), "мутация копии не должна трогать хранилище")
}
