package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	loc, _ := time.LoadLocation("Europe/Moscow")
	ts := time.Date(2025, 3, 10, 14, 5, 9, 0, time.UTC)

	assert.Equal(t, "2025-03-10 17:05:09", FormatTimestamp(ts, loc))
}

func TestPluralRU(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1 тренировка"},
		{2, "2 тренировки"},
		{5, "5 тренировок"},
		{11, "11 тренировок"},
		{21, "21 тренировка"},
		{22, "22 тренировки"},
		{112, "112 тренировок"},
		{0, "0 тренировок"},
	}
	for _, tt := range tests {
		got := PluralRU(tt.n, "тренировка", "тренировки", "тренировок")
		assert.Equal(t, tt.want, got)
	}
}
