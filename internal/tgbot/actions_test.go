package tgbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		data string
		want Action
	}{
		{"w:menu", Action{Kind: ActionWorkoutMenu}},
		{"w:simple", Action{Kind: ActionQuickLog, Hold: 25, Reps: 6}},
		{"fact", Action{Kind: ActionShowFact}},
		{"w:hold:25", Action{Kind: ActionPickHold, Hold: 25}},
		{"w:hold:45", Action{Kind: ActionPickHold, Hold: 45}},
		{"w:set:35:7", Action{Kind: ActionLogWorkout, Hold: 35, Reps: 7}},
		{"w:set:25:9", Action{Kind: ActionLogWorkout, Hold: 25, Reps: 9}},
	}
	for _, tt := range tests {
		got, ok := decodeAction(tt.data)
		require.Truef(t, ok, "data %q", tt.data)
		assert.Equalf(t, tt.want, got, "data %q", tt.data)
	}
}

func TestDecodeActionRejectsGarbage(t *testing.T) {
	bad := []string{
		"",
		"nonsense",
		"w:",
		"w:hold:",
		"w:hold:26",      // не из набора кнопок
		"w:hold:-25",     // отрицательное
		"w:hold:abc",     // не число
		"w:set:25",       // не хватает повторений
		"w:set:25:6",     // 6 не из набора кнопок
		"w:set:999:7",    // вис не из набора
		"u:stage_join:1", // чужой payload
	}
	for _, data := range bad {
		_, ok := decodeAction(data)
		assert.Falsef(t, ok, "data %q должна быть отвергнута", data)
	}
}

func TestKeyboardDataRoundTrip(t *testing.T) {
	for _, h := range holdChoices {
		a, ok := decodeAction(holdData(h))
		require.True(t, ok)
		assert.Equal(t, Action{Kind: ActionPickHold, Hold: h}, a)
		for _, r := range repsChoices {
			a, ok := decodeAction(setData(h, r))
			require.True(t, ok)
			assert.Equal(t, Action{Kind: ActionLogWorkout, Hold: h, Reps: r}, a)
		}
	}
}
