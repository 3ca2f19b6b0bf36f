package tgbot

import (
	"strconv"
	"strings"
)

// Кнопки несут закодированное действие в callback data ("w:hold:25").
// Строка разбирается ровно один раз, здесь; дальше по боту ходит только
// типизированный Action.

type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionWorkoutMenu
	ActionPickHold   // выбран вис, ждём выбор подтягиваний
	ActionLogWorkout // выбраны оба параметра
	ActionQuickLog   // быстрая запись со значениями по умолчанию
	ActionShowFact
)

type Action struct {
	Kind ActionKind
	Hold int // секунды виса
	Reps int // подтягивания за подход
}

// Быстрая запись: 25 секунд виса, 6 подтягиваний.
const (
	quickLogHold = 25
	quickLogReps = 6
)

var (
	holdChoices = []int{25, 35, 45}
	repsChoices = []int{5, 7, 9}
)

func isChoice(v int, choices []int) bool {
	for _, c := range choices {
		if v == c {
			return true
		}
	}
	return false
}

// decodeAction разбирает callback data. Второе значение false — данные не
// распознаны (устаревшая кнопка, чужой payload).
func decodeAction(data string) (Action, bool) {
	switch data {
	case "w:menu":
		return Action{Kind: ActionWorkoutMenu}, true
	case "w:simple":
		return Action{Kind: ActionQuickLog, Hold: quickLogHold, Reps: quickLogReps}, true
	case "fact":
		return Action{Kind: ActionShowFact}, true
	}

	parts := strings.Split(data, ":")
	switch {
	case len(parts) == 3 && parts[0] == "w" && parts[1] == "hold":
		hold, err := strconv.Atoi(parts[2])
		if err != nil || !isChoice(hold, holdChoices) {
			return Action{}, false
		}
		return Action{Kind: ActionPickHold, Hold: hold}, true

	case len(parts) == 4 && parts[0] == "w" && parts[1] == "set":
		hold, err1 := strconv.Atoi(parts[2])
		reps, err2 := strconv.Atoi(parts[3])
		if err1 != nil || err2 != nil || !isChoice(hold, holdChoices) || !isChoice(reps, repsChoices) {
			return Action{}, false
		}
		return Action{Kind: ActionLogWorkout, Hold: hold, Reps: reps}, true
	}

	return Action{}, false
}

func holdData(hold int) string      { return "w:hold:" + strconv.Itoa(hold) }
func setData(hold, reps int) string { return "w:set:" + strconv.Itoa(hold) + ":" + strconv.Itoa(reps) }
