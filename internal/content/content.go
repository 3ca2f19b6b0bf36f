package content

import (
	"math/rand"

	"forearm-bot/internal/config"
	"forearm-bot/internal/models"
)

// ReminderText — канонический текст напоминания о тренировке.
const ReminderText = `⏰ Напоминание: время укрепить предплечья!

1. Вис на перекладине
   3 подхода по 20-30 секунд
   Используйте обычный хват (ладони от себя)
   Постепенно увеличивайте время виса на 5 секунд каждую неделю

2. Подтягивания с паузой
   3 подхода по 5-8 повторений
   В верхней точке задержитесь на 2 секунды
   Опускайтесь плавно, контролируя движение`

var phrases = []string{
	"💪 Сильный хват — сильный человек!",
	"🔥 Каждый вис делает тебя крепче.",
	"⚡ Лучшая тренировка — та, которая состоялась.",
	"🏋️ Предплечья не вырастут сами. За дело!",
	"🚀 Маленький шаг сегодня — большой прогресс через месяц.",
	"🧗 Скалолазы держатся на предплечьях. И ты удержишься.",
	"⏳ 30 секунд виса — и день прожит не зря.",
	"🥇 Регулярность бьёт интенсивность.",
}

var facts = []string{
	"📚 Сила хвата — один из предикторов общего долголетия.",
	"📚 В предплечье около 20 мышц — больше, чем в плече и бицепсе вместе.",
	"📚 Вис на перекладине разгружает позвоночник после сидячего дня.",
	"📚 Хват восстанавливается медленнее крупных мышц: трёх тренировок в неделю достаточно.",
	"📚 Паузы в верхней точке подтягивания нагружают предплечья сильнее, чем сами повторения.",
	"📚 Сила хвата у альпинистов в среднем вдвое выше, чем у офисных работников.",
	"📚 Толстый гриф или полотенце на перекладине усложняют вис в разы.",
	"📚 Первая реакция на вис — усталость кожи ладоней, а не мышц. Это проходит.",
}

var workoutComments = []string{
	"💪 Отличная работа!",
	"🔥 Так держать!",
	"⚡ Мощно! Предплечья скажут спасибо.",
	"🏆 Ещё одна тренировка в копилку.",
	"🚀 Прогресс не остановить!",
	"🥊 Железная хватка всё ближе.",
}

func RandomPhrase() string  { return phrases[rand.Intn(len(phrases))] }
func RandomFact() string    { return facts[rand.Intn(len(facts))] }
func RandomComment() string { return workoutComments[rand.Intn(len(workoutComments))] }

// Rule — запись каталога достижений плюс условие разблокировки.
// Условие проверяется по уже обновлённому снимку статистики.
type Rule struct {
	models.Achievement
	Unlocked func(s models.WorkoutStats) bool
}

// Achievements строит каталог в порядке объявления. Порядок фиксирован:
// в нём же происходит выдача при одной тренировке.
func Achievements(t config.Thresholds) []Rule {
	return []Rule{
		{
			Achievement: models.Achievement{
				ID: "first_workout", Title: "Первая тренировка",
				Description: "Записать первую тренировку", Icon: "🎉",
			},
			Unlocked: func(s models.WorkoutStats) bool { return s.WorkoutsDone == 1 },
		},
		{
			Achievement: models.Achievement{
				ID: "streak_3", Title: "Серия из трёх",
				Description: "Три тренировки подряд без больших пропусков", Icon: "🔥",
			},
			Unlocked: func(s models.WorkoutStats) bool { return s.CurrentStreak >= t.StreakShort },
		},
		{
			Achievement: models.Achievement{
				ID: "streak_10", Title: "Десять подряд",
				Description: "Серия из десяти тренировок", Icon: "⚡",
			},
			Unlocked: func(s models.WorkoutStats) bool { return s.CurrentStreak >= t.StreakLong },
		},
		{
			Achievement: models.Achievement{
				ID: "workouts_10", Title: "Десятка",
				Description: "Десять тренировок всего", Icon: "🏅",
			},
			Unlocked: func(s models.WorkoutStats) bool { return s.WorkoutsDone >= t.WorkoutsMid },
		},
		{
			Achievement: models.Achievement{
				ID: "workouts_50", Title: "Полсотни",
				Description: "Пятьдесят тренировок всего", Icon: "🏆",
			},
			Unlocked: func(s models.WorkoutStats) bool { return s.WorkoutsDone >= t.WorkoutsBig },
		},
		{
			Achievement: models.Achievement{
				ID: "hold_60", Title: "Минута виса",
				Description: "Провисеть 60 секунд за один подход", Icon: "⏱",
			},
			Unlocked: func(s models.WorkoutStats) bool { return s.MaxHoldTime >= t.HoldSeconds },
		},
		{
			Achievement: models.Achievement{
				ID: "pullup_king", Title: "Король турника",
				Description: "Сто подтягиваний суммарно", Icon: "👑",
			},
			Unlocked: func(s models.WorkoutStats) bool { return s.PullupsDone >= t.Pullups },
		},
	}
}
