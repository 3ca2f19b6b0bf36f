package util

import (
	"fmt"
	"time"
)

// FormatTimestamp — формат строк журнала событий ("2006-01-02 15:04:05").
func FormatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04:05")
}

// PluralRU подбирает русскую форму существительного по числу:
// PluralRU(3, "тренировка", "тренировки", "тренировок") → "3 тренировки".
func PluralRU(n int, one, few, many string) string {
	form := many
	n10, n100 := n%10, n%100
	switch {
	case n10 == 1 && n100 != 11:
		form = one
	case n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14):
		form = few
	}
	return fmt.Sprintf("%d %s", n, form)
}
