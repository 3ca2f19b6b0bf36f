package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forearm-bot/internal/logger"
)

// Живой Sheets API в тестах недоступен; проверяется деградация без клиента.
func TestEventLogWithoutClientIsNoOp(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	e := NewEventLog(nil, logger.New("error"), loc)

	assert.NotPanics(t, func() {
		e.Log("START", 42, "ivan", "Пользователь запустил бота", "")
		e.Log("BOT_START", 0, "", "", "")
		e.Log("ERROR", 42, "", "Ошибка отправки", "extra")
	})
}

func TestNewClientRejectsMissingConfig(t *testing.T) {
	_, err := New("/nonexistent/credentials.json", "")
	assert.Error(t, err, "пустой spreadsheet id")

	_, err = New("/nonexistent/credentials.json", "sheet-id")
	assert.Error(t, err, "отсутствующий файл ключа")
}
