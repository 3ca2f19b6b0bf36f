package sheets

import (
	"context"
	"strconv"
	"time"

	"forearm-bot/internal/logger"
	"forearm-bot/internal/util"
)

// SheetLogs — лист журнала событий, колонки A:F
// (timestamp, type, chat_id, username, message, extra).
const SheetLogs = "Logs"

const appendTimeout = 10 * time.Second

// EventLog — append-only журнал событий поверх Google Sheets.
// Сбои не поднимаются к вызывающему: корректность бота от журнала не
// зависит. При отсутствующем клиенте (не настроен или не поднялся)
// каждая запись — тихий no-op после одноразового предупреждения на старте.
type EventLog struct {
	client *Client
	log    logger.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewEventLog(client *Client, log logger.Logger, loc *time.Location) *EventLog {
	if client == nil {
		log.Warn("Google Sheets не настроен: журнал событий отключён")
	}
	return &EventLog{client: client, log: log, loc: loc, now: time.Now}
}

// Log добавляет строку в журнал. chatID == 0 — событие без чата.
// Запись уходит в фоне: вызывающий не ждёт Google API и не видит сбоев.
func (e *EventLog) Log(eventType string, chatID int64, username, message, extra string) {
	if e.client == nil {
		return
	}

	chat := ""
	if chatID != 0 {
		chat = strconv.FormatInt(chatID, 10)
	}
	row := []interface{}{
		util.FormatTimestamp(e.now(), e.loc),
		eventType,
		chat,
		username,
		message,
		extra,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		defer cancel()

		if err := e.client.appendRow(ctx, SheetLogs, row); err != nil {
			e.log.Errorf("sheets append (%s): %v", eventType, err)
			return
		}
		e.log.Debugf("event logged: %s", eventType)
	}()
}
