package server

import (
	"encoding/json"
	"net/http"
	"time"

	"forearm-bot/internal/config"
	"forearm-bot/internal/registry"
)

// New собирает служебный HTTP-сервер: liveness-проба и краткий статус.
func New(cfg config.Config, users *registry.Registry) *http.Server {
	started := time.Now()
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/statusz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"registered_users": users.Count(),
			"uptime":           time.Since(started).Round(time.Second).String(),
			"reminder_days":    len(cfg.ReminderDays),
		})
	})

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}
