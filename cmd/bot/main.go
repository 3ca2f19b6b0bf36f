package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"forearm-bot/internal/config"
	"forearm-bot/internal/content"
	"forearm-bot/internal/logger"
	"forearm-bot/internal/registry"
	"forearm-bot/internal/scheduler"
	"forearm-bot/internal/server"
	"forearm-bot/internal/sheets"
	"forearm-bot/internal/stats"
	"forearm-bot/internal/storage"
	"forearm-bot/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(cfg.LogLevel)
	loc := cfg.Location()

	// Журнал событий опционален: без него бот работает, просто молчит в Sheets.
	var sheetsClient *sheets.Client
	if cfg.SpreadsheetID != "" && cfg.GoogleServiceAccountJSON != "" {
		sheetsClient, err = sheets.New(cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			lg.Errorf("sheets: %v", err)
			sheetsClient = nil
		}
	}
	events := sheets.NewEventLog(sheetsClient, lg, loc)

	store := storage.NewMemoryStore()
	users := registry.New(store, events, loc)
	engine := stats.NewEngine(store, content.Achievements(cfg.Thresholds), events, loc)

	botApp, err := tgbot.New(cfg, lg, users, engine, events)
	if err != nil {
		lg.Errorf("telegram: %v", err)
		os.Exit(1)
	}

	sched := scheduler.New(botApp, users, events, lg, loc,
		cfg.ReminderDays, cfg.ReminderHour, cfg.ReminderMinute)
	botApp.AttachScheduler(sched)

	httpSrv := server.New(cfg, users)
	go func() {
		lg.Infof("HTTP listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Errorf("http server: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := botApp.Run(ctx); err != nil && ctx.Err() == nil {
			lg.Errorf("bot stopped: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	lg.Info("shutting down...")

	cancel()
	ctxTimeout, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = httpSrv.Shutdown(ctxTimeout)

	lg.Info("bye")
}
