package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/activity"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/config"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/designstore"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/dictionary"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/eventbus"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/forms"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/live"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/logger"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/render"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/searchstate"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/seed"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/server"
	"github.com/nguyenvuhoang/w4s-frontend-sub005/internal/workflow"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.For("main")

	db, err := sql.Open("sqlite", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	store := designstore.NewSQLiteStore(db)
	if err := store.CreateTable(ctx); err != nil {
		log.Fatalf("running schema migration: %v", err)
	}
	audit := activity.NewSQLiteStore(db)
	if err := audit.CreateTable(ctx); err != nil {
		log.Fatalf("running schema migration: %v", err)
	}
	log.Info("database migrated successfully")

	if cfg.SeedDemo {
		if err := seed.Designs(ctx, store); err != nil {
			log.Fatalf("seeding demo designs: %v", err)
		}
	}

	bus := eventbus.New(256)
	bus.Subscribe("log", eventbus.NewLogConsumer())
	bus.Subscribe("metrics", eventbus.NewMetricsConsumer(prometheus.DefaultRegisterer))
	bus.Subscribe("activity", activity.NewRecorder(audit))
	bus.Start(ctx)
	defer bus.Stop()

	client := workflow.NewHTTPClient(cfg.SystemService, cfg.CallTimeout)
	svc := forms.New(store, client, searchstate.NewCoordinator(),
		render.NewRegistry(), dictionary.New(), bus)

	sessions := live.NewManager(24*time.Hour, 30*time.Minute)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sessions.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := server.Run(ctx, server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		Forms:       svc,
		Activity:    audit,
		Live:        live.NewHandler(sessions, svc),
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
