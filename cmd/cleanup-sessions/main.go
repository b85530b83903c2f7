// Command cleanup-sessions logs out users whose session has been idle for
// longer than auth.session_idle. It is intended to be invoked by an external
// cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/agpb-backend/internal/adapter/postgres"
	"github.com/heartmarshall/agpb-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/agpb-backend/internal/app"
	"github.com/heartmarshall/agpb-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	threshold := time.Now().Add(-cfg.Auth.SessionIdle)

	cleared, err := user.New(pool).ClearStaleSessions(ctx, threshold)
	if err != nil {
		logger.Error("clear stale sessions failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("stale sessions cleared",
		slog.Int64("cleared", cleared),
		slog.Time("threshold", threshold),
	)
}
