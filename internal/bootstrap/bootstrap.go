// Package bootstrap builds the note store and notification chain shared by
// the API server and the CLI.
package bootstrap

import (
	"context"
	"fmt"

	"geonotes/config"
	"geonotes/internal/note/repository"
	"geonotes/internal/note/repository/dynamo"
	"geonotes/internal/note/repository/instrumented"
	"geonotes/internal/note/repository/memory"
	"geonotes/internal/note/repository/memos"
	"geonotes/internal/note/repository/postgre"
	"geonotes/internal/notify"
	"geonotes/pkg/log"
	"geonotes/pkg/metrics"
	"geonotes/pkg/telegram"
)

// Gateway opens the store selected by cfg.Gateway.Driver. release closes
// its connections and is never nil.
func Gateway(ctx context.Context, cfg *config.Config, l log.Logger, m *metrics.Collector) (gw repository.Gateway, release func(), err error) {
	release = func() {}

	switch cfg.Gateway.Driver {
	case config.DriverMemory:
		gw = memory.New()

	case config.DriverMemos:
		client := memos.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken, memos.ClientOptions{
			Timeout:       cfg.Memos.RequestTimeout,
			RateLimitPerS: cfg.Memos.RateLimitPerS,
			RetryAttempts: cfg.Memos.RetryAttempts,
			RetryDelay:    cfg.Memos.RetryDelay,
		})
		gw = memos.New(client, memos.Options{
			Visibility: cfg.Memos.Visibility,
			CacheSize:  cfg.Memos.CacheSize,
			CacheTTL:   cfg.Memos.CacheTTL,
		}, l)

	case config.DriverPostgres:
		if cfg.Postgres.MigrateOnStart {
			if err := postgre.Migrate(cfg.Postgres.DSN); err != nil {
				return nil, release, fmt.Errorf("bootstrap: migrate: %w", err)
			}
			l.Info(ctx, "PostgreSQL schema is up to date")
		}
		pool, err := postgre.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, release, fmt.Errorf("bootstrap: %w", err)
		}
		release = pool.Close
		gw = postgre.New(pool, l)

	case config.DriverDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			return nil, release, fmt.Errorf("bootstrap: %w", err)
		}
		gw = dynamo.New(client, cfg.DynamoDB.TableName, l)

	default:
		return nil, release, fmt.Errorf("bootstrap: unknown gateway driver %q", cfg.Gateway.Driver)
	}

	if cfg.Gateway.Metrics && m != nil {
		gw = instrumented.New(gw, cfg.Gateway.Driver, m)
	}

	l.Infof(ctx, "Note store: %s", cfg.Gateway.Driver)
	return gw, release, nil
}

// Notifier fans notifications out to the log, the metrics counter, the
// optional Telegram chat and the in-memory recorder.
func Notifier(ctx context.Context, cfg *config.Config, l log.Logger, m *metrics.Collector, rec *notify.Recorder) notify.Notifier {
	ns := []notify.Notifier{notify.NewLog(l)}
	if m != nil {
		ns = append(ns, notify.NewCounting(m))
	}
	if rec != nil {
		ns = append(ns, rec)
	}

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		ns = append(ns, notify.NewTelegram(telegram.NewBot(cfg.Telegram.BotToken), cfg.Telegram.ChatID, l))
		l.Info(ctx, "Telegram notifications enabled")
	} else {
		l.Debug(ctx, "Telegram notifications disabled: bot token or chat id missing")
	}

	return notify.Multi(ns...)
}
