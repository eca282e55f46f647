package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"geonotes/config"
	_ "geonotes/docs" // Swagger docs
	"geonotes/internal/bootstrap"
	"geonotes/internal/httpserver"
	"geonotes/internal/note"
	"geonotes/internal/note/usecase"
	"geonotes/internal/notify"
	"geonotes/internal/sync"
	"geonotes/pkg/log"
	"geonotes/pkg/metrics"
)

// @title       geonotes API
// @description Paginated, geotagged photo notes backed by Memos, PostgreSQL or DynamoDB.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting geonotes...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Metrics
	collector := metrics.NewCollector("geonotes")

	// 4. Note store
	gw, closeGateway, err := bootstrap.Gateway(ctx, cfg, logger, collector)
	if err != nil {
		logger.Error(ctx, "Failed to open note store: ", err)
		return
	}
	defer closeGateway()

	// 5. Note domain: one Aggregator for the whole process
	agg := usecase.NewAggregator(logger, gw, usecase.PageSizer{
		RowHeight: cfg.Pagination.RowHeight,
		Max:       cfg.Pagination.MaxPageSize,
	}, cfg.Pagination.DefaultViewportHeight, collector)

	cancelObserver := agg.Subscribe(func(s note.Snapshot) {
		logger.Debugf(ctx, "note list v%d: %d notes, more=%t", s.Version, s.Len(), s.MoreAvailable)
	})
	defer cancelObserver()

	recorder := notify.NewRecorder(100)
	notifier := bootstrap.Notifier(ctx, cfg, logger, collector, recorder)
	noteUC := usecase.New(logger, gw, agg, notifier, nil)

	// 6. Memos webhook sync
	var webhookHandler *sync.WebhookHandler
	if cfg.Webhook.Enabled {
		webhookHandler = sync.NewWebhookHandler(logger, gw, agg, sync.NewSecurityValidator(sync.SecurityConfig{
			Secret:          cfg.Webhook.Secret,
			AllowedIPs:      cfg.Webhook.AllowedIPs,
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
		}), collector, sync.Options{})
		if cfg.Webhook.Secret == "" {
			logger.Warn(ctx, "Memos webhook accepts unauthenticated requests: webhook.secret is empty")
		}
	}

	// 7. HTTP Server
	srvCfg := httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Metrics:     collector,
		NoteUseCase: noteUC,
		Aggregator:  agg,
		Recorder:    recorder,
		MapZoom:     cfg.Detail.MapZoom,
		TileURL:     cfg.Detail.TileURL,
	}
	if webhookHandler != nil {
		srvCfg.WebhookHandler = webhookHandler
	}

	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// Warm the list so /ready turns green without a client.
	if _, err := agg.ScreenReady(ctx, cfg.Pagination.DefaultViewportHeight); err != nil {
		logger.Warnf(ctx, "Initial page load failed: %v", err)
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	if webhookHandler != nil {
		webhookHandler.Wait()
	}
	logger.Info(ctx, "Server stopped gracefully")
}
