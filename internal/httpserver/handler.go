package httpserver

import (
	"context"

	"geonotes/internal/middleware"
	"geonotes/internal/model"
	noteHTTP "geonotes/internal/note/delivery/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	mw := middleware.New(srv.l, srv.metrics)
	srv.gin.Use(mw.Recovery(), mw.RequestID(), mw.AccessLog(), mw.Metrics())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metrics != nil {
		h := srv.metrics.Handler()
		srv.gin.GET("/metrics", func(c *gin.Context) { h.ServeHTTP(c.Writer, c.Request) })
	}

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	// Note list and flows: /api/v1/notes
	h := noteHTTP.New(srv.l, srv.noteUC, srv.agg, srv.recorder, noteHTTP.Options{
		MapZoom: srv.mapZoom,
		TileURL: srv.tileURL,
	})
	noteHTTP.RegisterRoutes(api, h)
	srv.l.Infof(ctx, "Note routes registered at /api/v1/notes")

	// Memos webhook
	if srv.webhookHandler != nil {
		srv.gin.POST("/webhook/memos", srv.webhookHandler.HandleMemosWebhook)
		srv.l.Infof(ctx, "Memos webhook route registered at POST /webhook/memos")
	} else {
		srv.l.Infof(ctx, "Webhook handler not configured, skipping Memos webhook route")
	}

	return nil
}
