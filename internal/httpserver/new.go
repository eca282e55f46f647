package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"geonotes/internal/note"
	"geonotes/internal/notify"
	"geonotes/pkg/log"
	"geonotes/pkg/metrics"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	metrics     *metrics.Collector

	// Note domain
	noteUC   note.UseCase
	agg      note.Aggregator
	recorder *notify.Recorder
	mapZoom  int
	tileURL  string

	// Memos webhook sync
	webhookHandler interface {
		HandleMemosWebhook(c *gin.Context)
	}
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Metrics     *metrics.Collector

	// Note domain
	NoteUseCase note.UseCase
	Aggregator  note.Aggregator
	Recorder    *notify.Recorder
	MapZoom     int
	TileURL     string

	// Memos webhook sync (optional)
	WebhookHandler interface {
		HandleMemosWebhook(c *gin.Context)
	}
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		metrics:        cfg.Metrics,
		noteUC:         cfg.NoteUseCase,
		agg:            cfg.Aggregator,
		recorder:       cfg.Recorder,
		mapZoom:        cfg.MapZoom,
		tileURL:        cfg.TileURL,
		webhookHandler: cfg.WebhookHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.noteUC == nil || srv.agg == nil {
		return errors.New("note use case and aggregator are required")
	}
	return nil
}
