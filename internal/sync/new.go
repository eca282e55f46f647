package sync

import (
	gosync "sync"
	"time"

	"geonotes/internal/note"
	"geonotes/internal/note/repository"
	pkgLog "geonotes/pkg/log"
	"geonotes/pkg/metrics"
)

const (
	defaultTimeout    = 2 * time.Minute
	defaultMaxRetries = 3
	defaultBackoff    = 2 * time.Second
)

// WebhookHandler keeps the shared note list in step with changes made
// directly in Memos.
type WebhookHandler struct {
	l        pkgLog.Logger
	gw       repository.Gateway
	agg      note.Aggregator
	security *SecurityValidator
	metrics  *metrics.Collector
	opt      Options

	inflight gosync.WaitGroup
}

// NewWebhookHandler builds the handler. m may be nil.
func NewWebhookHandler(l pkgLog.Logger, gw repository.Gateway, agg note.Aggregator, security *SecurityValidator, m *metrics.Collector, opt Options) *WebhookHandler {
	if opt.Timeout <= 0 {
		opt.Timeout = defaultTimeout
	}
	if opt.MaxRetries <= 0 {
		opt.MaxRetries = defaultMaxRetries
	}
	if opt.Backoff <= 0 {
		opt.Backoff = defaultBackoff
	}
	if security == nil {
		security = NewSecurityValidator(SecurityConfig{})
	}
	return &WebhookHandler{
		l:        l,
		gw:       gw,
		agg:      agg,
		security: security,
		metrics:  m,
		opt:      opt,
	}
}

// Wait blocks until every accepted event has been processed.
func (h *WebhookHandler) Wait() {
	h.inflight.Wait()
}
