package sync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	"geonotes/pkg/metrics"
	pkgResponse "geonotes/pkg/response"
)

const (
	headerToken     = "X-Webhook-Token"
	headerSignature = "X-Hub-Signature-256"
)

// HandleMemosWebhook accepts a Memos activity and applies it in the background.
//
// @Summary     Memos webhook
// @Description Keeps the loaded note list in step with changes made directly in Memos.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       X-Webhook-Token header string false "Shared secret"
// @Param       body body MemosWebhookPayload true "Memos activity"
// @Success     200 {object} pkgResponse.Resp
// @Failure     400 {object} pkgResponse.Resp "Bad Request"
// @Failure     401 {object} pkgResponse.Resp "Unauthorized"
// @Failure     429 {object} pkgResponse.Resp "Too Many Requests"
// @Router      /webhook/memos [POST]
func (h *WebhookHandler) HandleMemosWebhook(c *gin.Context) {
	ctx := c.Request.Context()
	source := c.ClientIP()

	if err := h.security.ValidateIP(source); err != nil {
		h.l.Warnf(ctx, "sync.HandleMemosWebhook: %v", err)
		h.observe("", metrics.WebhookRejected)
		pkgResponse.Unauthorized(c)
		return
	}
	if err := h.security.CheckRateLimit(source); err != nil {
		h.l.Warnf(ctx, "sync.HandleMemosWebhook: %v", err)
		h.observe("", metrics.WebhookRateLimited)
		pkgResponse.TooManyRequests(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		pkgResponse.Error(c, err, nil)
		return
	}
	if err := h.authenticate(c, body); err != nil {
		h.l.Warnf(ctx, "sync.HandleMemosWebhook: %v", err)
		h.observe("", metrics.WebhookRejected)
		pkgResponse.Unauthorized(c)
		return
	}

	var payload MemosWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.l.Errorf(ctx, "sync.HandleMemosWebhook: failed to parse payload: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}
	if payload.Key() == "" {
		pkgResponse.Error(c, ErrMissingKey, nil)
		return
	}
	switch payload.ActivityType {
	case ActivityMemoCreated, ActivityMemoUpdated, ActivityMemoDeleted:
	default:
		h.l.Debugf(ctx, "sync.HandleMemosWebhook: ignoring %s", payload.ActivityType)
		h.observe(payload.ActivityType, metrics.WebhookIgnored)
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	h.l.Infof(ctx, "sync.HandleMemosWebhook: received %s for memo %s", payload.ActivityType, payload.Key())

	// Acknowledge immediately; Memos does not wait for the list to catch up.
	h.inflight.Add(1)
	go func(p MemosWebhookPayload) {
		defer h.inflight.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), h.opt.Timeout)
		defer cancel()

		if err := h.Process(bgCtx, p); err != nil {
			h.l.Errorf(bgCtx, "sync.HandleMemosWebhook: %s %s: %v", p.ActivityType, p.Key(), err)
			h.observe(p.ActivityType, metrics.StatusError)
			return
		}
		h.observe(p.ActivityType, metrics.StatusOK)
	}(payload)

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

func (h *WebhookHandler) authenticate(c *gin.Context, body []byte) error {
	if sig := c.GetHeader(headerSignature); sig != "" {
		return h.security.ValidateSignature(body, sig)
	}
	token := c.GetHeader(headerToken)
	if token == "" {
		token = c.Query("token")
	}
	return h.security.ValidateToken(token)
}

// Process applies one Memos activity to the shared list.
func (h *WebhookHandler) Process(ctx context.Context, p MemosWebhookPayload) error {
	key := p.Key()
	if key == "" {
		return ErrMissingKey
	}

	switch p.ActivityType {
	case ActivityMemoCreated:
		if !h.agg.Snapshot().Loaded {
			h.l.Debugf(ctx, "sync.Process: list not loaded, skipping refresh for %s", key)
			return nil
		}
		_, err := h.agg.ApplyCreate(ctx, model.Note{Key: key})
		return err

	case ActivityMemoUpdated:
		h.invalidate(key)
		return h.syncWithRetry(ctx, key)

	case ActivityMemoDeleted:
		h.invalidate(key)
		if h.agg.ApplyDelete(key) {
			h.l.Infof(ctx, "sync.Process: removed %s from the list", key)
		}
		return nil

	default:
		return ErrUnknownActivity
	}
}

// syncWithRetry reads the changed note with exponential backoff and patches
// it into the list.
func (h *WebhookHandler) syncWithRetry(ctx context.Context, key string) error {
	backoff := h.opt.Backoff

	var lastErr error
	for i := 0; i < h.opt.MaxRetries; i++ {
		n, err := h.gw.GetNote(ctx, key)
		if err == nil {
			if h.agg.ApplyUpdate(n) {
				h.l.Infof(ctx, "sync.syncWithRetry: patched %s", key)
			}
			return nil
		}
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted again before we could read it.
			h.agg.ApplyDelete(key)
			return nil
		}

		lastErr = err
		h.l.Warnf(ctx, "sync.syncWithRetry: fetch memo failed (retry %d/%d): %v", i+1, h.opt.MaxRetries, err)
		if i == h.opt.MaxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Join(ErrSyncRetriesExhausted, ctx.Err(), lastErr)
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return errors.Join(ErrSyncRetriesExhausted, lastErr)
}

func (h *WebhookHandler) invalidate(key string) {
	if inv, ok := h.gw.(repository.Invalidator); ok {
		inv.Invalidate(key)
	}
}

func (h *WebhookHandler) observe(activity, status string) {
	if h.metrics == nil {
		return
	}
	h.metrics.WebhookEvents.WithLabelValues(activity, status).Inc()
}
