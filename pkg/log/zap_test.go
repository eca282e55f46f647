package log_test

import (
	"context"
	"testing"

	"geonotes/pkg/log"
)

func TestRequestIDContext(t *testing.T) {
	ctx := log.WithRequestID(context.Background(), "req-1")
	if got := log.RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
	if got := log.RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request id, got %q", got)
	}
}

func TestInit(t *testing.T) {
	t.Run("Unknown level falls back", func(t *testing.T) {
		l := log.Init(log.ZapConfig{Level: "loud", Mode: log.ModeDevelopment, Encoding: log.EncodingConsole})
		if l == nil {
			t.Fatal("expected logger")
		}
		l.Debugf(context.Background(), "debug %d", 1)
	})

	t.Run("Production JSON", func(t *testing.T) {
		l := log.Init(log.ZapConfig{Level: "warn", Mode: log.ModeProduction, Encoding: log.EncodingJSON})
		l.Warn(log.WithRequestID(context.Background(), "abc"), "warned")
	})
}
