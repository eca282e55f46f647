package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geonotes/internal/model"
	"geonotes/internal/note/repository/memory"
	"geonotes/internal/note/usecase"
	"geonotes/internal/notify"
	"geonotes/pkg/metrics"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type fakeWebhook struct{ calls int }

func (f *fakeWebhook) HandleMemosWebhook(c *gin.Context) {
	f.calls++
	c.Status(http.StatusOK)
}

func baseConfig() Config {
	l := &mockLogger{}
	store := memory.New()
	store.Seed(model.Note{Key: "a", Title: "first", Photo: "p"})
	m := metrics.NewCollector("geonotes_test")
	agg := usecase.NewAggregator(l, store, usecase.PageSizer{RowHeight: 50, Max: 10}, 500, m)
	rec := notify.NewRecorder(10)

	return Config{
		Logger:      l,
		Port:        8080,
		Mode:        gin.TestMode,
		Environment: "test",
		Metrics:     m,
		NoteUseCase: usecase.New(l, store, agg, rec, nil),
		Aggregator:  agg,
		Recorder:    rec,
	}
}

func serve(srv *HTTPServer, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing mode", func(c *Config) { c.Mode = "" }},
		{"missing port", func(c *Config) { c.Port = 0 }},
		{"missing aggregator", func(c *Config) { c.Aggregator = nil }},
		{"missing use case", func(c *Config) { c.NoteUseCase = nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			tc.mutate(&cfg)
			_, err := New(cfg.Logger, cfg)
			assert.Error(t, err)
		})
	}

	_, err := New(nil, baseConfig())
	assert.Error(t, err, "nil logger")
}

func TestSystemRoutes(t *testing.T) {
	srv, err := New(&mockLogger{}, baseConfig())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/live").Code)

	w := serve(srv, http.MethodGet, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "loading")

	assert.Equal(t, http.StatusOK, serve(srv, http.MethodPost, "/api/v1/notes/refresh").Code)
	assert.Equal(t, http.StatusOK, serve(srv, http.MethodGet, "/ready").Code)

	w = serve(srv, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "geonotes_test_http_requests_total"), "http metrics exposed")
	assert.True(t, strings.Contains(body, "geonotes_test_aggregate_list_size"), "list metrics exposed")
}

func TestWebhookRoute(t *testing.T) {
	t.Run("registered when configured", func(t *testing.T) {
		cfg := baseConfig()
		hook := &fakeWebhook{}
		cfg.WebhookHandler = hook
		srv, err := New(cfg.Logger, cfg)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, serve(srv, http.MethodPost, "/webhook/memos").Code)
		assert.Equal(t, 1, hook.calls)
	})

	t.Run("absent otherwise", func(t *testing.T) {
		srv, err := New(&mockLogger{}, baseConfig())
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPost, "/webhook/memos").Code)
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := baseConfig()
	cfg.Port = 38471
	srv, err := New(cfg.Logger, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
