package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geonotes/internal/model"
	"geonotes/internal/notify"
	pkgLog "geonotes/pkg/log"
	"geonotes/pkg/metrics"
	"geonotes/pkg/telegram"
)

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	r := notify.NewRecorder(2)

	_, ok := r.Last()
	assert.False(t, ok)

	r.Success(ctx, "Note saved", &model.Note{Key: "k1", Title: "Dock"})
	r.Failure(ctx, "Failed to delete note", errors.New("timeout"))
	r.Success(ctx, "Note edited", nil)

	require.Equal(t, 2, r.Len())
	all := r.All()
	assert.Equal(t, notify.KindFailure, all[0].Kind)
	assert.Equal(t, "timeout", all[0].Error)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "Note edited", last.Message)
	assert.False(t, last.At.IsZero())
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	a, b := notify.NewRecorder(0), notify.NewRecorder(0)
	m := notify.Multi(a, b)

	m.Success(ctx, "ok", nil)
	m.Failure(ctx, "bad", nil)
	m.Info(ctx, "Edit cancelled")

	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 3, b.Len())
	last, _ := b.Last()
	assert.Equal(t, notify.KindInfo, last.Kind)
}

func TestWriter(t *testing.T) {
	ctx := context.Background()
	var buf strings.Builder
	w := notify.NewWriter(&buf)

	w.Success(ctx, "Note saved", &model.Note{Key: "k1"})
	w.Success(ctx, "Note edited", nil)
	w.Failure(ctx, "Failed to delete note", errors.New("timeout"))
	w.Failure(ctx, "Failed to save note", nil)
	w.Info(ctx, "Edit cancelled")

	assert.Equal(t, "✔ Note saved [k1]\n✔ Note edited\n✘ Failed to delete note: timeout\n✘ Failed to save note\n• Edit cancelled\n", buf.String())
}

func TestCounting(t *testing.T) {
	ctx := context.Background()
	c := metrics.NewCollector("test")
	n := notify.NewCounting(c)

	n.Success(ctx, "ok", nil)
	n.Success(ctx, "ok", nil)
	n.Failure(ctx, "bad", errors.New("x"))
	n.Info(ctx, "Edit cancelled")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Notifications.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Notifications.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Notifications.WithLabelValues("info")))
}

func TestTelegram(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
		texts   []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)

		mu.Lock()
		methods = append(methods, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		if text, ok := body["text"].(string); ok {
			texts = append(texts, text)
		}
		mu.Unlock()

		w.Write([]byte(`{"ok": true}`))
	}))
	defer ts.Close()

	bot := telegram.NewBot("token")
	bot.SetAPIURL(ts.URL)
	n := notify.NewTelegram(bot, 42, pkgLog.NewNop())
	ctx := context.Background()

	n.Success(ctx, "Note saved", &model.Note{Title: "Bridge", Position: "(48.85,2.35)"})
	n.Success(ctx, "Note saved", &model.Note{Title: "Indoors", Position: "bogus"})
	n.Failure(ctx, "Failed to save note", errors.New("boom"))

	assert.Equal(t, []string{"sendMessage", "sendLocation", "sendMessage", "sendMessage"}, methods)
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "Bridge")
	assert.Contains(t, texts[2], "Failed to save note")
}
