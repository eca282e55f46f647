package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	"geonotes/internal/note/repository/memory"
	"geonotes/internal/note/usecase"
	"geonotes/internal/notify"
	"geonotes/pkg/response"
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

// brokenStore fails every fetch the way a remote store outage does.
type brokenStore struct {
	*memory.Store
}

func (b brokenStore) FetchPage(ctx context.Context, opt repository.FetchPageOptions) (model.Page, error) {
	return model.Page{}, fmt.Errorf("%w: connection refused", repository.ErrFailedToFetch)
}

type testEnv struct {
	router   *gin.Engine
	store    *memory.Store
	recorder *notify.Recorder
}

func newTestEnv(t *testing.T, gw repository.Gateway, store *memory.Store) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := &mockLogger{}
	// 50px rows in a 100px viewport: two notes per page.
	agg := usecase.NewAggregator(l, gw, usecase.PageSizer{RowHeight: 50, Max: 100}, 100, nil)
	rec := notify.NewRecorder(0)
	uc := usecase.New(l, gw, agg, rec, nil)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(l, uc, agg, rec, Options{}))
	return &testEnv{router: r, store: store, recorder: rec}
}

// seeded returns an env whose store reads a, b, c, d, e newest first.
func seeded(t *testing.T) *testEnv {
	store := memory.New()
	for _, k := range []string{"e", "d", "c", "b", "a"} {
		store.Seed(model.Note{Key: k, Title: "note " + k, Photo: "data:image/png;base64,AA=="})
	}
	return newTestEnv(t, store, store)
}

func (e *testEnv) do(method, path string, body any) (*httptest.ResponseRecorder, response.Resp) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp response.Resp
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func decodeData[T any](t *testing.T, resp response.Resp) T {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func keys(l listResp) []string {
	out := make([]string, len(l.Notes))
	for i, n := range l.Notes {
		out[i] = n.Key
	}
	return out
}

func TestPagination(t *testing.T) {
	env := seeded(t)

	w, resp := env.do(http.MethodPost, "/api/v1/notes/screen-ready", screenReadyReq{ViewportHeight: 100})
	require.Equal(t, http.StatusOK, w.Code)
	load := decodeData[loadResp](t, resp)
	assert.Equal(t, []string{"a", "b"}, keys(load.List))
	assert.True(t, load.List.MoreAvailable)
	assert.Equal(t, 2, load.List.PageSize)

	_, resp = env.do(http.MethodPost, "/api/v1/notes/more", nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys(decodeData[loadResp](t, resp).List))

	_, resp = env.do(http.MethodPost, "/api/v1/notes/more", nil)
	load = decodeData[loadResp](t, resp)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, keys(load.List))
	assert.False(t, load.List.MoreAvailable)

	_, resp = env.do(http.MethodPost, "/api/v1/notes/more", nil)
	load = decodeData[loadResp](t, resp)
	assert.True(t, load.Skipped)
	assert.Len(t, load.List.Notes, 5)

	_, resp = env.do(http.MethodPost, "/api/v1/notes/refresh", nil)
	assert.Equal(t, []string{"a", "b"}, keys(decodeData[loadResp](t, resp).List))

	w, resp = env.do(http.MethodGet, "/api/v1/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a", "b"}, keys(decodeData[listResp](t, resp)))
}

func TestScreenReady_BadBody(t *testing.T) {
	env := seeded(t)

	w, resp := env.do(http.MethodPost, "/api/v1/notes/screen-ready", map[string]any{"viewport_height": -3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Errors, "viewport_height")
}

func TestStoreOutageIsBadGateway(t *testing.T) {
	store := memory.New()
	env := newTestEnv(t, brokenStore{Store: store}, store)

	w, resp := env.do(http.MethodPost, "/api/v1/notes/refresh", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, response.BadGatewayErrorCode, resp.ErrorCode)
}

func TestSave(t *testing.T) {
	t.Run("missing title is rejected inline", func(t *testing.T) {
		env := seeded(t)

		w, resp := env.do(http.MethodPost, "/api/v1/notes", saveReq{Photo: "aGVsbG8="})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp.Errors, "title")
		assert.Equal(t, 5, env.store.Len())
		assert.Zero(t, env.recorder.Len())
	})

	t.Run("undecodable photo", func(t *testing.T) {
		env := seeded(t)

		w, resp := env.do(http.MethodPost, "/api/v1/notes", saveReq{Title: "Lunch", Photo: "data:image/png,xyz"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp.Errors, "photo")
	})

	t.Run("half a position", func(t *testing.T) {
		env := seeded(t)
		lat := 40.4

		w, resp := env.do(http.MethodPost, "/api/v1/notes", saveReq{Title: "Lunch", Photo: "aGVsbG8=", Lat: &lat})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp.Errors, "position")
	})

	t.Run("malformed json", func(t *testing.T) {
		env := seeded(t)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("persists and refreshes", func(t *testing.T) {
		env := seeded(t)
		lat, lng := 40.4, -3.7

		w, resp := env.do(http.MethodPost, "/api/v1/notes", saveReq{
			Title:       "Lunch in Madrid",
			Description: "tapas",
			Photo:       "aGVsbG8=",
			Lat:         &lat,
			Lng:         &lng,
		})

		require.Equal(t, http.StatusOK, w.Code)
		saved := decodeData[saveResp](t, resp)
		assert.NotEmpty(t, saved.Note.Key)
		assert.Equal(t, "(40.4,-3.7)", saved.Note.Position)
		assert.True(t, strings.HasPrefix(saved.Note.Photo, "data:image/jpeg;base64,"))
		assert.Equal(t, 6, env.store.Len())
		assert.Equal(t, 1, env.recorder.Len())

		_, resp = env.do(http.MethodGet, "/api/v1/notes", nil)
		list := decodeData[listResp](t, resp)
		require.NotEmpty(t, list.Notes)
		assert.Equal(t, saved.Note.Key, list.Notes[0].Key)
	})
}

func TestEdit(t *testing.T) {
	env := seeded(t)
	env.do(http.MethodPost, "/api/v1/notes/refresh", nil)

	w, resp := env.do(http.MethodPut, "/api/v1/notes/b", editReq{Title: "renamed", Description: "new"})
	require.Equal(t, http.StatusOK, w.Code)
	out := decodeData[editResp](t, resp)
	assert.True(t, out.Patched)
	assert.Equal(t, "renamed", out.Note.Title)

	w, _ = env.do(http.MethodPut, "/api/v1/notes/b", editReq{Title: "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(http.MethodPut, "/api/v1/notes/missing", editReq{Title: "renamed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.NotFoundErrorCode, resp.ErrorCode)

	w, _ = env.do(http.MethodPost, "/api/v1/notes/b/cancel-edit", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, resp = env.do(http.MethodGet, "/api/v1/notes/notifications", nil)
	items := decodeData[[]notificationResp](t, resp)
	require.Len(t, items, 3)
	assert.Equal(t, string(notify.KindSuccess), items[0].Kind)
	assert.Equal(t, "b", items[0].NoteKey)
	assert.Equal(t, string(notify.KindFailure), items[1].Kind)
	assert.Equal(t, string(notify.KindInfo), items[2].Kind)
}

func TestRemove(t *testing.T) {
	env := seeded(t)
	env.do(http.MethodPost, "/api/v1/notes/refresh", nil)

	w, _ := env.do(http.MethodDelete, "/api/v1/notes/a", nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, resp := env.do(http.MethodGet, "/api/v1/notes", nil)
	assert.Equal(t, []string{"b"}, keys(decodeData[listResp](t, resp)))
	assert.Equal(t, 4, env.store.Len())

	w, _ = env.do(http.MethodDelete, "/api/v1/notes/a", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetail(t *testing.T) {
	store := memory.New()
	store.Seed(
		model.Note{Key: "madrid", Title: "Madrid", Photo: "p", Position: "(40.4,-3.7)"},
		model.Note{Key: "broken", Title: "Broken", Photo: "p", Position: "invalid"},
	)
	env := newTestEnv(t, store, store)

	w, resp := env.do(http.MethodGet, "/api/v1/notes/madrid/detail", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decodeData[detailResp](t, resp)
	require.NotNil(t, d.Marker)
	assert.Equal(t, 40.4, d.Marker.Lat)
	assert.Equal(t, -3.7, d.Marker.Lng)
	assert.Equal(t, 13, d.Zoom)
	assert.Equal(t, "https://tile.openstreetmap.org/13/4011/3089.png", d.TileURL)

	w, resp = env.do(http.MethodGet, "/api/v1/notes/broken/detail", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d = decodeData[detailResp](t, resp)
	assert.Nil(t, d.Marker)
	assert.Equal(t, "Broken", d.Note.Title)

	w, _ = env.do(http.MethodGet, "/api/v1/notes/nope/detail", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStream(t *testing.T) {
	env := seeded(t)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/notes/stream", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")

	sc := bufio.NewScanner(res.Body)
	var event, data string
	for sc.Scan() {
		line := sc.Text()
		if v, ok := strings.CutPrefix(line, "event:"); ok {
			event = v
		}
		if v, ok := strings.CutPrefix(line, "data:"); ok {
			data = v
			break
		}
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, "snapshot", event)

	var first listResp
	require.NoError(t, json.Unmarshal([]byte(data), &first))
	assert.False(t, first.Loaded)
	assert.Empty(t, first.Notes)
}
