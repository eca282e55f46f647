package usecase

import (
	"context"
	"sync"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	"geonotes/internal/note/repository/memory"
)

// Mock logger for testing
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

// fakeGateway wraps the in-memory store with call counting, error injection
// and per-call gates that hold a FetchPage until released.
type fakeGateway struct {
	*memory.Store

	mu         sync.Mutex
	fetchCalls int
	createCall int
	fetchErr   error
	createErr  error
	updateErr  error
	deleteErr  error
	gates      map[int]chan struct{} // FetchPage call number -> release
	entered    chan int
}

func newFakeGateway(titles ...string) *fakeGateway {
	g := &fakeGateway{Store: memory.New(), gates: make(map[int]chan struct{})}
	// The store returns newest first, so seed in reverse to read titles in order.
	for i := len(titles) - 1; i >= 0; i-- {
		g.Store.Seed(model.Note{Key: titles[i], Title: titles[i], Photo: "p"})
	}
	return g
}

// hold makes the n-th FetchPage call block until the returned func is called.
func (g *fakeGateway) hold(n int) (release func()) {
	ch := make(chan struct{})
	g.mu.Lock()
	g.gates[n] = ch
	if g.entered == nil {
		g.entered = make(chan int, 16)
	}
	g.mu.Unlock()
	return func() { close(ch) }
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fetchCalls
}

func (g *fakeGateway) FetchPage(ctx context.Context, opt repository.FetchPageOptions) (model.Page, error) {
	g.mu.Lock()
	g.fetchCalls++
	n := g.fetchCalls
	gate := g.gates[n]
	entered := g.entered
	err := g.fetchErr
	g.mu.Unlock()

	if entered != nil {
		entered <- n
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return model.Page{}, err
	}
	return g.Store.FetchPage(ctx, opt)
}

func (g *fakeGateway) Create(ctx context.Context, opt repository.CreateNoteOptions) (string, error) {
	g.mu.Lock()
	g.createCall++
	err := g.createErr
	g.mu.Unlock()
	if err != nil {
		return "", err
	}
	return g.Store.Create(ctx, opt)
}

func (g *fakeGateway) Update(ctx context.Context, n model.Note) error {
	if g.updateErr != nil {
		return g.updateErr
	}
	return g.Store.Update(ctx, n)
}

func (g *fakeGateway) Delete(ctx context.Context, key string) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	return g.Store.Delete(ctx, key)
}

func titles(notes []model.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
