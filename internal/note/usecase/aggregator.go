package usecase

import (
	"context"
	"sync"

	"geonotes/internal/model"
	"geonotes/internal/note"
	"geonotes/internal/note/repository"
	pkgLog "geonotes/pkg/log"
	"geonotes/pkg/metrics"
)

type implAggregator struct {
	l       pkgLog.Logger
	gw      repository.Gateway
	sizer   PageSizer
	metrics *metrics.Collector

	mu         sync.Mutex
	notes      []model.Note
	cursor     cursorTracker
	loaded     bool
	fetching   int    // fetches started and not yet returned
	generation uint64 // bumped by every first-page load
	version    uint64
	pageSize   int

	obsMu     sync.Mutex // serializes delivery
	observers map[uint64]note.Observer
	nextObsID uint64
	delivered uint64
}

// NewAggregator creates the note list aggregator. initialHeight seeds the
// session page size until the first screen-ready event. m may be nil.
func NewAggregator(l pkgLog.Logger, gw repository.Gateway, sizer PageSizer, initialHeight float64, m *metrics.Collector) note.Aggregator {
	return &implAggregator{
		l:         l,
		gw:        gw,
		sizer:     sizer,
		metrics:   m,
		pageSize:  sizer.PageSize(initialHeight),
		observers: make(map[uint64]note.Observer),
	}
}

func (a *implAggregator) PageSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pageSize
}

func (a *implAggregator) Snapshot() note.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

// snapshotLocked copies the list so published snapshots never alias it.
func (a *implAggregator) snapshotLocked() note.Snapshot {
	return note.Snapshot{
		Notes:         append(make([]model.Note, 0, len(a.notes)), a.notes...),
		MoreAvailable: a.cursor.canAdvance(),
		Loaded:        a.loaded,
		Version:       a.version,
	}
}

func (a *implAggregator) ApplyUpdate(n model.Note) bool {
	a.mu.Lock()
	idx := indexOf(a.notes, n.Key)
	if idx < 0 {
		a.mu.Unlock()
		return false
	}
	a.notes[idx] = n
	a.version++
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.publish(snap)
	return true
}

func (a *implAggregator) ApplyDelete(key string) bool {
	a.mu.Lock()
	idx := indexOf(a.notes, key)
	if idx < 0 {
		a.mu.Unlock()
		return false
	}
	a.notes = append(a.notes[:idx], a.notes[idx+1:]...)
	a.version++
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.publish(snap)
	return true
}

func (a *implAggregator) ApplyCreate(ctx context.Context, n model.Note) (note.LoadResult, error) {
	a.l.Debugf(ctx, "note/usecase.ApplyCreate: refreshing after create of %s", n.Key)
	return a.LoadFirstPage(ctx, a.PageSize())
}

func indexOf(notes []model.Note, key string) int {
	if key == "" {
		return -1
	}
	for i, n := range notes {
		if n.Key == key {
			return i
		}
	}
	return -1
}
