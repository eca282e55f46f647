package usecase

import (
	"context"
	"fmt"

	"geonotes/internal/model"
	"geonotes/internal/note"
	"geonotes/internal/note/repository"
)

const (
	loadFirst = "first"
	loadNext  = "next"
)

func (a *implAggregator) ScreenReady(ctx context.Context, viewportHeight float64) (note.LoadResult, error) {
	size := a.sizer.PageSize(viewportHeight)

	a.mu.Lock()
	a.pageSize = size
	a.mu.Unlock()

	a.l.Debugf(ctx, "note/usecase.ScreenReady: viewport=%.0f page_size=%d", viewportHeight, size)
	return a.LoadFirstPage(ctx, size)
}

func (a *implAggregator) LoadFirstPage(ctx context.Context, pageSize int) (note.LoadResult, error) {
	if pageSize <= 0 {
		return note.LoadResult{}, note.ErrInvalidPageSize
	}

	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.fetching++
	a.mu.Unlock()

	page, err := a.gw.FetchPage(ctx, repository.FetchPageOptions{Limit: pageSize})
	return a.apply(ctx, loadFirst, gen, pageSize, page, err)
}

func (a *implAggregator) LoadNextPage(ctx context.Context, pageSize int) (note.LoadResult, error) {
	if pageSize <= 0 {
		return note.LoadResult{}, note.ErrInvalidPageSize
	}

	a.mu.Lock()
	if !a.loaded || !a.cursor.canAdvance() || a.fetching > 0 {
		res := note.LoadResult{Skipped: true, MoreAvailable: a.cursor.canAdvance()}
		a.mu.Unlock()
		a.countLoad(loadNext, "skipped")
		return res, nil
	}
	gen := a.generation
	after := a.cursor.last
	a.fetching++
	a.mu.Unlock()

	page, err := a.gw.FetchPage(ctx, repository.FetchPageOptions{After: after, Limit: pageSize})
	return a.apply(ctx, loadNext, gen, pageSize, page, err)
}

// apply merges a completed fetch into the list: replacing it for a first page,
// appending for a next page. Results from an older generation are dropped.
func (a *implAggregator) apply(ctx context.Context, kind string, gen uint64, pageSize int, page model.Page, fetchErr error) (note.LoadResult, error) {
	a.mu.Lock()
	a.fetching--

	if fetchErr != nil {
		more := a.cursor.canAdvance()
		a.mu.Unlock()
		a.l.Errorf(ctx, "note/usecase.apply: %s page: %v", kind, fetchErr)
		a.countLoad(kind, "error")
		return note.LoadResult{MoreAvailable: more}, fmt.Errorf("load %s page: %w", kind, fetchErr)
	}

	if current := a.generation; gen != current {
		more := a.cursor.canAdvance()
		a.mu.Unlock()
		a.l.Infof(ctx, "note/usecase.apply: dropping stale %s page (generation %d, current %d)", kind, gen, current)
		a.countLoad(kind, "stale")
		if a.metrics != nil {
			a.metrics.StaleDrops.Inc()
		}
		return note.LoadResult{Stale: true, Fetched: len(page.Notes), MoreAvailable: more}, nil
	}

	if kind == loadFirst {
		a.notes = append(make([]model.Note, 0, len(page.Notes)), page.Notes...)
		a.loaded = true
	} else {
		a.notes = append(a.notes, page.Notes...)
	}
	a.cursor.advance(page, pageSize)
	a.version++
	snap := a.snapshotLocked()
	a.mu.Unlock()

	a.countLoad(kind, "applied")
	a.publish(snap)
	return note.LoadResult{Fetched: len(page.Notes), MoreAvailable: snap.MoreAvailable}, nil
}

func (a *implAggregator) countLoad(kind, outcome string) {
	if a.metrics != nil {
		a.metrics.PageLoads.WithLabelValues(kind, outcome).Inc()
	}
}
