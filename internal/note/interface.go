package note

import (
	"context"

	"geonotes/internal/model"
	"geonotes/pkg/geo"
)

// Aggregator merges cursor-paged fetches into one ordered, observable list.
// There is one Aggregator per process; every adapter receives the same instance.
//
//go:generate mockery --name Aggregator
type Aggregator interface {
	// ScreenReady recomputes the session page size from the viewport height and
	// loads the first page with it.
	ScreenReady(ctx context.Context, viewportHeight float64) (LoadResult, error)

	// LoadFirstPage replaces the list with the first page of the collection.
	LoadFirstPage(ctx context.Context, pageSize int) (LoadResult, error)

	// LoadNextPage appends the page after the current cursor. It is a no-op
	// when nothing more is available or a fetch is already in flight.
	LoadNextPage(ctx context.Context, pageSize int) (LoadResult, error)

	// ApplyCreate makes a newly persisted note visible by refreshing from the
	// first page. No optimistic insert is performed.
	ApplyCreate(ctx context.Context, n model.Note) (LoadResult, error)

	// ApplyUpdate replaces the entry with the same key in place.
	// It reports whether an entry was replaced.
	ApplyUpdate(n model.Note) bool

	// ApplyDelete removes the entry with the given key.
	// It reports whether an entry was removed.
	ApplyDelete(key string) bool

	// Snapshot returns a read-only copy of the current list state.
	Snapshot() Snapshot

	// PageSize returns the session page size.
	PageSize() int

	// Subscribe registers fn to receive every new snapshot.
	Subscribe(fn Observer) (cancel func())

	// Watch streams snapshots until ctx is done. Slow readers only see the latest.
	Watch(ctx context.Context) <-chan Snapshot
}

// Observer receives list snapshots. It must not block.
type Observer func(Snapshot)

// UseCase holds the user-facing capture, edit and delete flows. Each flow
// surfaces exactly one terminal notification, except validation failures,
// which are returned to the caller for inline feedback.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Save(ctx context.Context, input SaveInput) (SaveOutput, error)
	Edit(ctx context.Context, input EditInput) (EditOutput, error)
	Remove(ctx context.Context, key string) error
	CancelEdit(ctx context.Context, key string)

	// Find returns a note from the loaded list, falling back to the store.
	Find(ctx context.Context, key string) (model.Note, error)
}

// Geolocator is the platform geolocation capability.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (geo.LatLng, error)
}

// Camera is the platform photo capture capability.
type Camera interface {
	CapturePhoto(ctx context.Context) (Photo, error)
}
