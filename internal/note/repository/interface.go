package repository

import (
	"context"

	"geonotes/internal/model"
)

// Gateway is the contract every remote note store satisfies.
// Failures surface as errors; the Gateway never retries on behalf of the caller.
//
//go:generate mockery --name Gateway
type Gateway interface {
	// FetchPage returns up to opt.Limit notes after opt.After, newest first.
	FetchPage(ctx context.Context, opt FetchPageOptions) (model.Page, error)
	// Create persists a new note and returns the key the store assigned.
	Create(ctx context.Context, opt CreateNoteOptions) (string, error)
	// Update overwrites the note with n.Key.
	Update(ctx context.Context, n model.Note) error
	Delete(ctx context.Context, key string) error
	GetNote(ctx context.Context, key string) (model.Note, error)
}

// Invalidator is implemented by gateways that cache reads. Callers that learn
// about a remote change drop the cached copy before reading it again.
type Invalidator interface {
	Invalidate(key string)
}
