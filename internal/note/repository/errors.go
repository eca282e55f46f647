package repository

import "errors"

var (
	ErrNotFound      = errors.New("note not found in store")
	ErrInvalidCursor = errors.New("invalid page cursor")
	ErrInvalidLimit  = errors.New("page limit must be positive")
	ErrRejected      = errors.New("note rejected by store")

	ErrFailedToFetch  = errors.New("failed to fetch notes")
	ErrFailedToCreate = errors.New("failed to create note")
	ErrFailedToUpdate = errors.New("failed to update note")
	ErrFailedToDelete = errors.New("failed to delete note")
	ErrFailedToGet    = errors.New("failed to get note")
)
