package usecase

import (
	"context"
	"errors"
	"fmt"

	"geonotes/internal/model"
	"geonotes/internal/note"
	"geonotes/internal/note/repository"
)

// Find returns the note from the loaded list, or from the store when it is
// not loaded.
func (uc *implUseCase) Find(ctx context.Context, key string) (model.Note, error) {
	snap := uc.agg.Snapshot()
	if i := snap.Index(key); i >= 0 {
		return snap.Notes[i], nil
	}

	n, err := uc.gw.GetNote(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Note{}, fmt.Errorf("%w: %w", note.ErrNoteNotFound, err)
		}
		return model.Note{}, err
	}
	return n, nil
}
