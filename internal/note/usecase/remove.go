package usecase

import (
	"context"
	"errors"
	"fmt"

	"geonotes/internal/model"
	"geonotes/internal/note"
	"geonotes/internal/note/repository"
)

func (uc *implUseCase) Remove(ctx context.Context, key string) error {
	if key == "" {
		return &note.ValidationError{Fields: map[string]string{"key": "is required"}}
	}

	if err := uc.gw.Delete(ctx, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = fmt.Errorf("%w: %w", note.ErrNoteNotFound, err)
		}
		uc.l.Errorf(ctx, "note/usecase.Remove: %v", err)
		uc.notifier.Failure(ctx, msgDeleteFailed, err)
		return err
	}

	uc.agg.ApplyDelete(key)
	uc.notifier.Success(ctx, msgDeleted, &model.Note{Key: key})
	return nil
}
