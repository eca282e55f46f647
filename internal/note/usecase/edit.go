package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"geonotes/internal/note"
	"geonotes/internal/note/repository"
)

func (uc *implUseCase) Edit(ctx context.Context, input note.EditInput) (note.EditOutput, error) {
	title := strings.TrimSpace(input.Title)
	if err := uc.check(editForm{Key: input.Key, Title: title}); err != nil {
		return note.EditOutput{}, err
	}

	current, err := uc.Find(ctx, input.Key)
	if err != nil {
		uc.l.Errorf(ctx, "note/usecase.Edit: find %s: %v", input.Key, err)
		uc.notifier.Failure(ctx, msgEditFailed, err)
		return note.EditOutput{}, err
	}

	updated := current
	updated.Title = title
	updated.Description = input.Description

	if err := uc.gw.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = fmt.Errorf("%w: %w", note.ErrNoteNotFound, err)
		}
		uc.l.Errorf(ctx, "note/usecase.Edit: %v", err)
		uc.notifier.Failure(ctx, msgEditFailed, err)
		return note.EditOutput{}, err
	}

	patched := uc.agg.ApplyUpdate(updated)
	uc.notifier.Success(ctx, msgEdited, &updated)
	return note.EditOutput{Note: updated, Patched: patched}, nil
}

func (uc *implUseCase) CancelEdit(ctx context.Context, key string) {
	uc.l.Debugf(ctx, "note/usecase.CancelEdit: %s", key)
	uc.notifier.Info(ctx, msgEditCancelled)
}
