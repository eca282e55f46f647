package usecase

import (
	"context"
	"strings"

	"geonotes/internal/note"
	"geonotes/internal/note/repository"
	"geonotes/pkg/geo"
)

func (uc *implUseCase) Save(ctx context.Context, input note.SaveInput) (note.SaveOutput, error) {
	photo := ""
	if input.Photo != nil && len(input.Photo.Data) > 0 {
		photo = input.Photo.DataURL()
	}

	title := strings.TrimSpace(input.Title)
	if err := uc.check(saveForm{Title: title, Photo: photo}); err != nil {
		return note.SaveOutput{}, err
	}

	opt := repository.CreateNoteOptions{
		Title:       title,
		Description: input.Description,
		Date:        input.Date,
		Photo:       photo,
		Position:    uc.resolvePosition(ctx, input.Position),
	}
	if opt.Date == "" {
		opt.Date = uc.now().Format(DateLayout)
	}

	key, err := uc.gw.Create(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "note/usecase.Save: %v", err)
		uc.notifier.Failure(ctx, msgSaveFailed, err)
		return note.SaveOutput{}, err
	}

	created := opt.Note(key)
	uc.notifier.Success(ctx, msgSaved, &created)

	if _, err := uc.agg.ApplyCreate(ctx, created); err != nil {
		uc.l.Warnf(ctx, "note/usecase.Save: refresh after create of %s: %v", key, err)
	}

	return note.SaveOutput{Key: key, Note: created}, nil
}

// resolvePosition prefers the caller's coordinates and falls back to the
// geolocator. Any failure means the note has no position.
func (uc *implUseCase) resolvePosition(ctx context.Context, p *geo.LatLng) string {
	if p != nil {
		if p.Valid() {
			return geo.Format(*p)
		}
		uc.l.Warnf(ctx, "note/usecase.resolvePosition: ignoring invalid position %v", *p)
		return ""
	}

	if uc.geolocator == nil {
		return ""
	}
	pos, err := uc.geolocator.CurrentPosition(ctx)
	if err != nil {
		uc.l.Warnf(ctx, "note/usecase.resolvePosition: geolocation unavailable: %v", err)
		return ""
	}
	if !pos.Valid() {
		return ""
	}
	return geo.Format(pos)
}
