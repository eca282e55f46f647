package usecase

import (
	"time"

	"github.com/go-playground/validator/v10"

	"geonotes/internal/note"
	"geonotes/internal/note/repository"
	"geonotes/internal/notify"
	pkgLog "geonotes/pkg/log"
)

// DateLayout formats the default note date.
const DateLayout = "2006-01-02 15:04:05"

type implUseCase struct {
	l          pkgLog.Logger
	gw         repository.Gateway
	agg        note.Aggregator
	notifier   notify.Notifier
	geolocator note.Geolocator
	validate   *validator.Validate
	now        func() time.Time
}

// New creates the note flows. geolocator may be nil, in which case notes
// without an explicit position are saved without one.
func New(
	l pkgLog.Logger,
	gw repository.Gateway,
	agg note.Aggregator,
	notifier notify.Notifier,
	geolocator note.Geolocator,
) note.UseCase {
	return &implUseCase{
		l:          l,
		gw:         gw,
		agg:        agg,
		notifier:   notifier,
		geolocator: geolocator,
		validate:   newValidator(),
		now:        time.Now,
	}
}

// User-facing messages.
const (
	msgSaved         = "Note saved"
	msgSaveFailed    = "Failed to save note"
	msgEdited        = "Note edited"
	msgEditFailed    = "Failed to edit note"
	msgEditCancelled = "Edit cancelled"
	msgDeleted       = "Note deleted"
	msgDeleteFailed  = "Failed to delete note"
)
