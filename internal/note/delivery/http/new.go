package http

import (
	"geonotes/internal/detail"
	"geonotes/internal/note"
	"geonotes/internal/notify"
	pkgLog "geonotes/pkg/log"
)

// Options configures the detail map served alongside the list.
type Options struct {
	MapZoom int
	TileURL string
}

type handler struct {
	l        pkgLog.Logger
	uc       note.UseCase
	agg      note.Aggregator
	recorder *notify.Recorder
	zoom     int
	tileURL  string
}

// New creates the HTTP handler for the note list and flows. recorder may be
// nil, in which case the notifications route returns an empty list.
func New(l pkgLog.Logger, uc note.UseCase, agg note.Aggregator, recorder *notify.Recorder, opt Options) *handler {
	if opt.MapZoom <= 0 {
		opt.MapZoom = detail.DefaultZoom
	}
	return &handler{
		l:        l,
		uc:       uc,
		agg:      agg,
		recorder: recorder,
		zoom:     opt.MapZoom,
		tileURL:  opt.TileURL,
	}
}
