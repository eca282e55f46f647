package detail

import (
	"context"

	"geonotes/pkg/geo"
)

// MapView is the map capability shown by the detail view.
type MapView interface {
	SetView(center geo.LatLng, zoom int) error
	AddMarker(p geo.LatLng) error
	// Remove releases the map. It must be safe to call more than once.
	Remove() error
}

// Speaker is the text-to-speech capability.
type Speaker interface {
	// Speak starts reading text aloud and returns without waiting for it to finish.
	Speak(ctx context.Context, text string) error
	// Cancel stops any speech in progress. It is a no-op when idle.
	Cancel() error
}

// Tiler is implemented by maps that can name the tile under their marker.
type Tiler interface {
	TileURL() string
}
