package detail

import (
	"geonotes/internal/model"
	"geonotes/pkg/geo"
)

// DefaultZoom matches the zoom the note screens always opened the map with.
const DefaultZoom = 13

// View is what the detail screen renders for one note.
type View struct {
	Note     model.Note  `json:"note"`
	Marker   *geo.LatLng `json:"marker,omitempty"` // Nil when the stored position does not parse
	Zoom     int         `json:"zoom,omitempty"`
	TileURL  string      `json:"tile_url,omitempty"`
	Speaking bool        `json:"speaking"`
}

// HasMarker reports whether the map shows the note's position.
func (v View) HasMarker() bool { return v.Marker != nil }
