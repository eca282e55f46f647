package note

import (
	"geonotes/internal/model"
	"geonotes/pkg/geo"
)

// --- Aggregator state ---

// Snapshot is a read-only view of the Aggregate List.
type Snapshot struct {
	Notes         []model.Note `json:"notes"`
	MoreAvailable bool         `json:"more_available"`
	Loaded        bool         `json:"loaded"`  // A first page has been applied
	Version       uint64       `json:"version"` // Increases on every mutation
}

// Len returns the number of loaded notes.
func (s Snapshot) Len() int { return len(s.Notes) }

// Index returns the position of key in the snapshot, or -1.
func (s Snapshot) Index(key string) int {
	for i, n := range s.Notes {
		if n.Key == key {
			return i
		}
	}
	return -1
}

// LoadResult describes what a load call did.
type LoadResult struct {
	Skipped       bool `json:"skipped"` // Gateway was not called
	Stale         bool `json:"stale"`   // Result arrived after a newer refresh and was dropped
	Fetched       int  `json:"fetched"`
	MoreAvailable bool `json:"more_available"`
}

// --- UseCase Inputs ---

type SaveInput struct {
	Title       string
	Description string
	Date        string      // Optional; defaults to the current time
	Photo       *Photo      // Required
	Position    *geo.LatLng // Optional; falls back to the Geolocator
}

type EditInput struct {
	Key         string
	Title       string
	Description string
}

// --- UseCase Outputs ---

type SaveOutput struct {
	Key  string
	Note model.Note
}

type EditOutput struct {
	Note    model.Note
	Patched bool // The note was in the loaded list and was replaced
}
