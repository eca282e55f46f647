package model

import "geonotes/pkg/geo"

// Cursor is an opaque position in a remote note collection, pointing at the
// last record of a fetched page. The zero value means "undefined".
type Cursor string

// IsZero reports whether the cursor is undefined.
func (c Cursor) IsZero() bool { return c == "" }

// Note is a single captured note as stored in the remote collection.
type Note struct {
	Key         string `json:"key,omitempty"` // Assigned by the store on create; empty before persistence
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`               // Display string, defaults to creation time
	Photo       string `json:"photo"`              // Base64 data URL
	Position    string `json:"position,omitempty"` // "(lat,lng)"
}

// Persisted reports whether the store has assigned a key.
func (n Note) Persisted() bool { return n.Key != "" }

// LatLng parses the stored position. ok is false when absent or malformed.
func (n Note) LatLng() (geo.LatLng, bool) {
	if n.Position == "" {
		return geo.LatLng{}, false
	}
	return geo.Parse(n.Position)
}

// Page is one bounded batch of notes returned by a single fetch.
type Page struct {
	Notes []Note
	Last  Cursor // Cursor of the last raw record of the page
}

// IsLast reports whether nothing can follow this page: the store returned
// fewer records than requested.
func (p Page) IsLast(pageSize int) bool {
	return len(p.Notes) < pageSize
}
