package repository

import "geonotes/internal/model"

// FetchPageOptions holds the parameters of one page fetch.
type FetchPageOptions struct {
	After model.Cursor // Zero for the first page
	Limit int
}

// CreateNoteOptions holds the fields of a note to persist. The key is
// assigned by the store.
type CreateNoteOptions struct {
	Title       string
	Description string
	Date        string
	Photo       string // Base64 data URL
	Position    string // "(lat,lng)", optional
}

// Note builds the model the options describe under key.
func (o CreateNoteOptions) Note(key string) model.Note {
	return model.Note{
		Key:         key,
		Title:       o.Title,
		Description: o.Description,
		Date:        o.Date,
		Photo:       o.Photo,
		Position:    o.Position,
	}
}
