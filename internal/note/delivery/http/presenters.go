package http

import (
	"strings"
	"time"

	"geonotes/internal/detail"
	"geonotes/internal/model"
	"geonotes/internal/note"
	"geonotes/internal/notify"
	"geonotes/pkg/geo"
)

// --- Request DTOs ---

type screenReadyReq struct {
	ViewportHeight float64 `json:"viewport_height" binding:"required,gt=0"`
}

type saveReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Photo       string   `json:"photo"` // Data URL or bare base64
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
}

func (r saveReq) validate() error {
	if (r.Lat == nil) != (r.Lng == nil) {
		return &note.ValidationError{Fields: map[string]string{"position": "lat and lng must be sent together"}}
	}
	if r.Lat != nil && !(geo.LatLng{Lat: *r.Lat, Lng: *r.Lng}).Valid() {
		return &note.ValidationError{Fields: map[string]string{"position": "is out of range"}}
	}
	return nil
}

func (r saveReq) toInput() (note.SaveInput, error) {
	input := note.SaveInput{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
	}
	if strings.TrimSpace(r.Photo) != "" {
		p, err := note.ParsePhoto(r.Photo)
		if err != nil {
			return input, &note.ValidationError{Fields: map[string]string{"photo": "must be a base64 image or data URL"}}
		}
		input.Photo = &p
	}
	if r.Lat != nil {
		input.Position = &geo.LatLng{Lat: *r.Lat, Lng: *r.Lng}
	}
	return input, nil
}

type editReq struct {
	Key         string `json:"-"` // populated from URI param
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r editReq) toInput() note.EditInput {
	return note.EditInput{
		Key:         r.Key,
		Title:       r.Title,
		Description: r.Description,
	}
}

// --- Response DTOs ---

type noteResp struct {
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date"`
	Photo       string      `json:"photo"`
	Position    string      `json:"position,omitempty"`
	LatLng      *geo.LatLng `json:"lat_lng,omitempty"`
}

func newNoteResp(n model.Note) noteResp {
	resp := noteResp{
		Key:         n.Key,
		Title:       n.Title,
		Description: n.Description,
		Date:        n.Date,
		Photo:       n.Photo,
		Position:    n.Position,
	}
	if p, ok := n.LatLng(); ok {
		resp.LatLng = &p
	}
	return resp
}

type listResp struct {
	Notes         []noteResp `json:"notes"`
	MoreAvailable bool       `json:"more_available"`
	Loaded        bool       `json:"loaded"`
	Version       uint64     `json:"version"`
	PageSize      int        `json:"page_size"`
}

func (h *handler) newListResp(s note.Snapshot) listResp {
	notes := make([]noteResp, len(s.Notes))
	for i, n := range s.Notes {
		notes[i] = newNoteResp(n)
	}
	return listResp{
		Notes:         notes,
		MoreAvailable: s.MoreAvailable,
		Loaded:        s.Loaded,
		Version:       s.Version,
		PageSize:      h.agg.PageSize(),
	}
}

type loadResp struct {
	Skipped bool     `json:"skipped"`
	Stale   bool     `json:"stale"`
	Fetched int      `json:"fetched"`
	List    listResp `json:"list"`
}

func (h *handler) newLoadResp(res note.LoadResult) loadResp {
	return loadResp{
		Skipped: res.Skipped,
		Stale:   res.Stale,
		Fetched: res.Fetched,
		List:    h.newListResp(h.agg.Snapshot()),
	}
}

type saveResp struct {
	Note noteResp `json:"note"`
}

type editResp struct {
	Note    noteResp `json:"note"`
	Patched bool     `json:"patched"`
}

type detailResp struct {
	Note     noteResp    `json:"note"`
	Marker   *geo.LatLng `json:"marker,omitempty"`
	Zoom     int         `json:"zoom,omitempty"`
	TileURL  string      `json:"tile_url,omitempty"`
	Speaking bool        `json:"speaking"`
}

func newDetailResp(v detail.View) detailResp {
	return detailResp{
		Note:     newNoteResp(v.Note),
		Marker:   v.Marker,
		Zoom:     v.Zoom,
		TileURL:  v.TileURL,
		Speaking: v.Speaking,
	}
}

type notificationResp struct {
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	NoteKey string    `json:"note_key,omitempty"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

func newNotificationsResp(items []notify.Notification) []notificationResp {
	out := make([]notificationResp, len(items))
	for i, it := range items {
		out[i] = notificationResp{
			Kind:    string(it.Kind),
			Message: it.Message,
			Error:   it.Error,
			At:      it.At,
		}
		if it.Note != nil {
			out[i].NoteKey = it.Note.Key
		}
	}
	return out
}
