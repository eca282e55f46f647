package note

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
)

const defaultPhotoMIME = "image/jpeg"

// Photo is a captured image.
type Photo struct {
	Data     []byte
	MIMEType string
}

// DataURL encodes the photo the way it is persisted on a note.
func (p Photo) DataURL() string {
	mime := p.MIMEType
	if mime == "" {
		mime = http.DetectContentType(p.Data)
		if !strings.HasPrefix(mime, "image/") {
			mime = defaultPhotoMIME
		}
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// ParsePhoto accepts either a base64 data URL or bare base64 image bytes.
func ParsePhoto(s string) (Photo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Photo{}, ErrInvalidPhoto
	}

	mime := ""
	payload := s
	if strings.HasPrefix(s, "data:") {
		meta, data, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
		if !ok || !strings.HasSuffix(meta, ";base64") {
			return Photo{}, ErrInvalidPhoto
		}
		mime = strings.TrimSuffix(meta, ";base64")
		payload = data
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return Photo{}, ErrInvalidPhoto
	}
	return Photo{Data: raw, MIMEType: mime}, nil
}

// CapturePhoto asks cam for a photo. Any failure means "no photo selected".
func CapturePhoto(ctx context.Context, cam Camera) *Photo {
	if cam == nil {
		return nil
	}
	p, err := cam.CapturePhoto(ctx)
	if err != nil || len(p.Data) == 0 {
		return nil
	}
	return &p
}
