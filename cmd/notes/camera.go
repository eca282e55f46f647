package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"geonotes/internal/note"
)

// fileCamera "captures" a photo by reading an image file.
type fileCamera struct {
	path string
}

func (c fileCamera) CapturePhoto(ctx context.Context) (note.Photo, error) {
	if c.path == "" {
		return note.Photo{}, fmt.Errorf("no photo selected")
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return note.Photo{}, err
	}
	if len(data) == 0 {
		return note.Photo{}, fmt.Errorf("%s is empty", c.path)
	}
	m := mime.TypeByExtension(filepath.Ext(c.path))
	if !strings.HasPrefix(m, "image/") {
		m = "" // sniffed from the bytes
	}
	return note.Photo{Data: data, MIMEType: m}, nil
}
