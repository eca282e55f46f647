package detail

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"geonotes/internal/model"
	pkgLog "geonotes/pkg/log"
)

// Coordinator owns the map and speech resources of one visible detail view.
type Coordinator struct {
	l    pkgLog.Logger
	m    MapView
	s    Speaker
	zoom int

	mu   sync.Mutex
	open bool
}

// New builds a Coordinator. Either capability may be nil when the platform
// lacks it.
func New(l pkgLog.Logger, m MapView, s Speaker, zoom int) *Coordinator {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &Coordinator{l: l, m: m, s: s, zoom: zoom}
}

// Open renders n. A malformed position drops the marker and is logged; the
// rest of the view still renders. Speech starts when a Speaker is present and
// the description is not empty.
func (c *Coordinator) Open(ctx context.Context, n model.Note) View {
	c.mu.Lock()
	if c.open {
		c.l.Warnf(ctx, "detail.Open: %v: key=%s", ErrAlreadyOpen, n.Key)
	}
	c.open = true
	c.mu.Unlock()

	v := View{Note: n}

	if p, ok := n.LatLng(); ok {
		if c.m != nil {
			if err := c.m.SetView(p, c.zoom); err != nil {
				c.l.Warnf(ctx, "detail.Open.SetView: %v", err)
			} else if err := c.m.AddMarker(p); err != nil {
				c.l.Warnf(ctx, "detail.Open.AddMarker: %v", err)
			} else {
				v.Marker = &p
				v.Zoom = c.zoom
				if t, ok := c.m.(Tiler); ok {
					v.TileURL = t.TileURL()
				}
			}
		} else {
			v.Marker = &p
			v.Zoom = c.zoom
		}
	} else if n.Position != "" {
		c.l.Warnf(ctx, "detail.Open: unparseable position %q for note %s, rendering without marker", n.Position, n.Key)
	}

	if c.s != nil && n.Description != "" {
		if err := c.s.Speak(ctx, n.Description); err != nil {
			c.l.Warnf(ctx, "detail.Open.Speak: %v", err)
		} else {
			v.Speaking = true
		}
	}

	return v
}

// Close releases the map and cancels speech. Both always run; their errors
// are joined.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()

	var errs []error
	if c.m != nil {
		errs = append(errs, release("map", c.m.Remove))
	}
	if c.s != nil {
		errs = append(errs, release("speech", c.s.Cancel))
	}
	return errors.Join(errs...)
}

// release runs fn and turns a panic into an error so the next release still
// runs.
func release(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("detail: release %s: panic: %v", name, r)
		}
	}()
	return fn()
}
