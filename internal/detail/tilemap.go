package detail

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"geonotes/pkg/geo"
)

// DefaultTileURL is the OpenStreetMap raster tile template.
const DefaultTileURL = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"

// TileMap is a headless MapView that resolves the slippy-map tile holding its
// marker.
type TileMap struct {
	template string

	mu      sync.Mutex
	center  *geo.LatLng
	zoom    int
	markers []geo.LatLng
	removed bool
}

// NewTileMap returns a map rendering tiles from template, which may use the
// {z}, {x} and {y} placeholders.
func NewTileMap(template string) *TileMap {
	if template == "" {
		template = DefaultTileURL
	}
	return &TileMap{template: template}
}

func (m *TileMap) SetView(center geo.LatLng, zoom int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = &center
	m.zoom = zoom
	m.removed = false
	return nil
}

func (m *TileMap) AddMarker(p geo.LatLng) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markers = append(m.markers, p)
	return nil
}

func (m *TileMap) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = nil
	m.markers = nil
	m.removed = true
	return nil
}

// Markers returns the markers currently placed.
func (m *TileMap) Markers() []geo.LatLng {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]geo.LatLng, len(m.markers))
	copy(out, m.markers)
	return out
}

// Removed reports whether the map has been released.
func (m *TileMap) Removed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removed
}

// TileURL returns the tile under the view centre, or "" before SetView.
func (m *TileMap) TileURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.center == nil {
		return ""
	}
	x, y := Tile(*m.center, m.zoom)
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(m.zoom),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	)
	return r.Replace(m.template)
}

// Tile converts p to Web Mercator tile indices at zoom.
func Tile(p geo.LatLng, zoom int) (x, y int) {
	n := math.Exp2(float64(zoom))
	lat := p.Lat * math.Pi / 180

	x = int(math.Floor((p.Lng + 180) / 360 * n))
	y = int(math.Floor((1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * n))

	max := int(n) - 1
	x = clamp(x, 0, max)
	y = clamp(y, 0, max)
	return x, y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
