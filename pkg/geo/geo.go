// Package geo handles the "(lat,lng)" position strings stored on notes.
package geo

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedPosition is returned by ParseStrict when s is not "(lat,lng)".
var ErrMalformedPosition = errors.New("malformed position")

// positionPattern captures the two members of "(lat,lng)". It is deliberately
// unanchored: stored strings written by older clients look like
// "LatLng(40.4, -3.7)".
var positionPattern = regexp.MustCompile(`\(([^,()]+),([^()]+)\)`)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair is finite and inside the WGS84 ranges.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// String formats p the way it is persisted.
func (p LatLng) String() string {
	return Format(p)
}

// Format renders p as "(lat,lng)" with the shortest exact float form.
func Format(p LatLng) string {
	return "(" + strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64) + ")"
}

// Parse extracts the coordinate pair from s. It never panics; ok is false
// when s does not match or a member is not a valid coordinate.
func Parse(s string) (LatLng, bool) {
	p, err := ParseStrict(s)
	return p, err == nil
}

// ParseStrict is Parse with a descriptive error.
func ParseStrict(s string) (LatLng, error) {
	m := positionPattern.FindStringSubmatch(s)
	if m == nil {
		return LatLng{}, ErrMalformedPosition
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)
	if err != nil {
		return LatLng{}, errors.Join(ErrMalformedPosition, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(m[2]), 64)
	if err != nil {
		return LatLng{}, errors.Join(ErrMalformedPosition, err)
	}

	p := LatLng{Lat: lat, Lng: lng}
	if !p.Valid() {
		return LatLng{}, ErrMalformedPosition
	}
	return p, nil
}
