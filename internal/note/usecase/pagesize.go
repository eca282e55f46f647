package usecase

import "math"

// PageSizer derives the session page size from the viewport height.
type PageSizer struct {
	RowHeight float64
	Max       int // 0 means unbounded
}

// PageSize returns round(viewportHeight / RowHeight), at least 1 and at most Max.
func (s PageSizer) PageSize(viewportHeight float64) int {
	if s.RowHeight <= 0 || math.IsNaN(viewportHeight) || viewportHeight <= 0 {
		return 1
	}

	n := math.Round(viewportHeight / s.RowHeight)
	if s.Max > 0 && n > float64(s.Max) {
		return s.Max
	}
	if n < 1 {
		return 1
	}
	return int(n)
}
