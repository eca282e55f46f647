package usecase

import "geonotes/internal/model"

// cursorTracker remembers where the next page starts.
type cursorTracker struct {
	last model.Cursor
	more bool
}

// advance records the outcome of an applied fetch. A short page, or a store
// that reports no position after a full one, ends the collection.
func (c *cursorTracker) advance(p model.Page, pageSize int) {
	if p.IsLast(pageSize) || p.Last.IsZero() {
		c.last = ""
		c.more = false
		return
	}
	c.last = p.Last
	c.more = true
}

func (c *cursorTracker) canAdvance() bool {
	return c.more && !c.last.IsZero()
}
