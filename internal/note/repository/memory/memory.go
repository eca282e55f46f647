package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
)

type entry struct {
	seq  uint64
	note model.Note
}

// Store is an in-process Gateway. Notes are returned newest first and the
// cursor is the insertion sequence of the last note of a page, so deletes
// between fetches never shift later pages.
type Store struct {
	mu      sync.RWMutex
	seq     uint64
	entries map[string]entry
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

var _ repository.Gateway = (*Store)(nil)

// Seed inserts notes in order, oldest first, and returns their keys.
// Notes that already carry a key keep it.
func (s *Store) Seed(notes ...model.Note) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(notes))
	for _, n := range notes {
		if n.Key == "" {
			n.Key = uuid.NewString()
		}
		s.seq++
		s.entries[n.Key] = entry{seq: s.seq, note: n}
		keys = append(keys, n.Key)
	}
	return keys
}

// Len returns the number of stored notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) FetchPage(ctx context.Context, opt repository.FetchPageOptions) (model.Page, error) {
	if err := ctx.Err(); err != nil {
		return model.Page{}, fmt.Errorf("%w: %w", repository.ErrFailedToFetch, err)
	}
	if opt.Limit <= 0 {
		return model.Page{}, repository.ErrInvalidLimit
	}

	var after uint64
	if !opt.After.IsZero() {
		v, err := strconv.ParseUint(string(opt.After), 10, 64)
		if err != nil {
			return model.Page{}, fmt.Errorf("%w: %q", repository.ErrInvalidCursor, opt.After)
		}
		after = v
	}

	s.mu.RLock()
	ordered := make([]entry, 0, len(s.entries))
	for _, e := range s.entries {
		if after == 0 || e.seq < after {
			ordered = append(ordered, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].seq > ordered[j].seq })
	if len(ordered) > opt.Limit {
		ordered = ordered[:opt.Limit]
	}

	page := model.Page{Notes: make([]model.Note, 0, len(ordered))}
	for _, e := range ordered {
		page.Notes = append(page.Notes, e.note)
	}
	if len(ordered) > 0 {
		page.Last = model.Cursor(strconv.FormatUint(ordered[len(ordered)-1].seq, 10))
	}
	return page, nil
}

func (s *Store) Create(ctx context.Context, opt repository.CreateNoteOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", repository.ErrFailedToCreate, err)
	}
	return s.Seed(opt.Note(""))[0], nil
}

func (s *Store) Update(ctx context.Context, n model.Note) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrFailedToUpdate, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[n.Key]
	if !ok {
		return repository.ErrNotFound
	}
	e.note = n
	s.entries[n.Key] = e
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrFailedToDelete, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return repository.ErrNotFound
	}
	delete(s.entries, key)
	return nil
}

func (s *Store) GetNote(ctx context.Context, key string) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrFailedToGet, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return model.Note{}, repository.ErrNotFound
	}
	return e.note, nil
}
