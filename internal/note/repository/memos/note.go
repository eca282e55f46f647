package memos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	"geonotes/pkg/frontmatter"
	pkgLog "geonotes/pkg/log"
)

const defaultVisibility = "PRIVATE"

// Options configures the Memos gateway.
type Options struct {
	Visibility string // "PRIVATE" or "PUBLIC"
	CacheSize  int    // 0 disables the note cache
	CacheTTL   time.Duration
}

type implRepository struct {
	client     *Client
	visibility string
	cache      *expirable.LRU[string, model.Note]
	l          pkgLog.Logger
}

// New creates a Gateway backed by a Memos instance. Each note is one memo whose
// content is a YAML header (title, date, position, photo) followed by the
// description. The page cursor is the Memos page token.
func New(client *Client, opt Options, l pkgLog.Logger) repository.Gateway {
	visibility := opt.Visibility
	if visibility == "" {
		visibility = defaultVisibility
	}

	r := &implRepository{
		client:     client,
		visibility: visibility,
		l:          l,
	}
	if opt.CacheSize > 0 {
		r.cache = expirable.NewLRU[string, model.Note](opt.CacheSize, nil, opt.CacheTTL)
	}
	return r
}

var (
	_ repository.Gateway     = (*implRepository)(nil)
	_ repository.Invalidator = (*implRepository)(nil)
)

func (r *implRepository) FetchPage(ctx context.Context, opt repository.FetchPageOptions) (model.Page, error) {
	if opt.Limit <= 0 {
		return model.Page{}, repository.ErrInvalidLimit
	}

	resp, err := r.client.ListMemos(ctx, opt.Limit, string(opt.After))
	if err != nil {
		r.l.Errorf(ctx, "note/repository/memos.FetchPage: %v", err)
		return model.Page{}, fmt.Errorf("%w: %w", repository.ErrFailedToFetch, err)
	}

	page := model.Page{
		Notes: make([]model.Note, 0, len(resp.Memos)),
		Last:  model.Cursor(resp.NextPageToken),
	}
	for i := range resp.Memos {
		n := r.memoToNote(ctx, &resp.Memos[i])
		r.remember(n)
		page.Notes = append(page.Notes, n)
	}
	return page, nil
}

func (r *implRepository) Create(ctx context.Context, opt repository.CreateNoteOptions) (string, error) {
	content, err := encodeContent(opt.Note(""))
	if err != nil {
		return "", fmt.Errorf("%w: %w", repository.ErrFailedToCreate, err)
	}

	memo, err := r.client.CreateMemo(ctx, CreateMemoRequest{
		Content:    content,
		Visibility: r.visibility,
	})
	if err != nil {
		r.l.Errorf(ctx, "note/repository/memos.Create: %v", err)
		return "", fmt.Errorf("%w: %w", repository.ErrFailedToCreate, err)
	}

	n := r.memoToNote(ctx, memo)
	if n.Key == "" {
		return "", fmt.Errorf("%w: memo response carries no uid", repository.ErrFailedToCreate)
	}
	r.remember(n)
	return n.Key, nil
}

func (r *implRepository) Update(ctx context.Context, n model.Note) error {
	content, err := encodeContent(n)
	if err != nil {
		return fmt.Errorf("%w: %w", repository.ErrFailedToUpdate, err)
	}

	if _, err := r.client.UpdateMemo(ctx, n.Key, UpdateMemoRequest{
		Content:    content,
		UpdateMask: "content",
	}); err != nil {
		r.Invalidate(n.Key)
		if errors.Is(err, ErrMemoNotFound) {
			return repository.ErrNotFound
		}
		r.l.Errorf(ctx, "note/repository/memos.Update: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToUpdate, err)
	}

	r.remember(n)
	return nil
}

func (r *implRepository) Delete(ctx context.Context, key string) error {
	r.Invalidate(key)

	if err := r.client.DeleteMemo(ctx, key); err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return repository.ErrNotFound
		}
		r.l.Errorf(ctx, "note/repository/memos.Delete: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToDelete, err)
	}
	return nil
}

func (r *implRepository) GetNote(ctx context.Context, key string) (model.Note, error) {
	if r.cache != nil {
		if n, ok := r.cache.Get(key); ok {
			return n, nil
		}
	}

	memo, err := r.client.GetMemo(ctx, key)
	if err != nil {
		if errors.Is(err, ErrMemoNotFound) {
			return model.Note{}, repository.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrFailedToGet, err)
	}

	n := r.memoToNote(ctx, memo)
	r.remember(n)
	return n, nil
}

// Invalidate drops key from the note cache.
func (r *implRepository) Invalidate(key string) {
	if r.cache != nil {
		r.cache.Remove(key)
	}
}

func (r *implRepository) remember(n model.Note) {
	if r.cache != nil && n.Key != "" {
		r.cache.Add(n.Key, n)
	}
}

// memoToNote converts a Memos API Memo object to the internal model.Note.
// Memos written by other clients carry no header; they degrade to a note whose
// title is the first line of the content.
func (r *implRepository) memoToNote(ctx context.Context, m *Memo) model.Note {
	uid := m.UID
	// Name format is "memos/{uid}" from the Memos v1 API
	if uid == "" && m.Name != "" {
		if _, after, ok := strings.Cut(m.Name, "/"); ok {
			uid = after
		}
	}

	var meta noteMeta
	body, err := frontmatter.Decode([]byte(m.Content), &meta)
	if err != nil {
		if !errors.Is(err, frontmatter.ErrNoFrontmatter) {
			r.l.Warnf(ctx, "note/repository/memos.memoToNote: memo %s has a malformed header: %v", uid, err)
		}
		title, rest, _ := strings.Cut(strings.TrimSpace(m.Content), "\n")
		meta = noteMeta{Title: strings.TrimSpace(strings.TrimLeft(title, "# "))}
		body = strings.TrimSpace(rest)
	}

	date := meta.Date
	if date == "" {
		date = m.CreateTime
	}

	return model.Note{
		Key:         uid,
		Title:       meta.Title,
		Description: body,
		Date:        date,
		Photo:       meta.Photo,
		Position:    meta.Position,
	}
}

type noteMeta struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date,omitempty"`
	Position string `yaml:"position,omitempty"`
	Photo    string `yaml:"photo,omitempty"`
}

func encodeContent(n model.Note) (string, error) {
	raw, err := frontmatter.Encode(noteMeta{
		Title:    n.Title,
		Date:     n.Date,
		Position: n.Position,
		Photo:    n.Photo,
	}, n.Description)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
