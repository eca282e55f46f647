package postgre

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	pkgLog "geonotes/pkg/log"
)

type row struct {
	seq  int64
	note model.Note
}

// fakeDB answers the gateway's fixed statements from an in-memory table.
type fakeDB struct {
	rows    []row
	seq     int64
	execErr error
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	sorted := append([]row(nil), f.rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].seq > sorted[j].seq })

	var (
		limit int
		after int64
	)
	switch sql {
	case firstPageSQL:
		limit = args[0].(int)
	case nextPageSQL:
		after, limit = args[0].(int64), args[1].(int)
	default:
		return nil, errors.New("unexpected query: " + sql)
	}

	out := &fakeRows{}
	for _, r := range sorted {
		if after > 0 && r.seq >= after {
			continue
		}
		if len(out.rows) == limit {
			break
		}
		out.rows = append(out.rows, r)
	}
	return out, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	for _, r := range f.rows {
		if r.note.Key == args[0].(string) {
			return &fakeRows{rows: []row{r}, pos: 0}
		}
	}
	return &fakeRows{pos: 0}
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	note := func() model.Note {
		return model.Note{
			Key: args[0].(string), Title: args[1].(string), Description: args[2].(string),
			Date: args[3].(string), Photo: args[4].(string), Position: args[5].(string),
		}
	}

	switch sql {
	case insertSQL:
		f.seq++
		f.rows = append(f.rows, row{seq: f.seq, note: note()})
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case updateSQL:
		for i := range f.rows {
			if f.rows[i].note.Key == args[0] {
				f.rows[i].note = note()
				return pgconn.NewCommandTag("UPDATE 1"), nil
			}
		}
		return pgconn.NewCommandTag("UPDATE 0"), nil
	case deleteSQL:
		for i := range f.rows {
			if f.rows[i].note.Key == args[0] {
				f.rows = append(f.rows[:i], f.rows[i+1:]...)
				return pgconn.NewCommandTag("DELETE 1"), nil
			}
		}
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	return pgconn.CommandTag{}, errors.New("unexpected exec: " + sql)
}

type fakeRows struct {
	rows []row
	pos  int
	next int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.next >= len(r.rows) {
		return false
	}
	r.pos = r.next
	r.next++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.pos >= len(r.rows) {
		return pgx.ErrNoRows
	}
	cur := r.rows[r.pos]
	*dest[0].(*int64) = cur.seq
	*dest[1].(*string) = cur.note.Key
	*dest[2].(*string) = cur.note.Title
	*dest[3].(*string) = cur.note.Description
	*dest[4].(*string) = cur.note.Date
	*dest[5].(*string) = cur.note.Photo
	*dest[6].(*string) = cur.note.Position
	return nil
}

func TestCursor(t *testing.T) {
	c := EncodeCursor(42)
	seq, err := DecodeCursor(c)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)

	for _, bad := range []model.Cursor{"***", EncodeCursor(0), model.Cursor("YWJj")} {
		_, err := DecodeCursor(bad)
		assert.ErrorIs(t, err, repository.ErrInvalidCursor, string(bad))
	}
}

func TestRepository_Pages(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{}
	repo := New(db, pkgLog.NewNop())

	for _, title := range []string{"one", "two", "three"} {
		_, err := repo.Create(ctx, repository.CreateNoteOptions{Title: title, Photo: "p"})
		require.NoError(t, err)
	}

	first, err := repo.FetchPage(ctx, repository.FetchPageOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Notes, 2)
	assert.Equal(t, "three", first.Notes[0].Title)
	assert.Equal(t, "two", first.Notes[1].Title)

	second, err := repo.FetchPage(ctx, repository.FetchPageOptions{After: first.Last, Limit: 2})
	require.NoError(t, err)
	require.Len(t, second.Notes, 1)
	assert.Equal(t, "one", second.Notes[0].Title)
	assert.True(t, second.IsLast(2))

	_, err = repo.FetchPage(ctx, repository.FetchPageOptions{After: "not-a-cursor!", Limit: 2})
	assert.ErrorIs(t, err, repository.ErrInvalidCursor)
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{}
	repo := New(db, pkgLog.NewNop())

	key, err := repo.Create(ctx, repository.CreateNoteOptions{Title: "Pier", Photo: "p", Position: "(1,2)"})
	require.NoError(t, err)

	n, err := repo.GetNote(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "(1,2)", n.Position)

	n.Title = "Pier at noon"
	require.NoError(t, repo.Update(ctx, n))
	n, err = repo.GetNote(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Pier at noon", n.Title)

	require.NoError(t, repo.Delete(ctx, key))
	assert.ErrorIs(t, repo.Delete(ctx, key), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, n), repository.ErrNotFound)
	_, err = repo.GetNote(ctx, key)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRepository_MapError(t *testing.T) {
	ctx := context.Background()

	db := &fakeDB{execErr: &pgconn.PgError{Code: pgerrcode.CheckViolation, Message: "title too short"}}
	repo := New(db, pkgLog.NewNop())
	_, err := repo.Create(ctx, repository.CreateNoteOptions{})
	assert.ErrorIs(t, err, repository.ErrFailedToCreate)
	assert.ErrorIs(t, err, repository.ErrRejected)

	db.execErr = &pgconn.PgError{Code: pgerrcode.ConnectionFailure}
	err = repo.Delete(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrFailedToDelete)
	assert.NotErrorIs(t, err, repository.ErrRejected)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost/db", migrateURL("postgres://u:p@localhost/db"))
	assert.Equal(t, "pgx5://localhost/db", migrateURL("postgresql://localhost/db"))
	assert.Equal(t, "pgx5://localhost/db", migrateURL("pgx5://localhost/db"))
}

// TestRepository_Integration runs against a real database when
// GEONOTES_TEST_POSTGRES_DSN is set.
func TestRepository_Integration(t *testing.T) {
	dsn := os.Getenv("GEONOTES_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("GEONOTES_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	require.NoError(t, Migrate(dsn))
	pool, err := Connect(ctx, dsn, 2)
	require.NoError(t, err)
	defer pool.Close()

	repo := New(pool, pkgLog.NewNop())
	key, err := repo.Create(ctx, repository.CreateNoteOptions{Title: "Integration", Photo: "p"})
	require.NoError(t, err)
	defer repo.Delete(ctx, key)

	page, err := repo.FetchPage(ctx, repository.FetchPageOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Notes, 1)
	assert.Equal(t, key, page.Notes[0].Key)
}
