package postgre

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"geonotes/internal/model"
	"geonotes/internal/note/repository"
	pkgLog "geonotes/pkg/log"
)

// DB is the subset of pgxpool.Pool the gateway uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type implRepository struct {
	db DB
	l  pkgLog.Logger
}

// Connect opens a connection pool and checks it with a ping.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgre: parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgre: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgre: ping: %w", err)
	}
	return pool, nil
}

// New creates a Gateway over the notes table. Pages are keyset-paginated on
// the insertion sequence, newest first.
func New(db DB, l pkgLog.Logger) repository.Gateway {
	return &implRepository{db: db, l: l}
}

const (
	selectColumns = `seq, key, title, description, date, photo, position`

	firstPageSQL = `SELECT ` + selectColumns + ` FROM notes ORDER BY seq DESC LIMIT $1`
	nextPageSQL  = `SELECT ` + selectColumns + ` FROM notes WHERE seq < $1 ORDER BY seq DESC LIMIT $2`
	getSQL       = `SELECT ` + selectColumns + ` FROM notes WHERE key = $1`

	insertSQL = `INSERT INTO notes (key, title, description, date, photo, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	updateSQL = `UPDATE notes
		SET title = $2, description = $3, date = $4, photo = $5, position = $6, updated_at = now()
		WHERE key = $1`
	deleteSQL = `DELETE FROM notes WHERE key = $1`
)

func (r *implRepository) FetchPage(ctx context.Context, opt repository.FetchPageOptions) (model.Page, error) {
	if opt.Limit <= 0 {
		return model.Page{}, repository.ErrInvalidLimit
	}

	var (
		rows pgx.Rows
		err  error
	)
	if opt.After.IsZero() {
		rows, err = r.db.Query(ctx, firstPageSQL, opt.Limit)
	} else {
		seq, cerr := DecodeCursor(opt.After)
		if cerr != nil {
			return model.Page{}, cerr
		}
		rows, err = r.db.Query(ctx, nextPageSQL, seq, opt.Limit)
	}
	if err != nil {
		r.l.Errorf(ctx, "note/repository/postgre.FetchPage: %v", err)
		return model.Page{}, fmt.Errorf("%w: %w", repository.ErrFailedToFetch, mapError(err))
	}
	defer rows.Close()

	page := model.Page{Notes: make([]model.Note, 0, opt.Limit)}
	var lastSeq int64
	for rows.Next() {
		n, seq, err := scanNote(rows)
		if err != nil {
			return model.Page{}, fmt.Errorf("%w: %w", repository.ErrFailedToFetch, err)
		}
		page.Notes = append(page.Notes, n)
		lastSeq = seq
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "note/repository/postgre.FetchPage: rows: %v", err)
		return model.Page{}, fmt.Errorf("%w: %w", repository.ErrFailedToFetch, mapError(err))
	}

	if len(page.Notes) > 0 {
		page.Last = EncodeCursor(lastSeq)
	}
	return page, nil
}

func (r *implRepository) Create(ctx context.Context, opt repository.CreateNoteOptions) (string, error) {
	key := uuid.NewString()
	if _, err := r.db.Exec(ctx, insertSQL, key, opt.Title, opt.Description, opt.Date, opt.Photo, opt.Position); err != nil {
		r.l.Errorf(ctx, "note/repository/postgre.Create: %v", err)
		return "", fmt.Errorf("%w: %w", repository.ErrFailedToCreate, mapError(err))
	}
	return key, nil
}

func (r *implRepository) Update(ctx context.Context, n model.Note) error {
	tag, err := r.db.Exec(ctx, updateSQL, n.Key, n.Title, n.Description, n.Date, n.Photo, n.Position)
	if err != nil {
		r.l.Errorf(ctx, "note/repository/postgre.Update: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToUpdate, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) Delete(ctx context.Context, key string) error {
	tag, err := r.db.Exec(ctx, deleteSQL, key)
	if err != nil {
		r.l.Errorf(ctx, "note/repository/postgre.Delete: %v", err)
		return fmt.Errorf("%w: %w", repository.ErrFailedToDelete, mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) GetNote(ctx context.Context, key string) (model.Note, error) {
	n, _, err := scanNote(r.db.QueryRow(ctx, getSQL, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, repository.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrFailedToGet, mapError(err))
	}
	return n, nil
}

func scanNote(row pgx.Row) (model.Note, int64, error) {
	var (
		n   model.Note
		seq int64
	)
	err := row.Scan(&seq, &n.Key, &n.Title, &n.Description, &n.Date, &n.Photo, &n.Position)
	return n, seq, err
}

// EncodeCursor renders a sequence number as an opaque cursor.
func EncodeCursor(seq int64) model.Cursor {
	return model.Cursor(base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(seq, 10))))
}

// DecodeCursor is the inverse of EncodeCursor.
func DecodeCursor(c model.Cursor) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(string(c))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", repository.ErrInvalidCursor, err)
	}
	seq, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("%w: %q", repository.ErrInvalidCursor, c)
	}
	return seq, nil
}

// mapError marks constraint violations as rejections so callers can tell a
// bad note from an unreachable database.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException:
		return fmt.Errorf("%w: %s", repository.ErrRejected, pgErr.Message)
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: duplicate key: %s", repository.ErrRejected, pgErr.ConstraintName)
	}
	if pgerrcode.IsConnectionException(pgErr.Code) {
		return fmt.Errorf("database unavailable (%s): %w", pgErr.Code, err)
	}
	return err
}
