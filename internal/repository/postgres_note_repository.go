package repository

import (
	"context"
	"errors"
	"fmt"

	"note-share-be/internal/entity"
	"note-share-be/internal/pkg/serverutils"
	"note-share-be/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createNotesTable = `
CREATE TABLE IF NOT EXISTS notes (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	subject     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL DEFAULT 'note',
	file_name   TEXT NOT NULL DEFAULT '',
	file_url    TEXT NOT NULL DEFAULT '',
	public_id   TEXT NOT NULL DEFAULT '',
	file_type   TEXT NOT NULL DEFAULT '',
	file_size   BIGINT NOT NULL DEFAULT 0,
	created_at  TIMESTAMPTZ NOT NULL
)`

const noteColumns = `id, title, subject, description, type, file_name, file_url, public_id, file_type, file_size, created_at`

const pgUniqueViolation = "23505"

type postgresNoteRepository struct {
	db   database.DatabaseQueryer
	pool *pgxpool.Pool
}

// NewPostgresNoteRepository makes sure the notes table exists and returns a
// repository over pool. Closing the repository closes the pool.
func NewPostgresNoteRepository(ctx context.Context, pool *pgxpool.Pool) (INoteRepository, error) {
	if _, err := pool.Exec(ctx, createNotesTable); err != nil {
		return nil, fmt.Errorf("create notes table: %w", err)
	}
	return &postgresNoteRepository{db: pool, pool: pool}, nil
}

func scanNote(row pgx.Row) (*entity.Note, error) {
	var n entity.Note
	err := row.Scan(
		&n.Id,
		&n.Title,
		&n.Subject,
		&n.Desc,
		&n.Type,
		&n.FileName,
		&n.FileUrl,
		&n.PublicId,
		&n.FileType,
		&n.FileSize,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	return &n, nil
}

func (r *postgresNoteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	rows, err := r.db.Query(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: list notes: %v", serverutils.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	notes := []*entity.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan note: %v", serverutils.ErrStoreUnavailable, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list notes: %v", serverutils.ErrStoreUnavailable, err)
	}

	return notes, nil
}

func (r *postgresNoteRepository) Create(ctx context.Context, note *entity.Note) (*entity.Note, error) {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO notes (`+noteColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		note.Id,
		note.Title,
		note.Subject,
		note.Desc,
		note.Type,
		note.FileName,
		note.FileUrl,
		note.PublicId,
		note.FileType,
		note.FileSize,
		note.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: note %s", serverutils.ErrConflict, note.Id)
		}
		return nil, fmt.Errorf("%w: insert note: %v", serverutils.ErrStoreUnavailable, err)
	}

	stored := *note
	return &stored, nil
}

func (r *postgresNoteRepository) GetById(ctx context.Context, id string) (*entity.Note, error) {
	n, err := scanNote(r.db.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, serverutils.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get note %s: %v", serverutils.ErrStoreUnavailable, id, err)
	}
	return n, nil
}

func (r *postgresNoteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%w: delete note %s: %v", serverutils.ErrStoreUnavailable, id, err)
	}
	return nil
}

func (r *postgresNoteRepository) Close() error {
	r.pool.Close()
	return nil
}
