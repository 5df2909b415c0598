package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"diary/internal/domain/entry"
)

type EntryRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewEntryRepository(pool *pgxpool.Pool, log *slog.Logger) *EntryRepository {
	return &EntryRepository{
		pool: pool,
		log:  log.With("component", "entry_repository"),
	}
}

func (r *EntryRepository) List(ctx context.Context, userID int) ([]entry.Entry, error) {
	const query = `
		SELECT id, user_id, encrypted_title, encrypted_content, date_created, date_modified
		FROM entries
		WHERE user_id = $1
		ORDER BY date_modified DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list entries", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]entry.Entry, 0)
	for rows.Next() {
		var e entry.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.EncryptedTitle, &e.EncryptedContent,
			&e.DateCreated, &e.DateModified); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

func (r *EntryRepository) Get(ctx context.Context, entryID int) (entry.Entry, error) {
	const query = `
		SELECT id, user_id, encrypted_title, encrypted_content, date_created, date_modified
		FROM entries
		WHERE id = $1`

	var e entry.Entry
	err := r.pool.QueryRow(ctx, query, entryID).
		Scan(&e.ID, &e.UserID, &e.EncryptedTitle, &e.EncryptedContent, &e.DateCreated, &e.DateModified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, entry.ErrNotFound
		}
		r.log.Error("failed to get entry", "entry_id", entryID, "error", err)
		return e, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) (int, error) {
	const query = `
		INSERT INTO entries (user_id, encrypted_title, encrypted_content, date_created, date_modified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		e.UserID, e.EncryptedTitle, e.EncryptedContent, e.DateCreated, e.DateModified,
	).Scan(&e.ID)
	if err != nil {
		r.log.Error("failed to create entry", "user_id", e.UserID, "error", err)
		return 0, fmt.Errorf("create entry: %w", err)
	}

	return e.ID, nil
}

func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	const query = `
		UPDATE entries
		SET encrypted_title = $1, encrypted_content = $2, date_modified = $3
		WHERE id = $4`

	result, err := r.pool.Exec(ctx, query,
		e.EncryptedTitle, e.EncryptedContent, e.DateModified, e.ID)
	if err != nil {
		r.log.Error("failed to update entry", "entry_id", e.ID, "error", err)
		return fmt.Errorf("update entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entry.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, entryID int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, entryID)
	if err != nil {
		r.log.Error("failed to delete entry", "entry_id", entryID, "error", err)
		return fmt.Errorf("delete entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entry.ErrNotFound
	}
	return nil
}
