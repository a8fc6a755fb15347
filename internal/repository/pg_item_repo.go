package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

type pgItemRepository struct {
	pool *pgxpool.Pool
}

// NewPgItemRepository returns an ItemRepository backed by PostgreSQL.
func NewPgItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &pgItemRepository{pool: pool}
}

func (r *pgItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, content_type, author_id, status, scheduled_at, created_at, updated_at
		FROM content_items WHERE id = $1`, id)

	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return it, err
}

func (r *pgItemRepository) ListScheduled(ctx context.Context, limit int) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, content_type, author_id, status, scheduled_at, created_at, updated_at
		FROM content_items
		WHERE status = 'scheduled'
		ORDER BY scheduled_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list scheduled items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *pgItemRepository) PublishNow(ctx context.Context, id string, expectedAt, publishAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE content_items
		SET status = 'published', scheduled_at = $1, updated_at = $1
		WHERE id = $2 AND status = 'scheduled' AND scheduled_at = $3`,
		publishAt, id, expectedAt)
	if err != nil {
		return fmt.Errorf("publish item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *pgItemRepository) Reschedule(ctx context.Context, id string, expectedAt, newAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE content_items
		SET scheduled_at = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'scheduled' AND scheduled_at = $3`,
		newAt, id, expectedAt)
	if err != nil {
		return fmt.Errorf("reschedule item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// scanItem reads a single item row from any pgx row type.
func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID, &it.Title, &it.ContentType, &it.AuthorID,
		&it.Status, &it.ScheduledAt, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
