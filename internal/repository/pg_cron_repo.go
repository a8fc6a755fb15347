package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
)

type pgCronRepository struct {
	pool *pgxpool.Pool
}

// NewPgCronRepository returns a CronRepository reading the cron_events
// snapshot table maintained by the external scheduler.
func NewPgCronRepository(pool *pgxpool.Pool) CronRepository {
	return &pgCronRepository{pool: pool}
}

func (r *pgCronRepository) ListEvents(ctx context.Context) ([]domain.CronEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT hook, due_at, payload_count
		FROM cron_events
		ORDER BY due_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list cron events: %w", err)
	}
	defer rows.Close()

	var events []domain.CronEvent
	for rows.Next() {
		var e domain.CronEvent
		if err := rows.Scan(&e.Hook, &e.DueAt, &e.PayloadCount); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
