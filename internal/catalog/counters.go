package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Counter returns the usage counter of a part, or nil when the part is unknown.
func (s *Store) Counter(ctx context.Context, id string) (*Counter, error) {
	counter := Counter{UUID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT views, downloads FROM counters WHERE part_uuid = ?`, id,
	).Scan(&counter.Views, &counter.Downloads)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get counter: %w", err)
	}
	return &counter, nil
}

// RecordView increments the view counter of a part.
func (s *Store) RecordView(ctx context.Context, id string) error {
	return s.increment(ctx, "views", id)
}

// RecordDownload increments the download counter of a part.
func (s *Store) RecordDownload(ctx context.Context, id string) error {
	return s.increment(ctx, "downloads", id)
}

func (s *Store) increment(ctx context.Context, column, id string) error {
	res, err := s.execWithRetry(ctx,
		`UPDATE counters SET `+column+` = `+column+` + 1 WHERE part_uuid = ?`, id)
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("increment %s of %s: %w", column, id, ErrNotFound)
	}
	return nil
}
