package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const partColumns = "uuid, system, device, part, author, part_class, license, description, created_at, updated_at"

// fitsChunk bounds the number of placeholders in a single fits lookup.
const fitsChunk = 500

// Create inserts a new part under id together with its fits and a
// zero-initialized counter. A duplicate id or natural key fails the insert.
func (s *Store) Create(ctx context.Context, id string, key NaturalKey, attrs Attributes) (*Part, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("part id is empty")
	}
	now := time.Now().UTC()
	fits := NormalizeFits(attrs.Fits)

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO parts (`+partColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, key.System, key.Device, key.Part,
			attrs.Author, attrs.Class, attrs.License, attrs.Description,
			formatTime(now), formatTime(now),
		); err != nil {
			return fmt.Errorf("insert part: %w", err)
		}
		if err := insertFits(ctx, tx, id, fits); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO counters (part_uuid, views, downloads) VALUES (?, 0, 0)`, id,
		); err != nil {
			return fmt.Errorf("insert counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	attrs.Fits = fits
	return &Part{UUID: id, Key: key, Attributes: attrs, CreatedAt: now, UpdatedAt: now}, nil
}

// Update overwrites every descriptive field of the part with the given id.
// The id, natural key, and counter are left untouched.
func (s *Store) Update(ctx context.Context, id string, attrs Attributes) error {
	fits := NormalizeFits(attrs.Fits)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE parts
             SET author = ?, part_class = ?, license = ?, description = ?, updated_at = ?
             WHERE uuid = ?`,
			attrs.Author, attrs.Class, attrs.License, attrs.Description,
			formatTime(time.Now()), id,
		)
		if err != nil {
			return fmt.Errorf("update part: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("update %s: %w", id, ErrNotFound)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM part_fits WHERE part_uuid = ?`, id); err != nil {
			return fmt.Errorf("clear fits: %w", err)
		}
		return insertFits(ctx, tx, id, fits)
	})
}

func insertFits(ctx context.Context, tx *sql.Tx, id string, fits []string) error {
	for _, model := range fits {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO part_fits (part_uuid, model) VALUES (?, ?)`, id, model,
		); err != nil {
			return fmt.Errorf("insert fit %q: %w", model, err)
		}
	}
	return nil
}

// FindByKey returns the part stored under a natural key, or nil when none exists.
func (s *Store) FindByKey(ctx context.Context, key NaturalKey) (*Part, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+partColumns+` FROM parts WHERE system = ? AND device = ? AND part = ?`,
		key.System, key.Device, key.Part,
	)
	return s.scanOne(ctx, row, "find by key")
}

// Get returns the part with the given surrogate id, or nil when none exists.
func (s *Store) Get(ctx context.Context, id string) (*Part, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+partColumns+` FROM parts WHERE uuid = ?`, id)
	return s.scanOne(ctx, row, "get part")
}

func (s *Store) scanOne(ctx context.Context, row *sql.Row, op string) (*Part, error) {
	part, err := scanPart(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.attachFits(ctx, []*Part{part}); err != nil {
		return nil, err
	}
	return part, nil
}

// List returns parts matching filter ordered by system, device, and part name.
func (s *Store) List(ctx context.Context, filter Filter) ([]*Part, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.System != "" {
		clauses = append(clauses, "system = ?")
		args = append(args, filter.System)
	}
	if filter.Device != "" {
		clauses = append(clauses, "device = ?")
		args = append(args, filter.Device)
	}
	if filter.Model != "" {
		clauses = append(clauses, "EXISTS (SELECT 1 FROM part_fits f WHERE f.part_uuid = parts.uuid AND f.model = ?)")
		args = append(args, filter.Model)
	}

	query := `SELECT ` + partColumns + ` FROM parts`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY system, device, part`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var parts []*Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	if err := s.attachFits(ctx, parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// Count returns the number of stored parts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM parts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count parts: %w", err)
	}
	return count, nil
}

// Systems returns every distinct system name in lexical order.
func (s *Store) Systems(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, "list systems", `SELECT DISTINCT system FROM parts ORDER BY system`)
}

// Devices returns the distinct device names of a system in lexical order.
func (s *Store) Devices(ctx context.Context, system string) ([]string, error) {
	return s.queryStrings(ctx, "list devices",
		`SELECT DISTINCT device FROM parts WHERE system = ? ORDER BY device`, system)
}

// Models returns the union of fits lists of a device's parts, deduplicated
// and sorted.
func (s *Store) Models(ctx context.Context, system, device string) ([]string, error) {
	return s.queryStrings(ctx, "list models",
		`SELECT DISTINCT f.model FROM part_fits f
         JOIN parts p ON p.uuid = f.part_uuid
         WHERE p.system = ? AND p.device = ?
         ORDER BY f.model`, system, device)
}

// HasSystem reports whether any part belongs to system.
func (s *Store) HasSystem(ctx context.Context, system string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM parts WHERE system = ?)`, system,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check system: %w", err)
	}
	return exists != 0, nil
}

func (s *Store) queryStrings(ctx context.Context, op, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, value)
	}
	return out, rows.Err()
}

func (s *Store) attachFits(ctx context.Context, parts []*Part) error {
	if len(parts) == 0 {
		return nil
	}
	byID := make(map[string]*Part, len(parts))
	for _, p := range parts {
		p.Fits = []string{}
		byID[p.UUID] = p
	}

	for start := 0; start < len(parts); start += fitsChunk {
		end := min(start+fitsChunk, len(parts))
		args := make([]any, 0, end-start)
		for _, p := range parts[start:end] {
			args = append(args, p.UUID)
		}
		rows, err := s.db.QueryContext(ctx,
			`SELECT part_uuid, model FROM part_fits WHERE part_uuid IN (`+makePlaceholders(len(args))+`) ORDER BY part_uuid, model`,
			args...,
		)
		if err != nil {
			return fmt.Errorf("load fits: %w", err)
		}
		for rows.Next() {
			var id, model string
			if err := rows.Scan(&id, &model); err != nil {
				rows.Close()
				return fmt.Errorf("scan fit: %w", err)
			}
			if p, ok := byID[id]; ok {
				p.Fits = append(p.Fits, model)
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return fmt.Errorf("iterate fits: %w", err)
		}
	}
	return nil
}

func scanPart(scanner interface{ Scan(dest ...any) error }) (*Part, error) {
	var (
		part       Part
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(
		&part.UUID,
		&part.Key.System,
		&part.Key.Device,
		&part.Key.Part,
		&part.Author,
		&part.Class,
		&part.License,
		&part.Description,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		part.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		part.UpdatedAt = updated
	}
	return &part, nil
}
