// Package load persists pipeline output into the relational store: the
// place directory, the hospital and supplier rows that reference it, and
// the per-run audit counters.
package load

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/db"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/hospital"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/logging"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/resolve"
)

// Loader writes pipeline output through one connection.
type Loader struct {
	conn   *db.Connection
	logger *zap.Logger
}

// New creates a Loader. A nil logger disables logging.
func New(conn *db.Connection, logger *zap.Logger) *Loader {
	return &Loader{conn: conn, logger: logging.NopIfNil(logger)}
}

// Places inserts the directory into the places table inside one
// transaction. Unresolved cities are excluded unless includeUnresolved
// is set; then they are staged with NULL region and province so the
// enrichment pass can patch them. Returns the number of rows inserted.
func (l *Loader) Places(ctx context.Context, dir *resolve.Directory, includeUnresolved bool) (int, error) {
	tx, err := l.conn.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// The original bulk import turns FK checks off around the load.
	if l.conn.Driver == "mysql" {
		if _, err := tx.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
			return 0, fmt.Errorf("failed to disable FK checks: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, l.conn.Rebind(
		"INSERT INTO places (city, region, province) VALUES (?, ?, ?)"))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range dir.Entries {
		if _, err := stmt.ExecContext(ctx, e.City, e.Region, e.Province); err != nil {
			return 0, fmt.Errorf("failed to insert place %s: %w", e.City, err)
		}
		inserted++
	}
	if includeUnresolved {
		for _, e := range dir.Unresolved {
			if _, err := stmt.ExecContext(ctx, e.City, nil, nil); err != nil {
				return 0, fmt.Errorf("failed to insert place %s: %w", e.City, err)
			}
			inserted++
		}
	}

	if l.conn.Driver == "mysql" {
		if _, err := tx.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil {
			return 0, fmt.Errorf("failed to restore FK checks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	l.logger.Info("places loaded",
		zap.Int("inserted", inserted),
		zap.Bool("include_unresolved", includeUnresolved))
	return inserted, nil
}

// PlaceIDs reads back the city-to-id mapping of the places table.
func (l *Loader) PlaceIDs(ctx context.Context) (map[string]int64, error) {
	rows, err := l.conn.DB.QueryContext(ctx, "SELECT id, city FROM places")
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var city string
		if err := rows.Scan(&id, &city); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		ids[city] = id
	}
	return ids, rows.Err()
}

// Hospitals inserts facility records inside one transaction. A zero
// PlaceID becomes NULL. Returns the number of rows inserted.
func (l *Loader) Hospitals(ctx context.Context, recs []hospital.Record) (int, error) {
	tx, err := l.conn.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, l.conn.Rebind(
		"INSERT INTO hospitals (name, category, source, lat, lon, place_id) VALUES (?, ?, ?, ?, ?, ?)"))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, rec := range recs {
		_, err := stmt.ExecContext(ctx,
			rec.Name, nullIfEmpty(rec.Category), nullIfEmpty(rec.Source),
			nullIfZeroFloat(rec.Lat), nullIfZeroFloat(rec.Lon), nullIfZeroID(rec.PlaceID))
		if err != nil {
			return 0, fmt.Errorf("failed to insert hospital %s: %w", rec.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	l.logger.Info("hospitals loaded", zap.Int("inserted", inserted))
	return inserted, nil
}

// RecordRun persists one run's counters for later comparison.
func (l *Loader) RecordRun(ctx context.Context, label string, rep *resolve.Report) error {
	_, err := l.conn.DB.ExecContext(ctx, l.conn.Rebind(`
		INSERT INTO resolution_runs (
			label, input_count, dropped_count, exact_count, phonetic_count,
			edit_count, containment_deleted, dedup_deleted, resolved_count, unresolved_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		label, rep.Input, rep.Dropped, rep.ExactMatches, rep.PhoneticMatches,
		rep.EditMatches, rep.ContainmentDeleted, rep.DedupDeleted, rep.Resolved, rep.Unresolved)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Verify returns the row count per pipeline table.
func (l *Loader) Verify(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, table := range []string{"places", "hospitals", "suppliers", "resolution_runs"} {
		var n int
		if err := l.conn.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZeroFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}

func nullIfZeroID(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
