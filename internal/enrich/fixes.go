package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/db"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/gazetteer"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/logging"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

// Fix is one model-suggested repair for a place row.
type Fix struct {
	ID       int64  `json:"id"`
	Action   string `json:"action"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Province string `json:"province,omitempty"`
}

const (
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ParseFixes extracts the fix list from a model response. Models in
// JSON mode answer {"fixes": [...]}, but smaller ones drift: a bare
// array, or JSON wrapped in prose. Each layer is tried in turn.
func ParseFixes(raw string) ([]Fix, error) {
	var wrapped struct {
		Fixes []Fix `json:"fixes"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil && len(wrapped.Fixes) > 0 {
		return wrapped.Fixes, nil
	}

	var bare []Fix
	if err := json.Unmarshal([]byte(raw), &bare); err == nil && len(bare) > 0 {
		return bare, nil
	}

	if start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]"); start != -1 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &bare); err == nil && len(bare) > 0 {
			return bare, nil
		}
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start != -1 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &wrapped); err == nil && len(wrapped.Fixes) > 0 {
			return wrapped.Fixes, nil
		}
	}
	return nil, fmt.Errorf("no fixes found in response: %.120s", raw)
}

// validate reports why a fix cannot be applied, or nil.
func validate(fix Fix) error {
	switch fix.Action {
	case ActionDelete:
		if fix.ID == 0 {
			return fmt.Errorf("delete without id")
		}
		return nil
	case ActionUpdate:
		if fix.ID == 0 {
			return fmt.Errorf("update without id")
		}
		if fix.Region == "" || fix.Province == "" {
			return fmt.Errorf("update %d missing region or province", fix.ID)
		}
		if !knownRegion(fix.Region) {
			return fmt.Errorf("update %d names unknown region %q", fix.ID, fix.Region)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", fix.Action)
	}
}

func knownRegion(region string) bool {
	for _, r := range gazetteer.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// FetchUnresolved reads place rows still missing a region, oldest
// first. A limit of zero means all of them.
func FetchUnresolved(ctx context.Context, conn *db.Connection, limit int) ([]Row, error) {
	query := "SELECT id, city FROM places WHERE region IS NULL OR region = '' ORDER BY id"
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}

	rows, err := conn.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query unresolved places: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.City); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Apply validates each fix and applies it to the places table. Invalid
// fixes and per-row failures (a rename colliding with the city unique
// key, a vanished id) are skipped and counted, never fatal.
func Apply(ctx context.Context, conn *db.Connection, fixes []Fix, logger *zap.Logger) (applied, skipped int, err error) {
	logger = logging.NopIfNil(logger)

	updateFull := conn.Rebind("UPDATE places SET city = ?, region = ?, province = ? WHERE id = ?")
	updateKeep := conn.Rebind("UPDATE places SET region = ?, province = ? WHERE id = ?")
	deleteRow := conn.Rebind("DELETE FROM places WHERE id = ?")

	for _, fix := range fixes {
		if verr := validate(fix); verr != nil {
			skipped++
			logger.Warn("fix rejected", zap.Int64("id", fix.ID), zap.Error(verr))
			continue
		}

		var execErr error
		switch fix.Action {
		case ActionDelete:
			_, execErr = conn.DB.ExecContext(ctx, deleteRow, fix.ID)
		case ActionUpdate:
			if city := normalize.City(fix.City); city != "" {
				_, execErr = conn.DB.ExecContext(ctx, updateFull, city, fix.Region, fix.Province, fix.ID)
			} else {
				_, execErr = conn.DB.ExecContext(ctx, updateKeep, fix.Region, fix.Province, fix.ID)
			}
		}
		if execErr != nil {
			skipped++
			logger.Warn("fix failed", zap.Int64("id", fix.ID), zap.Error(execErr))
			continue
		}
		applied++
	}

	logger.Info("fixes applied", zap.Int("applied", applied), zap.Int("skipped", skipped))
	return applied, skipped, nil
}
