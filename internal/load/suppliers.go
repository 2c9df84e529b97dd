package load

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

// Supplier is one medical-supplier row from the consolidated export.
type Supplier struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// ReadSuppliersCSV reads the supplier export. Expected columns: name,
// phone, address, city; order is free as long as the header names them.
func ReadSuppliersCSV(path string) ([]Supplier, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := columnMap["name"]; !ok {
		return nil, fmt.Errorf("%s: missing name column", path)
	}

	cell := func(row []string, field string) string {
		if idx, ok := columnMap[field]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var out []Supplier
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		name := cell(row, "name")
		if name == "" {
			continue
		}
		out = append(out, Supplier{
			Name:    name,
			Phone:   cell(row, "phone"),
			Address: cell(row, "address"),
			City:    cell(row, "city"),
		})
	}
	return out, nil
}

// Suppliers inserts supplier rows inside one transaction, resolving each
// city against the places mapping. Supplier cities arrive raw, so they
// go through city normalization before the lookup; unmatched cities
// leave place_id NULL. Returns the number of rows inserted.
func (l *Loader) Suppliers(ctx context.Context, rows []Supplier, ids map[string]int64) (int, error) {
	tx, err := l.conn.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, l.conn.Rebind(
		"INSERT INTO suppliers (name, phone, address, place_id) VALUES (?, ?, ?, ?)"))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, row := range rows {
		placeID := ids[normalize.City(row.City)]
		_, err := stmt.ExecContext(ctx,
			row.Name, nullIfEmpty(row.Phone), nullIfEmpty(row.Address), nullIfZeroID(placeID))
		if err != nil {
			return 0, fmt.Errorf("failed to insert supplier %s: %w", row.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	l.logger.Info("suppliers loaded", zap.Int("inserted", inserted))
	return inserted, nil
}
