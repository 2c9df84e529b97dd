package fetch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/hospital"
)

var hospitalsHeader = []string{"name", "category", "city", "source", "lat", "lon"}

// ReadHospitalsCSV reads a consolidated hospitals file, ids assigned in
// file order starting at 1. Column order is free as long as the header
// names the fields.
func ReadHospitalsCSV(path string) ([]hospital.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columnMap := make(map[string]int)
	for i, col := range header {
		columnMap[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := columnMap["name"]; !ok {
		return nil, fmt.Errorf("%s: missing name column", path)
	}

	var out []hospital.Record
	var id int64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		name := columnValue(row, columnMap, "name")
		if name == "" {
			continue
		}
		id++
		out = append(out, hospital.Record{
			ID:       id,
			Name:     name,
			Category: columnValue(row, columnMap, "category"),
			City:     columnValue(row, columnMap, "city"),
			Source:   columnValue(row, columnMap, "source"),
			Lat:      parseCoord(columnValue(row, columnMap, "lat")),
			Lon:      parseCoord(columnValue(row, columnMap, "lon")),
		})
	}
	return out, nil
}

// WriteHospitalsCSV writes records in the consolidated column layout.
func WriteHospitalsCSV(path string, recs []hospital.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	w.Write(hospitalsHeader)
	for _, rec := range recs {
		w.Write([]string{
			rec.Name,
			rec.Category,
			rec.City,
			rec.Source,
			formatCoord(rec.Lat),
			formatCoord(rec.Lon),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

func parseCoord(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func formatCoord(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
