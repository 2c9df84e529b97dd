// Package fetch reads the raw data sources: ministry workbook exports,
// the Overpass API, and the consolidated hospitals CSV.
package fetch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/resolve"
)

// Ministry exports carry a few title and date lines before the real
// header row; the header is always inside this window.
const headerScanLimit = 20

// headerAliases maps the column names seen across workbook exports to
// canonical fields. Cells are accent-folded and lowercased before the
// lookup, so Région and Préfecture land here too.
var headerAliases = map[string]string{
	"region":     "region",
	"regions":    "region",
	"province":   "province",
	"prefecture": "province",
	"commune":    "city",
	"communes":   "city",
	"ville":      "city",
	"localite":   "city",
}

// GovCSV reads a ministry workbook export and returns its place rows in
// file order, ids starting at 1. The header row is sniffed within the
// first lines of the file; repeated header rows (concatenated exports)
// are skipped. Values come back trimmed but otherwise raw.
func GovCSV(path string) ([]resolve.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	columnMap, err := sniffHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var out []resolve.Record
	var id int64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		city := columnValue(row, columnMap, "city")
		if city == "" || headerAliases[headerKey(city)] == "city" {
			continue
		}

		id++
		out = append(out, resolve.Record{
			ID:       id,
			City:     city,
			Region:   columnValue(row, columnMap, "region"),
			Province: columnValue(row, columnMap, "province"),
			Source:   "gov",
		})
	}
	return out, nil
}

// sniffHeader consumes rows until it finds one carrying both a region
// and a city column, and returns the field-to-index mapping.
func sniffHeader(reader *csv.Reader) (map[string]int, error) {
	for line := 0; line < headerScanLimit; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		columnMap := make(map[string]int)
		for i, cell := range row {
			if field, ok := headerAliases[headerKey(cell)]; ok {
				if _, taken := columnMap[field]; !taken {
					columnMap[field] = i
				}
			}
		}
		if _, hasRegion := columnMap["region"]; !hasRegion {
			continue
		}
		if _, hasCity := columnMap["city"]; !hasCity {
			continue
		}
		return columnMap, nil
	}
	return nil, fmt.Errorf("no header row within the first %d lines", headerScanLimit)
}

func headerKey(cell string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(cell)))
}

func columnValue(row []string, columnMap map[string]int, field string) string {
	if idx, ok := columnMap[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}
