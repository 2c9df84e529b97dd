package web

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/normalize"
)

// Place is one row of the places table as served by the API.
type Place struct {
	ID       int64  `json:"id"`
	City     string `json:"city"`
	Region   string `json:"region,omitempty"`
	Province string `json:"province,omitempty"`
}

// StatsResponse summarizes the loaded directory.
type StatsResponse struct {
	TotalPlaces  int         `json:"total_places"`
	Resolved     int         `json:"resolved"`
	Unresolved   int         `json:"unresolved"`
	ResolvedRate float64     `json:"resolved_rate"`
	Hospitals    int         `json:"hospitals"`
	Suppliers    int         `json:"suppliers"`
	LastRun      *RunSummary `json:"last_run,omitempty"`
}

// RunSummary is the latest resolution run on record.
type RunSummary struct {
	Label      string    `json:"label,omitempty"`
	Resolved   int       `json:"resolved"`
	Unresolved int       `json:"unresolved"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *Server) listPlaces(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id, city, region, province FROM places
		WHERE region IS NOT NULL AND region != ''`
	args := []interface{}{}

	if region := r.URL.Query().Get("region"); region != "" {
		query += " AND region = ?"
		args = append(args, region)
	}
	query += " ORDER BY city"

	rows, err := s.conn.DB.QueryContext(r.Context(), s.conn.Rebind(query), args...)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	places := []Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			continue
		}
		places = append(places, p)
	}

	respondJSON(w, places)
}

func (s *Server) getPlace(w http.ResponseWriter, r *http.Request) {
	// Tolerate lowercase and accented spellings in the URL.
	city := normalize.City(mux.Vars(r)["city"])

	row := s.conn.DB.QueryRowContext(r.Context(), s.conn.Rebind(
		"SELECT id, city, region, province FROM places WHERE city = ?"), city)

	p, err := scanPlace(row)
	if err == sql.ErrNoRows {
		http.Error(w, "place not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, p)
}

func (s *Server) listUnresolved(w http.ResponseWriter, r *http.Request) {
	rows, err := s.conn.DB.QueryContext(r.Context(),
		"SELECT id, city FROM places WHERE region IS NULL OR region = '' ORDER BY id")
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	places := []Place{}
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.ID, &p.City); err != nil {
			continue
		}
		places = append(places, p)
	}

	respondJSON(w, places)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	var stats StatsResponse

	err := s.conn.DB.QueryRowContext(r.Context(), `
		SELECT
			COUNT(*) as total,
			COUNT(CASE WHEN region IS NOT NULL AND region != '' THEN 1 END) as resolved,
			COUNT(CASE WHEN region IS NULL OR region = '' THEN 1 END) as unresolved
		FROM places`).Scan(&stats.TotalPlaces, &stats.Resolved, &stats.Unresolved)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if stats.TotalPlaces > 0 {
		stats.ResolvedRate = float64(stats.Resolved) / float64(stats.TotalPlaces) * 100
	}

	s.conn.DB.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM hospitals").Scan(&stats.Hospitals)
	s.conn.DB.QueryRowContext(r.Context(), "SELECT COUNT(*) FROM suppliers").Scan(&stats.Suppliers)

	var run RunSummary
	var label sql.NullString
	err = s.conn.DB.QueryRowContext(r.Context(), `
		SELECT label, resolved_count, unresolved_count, created_at
		FROM resolution_runs ORDER BY id DESC LIMIT 1`).
		Scan(&label, &run.Resolved, &run.Unresolved, &run.CreatedAt)
	if err == nil {
		run.Label = label.String
		stats.LastRun = &run
	}

	respondJSON(w, stats)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.conn.DB.PingContext(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlace(row scanner) (Place, error) {
	var p Place
	var region, province sql.NullString
	if err := row.Scan(&p.ID, &p.City, &region, &province); err != nil {
		return Place{}, err
	}
	p.Region = region.String
	p.Province = province.String
	return p, nil
}

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
