package db

import (
	"strings"
	"testing"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/config"
)

func TestBuildDSN(t *testing.T) {
	cfg := config.DBConfig{
		Driver: "mysql", Host: "127.0.0.1", Port: 3306,
		User: "root", Password: "secret", Name: "morocco_health_db",
	}

	dsn, err := buildDSN(cfg)
	if err != nil {
		t.Fatalf("buildDSN: %v", err)
	}
	if dsn != "root:secret@tcp(127.0.0.1:3306)/morocco_health_db?parseTime=true&charset=utf8mb4" {
		t.Errorf("mysql dsn = %q", dsn)
	}

	cfg.Driver = "postgres"
	dsn, err = buildDSN(cfg)
	if err != nil {
		t.Fatalf("buildDSN: %v", err)
	}
	if !strings.Contains(dsn, "dbname=morocco_health_db") || !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("postgres dsn = %q", dsn)
	}

	cfg.Driver = "oracle"
	if _, err := buildDSN(cfg); err == nil {
		t.Error("want error for unsupported driver")
	}
}

func TestRebind(t *testing.T) {
	query := "INSERT INTO places (city, region, province) VALUES (?, ?, ?)"

	mysql := &Connection{Driver: "mysql"}
	if got := mysql.Rebind(query); got != query {
		t.Errorf("mysql rebind changed the query: %q", got)
	}

	pg := &Connection{Driver: "postgres"}
	want := "INSERT INTO places (city, region, province) VALUES ($1, $2, $3)"
	if got := pg.Rebind(query); got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}
}

func TestSchemaStatementsPerDriver(t *testing.T) {
	for _, stmt := range schemaStatements("mysql") {
		if strings.Contains(stmt, "BIGSERIAL") {
			t.Errorf("mysql schema contains postgres serial: %s", stmt)
		}
	}
	for _, stmt := range schemaStatements("postgres") {
		if strings.Contains(stmt, "AUTO_INCREMENT") {
			t.Errorf("postgres schema contains mysql serial: %s", stmt)
		}
	}
}
