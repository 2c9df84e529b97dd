// Package db opens and prepares the relational store shared by the
// loader, the enricher and the review API.
package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/config"
)

// Connection holds the database handle and the driver it speaks.
type Connection struct {
	DB     *sql.DB
	Driver string
}

// Connect opens and pings a connection for the configured driver. MySQL
// is the default; set DB_DRIVER=postgres to target postgres instead.
func Connect(cfg config.DBConfig) (*Connection, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)

	return &Connection{DB: db, Driver: cfg.Driver}, nil
}

func buildDSN(cfg config.DBConfig) (string, error) {
	switch cfg.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name), nil
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Close closes the database connection.
func (c *Connection) Close() error {
	return c.DB.Close()
}

// Rebind rewrites ? placeholders to $n for postgres. Queries are written
// MySQL-style throughout and rebound at the edge.
func (c *Connection) Rebind(query string) string {
	if c.Driver != "postgres" {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
