package db

import (
	"context"
	"fmt"
)

// EnsureSchema creates the tables the pipeline writes into when they do
// not exist yet. Statements are idempotent; running against a populated
// database is safe.
func EnsureSchema(ctx context.Context, conn *Connection) error {
	for _, ddl := range schemaStatements(conn.Driver) {
		if _, err := conn.DB.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// VARCHAR(190) keys stay under the utf8mb4 index size limit.
func schemaStatements(driver string) []string {
	serial := "BIGINT AUTO_INCREMENT PRIMARY KEY"
	if driver == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS places (
			id %s,
			city VARCHAR(190) NOT NULL UNIQUE,
			region VARCHAR(190),
			province VARCHAR(190)
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS hospitals (
			id %s,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100),
			source VARCHAR(50),
			lat DOUBLE PRECISION,
			lon DOUBLE PRECISION,
			place_id BIGINT,
			CONSTRAINT fk_hospitals_place FOREIGN KEY (place_id) REFERENCES places(id)
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS suppliers (
			id %s,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			address VARCHAR(255),
			place_id BIGINT,
			CONSTRAINT fk_suppliers_place FOREIGN KEY (place_id) REFERENCES places(id)
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS resolution_runs (
			id %s,
			label VARCHAR(100),
			input_count INT NOT NULL,
			dropped_count INT NOT NULL,
			exact_count INT NOT NULL,
			phonetic_count INT NOT NULL,
			edit_count INT NOT NULL,
			containment_deleted INT NOT NULL,
			dedup_deleted INT NOT NULL,
			resolved_count INT NOT NULL,
			unresolved_count INT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, serial),
	}
}
