package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Fund table
		CREATE TABLE fund (
			id VARCHAR(100) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			visible BOOLEAN NOT NULL DEFAULT FALSE,
			approved_by VARCHAR(100) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		-- Scheme table
		CREATE TABLE scheme (
			code VARCHAR(20) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			fund_id VARCHAR(100) NOT NULL,
			approved BOOLEAN NOT NULL DEFAULT FALSE,
			visible BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY(fund_id) REFERENCES fund(id)
		);

		-- NAV history table (append-only)
		CREATE TABLE nav_record (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(100) NOT NULL,
			fund_name VARCHAR(255) NOT NULL,
			scheme_code VARCHAR(20) NOT NULL,
			scheme_name VARCHAR(255) NOT NULL,
			nav NUMERIC(18,6) NOT NULL,
			date DATE NOT NULL,
			visible BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(fund_id) REFERENCES fund(id)
		);

		CREATE INDEX idx_nav_record_scheme_date ON nav_record(scheme_code, date);

		-- Investment table
		CREATE TABLE investment (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			scheme_code VARCHAR(20) NOT NULL,
			investor_name VARCHAR(255) NOT NULL,
			amount NUMERIC(18,2) NOT NULL,
			units NUMERIC(18,4) NOT NULL,
			date DATE NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY(scheme_code) REFERENCES scheme(code)
		);

		-- Market holiday table
		CREATE TABLE market_holiday (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL UNIQUE,
			description VARCHAR(255)
		);

		-- Feed config table
		CREATE TABLE feed_config (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			feed_url VARCHAR(500) NOT NULL,
			auth_token TEXT,
			timezone VARCHAR(50) NOT NULL,
			schedule VARCHAR(50) NOT NULL,
			last_import_date DATE,
			updated_at DATETIME NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
