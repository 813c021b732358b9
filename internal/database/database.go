package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DB holds the SQLite connection backing the run ledger
type DB struct {
	db *sql.DB
}

// connectionParams are applied by the driver to every pooled connection.
// WAL lets `history` read while a run is recording.
const connectionParams = "_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + connectionParams
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// RunRepository returns the repository for recorded runs
func (d *DB) RunRepository() RunRepository {
	return NewRunRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	runsSchema := `CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		variant TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		documents INTEGER NOT NULL,
		candidates INTEGER NOT NULL,
		matched INTEGER NOT NULL,
		artifact_path TEXT NOT NULL,
		image_dir TEXT
	);`

	flightsSchema := `CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		origin TEXT,
		destination TEXT,
		scheduled_departure TEXT,
		scheduled_arrival TEXT,
		date TEXT NOT NULL,
		aircraft_model TEXT,
		flight_number TEXT,
		image_url TEXT,
		image_path TEXT,
		source_url TEXT,
		UNIQUE(run_id, position)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_flight_number ON flights(flight_number)`,
		`CREATE INDEX IF NOT EXISTS idx_flights_aircraft_model ON flights(aircraft_model)`,
	}

	if _, err := d.db.Exec(runsSchema); err != nil {
		return fmt.Errorf("failed to create runs table: %w", err)
	}

	if _, err := d.db.Exec(flightsSchema); err != nil {
		return fmt.Errorf("failed to create flights table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
