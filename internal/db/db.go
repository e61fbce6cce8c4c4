package db

import (
	"database/sql"

	_ "github.com/lib/pq"
)

func Connect(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates the tables this service owns if they do not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id              SERIAL PRIMARY KEY,
			title           TEXT NOT NULL,
			due_date        DATE NOT NULL,
			estimated_hours DOUBLE PRECISION NOT NULL,
			importance      INTEGER NOT NULL,
			dependencies    JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS analytics_events (
			event_id         UUID PRIMARY KEY,
			event_name       TEXT NOT NULL,
			event_time       TIMESTAMPTZ NOT NULL,
			session_id       TEXT,
			platform         TEXT,
			app_version      TEXT,
			device_locale    TEXT,
			source_event_key TEXT UNIQUE,
			properties       JSONB
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
