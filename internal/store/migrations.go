package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates the event and dismissal tables.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id            TEXT PRIMARY KEY,
			actor_id      TEXT NOT NULL,
			session_id    TEXT NOT NULL DEFAULT '',
			item_id       TEXT NOT NULL,
			action        TEXT NOT NULL,
			context       TEXT NOT NULL,
			ts            INTEGER NOT NULL,
			duration_ms   INTEGER,
			query         TEXT,
			previous_item TEXT,
			recorded_at   TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS insight_dismissals (
			actor_id     TEXT NOT NULL,
			insight_id   TEXT NOT NULL,
			dismissed_at TEXT NOT NULL,
			PRIMARY KEY (actor_id, insight_id)
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_events_actor_ts ON events(actor_id, ts)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
