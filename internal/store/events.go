package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/navwatch/internal/events"
)

const eventColumns = `actor_id, session_id, item_id, action, context, ts, duration_ms, query, previous_item`

// InsertEvent stores one event and returns its generated row id.
func (db *DB) InsertEvent(e events.InteractionEvent) (string, error) {
	ids, err := db.InsertEvents([]events.InteractionEvent{e})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// InsertEvents stores evs in a single transaction and returns their row ids
// in order. Events are stored as given; validation happens when they are
// loaded into an engine.
func (db *DB) InsertEvents(evs []events.InteractionEvent) ([]string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO events (id, ` + eventColumns + `, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	recorded := time.Now().UTC().Format(time.RFC3339)
	ids := make([]string, 0, len(evs))
	for _, e := range evs {
		id := uuid.NewString()
		var duration sql.NullInt64
		if e.Duration > 0 {
			duration = sql.NullInt64{Int64: e.Duration.Milliseconds(), Valid: true}
		}
		if _, err := stmt.Exec(
			id, e.ActorID, e.SessionID, e.ItemID, string(e.Action), string(e.Context),
			e.Timestamp.UnixNano(), duration, nullString(e.Query), nullString(e.PreviousItem),
			recorded,
		); err != nil {
			return nil, fmt.Errorf("inserting event: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing events: %w", err)
	}
	return ids, nil
}

// EventsSince returns every stored event with a timestamp at or after
// since, oldest first. An empty actor matches all actors.
func (db *DB) EventsSince(actor string, since time.Time) ([]events.InteractionEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE ts >= ?`
	args := []any{since.UnixNano()}
	if actor != "" {
		query += ` AND actor_id = ?`
		args = append(args, actor)
	}
	query += ` ORDER BY ts, rowid`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var out []events.InteractionEvent
	for rows.Next() {
		var (
			e                   events.InteractionEvent
			action, ctx         string
			ts                  int64
			duration            sql.NullInt64
			query, previousItem sql.NullString
		)
		if err := rows.Scan(&e.ActorID, &e.SessionID, &e.ItemID, &action, &ctx,
			&ts, &duration, &query, &previousItem); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Action = events.Action(action)
		e.Context = events.Context(ctx)
		e.Timestamp = time.Unix(0, ts).UTC()
		if duration.Valid {
			e.Duration = time.Duration(duration.Int64) * time.Millisecond
		}
		e.Query = query.String
		e.PreviousItem = previousItem.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// PurgeBefore deletes events older than cutoff and returns how many rows
// were removed.
func (db *DB) PurgeBefore(cutoff time.Time) (int64, error) {
	res, err := db.conn.Exec(`DELETE FROM events WHERE ts < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purging events: %w", err)
	}
	return res.RowsAffected()
}

// CountEvents returns the number of stored events.
func (db *DB) CountEvents() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
