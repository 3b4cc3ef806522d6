package store

import (
	"fmt"
	"time"
)

// DismissInsight records that actor dismissed insightID. Dismissing the
// same insight twice refreshes the timestamp.
func (db *DB) DismissInsight(actor, insightID string) error {
	_, err := db.conn.Exec(
		`INSERT INTO insight_dismissals (actor_id, insight_id, dismissed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(actor_id, insight_id) DO UPDATE SET dismissed_at = excluded.dismissed_at`,
		actor, insightID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("dismissing insight: %w", err)
	}
	return nil
}

// DismissedInsights returns the set of insight ids actor has dismissed.
func (db *DB) DismissedInsights(actor string) (map[string]bool, error) {
	rows, err := db.conn.Query(
		`SELECT insight_id FROM insight_dismissals WHERE actor_id = ?`, actor,
	)
	if err != nil {
		return nil, fmt.Errorf("querying dismissals: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// ListDismissals returns every dismissal for actor, most recent first.
func (db *DB) ListDismissals(actor string) ([]Dismissal, error) {
	rows, err := db.conn.Query(
		`SELECT actor_id, insight_id, dismissed_at FROM insight_dismissals
		WHERE actor_id = ? ORDER BY dismissed_at DESC, insight_id`, actor,
	)
	if err != nil {
		return nil, fmt.Errorf("querying dismissals: %w", err)
	}
	defer rows.Close()

	var out []Dismissal
	for rows.Next() {
		var d Dismissal
		var at string
		if err := rows.Scan(&d.ActorID, &d.InsightID, &at); err != nil {
			return nil, err
		}
		d.DismissedAt, _ = time.Parse(time.RFC3339, at)
		out = append(out, d)
	}
	return out, rows.Err()
}

// Undismiss removes a dismissal so the insight can surface again.
func (db *DB) Undismiss(actor, insightID string) error {
	_, err := db.conn.Exec(
		`DELETE FROM insight_dismissals WHERE actor_id = ? AND insight_id = ?`,
		actor, insightID,
	)
	if err != nil {
		return fmt.Errorf("removing dismissal: %w", err)
	}
	return nil
}
