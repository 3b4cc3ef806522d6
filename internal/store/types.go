package store

import "time"

// Dismissal records that an actor dismissed an insight.
type Dismissal struct {
	ActorID     string
	InsightID   string
	DismissedAt time.Time
}
