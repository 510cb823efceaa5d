package models

import "time"

// TimelineEvent represents a row of the timeline_events table. The table is
// append-only; there are no update or delete queries against it.
type TimelineEvent struct {
	EventID     string    `db:"event_id"`
	ShipmentID  string    `db:"shipment_id"`
	Status      string    `db:"status"`
	Note        string    `db:"note"`
	ActorUserID string    `db:"actor_user_id"`
	CreatedAt   time.Time `db:"created_at"`
}
