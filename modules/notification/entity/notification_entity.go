package entity

import "time"

// NotificationKind names the notification classes.
type NotificationKind string

const (
	KindEventConfirmed NotificationKind = "event_confirmed"
)

// Notification is one delivery attempt record. Delivery is best-effort;
// the log exists for observability, not retry bookkeeping.
type Notification struct {
	ID        int              `db:"id" json:"id"`
	EventID   int              `db:"event_id" json:"event_id"`
	Recipient string           `db:"recipient" json:"recipient"`
	Kind      NotificationKind `db:"kind" json:"kind"`
	SentAt    *time.Time       `db:"sent_at" json:"sent_at,omitempty"`
	LastError *string          `db:"last_error" json:"last_error,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
