package entity

import (
	"time"

	"gameday-api/core/constants"
)

// RecurrenceFrequency enumerates the supported recurrence cadences.
type RecurrenceFrequency string

const (
	RecurrenceWeekly   RecurrenceFrequency = "weekly"
	RecurrenceBiweekly RecurrenceFrequency = "biweekly"
	RecurrenceMonthly  RecurrenceFrequency = "monthly"
)

// ValidRecurrenceFrequency reports membership in the enum.
func ValidRecurrenceFrequency(f string) bool {
	switch RecurrenceFrequency(f) {
	case RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return true
	}
	return false
}

// EventStatus is derived from the clock, never stored.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusConcluded EventStatus = "concluded"
)

// Event is a meetup. Date and EndTime are always UTC instants; Timezone is
// the authoritative IANA zone for interpreting them. URLHash is the only
// identifier exposed outside the API.
type Event struct {
	ID                   int        `db:"id" json:"-"`
	URLHash              string     `db:"url_hash" json:"url_hash"`
	IsPrivate            bool       `db:"is_private" json:"is_private"`
	EventTypeID          int        `db:"event_type_id" json:"event_type_id"`
	Title                string     `db:"title" json:"title"`
	Location             string     `db:"location" json:"location"`
	Date                 time.Time  `db:"date" json:"date"`
	EndTime              *time.Time `db:"end_time" json:"end_time,omitempty"`
	ParticipantThreshold int        `db:"participant_threshold" json:"participant_threshold"`
	CreatorID            string     `db:"creator_id" json:"-"`
	CreatorName          string     `db:"creator_name" json:"creator_name"`
	Timezone             string     `db:"timezone" json:"timezone"`
	Notes                string     `db:"notes" json:"notes"`
	WebLink              string     `db:"web_link" json:"web_link"`
	ImageURL             string     `db:"image_url" json:"image_url"`
	IsRecurring          bool       `db:"is_recurring" json:"is_recurring"`
	RecurrenceFrequency  *string    `db:"recurrence_frequency" json:"recurrence_frequency,omitempty"`
	ParentEventID        *int       `db:"parent_event_id" json:"-"`
	ConfirmedAt          *time.Time `db:"confirmed_at" json:"confirmed_at,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// Status derives the display state. An event stays active until its end
// (or start, when no end is set) plus a grace period has passed.
func (e *Event) Status(now time.Time) EventStatus {
	ref := e.Date
	if e.EndTime != nil {
		ref = *e.EndTime
	}
	if now.After(ref.Add(constants.ConcludedGrace)) {
		return EventStatusConcluded
	}
	return EventStatusActive
}

// NextOccurrence returns the next occurrence of a recurring event strictly
// after the given instant, stepping from the stored date by the recurrence
// cadence. Returns the zero time for non-recurring events.
func (e *Event) NextOccurrence(after time.Time) time.Time {
	if !e.IsRecurring || e.RecurrenceFrequency == nil {
		return time.Time{}
	}
	next := e.Date
	for !next.After(after) {
		switch RecurrenceFrequency(*e.RecurrenceFrequency) {
		case RecurrenceWeekly:
			next = next.AddDate(0, 0, 7)
		case RecurrenceBiweekly:
			next = next.AddDate(0, 0, 14)
		case RecurrenceMonthly:
			next = next.AddDate(0, 1, 0)
		default:
			return time.Time{}
		}
	}
	return next
}
