package entity

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a single RSVP. Likelihood is in [0,1]: 1 is a firm yes, a
// fractional value is a maybe, 0 still occupies a response slot but adds
// nothing to expected attendance. ResponseToken holds the bcrypt hash of
// the secret returned to the joiner.
type Participant struct {
	ID            uuid.UUID `db:"id" json:"id"`
	EventID       int       `db:"event_id" json:"-"`
	Name          string    `db:"name" json:"name"`
	Email         *string   `db:"email" json:"email,omitempty"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Likelihood    float64   `db:"likelihood" json:"likelihood"`
	ResponseToken string    `db:"response_token" json:"-"`
	Comment       *string   `db:"comment" json:"comment,omitempty"`
	JoinedAt      time.Time `db:"joined_at" json:"joined_at"`
}
