package dto

import (
	"time"

	"gameday-api/core/timezone"
	"gameday-api/modules/event/entity"
	eventtype "gameday-api/modules/eventtype/entity"
	weather "gameday-api/modules/weather/dto"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event. Date and EndTime are
// zone-local YYYY-MM-DDTHH:mm strings interpreted in Timezone.
type CreateEventRequest struct {
	Title                string `json:"title"`
	Location             string `json:"location"`
	Date                 string `json:"date"`
	EndTime              string `json:"end_time"`
	EventTypeID          int    `json:"event_type_id"`
	ParticipantThreshold int    `json:"participant_threshold"`
	Timezone             string `json:"timezone"`
	IsPrivate            bool   `json:"is_private"`
	Notes                string `json:"notes"`
	WebLink              string `json:"web_link"`
	IsRecurring          bool   `json:"is_recurring"`
	RecurrenceFrequency  string `json:"recurrence_frequency"`
	ParentEventURLHash   string `json:"parent_event_url_hash"`
}

// UpdateEventRequest is a patch: nil fields are left untouched. Date and
// EndTime are zone-local strings interpreted in the event's timezone, or in
// the newly supplied Timezone when the patch changes it.
type UpdateEventRequest struct {
	Title                *string `json:"title"`
	Location             *string `json:"location"`
	Date                 *string `json:"date"`
	EndTime              *string `json:"end_time"`
	EventTypeID          *int    `json:"event_type_id"`
	ParticipantThreshold *int    `json:"participant_threshold"`
	Timezone             *string `json:"timezone"`
	IsPrivate            *bool   `json:"is_private"`
	Notes                *string `json:"notes"`
	WebLink              *string `json:"web_link"`
	IsRecurring          *bool   `json:"is_recurring"`
	RecurrenceFrequency  *string `json:"recurrence_frequency"`
}

// JoinEventRequest creates a participant response. Likelihood defaults
// to 1 (a firm yes) when omitted.
type JoinEventRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Likelihood *float64 `json:"likelihood"`
	Comment    string   `json:"comment"`
}

// EditResponseRequest patches a participant response.
type EditResponseRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Phone      *string  `json:"phone"`
	Likelihood *float64 `json:"likelihood"`
	Comment    *string  `json:"comment"`
}

// ===================== Response DTOs =====================

// ParticipantResponse for a single RSVP.
type ParticipantResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Likelihood float64   `json:"likelihood"`
	Comment    string    `json:"comment,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
}

// JoinResponse returns the created participant plus the plaintext response
// token. Anonymous clients persist the token for later edit/delete calls;
// it is never retrievable again.
type JoinResponse struct {
	Participant   ParticipantResponse `json:"participant"`
	ResponseToken string              `json:"response_token"`
}

// AttendanceSummary is the progress signal attached to each event.
type AttendanceSummary struct {
	RespondedCount     int     `json:"responded_count"`
	ExpectedAttendance float64 `json:"expected_attendance"`
	ProgressPercentage float64 `json:"progress_percentage"`
	Confirmed          bool    `json:"confirmed"`
}

// EventResponse for event details. Date and EndTime are UTC instants;
// DateLocal/EndTimeLocal are form-input strings and DateDisplay a
// human-readable rendering, all in the event's own timezone.
type EventResponse struct {
	URLHash              string                `json:"url_hash"`
	IsPrivate            bool                  `json:"is_private"`
	Title                string                `json:"title"`
	Location             string                `json:"location"`
	Date                 time.Time             `json:"date"`
	EndTime              *time.Time            `json:"end_time,omitempty"`
	DateLocal            string                `json:"date_local"`
	EndTimeLocal         string                `json:"end_time_local,omitempty"`
	DateDisplay          string                `json:"date_display"`
	Timezone             string                `json:"timezone"`
	TimezoneAbbreviation string                `json:"timezone_abbreviation"`
	EventType            *eventtype.EventType  `json:"event_type,omitempty"`
	ParticipantThreshold int                   `json:"participant_threshold"`
	CreatorName          string                `json:"creator_name"`
	Notes                string                `json:"notes,omitempty"`
	WebLink              string                `json:"web_link,omitempty"`
	ImageURL             string                `json:"image_url,omitempty"`
	IsRecurring          bool                  `json:"is_recurring"`
	RecurrenceFrequency  string                `json:"recurrence_frequency,omitempty"`
	NextOccurrence       *time.Time            `json:"next_occurrence,omitempty"`
	Status               string                `json:"status"`
	Attendance           AttendanceSummary     `json:"attendance"`
	Participants         []ParticipantResponse `json:"participants"`
	Weather              *weather.Forecast     `json:"weather"`
	CreatedAt            time.Time             `json:"created_at"`
}

// PaginatedEventsResponse for the events list.
type PaginatedEventsResponse struct {
	Items      []EventResponse `json:"items"`
	TotalItems int             `json:"total_items"`
	PageNumber int             `json:"page_number"`
	PageSize   int             `json:"page_size"`
}

// ===================== Mapper Functions =====================

// ToParticipantResponse maps entity to DTO.
func ToParticipantResponse(p *entity.Participant) ParticipantResponse {
	resp := ParticipantResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Likelihood: p.Likelihood,
		JoinedAt:   p.JoinedAt,
	}
	if p.Comment != nil {
		resp.Comment = *p.Comment
	}
	return resp
}

// ToEventResponse maps entity to DTO. Attendance is computed by the
// service; the mapper only renders.
func ToEventResponse(
	e *entity.Event,
	participants []entity.Participant,
	et *eventtype.EventType,
	forecast *weather.Forecast,
	attendance AttendanceSummary,
	now time.Time,
) *EventResponse {
	resp := &EventResponse{
		URLHash:              e.URLHash,
		IsPrivate:            e.IsPrivate,
		Title:                e.Title,
		Location:             e.Location,
		Date:                 e.Date,
		EndTime:              e.EndTime,
		DateLocal:            timezone.ToFormInput(e.Date, e.Timezone),
		DateDisplay:          timezone.FormatInZone(e.Date, e.Timezone, timezone.DisplayLayout),
		Timezone:             e.Timezone,
		TimezoneAbbreviation: timezone.Abbreviation(e.Date, e.Timezone),
		EventType:            et,
		ParticipantThreshold: e.ParticipantThreshold,
		CreatorName:          e.CreatorName,
		Notes:                e.Notes,
		WebLink:              e.WebLink,
		ImageURL:             e.ImageURL,
		IsRecurring:          e.IsRecurring,
		Status:               string(e.Status(now)),
		Attendance:           attendance,
		Participants:         make([]ParticipantResponse, 0, len(participants)),
		Weather:              forecast,
		CreatedAt:            e.CreatedAt,
	}

	if e.EndTime != nil {
		resp.EndTimeLocal = timezone.ToFormInput(*e.EndTime, e.Timezone)
	}
	if e.RecurrenceFrequency != nil {
		resp.RecurrenceFrequency = *e.RecurrenceFrequency
		if next := e.NextOccurrence(now); !next.IsZero() {
			resp.NextOccurrence = &next
		}
	}
	for i := range participants {
		resp.Participants = append(resp.Participants, ToParticipantResponse(&participants[i]))
	}
	return resp
}
