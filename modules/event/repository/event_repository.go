package repository

import (
	"context"
	"database/sql"

	"gameday-api/core/database"
	"gameday-api/core/logger"
	"gameday-api/modules/event/entity"
)

// EventRepository handles event database operations
type EventRepository struct {
	DB database.IDatabase
}

// NewEventRepository creates a new repository instance
func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

// EventRepositoryInterface defines the repository contract
type EventRepositoryInterface interface {
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByURLHash(ctx context.Context, urlHash string) (*entity.Event, error)
	ListPublicEvents(ctx context.Context, limit, offset int) ([]entity.Event, int, error)
	ListEventsByCreator(ctx context.Context, creatorID string) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	SetImageURL(ctx context.Context, eventID int, imageURL string) error
	DeleteEvent(ctx context.Context, eventID int) error
}

const eventColumns = `id, url_hash, is_private, event_type_id, title, location, date, end_time,
	       participant_threshold, creator_id, creator_name, timezone, notes, web_link, image_url,
	       is_recurring, recurrence_frequency, parent_event_id, confirmed_at, created_at, updated_at`

func (r *EventRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (url_hash, is_private, event_type_id, title, location, date, end_time,
		                    participant_threshold, creator_id, creator_name, timezone, notes, web_link,
		                    is_recurring, recurrence_frequency, parent_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + eventColumns

	var created entity.Event
	err := r.DB.GetContext(ctx, &created, query,
		event.URLHash, event.IsPrivate, event.EventTypeID, event.Title, event.Location,
		event.Date, event.EndTime, event.ParticipantThreshold, event.CreatorID, event.CreatorName,
		event.Timezone, event.Notes, event.WebLink, event.IsRecurring,
		event.RecurrenceFrequency, event.ParentEventID)

	if err != nil {
		logger.Error("EventRepository:CreateEvent", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) GetEventByURLHash(ctx context.Context, urlHash string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE url_hash = $1`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, urlHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByURLHash", err)
		return nil, err
	}

	return &event, nil
}

// ListPublicEvents returns a page of non-private events, upcoming first,
// plus the total count for pagination.
func (r *EventRepository) ListPublicEvents(ctx context.Context, limit, offset int) ([]entity.Event, int, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_private = FALSE
		ORDER BY date ASC
		LIMIT $1 OFFSET $2
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, limit, offset)
	if err != nil {
		logger.Error("EventRepository:ListPublicEvents", err)
		return nil, 0, err
	}

	var total int
	err = r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM events WHERE is_private = FALSE`)
	if err != nil {
		logger.Error("EventRepository:ListPublicEvents:Count", err)
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventRepository) ListEventsByCreator(ctx context.Context, creatorID string) ([]entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE creator_id = $1
		ORDER BY date ASC
	`

	var events []entity.Event
	err := r.DB.SelectContext(ctx, &events, query, creatorID)
	if err != nil {
		logger.Error("EventRepository:ListEventsByCreator", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET is_private = $2, event_type_id = $3, title = $4, location = $5, date = $6,
		    end_time = $7, participant_threshold = $8, timezone = $9, notes = $10,
		    web_link = $11, is_recurring = $12, recurrence_frequency = $13, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.IsPrivate, event.EventTypeID, event.Title, event.Location,
		event.Date, event.EndTime, event.ParticipantThreshold, event.Timezone,
		event.Notes, event.WebLink, event.IsRecurring, event.RecurrenceFrequency)

	if err != nil {
		logger.Error("EventRepository:UpdateEvent", err)
		return err
	}

	return nil
}

func (r *EventRepository) SetImageURL(ctx context.Context, eventID int, imageURL string) error {
	query := `UPDATE events SET image_url = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, eventID, imageURL)
	if err != nil {
		logger.Error("EventRepository:SetImageURL", err)
		return err
	}
	return nil
}

// DeleteEvent removes the event; participants and notification rows go
// with it via ON DELETE CASCADE.
func (r *EventRepository) DeleteEvent(ctx context.Context, eventID int) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, eventID)
	if err != nil {
		logger.Error("EventRepository:DeleteEvent", err)
		return err
	}
	return nil
}
