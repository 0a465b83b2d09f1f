package repository

import (
	"context"
	"database/sql"

	"gameday-api/core/database"
	"gameday-api/core/logger"
	eventEntity "gameday-api/modules/event/entity"
	"gameday-api/modules/notification/entity"
)

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// NotificationRepositoryInterface defines the repository contract
type NotificationRepositoryInterface interface {
	ClaimConfirmation(ctx context.Context, eventID int) (bool, error)
	GetEventByID(ctx context.Context, eventID int) (*eventEntity.Event, error)
	GetParticipantsByEventID(ctx context.Context, eventID int) ([]eventEntity.Participant, error)
	RecordAttempt(ctx context.Context, notification *entity.Notification) error
}

// ClaimConfirmation atomically marks the event confirmed. Returns false
// when another checker already claimed it; the conditional update is what
// makes the confirmation email exactly-once.
func (r *NotificationRepository) ClaimConfirmation(ctx context.Context, eventID int) (bool, error) {
	query := `
		UPDATE events
		SET confirmed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND confirmed_at IS NULL
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		logger.Error("NotificationRepository:ClaimConfirmation", err)
		return false, err
	}
	return true, nil
}

func (r *NotificationRepository) GetEventByID(ctx context.Context, eventID int) (*eventEntity.Event, error) {
	query := `
		SELECT id, url_hash, is_private, event_type_id, title, location, date, end_time,
		       participant_threshold, creator_id, creator_name, timezone, notes, web_link, image_url,
		       is_recurring, recurrence_frequency, parent_event_id, confirmed_at, created_at, updated_at
		FROM events WHERE id = $1
	`

	var event eventEntity.Event
	err := r.db.GetContext(ctx, &event, query, eventID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("NotificationRepository:GetEventByID", err)
		return nil, err
	}
	return &event, nil
}

func (r *NotificationRepository) GetParticipantsByEventID(ctx context.Context, eventID int) ([]eventEntity.Participant, error) {
	query := `
		SELECT id, event_id, name, email, phone, likelihood, response_token, comment, joined_at
		FROM participants
		WHERE event_id = $1
		ORDER BY joined_at
	`

	var participants []eventEntity.Participant
	err := r.db.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		logger.Error("NotificationRepository:GetParticipantsByEventID", err)
		return nil, err
	}
	return participants, nil
}

// RecordAttempt logs one delivery attempt.
func (r *NotificationRepository) RecordAttempt(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (event_id, recipient, kind, sent_at, last_error)
		VALUES ($1, $2, $3, $4, $5)
	`

	err := r.db.ExecContext(ctx, query,
		notification.EventID, notification.Recipient, notification.Kind,
		notification.SentAt, notification.LastError)
	if err != nil {
		logger.Error("NotificationRepository:RecordAttempt", err)
		return err
	}
	return nil
}
