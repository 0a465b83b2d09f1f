package repository

import (
	"context"
	"database/sql"

	"gameday-api/core/database"
	"gameday-api/core/logger"
	"gameday-api/modules/event/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ParticipantRepository handles participant database operations
type ParticipantRepository struct {
	DB database.IDatabase
}

func NewParticipantRepository(db database.IDatabase) *ParticipantRepository {
	return &ParticipantRepository{DB: db}
}

// ParticipantRepositoryInterface defines the repository contract
type ParticipantRepositoryInterface interface {
	CreateParticipant(ctx context.Context, participant *entity.Participant) (*entity.Participant, error)
	GetParticipantsByEventID(ctx context.Context, eventID int) ([]entity.Participant, error)
	GetParticipantsByEventIDs(ctx context.Context, eventIDs []int) (map[int][]entity.Participant, error)
	GetParticipantByID(ctx context.Context, eventID int, id uuid.UUID) (*entity.Participant, error)
	UpdateParticipant(ctx context.Context, participant *entity.Participant) error
	DeleteParticipant(ctx context.Context, eventID int, id uuid.UUID) error
}

const participantColumns = `id, event_id, name, email, phone, likelihood, response_token, comment, joined_at`

func (r *ParticipantRepository) CreateParticipant(ctx context.Context, participant *entity.Participant) (*entity.Participant, error) {
	query := `
		INSERT INTO participants (id, event_id, name, email, phone, likelihood, response_token, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + participantColumns

	var created entity.Participant
	err := r.DB.GetContext(ctx, &created, query,
		participant.ID, participant.EventID, participant.Name, participant.Email,
		participant.Phone, participant.Likelihood, participant.ResponseToken, participant.Comment)

	if err != nil {
		logger.Error("ParticipantRepository:CreateParticipant", err)
		return nil, err
	}

	return &created, nil
}

func (r *ParticipantRepository) GetParticipantsByEventID(ctx context.Context, eventID int) ([]entity.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = $1
		ORDER BY joined_at
	`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		logger.Error("ParticipantRepository:GetParticipantsByEventID", err)
		return nil, err
	}

	return participants, nil
}

// GetParticipantsByEventIDs batches the embed for the list endpoint.
func (r *ParticipantRepository) GetParticipantsByEventIDs(ctx context.Context, eventIDs []int) (map[int][]entity.Participant, error) {
	result := make(map[int][]entity.Participant, len(eventIDs))
	if len(eventIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = ANY($1)
		ORDER BY joined_at
	`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query, pq.Array(eventIDs))
	if err != nil {
		logger.Error("ParticipantRepository:GetParticipantsByEventIDs", err)
		return nil, err
	}

	for _, p := range participants {
		result[p.EventID] = append(result[p.EventID], p)
	}
	return result, nil
}

func (r *ParticipantRepository) GetParticipantByID(ctx context.Context, eventID int, id uuid.UUID) (*entity.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = $1 AND id = $2
	`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, eventID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ParticipantRepository:GetParticipantByID", err)
		return nil, err
	}

	return &participant, nil
}

func (r *ParticipantRepository) UpdateParticipant(ctx context.Context, participant *entity.Participant) error {
	query := `
		UPDATE participants
		SET name = $3, email = $4, phone = $5, likelihood = $6, comment = $7
		WHERE event_id = $1 AND id = $2
	`

	err := r.DB.ExecContext(ctx, query,
		participant.EventID, participant.ID, participant.Name, participant.Email,
		participant.Phone, participant.Likelihood, participant.Comment)

	if err != nil {
		logger.Error("ParticipantRepository:UpdateParticipant", err)
		return err
	}

	return nil
}

func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, eventID int, id uuid.UUID) error {
	query := `DELETE FROM participants WHERE event_id = $1 AND id = $2`
	err := r.DB.ExecContext(ctx, query, eventID, id)
	if err != nil {
		logger.Error("ParticipantRepository:DeleteParticipant", err)
		return err
	}
	return nil
}
