package repository

import (
	"context"
	"database/sql"

	"gameday-api/core/database"
	"gameday-api/core/logger"
	"gameday-api/modules/eventtype/entity"
)

// EventTypeRepository reads the event_types reference table.
type EventTypeRepository struct {
	DB database.IDatabase
}

func NewEventTypeRepository(db database.IDatabase) *EventTypeRepository {
	return &EventTypeRepository{DB: db}
}

// EventTypeRepositoryInterface defines the repository contract
type EventTypeRepositoryInterface interface {
	GetAll(ctx context.Context) ([]entity.EventType, error)
	GetByID(ctx context.Context, id int) (*entity.EventType, error)
}

func (r *EventTypeRepository) GetAll(ctx context.Context) ([]entity.EventType, error) {
	query := `SELECT id, name, color, icon FROM event_types ORDER BY id`

	var types []entity.EventType
	err := r.DB.SelectContext(ctx, &types, query)
	if err != nil {
		logger.Error("EventTypeRepository:GetAll", err)
		return nil, err
	}

	return types, nil
}

func (r *EventTypeRepository) GetByID(ctx context.Context, id int) (*entity.EventType, error) {
	query := `SELECT id, name, color, icon FROM event_types WHERE id = $1`

	var et entity.EventType
	err := r.DB.GetContext(ctx, &et, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventTypeRepository:GetByID", err)
		return nil, err
	}

	return &et, nil
}
