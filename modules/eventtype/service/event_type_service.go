package service

import (
	"context"

	"gameday-api/core/database"
	"gameday-api/core/errors"
	"gameday-api/modules/eventtype/entity"
	"gameday-api/modules/eventtype/repository"
)

// EventTypeService serves the immutable reference list.
type EventTypeService struct {
	repo repository.EventTypeRepositoryInterface
}

type EventTypeServiceInterface interface {
	GetAll(ctx context.Context) ([]entity.EventType, *errors.AppError)
	GetByID(ctx context.Context, id int) (*entity.EventType, *errors.AppError)
}

func NewEventTypeService(repo repository.EventTypeRepositoryInterface) EventTypeServiceInterface {
	return &EventTypeService{repo: repo}
}

func (s *EventTypeService) GetAll(ctx context.Context) ([]entity.EventType, *errors.AppError) {
	types, err := s.repo.GetAll(ctx)
	if err != nil {
		if database.IsUnavailable(err) {
			return nil, errors.NewAppError(errors.ErrDatabaseUnavailable, "database unavailable", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event types", err)
	}
	return types, nil
}

func (s *EventTypeService) GetByID(ctx context.Context, id int) (*entity.EventType, *errors.AppError) {
	et, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if database.IsUnavailable(err) {
			return nil, errors.NewAppError(errors.ErrDatabaseUnavailable, "database unavailable", err)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event type", err)
	}
	if et == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event type not found", nil)
	}
	return et, nil
}
