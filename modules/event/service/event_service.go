package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"gameday-api/core/cache"
	"gameday-api/core/constants"
	"gameday-api/core/database"
	"gameday-api/core/errors"
	"gameday-api/core/logger"
	"gameday-api/core/params"
	"gameday-api/core/storage"
	"gameday-api/core/timezone"
	"gameday-api/core/utils"
	"gameday-api/modules/event/dto"
	"gameday-api/modules/event/entity"
	"gameday-api/modules/event/repository"
	ettEntity "gameday-api/modules/eventtype/entity"
	ettRepository "gameday-api/modules/eventtype/repository"
	weatherDTO "gameday-api/modules/weather/dto"
	weatherService "gameday-api/modules/weather/service"

	"github.com/google/uuid"
)

// cacheResource is the query-cache bucket for every event read. One
// invalidation message after a mutation clears lists and single-event
// entries alike.
const cacheResource = "events"

// ConfirmationTrigger runs the threshold-crossing check after a join. The
// notification module provides the implementation; the call must never
// block or fail the join itself.
type ConfirmationTrigger interface {
	AfterJoin(ctx context.Context, event *entity.Event, newParticipantID uuid.UUID)
}

// EventService handles event lifecycle business logic
type EventService struct {
	repo            repository.EventRepositoryInterface
	participantRepo repository.ParticipantRepositoryInterface
	eventTypeRepo   ettRepository.EventTypeRepositoryInterface
	weather         weatherService.WeatherServiceInterface
	cache           *cache.Cache
	uploader        storage.Uploader
	trigger         ConfirmationTrigger
}

// EventServiceInterface defines the service contract
type EventServiceInterface interface {
	ListEvents(ctx context.Context, qp params.QueryParams) (*dto.PaginatedEventsResponse, *errors.AppError)
	ListMyEvents(ctx context.Context, creatorID string) ([]dto.EventResponse, *errors.AppError)
	GetEventByURLHash(ctx context.Context, urlHash string) (*dto.EventResponse, *errors.AppError)
	CreateEvent(ctx context.Context, creatorID, creatorName string, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, urlHash, requesterID string, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, urlHash, requesterID string) *errors.AppError
	UploadImage(ctx context.Context, urlHash, requesterID, filename, contentType string, body io.Reader) (*dto.EventResponse, *errors.AppError)

	JoinEvent(ctx context.Context, urlHash string, claim entity.AuthorizationClaim, joinerName string, req *dto.JoinEventRequest) (*dto.JoinResponse, *errors.AppError)
	EditResponse(ctx context.Context, urlHash string, participantID uuid.UUID, claim entity.AuthorizationClaim, req *dto.EditResponseRequest) (*dto.ParticipantResponse, *errors.AppError)
	DeleteResponse(ctx context.Context, urlHash string, participantID uuid.UUID, claim entity.AuthorizationClaim) *errors.AppError
}

// NewEventService creates a new event service
func NewEventService(
	repo repository.EventRepositoryInterface,
	participantRepo repository.ParticipantRepositoryInterface,
	eventTypeRepo ettRepository.EventTypeRepositoryInterface,
	weather weatherService.WeatherServiceInterface,
	c *cache.Cache,
	uploader storage.Uploader,
	trigger ConfirmationTrigger,
) EventServiceInterface {
	return &EventService{
		repo:            repo,
		participantRepo: participantRepo,
		eventTypeRepo:   eventTypeRepo,
		weather:         weather,
		cache:           c,
		uploader:        uploader,
		trigger:         trigger,
	}
}

func (s *EventService) dbErr(op string, err error) *errors.AppError {
	if database.IsUnavailable(err) {
		return errors.NewAppError(errors.ErrDatabaseUnavailable, "database unavailable", err)
	}
	return errors.NewAppError(errors.ErrInternalServer, op, err)
}

// attendanceSummary computes the progress signal for one event.
func (s *EventService) attendanceSummary(event *entity.Event, participants []entity.Participant) dto.AttendanceSummary {
	summary := dto.AttendanceSummary{
		RespondedCount: len(participants),
		Confirmed:      event.ConfirmedAt != nil,
	}
	progress, appErr := ProgressPercentage(participants, event.ParticipantThreshold)
	if appErr != nil {
		// Legacy rows with a bad threshold surface as zero progress
		// instead of Inf/NaN leaking into responses.
		logger.Warn("EventService:attendanceSummary", "url_hash", event.URLHash, "error", appErr)
		return summary
	}
	summary.ProgressPercentage = progress
	summary.ExpectedAttendance = DisplayedAttendance(event.ParticipantThreshold, progress)
	return summary
}

// ===================== Reads =====================

func (s *EventService) ListEvents(ctx context.Context, qp params.QueryParams) (*dto.PaginatedEventsResponse, *errors.AppError) {
	cacheParams := qp.CacheKey()
	if s.cache != nil {
		var cached dto.PaginatedEventsResponse
		if err := s.cache.GetQuery(ctx, cacheResource, cacheParams, &cached); err == nil {
			return &cached, nil
		}
	}

	events, total, err := s.repo.ListPublicEvents(ctx, qp.Limit, qp.Offset())
	if err != nil {
		return nil, s.dbErr("Failed to list events", err)
	}

	items, appErr := s.assembleResponses(ctx, events)
	if appErr != nil {
		return nil, appErr
	}

	resp := &dto.PaginatedEventsResponse{
		Items:      items,
		TotalItems: total,
		PageNumber: qp.Page,
		PageSize:   qp.Limit,
	}
	if s.cache != nil {
		s.cache.SetQuery(ctx, cacheResource, cacheParams, resp)
	}
	return resp, nil
}

func (s *EventService) ListMyEvents(ctx context.Context, creatorID string) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.ListEventsByCreator(ctx, creatorID)
	if err != nil {
		return nil, s.dbErr("Failed to list events", err)
	}
	return s.assembleResponses(ctx, events)
}

func (s *EventService) GetEventByURLHash(ctx context.Context, urlHash string) (*dto.EventResponse, *errors.AppError) {
	cacheParams := "hash=" + urlHash
	if s.cache != nil {
		var cached dto.EventResponse
		if err := s.cache.GetQuery(ctx, cacheResource, cacheParams, &cached); err == nil {
			return &cached, nil
		}
	}

	event, appErr := s.getEvent(ctx, urlHash)
	if appErr != nil {
		return nil, appErr
	}

	items, appErr := s.assembleResponses(ctx, []entity.Event{*event})
	if appErr != nil {
		return nil, appErr
	}

	resp := &items[0]
	if s.cache != nil {
		s.cache.SetQuery(ctx, cacheResource, cacheParams, resp)
	}
	return resp, nil
}

func (s *EventService) getEvent(ctx context.Context, urlHash string) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetEventByURLHash(ctx, urlHash)
	if err != nil {
		return nil, s.dbErr("Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	return event, nil
}

// assembleResponses embeds participants, the event type and the weather
// forecast. Forecast lookups run concurrently; each degrades to null on
// failure without affecting the response.
func (s *EventService) assembleResponses(ctx context.Context, events []entity.Event) ([]dto.EventResponse, *errors.AppError) {
	now := time.Now()
	items := make([]dto.EventResponse, len(events))
	if len(events) == 0 {
		return items, nil
	}

	ids := make([]int, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	participantsByEvent, err := s.participantRepo.GetParticipantsByEventIDs(ctx, ids)
	if err != nil {
		return nil, s.dbErr("Failed to load participants", err)
	}

	types, err := s.eventTypeRepo.GetAll(ctx)
	if err != nil {
		return nil, s.dbErr("Failed to load event types", err)
	}
	typeByID := make(map[int]*ettEntity.EventType, len(types))
	for i := range types {
		typeByID[types[i].ID] = &types[i]
	}

	forecasts := s.fetchForecasts(ctx, events)

	for i := range events {
		e := &events[i]
		participants := participantsByEvent[e.ID]
		items[i] = *dto.ToEventResponse(
			e,
			participants,
			typeByID[e.EventTypeID],
			forecasts[i],
			s.attendanceSummary(e, participants),
			now,
		)
	}
	return items, nil
}

func (s *EventService) fetchForecasts(ctx context.Context, events []entity.Event) []*weatherDTO.Forecast {
	forecasts := make([]*weatherDTO.Forecast, len(events))
	if s.weather == nil {
		return forecasts
	}

	var wg sync.WaitGroup
	for i := range events {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			forecasts[i] = s.weather.GetForecast(ctx, events[i].Location, events[i].Date)
		}(i)
	}
	wg.Wait()
	return forecasts
}

// ===================== Create / Update / Delete =====================

func (s *EventService) CreateEvent(ctx context.Context, creatorID, creatorName string, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	var fields []errors.FieldError
	addField := func(field, reason string) {
		fields = append(fields, errors.FieldError{Field: field, Reason: reason})
	}

	if strings.TrimSpace(req.Title) == "" {
		addField("title", "title is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		addField("location", "location is required")
	}
	if req.EventTypeID <= 0 {
		addField("event_type_id", "event type is required")
	}
	if req.ParticipantThreshold < constants.MinParticipantThreshold {
		addField("participant_threshold", fmt.Sprintf("participant threshold must be at least %d", constants.MinParticipantThreshold))
	}

	zone := req.Timezone
	if zone == "" {
		zone = timezone.DetectViewerZone()
	} else if !timezone.Valid(zone) {
		addField("timezone", "unknown timezone")
	}

	var date time.Time
	if req.Date == "" {
		addField("date", "date is required")
	} else if timezone.Valid(zone) {
		var err error
		date, err = timezone.ParseFormInputAsUTC(req.Date, zone)
		if err != nil {
			addField("date", "invalid date")
		}
	}

	var endTime *time.Time
	if req.EndTime != "" && timezone.Valid(zone) {
		parsed, err := timezone.ParseFormInputAsUTC(req.EndTime, zone)
		if err != nil {
			addField("end_time", "invalid end time")
		} else if !date.IsZero() && parsed.Before(date) {
			addField("end_time", "end time must be after the start")
		} else {
			endTime = &parsed
		}
	}

	if req.WebLink != "" && !validWebLink(req.WebLink) {
		addField("web_link", "web link must use an http(s) scheme")
	}

	var recurrence *string
	if req.IsRecurring {
		if !entity.ValidRecurrenceFrequency(req.RecurrenceFrequency) {
			addField("recurrence_frequency", "recurrence frequency must be weekly, biweekly or monthly")
		} else {
			recurrence = &req.RecurrenceFrequency
		}
	}

	var parentEventID *int
	if req.ParentEventURLHash != "" {
		parent, err := s.repo.GetEventByURLHash(ctx, req.ParentEventURLHash)
		if err != nil {
			return nil, s.dbErr("Failed to resolve parent event", err)
		}
		if parent == nil {
			addField("parent_event_url_hash", "parent event not found")
		} else {
			parentEventID = &parent.ID
		}
	}

	if req.EventTypeID > 0 {
		et, err := s.eventTypeRepo.GetByID(ctx, req.EventTypeID)
		if err != nil {
			return nil, s.dbErr("Failed to resolve event type", err)
		}
		if et == nil {
			addField("event_type_id", "unknown event type")
		}
	}

	if len(fields) > 0 {
		return nil, errors.NewValidationError("validation failed", fields)
	}

	event := &entity.Event{
		URLHash:              utils.GenerateURLHash(req.Title),
		IsPrivate:            req.IsPrivate,
		EventTypeID:          req.EventTypeID,
		Title:                strings.TrimSpace(req.Title),
		Location:             strings.TrimSpace(req.Location),
		Date:                 date,
		EndTime:              endTime,
		ParticipantThreshold: req.ParticipantThreshold,
		CreatorID:            creatorID,
		CreatorName:          creatorName,
		Timezone:             zone,
		Notes:                req.Notes,
		WebLink:              req.WebLink,
		IsRecurring:          req.IsRecurring,
		RecurrenceFrequency:  recurrence,
		ParentEventID:        parentEventID,
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, s.dbErr("Failed to create event", err)
	}

	s.invalidate(ctx)
	items, appErr := s.assembleResponses(ctx, []entity.Event{*created})
	if appErr != nil {
		return nil, appErr
	}
	return &items[0], nil
}

func (s *EventService) UpdateEvent(ctx context.Context, urlHash, requesterID string, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, urlHash)
	if appErr != nil {
		return nil, appErr
	}
	if event.CreatorID != requesterID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the event creator may modify this event", nil)
	}

	var fields []errors.FieldError
	addField := func(field, reason string) {
		fields = append(fields, errors.FieldError{Field: field, Reason: reason})
	}

	// Date fields in the patch are wall-clock strings in the event's
	// zone, or in the newly supplied zone when the patch changes it.
	zone := event.Timezone
	if req.Timezone != nil {
		if !timezone.Valid(*req.Timezone) {
			addField("timezone", "unknown timezone")
		} else {
			zone = *req.Timezone
		}
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			addField("title", "title is required")
		} else {
			event.Title = strings.TrimSpace(*req.Title)
		}
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			addField("location", "location is required")
		} else {
			event.Location = strings.TrimSpace(*req.Location)
		}
	}
	if req.EventTypeID != nil {
		et, err := s.eventTypeRepo.GetByID(ctx, *req.EventTypeID)
		if err != nil {
			return nil, s.dbErr("Failed to resolve event type", err)
		}
		if et == nil {
			addField("event_type_id", "unknown event type")
		} else {
			event.EventTypeID = *req.EventTypeID
		}
	}
	if req.ParticipantThreshold != nil {
		if *req.ParticipantThreshold < constants.MinParticipantThreshold {
			addField("participant_threshold", fmt.Sprintf("participant threshold must be at least %d", constants.MinParticipantThreshold))
		} else {
			event.ParticipantThreshold = *req.ParticipantThreshold
		}
	}
	if req.Date != nil {
		parsed, err := timezone.ParseFormInputAsUTC(*req.Date, zone)
		if err != nil {
			addField("date", "invalid date")
		} else {
			event.Date = parsed
		}
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			event.EndTime = nil
		} else {
			parsed, err := timezone.ParseFormInputAsUTC(*req.EndTime, zone)
			if err != nil {
				addField("end_time", "invalid end time")
			} else {
				event.EndTime = &parsed
			}
		}
	}
	if req.WebLink != nil {
		if *req.WebLink != "" && !validWebLink(*req.WebLink) {
			addField("web_link", "web link must use an http(s) scheme")
		} else {
			event.WebLink = *req.WebLink
		}
	}
	if req.IsPrivate != nil {
		event.IsPrivate = *req.IsPrivate
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if req.IsRecurring != nil {
		event.IsRecurring = *req.IsRecurring
		if !*req.IsRecurring {
			event.RecurrenceFrequency = nil
		}
	}
	if req.RecurrenceFrequency != nil {
		if !entity.ValidRecurrenceFrequency(*req.RecurrenceFrequency) {
			addField("recurrence_frequency", "recurrence frequency must be weekly, biweekly or monthly")
		} else {
			event.RecurrenceFrequency = req.RecurrenceFrequency
		}
	}
	if event.IsRecurring && event.RecurrenceFrequency == nil {
		addField("recurrence_frequency", "recurrence frequency must be weekly, biweekly or monthly")
	}

	if len(fields) > 0 {
		return nil, errors.NewValidationError("validation failed", fields)
	}

	event.Timezone = zone
	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, s.dbErr("Failed to update event", err)
	}

	s.invalidate(ctx)
	return s.GetEventByURLHash(ctx, urlHash)
}

func (s *EventService) DeleteEvent(ctx context.Context, urlHash, requesterID string) *errors.AppError {
	event, appErr := s.getEvent(ctx, urlHash)
	if appErr != nil {
		return appErr
	}
	if event.CreatorID != requesterID {
		return errors.NewAppError(errors.ErrForbidden, "Only the event creator may delete this event", nil)
	}

	if err := s.repo.DeleteEvent(ctx, event.ID); err != nil {
		return s.dbErr("Failed to delete event", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *EventService) UploadImage(ctx context.Context, urlHash, requesterID, filename, contentType string, body io.Reader) (*dto.EventResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, urlHash)
	if appErr != nil {
		return nil, appErr
	}
	if event.CreatorID != requesterID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the event creator may modify this event", nil)
	}
	if s.uploader == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "image storage is not configured", nil)
	}

	key := fmt.Sprintf("events/%s/%s-%s", event.URLHash, utils.GenerateID(), filename)
	imageURL, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalService, "Failed to store image", err)
	}

	if err := s.repo.SetImageURL(ctx, event.ID, imageURL); err != nil {
		return nil, s.dbErr("Failed to save image URL", err)
	}

	s.invalidate(ctx)
	return s.GetEventByURLHash(ctx, urlHash)
}

func (s *EventService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateResource(ctx, cacheResource)
	}
}

func validWebLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
