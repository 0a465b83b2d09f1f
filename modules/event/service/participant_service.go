package service

import (
	"context"
	"strings"
	"time"

	"gameday-api/core/constants"
	"gameday-api/core/errors"
	"gameday-api/core/logger"
	"gameday-api/core/utils"
	"gameday-api/modules/event/dto"
	"gameday-api/modules/event/entity"

	"github.com/google/uuid"
)

// triggerBudget bounds how long the post-join crossing check may run once
// the join response has been sent.
const triggerBudget = 15 * time.Second

// JoinEvent creates a participant response. Anonymous joiners get a fresh
// opaque token returned exactly once; signed-in joiners use their identity
// id. Only the bcrypt hash is stored. After the insert the confirmation
// trigger re-checks the threshold off the request path.
func (s *EventService) JoinEvent(ctx context.Context, urlHash string, claim entity.AuthorizationClaim, joinerName string, req *dto.JoinEventRequest) (*dto.JoinResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, urlHash)
	if appErr != nil {
		return nil, appErr
	}

	var fields []errors.FieldError
	addField := func(field, reason string) {
		fields = append(fields, errors.FieldError{Field: field, Reason: reason})
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(joinerName)
	}
	if name == "" {
		addField("name", "name is required")
	}

	likelihood := 1.0
	if req.Likelihood != nil {
		likelihood = *req.Likelihood
	}
	if likelihood < 0 || likelihood > 1 {
		addField("likelihood", "likelihood must be between 0 and 1")
	}

	if len(req.Comment) > constants.MaxCommentLength {
		addField("comment", "comment must be at most 100 characters")
	}

	if len(fields) > 0 {
		return nil, errors.NewValidationError("validation failed", fields)
	}

	// One response per identity: a signed-in user's token is their stable
	// id, so a second join would double-count their likelihood and leave
	// edit/delete ambiguous between the rows.
	if claim.IsSignedIn() {
		existing, err := s.participantRepo.GetParticipantsByEventID(ctx, event.ID)
		if err != nil {
			return nil, s.dbErr("Failed to join event", err)
		}
		for i := range existing {
			if utils.CompareToken(existing[i].ResponseToken, claim.Token()) {
				return nil, errors.NewAppError(errors.ErrAlreadyExists, "You have already responded to this event", nil)
			}
		}
	}

	token := claim.Token()
	if !claim.IsSignedIn() {
		token = utils.GenerateResponseToken()
	}
	tokenHash, err := utils.HashToken(token)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create response token", err)
	}

	participant := &entity.Participant{
		ID:            uuid.New(),
		EventID:       event.ID,
		Name:          name,
		Likelihood:    likelihood,
		ResponseToken: tokenHash,
	}
	if req.Email != "" {
		participant.Email = &req.Email
	}
	if req.Phone != "" {
		participant.Phone = &req.Phone
	}
	if req.Comment != "" {
		participant.Comment = &req.Comment
	}

	created, err := s.participantRepo.CreateParticipant(ctx, participant)
	if err != nil {
		return nil, s.dbErr("Failed to join event", err)
	}

	s.invalidate(ctx)

	// Notification is a side effect, not part of the join transaction:
	// run it off the request path with its own deadline.
	if s.trigger != nil {
		go func(ev entity.Event, pid uuid.UUID) {
			triggerCtx, cancel := context.WithTimeout(context.Background(), triggerBudget)
			defer cancel()
			s.trigger.AfterJoin(triggerCtx, &ev, pid)
		}(*event, created.ID)
	}

	logger.Info("EventService:JoinEvent",
		"url_hash", event.URLHash,
		"participant_id", created.ID.String(),
		"likelihood", created.Likelihood,
	)

	return &dto.JoinResponse{
		Participant:   dto.ToParticipantResponse(created),
		ResponseToken: token,
	}, nil
}

// authorizeResponse applies the uniform token rule: the presented claim
// (identity id or client-held token) must match the stored token hash.
// When allowCreator is set, the event creator passes as well.
func (s *EventService) authorizeResponse(event *entity.Event, participant *entity.Participant, claim entity.AuthorizationClaim, allowCreator bool) *errors.AppError {
	if allowCreator && claim.IsSignedIn() && claim.UserID() == event.CreatorID {
		return nil
	}
	if claim.Empty() || !utils.CompareToken(participant.ResponseToken, claim.Token()) {
		return errors.NewAppError(errors.ErrForbidden, "Not authorized to modify this response", nil)
	}
	return nil
}

func (s *EventService) EditResponse(ctx context.Context, urlHash string, participantID uuid.UUID, claim entity.AuthorizationClaim, req *dto.EditResponseRequest) (*dto.ParticipantResponse, *errors.AppError) {
	event, appErr := s.getEvent(ctx, urlHash)
	if appErr != nil {
		return nil, appErr
	}

	participant, err := s.participantRepo.GetParticipantByID(ctx, event.ID, participantID)
	if err != nil {
		return nil, s.dbErr("Failed to get response", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Response not found", nil)
	}

	if appErr := s.authorizeResponse(event, participant, claim, false); appErr != nil {
		return nil, appErr
	}

	var fields []errors.FieldError
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			fields = append(fields, errors.FieldError{Field: "name", Reason: "name is required"})
		} else {
			participant.Name = strings.TrimSpace(*req.Name)
		}
	}
	if req.Likelihood != nil {
		if *req.Likelihood < 0 || *req.Likelihood > 1 {
			fields = append(fields, errors.FieldError{Field: "likelihood", Reason: "likelihood must be between 0 and 1"})
		} else {
			participant.Likelihood = *req.Likelihood
		}
	}
	if req.Comment != nil {
		if len(*req.Comment) > constants.MaxCommentLength {
			fields = append(fields, errors.FieldError{Field: "comment", Reason: "comment must be at most 100 characters"})
		} else if *req.Comment == "" {
			participant.Comment = nil
		} else {
			participant.Comment = req.Comment
		}
	}
	if req.Email != nil {
		if *req.Email == "" {
			participant.Email = nil
		} else {
			participant.Email = req.Email
		}
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			participant.Phone = nil
		} else {
			participant.Phone = req.Phone
		}
	}

	if len(fields) > 0 {
		return nil, errors.NewValidationError("validation failed", fields)
	}

	if err := s.participantRepo.UpdateParticipant(ctx, participant); err != nil {
		return nil, s.dbErr("Failed to update response", err)
	}

	s.invalidate(ctx)
	resp := dto.ToParticipantResponse(participant)
	return &resp, nil
}

// DeleteResponse removes a response. The token-holder may remove their own;
// the event creator may remove any. Deletions never fire a notification.
func (s *EventService) DeleteResponse(ctx context.Context, urlHash string, participantID uuid.UUID, claim entity.AuthorizationClaim) *errors.AppError {
	event, appErr := s.getEvent(ctx, urlHash)
	if appErr != nil {
		return appErr
	}

	participant, err := s.participantRepo.GetParticipantByID(ctx, event.ID, participantID)
	if err != nil {
		return s.dbErr("Failed to get response", err)
	}
	if participant == nil {
		return errors.NewAppError(errors.ErrNotFound, "Response not found", nil)
	}

	if appErr := s.authorizeResponse(event, participant, claim, true); appErr != nil {
		return appErr
	}

	if err := s.participantRepo.DeleteParticipant(ctx, event.ID, participantID); err != nil {
		return s.dbErr("Failed to delete response", err)
	}

	s.invalidate(ctx)
	return nil
}
