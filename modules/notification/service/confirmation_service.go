package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gameday-api/core/logger"
	"gameday-api/core/queue"
	"gameday-api/core/timezone"
	eventEntity "gameday-api/modules/event/entity"
	eventService "gameday-api/modules/event/service"
	"gameday-api/modules/notification/entity"
	"gameday-api/modules/notification/repository"

	"github.com/google/uuid"
)

// Enqueuer abstracts the task queue so tests can capture enqueues.
type Enqueuer interface {
	EnqueueEventConfirmed(eventID int) error
}

// ConfirmationService watches for the threshold crossing after each join
// and dispatches the one-time "event confirmed" email fan-out.
type ConfirmationService struct {
	repo   repository.NotificationRepositoryInterface
	queue  Enqueuer
	mailer Mailer

	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func NewConfirmationService(repo repository.NotificationRepositoryInterface, q Enqueuer, mailer Mailer) *ConfirmationService {
	return &ConfirmationService{
		repo:   repo,
		queue:  q,
		mailer: mailer,
		locks:  make(map[int]*sync.Mutex),
	}
}

// eventLock serializes the crossing check per event so two simultaneous
// joiners cannot both observe "below threshold before".
func (s *ConfirmationService) eventLock(eventID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[eventID] = l
	}
	return l
}

// AfterJoin recomputes the threshold state from persisted storage after the
// new participant is durably inserted. The "before" set is the current set
// minus the most recent insert. Fires only on the false->true transition;
// the conditional confirmed_at claim keeps it exactly-once even across
// processes. Deletions never come through here, so there is no un-confirm.
func (s *ConfirmationService) AfterJoin(ctx context.Context, event *eventEntity.Event, newParticipantID uuid.UUID) {
	l := s.eventLock(event.ID)
	l.Lock()
	defer l.Unlock()

	participants, err := s.repo.GetParticipantsByEventID(ctx, event.ID)
	if err != nil {
		logger.Error("ConfirmationService:AfterJoin:GetParticipants", err)
		return
	}

	after, appErr := eventService.HasMinimumParticipants(participants, event.ParticipantThreshold)
	if appErr != nil {
		logger.Warn("ConfirmationService:AfterJoin", "event_id", event.ID, "error", appErr)
		return
	}
	if !after {
		return
	}

	before := make([]eventEntity.Participant, 0, len(participants))
	for _, p := range participants {
		if p.ID != newParticipantID {
			before = append(before, p)
		}
	}
	wasBefore, appErr := eventService.HasMinimumParticipants(before, event.ParticipantThreshold)
	if appErr != nil || wasBefore {
		return
	}

	claimed, err := s.repo.ClaimConfirmation(ctx, event.ID)
	if err != nil {
		logger.Error("ConfirmationService:AfterJoin:ClaimConfirmation", err)
		return
	}
	if !claimed {
		return
	}

	logger.Info("ConfirmationService:AfterJoin:Confirmed",
		"event_id", event.ID,
		"url_hash", event.URLHash,
		"threshold", event.ParticipantThreshold,
	)

	if s.queue != nil {
		if err := s.queue.EnqueueEventConfirmed(event.ID); err == nil {
			return
		} else {
			logger.Error("ConfirmationService:AfterJoin:Enqueue", err)
		}
	}
	// Queue unavailable: fan out inline rather than dropping the send.
	if err := s.ProcessConfirmed(ctx, queue.EventConfirmedPayload{EventID: event.ID}); err != nil {
		logger.Error("ConfirmationService:AfterJoin:InlineFanout", err)
	}
}

// ProcessConfirmed is the worker side: one email per participant with an
// address. A failure for one recipient is recorded and skipped, never
// propagated to the others.
func (s *ConfirmationService) ProcessConfirmed(ctx context.Context, payload queue.EventConfirmedPayload) error {
	event, err := s.repo.GetEventByID(ctx, payload.EventID)
	if err != nil {
		return err
	}
	if event == nil {
		// Deleted between claim and fan-out; nothing to send.
		return nil
	}

	participants, err := s.repo.GetParticipantsByEventID(ctx, payload.EventID)
	if err != nil {
		return err
	}

	subject, body := confirmationMessage(event)

	for _, p := range participants {
		if p.Email == nil || *p.Email == "" {
			continue
		}

		record := &entity.Notification{
			EventID:   event.ID,
			Recipient: *p.Email,
			Kind:      entity.KindEventConfirmed,
		}

		if sendErr := s.mailer.Send(*p.Email, subject, body); sendErr != nil {
			msg := sendErr.Error()
			record.LastError = &msg
			logger.Error("ConfirmationService:ProcessConfirmed:Send",
				"event_id", event.ID,
				"recipient", *p.Email,
				"error", sendErr,
			)
		} else {
			now := time.Now()
			record.SentAt = &now
		}

		if recErr := s.repo.RecordAttempt(ctx, record); recErr != nil {
			logger.Error("ConfirmationService:ProcessConfirmed:RecordAttempt", recErr)
		}
	}
	return nil
}

func confirmationMessage(event *eventEntity.Event) (subject, body string) {
	when := timezone.FormatInZone(event.Date, event.Timezone, timezone.DisplayLayout)
	abbr := timezone.Abbreviation(event.Date, event.Timezone)
	if abbr != "" {
		when = when + " " + abbr
	}

	subject = fmt.Sprintf("It's on! %s has enough players", event.Title)
	body = fmt.Sprintf(
		"Good news - enough people have committed to %s.\n\nWhen: %s\nWhere: %s\n\nSee you there!\n",
		event.Title, when, event.Location,
	)
	return subject, body
}
