package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gameday-api/core/queue"
	eventEntity "gameday-api/modules/event/entity"
	"gameday-api/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	mu           sync.Mutex
	event        *eventEntity.Event
	confirmed    bool
	participants []eventEntity.Participant
	attempts     []entity.Notification
}

func (f *fakeNotificationRepo) ClaimConfirmation(ctx context.Context, eventID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmed {
		return false, nil
	}
	f.confirmed = true
	return true, nil
}

func (f *fakeNotificationRepo) GetEventByID(ctx context.Context, eventID int) (*eventEntity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.event == nil || f.event.ID != eventID {
		return nil, nil
	}
	copied := *f.event
	return &copied, nil
}

func (f *fakeNotificationRepo) GetParticipantsByEventID(ctx context.Context, eventID int) ([]eventEntity.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]eventEntity.Participant(nil), f.participants...), nil
}

func (f *fakeNotificationRepo) RecordAttempt(ctx context.Context, n *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, *n)
	return nil
}

func (f *fakeNotificationRepo) addParticipant(email string, likelihood float64) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := eventEntity.Participant{
		ID:         uuid.New(),
		EventID:    f.event.ID,
		Name:       "Player",
		Likelihood: likelihood,
		JoinedAt:   time.Now(),
	}
	if email != "" {
		p.Email = &email
	}
	f.participants = append(f.participants, p)
	return p.ID
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[to] {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func testEvent(threshold int) *eventEntity.Event {
	return &eventEntity.Event{
		ID:                   1,
		URLHash:              "pickup-soccer-abc1234",
		Title:                "Pickup Soccer",
		Location:             "Golden Gate Park",
		Date:                 time.Date(2025, 1, 14, 18, 0, 0, 0, time.UTC),
		ParticipantThreshold: threshold,
		CreatorID:            "creator-1",
		Timezone:             "America/Los_Angeles",
	}
}

func newFixture(threshold int) (*fakeNotificationRepo, *fakeMailer, *ConfirmationService) {
	repo := &fakeNotificationRepo{event: testEvent(threshold)}
	mailer := &fakeMailer{failFor: make(map[string]bool)}
	// No queue: the service fans out inline.
	return repo, mailer, NewConfirmationService(repo, nil, mailer)
}

func TestConfirmationFiresExactlyOnceAtCrossing(t *testing.T) {
	repo, mailer, svc := newFixture(3)
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"}
	for i, email := range emails {
		id := repo.addParticipant(email, 1)
		svc.AfterJoin(ctx, repo.event, id)

		switch {
		case i < 2:
			assert.Empty(t, mailer.sentTo(), "no email before the threshold is reached")
		case i == 2:
			// The crossing join: everyone responded so far gets the email.
			assert.ElementsMatch(t, []string{"a@example.com", "b@example.com", "c@example.com"}, mailer.sentTo())
		default:
			// Later joins must not re-send.
			assert.Len(t, mailer.sentTo(), 3)
		}
	}
}

func TestConfirmationUsesExpectedAttendanceNotHeadcount(t *testing.T) {
	repo, mailer, svc := newFixture(2)
	ctx := context.Background()

	// Two maybes sum to 1.0 expected: headcount is 2 but no crossing yet.
	id := repo.addParticipant("a@example.com", 0.5)
	svc.AfterJoin(ctx, repo.event, id)
	id = repo.addParticipant("b@example.com", 0.5)
	svc.AfterJoin(ctx, repo.event, id)
	assert.Empty(t, mailer.sentTo())

	// A firm yes pushes expected attendance to 2.0.
	id = repo.addParticipant("c@example.com", 1)
	svc.AfterJoin(ctx, repo.event, id)
	assert.Len(t, mailer.sentTo(), 3)
}

func TestConfirmationSuppressedWhenAlreadyClaimed(t *testing.T) {
	repo, mailer, svc := newFixture(2)
	repo.confirmed = true

	id := repo.addParticipant("a@example.com", 1)
	repo.addParticipant("b@example.com", 1)
	svc.AfterJoin(context.Background(), repo.event, id)

	assert.Empty(t, mailer.sentTo())
}

func TestConcurrentJoinersSendOnce(t *testing.T) {
	repo, mailer, svc := newFixture(2)

	// Both inserts land before either check runs, so both checkers observe
	// the crossing; the claim must let only one of them fan out.
	first := repo.addParticipant("a@example.com", 1)
	second := repo.addParticipant("b@example.com", 1)

	var wg sync.WaitGroup
	for _, id := range []uuid.UUID{first, second} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			svc.AfterJoin(context.Background(), repo.event, id)
		}(id)
	}
	wg.Wait()

	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, mailer.sentTo())
}

func TestFanOutIsolatesPerRecipientFailures(t *testing.T) {
	repo, mailer, svc := newFixture(2)
	mailer.failFor["b@example.com"] = true

	repo.addParticipant("a@example.com", 1)
	repo.addParticipant("b@example.com", 1)
	repo.addParticipant("", 1) // no address, skipped entirely

	err := svc.ProcessConfirmed(context.Background(), queue.EventConfirmedPayload{EventID: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com"}, mailer.sentTo())

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.attempts, 2)
	byRecipient := make(map[string]entity.Notification)
	for _, a := range repo.attempts {
		byRecipient[a.Recipient] = a
	}
	assert.NotNil(t, byRecipient["a@example.com"].SentAt)
	assert.Nil(t, byRecipient["a@example.com"].LastError)
	assert.Nil(t, byRecipient["b@example.com"].SentAt)
	require.NotNil(t, byRecipient["b@example.com"].LastError)
	assert.Contains(t, *byRecipient["b@example.com"].LastError, "connection refused")
}

func TestProcessConfirmedSkipsDeletedEvent(t *testing.T) {
	repo, mailer, svc := newFixture(2)
	repo.event = testEvent(2)
	repo.addParticipant("a@example.com", 1)
	repo.mu.Lock()
	repo.event = nil
	repo.mu.Unlock()

	err := svc.ProcessConfirmed(context.Background(), queue.EventConfirmedPayload{EventID: 1})
	require.NoError(t, err)
	assert.Empty(t, mailer.sentTo())
}

func TestConfirmationMessageRendersEventZone(t *testing.T) {
	subject, body := confirmationMessage(testEvent(3))
	assert.Equal(t, "It's on! Pickup Soccer has enough players", subject)
	assert.Contains(t, body, "Tue, Jan 14, 2025 10:00 AM PST")
	assert.Contains(t, body, "Golden Gate Park")
}
