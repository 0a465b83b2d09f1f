package notification

import (
	"gameday-api/core/database"
	"gameday-api/core/queue"
	"gameday-api/modules/notification/repository"
	"gameday-api/modules/notification/service"
)

// Init wires the confirmation trigger and registers its queue worker. The
// returned service plugs into the event module as its ConfirmationTrigger.
func Init(db database.IDatabase, client *queue.Client, server *queue.Server, mailer Mailer) *service.ConfirmationService {
	repo := repository.NewNotificationRepository(db)

	var enq service.Enqueuer
	if client != nil {
		enq = client
	}
	svc := service.NewConfirmationService(repo, enq, mailer)

	if server != nil {
		server.HandleEventConfirmed(svc.ProcessConfirmed)
	}
	return svc
}

// Mailer re-exports the service contract for wiring.
type Mailer = service.Mailer
