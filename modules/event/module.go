package event

import (
	"gameday-api/core/cache"
	"gameday-api/core/database"
	"gameday-api/core/middleware"
	"gameday-api/core/storage"
	"gameday-api/modules/event/controller"
	"gameday-api/modules/event/repository"
	"gameday-api/modules/event/router"
	"gameday-api/modules/event/service"
	ettRepository "gameday-api/modules/eventtype/repository"
	weatherService "gameday-api/modules/weather/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. The confirmation
// trigger is provided by the notification module.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	mw *middleware.Middleware,
	c *cache.Cache,
	uploader storage.Uploader,
	weather weatherService.WeatherServiceInterface,
	trigger service.ConfirmationTrigger,
) service.EventServiceInterface {
	repo := repository.NewEventRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	eventTypeRepo := ettRepository.NewEventTypeRepository(db)

	svc := service.NewEventService(repo, participantRepo, eventTypeRepo, weather, c, uploader, trigger)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
