package eventtype

import (
	"gameday-api/core/database"
	"gameday-api/core/middleware"
	"gameday-api/modules/eventtype/controller"
	"gameday-api/modules/eventtype/repository"
	"gameday-api/modules/eventtype/router"
	"gameday-api/modules/eventtype/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event-type module and registers routes
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) {
	repo := repository.NewEventTypeRepository(db)
	svc := service.NewEventTypeService(repo)
	ctrl := controller.NewEventTypeController(svc)
	rtr := router.NewEventTypeRouter(ctrl)

	rtr.Setup(e, mw)
}
