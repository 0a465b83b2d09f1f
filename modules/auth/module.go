package auth

import (
	"gameday-api/core/cache"
	"gameday-api/core/middleware"
	"gameday-api/modules/auth/controller"
	"gameday-api/modules/auth/router"
	"gameday-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes
func Init(e *echo.Echo, c *cache.Cache, mw *middleware.Middleware) {
	svc := service.NewAuthService(c)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
