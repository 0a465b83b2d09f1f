package router

import (
	"gameday-api/core/middleware"
	"gameday-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter handles auth routes
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{
		AuthController: authController,
	}
}

// Setup registers auth routes
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")
	auth := api.Group("/auth")

	auth.GET("/google", r.AuthController.GoogleAuthURL)
	auth.GET("/google/callback", r.AuthController.GoogleCallback)
}
