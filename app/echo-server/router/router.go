package router

import (
	"upliftService/internal/middleware"
	"upliftService/internal/rest"

	"github.com/labstack/echo/v4"
)

// SetUpliftRoutes mounts the public endpoints at the root and under api.
func SetUpliftRoutes(e *echo.Echo, api *echo.Group, handler *rest.UpliftHandler) {
	e.POST("/uplift", handler.ComputeUplift)
	e.GET("/health", handler.Health)

	api.POST("/uplift", handler.ComputeUplift)
	api.GET("/health", handler.Health)
}

// SetAdminRoutes guards the admin group with a bearer token when jwtSecret is set.
func SetAdminRoutes(api *echo.Group, handler *rest.AdminHandler, jwtSecret string) {
	var guards []echo.MiddlewareFunc
	if jwtSecret != "" {
		guards = append(guards, middleware.AuthMiddleware(jwtSecret), middleware.AdminOnly())
	}

	admin := api.Group("/admin", guards...)
	admin.GET("/models", handler.GetModels)
}
