package router

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	group := e.Group("/v1/users")
	group.Use(authMiddleware.Authenticate)

	group.GET("/me", userHandler.GetProfile)
	group.PUT("/me", userHandler.UpdateProfile)
}
