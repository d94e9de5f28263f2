package router

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware) {
	group := e.Group("/v1/notifications")
	group.Use(authMiddleware.Authenticate)

	group.POST("", notificationHandler.CreateNotification)
	group.GET("", notificationHandler.GetUserNotifications)
	group.PUT("/:id/read", notificationHandler.MarkAsRead)
	group.PUT("/:id", notificationHandler.UpdateNotification)
	group.DELETE("/:id", notificationHandler.DeleteNotification)
}
