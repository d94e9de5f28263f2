package router

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all chat room routes.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	group := e.Group("/v1/chats")
	group.Use(authMiddleware.Authenticate)

	group.POST("", chatHandler.CreateRoom)
	group.GET("", chatHandler.GetUserRooms)
	group.DELETE("/:id", chatHandler.DeleteRoom)

	group.POST("/:id/messages", chatHandler.SendMessage)
	group.GET("/:id/messages", chatHandler.GetRoomMessages)
	group.GET("/:id/participants", chatHandler.GetRoomParticipants)
	group.POST("/:id/join", chatHandler.JoinRoom)
}
