package router

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"
)

// SetupTransactionRouter wires the swap lifecycle endpoints.
func SetupTransactionRouter(e *echo.Echo, transactionHandler *handler.TransactionHandler, authMiddleware *middleware.AuthMiddleware) {
	group := e.Group("/v1/transactions")
	group.Use(authMiddleware.Authenticate)

	group.POST("", transactionHandler.CreateTransaction)
	group.GET("", transactionHandler.ListTransactions)
	group.GET("/:id", transactionHandler.GetTransaction)
	group.POST("/:id/accept", transactionHandler.AcceptTransaction)
	group.POST("/:id/complete", transactionHandler.CompleteTransaction)
	group.POST("/:id/cancel", transactionHandler.CancelTransaction)
	group.GET("/:id/proofs", transactionHandler.GetCompletionProofs)
	group.GET("/by-food-item/:foodItemId", transactionHandler.GetTransactionByFoodItem)

	// Notification-surface trigger for accept/reject
	group.POST("/respond", transactionHandler.RespondToRequest)

	// On-demand reaper trigger, e.g. on app foreground
	group.POST("/cleanup-expired-chats", transactionHandler.CleanupExpiredChats)
}
