package router

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"
)

func SetupFoodItemRouter(e *echo.Echo, foodItemHandler *handler.FoodItemHandler, authMiddleware *middleware.AuthMiddleware) {
	group := e.Group("/v1/food-items")
	group.Use(authMiddleware.Authenticate)

	group.POST("", foodItemHandler.CreateFoodItem)
	group.GET("", foodItemHandler.ListFoodItems)
	group.GET("/:id", foodItemHandler.GetFoodItem)
	group.PUT("/:id", foodItemHandler.UpdateFoodItem)
	group.DELETE("/:id", foodItemHandler.DeleteFoodItem)
}
