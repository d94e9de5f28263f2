package router

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	group := e.Group("/v1/files")
	group.Use(authMiddleware.Authenticate)

	group.POST("/upload", fileHandler.UploadFile)
}
