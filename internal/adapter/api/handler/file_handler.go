package handler

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/infrastructure/storage"
	"foodswap/pkg/errors"
	"foodswap/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
	}
}

// UploadFile accepts a multipart image and returns its storage URL. Used
// for food item photos and swap completion proofs; the URL is treated as an
// opaque reference everywhere else.
func (h *FileHandler) UploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.storageClient.UploadFile(c.Request().Context(), src, contentType, folder)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{"url": url})
}
