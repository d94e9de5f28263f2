package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodswap/internal/usecase"
	"foodswap/pkg/response"
	"foodswap/pkg/utils"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

type createNotificationRequest struct {
	ToUserID   string `json:"to_user_id" validate:"required"`
	FoodItemID string `json:"food_item_id" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=food_request request_accepted request_rejected"`
	Message    string `json:"message" validate:"required"`
}

func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	var req createNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	notification, err := h.notificationUseCase.CreateNotification(c.Request().Context(), userID, usecase.CreateNotificationInput{
		ToUserID:   req.ToUserID,
		FoodItemID: req.FoodItemID,
		Type:       req.Type,
		Message:    req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, notification)
}

func (h *NotificationHandler) GetUserNotifications(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationUseCase.GetUserNotifications(c.Request().Context(), userID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, notifications, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	notificationID := c.Param("id")
	userID := c.Get("uid").(string)

	notification, err := h.notificationUseCase.MarkAsRead(c.Request().Context(), userID, notificationID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notification)
}

type updateNotificationRequest struct {
	Message *string `json:"message,omitempty"`
	Read    *bool   `json:"read,omitempty"`
}

func (h *NotificationHandler) UpdateNotification(c echo.Context) error {
	notificationID := c.Param("id")

	var req updateNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	notification, err := h.notificationUseCase.UpdateNotification(c.Request().Context(), userID, notificationID, usecase.UpdateNotificationInput{
		Message: req.Message,
		Read:    req.Read,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notification)
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	notificationID := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.notificationUseCase.DeleteNotification(c.Request().Context(), userID, notificationID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
