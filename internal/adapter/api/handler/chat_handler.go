package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"foodswap/internal/usecase"
	"foodswap/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createRoomRequest struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description,omitempty"`
	IsPrivate      bool     `json:"is_private"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
}

func (h *ChatHandler) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	room, err := h.chatUseCase.CreateRoom(c.Request().Context(), userID, usecase.CreateRoomInput{
		Name:           req.Name,
		Description:    req.Description,
		IsPrivate:      req.IsPrivate,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, room)
}

func (h *ChatHandler) GetUserRooms(c echo.Context) error {
	userID := c.Get("uid").(string)

	limit := 20
	offset := 0

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	rooms, total, err := h.chatUseCase.GetUserRooms(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	page := 1
	if limit > 0 {
		page = (offset / limit) + 1
	}

	return response.Paginated(c, rooms, total, page, limit)
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
	Type string `json:"type,omitempty" validate:"omitempty,oneof=text image system completion_photo"`
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	roomID := c.Param("id")
	userID := c.Get("uid").(string)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		RoomID: roomID,
		Text:   req.Text,
		Type:   req.Type,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) GetRoomMessages(c echo.Context) error {
	roomID := c.Param("id")
	userID := c.Get("uid").(string)

	limit := 50
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	messages, err := h.chatUseCase.GetRoomMessages(c.Request().Context(), userID, roomID, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) GetRoomParticipants(c echo.Context) error {
	roomID := c.Param("id")
	userID := c.Get("uid").(string)

	participants, err := h.chatUseCase.GetRoomParticipants(c.Request().Context(), userID, roomID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, participants)
}

func (h *ChatHandler) JoinRoom(c echo.Context) error {
	roomID := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.JoinRoom(c.Request().Context(), userID, roomID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *ChatHandler) DeleteRoom(c echo.Context) error {
	roomID := c.Param("id")
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.DeleteRoom(c.Request().Context(), userID, roomID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
