package handler

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/usecase"
	"foodswap/pkg/errors"
	"foodswap/pkg/response"
	"foodswap/pkg/utils"
)

type TransactionHandler struct {
	transactionUseCase *usecase.TransactionUseCase
}

func NewTransactionHandler(transactionUseCase *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
	}
}

type createTransactionRequest struct {
	FoodItemID     string `json:"food_item_id" validate:"required"`
	RequestMessage string `json:"request_message,omitempty"`
}

func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	transaction, err := h.transactionUseCase.CreateTransaction(c.Request().Context(), userID, usecase.CreateTransactionInput{
		FoodItemID:     req.FoodItemID,
		RequestMessage: req.RequestMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, transaction)
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	transactionID := c.Param("id")
	if transactionID == "" {
		return response.Error(c, errors.BadRequest("Transaction ID is required", nil))
	}

	userID := c.Get("uid").(string)

	transaction, err := h.transactionUseCase.GetTransactionByID(c.Request().Context(), userID, transactionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	role := c.QueryParam("role")     // "owner" or "requester"
	status := c.QueryParam("status") // lifecycle status filter

	pagination := utils.GetPaginationParams(c)
	userID := c.Get("uid").(string)

	transactions, total, err := h.transactionUseCase.ListTransactions(
		c.Request().Context(),
		userID,
		role,
		status,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, transactions, total, pagination.Page, pagination.PageSize)
}

func (h *TransactionHandler) GetTransactionByFoodItem(c echo.Context) error {
	foodItemID := c.Param("foodItemId")
	if foodItemID == "" {
		return response.Error(c, errors.BadRequest("Food item ID is required", nil))
	}

	userID := c.Get("uid").(string)

	transaction, err := h.transactionUseCase.GetTransactionByFoodItem(c.Request().Context(), userID, foodItemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

func (h *TransactionHandler) AcceptTransaction(c echo.Context) error {
	transactionID := c.Param("id")
	userID := c.Get("uid").(string)

	transaction, err := h.transactionUseCase.AcceptTransaction(c.Request().Context(), userID, transactionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

type completeTransactionRequest struct {
	CompletionPhotoURL string `json:"completion_photo_url" validate:"required,url"`
}

func (h *TransactionHandler) CompleteTransaction(c echo.Context) error {
	transactionID := c.Param("id")

	var req completeTransactionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	transaction, err := h.transactionUseCase.CompleteTransaction(c.Request().Context(), userID, transactionID, req.CompletionPhotoURL)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

type cancelTransactionRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (h *TransactionHandler) CancelTransaction(c echo.Context) error {
	transactionID := c.Param("id")

	var req cancelTransactionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	transaction, err := h.transactionUseCase.CancelTransaction(c.Request().Context(), userID, transactionID, req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

func (h *TransactionHandler) GetCompletionProofs(c echo.Context) error {
	transactionID := c.Param("id")
	userID := c.Get("uid").(string)

	proofs, err := h.transactionUseCase.GetCompletionProofs(c.Request().Context(), userID, transactionID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, proofs)
}

type respondToRequestRequest struct {
	NotificationID string `json:"notification_id" validate:"required"`
	Accept         bool   `json:"accept"`
}

// RespondToRequest is the notification-surface trigger for accept/reject.
func (h *TransactionHandler) RespondToRequest(c echo.Context) error {
	var req respondToRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	transaction, err := h.transactionUseCase.RespondToRequest(c.Request().Context(), userID, req.NotificationID, req.Accept)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, transaction)
}

// CleanupExpiredChats lets a client trigger the reaper on demand, e.g. on
// app foreground.
func (h *TransactionHandler) CleanupExpiredChats(c echo.Context) error {
	reaped, err := h.transactionUseCase.CleanupExpiredChats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{"reaped": reaped})
}
