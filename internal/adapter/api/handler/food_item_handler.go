package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"foodswap/internal/usecase"
	"foodswap/pkg/errors"
	"foodswap/pkg/response"
	"foodswap/pkg/utils"
)

type FoodItemHandler struct {
	foodItemUseCase *usecase.FoodItemUseCase
}

func NewFoodItemHandler(foodItemUseCase *usecase.FoodItemUseCase) *FoodItemHandler {
	return &FoodItemHandler{
		foodItemUseCase: foodItemUseCase,
	}
}

type foodItemRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty" validate:"omitempty,url"`
	ExpiryDate  string   `json:"expiry_date" validate:"required"`
	Category    string   `json:"category,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

func (h *FoodItemHandler) CreateFoodItem(c echo.Context) error {
	var req foodItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	expiry, err := time.Parse(time.RFC3339, req.ExpiryDate)
	if err != nil {
		return response.Error(c, errors.BadRequest("expiry_date must be RFC3339", err))
	}

	userID := c.Get("uid").(string)

	item, err := h.foodItemUseCase.CreateFoodItem(c.Request().Context(), userID, usecase.CreateFoodItemInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ExpiryDate:  expiry,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *FoodItemHandler) GetFoodItem(c echo.Context) error {
	item, err := h.foodItemUseCase.GetFoodItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *FoodItemHandler) ListFoodItems(c echo.Context) error {
	status := c.QueryParam("status")
	category := c.QueryParam("category")
	ownerID := c.QueryParam("owner_id")

	pagination := utils.GetPaginationParams(c)

	items, total, err := h.foodItemUseCase.ListFoodItems(c.Request().Context(), status, category, ownerID, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *FoodItemHandler) UpdateFoodItem(c echo.Context) error {
	var req foodItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	var expiry time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.ExpiryDate)
		if err != nil {
			return response.Error(c, errors.BadRequest("expiry_date must be RFC3339", err))
		}
		expiry = parsed
	}

	userID := c.Get("uid").(string)

	item, err := h.foodItemUseCase.UpdateFoodItem(c.Request().Context(), userID, c.Param("id"), usecase.UpdateFoodItemInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ExpiryDate:  expiry,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *FoodItemHandler) DeleteFoodItem(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.foodItemUseCase.DeleteFoodItem(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
