package usecase

import (
	"context"
	"time"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/utils"
)

type FoodItemUseCase struct {
	foodItemRepo repository.FoodItemRepository
	userRepo     repository.UserRepository
}

func NewFoodItemUseCase(foodItemRepo repository.FoodItemRepository, userRepo repository.UserRepository) *FoodItemUseCase {
	return &FoodItemUseCase{
		foodItemRepo: foodItemRepo,
		userRepo:     userRepo,
	}
}

type CreateFoodItemInput struct {
	Title       string
	Description string
	ImageURL    string
	ExpiryDate  time.Time
	Category    string
	Latitude    *float64
	Longitude   *float64
}

func (uc *FoodItemUseCase) CreateFoodItem(ctx context.Context, ownerID string, input CreateFoodItemInput) (*entity.FoodItem, error) {
	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	item := &entity.FoodItem{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		ExpiryDate:  input.ExpiryDate,
		Status:      entity.FoodStatusAvailable,
		OwnerID:     ownerID,
		OwnerName:   owner.Name,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Category:    input.Category,
	}

	if err := uc.foodItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *FoodItemUseCase) GetFoodItem(ctx context.Context, id string) (*entity.FoodItem, error) {
	return uc.foodItemRepo.GetByID(ctx, id)
}

func (uc *FoodItemUseCase) ListFoodItems(ctx context.Context, status, category, ownerID string, page, limit int) ([]*entity.FoodItem, int64, error) {
	filter := make(map[string]interface{})
	if status != "" {
		filter["status"] = status
	}
	if category != "" {
		filter["category"] = category
	}
	if ownerID != "" {
		filter["ownerId"] = ownerID
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.foodItemRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

type UpdateFoodItemInput struct {
	Title       string
	Description string
	ImageURL    string
	ExpiryDate  time.Time
	Category    string
	Latitude    *float64
	Longitude   *float64
}

// UpdateFoodItem edits listing fields only; status belongs to the swap
// lifecycle and is never writable here.
func (uc *FoodItemUseCase) UpdateFoodItem(ctx context.Context, ownerID, id string, input UpdateFoodItemInput) (*entity.FoodItem, error) {
	item, err := uc.foodItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't have permission to update this food item", nil)
	}

	item.Title = input.Title
	item.Description = input.Description
	if input.ImageURL != "" {
		item.ImageURL = input.ImageURL
	}
	if !input.ExpiryDate.IsZero() {
		item.ExpiryDate = input.ExpiryDate
	}
	item.Category = input.Category
	item.Latitude = input.Latitude
	item.Longitude = input.Longitude

	if err := uc.foodItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *FoodItemUseCase) DeleteFoodItem(ctx context.Context, ownerID, id string) error {
	item, err := uc.foodItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if item.OwnerID != ownerID {
		return errors.Forbidden("You don't have permission to delete this food item", nil)
	}

	if item.Status == entity.FoodStatusRequested {
		return errors.Conflict("Food item has an active swap request", nil)
	}

	return uc.foodItemRepo.SoftDelete(ctx, id)
}
