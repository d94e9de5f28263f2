package repository

import (
	"context"

	"foodswap/internal/domain/entity"
)

type FoodItemRepository interface {
	Create(ctx context.Context, item *entity.FoodItem) error
	GetByID(ctx context.Context, id string) (*entity.FoodItem, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.FoodItem, int64, error)
	Update(ctx context.Context, item *entity.FoodItem) error
	SoftDelete(ctx context.Context, id string) error

	// UpdateStatusIf flips status only when the stored value still equals
	// expectedStatus; returns a conflict error otherwise. Closes the race
	// between two requesters reserving the same item.
	UpdateStatusIf(ctx context.Context, id, expectedStatus, newStatus string) error

	// SetStatus writes status unconditionally (reject/cancel un-reservation).
	SetStatus(ctx context.Context, id, status string) error
}
