package repository

import (
	"context"

	"foodswap/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)
	Update(ctx context.Context, notification *entity.Notification) error
	Delete(ctx context.Context, id string) error
}
