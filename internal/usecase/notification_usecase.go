package usecase

import (
	"context"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/utils"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

type CreateNotificationInput struct {
	ToUserID   string
	FoodItemID string
	Type       string
	Message    string
}

// CreateNotification inserts a single unread row. Duplicate requests produce
// duplicate notifications; collapsing them is a display concern.
func (uc *NotificationUseCase) CreateNotification(ctx context.Context, fromUserID string, input CreateNotificationInput) (*entity.Notification, error) {
	sender, err := uc.userRepo.GetByID(ctx, fromUserID)
	if err != nil {
		return nil, err
	}

	switch input.Type {
	case entity.NotificationTypeFoodRequest, entity.NotificationTypeRequestAccepted, entity.NotificationTypeRequestRejected:
	default:
		return nil, errors.BadRequest("Invalid notification type", nil)
	}

	notification := &entity.Notification{
		FromUserID:   fromUserID,
		FromUserName: sender.Name,
		ToUserID:     input.ToUserID,
		FoodItemID:   input.FoodItemID,
		Type:         input.Type,
		Message:      input.Message,
	}

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (uc *NotificationUseCase) GetUserNotifications(ctx context.Context, userID string, page, limit int) ([]*entity.Notification, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)

	return uc.notificationRepo.ListByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
}

func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, userID, notificationID string) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.ToUserID != userID {
		return nil, errors.Forbidden("You don't have permission to update this notification", nil)
	}

	if notification.Read {
		return notification, nil
	}

	notification.Read = true
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

type UpdateNotificationInput struct {
	Message *string
	Read    *bool
}

func (uc *NotificationUseCase) UpdateNotification(ctx context.Context, userID, notificationID string, input UpdateNotificationInput) (*entity.Notification, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.ToUserID != userID {
		return nil, errors.Forbidden("You don't have permission to update this notification", nil)
	}

	if input.Message != nil {
		notification.Message = *input.Message
	}
	if input.Read != nil {
		notification.Read = *input.Read
	}

	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (uc *NotificationUseCase) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.ToUserID != userID {
		return errors.Forbidden("You don't have permission to delete this notification", nil)
	}

	return uc.notificationRepo.Delete(ctx, notificationID)
}
