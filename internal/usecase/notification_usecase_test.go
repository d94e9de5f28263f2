package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodswap/internal/domain/entity"
	"foodswap/pkg/errors"
)

func newNotificationEnv() (*NotificationUseCase, *fakeNotificationRepo) {
	users := newFakeUserRepo(
		&entity.User{ID: "alice", Name: "Alice", Email: "alice@example.com"},
		&entity.User{ID: "bob", Name: "Bob", Email: "bob@example.com"},
	)
	notifications := newFakeNotificationRepo()
	return NewNotificationUseCase(notifications, users), notifications
}

func TestCreateNotification(t *testing.T) {
	uc, _ := newNotificationEnv()

	notification, err := uc.CreateNotification(context.Background(), "bob", CreateNotificationInput{
		ToUserID:   "alice",
		FoodItemID: "food-1",
		Type:       entity.NotificationTypeFoodRequest,
		Message:    "Bob wants your loaf",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bob", notification.FromUserName)
	assert.Equal(t, "alice", notification.ToUserID)
	assert.False(t, notification.Read)
	assert.NotEmpty(t, notification.ID)
}

func TestCreateNotificationInvalidType(t *testing.T) {
	uc, _ := newNotificationEnv()

	_, err := uc.CreateNotification(context.Background(), "bob", CreateNotificationInput{
		ToUserID: "alice",
		Type:     "broadcast",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestMarkAsRead(t *testing.T) {
	uc, _ := newNotificationEnv()
	ctx := context.Background()

	notification, err := uc.CreateNotification(ctx, "bob", CreateNotificationInput{
		ToUserID: "alice",
		Type:     entity.NotificationTypeFoodRequest,
	})
	require.NoError(t, err)

	read, err := uc.MarkAsRead(ctx, "alice", notification.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	// Marking an already-read notification is a no-op, not an error.
	read, err = uc.MarkAsRead(ctx, "alice", notification.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	_, err = uc.MarkAsRead(ctx, "bob", notification.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestUpdateNotification(t *testing.T) {
	uc, _ := newNotificationEnv()
	ctx := context.Background()

	notification, err := uc.CreateNotification(ctx, "bob", CreateNotificationInput{
		ToUserID: "alice",
		Type:     entity.NotificationTypeFoodRequest,
		Message:  "original",
	})
	require.NoError(t, err)

	read := true
	updated, err := uc.UpdateNotification(ctx, "alice", notification.ID, UpdateNotificationInput{Read: &read})
	require.NoError(t, err)
	assert.True(t, updated.Read)
	assert.Equal(t, "original", updated.Message)

	message := "edited"
	updated, err = uc.UpdateNotification(ctx, "alice", notification.ID, UpdateNotificationInput{Message: &message})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Message)
	assert.True(t, updated.Read)

	_, err = uc.UpdateNotification(ctx, "bob", notification.ID, UpdateNotificationInput{Read: &read})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeleteNotification(t *testing.T) {
	uc, repo := newNotificationEnv()
	ctx := context.Background()

	notification, err := uc.CreateNotification(ctx, "bob", CreateNotificationInput{
		ToUserID: "alice",
		Type:     entity.NotificationTypeRequestAccepted,
	})
	require.NoError(t, err)

	err = uc.DeleteNotification(ctx, "bob", notification.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.DeleteNotification(ctx, "alice", notification.ID))

	_, err = repo.GetByID(ctx, notification.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestGetUserNotifications(t *testing.T) {
	uc, _ := newNotificationEnv()
	ctx := context.Background()

	for _, to := range []string{"alice", "alice", "bob"} {
		_, err := uc.CreateNotification(ctx, "bob", CreateNotificationInput{
			ToUserID: to,
			Type:     entity.NotificationTypeFoodRequest,
		})
		require.NoError(t, err)
	}

	notifications, total, err := uc.GetUserNotifications(ctx, "alice", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, notifications, 2)
}
