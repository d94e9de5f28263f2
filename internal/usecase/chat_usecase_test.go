package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodswap/internal/domain/entity"
	"foodswap/pkg/errors"
)

func newChatEnv() (*ChatUseCase, *fakeChatRepo, *fakeUserRepo) {
	users := newFakeUserRepo(
		&entity.User{ID: "alice", Name: "Alice", Email: "alice@example.com"},
		&entity.User{ID: "bob", Name: "Bob", Email: "bob@example.com"},
		&entity.User{ID: "carol", Name: "Carol", Email: "carol@example.com"},
	)
	chats := newFakeChatRepo()
	return NewChatUseCase(chats, users), chats, users
}

func TestCreateRoom(t *testing.T) {
	uc, chats, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{
		Name:           "Swap: Sourdough loaf",
		Description:    "Coordination for Sourdough loaf",
		IsPrivate:      true,
		ParticipantIDs: []string{"bob", "alice"}, // creator repeated on purpose
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", room.CreatedBy)
	assert.Equal(t, "Alice", room.CreatorName)
	assert.Equal(t, []string{"alice", "bob"}, room.Participants)
	assert.Equal(t, []string{"Alice", "Bob"}, room.ParticipantNames)

	participants, err := chats.ListParticipantsByRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, entity.ParticipantRoleAdmin, participants[0].Role)
	assert.Equal(t, "alice", participants[0].UserID)
	assert.Equal(t, entity.ParticipantRoleMember, participants[1].Role)
	assert.Equal(t, "bob", participants[1].UserID)
}

func TestCreateRoomUnknownParticipant(t *testing.T) {
	uc, _, _ := newChatEnv()

	_, err := uc.CreateRoom(context.Background(), "alice", CreateRoomInput{
		Name:           "Swap",
		ParticipantIDs: []string{"nobody"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessage(t *testing.T) {
	uc, chats, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{
		Name:           "Swap",
		ParticipantIDs: []string{"bob"},
	})
	require.NoError(t, err)

	message, err := uc.SendMessage(ctx, "bob", SendMessageInput{
		RoomID: room.ID,
		Text:   "On my way",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MessageTypeText, message.Type)
	assert.Equal(t, "Bob", message.SenderName)
	assert.False(t, message.CreatedAt.IsZero())

	updated, err := chats.GetRoomByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "On my way", updated.LastMessage)
	assert.Equal(t, message.CreatedAt, updated.LastMessageTime)
}

func TestSendMessageNonParticipant(t *testing.T) {
	uc, _, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{
		Name:           "Swap",
		ParticipantIDs: []string{"bob"},
	})
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "carol", SendMessageInput{RoomID: room.ID, Text: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageInvalidType(t *testing.T) {
	uc, _, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{Name: "Swap"})
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "alice", SendMessageInput{
		RoomID: room.ID,
		Text:   "hi",
		Type:   "video",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestGetRoomMessagesNewestFirst(t *testing.T) {
	uc, _, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{
		Name:           "Swap",
		ParticipantIDs: []string{"bob"},
	})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := uc.SendMessage(ctx, "alice", SendMessageInput{
			RoomID: room.ID,
			Text:   fmt.Sprintf("message %d", i),
		})
		require.NoError(t, err)
	}

	messages, err := uc.GetRoomMessages(ctx, "bob", room.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "message 3", messages[0].Text)
	assert.Equal(t, "message 2", messages[1].Text)
	assert.Equal(t, "message 1", messages[2].Text)

	limited, err := uc.GetRoomMessages(ctx, "bob", room.ID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "message 3", limited[0].Text)

	_, err = uc.GetRoomMessages(ctx, "carol", room.ID, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestGetUserRooms(t *testing.T) {
	uc, _, _ := newChatEnv()
	ctx := context.Background()

	_, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{
		Name:           "Swap",
		ParticipantIDs: []string{"bob"},
	})
	require.NoError(t, err)

	rooms, total, err := uc.GetUserRooms(ctx, "bob", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rooms, 1)

	rooms, _, err = uc.GetUserRooms(ctx, "carol", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestJoinRoomIdempotent(t *testing.T) {
	uc, chats, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{Name: "Swap"})
	require.NoError(t, err)

	require.NoError(t, uc.JoinRoom(ctx, "carol", room.ID))
	require.NoError(t, uc.JoinRoom(ctx, "carol", room.ID))

	participants, err := chats.ListParticipantsByRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2)

	updated, err := chats.GetRoomByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, updated.Participants)
	assert.Equal(t, []string{"Alice", "Carol"}, updated.ParticipantNames)
}

func TestJoinPrivateRoom(t *testing.T) {
	uc, _, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{
		Name:           "Swap",
		IsPrivate:      true,
		ParticipantIDs: []string{"bob"},
	})
	require.NoError(t, err)

	err = uc.JoinRoom(ctx, "carol", room.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Existing participants may re-join without error.
	require.NoError(t, uc.JoinRoom(ctx, "bob", room.ID))
}

func TestDeleteRoomAdminOnly(t *testing.T) {
	uc, chats, _ := newChatEnv()
	ctx := context.Background()

	room, err := uc.CreateRoom(ctx, "alice", CreateRoomInput{
		Name:           "Swap",
		ParticipantIDs: []string{"bob"},
	})
	require.NoError(t, err)

	_, err = uc.SendMessage(ctx, "bob", SendMessageInput{RoomID: room.ID, Text: "hi"})
	require.NoError(t, err)

	err = uc.DeleteRoom(ctx, "bob", room.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.DeleteRoom(ctx, "alice", room.ID))

	_, err = chats.GetRoomByID(ctx, room.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	messages, err := chats.ListMessagesByRoom(ctx, room.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, messages)

	participants, err := chats.ListParticipantsByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}
