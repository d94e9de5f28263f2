package repository

import (
	"context"

	"foodswap/internal/domain/entity"
)

type ChatRepository interface {
	CreateRoom(ctx context.Context, room *entity.ChatRoom) error
	GetRoomByID(ctx context.Context, id string) (*entity.ChatRoom, error)
	ListRoomsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatRoom, int64, error)
	UpdateRoom(ctx context.Context, room *entity.ChatRoom) error
	DeleteRoom(ctx context.Context, id string) error

	// Message methods
	CreateMessage(ctx context.Context, message *entity.ChatMessage) error
	ListMessagesByRoom(ctx context.Context, roomID string, limit int) ([]*entity.ChatMessage, error)
	DeleteMessagesByRoom(ctx context.Context, roomID string) error

	// Participant methods
	CreateParticipant(ctx context.Context, participant *entity.ChatParticipant) error
	GetParticipant(ctx context.Context, roomID, userID string) (*entity.ChatParticipant, error)
	ListParticipantsByRoom(ctx context.Context, roomID string) ([]*entity.ChatParticipant, error)
	DeleteParticipantsByRoom(ctx context.Context, roomID string) error
}
