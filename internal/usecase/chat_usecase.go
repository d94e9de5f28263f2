package usecase

import (
	"context"
	"fmt"
	"time"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/logger"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

func NewChatUseCase(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

type CreateRoomInput struct {
	Name           string
	Description    string
	IsPrivate      bool
	ParticipantIDs []string
}

type SendMessageInput struct {
	RoomID string
	Text   string
	Type   string // "text", "image", "system", "completion_photo"
}

// CreateRoom creates a room with the creator as the admin participant and
// every additional user as a member. Participant names are resolved from the
// user store up front so the room's denormalized id and name arrays always
// grow in lockstep.
func (uc *ChatUseCase) CreateRoom(ctx context.Context, creatorID string, input CreateRoomInput) (*entity.ChatRoom, error) {
	creator, err := uc.userRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	participantIDs := []string{creatorID}
	participantNames := []string{creator.Name}

	type member struct {
		id   string
		name string
	}
	var members []member

	for _, id := range input.ParticipantIDs {
		if id == creatorID {
			continue
		}
		user, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		participantIDs = append(participantIDs, id)
		participantNames = append(participantNames, user.Name)
		members = append(members, member{id: id, name: user.Name})
	}

	room := &entity.ChatRoom{
		Name:             input.Name,
		Description:      input.Description,
		CreatedBy:        creatorID,
		CreatorName:      creator.Name,
		IsPrivate:        input.IsPrivate,
		Participants:     participantIDs,
		ParticipantNames: participantNames,
		LastMessageTime:  time.Now(),
	}

	if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	adminRow := &entity.ChatParticipant{
		ChatRoomID: room.ID,
		UserID:     creatorID,
		UserName:   creator.Name,
		Role:       entity.ParticipantRoleAdmin,
	}
	if err := uc.chatRepo.CreateParticipant(ctx, adminRow); err != nil {
		return nil, err
	}

	for _, m := range members {
		row := &entity.ChatParticipant{
			ChatRoomID: room.ID,
			UserID:     m.id,
			UserName:   m.name,
			Role:       entity.ParticipantRoleMember,
		}
		if err := uc.chatRepo.CreateParticipant(ctx, row); err != nil {
			return nil, err
		}
	}

	return room, nil
}

// SendMessage appends a message and refreshes the room's last-message
// preview. The preview write is best effort; a failure there leaves the
// message intact.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.ChatMessage, error) {
	room, err := uc.chatRepo.GetRoomByID(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}

	if !containsString(room.Participants, senderID) {
		return nil, errors.Forbidden("You are not a participant of this chat room", nil)
	}

	msgType := input.Type
	if msgType == "" {
		msgType = entity.MessageTypeText
	}

	switch msgType {
	case entity.MessageTypeText, entity.MessageTypeImage, entity.MessageTypeSystem, entity.MessageTypeCompletionPhoto:
	default:
		return nil, errors.BadRequest("Invalid message type", nil)
	}

	message := &entity.ChatMessage{
		ChatRoomID: room.ID,
		SenderID:   senderID,
		SenderName: sender.Name,
		Text:       input.Text,
		Type:       msgType,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	room.LastMessage = input.Text
	room.LastMessageTime = message.CreatedAt
	if err := uc.chatRepo.UpdateRoom(ctx, room); err != nil {
		logger.Warn("Failed to update last-message preview for room %s: %v", room.ID, err)
	}

	return message, nil
}

func (uc *ChatUseCase) GetUserRooms(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatRoom, int64, error) {
	return uc.chatRepo.ListRoomsByUserID(ctx, userID, limit, offset)
}

// GetRoomMessages returns the most recent messages newest-first. Clients
// wanting chronological order reverse the result.
func (uc *ChatUseCase) GetRoomMessages(ctx context.Context, userID, roomID string, limit int) ([]*entity.ChatMessage, error) {
	room, err := uc.chatRepo.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !containsString(room.Participants, userID) {
		return nil, errors.Forbidden("You are not a participant of this chat room", nil)
	}

	if limit <= 0 {
		limit = 50
	}

	return uc.chatRepo.ListMessagesByRoom(ctx, roomID, limit)
}

func (uc *ChatUseCase) GetRoomParticipants(ctx context.Context, userID, roomID string) ([]*entity.ChatParticipant, error) {
	room, err := uc.chatRepo.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if !containsString(room.Participants, userID) {
		return nil, errors.Forbidden("You are not a participant of this chat room", nil)
	}

	return uc.chatRepo.ListParticipantsByRoom(ctx, roomID)
}

// JoinRoom is idempotent: a user who already has a participant row is left
// untouched.
func (uc *ChatUseCase) JoinRoom(ctx context.Context, userID, roomID string) error {
	room, err := uc.chatRepo.GetRoomByID(ctx, roomID)
	if err != nil {
		return err
	}

	if room.IsPrivate && !containsString(room.Participants, userID) {
		return errors.Forbidden("This chat room is private", nil)
	}

	if _, err := uc.chatRepo.GetParticipant(ctx, roomID, userID); err == nil {
		return nil
	} else if !errors.Is(err, "NOT_FOUND") {
		return err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	row := &entity.ChatParticipant{
		ChatRoomID: roomID,
		UserID:     userID,
		UserName:   user.Name,
		Role:       entity.ParticipantRoleMember,
	}
	if err := uc.chatRepo.CreateParticipant(ctx, row); err != nil {
		return err
	}

	if !containsString(room.Participants, userID) {
		room.Participants = append(room.Participants, userID)
		room.ParticipantNames = append(room.ParticipantNames, user.Name)
		if err := uc.chatRepo.UpdateRoom(ctx, room); err != nil {
			return err
		}
	}

	return nil
}

// DeleteRoom is the user-facing teardown; only the room admin may call it.
func (uc *ChatUseCase) DeleteRoom(ctx context.Context, userID, roomID string) error {
	participant, err := uc.chatRepo.GetParticipant(ctx, roomID, userID)
	if err != nil {
		return err
	}

	if participant.Role != entity.ParticipantRoleAdmin {
		return errors.Forbidden("Only the room admin can delete this chat room", nil)
	}

	return uc.PurgeRoom(ctx, roomID)
}

// PurgeRoom deletes messages, then participant rows, then the room itself.
// Messages reference the room id, so a partial failure never strands
// messages without a queryable parent.
func (uc *ChatUseCase) PurgeRoom(ctx context.Context, roomID string) error {
	if err := uc.chatRepo.DeleteMessagesByRoom(ctx, roomID); err != nil {
		return fmt.Errorf("purge room %s: %w", roomID, err)
	}

	if err := uc.chatRepo.DeleteParticipantsByRoom(ctx, roomID); err != nil {
		return fmt.Errorf("purge room %s: %w", roomID, err)
	}

	if err := uc.chatRepo.DeleteRoom(ctx, roomID); err != nil {
		return fmt.Errorf("purge room %s: %w", roomID, err)
	}

	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
