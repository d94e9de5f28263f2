package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}

	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now

	_, err := r.client.Collection("chatRooms").Doc(room.ID).Set(ctx, room)
	if err != nil {
		return errors.Internal("Failed to create chat room", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetRoomByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	doc, err := r.client.Collection("chatRooms").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat room", err)
		}
		return nil, errors.Internal("Failed to get chat room", err)
	}

	var room entity.ChatRoom
	if err := doc.DataTo(&room); err != nil {
		return nil, errors.Internal("Failed to parse chat room data", err)
	}

	return &room, nil
}

func (r *firestoreChatRepository) ListRoomsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatRoom, int64, error) {
	query := r.client.Collection("chatRooms").
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Firestore error while fetching chat rooms for user %s: %v", userID, err)
		return nil, 0, errors.Internal("Failed to fetch chat rooms", err)
	}

	total := int64(len(allDocs))

	// Paginate in-memory to avoid a second Firestore round trip
	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var rooms []*entity.ChatRoom
	for i := start; i < end; i++ {
		var room entity.ChatRoom
		if err := allDocs[i].DataTo(&room); err != nil {
			log.Printf("Error parsing chat room data for user %s: %v", userID, err)
			continue
		}
		rooms = append(rooms, &room)
	}

	return rooms, total, nil
}

func (r *firestoreChatRepository) UpdateRoom(ctx context.Context, room *entity.ChatRoom) error {
	room.UpdatedAt = time.Now()

	_, err := r.client.Collection("chatRooms").Doc(room.ID).Set(ctx, room)
	if err != nil {
		return errors.Internal("Failed to update chat room", err)
	}

	return nil
}

func (r *firestoreChatRepository) DeleteRoom(ctx context.Context, id string) error {
	_, err := r.client.Collection("chatRooms").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete chat room", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("chatRooms").Doc(message.ChatRoomID).Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

// ListMessagesByRoom returns messages newest-first; callers needing
// chronological order reverse the slice themselves.
func (r *firestoreChatRepository) ListMessagesByRoom(ctx context.Context, roomID string, limit int) ([]*entity.ChatMessage, error) {
	query := r.client.Collection("chatRooms").Doc(roomID).Collection("messages").
		OrderBy("createdAt", firestore.Desc)

	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.ChatMessage

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for room %s: %v", roomID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.ChatMessage
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for room %s: %v", roomID, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreChatRepository) DeleteMessagesByRoom(ctx context.Context, roomID string) error {
	iter := r.client.Collection("chatRooms").Doc(roomID).Collection("messages").Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate messages for deletion", err)
		}

		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete message", err)
		}
	}

	return nil
}

func (r *firestoreChatRepository) CreateParticipant(ctx context.Context, participant *entity.ChatParticipant) error {
	if participant.ID == "" {
		participant.ID = uuid.New().String()
	}

	if participant.JoinedAt.IsZero() {
		participant.JoinedAt = time.Now()
	}

	_, err := r.client.Collection("chatParticipants").Doc(participant.ID).Set(ctx, participant)
	if err != nil {
		return errors.Internal("Failed to create chat participant", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetParticipant(ctx context.Context, roomID, userID string) (*entity.ChatParticipant, error) {
	query := r.client.Collection("chatParticipants").
		Where("chatRoomId", "==", roomID).
		Where("userId", "==", userID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Chat participant", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query chat participant", err)
	}

	var participant entity.ChatParticipant
	if err := doc.DataTo(&participant); err != nil {
		return nil, errors.Internal("Failed to parse chat participant data", err)
	}

	return &participant, nil
}

func (r *firestoreChatRepository) ListParticipantsByRoom(ctx context.Context, roomID string) ([]*entity.ChatParticipant, error) {
	query := r.client.Collection("chatParticipants").
		Where("chatRoomId", "==", roomID).
		OrderBy("joinedAt", firestore.Asc)

	iter := query.Documents(ctx)
	var participants []*entity.ChatParticipant

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate chat participants", err)
		}

		var participant entity.ChatParticipant
		if err := doc.DataTo(&participant); err != nil {
			return nil, errors.Internal("Failed to parse chat participant data", err)
		}
		participants = append(participants, &participant)
	}

	return participants, nil
}

func (r *firestoreChatRepository) DeleteParticipantsByRoom(ctx context.Context, roomID string) error {
	iter := r.client.Collection("chatParticipants").
		Where("chatRoomId", "==", roomID).
		Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate participants for deletion", err)
		}

		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete chat participant", err)
		}
	}

	return nil
}
