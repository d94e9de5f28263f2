package entity

import "time"

const (
	MessageTypeText            = "text"
	MessageTypeImage           = "image"
	MessageTypeSystem          = "system"
	MessageTypeCompletionPhoto = "completion_photo"
)

type ChatMessage struct {
	ID         string    `json:"id" firestore:"id"`
	ChatRoomID string    `json:"chat_room_id" firestore:"chatRoomId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name" firestore:"senderName"`
	Text       string    `json:"text" firestore:"text"`
	Type       string    `json:"type" firestore:"type"` // "text", "image", "system", "completion_photo"
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
