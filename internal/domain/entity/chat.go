package entity

import "time"

type ChatRoom struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	CreatedBy   string `json:"created_by" firestore:"createdBy"`
	CreatorName string `json:"creator_name" firestore:"creatorName"`
	IsPrivate   bool   `json:"is_private" firestore:"isPrivate"`

	// Denormalized copies of the participant rows, kept in lockstep so that
	// "rooms for user X" stays a single array-contains query.
	Participants     []string `json:"participants" firestore:"participants"`
	ParticipantNames []string `json:"participant_names" firestore:"participantNames"`

	LastMessage     string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageTime time.Time `json:"last_message_time" firestore:"lastMessageTime"`
	CreatedAt       time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time `json:"updated_at" firestore:"updatedAt"`
}

const (
	ParticipantRoleAdmin  = "admin"
	ParticipantRoleMember = "member"
)

type ChatParticipant struct {
	ID         string    `json:"id" firestore:"id"`
	ChatRoomID string    `json:"chat_room_id" firestore:"chatRoomId"`
	UserID     string    `json:"user_id" firestore:"userId"`
	UserName   string    `json:"user_name" firestore:"userName"`
	Role       string    `json:"role" firestore:"role"` // "admin", "member"
	JoinedAt   time.Time `json:"joined_at" firestore:"joinedAt"`
}
