package entity

import (
	"time"
)

const (
	TransactionStatusPending   = "pending"
	TransactionStatusAccepted  = "accepted"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"
)

type Transaction struct {
	ID            string `json:"id" firestore:"id"`
	FoodItemID    string `json:"food_item_id" firestore:"foodItemId"`
	FoodItemTitle string `json:"food_item_title" firestore:"foodItemTitle"`
	OwnerID       string `json:"owner_id" firestore:"ownerId"`
	OwnerName     string `json:"owner_name" firestore:"ownerName"`
	RequesterID   string `json:"requester_id" firestore:"requesterId"`
	RequesterName string `json:"requester_name" firestore:"requesterName"`
	ChatRoomID    string `json:"chat_room_id,omitempty" firestore:"chatRoomId,omitempty"`
	Status        string `json:"status" firestore:"status"` // "pending", "accepted", "completed", "cancelled"

	RequestMessage     string `json:"request_message,omitempty" firestore:"requestMessage,omitempty"`
	CompletionPhotoURL string `json:"completion_photo_url,omitempty" firestore:"completionPhotoUrl,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty" firestore:"cancellationReason,omitempty"`

	RequestedDate time.Time  `json:"requested_date" firestore:"requestedDate"`
	AcceptedDate  *time.Time `json:"accepted_date,omitempty" firestore:"acceptedDate,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty" firestore:"completedDate,omitempty"`
	CancelledDate *time.Time `json:"cancelled_date,omitempty" firestore:"cancelledDate,omitempty"`

	// Set only at completion; the chat room is reaped once this passes.
	ChatExpiresAt *time.Time `json:"chat_expires_at,omitempty" firestore:"chatExpiresAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsTerminal reports whether the swap can no longer change status.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted || t.Status == TransactionStatusCancelled
}

// CompletionProof is an immutable audit record kept separate from the mutable
// transaction row. A transaction may accumulate more than one proof.
type CompletionProof struct {
	ID            string    `json:"id" firestore:"id"`
	TransactionID string    `json:"transaction_id" firestore:"transactionId"`
	PhotoURL      string    `json:"photo_url" firestore:"photoUrl"`
	UploadedBy    string    `json:"uploaded_by" firestore:"uploadedBy"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt"`
}
