package entity

import "time"

const (
	NotificationTypeFoodRequest     = "food_request"
	NotificationTypeRequestAccepted = "request_accepted"
	NotificationTypeRequestRejected = "request_rejected"
)

type Notification struct {
	ID           string    `json:"id" firestore:"id"`
	FromUserID   string    `json:"from_user_id" firestore:"fromUserId"`
	FromUserName string    `json:"from_user_name" firestore:"fromUserName"`
	ToUserID     string    `json:"to_user_id" firestore:"toUserId"`
	FoodItemID   string    `json:"food_item_id" firestore:"foodItemId"`
	Type         string    `json:"type" firestore:"type"` // "food_request", "request_accepted", "request_rejected"
	Message      string    `json:"message" firestore:"message"`
	Read         bool      `json:"read" firestore:"read"`
	CreatedAt    time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" firestore:"updatedAt"`
}
