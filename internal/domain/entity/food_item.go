package entity

import (
	"time"
)

const (
	FoodStatusAvailable = "available"
	FoodStatusRequested = "requested"
	FoodStatusCompleted = "completed"
)

type FoodItem struct {
	ID          string     `json:"id" firestore:"id"`
	Title       string     `json:"title" firestore:"title"`
	Description string     `json:"description" firestore:"description"`
	ImageURL    string     `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	ExpiryDate  time.Time  `json:"expiry_date" firestore:"expiryDate"`
	Status      string     `json:"status" firestore:"status"` // "available", "requested", "completed"
	OwnerID     string     `json:"owner_id" firestore:"ownerId"`
	OwnerName   string     `json:"owner_name" firestore:"ownerName"`
	Latitude    *float64   `json:"latitude,omitempty" firestore:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty" firestore:"longitude,omitempty"`
	Category    string     `json:"category,omitempty" firestore:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}
