package repository

import (
	"context"
	"time"

	"foodswap/internal/domain/entity"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	Update(ctx context.Context, transaction *entity.Transaction) error
	ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Transaction, int64, error)

	// GetActiveByFoodItemID returns the pending or accepted transaction for a
	// food item, if any.
	GetActiveByFoodItemID(ctx context.Context, foodItemID string) (*entity.Transaction, error)

	// ListExpiredChats returns completed transactions whose chat retention
	// window has elapsed and that still reference a chat room.
	ListExpiredChats(ctx context.Context, now time.Time) ([]*entity.Transaction, error)

	CreateProof(ctx context.Context, proof *entity.CompletionProof) error
	ListProofsByTransactionID(ctx context.Context, transactionID string) ([]*entity.CompletionProof, error)
}
