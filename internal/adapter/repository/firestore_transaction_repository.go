package repository

import (
	"context"
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

type firestoreTransactionRepository struct {
	client *firestore.Client
}

func NewFirestoreTransactionRepository(client *firestore.Client) repository.TransactionRepository {
	return &firestoreTransactionRepository{
		client: client,
	}
}

func (r *firestoreTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}

	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to create transaction", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	doc, err := r.client.Collection("transactions").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Transaction", err)
		}
		return nil, errors.Internal("Failed to get transaction", err)
	}

	var transaction entity.Transaction
	if err := doc.DataTo(&transaction); err != nil {
		return nil, errors.Internal("Failed to parse transaction data", err)
	}

	return &transaction, nil
}

func (r *firestoreTransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now()

	_, err := r.client.Collection("transactions").Doc(transaction.ID).Set(ctx, transaction)
	if err != nil {
		return errors.Internal("Failed to update transaction", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Transaction, int64, error) {
	query := r.client.Collection("transactions").Query

	switch role {
	case "owner":
		query = query.Where("ownerId", "==", userID)
	default:
		query = query.Where("requesterId", "==", userID)
	}

	if status != "" {
		query = query.Where("status", "==", status)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count transactions", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var transactions []*entity.Transaction

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate transactions", err)
		}

		var transaction entity.Transaction
		if err := doc.DataTo(&transaction); err != nil {
			return nil, 0, errors.Internal("Failed to parse transaction data", err)
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, total, nil
}

func (r *firestoreTransactionRepository) GetActiveByFoodItemID(ctx context.Context, foodItemID string) (*entity.Transaction, error) {
	// Firestore has no OR queries across values here, so check the two
	// non-terminal statuses in turn.
	for _, s := range []string{entity.TransactionStatusPending, entity.TransactionStatusAccepted} {
		query := r.client.Collection("transactions").
			Where("foodItemId", "==", foodItemID).
			Where("status", "==", s).
			Limit(1)

		iter := query.Documents(ctx)
		doc, err := iter.Next()
		if err == iterator.Done {
			continue
		}
		if err != nil {
			return nil, errors.Internal("Failed to query transaction by food item", err)
		}

		var transaction entity.Transaction
		if err := doc.DataTo(&transaction); err != nil {
			return nil, errors.Internal("Failed to parse transaction data", err)
		}
		return &transaction, nil
	}

	return nil, errors.NotFound("Active transaction for food item", nil)
}

func (r *firestoreTransactionRepository) ListExpiredChats(ctx context.Context, now time.Time) ([]*entity.Transaction, error) {
	query := r.client.Collection("transactions").
		Where("status", "==", entity.TransactionStatusCompleted).
		Where("chatExpiresAt", "<", now)

	iter := query.Documents(ctx)
	var transactions []*entity.Transaction

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate expired chats", err)
		}

		var transaction entity.Transaction
		if err := doc.DataTo(&transaction); err != nil {
			return nil, errors.Internal("Failed to parse transaction data", err)
		}

		// Already-reaped transactions carry no chat reference.
		if transaction.ChatRoomID == "" {
			continue
		}
		transactions = append(transactions, &transaction)
	}

	return transactions, nil
}

func (r *firestoreTransactionRepository) CreateProof(ctx context.Context, proof *entity.CompletionProof) error {
	if proof.ID == "" {
		proof.ID = uuid.New().String()
	}

	proof.CreatedAt = time.Now()

	_, err := r.client.Collection("completionProofs").Doc(proof.ID).Set(ctx, proof)
	if err != nil {
		return errors.Internal("Failed to create completion proof", err)
	}

	return nil
}

func (r *firestoreTransactionRepository) ListProofsByTransactionID(ctx context.Context, transactionID string) ([]*entity.CompletionProof, error) {
	query := r.client.Collection("completionProofs").
		Where("transactionId", "==", transactionID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var proofs []*entity.CompletionProof

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate completion proofs", err)
		}

		var proof entity.CompletionProof
		if err := doc.DataTo(&proof); err != nil {
			return nil, errors.Internal("Failed to parse completion proof data", err)
		}
		proofs = append(proofs, &proof)
	}

	return proofs, nil
}
