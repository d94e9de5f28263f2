package repository

import (
	"context"
	stderrors "errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
)

type firestoreFoodItemRepository struct {
	client *firestore.Client
}

func NewFirestoreFoodItemRepository(client *firestore.Client) repository.FoodItemRepository {
	return &firestoreFoodItemRepository{
		client: client,
	}
}

func (r *firestoreFoodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	if item.ID == "" {
		doc := r.client.Collection("foodItems").NewDoc()
		item.ID = doc.ID
	}

	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	if item.Status == "" {
		item.Status = entity.FoodStatusAvailable
	}

	_, err := r.client.Collection("foodItems").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create food item", err)
	}

	return nil
}

func (r *firestoreFoodItemRepository) GetByID(ctx context.Context, id string) (*entity.FoodItem, error) {
	doc, err := r.client.Collection("foodItems").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Food item", err)
		}
		return nil, errors.Internal("Failed to get food item", err)
	}

	var item entity.FoodItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse food item data", err)
	}

	return &item, nil
}

func (r *firestoreFoodItemRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.FoodItem, int64, error) {
	query := r.client.Collection("foodItems").Query

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	// Exclude soft-deleted listings
	query = query.Where("deletedAt", "==", nil)
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count food items", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var items []*entity.FoodItem

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate food items", err)
		}

		var item entity.FoodItem
		if err := doc.DataTo(&item); err != nil {
			return nil, 0, errors.Internal("Failed to parse food item data", err)
		}
		items = append(items, &item)
	}

	return items, total, nil
}

func (r *firestoreFoodItemRepository) Update(ctx context.Context, item *entity.FoodItem) error {
	item.UpdatedAt = time.Now()

	_, err := r.client.Collection("foodItems").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to update food item", err)
	}

	return nil
}

func (r *firestoreFoodItemRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("foodItems").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Food item", err)
		}
		return errors.Internal("Failed to delete food item", err)
	}

	return nil
}

// UpdateStatusIf runs inside a Firestore transaction so two concurrent
// requesters cannot both reserve the same item.
func (r *firestoreFoodItemRepository) UpdateStatusIf(ctx context.Context, id, expectedStatus, newStatus string) error {
	docRef := r.client.Collection("foodItems").Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Food item", err)
			}
			return errors.Internal("Failed to get food item", err)
		}

		current, err := doc.DataAt("status")
		if err != nil {
			return errors.Internal("Failed to read food item status", err)
		}

		if current != expectedStatus {
			return errors.Conflict("Food item is no longer available", nil)
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "status", Value: newStatus},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return appErr
		}
		return errors.Internal("Failed to update food item status", err)
	}

	return nil
}

func (r *firestoreFoodItemRepository) SetStatus(ctx context.Context, id, newStatus string) error {
	_, err := r.client.Collection("foodItems").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Food item", err)
		}
		return errors.Internal("Failed to update food item status", err)
	}

	return nil
}
