package usecase

import (
	"context"
	"fmt"
	"time"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/logger"
	"foodswap/pkg/utils"
)

// DefaultChatRetention is how long a swap's chat room outlives completion.
const DefaultChatRetention = 6 * time.Hour

type TransactionUseCase struct {
	transactionRepo  repository.TransactionRepository
	foodItemRepo     repository.FoodItemRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	chatUseCase      *ChatUseCase
	chatRetention    time.Duration
}

func NewTransactionUseCase(
	transactionRepo repository.TransactionRepository,
	foodItemRepo repository.FoodItemRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	chatUseCase *ChatUseCase,
	chatRetention time.Duration,
) *TransactionUseCase {
	if chatRetention <= 0 {
		chatRetention = DefaultChatRetention
	}

	return &TransactionUseCase{
		transactionRepo:  transactionRepo,
		foodItemRepo:     foodItemRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		chatUseCase:      chatUseCase,
		chatRetention:    chatRetention,
	}
}

type CreateTransactionInput struct {
	FoodItemID     string
	RequestMessage string
}

// CreateTransaction reserves a food item for the requester. Writes are
// ordered so a failure partway through leaves the item still available
// rather than stuck requested with nothing to resolve it: the chat room and
// transaction are created first, and the status flip comes last as a
// conditional update.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, requesterID string, input CreateTransactionInput) (*entity.Transaction, error) {
	item, err := uc.foodItemRepo.GetByID(ctx, input.FoodItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == requesterID {
		return nil, errors.BadRequest("You cannot request your own food item", nil)
	}

	if item.Status != entity.FoodStatusAvailable {
		return nil, errors.Conflict("Food item is no longer available", nil)
	}

	requester, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	// Room is created on the owner's behalf so the owner lands at
	// participant[0] with the admin role.
	room, err := uc.chatUseCase.CreateRoom(ctx, item.OwnerID, CreateRoomInput{
		Name:           fmt.Sprintf("Swap: %s", item.Title),
		Description:    fmt.Sprintf("Coordination for %s", item.Title),
		IsPrivate:      true,
		ParticipantIDs: []string{requesterID},
	})
	if err != nil {
		return nil, err
	}

	transaction := &entity.Transaction{
		FoodItemID:     item.ID,
		FoodItemTitle:  item.Title,
		OwnerID:        item.OwnerID,
		OwnerName:      item.OwnerName,
		RequesterID:    requesterID,
		RequesterName:  requester.Name,
		ChatRoomID:     room.ID,
		Status:         entity.TransactionStatusPending,
		RequestMessage: input.RequestMessage,
		RequestedDate:  time.Now(),
	}

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	if _, err := uc.chatUseCase.SendMessage(ctx, requesterID, SendMessageInput{
		RoomID: room.ID,
		Text:   fmt.Sprintf("%s requested \"%s\"", requester.Name, item.Title),
		Type:   entity.MessageTypeSystem,
	}); err != nil {
		return nil, err
	}

	if input.RequestMessage != "" {
		if _, err := uc.chatUseCase.SendMessage(ctx, requesterID, SendMessageInput{
			RoomID: room.ID,
			Text:   input.RequestMessage,
			Type:   entity.MessageTypeText,
		}); err != nil {
			return nil, err
		}
	}

	notification := &entity.Notification{
		FromUserID:   requesterID,
		FromUserName: requester.Name,
		ToUserID:     item.OwnerID,
		FoodItemID:   item.ID,
		Type:         entity.NotificationTypeFoodRequest,
		Message:      fmt.Sprintf("%s wants to pick up \"%s\"", requester.Name, item.Title),
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.LogSwapError(transaction.ID, "notify_request", err)
	}

	// Conditional flip closes the race between two concurrent requesters:
	// the loser sees a conflict instead of silently double-booking.
	if err := uc.foodItemRepo.UpdateStatusIf(ctx, item.ID, entity.FoodStatusAvailable, entity.FoodStatusRequested); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (uc *TransactionUseCase) AcceptTransaction(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.OwnerID != userID {
		return nil, errors.Forbidden("Only the owner can accept this request", nil)
	}

	if transaction.Status != entity.TransactionStatusPending {
		return nil, errors.InvalidState("Transaction cannot be accepted in current status", nil)
	}

	now := time.Now()
	transaction.Status = entity.TransactionStatusAccepted
	transaction.AcceptedDate = &now

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	if _, err := uc.chatUseCase.SendMessage(ctx, userID, SendMessageInput{
		RoomID: transaction.ChatRoomID,
		Text:   fmt.Sprintf("%s accepted the swap request", transaction.OwnerName),
		Type:   entity.MessageTypeSystem,
	}); err != nil {
		logger.LogSwapError(transaction.ID, "accept_message", err)
	}

	notification := &entity.Notification{
		FromUserID:   transaction.OwnerID,
		FromUserName: transaction.OwnerName,
		ToUserID:     transaction.RequesterID,
		FoodItemID:   transaction.FoodItemID,
		Type:         entity.NotificationTypeRequestAccepted,
		Message:      fmt.Sprintf("%s accepted your request for \"%s\"", transaction.OwnerName, transaction.FoodItemTitle),
	}
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		logger.LogSwapError(transaction.ID, "notify_accept", err)
	}

	return transaction, nil
}

func (uc *TransactionUseCase) CompleteTransaction(ctx context.Context, userID, transactionID, completionPhotoURL string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.OwnerID != userID {
		return nil, errors.Forbidden("Only the owner can complete this swap", nil)
	}

	if transaction.Status != entity.TransactionStatusAccepted {
		return nil, errors.InvalidState("Transaction cannot be completed in current status", nil)
	}

	now := time.Now()
	expiresAt := now.Add(uc.chatRetention)

	transaction.Status = entity.TransactionStatusCompleted
	transaction.CompletionPhotoURL = completionPhotoURL
	transaction.CompletedDate = &now
	transaction.ChatExpiresAt = &expiresAt

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	proof := &entity.CompletionProof{
		TransactionID: transaction.ID,
		PhotoURL:      completionPhotoURL,
		UploadedBy:    userID,
	}
	if err := uc.transactionRepo.CreateProof(ctx, proof); err != nil {
		return nil, err
	}

	if err := uc.foodItemRepo.SetStatus(ctx, transaction.FoodItemID, entity.FoodStatusCompleted); err != nil {
		return nil, err
	}

	if _, err := uc.chatUseCase.SendMessage(ctx, userID, SendMessageInput{
		RoomID: transaction.ChatRoomID,
		Text:   fmt.Sprintf("Swap for \"%s\" completed", transaction.FoodItemTitle),
		Type:   entity.MessageTypeSystem,
	}); err != nil {
		logger.LogSwapError(transaction.ID, "complete_message", err)
	}

	if _, err := uc.chatUseCase.SendMessage(ctx, userID, SendMessageInput{
		RoomID: transaction.ChatRoomID,
		Text:   completionPhotoURL,
		Type:   entity.MessageTypeCompletionPhoto,
	}); err != nil {
		logger.LogSwapError(transaction.ID, "completion_photo_message", err)
	}

	return transaction, nil
}

// CancelTransaction may be called by either party. Both owner- and
// requester-initiated cancels release the food item back to available; an
// item should never stay reserved for a swap that no longer exists.
func (uc *TransactionUseCase) CancelTransaction(ctx context.Context, userID, transactionID, reason string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	isOwner := transaction.OwnerID == userID
	isRequester := transaction.RequesterID == userID

	if !isOwner && !isRequester {
		return nil, errors.Forbidden("You don't have permission to cancel this swap", nil)
	}

	if transaction.IsTerminal() {
		return nil, errors.InvalidState("Transaction cannot be cancelled in current status", nil)
	}

	now := time.Now()
	transaction.Status = entity.TransactionStatusCancelled
	transaction.CancelledDate = &now
	transaction.CancellationReason = reason

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	var cancellerName string
	if isOwner {
		cancellerName = transaction.OwnerName
	} else {
		cancellerName = transaction.RequesterName
	}

	text := fmt.Sprintf("%s cancelled the swap", cancellerName)
	if reason != "" {
		text += ": " + reason
	}

	if _, err := uc.chatUseCase.SendMessage(ctx, userID, SendMessageInput{
		RoomID: transaction.ChatRoomID,
		Text:   text,
		Type:   entity.MessageTypeSystem,
	}); err != nil {
		logger.LogSwapError(transaction.ID, "cancel_message", err)
	}

	if err := uc.foodItemRepo.SetStatus(ctx, transaction.FoodItemID, entity.FoodStatusAvailable); err != nil {
		logger.LogSwapError(transaction.ID, "release_item", err)
	}

	if isOwner {
		notification := &entity.Notification{
			FromUserID:   transaction.OwnerID,
			FromUserName: transaction.OwnerName,
			ToUserID:     transaction.RequesterID,
			FoodItemID:   transaction.FoodItemID,
			Type:         entity.NotificationTypeRequestRejected,
			Message:      fmt.Sprintf("%s declined your request for \"%s\"", transaction.OwnerName, transaction.FoodItemTitle),
		}
		if err := uc.notificationRepo.Create(ctx, notification); err != nil {
			logger.LogSwapError(transaction.ID, "notify_reject", err)
		}
	}

	return transaction, nil
}

func (uc *TransactionUseCase) GetTransactionByID(ctx context.Context, userID, transactionID string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.OwnerID != userID && transaction.RequesterID != userID {
		return nil, errors.Forbidden("You don't have permission to view this swap", nil)
	}

	return transaction, nil
}

func (uc *TransactionUseCase) ListTransactions(ctx context.Context, userID, role, status string, page, limit int) ([]*entity.Transaction, int64, error) {
	if role != "owner" && role != "requester" {
		role = "requester"
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.transactionRepo.ListByUserID(ctx, userID, role, status, pagination.PageSize, pagination.Offset)
}

func (uc *TransactionUseCase) GetTransactionByFoodItem(ctx context.Context, userID, foodItemID string) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.GetActiveByFoodItemID(ctx, foodItemID)
	if err != nil {
		return nil, err
	}

	if transaction.OwnerID != userID && transaction.RequesterID != userID {
		return nil, errors.Forbidden("You don't have permission to view this swap", nil)
	}

	return transaction, nil
}

func (uc *TransactionUseCase) GetCompletionProofs(ctx context.Context, userID, transactionID string) ([]*entity.CompletionProof, error) {
	if _, err := uc.GetTransactionByID(ctx, userID, transactionID); err != nil {
		return nil, err
	}

	return uc.transactionRepo.ListProofsByTransactionID(ctx, transactionID)
}

// RespondToRequest is the notification-driven entry point for accept and
// reject. It resolves the notification back to its active transaction and
// routes through the same accept/cancel paths the transaction surface uses,
// so both triggers share one set of side effects.
func (uc *TransactionUseCase) RespondToRequest(ctx context.Context, userID, notificationID string, accept bool) (*entity.Transaction, error) {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.ToUserID != userID {
		return nil, errors.Forbidden("You don't have permission to respond to this notification", nil)
	}

	if notification.Type != entity.NotificationTypeFoodRequest {
		return nil, errors.BadRequest("Notification is not a swap request", nil)
	}

	transaction, err := uc.transactionRepo.GetActiveByFoodItemID(ctx, notification.FoodItemID)
	if err != nil {
		return nil, err
	}

	if accept {
		transaction, err = uc.AcceptTransaction(ctx, userID, transaction.ID)
	} else {
		transaction, err = uc.CancelTransaction(ctx, userID, transaction.ID, "Request declined")
	}
	if err != nil {
		return nil, err
	}

	notification.Read = true
	if err := uc.notificationRepo.Update(ctx, notification); err != nil {
		logger.LogSwapError(transaction.ID, "mark_notification_read", err)
	}

	return transaction, nil
}

// CleanupExpiredChats reaps chat rooms of completed swaps past their
// retention window. Safe to call repeatedly: already-reaped transactions
// carry no chat reference and are skipped by the query.
func (uc *TransactionUseCase) CleanupExpiredChats(ctx context.Context) (int, error) {
	expired, err := uc.transactionRepo.ListExpiredChats(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	reaped := 0
	for _, transaction := range expired {
		if err := uc.chatUseCase.PurgeRoom(ctx, transaction.ChatRoomID); err != nil {
			logger.LogSwapError(transaction.ID, "reap_chat", err)
			continue
		}

		transaction.ChatRoomID = ""
		if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
			logger.LogSwapError(transaction.ID, "clear_chat_ref", err)
			continue
		}

		reaped++
	}

	return reaped, nil
}
