package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"foodswap/internal/domain/entity"
	"foodswap/pkg/errors"
)

// In-memory repository fakes backing the usecase tests. They mirror the
// store adapters' contracts: generated ids, repo-stamped timestamps, and
// newest-first message retrieval.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

type fakeFoodItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.FoodItem
}

func newFakeFoodItemRepo(items ...*entity.FoodItem) *fakeFoodItemRepo {
	repo := &fakeFoodItemRepo{items: make(map[string]*entity.FoodItem)}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (r *fakeFoodItemRepo) Create(ctx context.Context, item *entity.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = fmt.Sprintf("food-%d", len(r.items)+1)
	}
	if item.Status == "" {
		item.Status = entity.FoodStatusAvailable
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeFoodItemRepo) GetByID(ctx context.Context, id string) (*entity.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Food item", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeFoodItemRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.FoodItem, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []*entity.FoodItem
	for _, item := range r.items {
		if item.DeletedAt != nil {
			continue
		}
		if status, ok := filter["status"]; ok && item.Status != status {
			continue
		}
		if owner, ok := filter["ownerId"]; ok && item.OwnerID != owner {
			continue
		}
		if category, ok := filter["category"]; ok && item.Category != category {
			continue
		}
		copied := *item
		items = append(items, &copied)
	}
	return items, int64(len(items)), nil
}

func (r *fakeFoodItemRepo) Update(ctx context.Context, item *entity.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return errors.NotFound("Food item", nil)
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeFoodItemRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return errors.NotFound("Food item", nil)
	}
	now := time.Now()
	item.DeletedAt = &now
	return nil
}

func (r *fakeFoodItemRepo) UpdateStatusIf(ctx context.Context, id, expectedStatus, newStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return errors.NotFound("Food item", nil)
	}
	if item.Status != expectedStatus {
		return errors.Conflict("Food item is no longer available", nil)
	}
	item.Status = newStatus
	return nil
}

func (r *fakeFoodItemRepo) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return errors.NotFound("Food item", nil)
	}
	item.Status = status
	return nil
}

type fakeTransactionRepo struct {
	mu           sync.Mutex
	transactions map[string]*entity.Transaction
	proofs       []*entity.CompletionProof
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[string]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if transaction.ID == "" {
		transaction.ID = fmt.Sprintf("tx-%d", len(r.transactions)+1)
	}
	now := time.Now()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, errors.NotFound("Transaction", nil)
	}
	copied := *transaction
	return &copied, nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[transaction.ID]; !ok {
		return errors.NotFound("Transaction", nil)
	}
	transaction.UpdatedAt = time.Now()
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) ListByUserID(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Transaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Transaction
	for _, transaction := range r.transactions {
		if role == "owner" && transaction.OwnerID != userID {
			continue
		}
		if role != "owner" && transaction.RequesterID != userID {
			continue
		}
		if status != "" && transaction.Status != status {
			continue
		}
		copied := *transaction
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (r *fakeTransactionRepo) GetActiveByFoodItemID(ctx context.Context, foodItemID string) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, transaction := range r.transactions {
		if transaction.FoodItemID != foodItemID {
			continue
		}
		if transaction.Status == entity.TransactionStatusPending || transaction.Status == entity.TransactionStatusAccepted {
			copied := *transaction
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Active transaction for food item", nil)
}

func (r *fakeTransactionRepo) ListExpiredChats(ctx context.Context, now time.Time) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Transaction
	for _, transaction := range r.transactions {
		if transaction.Status != entity.TransactionStatusCompleted {
			continue
		}
		if transaction.ChatExpiresAt == nil || !transaction.ChatExpiresAt.Before(now) {
			continue
		}
		if transaction.ChatRoomID == "" {
			continue
		}
		copied := *transaction
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeTransactionRepo) CreateProof(ctx context.Context, proof *entity.CompletionProof) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if proof.ID == "" {
		proof.ID = fmt.Sprintf("proof-%d", len(r.proofs)+1)
	}
	proof.CreatedAt = time.Now()
	copied := *proof
	r.proofs = append(r.proofs, &copied)
	return nil
}

func (r *fakeTransactionRepo) ListProofsByTransactionID(ctx context.Context, transactionID string) ([]*entity.CompletionProof, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.CompletionProof
	for _, proof := range r.proofs {
		if proof.TransactionID == transactionID {
			copied := *proof
			result = append(result, &copied)
		}
	}
	return result, nil
}

type fakeChatRepo struct {
	mu           sync.Mutex
	rooms        map[string]*entity.ChatRoom
	messages     map[string][]*entity.ChatMessage
	participants map[string][]*entity.ChatParticipant
	clock        time.Time
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		rooms:        make(map[string]*entity.ChatRoom),
		messages:     make(map[string][]*entity.ChatMessage),
		participants: make(map[string][]*entity.ChatParticipant),
		clock:        time.Now(),
	}
}

// tick hands out strictly increasing timestamps so ordering assertions are
// deterministic even when writes land within the same wall-clock instant.
func (r *fakeChatRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Millisecond)
	return r.clock
}

func (r *fakeChatRepo) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room.ID == "" {
		room.ID = fmt.Sprintf("room-%d", len(r.rooms)+1)
	}
	now := r.tick()
	room.CreatedAt = now
	room.UpdatedAt = now
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetRoomByID(ctx context.Context, id string) (*entity.ChatRoom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, errors.NotFound("Chat room", nil)
	}
	copied := *room
	return &copied, nil
}

func (r *fakeChatRepo) ListRoomsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.ChatRoom, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rooms []*entity.ChatRoom
	for _, room := range r.rooms {
		for _, p := range room.Participants {
			if p == userID {
				copied := *room
				rooms = append(rooms, &copied)
				break
			}
		}
	}
	return rooms, int64(len(rooms)), nil
}

func (r *fakeChatRepo) UpdateRoom(ctx context.Context, room *entity.ChatRoom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[room.ID]; !ok {
		return errors.NotFound("Chat room", nil)
	}
	room.UpdatedAt = r.tick()
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakeChatRepo) DeleteRoom(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", len(r.messages[message.ChatRoomID])+1)
	}
	message.CreatedAt = r.tick()
	copied := *message
	r.messages[message.ChatRoomID] = append(r.messages[message.ChatRoomID], &copied)
	return nil
}

func (r *fakeChatRepo) ListMessagesByRoom(ctx context.Context, roomID string, limit int) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := make([]*entity.ChatMessage, 0, len(r.messages[roomID]))
	for _, m := range r.messages[roomID] {
		copied := *m
		msgs = append(msgs, &copied)
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (r *fakeChatRepo) DeleteMessagesByRoom(ctx context.Context, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, roomID)
	return nil
}

func (r *fakeChatRepo) CreateParticipant(ctx context.Context, participant *entity.ChatParticipant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if participant.ID == "" {
		participant.ID = fmt.Sprintf("part-%d", len(r.participants[participant.ChatRoomID])+1)
	}
	if participant.JoinedAt.IsZero() {
		participant.JoinedAt = r.tick()
	}
	copied := *participant
	r.participants[participant.ChatRoomID] = append(r.participants[participant.ChatRoomID], &copied)
	return nil
}

func (r *fakeChatRepo) GetParticipant(ctx context.Context, roomID, userID string) (*entity.ChatParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants[roomID] {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Chat participant", nil)
}

func (r *fakeChatRepo) ListParticipantsByRoom(ctx context.Context, roomID string) ([]*entity.ChatParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.ChatParticipant
	for _, p := range r.participants[roomID] {
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeChatRepo) DeleteParticipantsByRoom(ctx context.Context, roomID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, roomID)
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*entity.Notification
	seq           int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*entity.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		r.seq++
		notification.ID = fmt.Sprintf("notif-%d", r.seq)
	}
	now := time.Now()
	notification.CreatedAt = now
	notification.UpdatedAt = now
	copied := *notification
	r.notifications[notification.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	copied := *notification
	return &copied, nil
}

func (r *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Notification
	for _, notification := range r.notifications {
		if notification.ToUserID == userID {
			copied := *notification
			result = append(result, &copied)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeNotificationRepo) Update(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[notification.ID]; !ok {
		return errors.NotFound("Notification", nil)
	}
	notification.UpdatedAt = time.Now()
	copied := *notification
	r.notifications[notification.ID] = &copied
	return nil
}

func (r *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifications, id)
	return nil
}
