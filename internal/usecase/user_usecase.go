package usecase

import (
	"context"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/logger"
)

// IdentityProvider exposes the identity attributes the profile layer needs
// beyond the verified uid.
type IdentityProvider interface {
	GetUserEmail(ctx context.Context, uid string) (string, error)
}

type UserUseCase struct {
	userRepo repository.UserRepository
	identity IdentityProvider
}

func NewUserUseCase(userRepo repository.UserRepository, identity IdentityProvider) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		identity: identity,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Name  string
	Email string
}

// UpdateProfile upserts the profile row. Denormalized names on chat rooms,
// swaps and notifications are resolved from this record at write time.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}

		email := input.Email
		if email == "" && uc.identity != nil {
			// First write for this account; fall back to the identity
			// provider's email if the client didn't send one.
			if fetched, err := uc.identity.GetUserEmail(ctx, userID); err != nil {
				logger.Warn("Failed to fetch email for user %s: %v", userID, err)
			} else {
				email = fetched
			}
		}

		user = &entity.User{
			ID:    userID,
			Name:  input.Name,
			Email: email,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.Name = input.Name
	if input.Email != "" {
		user.Email = input.Email
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
