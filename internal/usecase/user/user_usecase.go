package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	apperrors "github.com/leondli/gallery/pkg/errors"
)

// UseCase defines the user use case interface
type UseCase interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.UserResponse, error)
}

type userUseCase struct {
	userRepo repository.UserRepository
}

// NewUseCase creates a new user use case
func NewUseCase(userRepo repository.UserRepository) UseCase {
	return &userUseCase{userRepo: userRepo}
}

func (u *userUseCase) GetByID(ctx context.Context, id uuid.UUID) (*entity.UserResponse, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFoundError("user")
		}
		return nil, apperrors.InternalError("failed to get user", err)
	}
	return user.ToResponse(), nil
}
