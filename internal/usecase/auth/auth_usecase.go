package auth

import (
	"context"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/leondli/gallery/internal/domain/entity"
	"github.com/leondli/gallery/internal/domain/repository"
	"github.com/leondli/gallery/internal/infrastructure/logger"
	apperrors "github.com/leondli/gallery/pkg/errors"
	"github.com/leondli/gallery/pkg/jwt"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UseCase defines the auth use case interface
type UseCase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// RegisterInput represents registration input data
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Validate checks the registration fields
func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&in.Email, validation.Required, validation.Length(3, 255), validation.Match(emailPattern)),
		validation.Field(&in.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&in.DisplayName, validation.Length(0, 100)),
	)
}

// LoginInput represents login input data
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login fields
func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// AuthOutput represents authentication output
type AuthOutput struct {
	User         *entity.UserResponse `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
}

type authUseCase struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtManager       *jwt.Manager
	log              zerolog.Logger
}

// NewUseCase creates a new auth use case
func NewUseCase(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	jwtManager *jwt.Manager,
) UseCase {
	return &authUseCase{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtManager:       jwtManager,
		log:              logger.NewLogger("auth"),
	}
}

func (u *authUseCase) Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	exists, err := u.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperrors.InternalError("failed to check email", err)
	}
	if exists {
		return nil, apperrors.AlreadyExistsError("email")
	}

	exists, err = u.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, apperrors.InternalError("failed to check username", err)
	}
	if exists {
		return nil, apperrors.AlreadyExistsError("username")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(passwordHash),
		DisplayName:  input.DisplayName,
		Status:       entity.UserStatusActive,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.InternalError("failed to create user", err)
	}

	u.log.Info().Str("user_id", user.ID.String()).Msg("User registered")
	return u.issue(ctx, user)
}

func (u *authUseCase) Login(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.UnauthorizedError("invalid credentials")
		}
		return nil, apperrors.InternalError("failed to get user", err)
	}

	if !user.IsActive() {
		return nil, apperrors.UnauthorizedError("user account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.UnauthorizedError("invalid credentials")
	}

	return u.issue(ctx, user)
}

func (u *authUseCase) RefreshToken(ctx context.Context, refreshToken string) (*AuthOutput, error) {
	if refreshToken == "" {
		return nil, apperrors.ValidationError("refresh_token: cannot be blank.")
	}

	storedToken, err := u.refreshTokenRepo.GetByTokenHash(ctx, jwt.HashRefreshToken(refreshToken))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.UnauthorizedError("invalid refresh token")
		}
		return nil, apperrors.InternalError("failed to get refresh token", err)
	}

	if storedToken.IsExpired() || storedToken.IsRevoked() {
		return nil, apperrors.UnauthorizedError("refresh token expired or revoked")
	}

	user, err := u.userRepo.GetByID(ctx, storedToken.UserID)
	if err != nil {
		return nil, apperrors.InternalError("failed to get user", err)
	}

	// rotate: the presented token is single use
	if err := u.refreshTokenRepo.Revoke(ctx, storedToken.ID); err != nil {
		return nil, apperrors.InternalError("failed to revoke old refresh token", err)
	}

	return u.issue(ctx, user)
}

func (u *authUseCase) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := u.refreshTokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return apperrors.InternalError("failed to revoke tokens", err)
	}
	return nil
}

// issue mints a token pair and stores the hashed refresh token
func (u *authUseCase) issue(ctx context.Context, user *entity.User) (*AuthOutput, error) {
	tokenPair, err := u.jwtManager.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, apperrors.InternalError("failed to generate tokens", err)
	}

	stored := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: jwt.HashRefreshToken(tokenPair.RefreshToken),
		ExpiresAt: time.Now().Add(u.jwtManager.RefreshTokenExpiry()),
	}
	if err := u.refreshTokenRepo.Create(ctx, stored); err != nil {
		return nil, apperrors.InternalError("failed to store refresh token", err)
	}

	return &AuthOutput{
		User:         user.ToResponse(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}
