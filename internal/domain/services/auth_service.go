package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
	"github.com/kavjeydev/notepod-sub000/internal/domain/repositories"
	"github.com/kavjeydev/notepod-sub000/internal/utils"
	"github.com/kavjeydev/notepod-sub000/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo      repositories.UserRepository
	sessionRepo   repositories.SessionRepository
	adminToken    string
	tokenDuration time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	adminToken string,
	tokenDuration time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		adminToken:    adminToken,
		tokenDuration: tokenDuration,
	}
}

func (s *AuthService) Register(ctx context.Context, adminToken, login, password string, profileURL *string) (*entities.User, error) {
	if adminToken != s.adminToken {
		return nil, errors.NewUnauthorizedError("invalid admin token")
	}

	if err := utils.ValidateLogin(login); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	if _, err := s.userRepo.GetByLogin(ctx, login); err == nil {
		return nil, errors.NewBadRequestError("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password")
	}

	user := &entities.User{
		ID:         uuid.NewString(),
		Login:      login,
		Password:   string(hashedPassword),
		ProfileURL: profileURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.NewInternalError("failed to create user")
	}

	return user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, login, password string) (string, error) {
	user, err := s.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	token := utils.GenerateToken()
	session := &entities.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenDuration),
		UpdatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", errors.NewInternalError("failed to create session")
	}

	return token, nil
}

// ValidateToken resolves a session token into the caller's identity.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*entities.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid token")
	}

	if session.ExpiresAt.Before(time.Now()) {
		s.sessionRepo.Delete(ctx, token)
		return nil, errors.NewUnauthorizedError("token expired")
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.NewUnauthorizedError("user not found")
	}

	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}
