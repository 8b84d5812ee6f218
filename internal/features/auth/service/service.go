package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"loyalty-platform-backend/internal/features/auth/models"
	"loyalty-platform-backend/internal/features/auth/repository"
	usermodels "loyalty-platform-backend/internal/features/user/models"
	userservice "loyalty-platform-backend/internal/features/user/service"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	// Login verifies the password and issues a bearer-token session.
	Login(ctx context.Context, input *models.LoginInput) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// ValidateToken resolves a bearer token to its session, nil when unknown.
	ValidateToken(ctx context.Context, token string) (*models.Session, error)
}

type authService struct {
	sessions repository.SessionRepository
	users    userservice.UserService
	logger   zerolog.Logger
}

func NewAuthService(sessions repository.SessionRepository, users userservice.UserService, logger zerolog.Logger) AuthService {
	return &authService{
		sessions: sessions,
		users:    users,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, input *models.LoginInput) (*models.LoginResponse, error) {
	user, err := s.users.GetUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error().Err(err).Int("user_id", user.ID).Msg("failed to save session")
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return &models.LoginResponse{
		Token: session.Token,
		User:  usermodels.ToUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, token)
}
