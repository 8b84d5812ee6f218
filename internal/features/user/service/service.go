package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"loyalty-platform-backend/internal/features/user/models"
	"loyalty-platform-backend/internal/features/user/repository"
	"loyalty-platform-backend/internal/utils/random"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAlreadyLinked   = errors.New("telegram account already linked")
	ErrInvalidReferral = errors.New("invalid referral code")
)

type UserService interface {
	CreateUser(ctx context.Context, input *models.CreateUserInput) (*models.UserResponse, error)
	GetUser(ctx context.Context, id int) (*models.UserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.UserResponse, error)
	UpdatePoints(ctx context.Context, id int, points string) (*models.UserResponse, error)
	// LinkTelegram binds a Telegram chat to the user owning the referral code.
	// Fails with ErrInvalidReferral when no user owns the code and with
	// ErrAlreadyLinked when the user already has a chat bound.
	LinkTelegram(ctx context.Context, referralCode, telegramID string) (*models.User, error)
}

type userService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) CreateUser(ctx context.Context, input *models.CreateUserInput) (*models.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		Password:     string(hash),
		Points:       models.InitialPoints,
		ReferralCode: random.ReferralCode(),
		Role:         models.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("username", user.Username).Msg("user created")

	return models.ToUserResponse(user), nil
}

func (s *userService) GetUser(ctx context.Context, id int) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return models.ToUserResponse(user), nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return models.ToUserResponses(users), nil
}

func (s *userService) UpdatePoints(ctx context.Context, id int, points string) (*models.UserResponse, error) {
	user, err := s.repo.UpdatePoints(ctx, id, points)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return models.ToUserResponse(user), nil
}

func (s *userService) LinkTelegram(ctx context.Context, referralCode, telegramID string) (*models.User, error) {
	user, err := s.repo.GetByReferralCode(ctx, referralCode)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidReferral
		}
		return nil, err
	}

	if user.TelegramID != nil {
		return nil, ErrAlreadyLinked
	}

	linked, err := s.repo.UpdateTelegramID(ctx, user.ID, telegramID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", linked.ID).Str("telegram_id", telegramID).Msg("telegram account linked")

	return linked, nil
}
