package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"loyalty-platform-backend/internal/features/transaction/models"
	"loyalty-platform-backend/internal/features/transaction/repository"
	userrepo "loyalty-platform-backend/internal/features/user/repository"
)

var ErrUserNotFound = errors.New("transaction user not found")

type TransactionService interface {
	CreateTransaction(ctx context.Context, input *models.CreateTransactionInput) (*models.Transaction, error)
	GetTransactions(ctx context.Context, userID int) ([]*models.Transaction, error)
}

type transactionService struct {
	repo   repository.TransactionRepository
	users  userrepo.UserRepository
	logger zerolog.Logger
}

func NewTransactionService(repo repository.TransactionRepository, users userrepo.UserRepository, logger zerolog.Logger) TransactionService {
	return &transactionService{
		repo:   repo,
		users:  users,
		logger: logger.With().Str("component", "transaction_service").Logger(),
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, input *models.CreateTransactionInput) (*models.Transaction, error) {
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tx := &models.Transaction{
		UserID: input.UserID,
		Type:   input.Type,
		Amount: input.Amount,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		s.logger.Error().Err(err).Int("user_id", input.UserID).Str("type", input.Type).Msg("failed to create transaction")
		return nil, err
	}

	s.logger.Info().
		Int("transaction_id", tx.ID).
		Int("user_id", tx.UserID).
		Str("type", tx.Type).
		Str("amount", tx.Amount).
		Msg("transaction recorded")

	return tx, nil
}

func (s *transactionService) GetTransactions(ctx context.Context, userID int) ([]*models.Transaction, error) {
	txs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*models.Transaction{}
	}
	return txs, nil
}
