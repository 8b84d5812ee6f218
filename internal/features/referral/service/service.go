package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"loyalty-platform-backend/internal/features/referral/models"
	"loyalty-platform-backend/internal/features/referral/repository"
	userrepo "loyalty-platform-backend/internal/features/user/repository"
)

var ErrUserNotFound = errors.New("referral user not found")

type ReferralService interface {
	// CreateReferral records that referrer invited referred. Both users must
	// exist; duplicate rows for the same pair are not rejected.
	CreateReferral(ctx context.Context, input *models.CreateReferralInput) (*models.Referral, error)
	GetReferrals(ctx context.Context, referrerID int) ([]*models.Referral, error)
	ListReferrals(ctx context.Context) ([]*models.Referral, error)
}

type referralService struct {
	repo   repository.ReferralRepository
	users  userrepo.UserRepository
	logger zerolog.Logger
}

func NewReferralService(repo repository.ReferralRepository, users userrepo.UserRepository, logger zerolog.Logger) ReferralService {
	return &referralService{
		repo:   repo,
		users:  users,
		logger: logger.With().Str("component", "referral_service").Logger(),
	}
}

func (s *referralService) CreateReferral(ctx context.Context, input *models.CreateReferralInput) (*models.Referral, error) {
	// Both sides must be real users. The Postgres backend would reject the
	// insert via foreign keys anyway; checking here keeps the memory backend
	// contract-equal.
	for _, id := range []int{input.ReferrerID, input.ReferredID} {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			if errors.Is(err, userrepo.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	referral := &models.Referral{
		ReferrerID: input.ReferrerID,
		ReferredID: input.ReferredID,
		Points:     models.InitialPoints,
	}

	if err := s.repo.Create(ctx, referral); err != nil {
		s.logger.Error().Err(err).
			Int("referrer_id", input.ReferrerID).
			Int("referred_id", input.ReferredID).
			Msg("failed to create referral")
		return nil, err
	}

	s.logger.Info().
		Int("referral_id", referral.ID).
		Int("referrer_id", referral.ReferrerID).
		Int("referred_id", referral.ReferredID).
		Msg("referral created")

	return referral, nil
}

func (s *referralService) GetReferrals(ctx context.Context, referrerID int) ([]*models.Referral, error) {
	referrals, err := s.repo.ListByReferrer(ctx, referrerID)
	if err != nil {
		return nil, err
	}
	if referrals == nil {
		referrals = []*models.Referral{}
	}
	return referrals, nil
}

func (s *referralService) ListReferrals(ctx context.Context) ([]*models.Referral, error) {
	referrals, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if referrals == nil {
		referrals = []*models.Referral{}
	}
	return referrals, nil
}
