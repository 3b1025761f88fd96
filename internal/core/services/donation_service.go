package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"donation-desk/internal/adapters/persistence/repositories"
	"donation-desk/internal/core/domain"
	"donation-desk/internal/pkg/metrics"
	"donation-desk/internal/pkg/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DonationService handles donation submission and admin review
type DonationService struct {
	repo      repositories.DonationRepository
	validator *validation.DonationValidator
	metrics   *metrics.Metrics
	log       *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewDonationService creates a new donation service
func NewDonationService(
	repo repositories.DonationRepository,
	validator *validation.DonationValidator,
	m *metrics.Metrics,
	log *zap.Logger,
) *DonationService {
	return &DonationService{
		repo:      repo,
		validator: validator,
		metrics:   m,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Submit validates and stores a donation, assigning id and submittedAt when
// absent. Rejected submissions never reach storage.
func (s *DonationService) Submit(ctx context.Context, input *domain.Donation) (*domain.Donation, error) {
	donation := normalize(input)

	if err := s.validator.Validate(donation); err != nil {
		s.metrics.DonationsRejected.Inc()
		return nil, err
	}

	if donation.SubmittedAt == "" {
		donation.SubmittedAt = s.now().UTC().Format(domain.TimestampLayout)
	} else {
		t, err := time.Parse(time.RFC3339, donation.SubmittedAt)
		if err != nil {
			s.metrics.DonationsRejected.Inc()
			return nil, &domain.ValidationError{
				Fields:  []string{"submittedAt"},
				Message: "Invalid fields: submittedAt",
			}
		}
		donation.SubmittedAt = t.UTC().Format(domain.TimestampLayout)
	}

	if donation.ID == "" {
		donation.ID = s.newID()
	}

	if err := s.repo.Append(ctx, donation); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			s.metrics.DonationsRejected.Inc()
			return nil, &domain.ValidationError{
				Fields:  []string{"id"},
				Message: "Donation id already exists",
			}
		}
		s.storageFailure("append", err)
		return nil, err
	}

	s.metrics.DonationsSubmitted.Inc()
	s.log.Info("donation submitted",
		zap.String("id", donation.ID),
		zap.String("paymentMethod", string(donation.PaymentMethod)),
	)
	return donation, nil
}

// List returns every stored donation in submission order
func (s *DonationService) List(ctx context.Context) ([]*domain.Donation, error) {
	donations, err := s.repo.List(ctx)
	if err != nil {
		s.storageFailure("list", err)
		return nil, err
	}
	return donations, nil
}

// Delete removes the donation with the given id
func (s *DonationService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return &domain.ValidationError{Fields: []string{"id"}, Message: "Donation id is required"}
	}

	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		s.storageFailure("delete", err)
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}

	s.metrics.DonationsDeleted.Inc()
	s.log.Info("donation deleted", zap.String("id", id))
	return nil
}

// Ping reports whether the donation store is reachable
func (s *DonationService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *DonationService) storageFailure(op string, err error) {
	s.metrics.StorageErrors.WithLabelValues(op).Inc()
	s.log.Error("donation storage failure", zap.String("op", op), zap.Error(err))
}

// normalize returns a copy of d with every string field trimmed
func normalize(d *domain.Donation) *domain.Donation {
	out := *d
	out.ID = strings.TrimSpace(out.ID)
	out.FullName = strings.TrimSpace(out.FullName)
	out.Email = strings.TrimSpace(out.Email)
	out.PhoneNumber = strings.TrimSpace(out.PhoneNumber)
	out.PaymentMethod = domain.PaymentMethod(strings.TrimSpace(string(out.PaymentMethod)))
	out.ConfirmationMessage = strings.TrimSpace(out.ConfirmationMessage)
	out.SubmittedAt = strings.TrimSpace(out.SubmittedAt)
	return &out
}
