package repositories

import (
	"context"
	"time"

	"donation-desk/internal/core/domain"
)

// DonationRepository persists the ordered donation list. There is no update
// in place: records are appended and deleted only.
type DonationRepository interface {
	Append(ctx context.Context, donation *domain.Donation) error
	List(ctx context.Context) ([]*domain.Donation, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

// AdminRepository persists admin credentials
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminCredential, error)
	Create(ctx context.Context, admin *domain.AdminCredential) error
	Count(ctx context.Context) (int64, error)
}

// RevocationRepository remembers revoked session tokens until they expire
type RevocationRepository interface {
	Revoke(ctx context.Context, tokenHash string, until time.Time) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}
