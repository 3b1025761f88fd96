package services

import (
	"context"

	"donation-desk/internal/core/domain"
	"donation-desk/internal/pkg/jwt"
)

// Note: DonationService implementation is in donation_service.go
// Note: AuthService implementation is in auth_service.go

// DonationManager is what the HTTP layer needs from the donation service
type DonationManager interface {
	Submit(ctx context.Context, input *domain.Donation) (*domain.Donation, error)
	List(ctx context.Context) ([]*domain.Donation, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// SessionGate is what the HTTP layer needs from the auth service
type SessionGate interface {
	Authenticate(ctx context.Context, email, password string) (*Session, error)
	Verify(ctx context.Context, token string) (*jwt.Claims, error)
	Revoke(ctx context.Context, token string)
}
