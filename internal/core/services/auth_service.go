package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"donation-desk/internal/adapters/persistence/repositories"
	"donation-desk/internal/config"
	"donation-desk/internal/core/domain"
	"donation-desk/internal/pkg/jwt"
	"donation-desk/internal/pkg/metrics"
	"donation-desk/internal/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison
var dummyHash = sync.OnceValue(func() string {
	h, err := password.Hash("donation-desk-unknown-admin")
	if err != nil {
		panic(err)
	}
	return h
})

// Session is the result of a successful login
type Session struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

// AuthService handles admin authentication
type AuthService struct {
	adminRepo      repositories.AdminRepository
	revocationRepo repositories.RevocationRepository
	cfg            config.JWTConfig
	metrics        *metrics.Metrics
	log            *zap.Logger

	verify func(pass, hash string) bool
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repositories.AdminRepository,
	revocationRepo repositories.RevocationRepository,
	cfg config.JWTConfig,
	m *metrics.Metrics,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:      adminRepo,
		revocationRepo: revocationRepo,
		cfg:            cfg,
		metrics:        m,
		log:            log,
		verify:         password.Verify,
	}
}

// Authenticate checks an admin's email and password and issues a session
// token. Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, pass string) (*Session, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.verify(pass, dummyHash())
			s.metrics.LoginAttempts.WithLabelValues("invalid").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		s.metrics.LoginAttempts.WithLabelValues("error").Inc()
		s.metrics.StorageErrors.WithLabelValues("read_admins").Inc()
		s.log.Error("admin lookup failed", zap.Error(err))
		return nil, err
	}

	if !s.checkPassword(admin, pass) {
		s.metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := jwt.GenerateToken(admin.Email, string(domain.RoleAdmin), uuid.NewString(), s.cfg.Secret, s.cfg.Expiry())
	if err != nil {
		s.metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, err
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.log.Info("admin logged in", zap.String("email", admin.Email))
	return &Session{Token: token, Email: admin.Email, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) checkPassword(admin *domain.AdminCredential, pass string) bool {
	if password.IsHash(admin.Password) {
		return s.verify(pass, admin.Password)
	}
	s.log.Warn("admin credential stored in plaintext", zap.String("email", admin.Email))
	return password.VerifyPlain(pass, admin.Password)
}

// Verify validates a session token and returns its claims
func (s *AuthService) Verify(ctx context.Context, token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := jwt.ValidateToken(token, s.cfg.Secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if claims.Role != string(domain.RoleAdmin) {
		return nil, domain.ErrTokenInvalid
	}

	revoked, err := s.revocationRepo.IsRevoked(ctx, password.HashToken(token))
	if err != nil {
		s.log.Error("revocation lookup failed", zap.Error(err))
		return nil, domain.ErrUnauthorized
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

// Revoke invalidates a session token until it would have expired. Invalid or
// already-expired tokens are ignored.
func (s *AuthService) Revoke(ctx context.Context, token string) {
	if token == "" {
		return
	}

	claims, err := jwt.ValidateToken(token, s.cfg.Secret)
	if err != nil || claims.ExpiresAt == nil {
		return
	}

	if err := s.revocationRepo.Revoke(ctx, password.HashToken(token), claims.ExpiresAt.Time); err != nil {
		s.log.Error("token revocation failed", zap.Error(err))
		return
	}
	s.log.Info("admin logged out", zap.String("email", claims.Email))
}
