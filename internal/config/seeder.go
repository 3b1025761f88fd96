package config

import (
	"context"
	"errors"

	"donation-desk/internal/adapters/persistence/repositories"
	"donation-desk/internal/core/domain"
	"donation-desk/internal/pkg/password"

	"go.uber.org/zap"
)

// Seeder bootstraps the default admin credential
type Seeder struct {
	admins repositories.AdminRepository
	cost   int
	log    *zap.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(admins repositories.AdminRepository, log *zap.Logger) *Seeder {
	return &Seeder{admins: admins, cost: password.DefaultCost, log: log}
}

// Run seeds the default admin when no admin exists. Running it again is a
// no-op.
func (s *Seeder) Run(ctx context.Context, admin AdminConfig) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Debug("admin seed skipped", zap.Int64("existing", count))
		return nil
	}

	hashed, err := password.HashWithCost(admin.Password, s.cost)
	if err != nil {
		return err
	}

	err = s.admins.Create(ctx, &domain.AdminCredential{Email: admin.Email, Password: hashed})
	if errors.Is(err, domain.ErrDuplicateEntry) {
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info("default admin created", zap.String("email", admin.Email))
	return nil
}
