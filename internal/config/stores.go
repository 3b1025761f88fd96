package config

import (
	"context"
	"fmt"

	"donation-desk/internal/adapters/persistence/models"
	"donation-desk/internal/adapters/persistence/repositories"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Stores bundles the repositories selected by configuration
type Stores struct {
	Donations   repositories.DonationRepository
	Admins      repositories.AdminRepository
	Revocations repositories.RevocationRepository

	db    *gorm.DB
	redis *redis.Client
}

// OpenStores builds the configured storage and revocation drivers. The file
// driver works on fsys rooted at cfg.Storage.DataDir.
func OpenStores(ctx context.Context, cfg *Config, fsys afero.Fs, log *zap.Logger) (*Stores, error) {
	stores := &Stores{}

	switch cfg.Storage.Driver {
	case StorageDriverMySQL:
		db, err := ConnectDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := models.AutoMigrate(db); err != nil {
			CloseDatabase(db)
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		stores.db = db
		stores.Donations = repositories.NewDonationGormRepository(db)
		stores.Admins = repositories.NewAdminGormRepository(db)
	default:
		if err := fsys.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		stores.Donations = repositories.NewDonationFileRepository(fsys, cfg.Storage.DataDir)
		stores.Admins = repositories.NewAdminFileRepository(fsys, cfg.Storage.DataDir)
		log.Info("using file storage", zap.String("dataDir", cfg.Storage.DataDir))
	}

	switch cfg.Revocation.Driver {
	case RevocationDriverRedis:
		client, err := ConnectRedis(ctx, cfg, log)
		if err != nil {
			stores.Close()
			return nil, err
		}
		stores.redis = client
		stores.Revocations = repositories.NewRedisRevocationRepository(client)
	default:
		stores.Revocations = repositories.NewMemoryRevocationRepository()
	}

	return stores, nil
}

// Close releases database and redis connections
func (s *Stores) Close() error {
	var firstErr error
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if err := CloseDatabase(s.db); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
