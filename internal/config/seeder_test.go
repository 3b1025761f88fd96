package config

import (
	"context"
	"testing"

	"donation-desk/internal/adapters/persistence/repositories"
	"donation-desk/internal/pkg/password"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeeder_RunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	admins := repositories.NewAdminFileRepository(afero.NewMemMapFs(), "/data")
	seeder := NewSeeder(admins, zap.NewNop())
	seeder.cost = bcrypt.MinCost

	admin := AdminConfig{Email: "admin@example.com", Password: "admin123"}
	require.NoError(t, seeder.Run(ctx, admin))
	require.NoError(t, seeder.Run(ctx, admin))

	count, err := admins.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := admins.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, password.IsHash(stored.Password))
	assert.True(t, password.Verify("admin123", stored.Password))
}

func TestSeeder_SkipsWhenAdminExists(t *testing.T) {
	ctx := context.Background()
	admins := repositories.NewAdminFileRepository(afero.NewMemMapFs(), "/data")
	seeder := NewSeeder(admins, zap.NewNop())
	seeder.cost = bcrypt.MinCost

	require.NoError(t, seeder.Run(ctx, AdminConfig{Email: "first@example.com", Password: "pw"}))
	require.NoError(t, seeder.Run(ctx, AdminConfig{Email: "second@example.com", Password: "pw"}))

	_, err := admins.GetByEmail(ctx, "second@example.com")
	assert.Error(t, err)
}

func TestOpenStores_FileDriver(t *testing.T) {
	cfg := &Config{
		Storage:    StorageConfig{Driver: StorageDriverFile, DataDir: "/srv/data"},
		Revocation: RevocationConfig{Driver: RevocationDriverMemory},
	}
	memFs := afero.NewMemMapFs()

	stores, err := OpenStores(context.Background(), cfg, memFs, zap.NewNop())
	require.NoError(t, err)
	defer stores.Close()

	assert.NotNil(t, stores.Donations)
	assert.NotNil(t, stores.Admins)
	assert.NotNil(t, stores.Revocations)
	assert.NoError(t, stores.Donations.Ping(context.Background()))

	isDir, err := afero.IsDir(memFs, "/srv/data")
	require.NoError(t, err)
	assert.True(t, isDir)
}
