package repositories

import (
	"context"
	"errors"

	"donation-desk/internal/adapters/persistence/models"
	"donation-desk/internal/core/domain"

	"gorm.io/gorm"
)

type adminGormRepository struct {
	db *gorm.DB
}

// NewAdminGormRepository creates a SQL-backed admin repository
func NewAdminGormRepository(db *gorm.DB) AdminRepository {
	return &adminGormRepository{db: db}
}

// GetByEmail finds an admin by exact email match
func (r *adminGormRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminCredential, error) {
	var row models.AdminCredential
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStorageError("read admins", err)
	}
	return row.ToDomain(), nil
}

// Create inserts an admin credential
func (r *adminGormRepository) Create(ctx context.Context, admin *domain.AdminCredential) error {
	row := &models.AdminCredential{Email: admin.Email, Password: admin.Password}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEntry
		}
		return domain.NewStorageError("create admin", err)
	}
	return nil
}

// Count returns the number of stored admins
func (r *adminGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.AdminCredential{}).Count(&count).Error; err != nil {
		return 0, domain.NewStorageError("count admins", err)
	}
	return count, nil
}
