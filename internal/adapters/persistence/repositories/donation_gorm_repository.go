package repositories

import (
	"context"
	"errors"

	"donation-desk/internal/adapters/persistence/models"
	"donation-desk/internal/core/domain"

	"gorm.io/gorm"
)

// donationGormRepository implements DonationRepository on a SQL table
type donationGormRepository struct {
	db *gorm.DB
}

// NewDonationGormRepository creates a SQL-backed donation repository
func NewDonationGormRepository(db *gorm.DB) DonationRepository {
	return &donationGormRepository{db: db}
}

// Append inserts a donation unless its id is already taken
func (r *donationGormRepository) Append(ctx context.Context, donation *domain.Donation) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ?", donation.ID).
		Count(&count).Error; err != nil {
		return domain.NewStorageError("append donation", err)
	}
	if count > 0 {
		return domain.ErrDuplicateEntry
	}

	if err := r.db.WithContext(ctx).Create(models.FromDomainDonation(donation)).Error; err != nil {
		// a concurrent insert of the same id can pass the count above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEntry
		}
		return domain.NewStorageError("append donation", err)
	}
	return nil
}

// List returns every donation in insertion order
func (r *donationGormRepository) List(ctx context.Context) ([]*domain.Donation, error) {
	var rows []*models.Donation
	if err := r.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, domain.NewStorageError("list donations", err)
	}

	donations := make([]*domain.Donation, 0, len(rows))
	for _, row := range rows {
		donations = append(donations, row.ToDomain())
	}
	return donations, nil
}

// DeleteByID removes the donation with the given id
func (r *donationGormRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Donation{})
	if result.Error != nil {
		return false, domain.NewStorageError("delete donation", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Ping checks the database connection
func (r *donationGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return domain.NewStorageError("ping", err)
	}
	return domain.NewStorageError("ping", sqlDB.PingContext(ctx))
}
