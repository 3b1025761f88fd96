package models

import (
	"donation-desk/internal/core/domain"

	"gorm.io/gorm"
)

// Donation represents the donations table. Seq preserves insertion order.
type Donation struct {
	Seq                 uint     `gorm:"primaryKey;autoIncrement"`
	ID                  string   `gorm:"column:id;uniqueIndex;size:64;not null"`
	FullName            string   `gorm:"size:255"`
	Email               string   `gorm:"size:255"`
	PhoneNumber         string   `gorm:"size:50"`
	DonationAmount      *float64 `gorm:"type:double"`
	PaymentMethod       string   `gorm:"size:20"`
	ConfirmationMessage string   `gorm:"type:text"`
	SubmittedAt         string   `gorm:"size:40"`
}

func (Donation) TableName() string {
	return "donations"
}

// FromDomainDonation converts a domain donation into its row
func FromDomainDonation(d *domain.Donation) *Donation {
	return &Donation{
		ID:                  d.ID,
		FullName:            d.FullName,
		Email:               d.Email,
		PhoneNumber:         d.PhoneNumber,
		DonationAmount:      d.DonationAmount,
		PaymentMethod:       string(d.PaymentMethod),
		ConfirmationMessage: d.ConfirmationMessage,
		SubmittedAt:         d.SubmittedAt,
	}
}

// ToDomain converts the row back to a domain donation
func (d *Donation) ToDomain() *domain.Donation {
	return &domain.Donation{
		ID:                  d.ID,
		FullName:            d.FullName,
		Email:               d.Email,
		PhoneNumber:         d.PhoneNumber,
		DonationAmount:      d.DonationAmount,
		PaymentMethod:       domain.PaymentMethod(d.PaymentMethod),
		ConfirmationMessage: d.ConfirmationMessage,
		SubmittedAt:         d.SubmittedAt,
	}
}

// AdminCredential represents the admin_credentials table
type AdminCredential struct {
	ID       uint   `gorm:"primaryKey"`
	Email    string `gorm:"uniqueIndex;size:255;not null"`
	Password string `gorm:"size:255;not null"`
}

func (AdminCredential) TableName() string {
	return "admin_credentials"
}

// ToDomain converts the row to a domain credential
func (a *AdminCredential) ToDomain() *domain.AdminCredential {
	return &domain.AdminCredential{Email: a.Email, Password: a.Password}
}

// AutoMigrate creates the tables if they do not exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Donation{}, &AdminCredential{})
}
