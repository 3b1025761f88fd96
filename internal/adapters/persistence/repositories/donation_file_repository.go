package repositories

import (
	"context"
	"path/filepath"

	"donation-desk/internal/adapters/persistence/jsonfile"
	"donation-desk/internal/core/domain"

	"github.com/spf13/afero"
)

// DonationsFile is the document name under the data directory
const DonationsFile = "donations.json"

// donationFileRepository implements DonationRepository on a JSON document
type donationFileRepository struct {
	doc *jsonfile.Document[domain.Donation]
}

// NewDonationFileRepository creates a donation repository backed by
// dataDir/donations.json
func NewDonationFileRepository(fsys afero.Fs, dataDir string) DonationRepository {
	return &donationFileRepository{
		doc: jsonfile.NewDocument[domain.Donation](fsys, filepath.Join(dataDir, DonationsFile)),
	}
}

// Append adds a donation at the end of the list
func (r *donationFileRepository) Append(ctx context.Context, donation *domain.Donation) error {
	err := r.doc.Update(func(items []domain.Donation) ([]domain.Donation, error) {
		for _, d := range items {
			if d.ID == donation.ID {
				return nil, domain.ErrDuplicateEntry
			}
		}
		return append(items, *donation), nil
	})
	if err == domain.ErrDuplicateEntry {
		return err
	}
	return domain.NewStorageError("append donation", err)
}

// List returns every donation in insertion order
func (r *donationFileRepository) List(ctx context.Context) ([]*domain.Donation, error) {
	items, err := r.doc.Read()
	if err != nil {
		return nil, domain.NewStorageError("list donations", err)
	}

	donations := make([]*domain.Donation, 0, len(items))
	for i := range items {
		donations = append(donations, &items[i])
	}
	return donations, nil
}

// DeleteByID removes the first donation with the given id
func (r *donationFileRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	removed := false
	err := r.doc.Update(func(items []domain.Donation) ([]domain.Donation, error) {
		for i, d := range items {
			if d.ID == id {
				removed = true
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, errNothingToDelete
	})
	if err == errNothingToDelete {
		return false, nil
	}
	if err != nil {
		return false, domain.NewStorageError("delete donation", err)
	}
	return removed, nil
}

// Ping checks the document can be read
func (r *donationFileRepository) Ping(ctx context.Context) error {
	_, err := r.doc.Read()
	return domain.NewStorageError("ping", err)
}
