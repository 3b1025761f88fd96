package repositories

import (
	"context"
	"path/filepath"

	"donation-desk/internal/adapters/persistence/jsonfile"
	"donation-desk/internal/core/domain"

	"github.com/spf13/afero"
)

// AdminsFile is the document name under the data directory
const AdminsFile = "admins.json"

type adminFileRepository struct {
	doc *jsonfile.Document[domain.AdminCredential]
}

// NewAdminFileRepository creates an admin repository backed by
// dataDir/admins.json
func NewAdminFileRepository(fsys afero.Fs, dataDir string) AdminRepository {
	return &adminFileRepository{
		doc: jsonfile.NewDocument[domain.AdminCredential](fsys, filepath.Join(dataDir, AdminsFile)),
	}
}

// GetByEmail finds an admin by exact email match
func (r *adminFileRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminCredential, error) {
	admins, err := r.doc.Read()
	if err != nil {
		return nil, domain.NewStorageError("read admins", err)
	}
	for i := range admins {
		if admins[i].Email == email {
			return &admins[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create appends an admin credential
func (r *adminFileRepository) Create(ctx context.Context, admin *domain.AdminCredential) error {
	err := r.doc.Update(func(admins []domain.AdminCredential) ([]domain.AdminCredential, error) {
		for _, a := range admins {
			if a.Email == admin.Email {
				return nil, domain.ErrDuplicateEntry
			}
		}
		return append(admins, *admin), nil
	})
	if err == domain.ErrDuplicateEntry {
		return err
	}
	return domain.NewStorageError("create admin", err)
}

// Count returns the number of stored admins
func (r *adminFileRepository) Count(ctx context.Context) (int64, error) {
	admins, err := r.doc.Read()
	if err != nil {
		return 0, domain.NewStorageError("count admins", err)
	}
	return int64(len(admins)), nil
}
