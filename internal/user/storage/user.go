package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	userDatamodel "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/core/datamodel/user"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

// UserRepository implements the user.Repository interface on the audit store.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

// GetByEmail does an exact, case-sensitive match.
func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("email = ?", email).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) List() ([]*user.User, error) {
	var dms []*userDatamodel.User
	if err := r.db.Order("name ASC").Find(&dms).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(dms), nil
}

func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&userDatamodel.User{}).Count(&n).Error
	return n, err
}

// Insert persists a new user and fails with DuplicateKey when the id is
// already taken.
func (r *UserRepository) Insert(u *user.User) error {
	var existing int64
	if err := r.db.Model(&userDatamodel.User{}).Where("id = ?", u.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return internal.ErrDuplicateKey
	}
	return r.db.Create(user.ToDataModel(u)).Error
}

// BulkInsert writes all records in one transaction; any failure rolls the
// whole batch back. Used only by the seed loader.
func (r *UserRepository) BulkInsert(users []*user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			if err := tx.Create(user.ToDataModel(u)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Save overwrites an existing record. Save of a missing id is NotFound, not
// an upsert.
func (r *UserRepository) Save(u *user.User) error {
	res := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":              u.Name,
			"email":             u.Email,
			"role":              u.Role,
			"allowed_hospitals": userDatamodel.HospitalList(u.AllowedHospitals),
			"updated_at":        u.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}
