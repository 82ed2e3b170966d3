package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	userDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-tracker/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	if err := r.db.Create(dm).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrEmailTaken
		}
		return err
	}
	u.ID = dm.ID
	u.CreatedAt = dm.CreatedAt
	u.UpdatedAt = dm.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
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

func (r *UserRepository) EmailTaken(email string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	err := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":       u.Name,
			"email":      u.Email,
			"department": u.Department,
			"updated_at": u.UpdatedAt,
		}).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) CountEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("role = ?", "employee").
		Count(&count).Error
	return count, err
}

func (r *UserRepository) ListEmployeesExcluding(ids []int64) ([]*user.User, error) {
	var dms []*userDatamodel.User
	q := r.db.Where("role = ?", "employee")
	if len(ids) > 0 {
		q = q.Where("id NOT IN ?", ids)
	}
	err := q.Order("name ASC").Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(dms), nil
}
