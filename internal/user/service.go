package user

import (
	"log/slog"

	"github.com/frahmantamala/attendance-tracker/internal"
)

// Repository defines the data access methods for users.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	EmailTaken(email string, excludeID int64) (bool, error)
	Update(u *User) error
	CountEmployees() (int64, error)
	ListEmployeesExcluding(ids []int64) ([]*User, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateProfile mutates the self-service fields only. Role and employee ID
// are immutable after registration.
func (s *Service) UpdateProfile(id int64, name, email, department string) (*User, error) {
	taken, err := s.repo.EmailTaken(email, id)
	if err != nil {
		s.logger.Error("profile update: email lookup failed", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update profile", err)
	}
	if taken {
		return nil, internal.ErrEmailTaken
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	u.Name = name
	u.Email = email
	u.Department = department

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("profile update failed", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update profile", err)
	}

	s.logger.Info("profile updated", "user_id", id)
	return u, nil
}

func (s *Service) CountEmployees() (int64, error) {
	return s.repo.CountEmployees()
}

// AbsentEmployees lists employees with no attendance row among presentIDs,
// i.e. everyone implicitly absent today. Absence is always computed by
// set-difference, never stored.
func (s *Service) AbsentEmployees(presentIDs []int64) ([]*User, error) {
	return s.repo.ListEmployeesExcluding(presentIDs)
}
