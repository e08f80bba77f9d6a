package user

import (
	"log/slog"
	"time"
)

type Repository interface {
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	List() ([]*User, error)
	Save(u *User) error
}

// Service handles user management. Users are created at seed time or through
// an administrator edit; there is no delete operation.
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

func (s *Service) GetByID(id string) (*User, error) {
	return s.repo.GetByID(id)
}

// List returns every user, secrets already stripped by the domain model's
// JSON mapping.
func (s *Service) List() ([]*User, error) {
	users, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// Update merges a partial patch onto the stored record field by field and
// persists the result.
func (s *Service) Update(id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user patch validation failed", "error", err, "user_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		existing.Name = *dto.Name
	}
	if dto.Email != nil {
		existing.Email = *dto.Email
	}
	if dto.Role != nil {
		existing.Role = *dto.Role
	}
	if dto.AllowedHospitals != nil {
		// an explicit empty list clears the restriction
		if len(*dto.AllowedHospitals) == 0 {
			existing.AllowedHospitals = nil
		} else {
			existing.AllowedHospitals = *dto.AllowedHospitals
		}
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Save(existing); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)
	return existing, nil
}
