package admission

import (
	"log/slog"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

type Repository interface {
	Insert(a *Admission) error
	GetByID(id string) (*Admission, error)
	SetDischargeDate(id string, dto SetDischargeDTO) (*Admission, error)
}

type UserRepository interface {
	GetByID(id string) (*user.User, error)
}

// Service handles admission business logic. Admissions are created by an
// auditor action and logically owned by that auditor, but readable by anyone
// whose access filter permits the hospital.
type Service struct {
	repo   Repository
	users  UserRepository
	logger *slog.Logger
}

func NewService(repo Repository, users UserRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// Create records a new admission under the given auditor. The auditor must
// reference an existing user at creation time; the name is snapshotted onto
// the record so later user edits do not rewrite history.
func (s *Service) Create(auditorID string, dto CreateAdmissionDTO) (*Admission, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("admission validation failed", "error", err, "auditor_id", auditorID)
		return nil, err
	}

	auditor, err := s.users.GetByID(auditorID)
	if err != nil {
		s.logger.Error("admission rejected: auditor does not exist", "auditor_id", auditorID)
		return nil, err
	}

	adm := NewAdmission(dto, auditor.ID, auditor.Name)
	if err := s.repo.Insert(adm); err != nil {
		s.logger.Error("failed to create admission", "error", err, "auditor_id", auditorID)
		return nil, err
	}

	s.logger.Info("admission created",
		"admission_id", adm.ID,
		"hospital", adm.HospitalName,
		"patient", adm.PatientName,
		"auditor_id", auditorID)

	return adm, nil
}

func (s *Service) GetByID(id string) (*Admission, error) {
	return s.repo.GetByID(id)
}

// SetDischarge records the discharge date, the only field an admission
// allows to change after creation.
func (s *Service) SetDischarge(id string, dto SetDischargeDTO) (*Admission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	adm, err := s.repo.SetDischargeDate(id, dto)
	if err != nil {
		s.logger.Error("failed to set discharge date", "error", err, "admission_id", id)
		return nil, err
	}

	s.logger.Info("discharge date recorded", "admission_id", id)
	return adm, nil
}
