package admission

import (
	"time"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
)

type CreateAdmissionDTO struct {
	AdmissionDate       time.Time  `json:"admission_date"`
	PatientName         string     `json:"patient_name"`
	HospitalName        string     `json:"hospital_name"`
	GuideNumber         string     `json:"guide_number"`
	PatientRecordNumber string     `json:"patient_record_number"`
	DischargeDate       *time.Time `json:"discharge_date,omitempty"`
}

func (d CreateAdmissionDTO) Validate() error {
	if d.PatientName == "" {
		return internal.NewValidationError("patient_name is required", internal.ErrCodeValidationFailed)
	}
	if d.HospitalName == "" {
		return internal.NewValidationError("hospital_name is required", internal.ErrCodeValidationFailed)
	}
	if d.AdmissionDate.IsZero() {
		return internal.NewValidationError("admission_date is required", internal.ErrCodeInvalidDate)
	}
	if d.DischargeDate != nil && d.DischargeDate.Before(d.AdmissionDate) {
		return internal.NewValidationError("discharge_date cannot precede admission_date", internal.ErrCodeInvalidDate)
	}
	return nil
}

// SetDischargeDTO carries the only mutation an admission supports after
// creation.
type SetDischargeDTO struct {
	DischargeDate time.Time `json:"discharge_date"`
}

func (d SetDischargeDTO) Validate() error {
	if d.DischargeDate.IsZero() {
		return internal.NewValidationError("discharge_date is required", internal.ErrCodeInvalidDate)
	}
	return nil
}
