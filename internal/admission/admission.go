package admission

import (
	"time"

	"github.com/google/uuid"

	admissionDatamodel "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/core/datamodel/admission"
)

// Admission is one hospital stay under audit. Immutable after creation
// except for the denormalized discharge date.
type Admission struct {
	ID                  string     `json:"id"`
	AdmissionDate       time.Time  `json:"admission_date"`
	PatientName         string     `json:"patient_name"`
	HospitalName        string     `json:"hospital_name"`
	GuideNumber         string     `json:"guide_number"`
	PatientRecordNumber string     `json:"patient_record_number"`
	DischargeDate       *time.Time `json:"discharge_date,omitempty"`
	AuditorID           string     `json:"auditor_id"`
	AuditorName         string     `json:"auditor_name"`
	CreatedAt           time.Time  `json:"created_at"`
}

func NewAdmission(dto CreateAdmissionDTO, auditorID, auditorName string) *Admission {
	return &Admission{
		ID:                  uuid.NewString(),
		AdmissionDate:       dto.AdmissionDate,
		PatientName:         dto.PatientName,
		HospitalName:        dto.HospitalName,
		GuideNumber:         dto.GuideNumber,
		PatientRecordNumber: dto.PatientRecordNumber,
		DischargeDate:       dto.DischargeDate,
		AuditorID:           auditorID,
		AuditorName:         auditorName,
		CreatedAt:           time.Now(),
	}
}

func ToDataModel(a *Admission) *admissionDatamodel.Admission {
	return &admissionDatamodel.Admission{
		ID:                  a.ID,
		AdmissionDate:       a.AdmissionDate,
		PatientName:         a.PatientName,
		HospitalName:        a.HospitalName,
		GuideNumber:         a.GuideNumber,
		PatientRecordNumber: a.PatientRecordNumber,
		DischargeDate:       a.DischargeDate,
		AuditorID:           a.AuditorID,
		AuditorName:         a.AuditorName,
		CreatedAt:           a.CreatedAt,
	}
}

func FromDataModel(a *admissionDatamodel.Admission) *Admission {
	return &Admission{
		ID:                  a.ID,
		AdmissionDate:       a.AdmissionDate,
		PatientName:         a.PatientName,
		HospitalName:        a.HospitalName,
		GuideNumber:         a.GuideNumber,
		PatientRecordNumber: a.PatientRecordNumber,
		DischargeDate:       a.DischargeDate,
		AuditorID:           a.AuditorID,
		AuditorName:         a.AuditorName,
		CreatedAt:           a.CreatedAt,
	}
}

func FromDataModelSlice(admissions []*admissionDatamodel.Admission) []*Admission {
	result := make([]*Admission, len(admissions))
	for i, a := range admissions {
		result[i] = FromDataModel(a)
	}
	return result
}
