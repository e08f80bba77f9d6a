package storage

import (
	"errors"

	"gorm.io/gorm"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	admissionDatamodel "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/core/datamodel/admission"
)

// AdmissionRepository implements both the admission.Repository and the
// access.AdmissionRepository interfaces on the audit store.
type AdmissionRepository struct {
	db *gorm.DB
}

func NewAdmissionRepository(db *gorm.DB) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

func (r *AdmissionRepository) Insert(a *admission.Admission) error {
	var existing int64
	if err := r.db.Model(&admissionDatamodel.Admission{}).Where("id = ?", a.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return internal.ErrDuplicateKey
	}
	return r.db.Create(admission.ToDataModel(a)).Error
}

// BulkInsert writes all records in one transaction; used only by the seed
// loader.
func (r *AdmissionRepository) BulkInsert(admissions []*admission.Admission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range admissions {
			if err := tx.Create(admission.ToDataModel(a)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AdmissionRepository) GetByID(id string) (*admission.Admission, error) {
	var dm admissionDatamodel.Admission
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAdmissionNotFound
		}
		return nil, err
	}
	return admission.FromDataModel(&dm), nil
}

func (r *AdmissionRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&admissionDatamodel.Admission{}).Count(&n).Error
	return n, err
}

// ListByHospital filters by exact hospital name and, when patient is
// non-empty, exact patient name. Results come back newest admission first.
func (r *AdmissionRepository) ListByHospital(hospital, patient string) ([]*admission.Admission, error) {
	query := r.db.Where("hospital_name = ?", hospital)
	if patient != "" {
		query = query.Where("patient_name = ?", patient)
	}

	var dms []*admissionDatamodel.Admission
	if err := query.Order("admission_date DESC").Find(&dms).Error; err != nil {
		return nil, err
	}
	return admission.FromDataModelSlice(dms), nil
}

// ListAll returns every admission, used by the seed loader check and the
// export report.
func (r *AdmissionRepository) ListAll() ([]*admission.Admission, error) {
	var dms []*admissionDatamodel.Admission
	if err := r.db.Order("admission_date DESC").Find(&dms).Error; err != nil {
		return nil, err
	}
	return admission.FromDataModelSlice(dms), nil
}

func (r *AdmissionRepository) DistinctHospitals() ([]string, error) {
	var hospitals []string
	err := r.db.Model(&admissionDatamodel.Admission{}).
		Distinct("hospital_name").
		Pluck("hospital_name", &hospitals).Error
	return hospitals, err
}

func (r *AdmissionRepository) DistinctPatients(hospital string) ([]string, error) {
	var patients []string
	err := r.db.Model(&admissionDatamodel.Admission{}).
		Where("hospital_name = ?", hospital).
		Distinct("patient_name").
		Pluck("patient_name", &patients).Error
	return patients, err
}

// SetDischargeDate patches the one mutable field of an admission.
func (r *AdmissionRepository) SetDischargeDate(id string, dto admission.SetDischargeDTO) (*admission.Admission, error) {
	res := r.db.Model(&admissionDatamodel.Admission{}).
		Where("id = ?", id).
		Update("discharge_date", dto.DischargeDate)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrAdmissionNotFound
	}
	return r.GetByID(id)
}
