package admission

import "time"

type Admission struct {
	ID                  string     `gorm:"primaryKey"`
	AdmissionDate       time.Time  `gorm:"column:admission_date;index;not null"`
	PatientName         string     `gorm:"column:patient_name;index;not null"`
	HospitalName        string     `gorm:"column:hospital_name;index;not null"`
	GuideNumber         string     `gorm:"column:guide_number"`
	PatientRecordNumber string     `gorm:"column:patient_record_number"`
	DischargeDate       *time.Time `gorm:"column:discharge_date"`
	AuditorID           string     `gorm:"column:auditor_id;index;not null"`
	AuditorName         string     `gorm:"column:auditor_name;not null"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
}

func (Admission) TableName() string {
	return "admissions"
}
