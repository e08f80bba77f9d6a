package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	ID               string       `gorm:"primaryKey"`
	Name             string       `gorm:"column:name;not null"`
	Email            string       `gorm:"column:email;uniqueIndex;not null"`
	SecretHash       string       `gorm:"column:secret_hash;not null"`
	Role             string       `gorm:"column:role;not null"`
	AllowedHospitals HospitalList `gorm:"column:allowed_hospitals"`
	CreatedAt        time.Time    `gorm:"column:created_at"`
	UpdatedAt        time.Time    `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// HospitalList is stored as a JSON array in a nullable text column. A nil
// list maps to NULL, which keeps the "unrestricted access" semantics of rows
// written before the column existed.
type HospitalList []string

func (l HospitalList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal([]string(l))
}

func (HospitalList) GormDataType() string {
	return "text"
}

func (l *HospitalList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for HospitalList", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}
