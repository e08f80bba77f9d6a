package annotation

import "time"

type Annotation struct {
	ID           string    `gorm:"primaryKey"`
	AdmissionID  string    `gorm:"column:admission_id;index;not null"`
	AnnotatedAt  time.Time `gorm:"column:annotated_at;index;not null"`
	AuthorName   string    `gorm:"column:author_name;not null"`
	Text         string    `gorm:"column:text;not null"`
	AudioRef     *string   `gorm:"column:audio_ref"`
	DocumentRef  *string   `gorm:"column:document_ref"`
	DocumentName *string   `gorm:"column:document_name"`
	Status       string    `gorm:"column:status;index;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Annotation) TableName() string {
	return "annotations"
}
