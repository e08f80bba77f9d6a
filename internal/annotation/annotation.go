package annotation

import (
	"time"

	"github.com/google/uuid"

	annotationDatamodel "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/core/datamodel/annotation"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Annotation is a timestamped note or transcription attached to an
// admission. Annotations are append-only: no update or delete exists.
type Annotation struct {
	ID           string    `json:"id"`
	AdmissionID  string    `json:"admission_id"`
	AnnotatedAt  time.Time `json:"annotated_at"`
	AuthorName   string    `json:"author_name"`
	Text         string    `json:"text"`
	AudioRef     *string   `json:"audio_ref,omitempty"`
	DocumentRef  *string   `json:"document_ref,omitempty"`
	DocumentName *string   `json:"document_name,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewTextAnnotation builds a plain typed note, already completed.
func NewTextAnnotation(admissionID, authorName, text string) *Annotation {
	now := time.Now()
	return &Annotation{
		ID:          uuid.NewString(),
		AdmissionID: admissionID,
		AnnotatedAt: now,
		AuthorName:  authorName,
		Text:        text,
		Status:      StatusCompleted,
		CreatedAt:   now,
	}
}

func ToDataModel(a *Annotation) *annotationDatamodel.Annotation {
	return &annotationDatamodel.Annotation{
		ID:           a.ID,
		AdmissionID:  a.AdmissionID,
		AnnotatedAt:  a.AnnotatedAt,
		AuthorName:   a.AuthorName,
		Text:         a.Text,
		AudioRef:     a.AudioRef,
		DocumentRef:  a.DocumentRef,
		DocumentName: a.DocumentName,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
	}
}

func FromDataModel(a *annotationDatamodel.Annotation) *Annotation {
	return &Annotation{
		ID:           a.ID,
		AdmissionID:  a.AdmissionID,
		AnnotatedAt:  a.AnnotatedAt,
		AuthorName:   a.AuthorName,
		Text:         a.Text,
		AudioRef:     a.AudioRef,
		DocumentRef:  a.DocumentRef,
		DocumentName: a.DocumentName,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
	}
}

func FromDataModelSlice(annotations []*annotationDatamodel.Annotation) []*Annotation {
	result := make([]*Annotation, len(annotations))
	for i, a := range annotations {
		result[i] = FromDataModel(a)
	}
	return result
}
