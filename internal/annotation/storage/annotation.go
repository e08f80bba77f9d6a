package storage

import (
	"gorm.io/gorm"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/annotation"
	annotationDatamodel "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/core/datamodel/annotation"
)

// AnnotationRepository implements annotation.Repository on the audit store.
// The collection is append-only, so there is no update or delete here.
type AnnotationRepository struct {
	db *gorm.DB
}

func NewAnnotationRepository(db *gorm.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

func (r *AnnotationRepository) Insert(a *annotation.Annotation) error {
	var existing int64
	if err := r.db.Model(&annotationDatamodel.Annotation{}).Where("id = ?", a.ID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return internal.ErrDuplicateKey
	}
	return r.db.Create(annotation.ToDataModel(a)).Error
}

func (r *AnnotationRepository) BulkInsert(annotations []*annotation.Annotation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range annotations {
			if err := tx.Create(annotation.ToDataModel(a)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByAdmission returns an admission's annotations in display order,
// annotated_at descending.
func (r *AnnotationRepository) ListByAdmission(admissionID string) ([]*annotation.Annotation, error) {
	var dms []*annotationDatamodel.Annotation
	err := r.db.Where("admission_id = ?", admissionID).
		Order("annotated_at DESC").
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return annotation.FromDataModelSlice(dms), nil
}

func (r *AnnotationRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&annotationDatamodel.Annotation{}).Count(&n).Error
	return n, err
}
