package annotation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transcription"
)

type Repository interface {
	Insert(a *Annotation) error
	ListByAdmission(admissionID string) ([]*Annotation, error)
}

type AdmissionRepository interface {
	GetByID(id string) (*admission.Admission, error)
}

// Service appends annotations to admissions, either typed directly or
// produced by the transcription collaborator.
type Service struct {
	repo        Repository
	admissions  AdmissionRepository
	transcriber transcription.Transcriber
	callTimeout time.Duration
	logger      *slog.Logger
}

func NewService(repo Repository, admissions AdmissionRepository, transcriber transcription.Transcriber, callTimeout time.Duration, logger *slog.Logger) *Service {
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}
	return &Service{
		repo:        repo,
		admissions:  admissions,
		transcriber: transcriber,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// CreateText appends a plain typed note to an admission.
func (s *Service) CreateText(admissionID, authorName, text string) (*Annotation, error) {
	if text == "" {
		return nil, internal.NewValidationError("text is required", internal.ErrCodeValidationFailed)
	}

	if _, err := s.admissions.GetByID(admissionID); err != nil {
		return nil, err
	}

	ann := NewTextAnnotation(admissionID, authorName, text)
	if err := s.repo.Insert(ann); err != nil {
		s.logger.Error("failed to create annotation", "error", err, "admission_id", admissionID)
		return nil, err
	}

	s.logger.Info("annotation created", "annotation_id", ann.ID, "admission_id", admissionID)
	return ann, nil
}

// Transcribe hands an already-validated upload to the transcription
// collaborator, waits for its result, and persists the resulting annotation.
// The store is never blocked while the call is in flight.
func (s *Service) Transcribe(ctx context.Context, req transcription.Request) (*Annotation, error) {
	if _, err := s.admissions.GetByID(req.AdmissionID); err != nil {
		return nil, err
	}

	callCtx, cancel := internal.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	result, err := s.transcriber.Transcribe(callCtx, req)
	if err != nil {
		s.logger.Error("transcription call failed", "error", err, "admission_id", req.AdmissionID)
		return nil, internal.ErrTranscriptionFailed.WithCause(err)
	}

	now := time.Now()
	ann := &Annotation{
		ID:           uuid.NewString(),
		AdmissionID:  req.AdmissionID,
		AnnotatedAt:  now,
		AuthorName:   req.AuthorName,
		Text:         result.Text,
		AudioRef:     result.AudioRef,
		DocumentRef:  result.DocumentRef,
		DocumentName: result.DocumentName,
		Status:       StatusCompleted,
		CreatedAt:    now,
	}

	if err := s.repo.Insert(ann); err != nil {
		s.logger.Error("failed to persist transcription", "error", err, "admission_id", req.AdmissionID)
		return nil, err
	}

	s.logger.Info("transcription persisted",
		"annotation_id", ann.ID,
		"admission_id", req.AdmissionID,
		"kind", req.Kind)

	return ann, nil
}

// ListForAdmission returns the annotations of an admission, newest first.
func (s *Service) ListForAdmission(admissionID string) ([]*Annotation, error) {
	if _, err := s.admissions.GetByID(admissionID); err != nil {
		return nil, err
	}
	return s.repo.ListByAdmission(admissionID)
}
