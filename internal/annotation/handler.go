package annotation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/access"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transcription"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transport"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

type ServiceAPI interface {
	CreateText(admissionID, authorName, text string) (*Annotation, error)
	Transcribe(ctx context.Context, req transcription.Request) (*Annotation, error)
	ListForAdmission(admissionID string) ([]*Annotation, error)
}

type AdmissionGetter interface {
	GetByID(id string) (*admission.Admission, error)
}

type Handler struct {
	*transport.BaseHandler
	Service    ServiceAPI
	Admissions AdmissionGetter
	Filter     *access.Filter
}

func NewHandler(svc ServiceAPI, admissions AdmissionGetter, filter *access.Filter, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Service:     svc,
		Admissions:  admissions,
		Filter:      filter,
	}
}

type createTextDTO struct {
	Text string `json:"text"`
}

// ListAnnotations returns the annotations of an admission, newest first.
func (h *Handler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	_, admissionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	annotations, err := h.Service.ListForAdmission(admissionID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.Logger.Error("failed to list annotations", "error", err, "admission_id", admissionID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, annotations)
}

// CreateTextAnnotation appends a typed note to an admission.
func (h *Handler) CreateTextAnnotation(w http.ResponseWriter, r *http.Request) {
	principal, admissionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var dto createTextDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ann, err := h.Service.CreateText(admissionID, principal.Name, dto.Text)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.Logger.Error("failed to create annotation", "error", err, "admission_id", admissionID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusCreated, ann)
}

// TranscribeUpload accepts a multipart upload, validates it against the size
// and mime allow-lists, and hands it to the transcription collaborator. The
// request blocks until the transcript is ready or the call times out.
func (h *Handler) TranscribeUpload(w http.ResponseWriter, r *http.Request) {
	principal, admissionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(transcription.MaxFileSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	kind, err := transcription.ValidateUpload(header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Error("failed to read upload", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	ann, err := h.Service.Transcribe(r.Context(), transcription.Request{
		FileBytes:   fileBytes,
		FileName:    header.Filename,
		Kind:        kind,
		AdmissionID: admissionID,
		AuthorName:  principal.Name,
	})
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.Logger.Error("transcription failed", "error", err, "admission_id", admissionID)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusCreated, ann)
}

// authorize resolves the principal and the admission from the URL and checks
// the admission's hospital against the caller's visible set.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) (*user.Principal, string, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return nil, "", false
	}

	admissionID := chi.URLParam(r, "id")
	adm, err := h.Admissions.GetByID(admissionID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return nil, "", false
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return nil, "", false
	}

	allowed, err := h.Filter.CanSee(principal, adm.HospitalName)
	if err != nil {
		h.Logger.Error("failed to resolve hospital visibility", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return nil, "", false
	}
	if !allowed {
		h.WriteAppError(w, internal.ErrForbiddenHospital)
		return nil, "", false
	}

	return principal, admissionID, true
}
