package admission

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transport"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

type ServiceAPI interface {
	Create(auditorID string, dto CreateAdmissionDTO) (*Admission, error)
	GetByID(id string) (*Admission, error)
	SetDischarge(id string, dto SetDischargeDTO) (*Admission, error)
}

// AccessFilter is the slice of the access filter the handler relies on; it
// is declared here (rather than importing internal/access) because access
// already imports this package for the Admission type.
type AccessFilter interface {
	CanSee(principal *user.Principal, hospital string) (bool, error)
	AdmissionsFor(hospital, patient string) ([]*Admission, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Filter  AccessFilter
}

func NewHandler(svc ServiceAPI, filter AccessFilter, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Service:     svc,
		Filter:      filter,
	}
}

// CreateAdmission records a new admission under the calling principal.
func (h *Handler) CreateAdmission(w http.ResponseWriter, r *http.Request) {
	auditorID := internal.UserIDFromContext(r.Context())
	if auditorID == "" {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	var dto CreateAdmissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	adm, err := h.Service.Create(auditorID, dto)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.Logger.Error("failed to create admission", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusCreated, adm)
}

// ListAdmissions returns the admissions of one hospital, newest first,
// optionally narrowed to an exact patient name. The hospital must be in the
// caller's visible set.
func (h *Handler) ListAdmissions(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	hospital := r.URL.Query().Get("hospital")
	if hospital == "" {
		h.WriteError(w, http.StatusBadRequest, "missing hospital parameter")
		return
	}

	allowed, err := h.Filter.CanSee(principal, hospital)
	if err != nil {
		h.Logger.Error("failed to resolve hospital visibility", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !allowed {
		h.WriteAppError(w, internal.ErrForbiddenHospital)
		return
	}

	admissions, err := h.Filter.AdmissionsFor(hospital, r.URL.Query().Get("patient"))
	if err != nil {
		h.Logger.Error("failed to list admissions", "error", err, "hospital", hospital)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, admissions)
}

func (h *Handler) GetAdmission(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	id := chi.URLParam(r, "id")
	adm, err := h.Service.GetByID(id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	allowed, err := h.Filter.CanSee(principal, adm.HospitalName)
	if err != nil {
		h.Logger.Error("failed to resolve hospital visibility", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !allowed {
		h.WriteAppError(w, internal.ErrForbiddenHospital)
		return
	}

	h.WriteJSON(w, http.StatusOK, adm)
}

// SetDischarge records a discharge date on an existing admission.
func (h *Handler) SetDischarge(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	id := chi.URLParam(r, "id")

	existing, err := h.Service.GetByID(id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	allowed, err := h.Filter.CanSee(principal, existing.HospitalName)
	if err != nil {
		h.Logger.Error("failed to resolve hospital visibility", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !allowed {
		h.WriteAppError(w, internal.ErrForbiddenHospital)
		return
	}

	var dto SetDischargeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.SetDischarge(id, dto)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		h.Logger.Error("failed to set discharge date", "error", err, "admission_id", id)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}
