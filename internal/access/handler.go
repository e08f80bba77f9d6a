package access

import (
	"log/slog"
	"net/http"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Filter *Filter
}

func NewHandler(filter *Filter, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Filter:      filter,
	}
}

type hospitalsResponse struct {
	Hospitals    []string `json:"hospitals"`
	AutoSelected string   `json:"auto_selected,omitempty"`
}

// ListHospitals returns the caller's visible hospitals, sorted. When exactly
// one hospital is visible it is echoed back as auto_selected so clients skip
// the hospital prompt.
func (h *Handler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	visible, err := h.Filter.VisibleHospitals(principal)
	if err != nil {
		h.Logger.Error("failed to list hospitals", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := hospitalsResponse{Hospitals: visible}
	if selected, ok := AutoSelect(visible); ok {
		resp.AutoSelected = selected
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// ListPatients returns the distinct patient names of one visible hospital.
func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
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

	patients, err := h.Filter.PatientsOf(hospital)
	if err != nil {
		h.Logger.Error("failed to list patients", "error", err, "hospital", hospital)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, patients)
}
