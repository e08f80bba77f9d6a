package report

import (
	"log/slog"
	"net/http"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/access"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Filter *access.Filter
}

func NewHandler(filter *access.Filter, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Filter:      filter,
	}
}

// AdmissionsXLSX streams an XLSX workbook with every admission visible to the
// caller, newest first within each hospital.
func (h *Handler) AdmissionsXLSX(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	visible, err := h.Filter.VisibleHospitals(principal)
	if err != nil {
		h.Logger.Error("failed to resolve visible hospitals", "error", err)
		h.WriteAppError(w, internal.NewInternalError("failed to build report", err))
		return
	}

	var admissions []*admission.Admission
	for _, hospital := range visible {
		list, err := h.Filter.AdmissionsFor(hospital, "")
		if err != nil {
			h.Logger.Error("failed to collect admissions", "error", err, "hospital", hospital)
			h.WriteAppError(w, internal.NewInternalError("failed to build report", err))
			return
		}
		admissions = append(admissions, list...)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="internacoes.xlsx"`)

	if err := WriteAdmissionsXLSX(w, admissions); err != nil {
		h.Logger.Error("failed to render report", "error", err)
	}
}
