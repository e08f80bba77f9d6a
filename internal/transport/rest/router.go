package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/access"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/annotation"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/report"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transport/middleware"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

// Handlers groups every delivery handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Admission  *admission.Handler
	Annotation *annotation.Handler
	Access     *access.Handler
	Report     *report.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
		})

		// everything below requires an active session
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.Auth.Me)

			pr.Get("/hospitals", h.Access.ListHospitals)
			pr.Get("/patients", h.Access.ListPatients)

			pr.Route("/admissions", func(ar chi.Router) {
				ar.Post("/", h.Admission.CreateAdmission)
				ar.Get("/", h.Admission.ListAdmissions)
				ar.Get("/{id}", h.Admission.GetAdmission)
				ar.Patch("/{id}/discharge", h.Admission.SetDischarge)

				ar.Get("/{id}/annotations", h.Annotation.ListAnnotations)
				ar.Post("/{id}/annotations", h.Annotation.CreateTextAnnotation)
				ar.Post("/{id}/annotations/transcribe", h.Annotation.TranscribeUpload)
			})

			pr.Get("/reports/admissions.xlsx", h.Report.AdmissionsXLSX)

			// administration surface
			pr.Group(func(adm chi.Router) {
				adm.Use(h.Auth.RequireAdministrator)
				adm.Get("/users", h.User.ListUsers)
				adm.Get("/users/{id}", h.User.GetUser)
				adm.Patch("/users/{id}", h.User.UpdateUser)
			})
		})
	})
}
