package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transport"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

type principalCtxKey string

// ContextPrincipalKey carries the session principal through request contexts.
const ContextPrincipalKey principalCtxKey = "principal"

// PrincipalFromContext returns the authenticated principal set by
// AuthMiddleware, or false when the request is anonymous.
func PrincipalFromContext(ctx context.Context) (*user.Principal, bool) {
	if ctx == nil {
		return nil, false
	}
	principal, ok := ctx.Value(ContextPrincipalKey).(*user.Principal)
	return principal, ok && principal != nil
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (*user.Principal, string, error)
	EndSession() error
	CurrentPrincipal() (*user.Principal, bool)
	ValidateToken(token string) (*Claims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Service:     svc,
	}
}

type loginResponse struct {
	Token string          `json:"token"`
	User  *user.Principal `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	principal, token, err := h.Service.Authenticate(dto)
	if err != nil {
		switch err {
		case ErrNotAuthenticated:
			h.WriteError(w, http.StatusUnauthorized, "email ou senha incorretos")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.Logger.Error("authentication error", "error", err)
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: principal})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.EndSession(); err != nil {
		h.Logger.Error("failed to end session", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the session principal as persisted at login time.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	h.WriteJSON(w, http.StatusOK, principal)
}

// AuthMiddleware validates the bearer token and attaches the persisted
// session principal to the request context. Permissions come from the stored
// session, not from a fresh roster read, so a mid-session change to a user's
// hospital list only takes effect after the next login.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		principal, ok := h.Service.CurrentPrincipal()
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "no active session")
			return
		}

		if principal.ID != claims.UserID {
			h.Logger.Warn("token subject does not match session principal",
				"token_user_id", claims.UserID, "session_user_id", principal.ID)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextPrincipalKey, principal)
		ctx = internal.ContextWithUserID(ctx, principal.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdministrator guards routes that only the administrator role may use.
func (h *Handler) RequireAdministrator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "no active session")
			return
		}

		if principal.Role != user.RoleAdministrator {
			h.WriteError(w, http.StatusForbidden, "administrator role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
