package auth

import (
	"errors"
	"log/slog"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

type UserRepository interface {
	GetByEmail(email string) (*user.User, error)
}

// Service is the session manager: it authenticates principals against the
// stored roster and owns the persisted session state. It is injected wherever
// the current principal is needed rather than living in a package global.
type Service struct {
	users    UserRepository
	sessions SessionStore
	tokens   TokenGenerator
	logger   *slog.Logger
}

func NewService(users UserRepository, sessions SessionStore, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// Authenticate resolves the principal for the given credentials. A miss on
// email or secret returns ErrNotAuthenticated; both paths look identical to
// the caller. On success the sans-secret principal and a fresh token are
// persisted as the active session.
func (s *Service) Authenticate(dto LoginDTO) (*user.Principal, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	u, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			s.logger.Info("authentication failed: unknown email", "email", dto.Email)
			return nil, "", ErrNotAuthenticated
		}
		return nil, "", err
	}

	if err := VerifySecret(u.SecretHash, dto.Secret); err != nil {
		s.logger.Info("authentication failed: wrong secret", "email", dto.Email)
		return nil, "", ErrNotAuthenticated
	}

	principal := u.ToPrincipal()

	token, err := s.tokens.GenerateToken(principal)
	if err != nil {
		return nil, "", err
	}

	if err := s.sessions.SaveSession(principal, token); err != nil {
		return nil, "", err
	}

	s.logger.Info("login successful", "user_id", principal.ID, "name", principal.Name)
	return principal, token, nil
}

// EndSession clears the persisted session. Clearing an absent session is a
// no-op, so the call is idempotent.
func (s *Service) EndSession() error {
	return s.sessions.ClearSession()
}

// CurrentPrincipal returns the persisted principal, or false when no session
// exists. The principal is NOT re-validated against the user collection:
// permissions are pinned at login until an explicit logout.
func (s *Service) CurrentPrincipal() (*user.Principal, bool) {
	principal, _, err := s.sessions.LoadSession()
	if err != nil {
		s.logger.Error("failed to load session", "error", err)
		return nil, false
	}
	if principal == nil {
		return nil, false
	}
	return principal, true
}

// ValidateToken checks a presented token against the signing secret.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.tokens.ValidateToken(token)
}
