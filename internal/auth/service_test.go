package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockUserRepository struct {
	users map[string]*user.User
}

func newMockUserRepository() *mockUserRepository {
	adminHash, _ := HashSecret("123456", 4)
	auditorHash, _ := HashSecret("s3cret", 4)

	return &mockUserRepository{
		users: map[string]*user.User{
			"admin@auditoria.com": {
				ID:         "user_admin",
				Name:       "Administrador",
				Email:      "admin@auditoria.com",
				SecretHash: adminHash,
				Role:       user.RoleAdministrator,
			},
			"ana@auditoria.com": {
				ID:               "user_1",
				Name:             "Ana Souza",
				Email:            "ana@auditoria.com",
				SecretHash:       auditorHash,
				Role:             user.RoleAuditor,
				AllowedHospitals: []string{"Hospital Santa Clara"},
			},
		},
	}
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

type mockSessionStore struct {
	principal *user.Principal
	token     string
	saveErr   error
}

func (m *mockSessionStore) SaveSession(principal *user.Principal, token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.principal = principal
	m.token = token
	return nil
}

func (m *mockSessionStore) LoadSession() (*user.Principal, string, error) {
	return m.principal, m.token, nil
}

func (m *mockSessionStore) ClearSession() error {
	m.principal = nil
	m.token = ""
	return nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		sessions *mockSessionStore
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		sessions = &mockSessionStore{}
		tokenGen = NewJWTTokenGenerator("test-secret", 15*time.Minute)
		service = NewService(mockRepo, sessions, tokenGen,
			slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return the principal without the secret", func() {
				principal, token, err := service.Authenticate(LoginDTO{
					Email:  "admin@auditoria.com",
					Secret: "123456",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(token).ToNot(gomega.BeEmpty())
				gomega.Expect(principal.ID).To(gomega.Equal("user_admin"))
				gomega.Expect(principal.Role).To(gomega.Equal(user.RoleAdministrator))
			})

			ginkgo.It("should persist the session", func() {
				_, token, err := service.Authenticate(LoginDTO{
					Email:  "ana@auditoria.com",
					Secret: "s3cret",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(sessions.principal).ToNot(gomega.BeNil())
				gomega.Expect(sessions.principal.Email).To(gomega.Equal("ana@auditoria.com"))
				gomega.Expect(sessions.token).To(gomega.Equal(token))
			})

			ginkgo.It("should issue a token that validates back to the same subject", func() {
				principal, token, err := service.Authenticate(LoginDTO{
					Email:  "admin@auditoria.com",
					Secret: "123456",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateToken(token)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal(principal.ID))
			})
		})

		ginkgo.Context("when the secret is wrong", func() {
			ginkgo.It("should fail without revealing whether the email exists", func() {
				_, _, err := service.Authenticate(LoginDTO{
					Email:  "admin@auditoria.com",
					Secret: "wrong",
				})

				gomega.Expect(err).To(gomega.Equal(ErrNotAuthenticated))
				gomega.Expect(sessions.principal).To(gomega.BeNil())
			})
		})

		ginkgo.Context("when the email is unknown", func() {
			ginkgo.It("should return the same error as a wrong secret", func() {
				_, _, err := service.Authenticate(LoginDTO{
					Email:  "nobody@auditoria.com",
					Secret: "123456",
				})

				gomega.Expect(err).To(gomega.Equal(ErrNotAuthenticated))
			})
		})

		ginkgo.Context("when fields are missing", func() {
			ginkgo.It("should reject an empty email", func() {
				_, _, err := service.Authenticate(LoginDTO{Secret: "123456"})

				gomega.Expect(err).To(gomega.BeAssignableToTypeOf(ValidationError{}))
			})

			ginkgo.It("should reject an empty password", func() {
				_, _, err := service.Authenticate(LoginDTO{Email: "admin@auditoria.com"})

				gomega.Expect(err).To(gomega.BeAssignableToTypeOf(ValidationError{}))
			})
		})
	})

	ginkgo.Describe("CurrentPrincipal", func() {
		ginkgo.It("should return false when no session exists", func() {
			_, ok := service.CurrentPrincipal()
			gomega.Expect(ok).To(gomega.BeFalse())
		})

		ginkgo.It("should return the principal persisted at login", func() {
			_, _, err := service.Authenticate(LoginDTO{
				Email:  "ana@auditoria.com",
				Secret: "s3cret",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			principal, ok := service.CurrentPrincipal()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(principal.AllowedHospitals).To(gomega.ConsistOf("Hospital Santa Clara"))
		})

		ginkgo.It("should keep permissions pinned to the session, not the roster", func() {
			_, _, err := service.Authenticate(LoginDTO{
				Email:  "ana@auditoria.com",
				Secret: "s3cret",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// a roster edit after login must not leak into the session
			mockRepo.users["ana@auditoria.com"].AllowedHospitals = []string{"Hospital Vida Nova"}

			principal, ok := service.CurrentPrincipal()
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(principal.AllowedHospitals).To(gomega.ConsistOf("Hospital Santa Clara"))
		})
	})

	ginkgo.Describe("EndSession", func() {
		ginkgo.It("should clear the persisted session", func() {
			_, _, err := service.Authenticate(LoginDTO{
				Email:  "admin@auditoria.com",
				Secret: "123456",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.EndSession()).To(gomega.Succeed())

			_, ok := service.CurrentPrincipal()
			gomega.Expect(ok).To(gomega.BeFalse())
		})

		ginkgo.It("should be idempotent", func() {
			gomega.Expect(service.EndSession()).To(gomega.Succeed())
			gomega.Expect(service.EndSession()).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("ValidateToken", func() {
		ginkgo.It("should reject a token signed with a different secret", func() {
			other := NewJWTTokenGenerator("other-secret", 15*time.Minute)
			token, err := other.GenerateToken(&user.Principal{ID: "user_1", Email: "ana@auditoria.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject garbage", func() {
			_, err := service.ValidateToken("not-a-token")
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})
})
