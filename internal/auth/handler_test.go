package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		handler  *Handler
		service  *Service
		mockRepo *mockUserRepository
		sessions *mockSessionStore
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		sessions = &mockSessionStore{}
		tokenGen := NewJWTTokenGenerator("test-secret", 15*time.Minute)
		service = NewService(mockRepo, sessions, tokenGen,
			slog.New(slog.NewTextHandler(io.Discard, nil)))
		handler = NewHandler(service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	login := func() string {
		_, token, err := service.Authenticate(LoginDTO{
			Email:  "ana@auditoria.com",
			Secret: "s3cret",
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return token
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return the token and the sans-secret principal", func() {
			body := strings.NewReader(`{"email":"admin@auditoria.com","password":"123456"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring(`"token"`))
			gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("user_admin"))
			gomega.Expect(w.Body.String()).ToNot(gomega.ContainSubstring("secret_hash"))
		})

		ginkgo.It("should answer 401 for bad credentials", func() {
			body := strings.NewReader(`{"email":"admin@auditoria.com","password":"errada"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should answer 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var next http.Handler

		ginkgo.BeforeEach(func() {
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				principal, ok := PrincipalFromContext(r.Context())
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(principal.ID).To(gomega.Equal("user_1"))
				gomega.Expect(internal.UserIDFromContext(r.Context())).To(gomega.Equal("user_1"))
				w.WriteHeader(http.StatusOK)
			})
		})

		ginkgo.It("should pass a valid session through with the principal in context", func() {
			token := login()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should reject a request without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should reject a token after logout", func() {
			token := login()
			gomega.Expect(service.EndSession()).To(gomega.Succeed())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should reject a token whose subject is not the session principal", func() {
			login()

			other := NewJWTTokenGenerator("test-secret", 15*time.Minute)
			stale, err := other.GenerateToken(&user.Principal{ID: "user_admin", Email: "admin@auditoria.com"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
			req.Header.Set("Authorization", "Bearer "+stale)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("RequireAdministrator", func() {
		allow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		ginkgo.It("should let an administrator through", func() {
			_, token, err := service.Authenticate(LoginDTO{
				Email:  "admin@auditoria.com",
				Secret: "123456",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(handler.RequireAdministrator(allow)).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should answer 403 for a non-administrator", func() {
			token := login()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.AuthMiddleware(handler.RequireAdministrator(allow)).ServeHTTP(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusForbidden))
		})
	})
})
