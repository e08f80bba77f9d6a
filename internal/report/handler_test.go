package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/access"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

type stubAdmissionSource struct {
	hospitals []string
	err       error
}

func (s *stubAdmissionSource) DistinctHospitals() ([]string, error) {
	return s.hospitals, s.err
}

func (s *stubAdmissionSource) DistinctPatients(hospital string) ([]string, error) {
	return nil, s.err
}

func (s *stubAdmissionSource) ListByHospital(hospital, patient string) ([]*admission.Admission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*admission.Admission{{ID: "a1", HospitalName: hospital, PatientName: "Maria Silva"}}, nil
}

var _ = ginkgo.Describe("ReportHandler", func() {
	var (
		handler *Handler
		source  *stubAdmissionSource
	)

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))

	request := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/admissions.xlsx", nil)
		ctx := context.WithValue(req.Context(), auth.ContextPrincipalKey, &user.Principal{
			ID:   "user_1",
			Name: "Ana Costa",
			Role: user.RoleAuditor,
		})
		return req.WithContext(ctx)
	}

	ginkgo.BeforeEach(func() {
		source = &stubAdmissionSource{hospitals: []string{"Hospital Central"}}
		handler = NewHandler(access.NewFilter(source, discard), discard)
	})

	ginkgo.It("should stream the workbook for the caller's visible hospitals", func() {
		w := httptest.NewRecorder()

		handler.AdmissionsXLSX(w, request())

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(w.Header().Get("Content-Type")).To(
			gomega.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
		gomega.Expect(w.Body.Len()).ToNot(gomega.BeZero())
	})

	ginkgo.It("should answer a typed internal error when the store fails", func() {
		source.err = errors.New("store gone")
		w := httptest.NewRecorder()

		handler.AdmissionsXLSX(w, request())

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusInternalServerError))
		gomega.Expect(w.Body.String()).To(gomega.ContainSubstring("INTERNAL_ERROR"))
	})

	ginkgo.It("should answer 401 without a session principal", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/admissions.xlsx", nil)
		w := httptest.NewRecorder()

		handler.AdmissionsXLSX(w, req)

		gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
	})
})
