package admission

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
)

type stubAdmissionService struct {
	created       *Admission
	lastAuditorID string
}

func (s *stubAdmissionService) Create(auditorID string, dto CreateAdmissionDTO) (*Admission, error) {
	s.lastAuditorID = auditorID
	s.created = &Admission{
		ID:            "adm-created",
		AdmissionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PatientName:   dto.PatientName,
		HospitalName:  dto.HospitalName,
		AuditorID:     auditorID,
	}
	return s.created, nil
}

func (s *stubAdmissionService) GetByID(id string) (*Admission, error) {
	return nil, internal.ErrAdmissionNotFound
}

func (s *stubAdmissionService) SetDischarge(id string, dto SetDischargeDTO) (*Admission, error) {
	return nil, internal.ErrAdmissionNotFound
}

var _ = ginkgo.Describe("AdmissionHandler", func() {
	var (
		handler *Handler
		service *stubAdmissionService
	)

	ginkgo.BeforeEach(func() {
		service = &stubAdmissionService{}
		handler = NewHandler(service, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("CreateAdmission", func() {
		body := `{"patient_name":"Maria Silva","hospital_name":"Hospital Central","admission_date":"2024-03-01T00:00:00Z"}`

		ginkgo.It("should record the admission under the session user id", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admissions", strings.NewReader(body))
			req = req.WithContext(internal.ContextWithUserID(req.Context(), "user_3"))
			w := httptest.NewRecorder()

			handler.CreateAdmission(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusCreated))
			gomega.Expect(service.lastAuditorID).To(gomega.Equal("user_3"))
		})

		ginkgo.It("should answer 401 when no session user id is in context", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/admissions", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.CreateAdmission(w, req)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(service.lastAuditorID).To(gomega.BeEmpty())
		})
	})
})
