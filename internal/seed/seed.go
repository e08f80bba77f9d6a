// Package seed populates a fresh audit store with the bootstrap roster and
// sample admissions. Every step checks before it writes, so running it
// against an already-populated store is a no-op. The only exception is
// the administrator self-heal, which always runs.
package seed

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/annotation"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

// AdminEmail is the privileged account the loader guarantees to exist.
const AdminEmail = "admin@auditoria.com"

// BootstrapSecret is the development credential for every seeded account.
const BootstrapSecret = "123456"

type UserRepository interface {
	Count() (int64, error)
	GetByEmail(email string) (*user.User, error)
	Insert(u *user.User) error
	BulkInsert(users []*user.User) error
}

type AdmissionRepository interface {
	Count() (int64, error)
	BulkInsert(admissions []*admission.Admission) error
}

type AnnotationRepository interface {
	BulkInsert(annotations []*annotation.Annotation) error
}

type Loader struct {
	users       UserRepository
	admissions  AdmissionRepository
	annotations AnnotationRepository
	bcryptCost  int
	logger      *slog.Logger
}

func NewLoader(users UserRepository, admissions AdmissionRepository, annotations AnnotationRepository, bcryptCost int, logger *slog.Logger) *Loader {
	return &Loader{
		users:       users,
		admissions:  admissions,
		annotations: annotations,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

// Run executes all seeding steps. It is called once at process start, after
// the store is open and migrated.
func (l *Loader) Run() error {
	roster, err := l.bootstrapRoster()
	if err != nil {
		return err
	}

	if err := l.seedUsers(roster); err != nil {
		return err
	}

	return l.seedAdmissions(roster)
}

func (l *Loader) seedUsers(roster []*user.User) error {
	count, err := l.users.Count()
	if err != nil {
		return err
	}

	if count == 0 {
		if err := l.users.BulkInsert(roster); err != nil {
			return err
		}
		l.logger.Info("seeded bootstrap users", "count", len(roster))
		return nil
	}

	// self-heal: the administrator account must survive schema changes even
	// when the rest of the roster is left alone
	if _, err := l.users.GetByEmail(AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, internal.ErrUserNotFound) {
		return err
	}

	for _, u := range roster {
		if u.Email == AdminEmail {
			if err := l.users.Insert(u); err != nil {
				return err
			}
			l.logger.Warn("restored missing administrator account", "email", AdminEmail)
			return nil
		}
	}
	return nil
}

func (l *Loader) seedAdmissions(roster []*user.User) error {
	count, err := l.admissions.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admissions := bootstrapAdmissions(roster)
	if err := l.admissions.BulkInsert(admissions); err != nil {
		return err
	}

	annotations := bootstrapAnnotations(admissions)
	if err := l.annotations.BulkInsert(annotations); err != nil {
		return err
	}

	l.logger.Info("seeded bootstrap admissions",
		"admissions", len(admissions),
		"annotations", len(annotations))
	return nil
}

func (l *Loader) bootstrapRoster() ([]*user.User, error) {
	hash, err := auth.HashSecret(BootstrapSecret, l.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	build := func(id, name, email, role string, hospitals []string) *user.User {
		return &user.User{
			ID:               id,
			Name:             name,
			Email:            email,
			SecretHash:       hash,
			Role:             role,
			AllowedHospitals: hospitals,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}

	return []*user.User{
		// single allowed hospital: exercises the auto-select path
		build("user_1", "Dr. João Silva", "joao.silva@hospital.com", user.RoleClinician, []string{"Hospital São Paulo"}),
		build("user_2", "Dra. Maria Santos", "maria.santos@hospital.com", user.RoleClinician, []string{"Hospital Central", "Hospital Regional"}),
		// no hospital list: unrestricted
		build("user_3", "Carlos Oliveira", "carlos.oliveira@auditoria.com", user.RoleAuditor, nil),
		build("user_4", "Ana Costa", "ana.costa@auditoria.com", user.RoleAuditor, []string{"Hospital Universitário"}),
		build("user_5", "Dr. Pedro Almeida", "pedro.almeida@hospital.com", user.RoleClinician, nil),
		build("user_admin", "Administrador", AdminEmail, user.RoleAdministrator, nil),
	}, nil
}

type bootstrapStay struct {
	patient      string
	hospital     string
	admitted     string
	guideNumber  string
	recordNumber string
	discharged   string
}

var bootstrapStays = []bootstrapStay{
	{"Roberto Mendes", "Hospital São Paulo", "2024-01-15", "GUIA-2024-001", "MAT-12345678", ""},
	{"Fernanda Lima", "Hospital Central", "2024-01-18", "GUIA-2024-002", "MAT-23456789", "2024-01-25"},
	{"José Carlos Pereira", "Hospital Universitário", "2024-01-20", "GUIA-2024-003", "MAT-34567890", ""},
	{"Amanda Rodrigues", "Hospital Regional", "2024-01-22", "GUIA-2024-004", "MAT-45678901", "2024-02-01"},
	{"Marcos Antônio Souza", "Hospital São Paulo", "2024-01-25", "GUIA-2024-005", "MAT-56789012", ""},
	{"Juliana Ferreira", "Hospital Central", "2024-01-28", "GUIA-2024-006", "MAT-67890123", ""},
	{"Ricardo Nunes", "Hospital Universitário", "2024-02-01", "GUIA-2024-007", "MAT-78901234", ""},
	{"Patrícia Alves", "Hospital Regional", "2024-02-03", "GUIA-2024-008", "MAT-89012345", ""},
	{"Lucas Martins", "Hospital São Paulo", "2024-02-05", "GUIA-2024-009", "MAT-90123456", ""},
	{"Camila Barbosa", "Hospital Central", "2024-02-08", "GUIA-2024-010", "MAT-01234567", ""},
}

func bootstrapAdmissions(roster []*user.User) []*admission.Admission {
	admissions := make([]*admission.Admission, 0, len(bootstrapStays))
	for i, stay := range bootstrapStays {
		auditor := roster[i%len(roster)]
		admitted, _ := time.Parse("2006-01-02", stay.admitted)

		var discharge *time.Time
		if stay.discharged != "" {
			d, _ := time.Parse("2006-01-02", stay.discharged)
			discharge = &d
		}

		admissions = append(admissions, &admission.Admission{
			ID:                  seedID("int_mock_", i),
			AdmissionDate:       admitted,
			PatientName:         stay.patient,
			HospitalName:        stay.hospital,
			GuideNumber:         stay.guideNumber,
			PatientRecordNumber: stay.recordNumber,
			DischargeDate:       discharge,
			AuditorID:           auditor.ID,
			AuditorName:         auditor.Name,
			CreatedAt:           admitted.Add(12 * time.Hour),
		})
	}
	return admissions
}

// bootstrapAnnotations attaches one completed sample note to each of the
// first five seeded admissions.
func bootstrapAnnotations(admissions []*admission.Admission) []*annotation.Annotation {
	n := 5
	if len(admissions) < n {
		n = len(admissions)
	}

	annotations := make([]*annotation.Annotation, 0, n)
	for i := 0; i < n; i++ {
		adm := admissions[i]
		annotatedAt := adm.AdmissionDate.Add(24 * time.Hour)
		annotations = append(annotations, &annotation.Annotation{
			ID:          seedID("trans_mock_", i),
			AdmissionID: adm.ID,
			AnnotatedAt: annotatedAt,
			AuthorName:  adm.AuditorName,
			Text: "Transcrição de exemplo para " + adm.PatientName +
				". Paciente internado em " + adm.HospitalName +
				" com quadro clínico estável. Exames complementares realizados e tratamento iniciado conforme protocolo.",
			Status:    annotation.StatusCompleted,
			CreatedAt: annotatedAt,
		})
	}
	return annotations
}

func seedID(prefix string, index int) string {
	return prefix + strconv.Itoa(index+1)
}
