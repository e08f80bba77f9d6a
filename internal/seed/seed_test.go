package seed

import (
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/annotation"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

func TestSeed(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Seed Module Suite")
}

type fakeUserRepo struct {
	byEmail map[string]*user.User
	inserts int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*user.User{}}
}

func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.byEmail)), nil }

func (f *fakeUserRepo) GetByEmail(email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (f *fakeUserRepo) Insert(u *user.User) error {
	f.byEmail[u.Email] = u
	f.inserts++
	return nil
}

func (f *fakeUserRepo) BulkInsert(users []*user.User) error {
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	f.inserts += len(users)
	return nil
}

type fakeAdmissionRepo struct {
	admissions []*admission.Admission
}

func (f *fakeAdmissionRepo) Count() (int64, error) { return int64(len(f.admissions)), nil }

func (f *fakeAdmissionRepo) BulkInsert(admissions []*admission.Admission) error {
	f.admissions = append(f.admissions, admissions...)
	return nil
}

type fakeAnnotationRepo struct {
	annotations []*annotation.Annotation
}

func (f *fakeAnnotationRepo) BulkInsert(annotations []*annotation.Annotation) error {
	f.annotations = append(f.annotations, annotations...)
	return nil
}

var _ = ginkgo.Describe("Loader", func() {
	var (
		loader      *Loader
		users       *fakeUserRepo
		admissions  *fakeAdmissionRepo
		annotations *fakeAnnotationRepo
	)

	ginkgo.BeforeEach(func() {
		users = newFakeUserRepo()
		admissions = &fakeAdmissionRepo{}
		annotations = &fakeAnnotationRepo{}
		loader = NewLoader(users, admissions, annotations, 4,
			slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Context("against an empty store", func() {
		ginkgo.It("should seed the full roster and sample data", func() {
			gomega.Expect(loader.Run()).To(gomega.Succeed())

			gomega.Expect(users.byEmail).To(gomega.HaveLen(6))
			gomega.Expect(admissions.admissions).To(gomega.HaveLen(10))
			gomega.Expect(annotations.annotations).To(gomega.HaveLen(5))
		})

		ginkgo.It("should create the administrator with a working secret", func() {
			gomega.Expect(loader.Run()).To(gomega.Succeed())

			admin, err := users.GetByEmail(AdminEmail)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(admin.Role).To(gomega.Equal(user.RoleAdministrator))
			gomega.Expect(admin.Unrestricted()).To(gomega.BeTrue())
			gomega.Expect(auth.VerifySecret(admin.SecretHash, BootstrapSecret)).To(gomega.Succeed())
		})

		ginkgo.It("should use fixed ids so re-seeding cannot fork identities", func() {
			gomega.Expect(loader.Run()).To(gomega.Succeed())

			gomega.Expect(admissions.admissions[0].ID).To(gomega.Equal("int_mock_1"))
			gomega.Expect(admissions.admissions[9].ID).To(gomega.Equal("int_mock_10"))
			gomega.Expect(annotations.annotations[0].ID).To(gomega.Equal("trans_mock_1"))
		})

		ginkgo.It("should attach each annotation to a seeded admission", func() {
			gomega.Expect(loader.Run()).To(gomega.Succeed())

			ids := map[string]struct{}{}
			for _, a := range admissions.admissions {
				ids[a.ID] = struct{}{}
			}
			for _, ann := range annotations.annotations {
				gomega.Expect(ids).To(gomega.HaveKey(ann.AdmissionID))
				gomega.Expect(ann.Status).To(gomega.Equal(annotation.StatusCompleted))
			}
		})
	})

	ginkgo.Context("against an already-populated store", func() {
		ginkgo.It("should be a no-op on a second run", func() {
			gomega.Expect(loader.Run()).To(gomega.Succeed())
			insertsAfterFirst := users.inserts

			gomega.Expect(loader.Run()).To(gomega.Succeed())

			gomega.Expect(users.inserts).To(gomega.Equal(insertsAfterFirst))
			gomega.Expect(admissions.admissions).To(gomega.HaveLen(10))
			gomega.Expect(annotations.annotations).To(gomega.HaveLen(5))
		})

		ginkgo.It("should restore a missing administrator without touching other users", func() {
			gomega.Expect(loader.Run()).To(gomega.Succeed())
			delete(users.byEmail, AdminEmail)

			gomega.Expect(loader.Run()).To(gomega.Succeed())

			admin, err := users.GetByEmail(AdminEmail)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(admin.Role).To(gomega.Equal(user.RoleAdministrator))
			gomega.Expect(users.byEmail).To(gomega.HaveLen(6))
		})

		ginkgo.It("should repopulate sample data when the admission collection was emptied", func() {
			gomega.Expect(loader.Run()).To(gomega.Succeed())
			admissions.admissions = nil
			annotations.annotations = nil

			gomega.Expect(loader.Run()).To(gomega.Succeed())

			gomega.Expect(admissions.admissions).To(gomega.HaveLen(10))
			gomega.Expect(annotations.annotations).To(gomega.HaveLen(5))
		})
	})
})
