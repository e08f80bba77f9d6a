package storage_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
)

func TestSessionStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Storage Suite")
}

// mirrors the app_state table created by the base schema migration
type appStateRow struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (appStateRow) TableName() string {
	return "app_state"
}

var _ = Describe("SessionRepository", func() {
	var (
		db   *gorm.DB
		repo *storage.SessionRepository
	)

	principal := &user.Principal{
		ID:               "user_1",
		Name:             "Dr. João Silva",
		Email:            "joao.silva@hospital.com",
		Role:             user.RoleClinician,
		AllowedHospitals: []string{"Hospital São Paulo"},
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&appStateRow{})
		Expect(err).NotTo(HaveOccurred())

		repo = storage.NewSessionRepository(db)
	})

	It("should round-trip the principal and token", func() {
		Expect(repo.SaveSession(principal, "token-abc")).To(Succeed())

		got, token, err := repo.LoadSession()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("token-abc"))
		Expect(got.ID).To(Equal("user_1"))
		Expect(got.AllowedHospitals).To(Equal([]string{"Hospital São Paulo"}))
	})

	It("should return nils when no session was ever saved", func() {
		got, token, err := repo.LoadSession()

		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNil())
		Expect(token).To(BeEmpty())
	})

	It("should overwrite the previous session on a new login", func() {
		Expect(repo.SaveSession(principal, "token-abc")).To(Succeed())

		other := &user.Principal{ID: "user_admin", Name: "Administrador", Email: "admin@auditoria.com", Role: user.RoleAdministrator}
		Expect(repo.SaveSession(other, "token-def")).To(Succeed())

		got, token, err := repo.LoadSession()
		Expect(err).NotTo(HaveOccurred())
		Expect(token).To(Equal("token-def"))
		Expect(got.ID).To(Equal("user_admin"))

		var count int64
		Expect(db.Model(&appStateRow{}).Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(2)))
	})

	It("should clear the session", func() {
		Expect(repo.SaveSession(principal, "token-abc")).To(Succeed())
		Expect(repo.ClearSession()).To(Succeed())

		got, _, err := repo.LoadSession()
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNil())
	})

	It("should tolerate clearing an absent session", func() {
		Expect(repo.ClearSession()).To(Succeed())
	})
})
