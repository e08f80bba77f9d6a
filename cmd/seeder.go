package cmd

import (
	"log"

	"github.com/spf13/cobra"

	admissionStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission/storage"
	annotationStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/annotation/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/seed"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/store"
	userStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the audit store with the bootstrap roster and sample admissions",
	Long:  `Populates an empty store with the bootstrap users, admissions and annotations. Safe to re-run; an already-populated store is left untouched apart from the administrator self-heal.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		db, err := store.Open(cfg.Database)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}

		if clearData {
			for _, table := range []string{"annotations", "admissions", "users", "app_state"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			logger.L().Info("cleared existing data before seeding")
		}

		loader := seed.NewLoader(
			userStorage.NewUserRepository(db),
			admissionStorage.NewAdmissionRepository(db),
			annotationStorage.NewAnnotationRepository(db),
			cfg.Security.BCryptCost,
			logger.L(),
		)

		if err := loader.Run(); err != nil {
			log.Fatalf("failed to seed store: %v", err)
		}

		logger.L().Info("seeding complete", "admin_email", seed.AdminEmail)
	},
}
