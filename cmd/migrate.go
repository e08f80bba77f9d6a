package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/store"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/pkg/logger"
)

var migrateCmd = &cobra.Command{
	RunE:  runMigration,
	Use:   "migrate",
	Short: "apply pending schema migrations to the audit store",
}

func runMigration(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	// Open runs every pending migration before returning
	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	logger.L().Info("store migrated", "driver", cfg.Database.Driver)
	return nil
}
