package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	admissionStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/report"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/store"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/pkg/logger"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every admission as an XLSX workbook",
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

		admissions, err := admissionStorage.NewAdmissionRepository(db).ListAll()
		if err != nil {
			log.Fatalf("failed to list admissions: %v", err)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()

		if err := report.WriteAdmissionsXLSX(f, admissions); err != nil {
			log.Fatalf("failed to write workbook: %v", err)
		}

		logger.L().Info("export written", "path", exportOut, "admissions", len(admissions))
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "internacoes.xlsx", "output file path")
}
