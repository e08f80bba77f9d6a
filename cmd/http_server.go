package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/access"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission"
	admissionStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/admission/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/annotation"
	annotationStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/annotation/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth"
	authStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/auth/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/report"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/seed"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/store"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transcription"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/transport/rest"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user"
	userStorage "github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/internal/user/storage"
	"github.com/viniciuscarvalho-afk/Trasncricao-Hospitalar/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unwrap store handle: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, sqlDB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			deps.Logger.Error("store close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.L()

	db, err := store.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	userRepo := userStorage.NewUserRepository(db)
	admissionRepo := admissionStorage.NewAdmissionRepository(db)
	annotationRepo := annotationStorage.NewAnnotationRepository(db)
	sessionRepo := authStorage.NewSessionRepository(db)

	// seeding is idempotent; the admin self-heal runs every start
	loader := seed.NewLoader(userRepo, admissionRepo, annotationRepo, cfg.Security.BCryptCost, log)
	if err := loader.Run(); err != nil {
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	tokens := auth.NewJWTTokenGenerator(cfg.Security.TokenSecret, cfg.Security.TokenDuration)
	authService := auth.NewService(userRepo, sessionRepo, tokens, log)
	userService := user.NewService(userRepo, log)
	admissionService := admission.NewService(admissionRepo, userRepo, log)
	filter := access.NewFilter(admissionRepo, log)

	transcriber := transcription.NewMockClient(cfg.Transcription.MockDelay, log)
	annotationService := annotation.NewService(annotationRepo, admissionRepo, transcriber, cfg.Transcription.CallTimeout, log)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService, log),
		User:       user.NewHandler(userService, log),
		Admission:  admission.NewHandler(admissionService, filter, log),
		Annotation: annotation.NewHandler(annotationService, admissionRepo, filter, log),
		Access:     access.NewHandler(filter, log),
		Report:     report.NewHandler(filter, log),
	}

	return &Dependencies{
		Config:   cfg,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Logger:   log,
	}, nil
}
