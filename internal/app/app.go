package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/RubachokBoss/school-backend/internal/config"
	"github.com/RubachokBoss/school-backend/internal/delivery/httpd"
	appmw "github.com/RubachokBoss/school-backend/internal/middleware"
	"github.com/RubachokBoss/school-backend/internal/repository"
	"github.com/RubachokBoss/school-backend/internal/service"
	"github.com/RubachokBoss/school-backend/internal/service/integration"
	"github.com/RubachokBoss/school-backend/internal/service/storage"
	"github.com/RubachokBoss/school-backend/pkg/hash"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type App struct {
	server    *http.Server
	logger    zerolog.Logger
	config    *config.Config
	store     repository.Store
	storage   storage.Storage
	publisher integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger, store repository.Store) (*App, error) {
	fileStorage, err := newStorage(cfg, log)
	if err != nil {
		return nil, err
	}

	publisher := newPublisher(cfg.RabbitMQ, log)

	passwords, err := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	checksums, err := hash.NewFileHasher(cfg.Hash.Algorithm)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(store, passwords, log)
	examService := service.NewExamService(store, publisher, log)
	dashboardService := service.NewDashboardService(store, log)
	studentService := service.NewStudentService(store, passwords, log)
	assignmentService := service.NewAssignmentService(
		store,
		fileStorage,
		checksums,
		publisher,
		service.AssignmentConfig{
			MaxUploadSize:     cfg.Storage.MaxUploadSize,
			AllowedExtensions: cfg.Storage.AllowedExtensions,
		},
		log,
	)

	handler := httpd.NewHandler(
		authService,
		examService,
		dashboardService,
		studentService,
		assignmentService,
		store,
		httpd.Options{
			PublicURL:     cfg.Server.PublicURL,
			MaxUploadSize: cfg.Storage.MaxUploadSize,
		},
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appmw.RequestLogger(log))
	router.Use(appmw.Recovery(log))
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	if cfg.CORS.AllowAll {
		router.Use(appmw.AllowAllOrigins(cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))
	}
	router.Use(appmw.NewCORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
		cfg.CORS.ExposedHeaders,
		cfg.CORS.AllowCredentials,
		cfg.CORS.MaxAge,
	))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:    server,
		logger:    log,
		config:    cfg,
		store:     store,
		storage:   fileStorage,
		publisher: publisher,
	}, nil
}

func newStorage(cfg *config.Config, log zerolog.Logger) (storage.Storage, error) {
	switch cfg.Storage.Provider {
	case "", "local":
		return storage.NewLocalStorage(cfg.Storage.UploadDir, log)
	case "minio":
		return storage.NewMinIOStorage(
			cfg.MinIO.Endpoint,
			cfg.MinIO.AccessKey,
			cfg.MinIO.SecretKey,
			cfg.Storage.BucketName,
			cfg.Storage.Region,
			cfg.MinIO.UseSSL,
			cfg.MinIO.Timeout,
			log,
		)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}

// newPublisher falls back to a no-op publisher when RabbitMQ is disabled or
// unreachable.
func newPublisher(cfg config.RabbitMQConfig, log zerolog.Logger) integration.EventPublisher {
	if !cfg.Enabled {
		return integration.NewNoopPublisher()
	}

	publisher, err := integration.NewRabbitMQPublisher(
		cfg.URL,
		cfg.Exchange,
		cfg.ExamSubmittedKey,
		cfg.AssignmentUploadedKey,
		log,
	)
	if err != nil {
		log.Error().Err(err).Msg("RabbitMQ unavailable, events will not be published")
		return integration.NewNoopPublisher()
	}
	return publisher
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run() error {
	a.logger.Info().
		Str("storage", a.storage.Provider()).
		Msgf("Starting school backend on %s", a.config.Server.Address)

	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down school backend...")

	err := a.server.Shutdown(ctx)

	if perr := a.publisher.Close(); perr != nil {
		a.logger.Error().Err(perr).Msg("Failed to close event publisher")
	}

	if closer, ok := a.storage.(io.Closer); ok {
		if cerr := closer.Close(); cerr != nil {
			a.logger.Error().Err(cerr).Msg("Failed to close file storage")
		}
	}

	if serr := a.store.Close(); serr != nil {
		a.logger.Error().Err(serr).Msg("Failed to close database connection")
	}

	return err
}
