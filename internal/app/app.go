package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/auth"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/config"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/event"
	handler "github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/handler/http"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository/postgres"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/service"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/migrations"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/database"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/health"
	pkgkafka "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/kafka"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/tracing"
)

// App wires together all dependencies and runs the hospital server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "hospital-server",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.PostgresConfig()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)
	database.RegisterPoolMetrics(pool, "hospital")

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	eventProducer := event.NewProducer(producer, logger)

	userRepo := postgres.NewUserRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	recordRepo := postgres.NewRecordRepository(pool)

	authService := service.NewAuthService(userRepo, tokens, eventProducer, logger)
	patientService := service.NewPatientService(patientRepo, logger)
	appointmentService := service.NewAppointmentService(appointmentRepo, eventProducer, logger)
	recordService := service.NewRecordService(recordRepo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterDeps{
		AuthService:        authService,
		PatientService:     patientService,
		AppointmentService: appointmentService,
		RecordService:      recordService,
		TokenManager:       tokens,
		HealthHandler:      healthHandler,
		Logger:             logger,
		CORS: handler.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		StaticDir: cfg.StaticDir,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests (5s budget).
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 4. Close PostgreSQL pool.
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
