// @title        SmartCare Clinic API
// @version      1.0
// @description  Appointments and prescriptions for the SmartCare clinic.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/smartcare/clinic-api/internal/api"
	"github.com/smartcare/clinic-api/internal/api/handler"
	"github.com/smartcare/clinic-api/internal/core/ports"
	"github.com/smartcare/clinic-api/internal/core/service"
	"github.com/smartcare/clinic-api/internal/infrastructure/config"
	"github.com/smartcare/clinic-api/internal/infrastructure/db/mongo"
	"github.com/smartcare/clinic-api/internal/infrastructure/db/redis"
	"github.com/smartcare/clinic-api/internal/infrastructure/db/sql"
	"github.com/smartcare/clinic-api/internal/infrastructure/kafka"
	"github.com/smartcare/clinic-api/internal/infrastructure/queue"
	"github.com/smartcare/clinic-api/pkg/logger"
)

const (
	shutdownTimeout  = 10 * time.Second
	defaultSQLiteDSN = "file:smartcare.db?_pragma=busy_timeout(5000)"
)

// stores bundles the repositories of the selected backend.
type stores struct {
	name          string
	users         ports.UserRepository
	appointments  ports.AppointmentRepository
	prescriptions ports.PrescriptionRepository
	audit         ports.AuditSink
	ping          handler.Pinger
	close         func(ctx context.Context) error
}

func main() {
	// A missing .env file is fine: production reads the real environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "smartcare-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error().Err(err).Str("store", st.name).Msg("failed to close store")
		}
	}()
	log.Info().Str("store", st.name).Msg("store connected")

	checks := map[string]handler.Pinger{st.name: st.ping}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		checks["redis"] = redis.Pinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	// --- Audit trail ---
	sinks := []ports.AuditSink{st.audit}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher := kafka.NewAuditPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		sinks = append(sinks, publisher)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("audit stream enabled")
	}
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, log, sinks...)
	dispatcher.Start(context.Background())
	defer dispatcher.Close()

	// --- Core services ---
	creds := service.NewCredentialStore(st.users, log)
	seeded, err := creds.SeedDefaults(ctx, service.DefaultSeedUsers(cfg.Seed.AdminPassword, cfg.Seed.DoctorPassword))
	if err != nil {
		return err
	}
	if seeded > 0 {
		log.Info().Int("users", seeded).Msg("seeded default users")
	}

	var sessions ports.SessionManager
	var bookings ports.BookingCache
	if cfg.Auth.Mode == "session" {
		sessions = redis.NewSessionStore(rdb, cfg.Auth.SessionTTL)
	} else {
		sessions = service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	}
	if rdb != nil {
		bookings = redis.NewBookingCache(rdb)
	}

	router := api.NewRouter(api.Deps{
		Auth:           service.NewAuthService(creds, sessions, dispatcher, log),
		Sessions:       sessions,
		Appointments:   service.NewAppointmentService(st.appointments, creds, bookings, dispatcher, log),
		Prescriptions:  service.NewPrescriptionService(st.prescriptions, creds, dispatcher, log),
		Doctors:        creds,
		HealthChecks:   checks,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CookieSecure:   cfg.Auth.CookieSecure,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("auth_mode", string(sessions.Mode())).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres, config.StoreSQLite:
		dsn := cfg.SQL.DSN
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		db, err := sql.Open(sql.Config{Driver: cfg.StoreDriver, DSN: dsn, Debug: cfg.SQL.Debug})
		if err != nil {
			return nil, err
		}
		return &stores{
			name:          cfg.StoreDriver,
			users:         sql.NewUserRepository(db),
			appointments:  sql.NewAppointmentRepository(db),
			prescriptions: sql.NewPrescriptionRepository(db),
			audit:         sql.NewAuditRepository(db),
			ping:          sql.Pinger(db),
			close:         func(context.Context) error { return sql.Close(db) },
		}, nil

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			name:          "mongodb",
			users:         mongo.NewUserRepository(db),
			appointments:  mongo.NewAppointmentRepository(db),
			prescriptions: mongo.NewPrescriptionRepository(db),
			audit:         mongo.NewAuditRepository(db),
			ping:          mongo.Pinger(db),
			close:         client.Disconnect,
		}, nil
	}
}
