package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"barangay/internal/audit"
	audithandler "barangay/internal/audit/handler"
	authhandler "barangay/internal/auth/handler"
	authmodels "barangay/internal/auth/models"
	authservice "barangay/internal/auth/service"
	authstore "barangay/internal/auth/store"
	"barangay/internal/auth/token"
	"barangay/internal/clearance/generator"
	clearancemetrics "barangay/internal/clearance/metrics"
	"barangay/internal/docs/gdocs"
	"barangay/internal/notify"
	"barangay/internal/platform/config"
	"barangay/internal/platform/httpserver"
	"barangay/internal/platform/logger"
	"barangay/internal/platform/metrics"
	"barangay/internal/platform/postgres"
	"barangay/internal/platform/redis"
	registrationhandler "barangay/internal/registration/handler"
	registrationservice "barangay/internal/registration/service"
	registrationstore "barangay/internal/registration/store"
	residenthandler "barangay/internal/resident/handler"
	residentmodels "barangay/internal/resident/models"
	residentstore "barangay/internal/resident/store"
	submissionhandler "barangay/internal/submission/handler"
	submissionservice "barangay/internal/submission/service"
	submissionstore "barangay/internal/submission/store"
	httptransport "barangay/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// residentStore is the union of what the resident handler and the submission
// and registration services need, satisfied by both storage backends.
type residentStore interface {
	Create(ctx context.Context, r *residentmodels.Resident) error
	FindByID(ctx context.Context, id uuid.UUID) (*residentmodels.Resident, error)
	FindByNameAndBirthdate(ctx context.Context, firstName, lastName string, birthdate time.Time) (*residentmodels.Resident, error)
	List(ctx context.Context, filter residentstore.Filter) ([]*residentmodels.Resident, error)
}

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	health := map[string]httptransport.HealthChecker{}

	var (
		submissions   submissionservice.SubmissionStore
		residents     residentStore
		registrations registrationservice.RegistrationStore
		auditStore    audit.Store
	)
	if cfg.PostgresDSN != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Error("failed to migrate schema", "error", err)
			os.Exit(1)
		}
		submissions = submissionstore.NewPostgres(pool)
		residents = residentstore.NewPostgres(pool)
		registrations = registrationstore.NewPostgres(pool)
		auditStore = audit.NewPostgres(pool)
		health["postgres"] = pool.Ping
		log.Info("using postgres storage")
	} else {
		submissions = submissionstore.NewInMemory()
		residents = residentstore.NewInMemory()
		registrations = registrationstore.NewInMemory()
		auditStore = audit.NewInMemory()
		log.Warn("no postgres DSN configured, using in-memory storage")
	}

	var sessions authservice.SessionStore = authstore.NewInMemorySessions()
	if cfg.RedisURL != "" {
		rc, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		sessions = authstore.NewRedisSessions(rc.Client)
		health["redis"] = rc.Health
	}

	admins := authstore.NewInMemoryAdmins()
	admins.Seed(seedAdmin(cfg, log))

	publisher := audit.NewPublisher(log)
	worker := audit.NewWorker(auditStore, publisher.Inbox(), log)

	notifier := notify.NewLogNotifier(log)

	tokens := token.NewService(cfg.JWTSigningKey, "barangay")
	auth := authservice.New(admins, sessions, tokens,
		authservice.WithLogger(log),
		authservice.WithSessionTTL(cfg.SessionTTL),
		authservice.WithAuditPublisher(publisher),
	)

	if cfg.Docs.ClientID == "" {
		log.Warn("docs provider credentials not configured, document generation will fail")
	}
	provider := gdocs.New(gdocs.Config{
		ClientID:     cfg.Docs.ClientID,
		ClientSecret: cfg.Docs.ClientSecret,
		RefreshToken: cfg.Docs.RefreshToken,
	}, log)
	gen := generator.New(provider, generator.Config{
		Templates:     cfg.Docs.Templates,
		FolderID:      cfg.Docs.FolderID,
		PhotoFolderID: cfg.Docs.PhotoFolderID,
	}, log, generator.WithMetrics(clearancemetrics.New()))

	submissionSvc := submissionservice.New(submissions, residents, gen,
		submissionservice.WithLogger(log),
		submissionservice.WithAuditPublisher(publisher),
		submissionservice.WithNotifier(notifier),
		submissionservice.WithMetrics(m),
	)
	registrationSvc := registrationservice.New(registrations, residents,
		registrationservice.WithLogger(log),
		registrationservice.WithAuditPublisher(publisher),
		registrationservice.WithNotifier(notifier),
		registrationservice.WithMetrics(m),
	)

	router := httptransport.NewRouter(httptransport.Config{
		Logger:  log,
		Metrics: m,
		Handlers: []httptransport.Registrar{
			authhandler.New(auth, log),
			submissionhandler.New(submissionSvc, log, auth),
			registrationhandler.New(registrationSvc, log, auth),
			residenthandler.New(residents, log, auth),
			audithandler.New(auditStore, log, auth),
		},
		Health: health,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && gctx.Err() == nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// seedAdmin builds the bootstrap staff account. Without a configured password
// hash a development-only credential is generated so local setups can log in.
func seedAdmin(cfg config.Config, log *slog.Logger) *authmodels.Admin {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		generated, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			log.Error("failed to generate development credential", "error", err)
			os.Exit(1)
		}
		hash = string(generated)
		log.Warn("no admin password hash configured, using development credential",
			"username", cfg.AdminUsername)
	}
	return &authmodels.Admin{
		ID:           uuid.New(),
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		DisplayName:  cfg.AdminDisplayName,
		CreatedAt:    time.Now().UTC(),
	}
}
