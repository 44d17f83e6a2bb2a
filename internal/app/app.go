package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/domain/contact"
	"github.com/riskibarqy/tournament-registration/internal/domain/formconfig"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"github.com/riskibarqy/tournament-registration/internal/domain/room"
	"github.com/riskibarqy/tournament-registration/internal/domain/schedule"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/account/introspect"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/account/jwtsession"
	cachedrepo "github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-registration/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/tournament-registration/internal/platform/cache"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/resilience"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

type repositories struct {
	configs     registration.Repository
	teams       team.Repository
	schedules   schedule.Repository
	rooms       room.Repository
	contacts    contact.Repository
	formConfigs formconfig.Repository
	db          *sqlx.DB
}

// NewHTTPServer wires storage, services and the router. The returned cleanup releases the
// database pool, if one was opened.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if repos.db == nil {
			return nil
		}
		return repos.db.Close()
	}

	var (
		metrics        *usecase.Metrics
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics = usecase.NewMetrics(registry)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	ids := idgen.NewUUIDGenerator()
	teamService := usecase.NewTeamService(repos.teams, cfg.MatchSize, logger.Named("teams"))
	handler := httpapi.NewHandler(
		usecase.NewRegistrationService(repos.configs, repos.teams, metrics, logger.Named("registration")),
		usecase.NewSubmissionService(repos.configs, repos.teams, ids, metrics, logger.Named("submission")),
		teamService,
		usecase.NewDashboardService(repos.configs, repos.teams),
		usecase.NewScheduleService(repos.schedules, ids),
		usecase.NewRoomService(repos.rooms, teamService, ids, logger.Named("rooms")),
		usecase.NewContactService(repos.contacts, ids, logger.Named("contact")),
		usecase.NewFormConfigService(repos.formConfigs, logger.Named("formconfig")),
		logger.Named("httpapi"),
	)

	verifier, err := newTokenVerifier(cfg, logger)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	router := httpapi.NewRouter(handler, verifier, httpapi.RouterOptions{
		Logger:             logger.Named("http"),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SessionCookie:      cfg.AuthSessionCookie,
		Metrics:            metricsHandler,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			configs:     postgres.NewRegistrationConfigRepository(db),
			teams:       postgres.NewTeamRegistrationRepository(db),
			schedules:   postgres.NewScheduleRepository(db),
			rooms:       postgres.NewRoomRepository(db),
			contacts:    postgres.NewContactRepository(db),
			formConfigs: postgres.NewFormConfigRepository(db),
			db:          db,
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL))
	case config.StorageMemory, "":
		store := memory.NewStore(idgen.NewUUIDGenerator())
		repos = repositories{
			configs:     memory.NewRegistrationConfigRepository(store),
			teams:       memory.NewTeamRegistrationRepository(store),
			schedules:   memory.NewScheduleRepository(store),
			rooms:       memory.NewRoomRepository(store),
			contacts:    memory.NewContactRepository(store),
			formConfigs: memory.NewFormConfigRepository(store),
		}
		logger.Warn("storage ready", "driver", config.StorageMemory, "note", "data is lost on restart")
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		repos.schedules = cachedrepo.NewScheduleRepository(repos.schedules, basecache.NewStore[[]schedule.Schedule](cfg.CacheTTL))
	}
	return repos, nil
}

func newTokenVerifier(cfg config.Config, logger *logging.Logger) (httpapi.TokenVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeJWT, "":
		if cfg.AuthJWTSecret == "" {
			return nil, errors.New("jwt session secret is empty")
		}
		return jwtsession.NewVerifier(cfg.AuthJWTSecret), nil
	case config.AuthModeIntrospect:
		httpClient := &http.Client{
			Timeout:   cfg.AccountTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
		return introspect.NewClient(httpClient, introspect.Config{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			CacheTTL:       cfg.AccountCacheTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailureCount,
				OpenTimeout:      cfg.AccountCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
			},
		}, logger.Named("account")), nil
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
	}
}
