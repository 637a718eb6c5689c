package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/helmdesk/ops-server-go/internal/config"
	"github.com/helmdesk/ops-server-go/internal/database"
	"github.com/helmdesk/ops-server-go/internal/handler"
	"github.com/helmdesk/ops-server-go/internal/jobs"
	"github.com/helmdesk/ops-server-go/internal/middleware"
	"github.com/helmdesk/ops-server-go/internal/migrations"
	"github.com/helmdesk/ops-server-go/internal/redis"
	"github.com/helmdesk/ops-server-go/internal/repository"
	"github.com/helmdesk/ops-server-go/internal/service"
	"github.com/helmdesk/ops-server-go/internal/tenancy"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	applied, err := migrations.Apply(context.Background(), db.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	if applied > 0 {
		log.Info().Int("count", applied).Msg("migrations applied")
	}

	// A store without the expected row policies would serve requests
	// unfiltered; refuse to start rather than run open.
	if err := tenancy.VerifyPolicies(context.Background(), db.DB); err != nil {
		log.Fatal().Err(err).Msg("row policy verification failed")
	}
	log.Info().Msg("row policies verified")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	propagator := tenancy.NewPropagator(db.DB)

	workOrderRepo := repository.NewWorkOrderRepository()
	documentRepo := repository.NewDocumentRepository()
	portalUserRepo := repository.NewPortalUserRepository()
	portalSessionRepo := repository.NewPortalSessionRepository()

	workOrderService := service.NewWorkOrderService(propagator, workOrderRepo, portalUserRepo)
	documentService := service.NewDocumentService(propagator, documentRepo, portalUserRepo)

	scopeMiddleware := middleware.NewScopeMiddleware(middleware.NewHeaderClaimsResolver(cfg.GatewayKey))
	rateLimitMiddleware := middleware.NewRedisRateLimitMiddleware(redisClient.Client)

	workOrderHandler := handler.NewWorkOrderHandler(workOrderService)
	documentHandler := handler.NewDocumentHandler(documentService)
	healthHandler := handler.NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/v1", func(r chi.Router) {
		r.Use(scopeMiddleware.Handler)
		r.Use(rateLimitMiddleware.Handler)

		r.Route("/work-orders", func(r chi.Router) {
			r.Use(middleware.RequireAudience(
				tenancy.AudienceInternalWeb,
				tenancy.AudienceInternalStudio,
				tenancy.AudienceExternalPortal,
			))
			r.Mount("/", workOrderHandler.Routes())
		})

		r.Route("/documents", func(r chi.Router) {
			r.Use(middleware.RequireAudience(
				tenancy.AudienceInternalWeb,
				tenancy.AudienceInternalStudio,
				tenancy.AudienceExternalPortal,
			))
			r.Mount("/", documentHandler.Routes())
		})
	})

	cleanupJob := jobs.NewCleanupJob(propagator, portalSessionRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
