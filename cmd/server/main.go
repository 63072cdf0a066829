// main wires the contact registry's dependencies: storage pools, reference
// data, the search and prisoner services, the event outbox pipeline, and the
// HTTP surface. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"contact-registry/internal/events/kafka"
	eventspostgres "contact-registry/internal/events/store/postgres"
	"contact-registry/internal/events/worker"
	"contact-registry/internal/platform/config"
	"contact-registry/internal/platform/httpserver"
	"contact-registry/internal/platform/logger"
	"contact-registry/internal/platform/metrics"
	"contact-registry/internal/platform/middleware"
	"contact-registry/internal/platform/postgres"
	platformredis "contact-registry/internal/platform/redis"
	"contact-registry/internal/platform/tx"
	"contact-registry/internal/prisoner/attributes"
	prisonerhandler "contact-registry/internal/prisoner/handler"
	"contact-registry/internal/prisoner/merge"
	prisonermetrics "contact-registry/internal/prisoner/metrics"
	"contact-registry/internal/prisoner/restrictions"
	attributestore "contact-registry/internal/prisoner/store/attribute"
	restrictionstore "contact-registry/internal/prisoner/store/restriction"
	"contact-registry/internal/referencedata"
	refpostgres "contact-registry/internal/referencedata/store/postgres"
	"contact-registry/internal/search"
	searchhandler "contact-registry/internal/search/handler"
	searchmetrics "contact-registry/internal/search/metrics"
	contactstore "contact-registry/internal/search/store/contact"
	revisionstore "contact-registry/internal/search/store/revision"
	"contact-registry/pkg/phonetic"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	// Reference data, cached when redis is configured.
	var refStore referencedata.Store = refpostgres.New(pool)
	if redisClient != nil {
		refStore = referencedata.NewCachedStore(refStore, redisClient.Client, cfg.ReferenceCacheTTL)
	}
	refdata, err := referencedata.New(refStore, referencedata.WithLogger(log))
	if err != nil {
		log.Error("failed to build reference data service", "error", err)
		os.Exit(1)
	}

	// Search.
	keyer := phonetic.Soundex{}
	resolver, err := search.NewResolver(contactstore.NewPostgres(pool), revisionstore.NewPostgres(pool), cfg.HistoryRowLimit)
	if err != nil {
		log.Error("failed to build search resolver", "error", err)
		os.Exit(1)
	}
	searchService := search.New(
		search.NewSelector(keyer),
		resolver,
		search.WithLogger(log),
		search.WithMetrics(searchmetrics.New()),
	)

	// Prisoner reconciliation.
	reconciler, err := attributes.New(attributestore.NewPostgres(pool), refdata, attributes.WithLogger(log))
	if err != nil {
		log.Error("failed to build attribute reconciler", "error", err)
		os.Exit(1)
	}
	differ, err := restrictions.New(restrictionstore.NewPostgres(pool), refdata, restrictions.WithLogger(log))
	if err != nil {
		log.Error("failed to build restriction differ", "error", err)
		os.Exit(1)
	}

	outbox := eventspostgres.New(pool)
	orchestrator, err := merge.New(reconciler, differ, outbox, tx.NewPgxRunner(pool),
		merge.WithLogger(log),
		merge.WithMetrics(prisonermetrics.New()),
	)
	if err != nil {
		log.Error("failed to build merge orchestrator", "error", err)
		os.Exit(1)
	}

	httpMetrics := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Instrument(httpMetrics))

	router.Get("/health", healthHandler(pool, redisClient))
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.JWTSigningKey, log))
		searchhandler.New(searchService, log).Routes(r)
		prisonerhandler.New(orchestrator, reconciler, differ, log).Routes(r)
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting contact registry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := kafka.New(ctx, cfg.KafkaBrokers, cfg.EventTopic)
		if err != nil {
			log.Error("failed to connect kafka producer", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()

		outboxWorker := worker.New(outbox, publisher, worker.WithLogger(log))
		group.Go(func() error {
			return outboxWorker.Run(groupCtx)
		})
		log.Info("outbox worker started", "topic", cfg.EventTopic)
	} else {
		log.Warn("no kafka brokers configured; domain events stay in the outbox")
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func healthHandler(pool interface {
	Ping(ctx context.Context) error
}, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				http.Error(w, "redis unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
