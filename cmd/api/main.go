package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	exteriorchat "exterior_chat_backend"
	"exterior_chat_backend/internal/dialogue"
	"exterior_chat_backend/internal/dialogue/session"
	"exterior_chat_backend/internal/events"
	apphttp "exterior_chat_backend/internal/http"
	"exterior_chat_backend/internal/http/router"
	"exterior_chat_backend/internal/leadsink"
	"exterior_chat_backend/internal/messenger"
	"exterior_chat_backend/internal/notify"
	"exterior_chat_backend/platform/config"
	"exterior_chat_backend/platform/db"
	"exterior_chat_backend/platform/logger"
	"exterior_chat_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Postgres is optional: without it leads are still forwarded and the
	// conversation works, they just are not persisted.
	var pool *pgxpool.Pool
	if cfg.IsDatabaseEnabled() {
		migrations, err := fs.Sub(exteriorchat.Migrations, "migrations")
		if err != nil {
			panic("failed to load embedded migrations: " + err.Error())
		}

		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, migrations)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")
	} else {
		log.Warn("DATABASE_URL not configured; booked leads will not be persisted")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Session store: Redis when configured so conversations survive restarts,
	// in-memory otherwise.
	var store session.Store
	var memStore *session.MemoryStore
	if cfg.IsRedisEnabled() {
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("failed to parse redis url", "error", err)
			panic("failed to parse redis url: " + err.Error())
		}
		store = session.NewRedisStore(redis.NewClient(opt), cfg.GetSessionIdleTTL())
		log.Info("session store initialized", "backend", "redis")
	} else {
		memStore = session.NewMemoryStore()
		store = memStore
		log.Info("session store initialized", "backend", "memory")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	sender := messenger.NewClient(cfg, log)

	// Lead sink subscribes to booking events (not HTTP-facing)
	var leadWriter leadsink.LeadWriter
	if pool != nil {
		leadWriter = leadsink.NewRepository(pool)
	}
	var forwarder leadsink.Forwarder
	if cfg.IsRedisEnabled() && cfg.IsCRMForwardEnabled() {
		forwardClient, err := leadsink.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize lead forward client", "error", err)
			panic("failed to initialize lead forward client: " + err.Error())
		}
		defer func() {
			_ = forwardClient.Close()
		}()
		forwarder = forwardClient
	}
	leadsink.NewService(leadWriter, forwarder, val, log).Subscribe(eventBus)

	// Handoff alerts over email (not HTTP-facing)
	var alertSender notify.AlertSender
	if smtp := notify.NewSMTPSender(cfg); smtp != nil {
		alertSender = smtp
	}
	notify.NewService(alertSender, log).Subscribe(eventBus)

	dialogueModule, err := dialogue.NewModule(cfg, store, sender, eventBus, log)
	if err != nil {
		log.Error("failed to initialize dialogue module", "error", err)
		panic("failed to initialize dialogue module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Env:      cfg.Env,
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			dialogueModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// The memory store needs a janitor; Redis expires sessions on its own.
	if memStore != nil {
		g.Go(func() error {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if n := memStore.EvictIdle(cfg.GetSessionIdleTTL()); n > 0 {
						log.Info("idle sessions evicted", "count", n)
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
	log.Info("server stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
