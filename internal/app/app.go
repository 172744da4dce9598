package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/memstore"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (DB, Redis, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	workers   []worker
	bgCancels []context.CancelFunc
	bgWG      sync.WaitGroup
}

// worker is a background loop that runs until its context is cancelled.
type worker interface {
	Run(ctx context.Context) error
}

// New bootstraps the logger, Postgres, optional Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	var (
		store repository.Store
		pool  *pgxpool.Pool
		deps  []server.Dependency
	)
	if cfg.Trivia.InMemory() || cfg.Postgres == nil {
		store = memstore.NewSeeded()
		logger.Warn().Msg("using in-memory question store; changes are lost on restart")
	} else {
		var err error
		pool, err = newPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		store = sqlcgen.New(pool)
		deps = append(deps, server.Dependency{Name: "postgres", Ping: pool.Ping})
	}

	var (
		redisClient *redis.Client
		publisher   question.Publisher
		workers     []worker
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		redisPublisher := question.NewRedisPublisher(redisClient, cfg.Redis.Channel)
		publisher = redisPublisher
		deps = append(deps, server.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		workers = append(workers, question.NewListener(redisClient, redisPublisher.Channel(), nil, logger))
		logger.Info().Str("channel", redisPublisher.Channel()).Msg("question events enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not configured; question events disabled")
	}

	questionRepo := repository.NewQuestionRepository(store)
	categoryRepo := repository.NewCategoryRepository(store)

	questionSvc := question.NewService(questionRepo, categoryRepo, logger, question.ServiceOptions{
		StrictValidation: cfg.Trivia.StrictValidation,
		Publisher:        publisher,
	})

	handler := server.NewHandler(cfg, logger, server.Routes{
		Questions:    question.NewHTTPHandler(questionSvc, logger),
		Registry:     server.NewRegistry(),
		Dependencies: deps,
	})

	return &Application{
		cfg:     cfg,
		logger:  logger,
		pool:    pool,
		redis:   redisClient,
		http:    server.NewHTTPServer(cfg, handler),
		workers: workers,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}
	a.bgWG.Wait()

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	for _, w := range a.workers {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		a.bgWG.Add(1)
		go func(w worker) {
			defer a.bgWG.Done()
			if err := w.Run(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Warn().Err(err).Msg("background worker stopped")
			}
		}(w)
	}
}

func newPool(ctx context.Context, pg *config.Postgres) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(pg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if pg.MaxConns > 0 {
		poolCfg.MaxConns = pg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}
