package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oneirolab/oneiro-backend/internal/adapter/gcs"
	"github.com/oneirolab/oneiro-backend/internal/adapter/gemini"
	"github.com/oneirolab/oneiro-backend/internal/adapter/openai"
	"github.com/oneirolab/oneiro-backend/internal/adapter/postgres"
	dreamrepo "github.com/oneirolab/oneiro-backend/internal/adapter/postgres/dream"
	tagrepo "github.com/oneirolab/oneiro-backend/internal/adapter/postgres/tag"
	"github.com/oneirolab/oneiro-backend/internal/auth"
	"github.com/oneirolab/oneiro-backend/internal/config"
	"github.com/oneirolab/oneiro-backend/internal/service/account"
	"github.com/oneirolab/oneiro-backend/internal/service/analysis"
	"github.com/oneirolab/oneiro-backend/internal/service/tag"
	"github.com/oneirolab/oneiro-backend/internal/service/vision"
	"github.com/oneirolab/oneiro-backend/internal/transport/middleware"
	"github.com/oneirolab/oneiro-backend/internal/transport/rest"
)

// Run wires the application together and serves HTTP until ctx is
// cancelled. The database and the image pipeline are both optional:
// without a DSN analyses are returned unpersisted, and without an OpenAI
// key visualization requests answer 503.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	var pool *pgxpool.Pool
	if cfg.Database.Configured() {
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
	} else {
		logger.Warn("no database configured, dreams will not be persisted")
	}

	textGen, err := gemini.NewClient(ctx, cfg.Gemini, logger)
	if err != nil {
		return fmt.Errorf("init gemini client: %w", err)
	}

	var handlers rest.Handlers
	if pool != nil {
		dreams := dreamrepo.New(pool)
		tags := tagrepo.New(pool)

		visionSvc, closeStore := buildVisionService(ctx, cfg, logger, dreams)
		defer closeStore()

		handlers.Health = rest.NewHealthHandler(pool, BuildVersion())
		handlers.Dream = rest.NewDreamHandler(
			analysis.NewService(logger, textGen, dreams, tags),
			visionSvc,
			logger,
		)
		handlers.Tag = rest.NewTagHandler(tag.NewService(logger, tags), logger)
		handlers.Account = rest.NewAccountHandler(account.NewService(logger, dreams), logger)
	} else {
		handlers.Health = rest.NewHealthHandler(nil, BuildVersion())
		handlers.Dream = rest.NewDreamHandler(
			analysis.NewService(logger, textGen, nil, nil),
			vision.NewService(logger, cfg.Vision, nil, nil, nil),
			logger,
		)
		handlers.Tag = rest.NewTagHandler(tag.NewService(logger, nil), logger)
		handlers.Account = rest.NewAccountHandler(account.NewService(logger, nil), logger)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	}

	if cfg.RateLimit.Enabled {
		apiLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMin, 5*time.Minute)
		defer apiLimiter.Stop()
		chain = append(chain, apiLimiter.Middleware())

		genLimiter := middleware.NewRateLimiter(cfg.RateLimit.GenerationPerMin, 5*time.Minute)
		defer genLimiter.Stop()
		handlers.GenerationLimit = genLimiter.Middleware()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(chain...)(rest.NewRouter(handlers)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// buildVisionService assembles the visualization pipeline. Any missing
// piece leaves the service in a not-configured state that surfaces as a
// 503 to callers rather than failing startup. The returned cleanup
// releases the storage client and is never nil.
func buildVisionService(ctx context.Context, cfg *config.Config, logger *slog.Logger, dreams *dreamrepo.Repo) (*vision.Service, func()) {
	disabled := vision.NewService(logger, cfg.Vision, nil, nil, nil)

	if cfg.OpenAI.APIKey == "" || !cfg.Storage.Configured() {
		logger.Warn("image pipeline not configured, visualization disabled")
		return disabled, func() {}
	}

	store, err := gcs.NewStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("image storage unavailable, visualization disabled",
			slog.String("error", err.Error()))
		return disabled, func() {}
	}

	images := openai.NewClient(cfg.OpenAI, logger)
	svc := vision.NewService(logger, cfg.Vision, dreams, images, store)
	return svc, func() { _ = store.Close() }
}
