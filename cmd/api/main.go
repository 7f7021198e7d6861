package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/config"
	dbpkg "github.com/Artssj1234/reservaciones-alegres-sub000/internal/db"
	infraRepo "github.com/Artssj1234/reservaciones-alegres-sub000/internal/infra/repository"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/metrics"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/middleware"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/routes"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/timezone"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := timezone.Clock(cfg.Timezone)

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	sweeper := worker.NewHoldSweeper(
		infraRepo.NewAppointmentGormRepository(db, clock),
		cfg.Booking.HoldSweepInterval,
		clock,
		log,
	)
	go sweeper.Run(ctx)

	if cfg.Log.Format != "console" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Log:     log,
		Audit:   dispatcher,
		Limiter: newLimiter(ctx, cfg, log),
		Clock:   clock,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("timezone", cfg.Timezone).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Log.Format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stdout)
	}
	return log.Level(level).With().Timestamp().Str("service", "reservas-api").Logger()
}

// newLimiter shares the public rate limit through Redis when configured and
// falls back to a per-process limiter otherwise.
func newLimiter(ctx context.Context, cfg *config.Config, log zerolog.Logger) middleware.Limiter {
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := rdb.Ping(pingCtx).Err()
		if err == nil {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiter backed by redis")
			return middleware.NewRedisLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)
		}

		log.Warn().Err(err).Msg("redis unavailable, using in-process rate limiter")
		_ = rdb.Close()
	}

	return middleware.NewLocalLimiter(cfg.RateLimitPerMinute)
}
