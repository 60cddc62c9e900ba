package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Burhanmalu/LUMARIYA/auth"
	"github.com/Burhanmalu/LUMARIYA/config"
	"github.com/Burhanmalu/LUMARIYA/database"
	"github.com/Burhanmalu/LUMARIYA/events"
	"github.com/Burhanmalu/LUMARIYA/logger"
	"github.com/Burhanmalu/LUMARIYA/metrics"
	"github.com/Burhanmalu/LUMARIYA/routes"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
	gin.SetMode(gin.ReleaseMode)

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if err := database.Setup(cfg, db, log); err != nil {
		return err
	}

	var states auth.StateStore = auth.NewSignedStateStore(cfg.JWTSecret)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using signed oauth state")
		} else {
			states = auth.NewRedisStateStore(rdb)
		}
	}

	hub := events.NewHub()
	publishers := events.Multi{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, log)
		defer kafka.Close()
		publishers = append(publishers, kafka)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaOrderTopic).Msg("kafka order events enabled")
	}

	var providers []*auth.Provider
	if cfg.Google.Enabled() {
		providers = append(providers, auth.GoogleProvider(cfg))
	}
	if cfg.Facebook.Enabled() {
		providers = append(providers, auth.FacebookProvider(cfg))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return err
	}

	router := routes.NewRouter(routes.Deps{
		DB:        db,
		Config:    cfg,
		Tokens:    auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		States:    states,
		Providers: providers,
		Publisher: publishers,
		Hub:       hub,
		Metrics:   metrics.NewServerMetrics("api"),
		Log:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Int("oauth_providers", len(providers)).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
