package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vouchervault/voucher-vault/internal/api"
	"github.com/vouchervault/voucher-vault/internal/api/metrics"
	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/ports"
	"github.com/vouchervault/voucher-vault/internal/core/service"
	"github.com/vouchervault/voucher-vault/internal/core/state"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/config"
	mongostore "github.com/vouchervault/voucher-vault/internal/infrastructure/db/mongo"
	redisstore "github.com/vouchervault/voucher-vault/internal/infrastructure/db/redis"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/ledger"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/memory"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/scheduler"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/wallet"
	"github.com/vouchervault/voucher-vault/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Voucher Vault API
// @version         1.0
// @description     Session bootstrap, brand dashboard and voucher minting on the voucher ledger.
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token returned by /auth/brand or /auth/user.

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "voucher-vault",
	})

	if cfg.JWTSecret == "" {
		// Sessions live in memory, so tokens never need to survive a restart.
		cfg.JWTSecret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET not set, using a random secret for this process")
	}

	// --- Optional stores ---
	var (
		db       *mongo.Database
		rdb      *redis.Client
		activity ports.ActivityRepository
		feed     ports.NotificationFeed = memory.NewFeed(cfg.Notifications.Limit, logger.Component("notifications"))
		guard    ports.InFlightGuard    = memory.NewInFlight()
	)

	if cfg.Mongo.URI != "" {
		client, database, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "voucher-vault",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongostore.NewActivityRepository(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to create activity indexes")
		}
		db, activity = database, repo
		log.Info().Str("database", cfg.Mongo.Database).Msg("activity journal enabled")
	}

	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() { _ = client.Close() }()

		rdb = client
		feed = redisstore.NewNotificationFeed(client, cfg.Notifications.Limit, logger.Component("notifications"))
		guard = redisstore.NewInFlightGuard(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis notification feed enabled")
	}

	// --- Ledger and wallet ---
	providerCfg := ledger.ProviderConfig{
		ForceDev:   cfg.Ledger.DevMode,
		DevNodeURL: cfg.Ledger.DevNodeURL,
		Options: ledger.Options{
			HTTPClient:     &http.Client{Timeout: cfg.Ledger.RequestTimeout},
			PollInterval:   cfg.Ledger.PollInterval,
			ConfirmTimeout: cfg.Ledger.ConfirmTimeout,
			Observer:       metrics.ObserveLedger,
		},
	}
	if cfg.Ledger.BlockchainRID != "" {
		providerCfg.Production = ledger.Network{
			BlockchainRID: cfg.Ledger.BlockchainRID,
			NodeURLs:      cfg.Ledger.NodeURLs,
		}
	}
	provider := ledger.NewProvider(providerCfg, logger.Component("ledger"))
	walletProvider := wallet.NewFileWallet(cfg.Wallet.KeyFile, cfg.Wallet.Passphrase, logger.Component("wallet"))

	// --- Core ---
	store := state.NewStore()
	loginCfg := domain.LoginConfig{TTL: cfg.Session.TTL, Flags: []string{domain.SessionFlag}}

	sessions := service.NewSessionService(provider, walletProvider, store, feed, activity, loginCfg, logger.Component("session"))
	profiles := service.NewProfileService(store, feed, logger.Component("profile"))
	brands := service.NewBrandService(store, feed, activity, logger.Component("brand"))
	browse := service.NewBrowseService(store, feed, logger.Component("browse"))
	mint := service.NewMintService(store, browse, guard, feed, activity, logger.Component("mint"))

	go profiles.Run(ctx)

	sweeper, err := scheduler.NewSessionSweeper(cfg.Session.SweepSchedule, store, func() {
		metrics.SessionsExpiredTotal.Inc()
	}, logger.Component("sweeper"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule session sweeper")
	}
	sweeper.Start()

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Store:         store,
		Sessions:      sessions,
		Profiles:      profiles,
		Brands:        brands,
		Browse:        browse,
		Mint:          mint,
		Notifications: feed,
		Ledger:        provider,
		Mongo:         db,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		Log:           logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdown(e, sweeper, log)
}

func shutdown(e *echo.Echo, sweeper *scheduler.SessionSweeper, log zerolog.Logger) {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sweeper.Stop(ctx)
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
		return
	}
	log.Info().Msg("server stopped gracefully")
}
