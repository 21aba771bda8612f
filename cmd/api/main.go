package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/closetly/wardrobe-api/internal/auth"
	"github.com/closetly/wardrobe-api/internal/config"
	"github.com/closetly/wardrobe-api/internal/handler"
	"github.com/closetly/wardrobe-api/internal/mailer"
	"github.com/closetly/wardrobe-api/internal/provider"
	"github.com/closetly/wardrobe-api/internal/repository"
	"github.com/closetly/wardrobe-api/internal/storage"
	"github.com/closetly/wardrobe-api/internal/usecase"
	"github.com/closetly/wardrobe-api/internal/validation"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger = newLogger(cfg)

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	err = client.Ping(pingCtx, readpref.Primary())
	cancelPing()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	itemRepo := repository.NewItemMongoRepository(ctx, &logger, db)
	outfitRepo := repository.NewOutfitMongoRepository(ctx, &logger, db)
	tokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, &logger, db)

	media, err := storage.NewS3MediaStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize media storage")
	}

	mail := mailer.NewMailer(&logger)
	google := provider.NewGoogleOAuthProvider(cfg.GoogleClientID)
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, google, cfg)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, tokenRepo, jwtAuth, mail, cfg)
	itemUsecase := usecase.NewItemUsecase(itemRepo, media, &logger)
	outfitUsecase := usecase.NewOutfitUsecase(outfitRepo, itemRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(userRepo, itemRepo)
	userUsecase := usecase.NewUserUsecase(userRepo)

	router, err := handler.NewRouter(handler.RouterParams{
		Logger:               &logger,
		Config:               cfg,
		JWTAuth:              jwtAuth,
		AuthHandler:          handler.NewAuthHandler(authUsecase, validator, &logger),
		PasswordResetHandler: handler.NewPasswordResetHandler(passwordResetUsecase, validator, &logger),
		ItemHandler:          handler.NewItemHandler(itemUsecase, validator, &logger),
		OutfitHandler:        handler.NewOutfitHandler(outfitUsecase, validator, &logger),
		DashboardHandler:     handler.NewDashboardHandler(dashboardUsecase, &logger),
		UserHandler:          handler.NewUserHandler(userUsecase, validator, &logger),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	// The TTL index reaps expired reset tokens eventually; the hourly sweep
	// keeps the collection tidy in between.
	sweeper := cron.New()
	_, err = sweeper.AddFunc("@hourly", func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		deleted, err := tokenRepo.DeleteExpiredTokens(sweepCtx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to sweep expired password reset tokens")
			return
		}
		if deleted > 0 {
			logger.Info().Int64("deleted", deleted).Msg("swept expired password reset tokens")
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to schedule password reset token sweep")
	}
	sweeper.Start()
	defer sweeper.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Str("env", cfg.AppEnv).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newLogger builds the process logger. Development gets the console writer,
// production writes JSON lines.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
