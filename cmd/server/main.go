package main

import (
	"alcyxob/exercise-tracker/internal/api" // Import API package
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/logbook"
	"alcyxob/exercise-tracker/internal/logger"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/repository/mongo"
	"alcyxob/exercise-tracker/internal/repository/sqlite"
	"alcyxob/exercise-tracker/internal/service"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// @title Exercise Tracker API
// @version 1.0
// @description Users, exercise entries and filtered exercise logs.
// @BasePath /api
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Str("driver", cfg.Database.Driver).Str("address", cfg.Server.Address).Msg("starting exercise tracker")

	ctx := context.Background()

	// --- Record Store ---
	userRepo, exerciseRepo, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open record store")
	}
	defer closeStore()

	// --- Initialize Storage ---
	var exportStore storage.ObjectStorage
	if cfg.S3.Enabled() {
		exportStore, err = storage.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize S3 storage")
		}
	} else {
		log.Info().Msg("s3.bucket_name not set, log export disabled")
	}

	// --- Initialize Services ---
	book := logbook.New(time.Now)
	userService := service.NewUserService(userRepo)
	exerciseService := service.NewExerciseService(userRepo, exerciseRepo, book)
	exportService := service.NewExportService(exerciseService, exportStore, cfg.S3.PresignExpiry, time.Now)

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestID(), api.RequestLogger())

	api.SetupRoutes(router, api.Assets{
		ViewsDir:  cfg.Server.ViewsDir,
		PublicDir: cfg.Server.PublicDir,
	}, userService, exerciseService, exportService)

	handler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", api.RequestIDHeader},
		ExposedHeaders: []string{api.RequestIDHeader},
		MaxAge:         300,
	})(router)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful Shutdown ---
	go func() {
		log.Info().Msgf("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}

// openStore connects the configured backend and returns its repositories
// together with a function that releases the connection.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (repository.UserRepository, repository.ExerciseRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close sqlite")
			}
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite database ready")
		return sqlite.NewUserRepository(db), sqlite.NewExerciseRepository(db), closeFn, nil

	default:
		client, err := mongo.ConnectDB(ctx, cfg.URI)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			log.Info().Msg("disconnecting MongoDB")
			if err := mongo.DisconnectDB(client); err != nil {
				log.Error().Err(err).Msg("failed to disconnect MongoDB")
			}
		}
		appDB := client.Database(cfg.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(indexCtx, appDB); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		log.Info().Str("database", cfg.Name).Msg("mongo connection established")
		return mongo.NewMongoUserRepository(appDB), mongo.NewMongoExerciseRepository(appDB), closeFn, nil
	}
}
