package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/franciscosanchezn/gin-relief-api/docs" // Register the swagger document
	"github.com/franciscosanchezn/gin-relief-api/internal/auth"
	"github.com/franciscosanchezn/gin-relief-api/internal/config"
	"github.com/franciscosanchezn/gin-relief-api/internal/database"
	"github.com/franciscosanchezn/gin-relief-api/internal/server"
	"github.com/franciscosanchezn/gin-relief-api/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// @title Relief API
// @version 1.0
// @description Backend for a donation and relief coordination app: accounts, supplies, donors, community posts and volunteers.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Load configuration
	configuration := loadConfig()

	// Initialize logger
	setUpLogger(configuration)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize document store connection
	documentStore := setupDatabase(ctx, configuration)

	if configuration.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(server.Dependencies{
		Store:       documentStore,
		Tokens:      auth.NewTokenIssuer(configuration.JWTSecret, configuration.TokenExpires),
		CORSOrigins: configuration.CORSOrigins,
		Logger:      log.StandardLogger(),
	})

	err := run(ctx, router, configuration)
	closeStore(documentStore, configuration)
	if err != nil {
		log.WithError(err).Error("Server stopped with error")
		os.Exit(1)
	}
	log.Info("Server stopped")
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger sets a JSON formatter and the level resolved from the configuration
func setUpLogger(conf *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := conf.ResolveLogLevel()
	if err != nil {
		log.WithError(err).Warn("Ignoring LOG_LEVEL")
	}
	log.SetLevel(level)
	database.SetLogLevel(level)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase connects the configured document store or panics
func setupDatabase(ctx context.Context, conf *config.Config) store.Store {
	s, err := database.Open(ctx, database.DatabaseConfig{
		Driver: conf.DBDriver,
		URI:    conf.DatabaseURL,
		Name:   conf.DBName,
		Path:   conf.DBPath,
	})
	checkPanicErr(err)
	return s
}

func closeStore(s store.Store, conf *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.WithError(err).Warn("Failed to close document store")
	}
}

// run serves HTTP until ctx is cancelled, then drains in-flight requests
func run(ctx context.Context, handler http.Handler, conf *config.Config) error {
	srv := &http.Server{
		Addr:    conf.Address(),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", conf.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
