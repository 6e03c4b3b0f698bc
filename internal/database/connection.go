package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-relief-api/internal/store"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel aligns the package logger with the application level
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// Retry logic: max 5 attempts with exponential backoff
var retryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}

// Open connects the configured document store, verifies it with a ping and prepares its
// schema: unique email index for MongoDB, automigration for the SQL drivers.
func Open(ctx context.Context, cfg DatabaseConfig) (store.Store, error) {
	driver := strings.ToLower(cfg.Driver)

	log.WithFields(logrus.Fields{
		"db_driver": driver,
		"db_name":   cfg.Name,
		"db_path":   cfg.Path,
	}).Info("Initializing document store connection")

	switch driver {
	case "mongodb", "mongo", "":
		client, err := ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s := store.NewMongoStore(client, cfg.Name)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return s, nil

	case "postgres", "postgresql", "sqlite":
		db, err := InitDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s := store.NewGormStore(db)
		if err := s.AutoMigrate(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: mongodb, postgres, sqlite)", cfg.Driver)
	}
}

// ConnectMongo connects a MongoDB client and pings the primary, retrying with backoff
func ConnectMongo(ctx context.Context, cfg DatabaseConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}).
		SetServerSelectionTimeout(10 * time.Second)

	var client *mongo.Client
	err := withRetry(ctx, func() error {
		var err error
		client, err = mongo.Connect(ctx, opts)
		if err != nil {
			return err
		}
		if err := store.NewMongoStore(client, cfg.Name).Ping(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("db_name", cfg.Name).Info("Connected to MongoDB")
	return client, nil
}

// InitDatabase initializes the database connection based on the provided configuration
// It supports both PostgreSQL and SQLite drivers with automatic retry logic and connection pooling
func InitDatabase(ctx context.Context, cfg DatabaseConfig) (*gorm.DB, error) {
	driver := strings.ToLower(cfg.Driver)
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var db *gorm.DB
	err := withRetry(ctx, func() error {
		var err error
		switch driver {
		case "postgres", "postgresql":
			log.Debug("Connecting to PostgreSQL")
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		case "sqlite", "":
			log.WithField("db_path", cfg.Path).Debug("Connecting to SQLite")
			db, err = gorm.Open(sqlite.Open(cfg.DSN()), gormConfig)
		default:
			return fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", cfg.Driver)
		}
		if err != nil {
			// gorm.Open returns the opened pool along with a failed ping
			closeGorm(db)
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.WithError(err).Error("Failed to get database instance")
			return err
		}
		if err := pingOrClose(ctx, sqlDB); err != nil {
			log.WithError(err).Error("Failed to ping database")
			return err
		}
		configureConnectionPool(sqlDB)
		if driver != "postgres" && driver != "postgresql" {
			// sqlite allows a single writer
			sqlDB.SetMaxOpenConns(1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("db_driver", driver).Info("Database initialized successfully")
	return db, nil
}

// pingOrClose pings the pool and closes it when the ping fails, so a retry starts clean
func pingOrClose(ctx context.Context, sqlDB *sql.DB) error {
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return err
	}
	return nil
}

func closeGorm(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// withRetry runs connect until it succeeds, sleeping between attempts
func withRetry(ctx context.Context, connect func() error) error {
	maxRetries := len(retryDelays)
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.WithFields(logrus.Fields{
			"attempt":     attempt,
			"max_retries": maxRetries,
		}).Info("Attempting database connection")

		if err = connect(); err == nil {
			return nil
		}

		log.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Database connection attempt failed")

		// Don't wait after the last attempt
		if attempt < maxRetries {
			delay := retryDelays[attempt-1]
			log.WithField("delay", delay).Info("Retrying database connection")
			select {
			case <-ctx.Done():
				return fmt.Errorf("database connection cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	// All retries exhausted
	return fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// configureConnectionPool sets up connection pool parameters for optimal performance
func configureConnectionPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.WithFields(logrus.Fields{
		"max_open_conns":    25,
		"max_idle_conns":    5,
		"conn_max_lifetime": "5m",
	}).Debug("Connection pool configured")
}
