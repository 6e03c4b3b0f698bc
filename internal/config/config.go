package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

// Supported document store drivers
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port            int           `json:"port"`
	Host            string        `json:"host"`
	Environment     string        `json:"environment"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	CORSOrigins     []string      `json:"cors_origins"`

	// Document store configuration
	DBDriver    string `json:"db_driver"`
	DatabaseURL string `json:"database_url"`
	DBName      string `json:"db_name"`
	DBPath      string `json:"db_path"`

	// Logging configuration, empty when the level follows Environment
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret    string        `json:"jwt_secret"`
	TokenExpires time.Duration `json:"token_expires"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, DBDriver: %s, DatabaseURL: %s, DBName: %s, DBPath: %s, LogLevel: %s, CORSOrigins: %v, TokenExpires: %s, JWTSecret: [REDACTED]}",
		c.Port, c.Host, c.Environment, c.DBDriver, MaskDatabaseURL(c.DatabaseURL), c.DBName, c.DBPath, c.LogLevel, c.CORSOrigins, c.TokenExpires)
}

// Address returns the host:port pair the HTTP server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MaskDatabaseURL masks password in database URL
func MaskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}

	return parsed.String()
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any required environment variable is missing or invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", GetEnvWithDefault("PORT", "5000")))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	dbURL := GetEnvWithDefault("MONGODB_URI", GetEnvWithDefault("DATABASE_URL", ""))
	driver, err := resolveDriver(GetEnvWithDefault("DB_DRIVER", ""), dbURL)
	if err != nil {
		return nil, err
	}
	if driver != DriverSQLite {
		if dbURL == "" {
			return nil, errors.New("MONGODB_URI or DATABASE_URL environment variable is required")
		}
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid database URL format: %w", err)
		}
	}

	secret := GetEnvWithDefault("JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is required")
	}

	expires, err := ParseExpiresIn(GetEnvWithDefault("EXPIRES_IN", "1d"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPIRES_IN: %w", err)
	}

	config := &Config{
		Port:            port,
		Host:            GetEnvWithDefault("APP_HOST", ""),
		Environment:     GetEnvWithDefault("APP_ENV", "development"),
		ShutdownTimeout: time.Duration(GetEnvAsType("SHUTDOWN_TIMEOUT", 10)) * time.Second,
		CORSOrigins:     splitList(GetEnvWithDefault("CORS_ORIGINS", "http://localhost:5173")),
		DBDriver:        driver,
		DatabaseURL:     dbURL,
		DBName:          GetEnvWithDefault("DB_NAME", "assignment"),
		DBPath:          GetEnvWithDefault("DB_PATH", "relief.sqlite"),
		LogLevel:        GetEnvWithDefault("LOG_LEVEL", ""),
		JWTSecret:       secret,
		TokenExpires:    expires,
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// resolveDriver picks the store driver, falling back to the URI scheme
func resolveDriver(driver, dbURL string) (string, error) {
	switch strings.ToLower(driver) {
	case DriverMongo, "mongo":
		return DriverMongo, nil
	case DriverPostgres, "postgresql":
		return DriverPostgres, nil
	case DriverSQLite:
		return DriverSQLite, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER: %s (supported: mongodb, postgres, sqlite)", driver)
	}

	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return DriverPostgres, nil
	default:
		return DriverMongo, nil
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// LevelForEnvironment maps APP_ENV to the default logrus level
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// ResolveLogLevel returns LOG_LEVEL when set, otherwise the level for the environment.
// An unparsable LOG_LEVEL falls back to the environment level and is reported.
func (c *Config) ResolveLogLevel() (logrus.Level, error) {
	fallback := LevelForEnvironment(c.Environment)
	if c.LogLevel == "" {
		return fallback, nil
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fallback, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
