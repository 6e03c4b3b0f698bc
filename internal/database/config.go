package database

import (
	"fmt"
	"net/url"
	"strings"
)

// DatabaseConfig holds document store connection configuration
type DatabaseConfig struct {
	// Driver specifies the store driver (mongodb, postgres, sqlite)
	Driver string

	// URI is the MongoDB connection string or the PostgreSQL URL
	URI string

	// Name is the MongoDB database holding the collections
	Name string

	// SQLite-specific configuration
	Path string
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, URI: %s, Name: %s, Path: %s}",
		c.Driver, redactURI(c.URI), c.Name, c.Path)
}

// DSN builds a Data Source Name string for the SQL drivers
func (c *DatabaseConfig) DSN() string {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql":
		return c.URI
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}

func redactURI(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}
	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}
	return parsed.String()
}
