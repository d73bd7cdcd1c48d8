package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"chore-rooms/internal/domain"
)

// Config holds all configuration options for the rooms application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Validation  ValidationConfig  `yaml:"validation"`
	User        UserConfig        `yaml:"user"`
	Logging     LoggingConfig     `yaml:"logging"`
	Feed        FeedConfig        `yaml:"feed"`
	Export      ExportConfig      `yaml:"export"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"ROOMS_DB_DIR"`
	Filename       string        `yaml:"filename" env:"ROOMS_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"ROOMS_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"ROOMS_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"ROOMS_DB_DIR_PERMISSIONS"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	RoomNameMaxLength int `yaml:"room_name_max_length" env:"ROOMS_VALIDATION_ROOM_NAME_MAX"`
	TaskNameMaxLength int `yaml:"task_name_max_length" env:"ROOMS_VALIDATION_TASK_NAME_MAX"`
}

// UserConfig describes the signed-in household member
type UserConfig struct {
	Tier              string `yaml:"tier" env:"ROOMS_USER_TIER"`
	HasEditPermission bool   `yaml:"has_edit_permission" env:"ROOMS_USER_EDIT_PERMISSION"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `yaml:"level" env:"ROOMS_LOG_LEVEL"`
	Format string `yaml:"format" env:"ROOMS_LOG_FORMAT"`
}

// FeedConfig holds the household change feed configuration
type FeedConfig struct {
	Enabled   bool   `yaml:"enabled" env:"ROOMS_FEED_ENABLED"`
	RedisAddr string `yaml:"redis_addr" env:"ROOMS_FEED_REDIS_ADDR"`
	Stream    string `yaml:"stream" env:"ROOMS_FEED_STREAM"`
	MaxLen    int64  `yaml:"max_len" env:"ROOMS_FEED_MAX_LEN"`
}

// ExportConfig holds export defaults
type ExportConfig struct {
	DefaultFormat string `yaml:"default_format" env:"ROOMS_EXPORT_DEFAULT_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"ROOMS_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"ROOMS_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".rooms")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "rooms.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Validation: ValidationConfig{
			RoomNameMaxLength: 50,
			TaskNameMaxLength: 80,
		},
		User: UserConfig{
			Tier:              domain.TierNormal.String(),
			HasEditPermission: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Feed: FeedConfig{
			Enabled:   false,
			RedisAddr: "localhost:6379",
			Stream:    "rooms:events",
			MaxLen:    1000,
		},
		Export: ExportConfig{
			DefaultFormat: "csv",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// RoomUser builds the session user described by the configuration.
// Validate has already rejected unknown tiers.
func (c *Config) RoomUser() domain.RoomUser {
	tier, _ := domain.ParseUserTier(c.User.Tier)
	return domain.NewRoomUser(tier, c.User.HasEditPermission)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("ROOMS_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("ROOMS_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("ROOMS_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("ROOMS_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("ROOMS_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Validation configuration
	if maxLen := os.Getenv("ROOMS_VALIDATION_ROOM_NAME_MAX"); maxLen != "" {
		c.Validation.RoomNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.RoomNameMaxLength)
	}
	if maxLen := os.Getenv("ROOMS_VALIDATION_TASK_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}

	// User configuration
	if tier := os.Getenv("ROOMS_USER_TIER"); tier != "" {
		c.User.Tier = strings.ToLower(tier)
	}
	if perm := os.Getenv("ROOMS_USER_EDIT_PERMISSION"); perm != "" {
		c.User.HasEditPermission = ParseBoolWithFallback(perm, c.User.HasEditPermission)
	}

	// Logging configuration
	if level := os.Getenv("ROOMS_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("ROOMS_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}

	// Feed configuration
	if enabled := os.Getenv("ROOMS_FEED_ENABLED"); enabled != "" {
		c.Feed.Enabled = ParseBoolWithFallback(enabled, c.Feed.Enabled)
	}
	if addr := os.Getenv("ROOMS_FEED_REDIS_ADDR"); addr != "" {
		c.Feed.RedisAddr = addr
	}
	if stream := os.Getenv("ROOMS_FEED_STREAM"); stream != "" {
		c.Feed.Stream = stream
	}
	if maxLen := os.Getenv("ROOMS_FEED_MAX_LEN"); maxLen != "" {
		if n, err := strconv.ParseInt(maxLen, 10, 64); err == nil {
			c.Feed.MaxLen = n
		}
	}

	// Export configuration
	if format := os.Getenv("ROOMS_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Export.DefaultFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("ROOMS_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("ROOMS_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate validation configuration
	if c.Validation.RoomNameMaxLength < 1 {
		return &ConfigError{Field: "validation.room_name_max_length", Message: "room name maximum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < 1 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be at least 1"}
	}

	// Validate user configuration
	if _, ok := domain.ParseUserTier(c.User.Tier); !ok {
		return &ConfigError{Field: "user.tier", Message: "tier must be one of guest, normal, pro"}
	}

	// Validate logging configuration
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "level must be one of debug, info, warn, error"}
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return &ConfigError{Field: "logging.format", Message: "format must be json or console"}
	}

	// Validate feed configuration
	if c.Feed.Enabled {
		if c.Feed.RedisAddr == "" {
			return &ConfigError{Field: "feed.redis_addr", Message: "redis address cannot be empty when the feed is enabled"}
		}
		if c.Feed.Stream == "" {
			return &ConfigError{Field: "feed.stream", Message: "stream name cannot be empty when the feed is enabled"}
		}
	}
	if c.Feed.MaxLen < 0 {
		return &ConfigError{Field: "feed.max_len", Message: "max length cannot be negative"}
	}

	// Validate export configuration
	if c.Export.DefaultFormat != "csv" && c.Export.DefaultFormat != "xlsx" {
		return &ConfigError{Field: "export.default_format", Message: "default format must be csv or xlsx"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
