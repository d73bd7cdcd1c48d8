package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable that points at a YAML config file
const ConfigFileEnv = "ROOMS_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithFile sets an explicit configuration file. A missing explicit file is an error.
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if overrides != nil && overrides.ConfigFile != nil {
		l.filePath = *overrides.ConfigFile
	}

	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfigPath returns ~/.rooms/config.yaml
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".rooms", "config.yaml")
}

func (l *Loader) loadFile() error {
	path := l.filePath
	explicit := path != ""
	if !explicit {
		if envPath := os.Getenv(ConfigFileEnv); envPath != "" {
			path = envPath
			explicit = true
		} else {
			path = DefaultConfigPath()
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("invalid YAML in %s: %v", path, err)}
	}

	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	// Database overrides
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Validation overrides
	RoomNameMaxLength *int
	TaskNameMaxLength *int

	// User overrides
	UserTier          *string
	HasEditPermission *bool

	// Logging overrides
	LogLevel  *string
	LogFormat *string

	// Feed overrides
	FeedEnabled   *bool
	FeedRedisAddr *string
	FeedStream    *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool

	// Export overrides
	ExportDefaultFormat *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		config.Database.DirPermissions = *overrides.DBDirPermissions
	}

	// Validation overrides
	if overrides.RoomNameMaxLength != nil {
		config.Validation.RoomNameMaxLength = *overrides.RoomNameMaxLength
	}
	if overrides.TaskNameMaxLength != nil {
		config.Validation.TaskNameMaxLength = *overrides.TaskNameMaxLength
	}

	// User overrides
	if overrides.UserTier != nil {
		config.User.Tier = *overrides.UserTier
	}
	if overrides.HasEditPermission != nil {
		config.User.HasEditPermission = *overrides.HasEditPermission
	}

	// Logging overrides
	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}

	// Feed overrides
	if overrides.FeedEnabled != nil {
		config.Feed.Enabled = *overrides.FeedEnabled
	}
	if overrides.FeedRedisAddr != nil {
		config.Feed.RedisAddr = *overrides.FeedRedisAddr
	}
	if overrides.FeedStream != nil {
		config.Feed.Stream = *overrides.FeedStream
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}

	// Export overrides
	if overrides.ExportDefaultFormat != nil {
		config.Export.DefaultFormat = *overrides.ExportDefaultFormat
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
