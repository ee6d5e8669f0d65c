package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Security SecurityConfig `mapstructure:"security"`
}

// DatabaseConfig holds the local database location
type DatabaseConfig struct {
	// Path is the directory holding the SQLite database file.
	// Empty means in-memory (used by tests).
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	Lockout  LockoutConfig  `mapstructure:"lockout"`
	Session  SessionConfig  `mapstructure:"session"`
}

// PasswordConfig holds password policy and hashing configuration
type PasswordConfig struct {
	MinLength         int    `mapstructure:"min_length"`
	Argon2Memory      uint32 `mapstructure:"argon2_memory"`
	Argon2Iterations  uint32 `mapstructure:"argon2_iterations"`
	Argon2Parallelism uint8  `mapstructure:"argon2_parallelism"`
}

// LockoutConfig holds failed-login lockout policy
type LockoutConfig struct {
	// MaxAttempts is the failed-attempt count that triggers a lockout
	MaxAttempts int `mapstructure:"max_attempts"`
	// Duration is how long a lockout lasts
	Duration time.Duration `mapstructure:"duration"`
	// LoginDelay is a uniform delay applied before every credential check,
	// a blunt brute-force throttle. It applies to successful logins too.
	LoginDelay time.Duration `mapstructure:"login_delay"`
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tacs-console")

	setDefaults(v)

	// Config file is optional, defaults and env vars cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("TACS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration without touching files or env,
// used by tests.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", "./data")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Security defaults
	v.SetDefault("security.password.min_length", 12)
	v.SetDefault("security.password.argon2_memory", 65536)
	v.SetDefault("security.password.argon2_iterations", 3)
	v.SetDefault("security.password.argon2_parallelism", 4)

	v.SetDefault("security.lockout.max_attempts", 5)
	v.SetDefault("security.lockout.duration", "30m")
	v.SetDefault("security.lockout.login_delay", "1s")

	v.SetDefault("security.session.token_ttl", "4h")
}
