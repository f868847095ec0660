package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BOOKORG_DATABASE_DSN
const EnvPrefix = "BOOKORG"

// DefaultConfigPath is used when CONFIG_PATH is not set
const DefaultConfigPath = "configs/web-app.yaml"

// WebConfig aggregates every configuration section of the application
type WebConfig struct {
	Port     string           `mapstructure:"port" validate:"required"`
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Session  SessionSettings  `mapstructure:"session"`
	Catalog  CatalogSettings  `mapstructure:"catalog"`
	AI       AISettings       `mapstructure:"ai"`
	Poller   PollerSettings   `mapstructure:"poller"`

	// AllowedOrigins lists the origins the JSON API accepts cross-origin requests from
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Validate checks every section of the configuration
func (c *WebConfig) Validate() error {
	validate := validator.New()
	if err := validate.Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("validation failed for port: %w", err)
	}
	if err := validate.Var(c.AllowedOrigins, "dive,required"); err != nil {
		return fmt.Errorf("validation failed for allowed origins: %w", err)
	}

	sections := []interface{ Validate() error }{
		&c.Database,
		&c.Logger,
		&c.Session,
		&c.Catalog,
		&c.AI,
		&c.Poller,
	}
	for _, s := range sections {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// setDefaults registers a default for every key so environment overrides
// are picked up by Unmarshal even when the file omits the key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", []string{"http://localhost:8080"})

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "file:book-organiser.db?_foreign_keys=on")
	v.SetDefault("database.name", "")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", DefaultSessionCookieName)
	v.SetDefault("session.idle_timeout", 30*time.Minute)
	v.SetDefault("session.remember_me_for", 14*24*time.Hour)
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("session.search_cache_ttl", 30*time.Minute)
	v.SetDefault("session.search_cache_max", 1000)

	v.SetDefault("catalog.base_url", DefaultCatalogBaseURL)
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.max_results", 40)
	v.SetDefault("catalog.requests_per_second", 5)
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.retry_count", 2)

	v.SetDefault("ai.provider", AIProviderOllama)
	v.SetDefault("ai.base_url", "http://localhost:11434")
	v.SetDefault("ai.model", DefaultAIModel)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.timeout", 5*time.Minute)

	v.SetDefault("poller.enabled", true)
	v.SetDefault("poller.schedule", "@every 1m")
}

// InitializeWebConfig loads the configuration file at path, applies .env and
// BOOKORG_* environment overrides and validates the result.
// A missing file is tolerated so that a deployment can be configured through
// the environment alone.
func InitializeWebConfig(path string) (*WebConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg WebConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Logger.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
