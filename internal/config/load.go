package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load,
// e.g. TASKS_SERVER_PORT.
const EnvPrefix = "TASKS"

// Load configuration from environment variables and optionally a config.yaml
// file in the working directory. Environment variables take precedence over
// values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origin", "http://localhost:9002")
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("store.backend", BackendFirestore)
	v.SetDefault("firestore.project_id", DefaultFirestoreProjectID)
	v.SetDefault("firestore.credentials_file", "")
	v.SetDefault("database.url", "")
	v.SetDefault("api.allow_reset", false)
}

// Validate checks field rules and the backend-specific requirements.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(backendStructLevelValidation, Config{})

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// backendStructLevelValidation requires the settings of the selected backend.
func backendStructLevelValidation(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	switch cfg.Store.Backend {
	case BackendFirestore:
		if cfg.Firestore.ProjectID == "" {
			sl.ReportError(cfg.Firestore.ProjectID, "Firestore.ProjectID", "ProjectID", "required_for_backend", BackendFirestore)
		}
	case BackendPostgres:
		if cfg.Database.URL == "" {
			sl.ReportError(cfg.Database.URL, "Database.URL", "URL", "required_for_backend", BackendPostgres)
		}
	}
}
