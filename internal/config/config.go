package config

// Supported store backends.
const (
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// DefaultFirestoreProjectID is used when firestore.project_id is not configured.
const DefaultFirestoreProjectID = "mark-task-manager-fork-db"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Store     StoreConfig     `mapstructure:"store"     validate:"required"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AllowedOrigin is the single origin permitted to call /api cross-origin.
	AllowedOrigin          string `mapstructure:"allowed_origin"           validate:"required,url"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// StoreConfig selects the task storage backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=firestore postgres"`
}

// FirestoreConfig contains the Firestore connection settings.
// When FIRESTORE_EMULATOR_HOST is set the client talks to the emulator and
// CredentialsFile is not needed.
type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file" validate:"omitempty,file"`
}

// DatabaseConfig contains the Postgres connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// APIConfig toggles optional parts of the HTTP surface.
type APIConfig struct {
	// AllowReset registers DELETE /api/tasks, which removes every task.
	AllowReset bool `mapstructure:"allow_reset"`
}
