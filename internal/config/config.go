// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Editor   EditorConfig
	Session  SessionConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// EditorConfig controls which external editor edit sessions spawn.
type EditorConfig struct {
	// Command is the editor command line, resolved through the
	// conventional chain: $VISUAL, then $EDITOR, then vi. It may carry
	// arguments ("code --wait").
	Command string `env:"VISUAL" envAlt:"EDITOR" default:"vi"`
}

// SessionConfig controls edit-session temp files and read-back limits.
type SessionConfig struct {
	// TempDir overrides where session temp files are created.
	// Empty means the OS default temp directory.
	TempDir string `env:"TABED_TEMP_DIR"`

	// KeepFiles leaves temp files behind after successful sessions,
	// which helps when debugging editor integrations.
	KeepFiles bool `env:"TABED_KEEP_FILES" default:"false"`

	// MaxFileSize caps how many bytes a finished session reads back.
	MaxFileSize int64 `env:"TABED_MAX_FILE_SIZE" default:"67108864"` // 64 MB
}

// DatabaseConfig holds PostgreSQL connection settings for the pg
// command. URL is only required when that command runs, so it is not
// validated here.
type DatabaseConfig struct {
	URL          string        `env:"DATABASE_URL" envAlt:"DB_URL"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" default:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"TABED_LOG_LEVEL" default:"info"`  // debug, info, warn, error
	Format string `env:"TABED_LOG_FORMAT" default:"text"` // text, json
}
