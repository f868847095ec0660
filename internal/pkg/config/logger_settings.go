package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Log levels accepted in logger.log_level. Critical is logged at error level.
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Log types accepted in logger.log_type
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation bounds for the file logger
const (
	MaxLogFileSizeMB = 100
	MaxLogBackups    = 10
	MaxLogAgeDays    = 365
)

// LoggerSettings selects where the application logs and how verbosely.
// Rotation fields only apply to the file logger.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=debug info warning error critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	FilePath   string `mapstructure:"file_path" validate:"required_if=LogType file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// Normalize lower-cases level and type so that BOOKORG_LOGGER_LOG_LEVEL=DEBUG is accepted
func (s *LoggerSettings) Normalize() {
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	s.LogType = strings.ToLower(strings.TrimSpace(s.LogType))
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	if s.LogType != LogTypeFile {
		return nil
	}
	if s.MaxSize < 1 || s.MaxSize > MaxLogFileSizeMB {
		return fmt.Errorf("max size must be between 1 and %d MB", MaxLogFileSizeMB)
	}
	if s.MaxBackups < 1 || s.MaxBackups > MaxLogBackups {
		return fmt.Errorf("max backups must be between 1 and %d", MaxLogBackups)
	}
	if s.MaxAge < 1 || s.MaxAge > MaxLogAgeDays {
		return fmt.Errorf("max age must be between 1 and %d days", MaxLogAgeDays)
	}
	return nil
}

// ParseLogLevel maps a configured level to its slog level. Unknown levels fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError, LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
