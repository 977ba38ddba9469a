package config

import "log/slog"

// Mode represents the application running mode
type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// IsDevelopment returns true if the mode is development
func (m Mode) IsDevelopment() bool {
	return m == ModeDevelopment
}

// IsProduction returns true if the mode is production
func (m Mode) IsProduction() bool {
	return m == ModeProduction
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Mode     Mode   `env:"MODE" envDefault:"production" validate:"oneof=production development"`
	LogLevel string `env:"LOG_LEVEL"`
}

// Level returns the slog level for LogLevel, falling back to debug in
// development and info otherwise
func (c *ApplicationConfig) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if c.Mode.IsDevelopment() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
