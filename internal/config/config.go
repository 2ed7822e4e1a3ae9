package config

import (
	"time"
)

// Config is the root configuration shared by every command.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Export   ExportConfig   `yaml:"export"`
	Database DatabaseConfig `yaml:"database"`
	Registry RegistryConfig `yaml:"registry"`
	Images   ImagesConfig   `yaml:"images"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// SourceConfig points at the Apps Script web app that serves the sheet.
type SourceConfig struct {
	BaseURL string        `yaml:"base_url" env:"SOURCE_BASE_URL" env-default:"https://script.google.com/macros/s/AKfycbwIT3OS2bdCv2kkDPh6IjRRirv17iPnuttlPcY47LCHBbpNPuHF_IjVq0mCt7TkkWoW/exec"`
	Timeout time.Duration `yaml:"timeout"  env:"SOURCE_TIMEOUT"  env-default:"30s"`
}

// ExportConfig controls where pokédex snapshots are written.
type ExportConfig struct {
	Dir    string `yaml:"dir"    env:"EXPORT_DIR"    env-default:"."`
	Prefix string `yaml:"prefix" env:"EXPORT_PREFIX" env-default:"pokemon_data"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN
// disables the document store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool { return d.DSN != "" }

// RegistryConfig locates the hand-curated registered-species file.
type RegistryConfig struct {
	Path string `yaml:"path" env:"REGISTRY_PATH" env-default:"registered_pokemon.json"`
}

// ImagesConfig locates the sprite directory handled by rename-images.
type ImagesConfig struct {
	Dir string `yaml:"dir" env:"IMAGES_DIR" env-default:"images"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	CORSOrigins     string        `yaml:"cors_origins"     env:"SERVER_CORS_ORIGINS"     env-default:"*"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
