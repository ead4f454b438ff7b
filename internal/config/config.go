package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the daemon
type Config struct {
	FSD            FSDConfig
	DB             DBConfig
	Archive        ArchiveConfig
	NATS           NATSConfig
	BatchSize      int
	BatchTimeout   int // seconds
	RetentionHours int // 0 keeps records forever
	StationTTL     int // seconds
	StationLimit   int // 0 for no limit
	StatsInterval  int // seconds, 0 disables
	Log            LogConfig
}

// FSDConfig holds the FSD server connection settings
type FSDConfig struct {
	Addr         string
	Hello        string // raw line sent after every connect
	Callsign     string // enables the ping task
	PingInterval int    // seconds
}

// DBConfig holds the local SQLite settings
type DBConfig struct {
	Driver string
	Path   string
}

// ArchiveConfig selects an optional long term store
type ArchiveConfig struct {
	Driver   string // none, postgres or clickhouse
	DSN      string // postgres
	Addr     string // clickhouse host:port
	Database string
	User     string
	Password string
}

// NATSConfig enables publishing of every record
type NATSConfig struct {
	URL      string
	Subject  string
	Encoding string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Archive drivers
const (
	ArchiveNone       = "none"
	ArchivePostgres   = "postgres"
	ArchiveClickHouse = "clickhouse"
)

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("fsd.addr", "127.0.0.1:6809")
	v.SetDefault("fsd.hello", "")
	v.SetDefault("fsd.callsign", "")
	v.SetDefault("fsd.ping_interval", 30)
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.path", "fsd_data.db")
	v.SetDefault("archive.driver", ArchiveNone)
	v.SetDefault("archive.dsn", "")
	v.SetDefault("archive.addr", "")
	v.SetDefault("archive.database", "default")
	v.SetDefault("archive.user", "default")
	v.SetDefault("archive.password", "")
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "fsd")
	v.SetDefault("nats.encoding", "json")
	v.SetDefault("batch_size", 100)
	v.SetDefault("batch_timeout", 5)
	v.SetDefault("retention_hours", 72)
	v.SetDefault("station_ttl", 300)
	v.SetDefault("station_limit", 0)
	v.SetDefault("stats_interval", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("/etc/fsd_recorder")
	v.AddConfigPath(".")

	// Set from the -config flag in main.go
	if configPath := os.Getenv("FSD_RECORDER_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Config file not found is OK - defaults + env vars are used.
	// The logger isn't initialized yet so nothing is logged here.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("FSD_RECORDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		FSD: FSDConfig{
			Addr:         v.GetString("fsd.addr"),
			Hello:        v.GetString("fsd.hello"),
			Callsign:     v.GetString("fsd.callsign"),
			PingInterval: v.GetInt("fsd.ping_interval"),
		},
		DB: DBConfig{
			Driver: v.GetString("db.driver"),
			Path:   v.GetString("db.path"),
		},
		Archive: ArchiveConfig{
			Driver:   v.GetString("archive.driver"),
			DSN:      v.GetString("archive.dsn"),
			Addr:     v.GetString("archive.addr"),
			Database: v.GetString("archive.database"),
			User:     v.GetString("archive.user"),
			Password: v.GetString("archive.password"),
		},
		NATS: NATSConfig{
			URL:      v.GetString("nats.url"),
			Subject:  v.GetString("nats.subject"),
			Encoding: v.GetString("nats.encoding"),
		},
		BatchSize:      v.GetInt("batch_size"),
		BatchTimeout:   v.GetInt("batch_timeout"),
		RetentionHours: v.GetInt("retention_hours"),
		StationTTL:     v.GetInt("station_ttl"),
		StationLimit:   v.GetInt("station_limit"),
		StatsInterval:  v.GetInt("stats_interval"),
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age_days"),
			Compress:   v.GetBool("log.compress"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.FSD.Addr == "" {
		return fmt.Errorf("fsd.addr is required")
	}

	if cfg.FSD.Callsign != "" && cfg.FSD.PingInterval <= 0 {
		return fmt.Errorf("fsd.ping_interval must be greater than 0")
	}

	if cfg.DB.Driver != "sqlite3" && cfg.DB.Driver != "sqlite" {
		return fmt.Errorf("invalid db.driver: %s (must be sqlite3 or sqlite)", cfg.DB.Driver)
	}

	if cfg.DB.Path == "" {
		return fmt.Errorf("db.path is required")
	}

	switch cfg.Archive.Driver {
	case ArchiveNone, "":
	case ArchivePostgres:
		if cfg.Archive.DSN == "" {
			return fmt.Errorf("archive.dsn is required for the postgres archive")
		}
	case ArchiveClickHouse:
		if cfg.Archive.Addr == "" {
			return fmt.Errorf("archive.addr is required for the clickhouse archive")
		}
	default:
		return fmt.Errorf("invalid archive.driver: %s (must be none, postgres, or clickhouse)", cfg.Archive.Driver)
	}

	if cfg.NATS.URL != "" {
		if cfg.NATS.Subject == "" {
			return fmt.Errorf("nats.subject is required when nats.url is set")
		}
		if cfg.NATS.Encoding != "json" && cfg.NATS.Encoding != "msgpack" {
			return fmt.Errorf("invalid nats.encoding: %s (must be json or msgpack)", cfg.NATS.Encoding)
		}
	}

	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be greater than 0")
	}

	if cfg.BatchTimeout <= 0 {
		return fmt.Errorf("batch_timeout must be greater than 0")
	}

	if cfg.RetentionHours < 0 {
		return fmt.Errorf("retention_hours must not be negative")
	}

	if cfg.StationTTL <= 0 {
		return fmt.Errorf("station_ttl must be greater than 0")
	}

	if cfg.StationLimit < 0 {
		return fmt.Errorf("station_limit must not be negative")
	}

	if cfg.StatsInterval < 0 {
		return fmt.Errorf("stats_interval must not be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	if cfg.Log.File != "" && cfg.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be greater than 0")
	}

	return nil
}
