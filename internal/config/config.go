package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"

	// DefaultSessionSecret is only fit for local development
	DefaultSessionSecret = "change-this-session-secret"
)

type Config struct {
	Port                 string
	Env                  string
	BoardRows            int
	BoardColumns         int
	EndAnnounceDelay     time.Duration
	StoreDriver          string
	RedisURL             string
	RedisPassword        string
	DatabaseURL          string
	SQLitePath           string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	SessionTTL           time.Duration
	CleanupInterval      time.Duration
	SessionSecret        string
	AllowedOrigins       []string
	OTelEnabled          bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BOARD_ROWS", domain.DefaultRows)
	v.SetDefault("BOARD_COLUMNS", domain.DefaultColumns)
	v.SetDefault("END_ANNOUNCE_DELAY_MS", 250)
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "connect4.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)
	v.SetDefault("SESSION_TTL_MINUTES", 24*60)
	v.SetDefault("CLEANUP_INTERVAL_MINUTES", 10)
	v.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("OTEL_ENABLED", false)
}

// Load reads the defaults, then configFile when given, then the environment.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	rows := v.GetInt("BOARD_ROWS")
	columns := v.GetInt("BOARD_COLUMNS")
	if rows < 1 || columns < 1 {
		rows, columns = domain.DefaultRows, domain.DefaultColumns
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch driver {
	case StoreMemory, StoreRedis, StorePostgres, StoreSQLite:
	default:
		driver = StoreMemory
	}

	cfg := &Config{
		Port:                 v.GetString("PORT"),
		Env:                  v.GetString("APP_ENV"),
		BoardRows:            rows,
		BoardColumns:         columns,
		EndAnnounceDelay:     time.Duration(positive(v.GetInt("END_ANNOUNCE_DELAY_MS"), 0)) * time.Millisecond,
		StoreDriver:          driver,
		RedisURL:             v.GetString("REDIS_URL"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		SQLitePath:           v.GetString("SQLITE_PATH"),
		DBMaxOpenConns:       positive(v.GetInt("DB_MAX_OPEN_CONNS"), 25),
		DBMaxIdleConns:       positive(v.GetInt("DB_MAX_IDLE_CONNS"), 25),
		DBConnMaxLifetimeMin: positive(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES"), 5),
		SessionTTL:           time.Duration(positive(v.GetInt("SESSION_TTL_MINUTES"), 24*60)) * time.Minute,
		CleanupInterval:      time.Duration(positive(v.GetInt("CLEANUP_INTERVAL_MINUTES"), 10)) * time.Minute,
		SessionSecret:        v.GetString("SESSION_SECRET"),
		AllowedOrigins:       splitList(v.GetString("ALLOWED_ORIGINS")),
		OTelEnabled:          v.GetBool("OTEL_ENABLED"),
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// InsecureSecret reports a missing or default session secret outside development.
func (c *Config) InsecureSecret() bool {
	return !c.IsDevelopment() && (c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret)
}

func positive(value, fallback int) int {
	if value < 0 || (value == 0 && fallback > 0) {
		return fallback
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
