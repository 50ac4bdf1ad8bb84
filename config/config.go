package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendSQLite = "sqlite"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8000"`
	AppEnv string `env:"APP_ENV" envDefault:"production"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// 排行榜存储：redis / mysql / sqlite
	LeaderboardBackend string `env:"LEADERBOARD_BACKEND" envDefault:"redis"`
	MySQLDSN           string `env:"MYSQL_DSN" envDefault:"root:@tcp(localhost:3306)/scoundrel"`
	SQLitePath         string `env:"SQLITE_PATH" envDefault:"scoundrel.db"`

	IPHashSalt     string        `env:"IP_HASH_SALT" envDefault:"scoundrel"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"access-secret"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	SubmitCooldown time.Duration `env:"SUBMIT_COOLDOWN" envDefault:"30s"`

	DailyTimezone    string   `env:"DAILY_TIMEZONE" envDefault:"UTC"`
	SessionResetHour int      `env:"SESSION_RESET_HOUR" envDefault:"4"`
	CORSOrigins      []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LeaderboardBackend {
	case BackendRedis, BackendMySQL, BackendSQLite:
	default:
		return fmt.Errorf("unknown LEADERBOARD_BACKEND %q", c.LeaderboardBackend)
	}
	if c.SessionResetHour < 0 || c.SessionResetHour > 23 {
		return fmt.Errorf("SESSION_RESET_HOUR must be within 0-23, got %d", c.SessionResetHour)
	}
	if _, err := time.LoadLocation(c.DailyTimezone); err != nil {
		return fmt.Errorf("load DAILY_TIMEZONE: %w", err)
	}
	return nil
}

// Location is the timezone whose calendar date names the daily challenge.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DailyTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
