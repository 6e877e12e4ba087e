package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. TASKS_AUTH_SECRET.
const EnvPrefix = "TASKS_"

type Config struct {
	Server    Server    `mapstructure:"server" envPrefix:"SERVER_"`
	DB        DB        `mapstructure:"db" envPrefix:"DB_"`
	Auth      Auth      `mapstructure:"auth" envPrefix:"AUTH_"`
	Log       Log       `mapstructure:"log" envPrefix:"LOG_"`
	CORS      CORS      `mapstructure:"cors" envPrefix:"CORS_"`
	RateLimit RateLimit `mapstructure:"rate_limit" envPrefix:"RATE_LIMIT_"`
	Telemetry Telemetry `mapstructure:"telemetry" envPrefix:"TELEMETRY_"`
}

type Server struct {
	Port              string        `mapstructure:"port" env:"PORT"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type DB struct {
	Driver       string        `mapstructure:"driver" env:"DRIVER"`
	Path         string        `mapstructure:"path" env:"PATH"`
	DSN          string        `mapstructure:"dsn" env:"DSN"`
	MaxOpenConns int           `mapstructure:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns int           `mapstructure:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	MaxIdleTime  time.Duration `mapstructure:"max_idle_time" env:"MAX_IDLE_TIME"`
}

type Auth struct {
	Secret     string        `mapstructure:"secret" env:"SECRET"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" env:"TOKEN_TTL"`
	Issuer     string        `mapstructure:"issuer" env:"ISSUER"`
	BcryptCost int           `mapstructure:"bcrypt_cost" env:"BCRYPT_COST"`

	// GeneratedSecret is set when Secret was empty and a random one was
	// generated; tokens then do not survive a restart.
	GeneratedSecret bool `mapstructure:"-"`
}

type Log struct {
	Level    string `mapstructure:"level" env:"LEVEL"`
	Encoding string `mapstructure:"encoding" env:"ENCODING"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type RateLimit struct {
	Enabled bool    `mapstructure:"enabled" env:"ENABLED"`
	RPS     float64 `mapstructure:"rps" env:"RPS"`
	Burst   int     `mapstructure:"burst" env:"BURST"`
}

type Telemetry struct {
	Endpoint    string  `mapstructure:"endpoint" env:"ENDPOINT"`
	ServiceName string  `mapstructure:"service_name" env:"SERVICE_NAME"`
	Insecure    bool    `mapstructure:"insecure" env:"INSECURE"`
	SampleRatio float64 `mapstructure:"sample_ratio" env:"SAMPLE_RATIO"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "tasks.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.max_idle_time", 5*time.Minute)

	v.SetDefault("auth.token_ttl", 30*time.Minute)
	v.SetDefault("auth.bcrypt_cost", 12)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 1.0)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("telemetry.service_name", "task-manager")
	v.SetDefault("telemetry.sample_ratio", 1.0)
}

// Load reads the YAML file at path (configs/config.yml when empty), applies
// TASKS_* environment overrides and validates the result. A missing file is
// not an error; defaults and environment are enough to run.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))

	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		cfg.Auth.Secret = secret
		cfg.Auth.GeneratedSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Port) == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case "sqlite":
	case "postgres":
		if c.DB.DSN == "" {
			errs = append(errs, errors.New("db.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("db.driver %q is not supported", c.DB.Driver))
	}
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("auth.secret is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.rps and rate_limit.burst must be positive when enabled"))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be within [0, 1], got %v", c.Telemetry.SampleRatio))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate auth secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
