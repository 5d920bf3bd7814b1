package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Challenge cache and serializer backends.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"

	SerializerLocal = "local"
	SerializerRedis = "redis"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Mongo      MongoConfig
	Redis      RedisConfig
	WebAuthn   WebAuthnConfig
	Challenge  ChallengeConfig
	Master     MasterConfig
	Serializer SerializerConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=civic"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=20"`
}

type WebAuthnConfig struct {
	RPID    string   `env:"WEBAUTHN_RP_ID,      default=localhost"`
	RPName  string   `env:"WEBAUTHN_RP_NAME,    default=Voz Ciudadana"`
	Origins []string `env:"WEBAUTHN_RP_ORIGINS, default=http://localhost:5173"`
}

type ChallengeConfig struct {
	Backend string        `env:"CHALLENGE_BACKEND, default=redis"`
	TTL     time.Duration `env:"CHALLENGE_TTL,     default=5m"`
}

// MasterConfig controls the administrator override. An empty SecretHash
// disables it.
type MasterConfig struct {
	AdminNationalIDs []string      `env:"ADMIN_NATIONAL_IDS,        default=1111111-1"`
	SecretHash       string        `env:"MASTER_SECRET_HASH"`
	MaxAttempts      int           `env:"MASTER_LOGIN_MAX_ATTEMPTS, default=5"`
	Window           time.Duration `env:"MASTER_LOGIN_WINDOW,       default=15m"`
}

type SerializerConfig struct {
	Kind    string        `env:"SERIALIZER,         default=local"`
	Workers int           `env:"SERIALIZER_WORKERS, default=16"`
	LockTTL time.Duration `env:"LOCK_TTL,           default=5s"`
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from l and checks the enumerated settings.
func LoadFrom(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Challenge.Backend {
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("CHALLENGE_BACKEND must be %q or %q, got %q", BackendRedis, BackendMemory, c.Challenge.Backend)
	}
	switch c.Serializer.Kind {
	case SerializerLocal, SerializerRedis:
	default:
		return fmt.Errorf("SERIALIZER must be %q or %q, got %q", SerializerLocal, SerializerRedis, c.Serializer.Kind)
	}
	if c.Challenge.TTL <= 0 {
		return fmt.Errorf("CHALLENGE_TTL must be positive")
	}
	if c.Master.MaxAttempts <= 0 {
		return fmt.Errorf("MASTER_LOGIN_MAX_ATTEMPTS must be positive")
	}
	return nil
}
