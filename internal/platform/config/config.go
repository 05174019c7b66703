// Package config loads gateway configuration from the environment.
package config

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures everything the gateway reads from its environment.
// Collaborators receive the individual fields; only cmd/server touches the
// whole struct.
type Config struct {
	Addr string `env:"AUTH_GATEWAY_ADDR" envDefault:":8080"`

	// Verifier selection and remote backend transport.
	UseMockVerifier bool          `env:"AUTH_BACKEND_MOCK" envDefault:"true"`
	BackendEndpoint string        `env:"AUTH_BACKEND_ENDPOINT" envDefault:"http://webhost:8085/back/auth"`
	BackendTimeout  time.Duration `env:"AUTH_BACKEND_TIMEOUT" envDefault:"10s"`

	// Token issuance.
	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"authgw"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// Transaction log sink.
	TxLogPath       string `env:"TXLOG_PATH" envDefault:"logs/transactions.txt"`
	TxLogPayloadCap int    `env:"TXLOG_PAYLOAD_CAP" envDefault:"200"`

	// Login lockout policy.
	LockoutMaxFailures int           `env:"LOCKOUT_MAX_FAILURES" envDefault:"5"`
	LockoutWindow      time.Duration `env:"LOCKOUT_WINDOW" envDefault:"5m"`
	LockoutDuration    time.Duration `env:"LOCKOUT_DURATION" envDefault:"15m"`

	// Optional infrastructure. Empty values disable the feature.
	RedisURL     string   `env:"REDIS_URL"`
	DatabaseURL  string   `env:"DATABASE_URL"`
	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"authgw.audit"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Store holds the active configuration snapshot and supports atomic reload.
// The verifier selection flag is read through Store on every call, so a
// reload flips the backend without restarting the server.
type Store struct {
	current atomic.Pointer[Config]
}

// NewStore creates a Store seeded with cfg.
func NewStore(cfg Config) *Store {
	s := &Store{}
	s.current.Store(&cfg)
	return s
}

// Current returns the active snapshot. Callers must not mutate it.
func (s *Store) Current() *Config {
	return s.current.Load()
}

// Reload re-reads the environment and swaps the snapshot in one step.
func (s *Store) Reload() error {
	cfg, err := FromEnv()
	if err != nil {
		return err
	}
	s.current.Store(&cfg)
	return nil
}

// UseMockVerifier reports the active verifier selection flag.
func (s *Store) UseMockVerifier() bool {
	return s.Current().UseMockVerifier
}
