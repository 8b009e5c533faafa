// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultTelegramBaseURL is the Telegram Bot API endpoint.
	DefaultTelegramBaseURL = "https://api.telegram.org"

	// DefaultDatastoreKind is the entity kind holding quote records.
	DefaultDatastoreKind = "quotes"

	// DefaultCacheTTL is how long the read API caches a quote.
	DefaultCacheTTL = 10 * time.Minute
)

// Store backends.
const (
	StoreBackendBolt      = "bolt"
	StoreBackendDatastore = "datastore"
)

// Legacy environment variables read without the APP_ prefix.
const (
	EnvOwnerChatID = "OWNER_TELEGRAM_CHAT_ID"
	EnvBotToken    = "TELEGRAM_BOT_TOKEN"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Telegram  TelegramConfig  `koanf:"telegram"  validate:"required"`
	Store     StoreConfig     `koanf:"store"     validate:"required"`
	Cache     CacheConfig     `koanf:"cache"`
	Quotes    QuotesConfig    `koanf:"quotes"    validate:"required"`
	CLI       CLIConfig       `koanf:"cli"       validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`

	// HealthTimeout bounds each readiness check; HealthCacheTTL reuses a
	// readiness result so frequent probes do not call Telegram every time.
	HealthTimeout  time.Duration `koanf:"health_timeout"   validate:"min=0"`
	HealthCacheTTL time.Duration `koanf:"health_cache_ttl" validate:"min=0"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// ClientConfig contains outbound HTTP client settings.
// There is no retry section: outbound calls are attempted once.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// TelegramConfig contains the bot settings.
// OwnerChatID and BotToken are not validated at startup; the webhook
// answers 500 while either is missing.
type TelegramConfig struct {
	BaseURL     string `koanf:"base_url"      validate:"required,url"`
	OwnerChatID string `koanf:"owner_chat_id" validate:"omitempty,numeric"`
	BotToken    string `koanf:"bot_token"`
}

// Configured reports whether both request-time secrets are present.
func (t TelegramConfig) Configured() bool {
	return t.OwnerChatID != "" && t.BotToken != ""
}

// StoreConfig selects and configures the quote store.
type StoreConfig struct {
	Backend   string               `koanf:"backend"   validate:"required,oneof=bolt datastore"`
	Bolt      BoltConfig           `koanf:"bolt"`
	Datastore DatastoreStoreConfig `koanf:"datastore"`
}

// BoltConfig configures the embedded store.
type BoltConfig struct {
	Path    string        `koanf:"path"    validate:"required"`
	Timeout time.Duration `koanf:"timeout" validate:"required,min=100ms"`
}

// DatastoreStoreConfig configures the Cloud Datastore backend.
type DatastoreStoreConfig struct {
	ProjectID string `koanf:"project_id"`
	Kind      string `koanf:"kind"      validate:"required"`
	Namespace string `koanf:"namespace"`
}

// CacheConfig configures the redis read cache.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Addr     string        `koanf:"addr"     validate:"required_if=Enabled true"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"       validate:"min=0,max=15"`
	TTL      time.Duration `koanf:"ttl"      validate:"min=0"`
}

// QuotesConfig contains calendar settings.
type QuotesConfig struct {
	// Timezone decides which date is "today" for /list, /stats and the read API.
	Timezone string `koanf:"timezone" validate:"required,timezone"`
}

// Location loads the configured timezone.
func (q QuotesConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", q.Timezone, err)
	}

	return loc, nil
}

// CLIConfig configures quotectl.
type CLIConfig struct {
	APIBaseURL string `koanf:"api_base_url" validate:"required,url"`
	StatePath  string `koanf:"state_path"   validate:"required"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotebot",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "20s",
		"server.max_request_size": DefaultMaxRequestSize,
		"server.health_timeout":   "2s",
		"server.health_cache_ttl": "5s",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotebot.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotebot",
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      true,

		"client.timeout":                           "10s",
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"telegram.base_url":      DefaultTelegramBaseURL,
		"telegram.owner_chat_id": "",
		"telegram.bot_token":     "",

		"store.backend":              StoreBackendBolt,
		"store.bolt.path":            "./data/quotes.db",
		"store.bolt.timeout":         "1s",
		"store.datastore.project_id": "",
		"store.datastore.kind":       DefaultDatastoreKind,
		"store.datastore.namespace":  "",

		"cache.enabled":  false,
		"cache.addr":     "localhost:6379",
		"cache.password": "",
		"cache.db":       0,
		"cache.ttl":      DefaultCacheTTL.String(),

		"quotes.timezone": "UTC",

		"cli.api_base_url": "http://localhost:8080",
		"cli.state_path":   "./data/quotectl.db",
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Legacy OWNER_TELEGRAM_CHAT_ID / TELEGRAM_BOT_TOKEN variables
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	defs := defaults()

	err := k.Load(confmap.Provider(defs, "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	err = k.Load(env.Provider("", ".", legacyEnvKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading legacy env vars: %w", err)
	}

	err = k.Load(env.Provider("APP_", ".", envKeyMapper(defs)), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// legacyEnvKey maps the bot's historical variable names. Every other
// variable is skipped.
func legacyEnvKey(s string) string {
	switch s {
	case EnvOwnerChatID:
		return "telegram.owner_chat_id"
	case EnvBotToken:
		return "telegram.bot_token"
	default:
		return ""
	}
}

// envKeyMapper maps APP_SERVER_READ_TIMEOUT to server.read_timeout.
// Known keys are matched with underscores and dots treated alike; unknown
// variables fall back to replacing every underscore with a dot.
func envKeyMapper(known map[string]any) func(string) string {
	flat := make(map[string]string, len(known))
	for key := range known {
		flat[strings.ReplaceAll(key, ".", "_")] = key
	}

	return func(s string) string {
		name := strings.ToLower(strings.TrimPrefix(s, "APP_"))
		if key, ok := flat[name]; ok {
			return key
		}

		return strings.ReplaceAll(name, "_", ".")
	}
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
