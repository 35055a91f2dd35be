package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	CSRF     CSRFConfig     `yaml:"csrf"`
	Postgres PostgresConfig `yaml:"postgres"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	Todo     TodoConfig     `yaml:"todo"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
	CORS            CORSConfig      `yaml:"cors"`
	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are
	// believed. Empty means the client IP is always the TCP peer.
	TrustedProxies []string `yaml:"trustedProxies"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig lists the frontend origins allowed to send credentials.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// AuthConfig holds the session token and password settings.
type AuthConfig struct {
	JWTSecret         string        `yaml:"jwtSecret"`
	TokenTTL          time.Duration `yaml:"tokenTtl"`
	CookieName        string        `yaml:"cookieName"`
	BcryptCost        int           `yaml:"bcryptCost"`
	HashConcurrency   int           `yaml:"hashConcurrency"`
	MinPasswordLength int           `yaml:"minPasswordLength"`
	Login             LoginConfig   `yaml:"login"`
}

// LoginConfig bounds failed login attempts per client IP.
type LoginConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	Window      time.Duration `yaml:"window"`
}

// CSRFConfig controls the double-submit CSRF protector.
type CSRFConfig struct {
	Secret     string        `yaml:"secret"`
	HeaderName string        `yaml:"headerName"`
	CookieName string        `yaml:"cookieName"`
	MaxAge     time.Duration `yaml:"maxAge"`
}

// PostgresConfig contains DSN and pooling settings. An empty DSN selects memory stores.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the login attempt store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// TodoConfig tunes the todo endpoints.
type TodoConfig struct {
	ListLimit int `yaml:"listLimit"`
}

// Load reads configuration from a YAML file, an optional .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadEnvFile copies variables from a dotenv file into the process environment
// without overriding ones already set. A missing default .env is not an error.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return fmt.Errorf("read env file: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("parse env file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_TRUSTED_PROXIES"); v != "" {
		cfg.HTTP.TrustedProxies = splitList(v)
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("AUTH_BCRYPT_COST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Auth.BcryptCost = parsed
		}
	}
	if v := os.Getenv("AUTH_HASH_CONCURRENCY"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Auth.HashConcurrency = parsed
		}
	}
	if v := os.Getenv("AUTH_LOGIN_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Auth.Login.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("AUTH_LOGIN_WINDOW"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.Login.Window = parsed
		}
	}
	if v := os.Getenv("CSRF_KEY"); v != "" {
		cfg.CSRF.Secret = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Valkey.Addr = v
	}
	if v := os.Getenv("TODO_LIST_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Todo.ListLimit = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func validProxy(v string) bool {
	if strings.Contains(v, "/") {
		_, err := netip.ParsePrefix(v)
		return err == nil
	}
	_, err := netip.ParseAddr(v)
	return err == nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             40,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000"},
			},
		},
		Auth: AuthConfig{
			TokenTTL:          5 * time.Minute,
			CookieName:        "access_token",
			BcryptCost:        10,
			HashConcurrency:   4,
			MinPasswordLength: 6,
			Login: LoginConfig{
				MaxAttempts: 5,
				Window:      15 * time.Minute,
			},
		},
		CSRF: CSRFConfig{
			HeaderName: "X-CSRF-Token",
			CookieName: "csrf_token",
			MaxAge:     time.Hour,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Valkey: ValkeyConfig{
			Prefix: "todo",
		},
		Todo: TodoConfig{
			ListLimit: 100,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwtSecret (JWT_KEY) is required")
	}
	if strings.TrimSpace(c.CSRF.Secret) == "" {
		return errors.New("csrf.secret (CSRF_KEY) is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	if c.Auth.CookieName == "" {
		return errors.New("auth.cookieName cannot be empty")
	}
	if c.Auth.HashConcurrency <= 0 {
		return errors.New("auth.hashConcurrency must be positive")
	}
	if c.Auth.MinPasswordLength <= 0 {
		return errors.New("auth.minPasswordLength must be positive")
	}
	if c.Auth.Login.MaxAttempts < 0 {
		return errors.New("auth.login.maxAttempts cannot be negative")
	}
	if c.Auth.Login.MaxAttempts > 0 && c.Auth.Login.Window <= 0 {
		return errors.New("auth.login.window must be positive when login throttling is enabled")
	}
	if c.CSRF.HeaderName == "" || c.CSRF.CookieName == "" {
		return errors.New("csrf.headerName and csrf.cookieName cannot be empty")
	}
	if c.CSRF.MaxAge <= 0 {
		return errors.New("csrf.maxAge must be positive")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when valkey is enabled")
	}
	if len(c.HTTP.CORS.AllowedOrigins) == 0 {
		return errors.New("http.cors.allowedOrigins cannot be empty")
	}
	for _, origin := range c.HTTP.CORS.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("http.cors.allowedOrigins: %q must be an http(s) origin", origin)
		}
	}
	for _, proxy := range c.HTTP.TrustedProxies {
		if !validProxy(proxy) {
			return fmt.Errorf("http.trustedProxies: %q is not an IP or CIDR", proxy)
		}
	}
	if c.Todo.ListLimit <= 0 {
		return errors.New("todo.listLimit must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
