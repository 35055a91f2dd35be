package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_FailsWithoutSecrets(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("JWT_KEY", "")
	t.Setenv("CSRF_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_KEY")
}

func TestLoad_FailsWithoutCSRFSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("JWT_KEY", "jwt-secret")
	t.Setenv("CSRF_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "CSRF_KEY")
}

func TestLoad_EnvOverridesAndDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("JWT_KEY", "jwt-secret")
	t.Setenv("CSRF_KEY", "csrf-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://todo.example.com")
	t.Setenv("AUTH_LOGIN_WINDOW", "10m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
	require.Equal(t, "csrf-secret", cfg.CSRF.Secret)
	require.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL)
	require.Equal(t, "access_token", cfg.Auth.CookieName)
	require.Equal(t, 6, cfg.Auth.MinPasswordLength)
	require.Equal(t, 10*time.Minute, cfg.Auth.Login.Window)
	require.Equal(t, []string{"http://localhost:3000", "https://todo.example.com"}, cfg.HTTP.CORS.AllowedOrigins)
	require.Equal(t, 100, cfg.Todo.ListLimit)
	require.Empty(t, cfg.Postgres.DSN)
}

func TestLoad_YAMLThenDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
http:
  address: ":9090"
auth:
  jwtSecret: from-yaml
  tokenTtl: 2m
todo:
  listLimit: 20
`), 0o600))
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("CSRF_KEY=from-dotenv\n"), 0o600))

	t.Setenv("CONFIG_PATH", yamlPath)
	t.Setenv("ENV_FILE", envPath)
	t.Setenv("JWT_KEY", "")
	t.Setenv("CSRF_KEY", "")
	// godotenv never overrides variables that exist, even empty ones.
	require.NoError(t, os.Unsetenv("CSRF_KEY"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "from-yaml", cfg.Auth.JWTSecret)
	require.Equal(t, 2*time.Minute, cfg.Auth.TokenTTL)
	require.Equal(t, "from-dotenv", cfg.CSRF.Secret)
	require.Equal(t, 20, cfg.Todo.ListLimit)
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "does-not-exist.env")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "read env file")
}

func TestValidate_ValkeyRequiresAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.Auth.JWTSecret = "a"
	cfg.CSRF.Secret = "b"
	require.NoError(t, cfg.Validate())

	cfg.Valkey.Enabled = true
	require.Error(t, cfg.Validate())
	cfg.Valkey.Addr = "localhost:6379"
	require.NoError(t, cfg.Validate())
}

func TestValidate_CORSOrigins(t *testing.T) {
	cfg := defaultConfig()
	cfg.Auth.JWTSecret = "a"
	cfg.CSRF.Secret = "b"

	cfg.HTTP.CORS.AllowedOrigins = nil
	require.Error(t, cfg.Validate())

	cfg.HTTP.CORS.AllowedOrigins = []string{"*"}
	require.Error(t, cfg.Validate())

	cfg.HTTP.CORS.AllowedOrigins = []string{"https://todo.example.com"}
	require.NoError(t, cfg.Validate())
}

func TestValidate_TrustedProxies(t *testing.T) {
	cfg := defaultConfig()
	cfg.Auth.JWTSecret = "a"
	cfg.CSRF.Secret = "b"
	require.Empty(t, cfg.HTTP.TrustedProxies)

	cfg.HTTP.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.1"}
	require.NoError(t, cfg.Validate())

	cfg.HTTP.TrustedProxies = []string{"not-an-ip"}
	require.Error(t, cfg.Validate())
}
