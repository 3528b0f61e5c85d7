package config_test

import (
	"os"
	"path/filepath"
	"pen/internal/config"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment: production
auth:
  adminEmail: root@pen.cm
scanner:
  evaluator: remote
  delay: 500ms
history:
  ttl: 24h
http:
  allowedOrigins: ["https://pen.cm"]
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "root@pen.cm", cfg.Auth.AdminEmail)
	require.Equal(t, "remote", cfg.Scanner.Evaluator)
	require.Equal(t, 500*time.Millisecond, cfg.Scanner.Delay)
	require.Equal(t, 24*time.Hour, cfg.History.TTL)
	require.Equal(t, []string{"https://pen.cm"}, cfg.HTTP.AllowedOrigins)

	// untouched sections keep their defaults
	require.Equal(t, 2*time.Second, cfg.Subscription.PaymentDelay)
	require.Equal(t, "pen", cfg.Redis.KeyPrefix)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_ADMIN_EMAIL", "ops@pen.cm")
	t.Setenv("SCANNER_DELAY", "1s")

	cfg, err := config.LoadEnv()
	require.NoError(t, err)

	require.Equal(t, "ops@pen.cm", cfg.Auth.AdminEmail)
	require.Equal(t, time.Second, cfg.Scanner.Delay)
	require.Equal(t, "heuristic", cfg.Scanner.Evaluator)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestLoadExample(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "config.example.yml"))
	require.NoError(t, err)

	require.Equal(t, "admin@pen.cm", cfg.Auth.AdminEmail)
	require.Equal(t, 1500*time.Millisecond, cfg.Assistant.ReplyDelay)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.AllowedOrigins)
	require.Equal(t, 3*time.Second, cfg.Scanner.Delay)
}
