package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")

	cfg := Load()

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 10, cfg.Fetcher.MaxRedirects)
	assert.Equal(t, []string{"pinterest.com", "pin.it"}, cfg.Hosts.Resolve)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":8080"
  staticDir: ./dist
logging:
  level: debug
fetcher:
  timeout: 3s
  maxRedirects: 4
hosts:
  strict: true
  download: ["*.pinimg.com"]
`)
	t.Setenv(configPathEnv, path)
	t.Setenv("PINRESOLVER_ADDR", ":9090")
	t.Setenv("PINRESOLVER_PROXY_TIMEOUT", "5s")
	t.Setenv("PINRESOLVER_RESOLVE_HOSTS", "pinterest.com,pin.it,pinterest.ca")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "./dist", cfg.Server.StaticDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.Logging.Format)
	assert.Equal(t, 3*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 4, cfg.Fetcher.MaxRedirects)
	assert.Equal(t, 5*time.Second, cfg.Proxy.Timeout)
	assert.True(t, cfg.Hosts.Strict)
	assert.Equal(t, []string{"*.pinimg.com"}, cfg.Hosts.Download)
	assert.Equal(t, []string{"pinterest.com", "pin.it", "pinterest.ca"}, cfg.Hosts.Resolve)
}

func TestLoadBrokenFileFallsBack(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")
	t.Setenv(configPathEnv, path)

	cfg := Load()
	assert.Equal(t, Default().Server.Address, cfg.Server.Address)
}

func TestLoadRestoresZeroRedirectLimit(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv("PINRESOLVER_FETCH_MAX_REDIRECTS", "0")

	cfg := Load()
	assert.Equal(t, 10, cfg.Fetcher.MaxRedirects)
}
