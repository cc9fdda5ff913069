package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.Equal(t, "https://www.virustotal.com", cfg.VirusTotal.BaseURL)
	assert.Equal(t, 8*time.Second, cfg.HIBP.Timeout)
	assert.Equal(t, "https://emailrep.io", cfg.EmailRep.BaseURL)
	assert.True(t, cfg.Whois.Enabled)
	assert.Equal(t, "CyberOmegaGuardian/1.0", cfg.UserAgent)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_LegacyProviderKeys(t *testing.T) {
	t.Setenv("VT_API_KEY", "vt-key")
	t.Setenv("HIBP_API_KEY", "hibp-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "vt-key", cfg.VirusTotal.APIKey)
	assert.Equal(t, "hibp-key", cfg.HIBP.APIKey)
	assert.Empty(t, cfg.EmailRep.APIKey)
}

func TestLoad_PrefixedKeyWins(t *testing.T) {
	t.Setenv("VT_API_KEY", "legacy")
	t.Setenv("GUARDIAN_VIRUSTOTAL_API_KEY", "prefixed")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.VirusTotal.APIKey)
}

func TestLoad_PortEnv(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardian.yaml")
	yaml := `
server:
  listen_addr: ":7000"
hibp:
  timeout: 3s
whois:
  enabled: false
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.HIBP.Timeout)
	assert.False(t, cfg.Whois.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GUARDIAN_EMAILREP_TIMEOUT", "2s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.EmailRep.Timeout)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.HIBP.Timeout = 0
	cfg.VirusTotal.BaseURL = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hibp.timeout must be positive")
	assert.Contains(t, err.Error(), "virustotal.base_url is empty")
}
