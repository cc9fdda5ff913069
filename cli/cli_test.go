package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francescoattisano63-source/cyber-omega-guardian/cli"
	"github.com/francescoattisano63-source/cyber-omega-guardian/server"
)

func TestPlansCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"plans"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Basic")
	assert.Contains(t, buf.String(), "€199/mese")
}

func TestPlansCommand_JSON(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"plans", "--json"})
	require.NoError(t, cmd.Execute())

	var plans []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plans))
	assert.Len(t, plans, 3)
}

func TestCheckDomain_InvalidInput(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"check", "domain", "not a domain"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, server.ErrInvalidInput)
}

func TestCheckEmail_RequiresArg(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"check", "email"})
	assert.Error(t, cmd.Execute())
}

func writeConfig(t *testing.T, upstream string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guardian.yaml")
	yaml := fmt.Sprintf(`
virustotal:
  base_url: %[1]s
  api_key: vt-key
hibp:
  base_url: %[1]s
  api_key: hibp-key
emailrep:
  base_url: %[1]s/rep
whois:
  enabled: false
log:
  level: error
`, upstream)
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	return path
}

func TestCheckDomainCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/domains/example.com", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"attributes":{"last_analysis_stats":{"harmless":80,"malicious":0,"suspicious":0,"undetected":20}}}}`))
	}))
	defer upstream.Close()

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"check", "domain", "Example.com", "--config", writeConfig(t, upstream.URL)})
	require.NoError(t, cmd.Execute())

	var report struct {
		Domain         string            `json:"domain"`
		SourceStatus   map[string]string `json:"sourceStatus"`
		RiskAssessment struct {
			Score       int      `json:"score"`
			Level       string   `json:"level"`
			Explanation []string `json:"explanation"`
		} `json:"riskAssessment"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "example.com", report.Domain)
	assert.Equal(t, map[string]string{"virustotal": "ok"}, report.SourceStatus)
	assert.Equal(t, 0, report.RiskAssessment.Score)
	assert.Equal(t, "low", report.RiskAssessment.Level)
	assert.Equal(t, []string{"80 motori (80%) lo classificano come sicuro."}, report.RiskAssessment.Explanation)
}

func TestCheckEmailCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/breachedaccount/mario@example.com":
			_, _ = w.Write([]byte(`[{"Name":"Adobe","DataClasses":["Passwords"]}]`))
		case "/rep/mario@example.com":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer upstream.Close()

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--config", writeConfig(t, upstream.URL), "check", "email", "mario@example.com"})
	require.NoError(t, cmd.Execute())

	var report struct {
		BreachCount    int               `json:"breachCount"`
		SourceStatus   map[string]string `json:"sourceStatus"`
		RiskAssessment struct {
			Score   int  `json:"score"`
			Partial bool `json:"partial"`
		} `json:"riskAssessment"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, 1, report.BreachCount)
	assert.Equal(t, map[string]string{"hibp": "ok", "emailrep": "unavailable"}, report.SourceStatus)
	// 10 breach + 15 passwords
	assert.Equal(t, 25, report.RiskAssessment.Score)
	assert.True(t, report.RiskAssessment.Partial)
}
