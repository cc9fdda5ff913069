package vetting_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/francescoattisano63-source/cyber-omega-guardian/config"
	"github.com/francescoattisano63-source/cyber-omega-guardian/logging"
	"github.com/francescoattisano63-source/cyber-omega-guardian/vetting"
)

type recorder struct {
	mu    sync.Mutex
	calls map[string][]vetting.Status
}

func newRecorder() *recorder { return &recorder{calls: map[string][]vetting.Status{}} }

func (r *recorder) ObserveUpstream(source string, status vetting.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[source] = append(r.calls[source], status)
}

func (r *recorder) get(source string) []vetting.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[source]
}

func provider(url, key string) config.ProviderConfig {
	return config.ProviderConfig{BaseURL: url, APIKey: key, Timeout: 2 * time.Second}
}

const vtBody = `{
  "data": {
    "id": "example.com",
    "attributes": {
      "last_analysis_stats": {"harmless": 60, "malicious": 2, "suspicious": 1, "undetected": 10, "timeout": 0},
      "reputation": -3,
      "categories": {"Forcepoint ThreatSeeker": "phishing"},
      "registrar": "Example Registrar",
      "creation_date": 1717200000,
      "last_analysis_date": 1748736000,
      "last_modification_date": 1748739600
    }
  }
}`

func TestVirusTotalClient_Domain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/domains/example.com", r.URL.Path)
		assert.Equal(t, "vt-key", r.Header.Get("x-apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(vtBody))
	}))
	defer srv.Close()

	rec := newRecorder()
	res := vetting.NewVirusTotalClient(provider(srv.URL, "vt-key"), vetting.WithRecorder(rec)).
		Domain(context.Background(), "example.com")

	require.True(t, res.Available)
	assert.Equal(t, vetting.StatusOK, res.Status())
	a := res.Data
	require.NotNil(t, a)
	assert.Equal(t, "example.com", a.Domain)
	assert.Equal(t, 2, a.Stats.Malicious)
	assert.Equal(t, 60, a.Stats.Harmless)
	require.NotNil(t, a.Reputation)
	assert.Equal(t, -3, *a.Reputation)
	assert.Equal(t, "phishing", a.Categories["Forcepoint ThreatSeeker"])
	assert.Equal(t, "Example Registrar", a.Registrar)
	require.NotNil(t, a.CreationDate)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *a.CreationDate)
	require.NotNil(t, a.LastAnalysisDate)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *a.LastAnalysisDate)
	assert.Equal(t, []vetting.Status{vetting.StatusOK}, rec.get("virustotal"))
}

func TestVirusTotalClient_NonNumericReputation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"attributes":{"reputation":"n/a","last_analysis_stats":{"harmless":1}}}}`))
	}))
	defer srv.Close()

	res := vetting.NewVirusTotalClient(provider(srv.URL, "k")).Domain(context.Background(), "example.com")
	require.True(t, res.Available)
	assert.Nil(t, res.Data.Reputation)
	assert.Nil(t, res.Data.CreationDate)
	assert.Equal(t, 1, res.Data.Stats.Harmless)
}

func TestVirusTotalClient_FractionalReputation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"attributes":{"reputation":-7.9}}}`))
	}))
	defer srv.Close()

	res := vetting.NewVirusTotalClient(provider(srv.URL, "k")).Domain(context.Background(), "example.com")
	require.NotNil(t, res.Data.Reputation)
	assert.Equal(t, -7, *res.Data.Reputation)
}

func TestVirusTotalClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	rec := newRecorder()
	res := vetting.NewVirusTotalClient(provider(srv.URL, "k"), vetting.WithRecorder(rec)).
		Domain(context.Background(), "unknown.example")
	assert.True(t, res.Available)
	assert.Nil(t, res.Data)
	assert.Equal(t, vetting.StatusOK, res.Status())
	assert.Equal(t, []vetting.Status{vetting.StatusOK}, rec.get("virustotal"))
}

func TestVirusTotalClient_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"rate limited", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }},
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusUnauthorized) }},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			rec := newRecorder()
			res := vetting.NewVirusTotalClient(provider(srv.URL, "k"), vetting.WithRecorder(rec)).
				Domain(context.Background(), "example.com")

			assert.False(t, res.Available)
			assert.Nil(t, res.Data)
			assert.Equal(t, vetting.StatusUnavailable, res.Status())
			assert.Equal(t, []vetting.Status{vetting.StatusUnavailable}, rec.get("virustotal"))
		})
	}
}

func TestVirusTotalClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	cfg := provider(srv.URL, "k")
	cfg.Timeout = 50 * time.Millisecond
	res := vetting.NewVirusTotalClient(cfg).Domain(context.Background(), "example.com")
	assert.False(t, res.Available)
}

func TestVirusTotalClient_MissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	res := vetting.NewVirusTotalClient(provider(srv.URL, ""), vetting.WithLogger(logging.NewLoggerFromCore(core))).
		Domain(context.Background(), "example.com")

	assert.False(t, res.Available)
	assert.False(t, called)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "virustotal", logs.All()[0].ContextMap()["source"])
	assert.NotContains(t, logs.All()[0].ContextMap(), "domain")
}
