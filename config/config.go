// Package config loads service settings from an optional YAML file,
// GUARDIAN_* environment variables and the provider key variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/francescoattisano63-source/cyber-omega-guardian/logging"
)

const (
	envPrefix         = "GUARDIAN"
	defaultListenAddr = ":8080"
)

// Config is the fully resolved service configuration.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Log        logging.LogConfig `mapstructure:"log"`
	VirusTotal ProviderConfig    `mapstructure:"virustotal"`
	HIBP       ProviderConfig    `mapstructure:"hibp"`
	EmailRep   ProviderConfig    `mapstructure:"emailrep"`
	Whois      WhoisConfig       `mapstructure:"whois"`
	UserAgent  string            `mapstructure:"user_agent"`
}

type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ProviderConfig describes one threat-intelligence HTTP upstream.
type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WhoisConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", defaultListenAddr)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("virustotal.base_url", "https://www.virustotal.com")
	v.SetDefault("virustotal.timeout", 8*time.Second)
	v.SetDefault("hibp.base_url", "https://haveibeenpwned.com")
	v.SetDefault("hibp.timeout", 8*time.Second)
	v.SetDefault("emailrep.base_url", "https://emailrep.io")
	v.SetDefault("emailrep.timeout", 8*time.Second)

	v.SetDefault("whois.enabled", true)
	v.SetDefault("whois.timeout", 10*time.Second)

	v.SetDefault("user_agent", "CyberOmegaGuardian/1.0")
}

// legacyEnv maps keys to the unprefixed provider variables of existing deployments.
var legacyEnv = map[string]string{
	"virustotal.api_key": "VT_API_KEY",
	"hibp.api_key":       "HIBP_API_KEY",
	"emailrep.api_key":   "EMAILREP_API_KEY",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	for key, env := range legacyEnv {
		// prefixed name wins over the legacy one
		_ = v.BindEnv(key, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
	_ = v.BindEnv("server.port", "PORT")
	return v
}

// Load reads .env (if present), the YAML file at path (if non-empty) and the
// environment, then validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	// PORT only applies when no listen address was configured
	if port := v.GetString("server.port"); port != "" && cfg.Server.ListenAddr == defaultListenAddr {
		cfg.Server.ListenAddr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks the provider settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr is empty"))
	}
	for name, p := range map[string]ProviderConfig{
		"virustotal": c.VirusTotal,
		"hibp":       c.HIBP,
		"emailrep":   c.EmailRep,
	} {
		if p.BaseURL == "" {
			errs = append(errs, fmt.Errorf("%s.base_url is empty", name))
		}
		if p.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("%s.timeout must be positive", name))
		}
	}
	if c.Whois.Enabled && c.Whois.Timeout <= 0 {
		errs = append(errs, errors.New("whois.timeout must be positive"))
	}
	return errors.Join(errs...)
}
