package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL         = "http://127.0.0.1:5000"
	DefaultServerPort     = "8080"
	DefaultFilterDebounce = 300 * time.Millisecond
	DefaultWorkspaceIdle  = 30 * time.Minute
	DefaultLogLevel       = "info"
	EnvConfigFile         = "CONFIG_FILE"
)

var ErrSessionSecret = errors.New("SESSION_SECRET is not set")

type Config struct {
	APIURL               string
	ServerPort           string
	SessionSecret        string
	AuditDSN             string
	FilterDebounce       time.Duration
	WorkspaceIdleTimeout time.Duration
	LogLevel             string
}

// fileConfig: formato do arquivo TOML opcional; durações como "300ms", "30m".
type fileConfig struct {
	APIURL               string `toml:"api_url"`
	ServerPort           string `toml:"server_port"`
	SessionSecret        string `toml:"session_secret"`
	AuditDSN             string `toml:"audit_dsn"`
	FilterDebounce       string `toml:"filter_debounce"`
	WorkspaceIdleTimeout string `toml:"workspace_idle_timeout"`
	LogLevel             string `toml:"log_level"`
}

// Load lê .env, depois o arquivo TOML (path ou CONFIG_FILE, se houver) e por
// fim as variáveis de ambiente, que têm precedência.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:               DefaultAPIURL,
		ServerPort:           DefaultServerPort,
		FilterDebounce:       DefaultFilterDebounce,
		WorkspaceIdleTimeout: DefaultWorkspaceIdle,
		LogLevel:             DefaultLogLevel,
	}

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := cfg.apply(fc); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	env := fileConfig{
		APIURL:               os.Getenv("ATIVOS_API_URL"),
		ServerPort:           os.Getenv("SERVER_PORT"),
		SessionSecret:        os.Getenv("SESSION_SECRET"),
		AuditDSN:             os.Getenv("AUDIT_DSN"),
		FilterDebounce:       os.Getenv("FILTER_DEBOUNCE"),
		WorkspaceIdleTimeout: os.Getenv("WORKSPACE_IDLE_TIMEOUT"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
	}
	if err := cfg.apply(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply sobrescreve só os campos preenchidos.
func (c *Config) apply(fc fileConfig) error {
	if fc.APIURL != "" {
		c.APIURL = fc.APIURL
	}
	if fc.ServerPort != "" {
		c.ServerPort = fc.ServerPort
	}
	if fc.SessionSecret != "" {
		c.SessionSecret = fc.SessionSecret
	}
	if fc.AuditDSN != "" {
		c.AuditDSN = fc.AuditDSN
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.FilterDebounce != "" {
		d, err := parsePositive("filter_debounce", fc.FilterDebounce)
		if err != nil {
			return err
		}
		c.FilterDebounce = d
	}
	if fc.WorkspaceIdleTimeout != "" {
		d, err := parsePositive("workspace_idle_timeout", fc.WorkspaceIdleTimeout)
		if err != nil {
			return err
		}
		c.WorkspaceIdleTimeout = d
	}
	return nil
}

func parsePositive(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

// ValidateServer checa o que só o servidor web exige.
func (c *Config) ValidateServer() error {
	if c.SessionSecret == "" {
		return ErrSessionSecret
	}
	return nil
}
