// Package config loads the client configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the configuration file name in the home directory.
	FileName = ".asana-client"

	// DefaultBaseURL is the Asana API root.
	DefaultBaseURL = "https://app.asana.com/api/1.0/"

	// DefaultTokenURL is the Asana OAuth token endpoint.
	DefaultTokenURL = "https://app.asana.com/-/oauth_token"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 10 * time.Second

	// Environment overrides.
	EnvConfig = "ASANA_CONFIG"
	EnvAPIKey = "ASANA_API_KEY"
	EnvDebug  = "ASANA_DEBUG"
)

// ErrNoCredentials is returned when the file has neither an API key nor a token.
var ErrNoCredentials = errors.New("no api_key or access_token configured")

// Config holds the settings read once at startup.
type Config struct {
	// Path is the file the config was loaded from.
	Path string `yaml:"-"`

	// APIKey authenticates with HTTP Basic auth (key as username, empty password).
	APIKey string `yaml:"api_key"`

	// AccessToken is a personal access token or OAuth token sent as a bearer token.
	AccessToken string `yaml:"access_token"`

	// OAuth holds refresh credentials; when complete it takes precedence.
	OAuth OAuth `yaml:"oauth"`

	// BaseURL overrides the API root.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request attempt.
	Timeout Duration `yaml:"timeout"`

	// Debug enables debug logging to stderr.
	Debug bool `yaml:"debug"`
}

// OAuth holds the credentials needed to refresh an access token.
type OAuth struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RefreshToken string `yaml:"refresh_token"`

	// TokenURL overrides the token endpoint.
	TokenURL string `yaml:"token_url"`
}

// Complete reports whether all refresh credentials are present.
func (o OAuth) Complete() bool {
	return o.ClientID != "" && o.ClientSecret != "" && o.RefreshToken != ""
}

// Duration is a time.Duration that unmarshals from strings like "15s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Error is a fatal configuration problem.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration file could not be loaded: %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// DefaultPath returns the configuration file path.
// Uses ASANA_CONFIG if set, otherwise $HOME/.asana-client.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Load reads and validates the config file at path.
// An empty path means DefaultPath. All failures are *Error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes config YAML, applies environment overrides and defaults,
// and validates credentials.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	if v := os.Getenv(EnvDebug); v != "" && v != "0" && !strings.EqualFold(v, "false") {
		cfg.Debug = true
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.AccessToken = strings.TrimSpace(cfg.AccessToken)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.OAuth.TokenURL == "" {
		cfg.OAuth.TokenURL = DefaultTokenURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Duration(DefaultTimeout)
	}

	if cfg.APIKey == "" && cfg.AccessToken == "" && !cfg.OAuth.Complete() {
		return nil, ErrNoCredentials
	}
	return &cfg, nil
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout)
}
