// Package config loads the configuration of the app.
//
// Settings are taken from defaults, an optional YAML file and environment variables,
// where later sources override earlier ones. Command line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/goccy/go-yaml"
)

// Environment variables
const (
	EnvToken   = "SPACETRADERS_TOKEN"
	EnvBaseURL = "SPACETRADERS_BASE_URL"
)

// FileName is the name of the config file in the settings folder.
const FileName = "config.yaml"

var ErrInvalid = errors.New("invalid config")

// Config is the configuration of the app.
type Config struct {
	// Token is the bearer token of a SpaceTraders agent.
	Token string `yaml:"token"`
	// BaseURL of the SpaceTraders API.
	BaseURL string `yaml:"base_url"`
	// RequestsPerSecond is the max rate of API requests.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	// Burst is the max number of API requests sent at once.
	Burst int `yaml:"burst"`
	// ZoomSensitivity converts mouse wheel steps into zoom factors.
	ZoomSensitivity float64 `yaml:"zoom_sensitivity"`
	WindowWidth     int     `yaml:"window_width"`
	WindowHeight    int     `yaml:"window_height"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BaseURL:           "https://api.spacetraders.io/v2",
		RequestsPerSecond: 2,
		Burst:             1,
		ZoomSensitivity:   0.1,
		WindowWidth:       1024,
		WindowHeight:      768,
	}
}

// Load returns the configuration from the YAML file at path on top of the defaults.
// A missing file is only an error when required is true.
func Load(path string, required bool) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return c, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides settings with values from environment variables.
// getenv is usually [os.Getenv].
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
}

// Validate reports whether the configuration can be used.
// The token is not validated, because it is only needed for downloading.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url %q: %w", c.BaseURL, ErrInvalid)
	}
	if !(c.RequestsPerSecond > 0) {
		return fmt.Errorf("requests per second must be positive: %w", ErrInvalid)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1: %w", ErrInvalid)
	}
	if !(c.ZoomSensitivity > 0) || c.ZoomSensitivity > 10 {
		return fmt.Errorf("zoom sensitivity must be in (0, 10]: %w", ErrInvalid)
	}
	if c.WindowWidth < 100 || c.WindowHeight < 100 {
		return fmt.Errorf("window size %dx%d too small: %w", c.WindowWidth, c.WindowHeight, ErrInvalid)
	}
	return nil
}

// String returns the configuration with the token redacted.
func (c Config) String() string {
	token := "<none>"
	if c.Token != "" {
		token = "REDACTED"
	}
	return fmt.Sprintf(
		"{Token:%s BaseURL:%s RequestsPerSecond:%g Burst:%d ZoomSensitivity:%g Window:%dx%d}",
		token,
		c.BaseURL,
		c.RequestsPerSecond,
		c.Burst,
		c.ZoomSensitivity,
		c.WindowWidth,
		c.WindowHeight,
	)
}
