package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/domain/surface"
)

// Config holds runtime configuration for the client.
// Fields may be loaded from a JSON, TOML or YAML file and overridden by
// command-line flags.
type Config struct {
	Debug bool `json:"debug" toml:"debug" yaml:"debug"`

	// Classifier service
	Endpoint              string `json:"endpoint" toml:"endpoint" yaml:"endpoint"`
	DefaultModel          string `json:"default_model" toml:"default_model" yaml:"default_model"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" toml:"request_timeout_seconds" yaml:"request_timeout_seconds"`

	// Drawing surface
	CanvasWidth  int     `json:"canvas_width" toml:"canvas_width" yaml:"canvas_width"`
	CanvasHeight int     `json:"canvas_height" toml:"canvas_height" yaml:"canvas_height"`
	StrokeWidth  float64 `json:"stroke_width" toml:"stroke_width" yaml:"stroke_width"`

	MaxUploadBytes int64 `json:"max_upload_bytes" toml:"max_upload_bytes" yaml:"max_upload_bytes"`

	LogLevel  string `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" toml:"log_format" yaml:"log_format"`

	// UI update loop period
	TickMillis int `json:"tick_millis" toml:"tick_millis" yaml:"tick_millis"`
}

const (
	DefaultEndpoint = "http://localhost:5000"

	minCanvas = 28
	maxCanvas = 1024
)

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                 false,
		Endpoint:              DefaultEndpoint,
		DefaultModel:          string(predict.DefaultModel),
		RequestTimeoutSeconds: 30,
		CanvasWidth:           surface.DefaultWidth,
		CanvasHeight:          surface.DefaultHeight,
		StrokeWidth:           surface.DefaultStrokeWidth,
		MaxUploadBytes:        intake.DefaultMaxBytes,
		LogLevel:              "info",
		LogFormat:             "json",
		TickMillis:            16,
	}
}

// DefaultPath is the per-user config location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "glyphpad", "config.json")
}

// ErrInvalidEndpoint marks an endpoint that is not an http(s) URL with a host.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// ParseEndpoint checks that s is an absolute http(s) URL with a host.
// Trailing slashes are dropped.
func ParseEndpoint(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(s), "/"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidEndpoint, s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidEndpoint, s)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w %q: missing host", ErrInvalidEndpoint, s)
	}
	return u, nil
}

// Validate clamps/normalizes values to safe ranges. An endpoint that is not
// an http(s) URL cannot be clamped and is reported as an error; every other
// field is still normalized.
func (c *Config) Validate() error {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	_, endpointErr := ParseEndpoint(c.Endpoint)
	c.DefaultModel = string(predict.ParseModelChoice(c.DefaultModel))
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 30
	}
	if c.CanvasWidth < minCanvas || c.CanvasWidth > maxCanvas {
		c.CanvasWidth = surface.DefaultWidth
	}
	if c.CanvasHeight < minCanvas || c.CanvasHeight > maxCanvas {
		c.CanvasHeight = surface.DefaultHeight
	}
	if c.StrokeWidth <= 0 || c.StrokeWidth > float64(min(c.CanvasWidth, c.CanvasHeight))/2 {
		c.StrokeWidth = surface.DefaultStrokeWidth
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = intake.DefaultMaxBytes
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = "info"
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
		c.LogFormat = strings.ToLower(c.LogFormat)
	default:
		c.LogFormat = "json"
	}
	if c.TickMillis < 5 || c.TickMillis > 1000 {
		c.TickMillis = 16
	}
	return endpointErr
}

// RequestTimeout returns the network timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// TickInterval returns the UI update loop period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

type format int

const (
	formatJSON format = iota
	formatTOML
	formatYAML
)

func formatFor(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// Load attempts to read configuration from the given path; the format is
// chosen by extension (.json, .toml, .yaml/.yml). If the file does not exist
// it returns DefaultConfig(). On parse error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	switch formatFor(path) {
	case formatTOML:
		_, err = toml.Decode(string(data), cfg)
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Save writes the configuration to path in the format matching its extension.
// An invalid configuration is not written.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	switch formatFor(path) {
	case formatTOML:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return err
		}
	case formatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
