package config

import (
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vdom/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vdomctl.yaml"

	// DefaultAddr is the default address of the inspection server.
	DefaultAddr = "localhost:7070"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "vdom"

	// DefaultSubsystem is the default metrics subsystem.
	DefaultSubsystem = "render"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/vdom/pkg/render"
)

// Config represents the complete vdomctl.yaml configuration.
type Config struct {
	// Log contains logging configuration.
	Log LogConfig `yaml:"log"`

	// Serve contains inspection server configuration.
	Serve ServeConfig `yaml:"serve"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Output contains configuration for printed HTML and errors.
	Output OutputConfig `yaml:"output"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level,omitempty"`
}

// ServeConfig contains inspection server settings.
type ServeConfig struct {
	// Addr is the host:port to listen on.
	Addr string `yaml:"addr,omitempty"`

	// AllowedOrigins lists origins permitted to open the mutation stream.
	// Empty allows same-origin requests only.
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `yaml:"namespace,omitempty"`
	Subsystem string `yaml:"subsystem,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// TracerName is the instrumentation name of render pass spans.
	TracerName string `yaml:"tracerName,omitempty"`
}

// OutputConfig contains output settings.
type OutputConfig struct {
	// Minify minifies rendered HTML.
	Minify bool `yaml:"minify,omitempty"`

	// Color enables ANSI colors in error output.
	Color bool `yaml:"color,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Log: LogConfig{Level: DefaultLogLevel},
		Serve: ServeConfig{
			Addr: DefaultAddr,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
			Subsystem: DefaultSubsystem,
		},
		Tracing: TracingConfig{TracerName: DefaultTracerName},
		Output:  OutputConfig{Color: true},
	}
}

// Load reads configuration from the specified directory.
// It looks for vdomctl.yaml in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid YAML")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Subsystem == "" {
		c.Metrics.Subsystem = DefaultSubsystem
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if _, _, err := net.SplitHostPort(c.Serve.Addr); err != nil {
		return errors.New("E122").
			WithDetail("serve.addr must be host:port, got " + c.Serve.Addr).
			Wrap(err)
	}
	for _, origin := range c.Serve.AllowedOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return errors.New("E122").
				WithDetail("serve.allowedOrigins entries must be http(s) origins, got " + origin)
		}
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E122").
			WithDetail("log.level must be debug, info, warn or error, got " + c.Log.Level)
	}
	return level, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the directory containing
// vdomctl.yaml.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory
// or its nearest parent holding vdomctl.yaml. Defaults are returned when
// there is none.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.CodeOf(err) == "E121" {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}
