package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/universal/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "universal.json"

	// DefaultAddr is the default host server listen address.
	DefaultAddr = ":4000"

	// DefaultStabilityTimeout bounds the wait for application stability.
	DefaultStabilityTimeout = "30s"

	// DefaultResourceRoot is the directory resource URLs resolve against.
	DefaultResourceRoot = "."

	// DefaultLogLevel is the default slog level name.
	DefaultLogLevel = "info"
)

// configFileNames lists the files Load looks for, in order.
var configFileNames = []string{ConfigFileName, "universal.yaml", "universal.yml"}

// Config represents the complete universal.json configuration.
type Config struct {
	// AppSelector is the root element written as a tag, e.g. "<app-root></app-root>".
	AppSelector string `json:"appSelector,omitempty" yaml:"appSelector,omitempty"`

	// Document is the initial document template. Defaults to AppSelector.
	Document string `json:"document,omitempty" yaml:"document,omitempty"`

	// Module describes the application module to render.
	Module ModuleConfig `json:"module,omitempty" yaml:"module,omitempty"`

	// StabilityTimeout bounds the wait for stability (e.g., "30s").
	StabilityTimeout string `json:"stabilityTimeout,omitempty" yaml:"stabilityTimeout,omitempty"`

	// Cache contains factory cache settings.
	Cache CacheConfig `json:"cache,omitempty" yaml:"cache,omitempty"`

	// Resources contains resource loader settings.
	Resources ResourcesConfig `json:"resources,omitempty" yaml:"resources,omitempty"`

	// Server contains host server settings.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Watch purges the factory cache when resources change.
	Watch bool `json:"watch,omitempty" yaml:"watch,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ModuleConfig describes a template module.
type ModuleConfig struct {
	// ID is the stable module identity used as the cache key.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Template is the resource URL of the component template.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// Styles are resource URLs of component stylesheets.
	Styles []string `json:"styles,omitempty" yaml:"styles,omitempty"`
}

// CacheConfig contains factory cache settings.
type CacheConfig struct {
	// MaxEntries bounds the cache. Zero means unbounded.
	MaxEntries int `json:"maxEntries,omitempty" yaml:"maxEntries,omitempty"`
}

// ResourcesConfig contains resource loader settings.
type ResourcesConfig struct {
	// Root is the directory resource URLs resolve against.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`

	// Manifest is an optional fingerprint manifest path.
	Manifest string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// ServerConfig contains host server settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		StabilityTimeout: DefaultStabilityTimeout,
		Resources: ResourcesConfig{
			Root: DefaultResourceRoot,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads configuration from the specified directory.
// It looks for universal.json, then universal.yaml and universal.yml.
func Load(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No universal.json found in " + filepath.Dir(path))
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in YAML when the
// extension says so.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
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
	if c.StabilityTimeout == "" {
		c.StabilityTimeout = DefaultStabilityTimeout
	}
	if c.Resources.Root == "" {
		c.Resources.Root = DefaultResourceRoot
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Document == "" {
		c.Document = c.AppSelector
	}
	if c.Module.ID == "" {
		c.Module.ID = c.Module.Template
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.AppSelector == "" {
		return errors.New("E121").
			WithDetail("appSelector is required").
			WithSuggestion(`Set "appSelector": "<app-root></app-root>"`)
	}
	if c.Module.Template == "" {
		return errors.New("E121").
			WithDetail("module.template is required")
	}
	if _, err := c.StabilityTimeoutDuration(); err != nil {
		return err
	}
	if c.Cache.MaxEntries < 0 {
		return errors.New("E122").
			WithDetail("cache.maxEntries must not be negative")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return errors.New("E122").
			WithDetail("logLevel must be one of debug, info, warn, error")
	}
	return nil
}

// StabilityTimeoutDuration parses StabilityTimeout.
func (c *Config) StabilityTimeoutDuration() (time.Duration, error) {
	s := c.StabilityTimeout
	if s == "" {
		s = DefaultStabilityTimeout
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.New("E122").
			WithDetail("stabilityTimeout must be a duration such as \"30s\"").
			Wrap(err)
	}
	if d <= 0 {
		return 0, errors.New("E122").
			WithDetail("stabilityTimeout must be positive")
	}
	return d, nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// ResourceRoot returns the absolute path to the resource root.
func (c *Config) ResourceRoot() string {
	return c.resolve(c.Resources.Root)
}

// ManifestPath returns the absolute path to the asset manifest, or "" if
// none is configured.
func (c *Config) ManifestPath() string {
	if c.Resources.Manifest == "" {
		return ""
	}
	return c.resolve(c.Resources.Manifest)
}

func (c *Config) resolve(path string) string {
	if path == "" {
		path = DefaultResourceRoot
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range configFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
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
			return "", errors.New("E141").
				WithDetail("No universal.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
