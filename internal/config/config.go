package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Defaults taken by every command when neither a config file nor a flag overrides them
const (
	DefaultEndpoint   = "https://bfhl-backend-9wfy.onrender.com"
	DefaultRollNumber = "2237889"
	DefaultTitle      = "Bajaj Finserv Health Dev Challenge"
	DefaultLogFile    = "/tmp/reqninja.out"
	DefaultFileName   = ".reqninja.toml"
)

// Config represents the application configuration
type Config struct {
	Endpoint   string        `toml:"endpoint" mapstructure:"endpoint"`
	Timeout    time.Duration `toml:"timeout" mapstructure:"timeout"` // 0 disables the client timeout
	RollNumber string        `toml:"roll_number" mapstructure:"roll_number"`
	Title      string        `toml:"title" mapstructure:"title"`
	LogFile    string        `toml:"log_file" mapstructure:"log_file"`
	Verbose    bool          `toml:"verbose" mapstructure:"verbose"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Endpoint:   DefaultEndpoint,
		Timeout:    0,
		RollNumber: DefaultRollNumber,
		Title:      DefaultTitle,
		LogFile:    DefaultLogFile,
	}
}

// SetDefaults registers the built-in values on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("roll_number", d.RollNumber)
	v.SetDefault("title", d.Title)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("verbose", d.Verbose)
}

// Load reads configuration into v from path on fs.
// An empty path looks for DefaultFileName in the working directory and
// tolerates its absence; an explicit path must exist.
func Load(v *viper.Viper, fs afero.Fs, path string) (*Config, error) {
	SetDefaults(v)
	v.SetFs(fs)
	v.SetConfigType("toml")

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}

	if exists {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration can drive a submission
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint cannot be empty")
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", c.Endpoint)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative: %s", c.Timeout)
	}

	return nil
}

// Save writes cfg as TOML to path on fs
func Save(fs afero.Fs, path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
