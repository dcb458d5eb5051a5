package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

const (
	// DirEnv overrides the configuration directory
	DirEnv = "YTS_CONFIG_DIR"
	// DemoEnv switches to fixture data when truthy
	DemoEnv = "YTS_DEMO"

	configFile        = "config.yaml"
	clientSecretsFile = "client_secrets.json"
	credentialsFile   = "credentials.json"
)

// Config holds user defaults for yts.
type Config struct {
	// Output is the default output format: table, json or csv
	Output string `yaml:"output"`
	// Raw disables number abbreviation
	Raw bool `yaml:"raw"`
	// Days is the default analytics window
	Days int `yaml:"days"`
	// Currency is the ISO 4217 code for revenue metrics, empty for the channel default
	Currency string `yaml:"currency,omitempty"`
	// Demo serves fixture data instead of calling YouTube
	Demo bool `yaml:"demo"`
	// OAuthPort is the loopback port for the login callback
	OAuthPort int `yaml:"oauth_port"`
}

// Paths locates the files yts keeps in its configuration directory.
type Paths struct {
	Dir           string
	Config        string
	ClientSecrets string
	Credentials   string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Output:    "table",
		Days:      28,
		OAuthPort: 9876,
	}
}

// DefaultDir returns $YTS_CONFIG_DIR or ~/.config/ytstudio-cli.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ytstudio-cli"), nil
}

// PathsFor returns the file locations inside dir.
func PathsFor(dir string) Paths {
	return Paths{
		Dir:           dir,
		Config:        filepath.Join(dir, configFile),
		ClientSecrets: filepath.Join(dir, clientSecretsFile),
		Credentials:   filepath.Join(dir, credentialsFile),
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v, ok := os.LookupEnv(DemoEnv); ok {
		c.Demo = truthy(v)
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// ValidOutputs lists the supported output formats.
var ValidOutputs = []string{"table", "json", "csv"}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var result *multierror.Error

	valid := false
	for _, o := range ValidOutputs {
		if c.Output == o {
			valid = true
			break
		}
	}
	if !valid {
		result = multierror.Append(result, fmt.Errorf("invalid output: %s (valid: %v)", c.Output, ValidOutputs))
	}
	if c.Days <= 0 {
		result = multierror.Append(result, fmt.Errorf("days must be positive, got %d", c.Days))
	}
	if c.OAuthPort <= 0 || c.OAuthPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("oauth_port out of range: %d", c.OAuthPort))
	}
	if c.Currency != "" && len(c.Currency) != 3 {
		result = multierror.Append(result, fmt.Errorf("currency must be a three-letter code, got %q", c.Currency))
	}
	return result.ErrorOrNil()
}
