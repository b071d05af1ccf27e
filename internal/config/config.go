package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docversions/internal/errors"
)

// Config is the docversions configuration file. Every field can also be set
// on the command line; see Overrides.
type Config struct {
	// Root is the site tree holding one directory per version.
	Root string `yaml:"root,omitempty"`
	// Pattern selects version directories; it must match the whole name.
	Pattern string `yaml:"pattern"`
	// RefsOrder lists the names shown first, in this order.
	RefsOrder []string `yaml:"refs_order"`
	// BaseURL is prefixed to every version name to build its link.
	BaseURL string `yaml:"base_url"`
	// InsertIndex selects the n-th navigation item instead of the last one.
	InsertIndex *int `yaml:"insert_index,omitempty"`
	// Constraint is an optional semver range narrowing the listed versions.
	Constraint string `yaml:"constraint,omitempty"`
	Label      string `yaml:"label,omitempty"`

	StripLegacy *bool `yaml:"strip_legacy,omitempty"`
	Markers     *bool `yaml:"markers,omitempty"`
	SearchIndex *bool `yaml:"search_index,omitempty"`

	Workers int `yaml:"workers,omitempty"`

	Logging LoggingConfig `yaml:"logging"`
	Commit  CommitConfig  `yaml:"commit"`
	Notify  NotifyConfig  `yaml:"notify"`
	Watch   WatchConfig   `yaml:"watch"`

	MetricsFile string `yaml:"metrics_file,omitempty"`
	Report      string `yaml:"report,omitempty"`
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // "text" or "json"
}

// CommitConfig controls committing the changed files to the enclosing
// git work tree.
type CommitConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Message     string `yaml:"message,omitempty"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
}

// NotifyConfig controls publishing the run report on NATS.
type NotifyConfig struct {
	NATSURL string      `yaml:"nats_url,omitempty"`
	Subject string      `yaml:"subject,omitempty"`
	Retry   RetryConfig `yaml:"retry,omitempty"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Interval string `yaml:"interval,omitempty"`
	Debounce string `yaml:"debounce,omitempty"`
}

// Enabled reports whether b is set to true, or def when unset.
func Enabled(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// Load reads configPath, expands ${VAR} references against the environment
// (after loading .env files) and applies defaults.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with only defaults set.
func Default() *Config {
	cfg := &Config{}
	_ = applyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ValidationFailed("config", fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}

	markers := true
	example := Config{
		Root:      "./site",
		Pattern:   `latest|stable|\d+\.\d+(\.\d+)?`,
		RefsOrder: []string{"latest", "stable"},
		BaseURL:   "https://docs.example.com/",
		Markers:   &markers,
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Commit: CommitConfig{
			Message:     DefaultCommitMessage,
			AuthorName:  DefaultAuthorName,
			AuthorEmail: DefaultAuthorEmail,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config")
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.FileWriteFailed(configPath, err)
	}
	return nil
}
