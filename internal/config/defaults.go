package config

import "time"

// Defaults shared with the command line.
const (
	DefaultCommitMessage = "docs: update versions dropdown"
	DefaultAuthorName    = "docversions"
	DefaultAuthorEmail   = "docversions@localhost"
	DefaultNATSSubject   = "docversions.runs"
	DefaultWatchDebounce = 2 * time.Second
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ProcessingDefaultApplier handles processing defaults.
type ProcessingDefaultApplier struct{}

func (ProcessingDefaultApplier) Domain() string { return "processing" }

func (ProcessingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	return nil
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	return nil
}

// PublishDefaultApplier handles commit and notification defaults.
type PublishDefaultApplier struct{}

func (PublishDefaultApplier) Domain() string { return "publish" }

func (PublishDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Commit.Message == "" {
		cfg.Commit.Message = DefaultCommitMessage
	}
	if cfg.Commit.AuthorName == "" {
		cfg.Commit.AuthorName = DefaultAuthorName
	}
	if cfg.Commit.AuthorEmail == "" {
		cfg.Commit.AuthorEmail = DefaultAuthorEmail
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNATSSubject
	}
	if cfg.Notify.Retry.Backoff == "" {
		cfg.Notify.Retry.Backoff = RetryBackoffLinear
	} else if mode := NormalizeRetryBackoff(string(cfg.Notify.Retry.Backoff)); mode != "" {
		cfg.Notify.Retry.Backoff = mode
	}
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultWatchDebounce.String()
	}
	return nil
}

var defaultAppliers = []DefaultApplier{
	ProcessingDefaultApplier{},
	LoggingDefaultApplier{},
	PublishDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
