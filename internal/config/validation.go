package config

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/versions"
)

// Purpose names what a configuration is about to be used for; each one
// needs a different set of required settings.
type Purpose int

const (
	// PurposeInject needs everything the dropdown run uses.
	PurposeInject Purpose = iota
	// PurposeRewriteSearch needs the pattern and the base URL.
	PurposeRewriteSearch
	// PurposeList needs the pattern.
	PurposeList
)

// Validate checks cfg for an inject run.
func Validate(cfg *Config) error {
	return ValidateFor(cfg, PurposeInject)
}

// ValidateFor checks cfg for purpose.
func ValidateFor(cfg *Config, purpose Purpose) error {
	v := &configurationValidator{config: cfg, purpose: purpose}
	return v.validate()
}

type configurationValidator struct {
	config  *Config
	purpose Purpose
}

func (cv *configurationValidator) validate() error {
	for _, step := range []func() error{
		cv.validateSelection,
		cv.validateLinks,
		cv.validateProcessing,
		cv.validateLogging,
		cv.validatePublish,
		cv.validateWatch,
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (cv *configurationValidator) validateSelection() error {
	c := cv.config
	if strings.TrimSpace(c.Root) == "" {
		return errors.ConfigRequired("root")
	}
	if _, err := versions.CompilePattern(c.Pattern); err != nil {
		return err
	}
	if _, err := versions.ParseConstraint(c.Constraint); err != nil {
		return err
	}
	if cv.purpose == PurposeInject {
		if len(c.RefsOrder) == 0 {
			return errors.ConfigRequired("refs_order")
		}
		for _, ref := range c.RefsOrder {
			if strings.TrimSpace(ref) == "" {
				return errors.ValidationFailed("refs_order", "empty version name")
			}
		}
	}
	return nil
}

func (cv *configurationValidator) validateLinks() error {
	if cv.purpose == PurposeList {
		return nil
	}
	if cv.config.BaseURL == "" {
		return errors.ConfigRequired("base_url")
	}
	return nil
}

func (cv *configurationValidator) validateProcessing() error {
	if cv.config.Workers < 0 {
		return errors.ValidationFailed("workers", "must not be negative")
	}
	return nil
}

func (cv *configurationValidator) validateLogging() error {
	switch strings.ToLower(cv.config.Logging.Format) {
	case "", "text", "json":
	default:
		return errors.ValidationFailed("logging.format", fmt.Sprintf("unsupported format %q (use text or json)", cv.config.Logging.Format))
	}
	switch strings.ToLower(cv.config.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.ValidationFailed("logging.level", fmt.Sprintf("unsupported level %q", cv.config.Logging.Level))
	}
	return nil
}

func (cv *configurationValidator) validatePublish() error {
	c := cv.config
	if c.Commit.Enabled {
		if strings.TrimSpace(c.Commit.Message) == "" {
			return errors.ConfigRequired("commit.message")
		}
		if _, err := mail.ParseAddress(c.Commit.AuthorEmail); err != nil {
			return errors.ValidationFailed("commit.author_email", err.Error())
		}
	}
	if c.Notify.NATSURL != "" && strings.TrimSpace(c.Notify.Subject) == "" {
		return errors.ConfigRequired("notify.subject")
	}
	retry := c.Notify.Retry
	if retry.Backoff != "" && NormalizeRetryBackoff(string(retry.Backoff)) == "" {
		return errors.ValidationFailed("notify.retry.backoff", fmt.Sprintf("unsupported mode %q (use fixed, linear or exponential)", retry.Backoff))
	}
	if retry.MaxRetries != nil && *retry.MaxRetries < 0 {
		return errors.ValidationFailed("notify.retry.max_retries", "must not be negative")
	}
	return nil
}

func (cv *configurationValidator) validateWatch() error {
	for field, value := range map[string]string{
		"watch.interval":       cv.config.Watch.Interval,
		"watch.debounce":       cv.config.Watch.Debounce,
		"notify.retry.initial": cv.config.Notify.Retry.Initial,
		"notify.retry.max":     cv.config.Notify.Retry.Max,
	} {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.ValidationFailed(field, err.Error())
		}
		if d < 0 {
			return errors.ValidationFailed(field, "must not be negative")
		}
	}
	return nil
}
