package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docversions/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docversions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("DOCS_BASE", "https://docs.example.com/")
	path := writeConfig(t, `
root: ./public
pattern: 'latest|\d+\.\d+'
refs_order: [latest, stable]
base_url: ${DOCS_BASE}
insert_index: 2
markers: false
constraint: ">= 1.0"
commit:
  enabled: true
notify:
  nats_url: nats://localhost:4222
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./public", cfg.Root)
	assert.Equal(t, `latest|\d+\.\d+`, cfg.Pattern)
	assert.Equal(t, []string{"latest", "stable"}, cfg.RefsOrder)
	assert.Equal(t, "https://docs.example.com/", cfg.BaseURL)
	require.NotNil(t, cfg.InsertIndex)
	assert.Equal(t, 2, *cfg.InsertIndex)
	assert.False(t, Enabled(cfg.Markers, true))
	assert.True(t, Enabled(cfg.StripLegacy, true))
	assert.Equal(t, ">= 1.0", cfg.Constraint)

	// defaults
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, DefaultCommitMessage, cfg.Commit.Message)
	assert.Equal(t, DefaultNATSSubject, cfg.Notify.Subject)
	assert.Equal(t, "2s", cfg.Watch.Debounce)

	require.NoError(t, Validate(cfg))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "pattern: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCVERSIONS_TEST_PATTERN=v\\d+\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("DOCVERSIONS_TEST_PATTERN") })

	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pattern: ${DOCVERSIONS_TEST_PATTERN}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, `v\d+`, cfg.Pattern)
}

func TestApply_OverridesWin(t *testing.T) {
	cfg := Default()
	cfg.Pattern = "file-pattern"
	cfg.RefsOrder = []string{"from-file"}
	cfg.BaseURL = "https://file/"

	n := 0
	cfg.Apply(Overrides{
		Pattern:       "cli-pattern",
		RefsOrder:     []string{"latest", "main"},
		InsertIndex:   &n,
		NoMarkers:     true,
		NoSearchIndex: true,
		Workers:       4,
		Commit:        true,
		NATSURL:       "nats://cli:4222",
	})

	assert.Equal(t, "cli-pattern", cfg.Pattern)
	assert.Equal(t, []string{"latest", "main"}, cfg.RefsOrder)
	assert.Equal(t, "https://file/", cfg.BaseURL)
	require.NotNil(t, cfg.InsertIndex)
	assert.Equal(t, 0, *cfg.InsertIndex)
	assert.False(t, Enabled(cfg.Markers, true))
	assert.False(t, Enabled(cfg.SearchIndex, true))
	assert.True(t, Enabled(cfg.StripLegacy, true))
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Commit.Enabled)
	assert.Equal(t, "nats://cli:4222", cfg.Notify.NATSURL)
}

func TestApply_EmptyOverridesKeepFile(t *testing.T) {
	cfg := Default()
	cfg.Pattern = "p"
	cfg.RefsOrder = []string{"a"}
	cfg.Workers = 3

	cfg.Apply(Overrides{})

	assert.Equal(t, "p", cfg.Pattern)
	assert.Equal(t, []string{"a"}, cfg.RefsOrder)
	assert.Equal(t, 3, cfg.Workers)
	assert.Nil(t, cfg.Markers)
}

func validConfig() *Config {
	cfg := Default()
	cfg.Root = "site"
	cfg.Pattern = `\d+\.\d+`
	cfg.RefsOrder = []string{"latest"}
	cfg.BaseURL = "/"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		purpose  Purpose
		category errors.ErrorCategory
	}{
		{"missing root", func(c *Config) { c.Root = "" }, PurposeInject, errors.CategoryConfig},
		{"missing pattern", func(c *Config) { c.Pattern = "" }, PurposeInject, errors.CategoryConfig},
		{"bad pattern", func(c *Config) { c.Pattern = "(" }, PurposeInject, errors.CategoryValidation},
		{"missing refs", func(c *Config) { c.RefsOrder = nil }, PurposeInject, errors.CategoryConfig},
		{"blank ref", func(c *Config) { c.RefsOrder = []string{" "} }, PurposeInject, errors.CategoryValidation},
		{"missing base url", func(c *Config) { c.BaseURL = "" }, PurposeRewriteSearch, errors.CategoryConfig},
		{"bad constraint", func(c *Config) { c.Constraint = "~> nope" }, PurposeList, errors.CategoryValidation},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, PurposeInject, errors.CategoryValidation},
		{"bad author email", func(c *Config) { c.Commit.Enabled = true; c.Commit.AuthorEmail = "nope" }, PurposeInject, errors.CategoryValidation},
		{"bad interval", func(c *Config) { c.Watch.Interval = "soon" }, PurposeInject, errors.CategoryValidation},
		{"negative workers", func(c *Config) { c.Workers = -2 }, PurposeInject, errors.CategoryValidation},
		{"bad retry backoff", func(c *Config) { c.Notify.Retry.Backoff = "random" }, PurposeInject, errors.CategoryValidation},
		{"bad retry initial", func(c *Config) { c.Notify.Retry.Initial = "later" }, PurposeInject, errors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateFor(cfg, tt.purpose)
			require.Error(t, err)
			assert.True(t, errors.IsCategory(err, tt.category), "got %v", err)
		})
	}
}

func TestValidate_PurposeRelaxesRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.RefsOrder = nil
	require.NoError(t, ValidateFor(cfg, PurposeRewriteSearch))

	cfg.BaseURL = ""
	require.NoError(t, ValidateFor(cfg, PurposeList))
	require.Error(t, ValidateFor(cfg, PurposeRewriteSearch))
}

func TestLoad_NormalizesRetryBackoff(t *testing.T) {
	cfg, err := Load(writeConfig(t, "notify:\n  retry:\n    backoff: Exponential\n    max_retries: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, RetryBackoffExponential, cfg.Notify.Retry.Backoff)
	require.NotNil(t, cfg.Notify.Retry.MaxRetries)
	assert.Equal(t, 0, *cfg.Notify.Retry.MaxRetries)

	assert.Equal(t, RetryBackoffLinear, Default().Notify.Retry.Backoff)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docversions.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	assert.True(t, Enabled(cfg.Markers, false))
}
