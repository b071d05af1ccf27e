package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docversions/internal/config"
	"git.home.luguber.info/inful/docversions/internal/observability"
)

// Global context passed to subcommands.
type Global struct {
	// Stdout receives the per-file marker lines and command output.
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (optional)" type:"path" env:"DOCVERSIONS_CONFIG"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format (text or json)" env:"DOCVERSIONS_LOG_FORMAT"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Inject        InjectCmd        `cmd:"" default:"withargs" help:"Inject the versions dropdown into every HTML page (default)"`
	RewriteSearch RewriteSearchCmd `cmd:"" name:"rewrite-search" help:"Point search.json URLs at each version's own path"`
	List          ListCmd          `cmd:"" help:"Print the resolved version order"`
	Watch         WatchCmd         `cmd:"" help:"Re-run whenever a version directory is added or removed"`
	Init          InitCmd          `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(observability.NewLogger(os.Stderr, c.Verbose, c.LogFormat))
	return nil
}

// SelectionFlags choose the version directories and their links.
type SelectionFlags struct {
	Root       string   `arg:"" optional:"" help:"Site root holding one directory per version" type:"path"`
	Pattern    string   `help:"Regular expression a version directory name must match in full" env:"DOCVERSIONS_PATTERN"`
	RefsOrder  []string `name:"refs_order" aliases:"refs-order" sep:"," help:"Version names listed first, in this order (comma separated or repeated)" env:"DOCVERSIONS_REFS_ORDER"`
	BaseURL    string   `name:"base_url" aliases:"base-url" help:"URL prefix of every version link" env:"DOCVERSIONS_BASE_URL"`
	Constraint string   `help:"Only list versions satisfying this semver range, e.g. '>= 1.0, < 3'" env:"DOCVERSIONS_CONSTRAINT"`
}

func (s SelectionFlags) overrides() config.Overrides {
	return config.Overrides{
		Root:       s.Root,
		Pattern:    s.Pattern,
		RefsOrder:  splitRefs(s.RefsOrder),
		BaseURL:    s.BaseURL,
		Constraint: s.Constraint,
	}
}

// splitRefs trims the names and drops empty ones left by "a,,b".
func splitRefs(refs []string) []string {
	var out []string
	for _, r := range refs {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// loadConfig reads the configuration file named on the command line, if
// any, and lets the command-line values win.
func loadConfig(root *CLI, o config.Overrides) (*config.Config, error) {
	var cfg *config.Config
	if root != nil && root.Config != "" {
		loaded, err := config.Load(root.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if root != nil {
		o.LogFormat = root.LogFormat
	}
	cfg.Apply(o)

	level := observability.ParseLevel(cfg.Logging.Level)
	if root != nil && root.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(observability.NewLeveledLogger(os.Stderr, level, cfg.Logging.Format))
	return cfg, nil
}
