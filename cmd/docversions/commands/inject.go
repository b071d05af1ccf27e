package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docversions/internal/config"
)

// InjectCmd implements the default 'inject' command.
type InjectCmd struct {
	SelectionFlags  `embed:""`
	ProcessingFlags `embed:""`
}

// ProcessingFlags tune how pages are modified and what happens after a run.
type ProcessingFlags struct {
	N             *int   `name:"insert-index" short:"n" aliases:"n" help:"Insert after the n-th (0-based) navigation item instead of the last one"`
	Label         string `help:"Dropdown toggle text" placeholder:"Versions"`
	NoStripLegacy bool   `name:"no-strip-legacy" help:"Do not remove marker-delimited dropdowns before parsing"`
	NoMarkers     bool   `name:"no-markers" help:"Do not wrap the dropdown in marker comments"`
	NoSearchIndex bool   `name:"no-search-index" help:"Do not rewrite search.json URLs"`
	Workers       int    `help:"Number of files processed concurrently" env:"DOCVERSIONS_WORKERS"`

	Report      string `help:"Write the run report as JSON to this file" type:"path"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file" type:"path"`

	Commit        bool   `help:"Commit the changed files to the enclosing git work tree"`
	CommitMessage string `name:"commit-message" help:"Commit message"`
	NATSURL       string `name:"nats-url" help:"Publish the run report to this NATS server" env:"DOCVERSIONS_NATS_URL"`
	NATSSubject   string `name:"nats-subject" help:"NATS subject for the run report"`
}

func (p ProcessingFlags) apply(o *config.Overrides) {
	o.InsertIndex = p.N
	o.Label = p.Label
	o.NoStripLegacy = p.NoStripLegacy
	o.NoMarkers = p.NoMarkers
	o.NoSearchIndex = p.NoSearchIndex
	o.Workers = p.Workers
	o.Report = p.Report
	o.MetricsFile = p.MetricsFile
	o.Commit = p.Commit
	o.CommitMessage = p.CommitMessage
	o.NATSURL = p.NATSURL
	o.NATSSubject = p.NATSSubject
}

func (c *InjectCmd) overrides() config.Overrides {
	o := c.SelectionFlags.overrides()
	c.ProcessingFlags.apply(&o)
	return o
}

func (c *InjectCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root, c.overrides())
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, err = runInject(ctx, cfg, g.stdout())
	return err
}
