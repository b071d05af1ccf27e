package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docversions/internal/config"
	"git.home.luguber.info/inful/docversions/internal/logfields"
	"git.home.luguber.info/inful/docversions/internal/observability"
	"git.home.luguber.info/inful/docversions/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SelectionFlags  `embed:""`
	ProcessingFlags `embed:""`
	Interval        string `help:"Also re-run on this interval, e.g. 10m (disabled when empty)" env:"DOCVERSIONS_WATCH_INTERVAL"`
	Debounce        string `help:"Wait this long after the last directory event before running"`
}

func (c *WatchCmd) Run(g *Global, root *CLI) error {
	o := c.SelectionFlags.overrides()
	c.ProcessingFlags.apply(&o)
	o.Interval = c.Interval
	o.Debounce = c.Debounce

	cfg, err := loadConfig(root, o)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	opts := watch.Options{}
	if cfg.Watch.Interval != "" {
		opts.Interval, _ = time.ParseDuration(cfg.Watch.Interval)
	}
	if cfg.Watch.Debounce != "" {
		opts.Debounce, _ = time.ParseDuration(cfg.Watch.Debounce)
	}

	out := g.stdout()
	w, err := watch.New(cfg.Root, func(ctx context.Context, trigger string) error {
		report, err := runInject(ctx, cfg, out)
		if err != nil {
			return err
		}
		observability.InfoContext(ctx, "Run complete",
			logfields.RunID(report.RunID),
			slog.String("trigger", trigger),
			logfields.Count(len(report.ChangedFiles())))
		return nil
	}, opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.Run(ctx)
}
