package commands

import (
	"context"
	"io"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docversions/internal/config"
	"git.home.luguber.info/inful/docversions/internal/dropdown"
	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/injector"
	"git.home.luguber.info/inful/docversions/internal/logfields"
	"git.home.luguber.info/inful/docversions/internal/metrics"
	"git.home.luguber.info/inful/docversions/internal/observability"
	"git.home.luguber.info/inful/docversions/internal/publish"
	"git.home.luguber.info/inful/docversions/internal/retry"
	"git.home.luguber.info/inful/docversions/internal/searchindex"
	"git.home.luguber.info/inful/docversions/internal/versions"
)

// resolve lists cfg.Root and orders its version directories.
func resolve(ctx context.Context, cfg *config.Config) (versions.Resolution, error) {
	pattern, err := versions.CompilePattern(cfg.Pattern)
	if err != nil {
		return versions.Resolution{}, err
	}
	constraint, err := versions.ParseConstraint(cfg.Constraint)
	if err != nil {
		return versions.Resolution{}, err
	}

	res, err := versions.ListAndResolve(cfg.Root, versions.Options{
		Pattern:    pattern,
		Pinned:     cfg.RefsOrder,
		BaseURL:    cfg.BaseURL,
		Constraint: constraint,
	})
	if err != nil {
		return versions.Resolution{}, err
	}

	observability.InfoContext(observability.WithStage(ctx, observability.StageResolve), "Resolved versions",
		logfields.Versions(res.Order),
		logfields.Count(len(res.Order)))
	return res, nil
}

// runInject performs one complete run: resolve, inject, rewrite search
// indices, then export, commit and notify as configured. Only fatal errors
// are returned; per-file failures are part of the report.
func runInject(ctx context.Context, cfg *config.Config, out io.Writer) (*injector.Report, error) {
	start := time.Now()
	ctx = observability.WithRoot(observability.WithRunID(ctx, observability.NewRunID()), cfg.Root)

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prom.Registry
	if cfg.MetricsFile != "" {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	res, err := resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}
	recorder.SetVersionsResolved(len(res.Order))

	mode := dropdown.InsertAfterLast()
	if cfg.InsertIndex != nil {
		mode = dropdown.InsertAfterIndex(*cfg.InsertIndex)
	}

	proc := &injector.Processor{
		Fragment: dropdown.Render(res.Order, res.URLs, dropdown.RenderOptions{
			Label:   cfg.Label,
			Markers: config.Enabled(cfg.Markers, true),
		}),
		Mode:        mode,
		StripLegacy: config.Enabled(cfg.StripLegacy, true),
		Workers:     cfg.Workers,
		Recorder:    recorder,
		Out:         out,
	}

	report, err := proc.Run(observability.WithStage(ctx, observability.StageInject), cfg.Root)
	if err != nil {
		return report, err
	}
	report.Versions = res.Order

	if config.Enabled(cfg.SearchIndex, true) {
		report.SearchIndex = searchindex.RewriteAll(observability.WithStage(ctx, observability.StageSearch),
			cfg.Root, versions.Order(res.Matched), cfg.BaseURL)
		for _, r := range report.SearchIndex {
			if r.Error == "" {
				recorder.IncSearchIndexRewrite(r.Changed)
			}
		}
	}

	report.Duration = time.Since(start)
	recorder.ObserveRunDuration(report.Duration)

	if err := publishRun(observability.WithStage(ctx, observability.StagePublish), cfg, report, registry); err != nil {
		return report, err
	}
	return report, nil
}

func publishRun(ctx context.Context, cfg *config.Config, report *injector.Report, registry *prom.Registry) error {
	if cfg.Report != "" {
		if err := report.WriteFile(cfg.Report); err != nil {
			return errors.FileWriteFailed(cfg.Report, err).WithSeverity(errors.SeverityFatal)
		}
	}

	if registry != nil {
		if err := metrics.WriteTextfile(cfg.MetricsFile, registry); err != nil {
			return errors.FileWriteFailed(cfg.MetricsFile, err).WithSeverity(errors.SeverityFatal)
		}
	}

	if cfg.Commit.Enabled {
		committer := &publish.Committer{
			Message:     cfg.Commit.Message,
			AuthorName:  cfg.Commit.AuthorName,
			AuthorEmail: cfg.Commit.AuthorEmail,
		}
		if _, _, err := committer.Commit(ctx, cfg.Root, report.ChangedFiles()); err != nil {
			return err
		}
	}

	if cfg.Notify.NATSURL != "" {
		notifier := publish.NewNATSNotifier(cfg.Notify.NATSURL, cfg.Notify.Subject)
		notifier.Retry = retry.FromConfig(cfg.Notify.Retry)
		if err := notifier.Notify(ctx, report); err != nil {
			return err
		}
	}
	return nil
}
