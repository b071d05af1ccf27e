// Package injector walks a site tree and splices the versions dropdown into
// every HTML page, one file at a time. A file that cannot be handled is
// reported and skipped; only an unreadable root stops a run.
package injector

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/docversions/internal/dropdown"
	"git.home.luguber.info/inful/docversions/internal/errors"
	"git.home.luguber.info/inful/docversions/internal/logfields"
	"git.home.luguber.info/inful/docversions/internal/metrics"
	"git.home.luguber.info/inful/docversions/internal/observability"
	"git.home.luguber.info/inful/docversions/internal/util/sets"
)

// HTMLExt is the extension of processed files.
const HTMLExt = ".html"

// Processor applies one fragment to many pages.
type Processor struct {
	Fragment    dropdown.Fragment
	Mode        dropdown.Mode
	StripLegacy bool
	// Workers > 1 processes files concurrently.
	Workers  int
	Recorder metrics.Recorder
	// Out receives one marker line per visited file; nil discards them.
	Out io.Writer

	outMu sync.Mutex
}

// Run processes every HTML file below root. The returned Report is never nil
// when the error is a cancellation.
func (p *Processor) Run(ctx context.Context, root string) (*Report, error) {
	report := &Report{
		RunID:     observability.GetContext(ctx).RunID,
		Root:      root,
		StartedAt: time.Now(),
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.RootUnreadable(root, err)
	}
	if !info.IsDir() {
		return nil, errors.RootUnreadable(root, fmt.Errorf("%s is not a directory", root))
	}

	paths, walkFailures, err := collect(root)
	if err != nil {
		return nil, err
	}

	results := p.Process(ctx, paths)
	for _, f := range walkFailures {
		p.emit(ctx, f)
	}
	report.finish(append(results, walkFailures...))
	report.Duration = time.Since(report.StartedAt)

	observability.InfoContext(ctx, "HTML pages processed",
		logfields.Count(len(report.Files)),
		slog.Int("injected", report.Counts[OutcomeInjected]),
		slog.Int("failed", report.Counts[OutcomeFailed]),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))

	return report, ctx.Err()
}

// collect lists the HTML files below root, including symlinks to files.
// Symlinked directories are not descended into. Entries that cannot be
// walked become failed results.
func collect(root string) ([]string, []FileResult, error) {
	var paths []string
	var failures []FileResult

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return errors.RootUnreadable(root, err)
			}
			failures = append(failures, FileResult{
				Path:    path,
				Outcome: OutcomeFailed,
				Error:   errors.WrapError(err, errors.CategoryFileSystem, "failed to walk path").Error(),
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if (d.Type().IsRegular() || d.Type()&fs.ModeSymlink != 0) && strings.HasSuffix(d.Name(), HTMLExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return paths, failures, nil
}

// Process handles paths once each. A path listed again, in any spelling or
// through a symlink that resolves to the same file, is reported as a
// duplicate.
func (p *Processor) Process(ctx context.Context, paths []string) []FileResult {
	seen := sets.NewSync[string]()
	results := make([]FileResult, len(paths))
	done := make([]bool, len(paths))

	handle := func(i int) {
		results[i] = p.processOnce(ctx, paths[i], seen)
		done[i] = true
		p.emit(ctx, results[i])
	}

	if p.Workers <= 1 {
		for i := range paths {
			if ctx.Err() != nil {
				break
			}
			handle(i)
		}
	} else {
		jobs := make(chan int)
		var group workerGroup
		for w := 0; w < p.Workers; w++ {
			group.Go(func() {
				for i := range jobs {
					handle(i)
				}
			})
		}
	feed:
		for i := range paths {
			select {
			case jobs <- i:
			case <-ctx.Done():
				break feed
			}
		}
		close(jobs)
		_ = group.StopAndWait(context.Background())
	}

	out := results[:0]
	for i, r := range results {
		if done[i] {
			out = append(out, r)
		}
	}
	return out
}

func (p *Processor) processOnce(ctx context.Context, path string, seen *sets.SyncSet[string]) FileResult {
	key := path
	if abs, err := filepath.Abs(path); err == nil {
		key = abs
	}
	if real, err := filepath.EvalSymlinks(key); err == nil {
		key = real
	}
	if !seen.AddIfAbsent(key) {
		return FileResult{Path: path, Outcome: OutcomeDuplicate}
	}

	outcome, err := p.ProcessFile(path)
	res := FileResult{Path: path, Outcome: outcome}
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

// ProcessFile reads, transforms and (when needed) rewrites a single page.
// The file is written only when the dropdown was applied and the bytes
// changed; its permission bits are kept.
func (p *Processor) ProcessFile(path string) (Outcome, error) {
	info, err := os.Stat(path)
	if err != nil {
		return OutcomeFailed, errors.FileReadFailed(path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return OutcomeFailed, errors.FileReadFailed(path, err)
	}

	original := string(data)
	markup := original
	if p.StripLegacy {
		markup, _ = dropdown.StripLegacy(markup)
	}

	out, applied, err := dropdown.Apply(markup, p.Fragment, p.Mode)
	if err != nil {
		return OutcomeFailed, errors.MarkupParseFailed(path, err)
	}
	if !applied {
		return OutcomeNoNavigation, nil
	}
	if out == original {
		return OutcomeUnchanged, nil
	}

	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return OutcomeFailed, errors.FileWriteFailed(path, err)
	}
	return OutcomeInjected, nil
}

func (p *Processor) emit(ctx context.Context, res FileResult) {
	if p.Recorder != nil {
		p.Recorder.IncFileOutcome(res.Outcome.metric())
	}

	switch res.Outcome {
	case OutcomeFailed:
		observability.ErrorContext(ctx, "Failed to process HTML file", logfields.File(res.Path), slog.String(logfields.KeyError, res.Error))
	case OutcomeNoNavigation:
		observability.InfoContext(ctx, "No navigation items found, file left unchanged", logfields.File(res.Path))
	default:
		observability.DebugContext(ctx, "HTML file processed", logfields.File(res.Path), logfields.Outcome(string(res.Outcome)))
	}

	if p.Out == nil {
		return
	}
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.Out, "%s %s\n", res.Outcome.marker(), res.Path)
}
