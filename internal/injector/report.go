package injector

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"git.home.luguber.info/inful/docversions/internal/metrics"
	"git.home.luguber.info/inful/docversions/internal/searchindex"
)

// Outcome is what happened to one visited HTML file.
type Outcome string

const (
	// OutcomeInjected means the dropdown was inserted and the file rewritten.
	OutcomeInjected Outcome = "injected"
	// OutcomeUnchanged means the dropdown was inserted but the bytes already
	// matched, so the file was left alone.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeNoNavigation means the page has no navigation item to insert
	// after (or the index was out of range).
	OutcomeNoNavigation Outcome = "no-navigation"
	// OutcomeFailed means the file could not be read, parsed or written.
	OutcomeFailed Outcome = "failed"
	// OutcomeDuplicate means the path was already handled in this run.
	OutcomeDuplicate Outcome = "duplicate"
)

func (o Outcome) marker() string {
	switch o {
	case OutcomeInjected:
		return "✅"
	case OutcomeFailed:
		return "❌"
	default:
		return "➖"
	}
}

func (o Outcome) metric() metrics.FileOutcome {
	switch o {
	case OutcomeInjected:
		return metrics.OutcomeInjected
	case OutcomeUnchanged:
		return metrics.OutcomeUnchanged
	case OutcomeNoNavigation:
		return metrics.OutcomeNoNavigation
	case OutcomeDuplicate:
		return metrics.OutcomeDuplicate
	default:
		return metrics.OutcomeFailed
	}
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// Report summarizes one run.
type Report struct {
	RunID       string               `json:"run_id"`
	Root        string               `json:"root"`
	Versions    []string             `json:"versions"`
	StartedAt   time.Time            `json:"started_at"`
	Duration    time.Duration        `json:"duration_ns"`
	Files       []FileResult         `json:"files"`
	Counts      map[Outcome]int      `json:"counts"`
	SearchIndex []searchindex.Result `json:"search_index,omitempty"`
}

func (r *Report) finish(results []FileResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	r.Files = results
	r.Counts = make(map[Outcome]int)
	for _, res := range results {
		r.Counts[res.Outcome]++
	}
}

// ChangedFiles lists every path the run wrote: injected pages and rewritten
// search indices.
func (r *Report) ChangedFiles() []string {
	var out []string
	for _, f := range r.Files {
		if f.Outcome == OutcomeInjected {
			out = append(out, f.Path)
		}
	}
	for _, s := range r.SearchIndex {
		if s.Changed {
			out = append(out, s.Path)
		}
	}
	return out
}

// Failed returns the number of files that could not be processed.
func (r *Report) Failed() int {
	n := r.Counts[OutcomeFailed]
	for _, s := range r.SearchIndex {
		if s.Error != "" {
			n++
		}
	}
	return n
}

// WriteFile stores the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
