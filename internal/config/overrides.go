package config

// Overrides carries command-line values. Set values replace the file's.
type Overrides struct {
	Root        string
	Pattern     string
	RefsOrder   []string
	BaseURL     string
	InsertIndex *int
	Constraint  string
	Label       string

	NoStripLegacy bool
	NoMarkers     bool
	NoSearchIndex bool

	Workers     int
	MetricsFile string
	Report      string
	LogFormat   string

	Commit        bool
	CommitMessage string
	NATSURL       string
	NATSSubject   string

	Interval string
	Debounce string
}

// Apply merges o into c.
func (c *Config) Apply(o Overrides) {
	setString(&c.Root, o.Root)
	setString(&c.Pattern, o.Pattern)
	setString(&c.BaseURL, o.BaseURL)
	setString(&c.Constraint, o.Constraint)
	setString(&c.Label, o.Label)
	setString(&c.MetricsFile, o.MetricsFile)
	setString(&c.Report, o.Report)
	setString(&c.Logging.Format, o.LogFormat)
	setString(&c.Commit.Message, o.CommitMessage)
	setString(&c.Notify.NATSURL, o.NATSURL)
	setString(&c.Notify.Subject, o.NATSSubject)
	setString(&c.Watch.Interval, o.Interval)
	setString(&c.Watch.Debounce, o.Debounce)

	if len(o.RefsOrder) > 0 {
		c.RefsOrder = append([]string(nil), o.RefsOrder...)
	}
	if o.InsertIndex != nil {
		n := *o.InsertIndex
		c.InsertIndex = &n
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.Commit {
		c.Commit.Enabled = true
	}

	off := false
	if o.NoStripLegacy {
		c.StripLegacy = &off
	}
	if o.NoMarkers {
		c.Markers = &off
	}
	if o.NoSearchIndex {
		c.SearchIndex = &off
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
