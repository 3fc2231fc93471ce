// Package pagefilter provides a public Go API for pruning the page manifest
// of a mini-program build with whitelist and blacklist rules.
//
// A Hook is built once from its rules and applied to the host document at the
// point where the build pipeline has assembled app.json and before it is
// emitted:
//
//	hook := pagefilter.New(
//	    pagefilter.WithWhitelist(
//	        pagefilter.NewRule("app", "pages/index", "pages/user"),
//	        pagefilter.NewRule("packageA"),
//	    ),
//	    pagefilter.WithBlacklist(pagefilter.NewRule("packageA", "pages/debug")),
//	    pagefilter.WithReport(),
//	    pagefilter.WithLogger(logger),
//	)
//
//	doc, result := hook.Apply(doc)
//
// The hook never fails. Problems with the document or the rule configuration
// are returned as diagnostics and the document passes through unchanged.
package pagefilter

import (
	"log/slog"

	"github.com/hupe1980/pagefilter/internal/filter"
	"github.com/hupe1980/pagefilter/internal/logging"
	"github.com/hupe1980/pagefilter/internal/manifest"
	"github.com/hupe1980/pagefilter/internal/report"
)

// Re-exported types so callers do not depend on internal packages.
type (
	// Rule selects a section, or pages within a section.
	Rule = filter.Rule
	// RuleSet is an ordered list of rules.
	RuleSet = filter.RuleSet
	// Report summarises what a run changed.
	Report = filter.Report
	// SectionChange describes one section before and after filtering.
	SectionChange = filter.SectionChange
	// Diagnostic is an advisory message produced by a run.
	Diagnostic = filter.Diagnostic
	// Severity grades a Diagnostic.
	Severity = filter.Severity
	// Manifest is the canonical page manifest.
	Manifest = manifest.Manifest
	// Section is a named sub-package.
	Section = manifest.Section
)

// Diagnostic severities.
const (
	SeverityInfo    = filter.SeverityInfo
	SeverityWarning = filter.SeverityWarning
)

// MainSection is the reserved section id of the main package.
const MainSection = manifest.MainSection

// NewRule creates a rule. Without pages it selects the whole section.
func NewRule(section string, pages ...string) Rule {
	return filter.NewRule(section, pages...)
}

// ParseRule parses the "section" or "section=page1,page2" form.
func ParseRule(s string) (Rule, error) {
	return filter.ParseRule(s)
}

// Option configures a Hook.
type Option func(*options)

type options struct {
	whitelist RuleSet
	blacklist RuleSet
	report    bool
	logger    *slog.Logger
}

// WithWhitelist appends include rules.
func WithWhitelist(rules ...Rule) Option {
	return func(o *options) { o.whitelist = append(o.whitelist, rules...) }
}

// WithBlacklist appends exclude rules.
func WithBlacklist(rules ...Rule) Option {
	return func(o *options) { o.blacklist = append(o.blacklist, rules...) }
}

// WithReport logs a change summary after every run.
func WithReport() Option { return func(o *options) { o.report = true } }

// WithLogger sets the logger for diagnostics and reports. The default
// discards everything.
func WithLogger(logger *slog.Logger) Option { return func(o *options) { o.logger = logger } }

// Hook applies a fixed rule configuration to page manifests. A Hook holds no
// mutable state and may be used from several goroutines.
type Hook struct {
	whitelist RuleSet
	blacklist RuleSet
	report    bool
	logger    *slog.Logger
}

// New creates a Hook.
func New(opts ...Option) *Hook {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = logging.Discard()
	}

	return &Hook{
		whitelist: o.whitelist,
		blacklist: o.blacklist,
		report:    o.report,
		logger:    o.logger,
	}
}

// Result holds the outcome of a hook run.
type Result struct {
	// Manifest is the filtered manifest, nil when the input was malformed.
	Manifest *Manifest
	// Before is the manifest as read, nil when the input was malformed.
	Before *Manifest
	// Report summarises what changed.
	Report Report
	// Diagnostics are advisory messages about the input and the rules.
	Diagnostics []Diagnostic
}

// Changed reports whether the run changed the manifest.
func (r *Result) Changed() bool {
	return r.Report.Changed()
}

// Apply filters the page manifest held by doc and returns the rewritten
// document. doc itself is not modified. A document without a readable page
// manifest is returned as is with a warning diagnostic.
func (h *Hook) Apply(doc map[string]interface{}) (map[string]interface{}, *Result) {
	d, err := manifest.FromDocument(doc)
	if err != nil {
		res := &Result{
			Diagnostics: append(filter.Advise(h.whitelist, h.blacklist), Diagnostic{
				Severity: SeverityWarning,
				Message:  "skipping page filter: " + err.Error(),
			}),
		}

		report.LogDiagnostics(h.logger, res.Diagnostics)

		return doc, res
	}

	res := h.ApplyManifest(d.Manifest)

	return d.Render(res.Manifest), res
}

// ApplyManifest filters m. m is not modified.
func (h *Hook) ApplyManifest(m *Manifest) *Result {
	out := filter.Apply(m, h.whitelist, h.blacklist)

	res := &Result{
		Manifest:    out.Manifest,
		Before:      m,
		Report:      out.Report,
		Diagnostics: out.Diagnostics,
	}

	report.LogDiagnostics(h.logger, res.Diagnostics)

	if h.report {
		report.Log(h.logger, res.Report)
	}

	return res
}

// Whitelist returns a copy of the hook's include rules.
func (h *Hook) Whitelist() RuleSet { return append(RuleSet(nil), h.whitelist...) }

// Blacklist returns a copy of the hook's exclude rules.
func (h *Hook) Blacklist() RuleSet { return append(RuleSet(nil), h.blacklist...) }
