package filter

import (
	"github.com/hupe1980/pagefilter/internal/manifest"
)

// Result holds the outcome of a filter run.
type Result struct {
	// Manifest is the pruned manifest. It never aliases the input.
	Manifest *manifest.Manifest
	// Report summarises what changed.
	Report Report
	// Diagnostics are advisory messages about the rule configuration.
	Diagnostics []Diagnostic
}

// Apply filters m with the whitelist and then the blacklist.
//
// The main package is filtered under the reserved section "app" and is kept
// even when it ends up empty. Sub-packages are dropped when the whitelist is
// active and never names them, when the blacklist excludes them as a whole,
// or when no page survives. Surviving sub-packages keep their order.
//
// m is not modified. A nil manifest yields a nil Result.Manifest.
func Apply(m *manifest.Manifest, include, exclude RuleSet) *Result {
	res := &Result{Diagnostics: Advise(include, exclude)}
	if m == nil {
		return res
	}

	chain := NewChain(IncludePass(include), ExcludePass(exclude))

	out := m.Clone()
	out.Pages = chain.Apply(manifest.MainSection, m.Pages)

	res.Report.Main = compareSection(manifest.MainSection, m.Pages, out.Pages)
	res.Report.SectionsBefore = len(m.Sections)

	if m.Sections != nil {
		out.Sections = make([]manifest.Section, 0, len(m.Sections))
	}

	for _, s := range m.Sections {
		kept := s.Clone()

		switch {
		case !include.Empty() && !include.Mentions(s.Root):
			kept.Pages = nil
		case exclude.WholeSection(s.Root):
			kept.Pages = nil
		default:
			kept.Pages = chain.Apply(s.Root, s.Pages)
		}

		change := compareSection(s.Root, s.Pages, kept.Pages)
		if change.Changed() {
			res.Report.Sections = append(res.Report.Sections, change)
		}

		if len(kept.Pages) == 0 {
			res.Report.RemovedSections = append(res.Report.RemovedSections, s.Root)
			continue
		}

		out.Sections = append(out.Sections, kept)
	}

	res.Report.SectionsAfter = len(out.Sections)
	res.Manifest = out

	return res
}
