package filter

// Report summarises the changes of one filter run.
type Report struct {
	// Main describes the main package.
	Main SectionChange
	// SectionsBefore and SectionsAfter count the sub-packages.
	SectionsBefore int
	SectionsAfter  int
	// RemovedSections lists dropped sub-package roots in input order.
	RemovedSections []string
	// Sections holds one entry per sub-package whose page list changed,
	// including dropped ones.
	Sections []SectionChange
}

// SectionChange describes the page list of one section before and after.
type SectionChange struct {
	Section string
	Before  int
	After   int
	// Removed lists pages that no longer appear, in input order.
	Removed []string
}

// Changed reports whether the page list differs.
func (c SectionChange) Changed() bool {
	return c.Before != c.After || len(c.Removed) > 0
}

// Changed reports whether the run changed anything.
func (r Report) Changed() bool {
	return r.Main.Changed() || r.SectionsBefore != r.SectionsAfter || len(r.Sections) > 0
}

// RemovedPages counts pages removed across all sections.
func (r Report) RemovedPages() int {
	n := len(r.Main.Removed)
	for _, s := range r.Sections {
		n += len(s.Removed)
	}

	return n
}

func compareSection(section string, before, after []string) SectionChange {
	kept := make(map[string]bool, len(after))
	for _, p := range after {
		kept[p] = true
	}

	var removed []string

	seen := make(map[string]bool)

	for _, p := range before {
		if kept[p] || seen[p] {
			continue
		}

		seen[p] = true

		removed = append(removed, p)
	}

	return SectionChange{
		Section: section,
		Before:  len(before),
		After:   len(after),
		Removed: removed,
	}
}
