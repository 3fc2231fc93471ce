package filter

// Pass filters the page list of one section.
type Pass interface {
	// Apply returns the pages of section that survive the pass. The input
	// slice is never modified.
	Apply(section string, pages []string) []string
}

// IncludePass is the whitelist pass.
type IncludePass RuleSet

// Apply implements Pass with IncludePages.
func (p IncludePass) Apply(section string, pages []string) []string {
	return IncludePages(pages, section, RuleSet(p))
}

// ExcludePass is the blacklist pass.
type ExcludePass RuleSet

// Apply implements Pass with ExcludePages.
func (p ExcludePass) Apply(section string, pages []string) []string {
	return ExcludePages(pages, section, RuleSet(p))
}

// Chain applies passes sequentially, feeding the output of each pass into
// the next.
type Chain struct {
	passes []Pass
}

// NewChain creates a chain from the given passes.
func NewChain(passes ...Pass) *Chain {
	return &Chain{passes: passes}
}

// Apply runs every pass in order.
func (c *Chain) Apply(section string, pages []string) []string {
	current := pages
	for _, p := range c.passes {
		current = p.Apply(section, current)
	}

	return current
}

// IncludePages applies the whitelist to one section.
//
// An empty whitelist leaves the pages unchanged. Otherwise a section without
// any whitelist rule loses all of its pages, and a section with rules keeps
// exactly the matched pages, in input order and without duplicates.
func IncludePages(pages []string, section string, include RuleSet) []string {
	if include.Empty() {
		return clonePages(pages)
	}

	matched, ok := Match(pages, section, include)
	if !ok {
		return []string{}
	}

	return keepPages(pages, func(p string) bool { return matched[p] })
}

// ExcludePages applies the blacklist to one section.
//
// A whole-section rule empties the section. Otherwise every matched page is
// removed; survivors keep input order without duplicates. Sections the
// blacklist does not mention are unchanged.
func ExcludePages(pages []string, section string, exclude RuleSet) []string {
	if exclude.WholeSection(section) {
		return []string{}
	}

	matched, ok := Match(pages, section, exclude)
	if !ok {
		return clonePages(pages)
	}

	return keepPages(pages, func(p string) bool { return !matched[p] })
}

// keepPages filters pages in order, dropping duplicates.
func keepPages(pages []string, keep func(string) bool) []string {
	out := make([]string, 0, len(pages))
	seen := make(map[string]bool, len(pages))

	for _, p := range pages {
		if seen[p] || !keep(p) {
			continue
		}

		seen[p] = true

		out = append(out, p)
	}

	return out
}

func clonePages(pages []string) []string {
	if pages == nil {
		return nil
	}

	out := make([]string, len(pages))
	copy(out, pages)

	return out
}
