package filter

import "strings"

// Match computes the pages of section referenced by rules.
//
// ok is false when no rule targets section, which callers must tell apart
// from a rule that targets it but matches nothing. A whole-section rule
// selects every page and wins over narrower rules for the same section.
// Prefixes naming pages that do not exist are ignored.
func Match(pages []string, section string, rules RuleSet) (matched map[string]bool, ok bool) {
	selected := rules.ForSection(section)
	if len(selected) == 0 {
		return nil, false
	}

	matched = make(map[string]bool, len(pages))

	for _, r := range selected {
		if r.WholeSection() {
			for _, p := range pages {
				matched[p] = true
			}

			return matched, true
		}
	}

	for _, r := range selected {
		for _, prefix := range r.Pages {
			for _, p := range pages {
				if MatchesPage(p, prefix) {
					matched[p] = true
				}
			}
		}
	}

	return matched, true
}

// MatchesPage reports whether page equals prefix or lies below it.
// The boundary is a whole path segment: "a/b" matches "a/b/c" but not "a/bc".
func MatchesPage(page, prefix string) bool {
	if page == prefix {
		return true
	}

	return len(page) > len(prefix) &&
		page[len(prefix)] == '/' &&
		strings.HasPrefix(page, prefix)
}
