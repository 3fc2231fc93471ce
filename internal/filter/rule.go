package filter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule selects pages of one section. An empty Pages list selects the whole
// section; otherwise each entry is a page prefix.
type Rule struct {
	// Section is the section identifier, compared case-sensitively.
	Section string `json:"section" yaml:"section"`
	// Pages lists page prefixes. Empty means every page of the section.
	Pages []string `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// NewRule creates a rule for section with the given page prefixes.
func NewRule(section string, pages ...string) Rule {
	return Rule{Section: section, Pages: pages}
}

// WholeSection reports whether r addresses every page of its section.
func (r Rule) WholeSection() bool {
	return len(r.Pages) == 0
}

// String renders r in flag syntax: "section" or "section=page1,page2".
func (r Rule) String() string {
	if r.WholeSection() {
		return r.Section
	}

	return r.Section + "=" + strings.Join(r.Pages, ",")
}

// UnmarshalYAML accepts three spellings of a rule:
//
//	- packageA                          # whole section
//	- [app, [pages/index, pages/user]]  # tuple
//	- {section: app, pages: [pages/index]}
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	var (
		section string
		pages   []string
	)

	switch value.Kind {
	case yaml.ScalarNode:
		if err := value.Decode(&section); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidRule, value.Line, err)
		}
	case yaml.SequenceNode:
		if len(value.Content) == 0 || len(value.Content) > 2 {
			return fmt.Errorf("%w: line %d: expected [section] or [section, pages]", ErrInvalidRule, value.Line)
		}

		head := value.Content[0]
		if head.Kind != yaml.ScalarNode {
			return fmt.Errorf("%w: line %d: section must be a string", ErrInvalidRule, head.Line)
		}

		section = head.Value

		if len(value.Content) == 2 {
			var err error

			pages, err = decodePages(value.Content[1])
			if err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		var raw struct {
			Section string    `yaml:"section"`
			Root    string    `yaml:"root"`
			Pages   yaml.Node `yaml:"pages"`
		}

		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidRule, value.Line, err)
		}

		section = raw.Section
		if section == "" {
			section = raw.Root
		}

		if raw.Pages.Kind != 0 {
			var err error

			pages, err = decodePages(&raw.Pages)
			if err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: line %d: unsupported rule syntax", ErrInvalidRule, value.Line)
	}

	section = strings.TrimSpace(section)
	if section == "" {
		return fmt.Errorf("%w: line %d: section must not be empty", ErrInvalidRule, value.Line)
	}

	r.Section = section
	r.Pages = normalizePages(pages)

	return nil
}

// decodePages reads the page part of a rule: a list, a single page, or null.
func decodePages(node *yaml.Node) ([]string, error) {
	switch {
	case node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null":
		return nil, nil
	case node.Kind == yaml.ScalarNode:
		return []string{node.Value}, nil
	case node.Kind == yaml.SequenceNode:
		var pages []string
		if err := node.Decode(&pages); err != nil {
			return nil, fmt.Errorf("%w: line %d: pages: %v", ErrInvalidRule, node.Line, err)
		}

		return pages, nil
	default:
		return nil, fmt.Errorf("%w: line %d: pages must be a list of strings", ErrInvalidRule, node.Line)
	}
}

// ParseRule parses the flag syntax "section" or "section=page1,page2".
func ParseRule(s string) (Rule, error) {
	section, rest, hasPages := strings.Cut(s, "=")

	section = strings.TrimSpace(section)
	if section == "" {
		return Rule{}, fmt.Errorf("%w: %q: section must not be empty", ErrInvalidRule, s)
	}

	r := Rule{Section: section}
	if hasPages {
		r.Pages = normalizePages(strings.Split(rest, ","))
	}

	return r, nil
}

// ParseRules parses every entry with ParseRule.
func ParseRules(entries []string) (RuleSet, error) {
	rules := make(RuleSet, 0, len(entries))

	for _, e := range entries {
		r, err := ParseRule(e)
		if err != nil {
			return nil, err
		}

		rules = append(rules, r)
	}

	return rules, nil
}

// normalizePages trims surrounding whitespace. Entries are never dropped, so
// only an absent or empty list selects the whole section.
func normalizePages(pages []string) []string {
	if len(pages) == 0 {
		return nil
	}

	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strings.TrimSpace(p)
	}

	return out
}

// RuleSet is an ordered list of rules of one kind (whitelist or blacklist).
type RuleSet []Rule

// UnmarshalYAML decodes a list of rules. Null entries are rejected; the
// YAML decoder would otherwise skip them silently.
func (rs *RuleSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: line %d: rules must be a list", ErrInvalidRule, value.Line)
	}

	rules := make(RuleSet, 0, len(value.Content))

	for i, item := range value.Content {
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!null" {
			return fmt.Errorf("[%d]: %w: line %d: rule must not be null", i, ErrInvalidRule, item.Line)
		}

		var r Rule
		if err := item.Decode(&r); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}

		rules = append(rules, r)
	}

	*rs = rules

	return nil
}

// Empty reports whether the set holds no rules.
func (rs RuleSet) Empty() bool {
	return len(rs) == 0
}

// ForSection returns the rules targeting section, in order.
func (rs RuleSet) ForSection(section string) []Rule {
	var out []Rule

	for _, r := range rs {
		if r.Section == section {
			out = append(out, r)
		}
	}

	return out
}

// Mentions reports whether any rule targets section.
func (rs RuleSet) Mentions(section string) bool {
	for _, r := range rs {
		if r.Section == section {
			return true
		}
	}

	return false
}

// WholeSection reports whether any rule targets all of section.
func (rs RuleSet) WholeSection(section string) bool {
	for _, r := range rs {
		if r.Section == section && r.WholeSection() {
			return true
		}
	}

	return false
}

// Strings renders every rule in flag syntax.
func (rs RuleSet) Strings() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}

	return out
}
