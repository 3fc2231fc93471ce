package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/pagefilter/internal/filter"
	"github.com/hupe1980/pagefilter/internal/version"
)

// FilterConfig holds the page filtering rules.
//
//	whitelist:
//	  - [app, [pages/index/index, pages/user/index]]
//	  - packageA
//	blacklist:
//	  - section: app
//	    pages: [pages/debug]
//	report: true
//	requiredVersion: ">= 0.3"
type FilterConfig struct {
	// Whitelist selects the sections and pages to keep. When non-empty,
	// everything it does not name is removed.
	Whitelist filter.RuleSet `yaml:"whitelist"`

	// Blacklist selects sections and pages to remove after the whitelist.
	Blacklist filter.RuleSet `yaml:"blacklist"`

	// Report enables the before/after change report.
	Report bool `yaml:"report"`

	// RequiredVersion is a semver constraint the pagefilter binary must satisfy.
	RequiredVersion string `yaml:"requiredVersion"`
}

// ParseFilterConfig parses the whitelist, blacklist, report and
// requiredVersion keys from raw config file bytes. Other keys are ignored.
func ParseFilterConfig(data []byte) (*FilterConfig, error) {
	var raw struct {
		Whitelist       yaml.Node `yaml:"whitelist"`
		Blacklist       yaml.Node `yaml:"blacklist"`
		Report          bool      `yaml:"report"`
		RequiredVersion string    `yaml:"requiredVersion"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing filter config: %w", err)
	}

	cfg := FilterConfig{Report: raw.Report, RequiredVersion: raw.RequiredVersion}

	var err error

	if cfg.Whitelist, err = decodeRules("whitelist", &raw.Whitelist); err != nil {
		return nil, err
	}

	if cfg.Blacklist, err = decodeRules("blacklist", &raw.Blacklist); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// decodeRules decodes one rule list. A missing or null key yields no rules.
func decodeRules(name string, node *yaml.Node) (filter.RuleSet, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null") {
		return nil, nil
	}

	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s: %w: line %d: expected a list of rules", name, filter.ErrInvalidRule, node.Line)
	}

	var rules filter.RuleSet
	if err := node.Decode(&rules); err != nil {
		// RuleSet errors start with the entry index, e.g. "[2]: ...".
		return nil, fmt.Errorf("%s%w", name, err)
	}

	return rules, nil
}

// LoadFilterConfig reads the filter rules from path. YAML, JSON and TOML
// (by ".toml" extension) files are accepted. An empty path yields an empty
// configuration.
func LoadFilterConfig(path string) (*FilterConfig, error) {
	if path == "" {
		return &FilterConfig{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("reading rules file %q: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if data, err = tomlToYAML(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg, err := ParseFilterConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// tomlToYAML re-encodes a TOML document as YAML so that rules in every file
// format go through the same decoder.
func tomlToYAML(data []byte) ([]byte, error) {
	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encoding TOML: %w", err)
	}

	return out, nil
}

// Validate checks that every rule names a section and that the version
// constraint parses.
func (c *FilterConfig) Validate() error {
	if err := validateRules("whitelist", c.Whitelist); err != nil {
		return err
	}

	if err := validateRules("blacklist", c.Blacklist); err != nil {
		return err
	}

	if err := version.ValidateConstraint(c.RequiredVersion); err != nil {
		return fmt.Errorf("requiredVersion: %w", err)
	}

	return nil
}

// validateRules rejects rules without a section, e.g. ones built in code.
func validateRules(name string, rules filter.RuleSet) error {
	for i, r := range rules {
		if r.Section == "" {
			return fmt.Errorf("%s[%d]: %w: section must not be empty", name, i, filter.ErrInvalidRule)
		}
	}

	return nil
}

// CheckVersion verifies that the running binary satisfies RequiredVersion.
func (c *FilterConfig) CheckVersion(info version.Info) error {
	return info.Satisfies(c.RequiredVersion)
}

// Extend returns a copy of c with the given rules appended to the file rules.
func (c *FilterConfig) Extend(whitelist, blacklist filter.RuleSet) *FilterConfig {
	out := *c
	out.Whitelist = append(append(filter.RuleSet{}, c.Whitelist...), whitelist...)
	out.Blacklist = append(append(filter.RuleSet{}, c.Blacklist...), blacklist...)

	if len(out.Whitelist) == 0 {
		out.Whitelist = nil
	}

	if len(out.Blacklist) == 0 {
		out.Blacklist = nil
	}

	return &out
}

// IsEmpty reports whether no rules are configured.
func (c *FilterConfig) IsEmpty() bool {
	return c.Whitelist.Empty() && c.Blacklist.Empty()
}
