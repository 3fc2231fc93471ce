package output

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/hupe1980/pagefilter/internal/filter"
	"github.com/hupe1980/pagefilter/internal/manifest"
)

// ValidationSeverity indicates the severity of a validation finding.
type ValidationSeverity int

const (
	// SeverityError means the manifest cannot be filtered.
	SeverityError ValidationSeverity = iota
	// SeverityWarning means the manifest or a rule may not do what was meant.
	SeverityWarning
)

// String returns the severity name.
func (s ValidationSeverity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// ValidationFinding is a single validation issue.
type ValidationFinding struct {
	Severity ValidationSeverity
	Field    string
	Message  string
}

// Error implements the error interface.
func (f *ValidationFinding) Error() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Field, f.Message)
}

// ValidationResult holds all findings from a validation run.
type ValidationResult struct {
	Findings []ValidationFinding
}

// Errors returns only error-severity findings.
func (r *ValidationResult) Errors() []ValidationFinding {
	return r.bySeverity(SeverityError)
}

// Warnings returns only warning-severity findings.
func (r *ValidationResult) Warnings() []ValidationFinding {
	return r.bySeverity(SeverityWarning)
}

// HasErrors returns true if any error-severity findings exist.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors()) > 0
}

// HasWarnings returns true if any warning-severity findings exist.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

func (r *ValidationResult) bySeverity(s ValidationSeverity) []ValidationFinding {
	var result []ValidationFinding

	for _, f := range r.Findings {
		if f.Severity == s {
			result = append(result, f)
		}
	}

	return result
}

// ValidateManifest checks a host document for the problems that make the
// page filter skip it, and checks the rules against the pages it contains.
// Rules that name an unknown section or a prefix matching no page are
// reported as warnings, since the filter ignores them without notice.
func ValidateManifest(doc map[string]interface{}, whitelist, blacklist filter.RuleSet) *ValidationResult {
	v := &validator{doc: doc}
	v.validate(whitelist, blacklist)

	return &v.result
}

type validator struct {
	doc    map[string]interface{}
	result ValidationResult
}

func (v *validator) addError(field, msg string) {
	v.result.Findings = append(v.result.Findings, ValidationFinding{
		Severity: SeverityError,
		Field:    field,
		Message:  msg,
	})
}

func (v *validator) addWarning(field, msg string) {
	v.result.Findings = append(v.result.Findings, ValidationFinding{
		Severity: SeverityWarning,
		Field:    field,
		Message:  msg,
	})
}

func (v *validator) validate(whitelist, blacklist filter.RuleSet) {
	v.validateMainPages()

	for _, key := range []string{manifest.KeySubpackages, manifest.KeySubPackages} {
		v.validateSections(key)
	}

	if v.result.HasErrors() {
		return
	}

	d, err := manifest.FromDocument(v.doc)
	if err != nil {
		v.addError("manifest", err.Error())
		return
	}

	v.validateSectionKeys(d.SectionKeys())
	v.validateRules("whitelist", whitelist, d.Manifest)
	v.validateRules("blacklist", blacklist, d.Manifest)
}

// validateMainPages checks the top-level page list.
func (v *validator) validateMainPages() {
	raw, ok := v.doc[manifest.KeyPages]
	if !ok {
		v.addError(manifest.KeyPages, "required field is missing")
		return
	}

	pages, ok := v.pageList(manifest.KeyPages, raw)
	if !ok {
		return
	}

	if len(pages) == 0 {
		v.addWarning(manifest.KeyPages, "main package has no pages")
	}
}

// validateSections checks one sub-package collection.
func (v *validator) validateSections(key string) {
	raw, ok := v.doc[key]
	if !ok || raw == nil {
		return
	}

	items, ok := raw.([]interface{})
	if !ok {
		v.addError(key, "must be a list")
		return
	}

	seenRoots := make(map[string]bool)

	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", key, i)

		entry, ok := item.(map[string]interface{})
		if !ok {
			v.addError(field, "sub-package must be an object")
			continue
		}

		root, hasRoot := entry[manifest.KeyRoot].(string)

		switch {
		case !hasRoot:
			v.addError(field+"."+manifest.KeyRoot, "required string field is missing")
		case root == "":
			v.addWarning(field+"."+manifest.KeyRoot, "empty sub-package root")
		case seenRoots[root]:
			v.addWarning(field+"."+manifest.KeyRoot, fmt.Sprintf("duplicate sub-package root: %s", root))
		case root == manifest.MainSection:
			v.addWarning(field+"."+manifest.KeyRoot,
				fmt.Sprintf("root %q is the main package id; rules for it also apply here", root))
		}

		seenRoots[root] = true

		rawPages, ok := entry[manifest.KeyPages]
		if !ok {
			v.addError(field+"."+manifest.KeyPages, "required field is missing")
			continue
		}

		pages, ok := v.pageList(field+"."+manifest.KeyPages, rawPages)
		if ok && len(pages) == 0 {
			v.addWarning(field+"."+manifest.KeyPages,
				fmt.Sprintf("sub-package %q has no pages and is removed by every filter run", root))
		}
	}
}

// pageList checks that raw is a list of page paths and returns it.
func (v *validator) pageList(field string, raw interface{}) ([]string, bool) {
	items, ok := raw.([]interface{})
	if !ok {
		v.addError(field, "must be a list of strings")
		return nil, false
	}

	pages := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	valid := true

	for i, item := range items {
		page, ok := item.(string)
		if !ok {
			v.addError(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("page must be a string, got %T", item))
			valid = false

			continue
		}

		switch {
		case strings.TrimSpace(page) == "":
			v.addWarning(fmt.Sprintf("%s[%d]", field, i), "empty page path")
		case seen[page]:
			v.addWarning(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("duplicate page: %s", page))
		}

		seen[page] = true
		pages = append(pages, page)
	}

	return pages, valid
}

// validateSectionKeys warns when both collection spellings are present but
// disagree. Only the first one is read.
func (v *validator) validateSectionKeys(keys []string) {
	if len(keys) < 2 {
		return
	}

	if !reflect.DeepEqual(v.doc[keys[0]], v.doc[keys[1]]) {
		v.addWarning(keys[1], fmt.Sprintf("differs from %s; sections are read from %s and both are overwritten",
			keys[0], keys[0]))
	}
}

// validateRules reports rules that cannot select anything in m.
func (v *validator) validateRules(name string, rules filter.RuleSet, m *manifest.Manifest) {
	for i, r := range rules {
		field := fmt.Sprintf("%s[%d]", name, i)

		pages, ok := sectionPages(m, r.Section)
		if !ok {
			v.addWarning(field, fmt.Sprintf("section %q is not in the manifest; the rule has no effect", r.Section))
			continue
		}

		for _, prefix := range r.Pages {
			if !anyPageMatches(pages, prefix) {
				v.addWarning(field, fmt.Sprintf("page prefix %q matches no page in section %q", prefix, r.Section))
			}
		}
	}
}

// sectionPages returns the pages a rule for id can see. The main package
// always exists; a sub-package named like it contributes its pages too.
func sectionPages(m *manifest.Manifest, id string) ([]string, bool) {
	s, ok := m.Section(id)

	if id == manifest.MainSection {
		return append(append([]string(nil), m.Pages...), s.Pages...), true
	}

	return s.Pages, ok
}

func anyPageMatches(pages []string, prefix string) bool {
	for _, p := range pages {
		if filter.MatchesPage(p, prefix) {
			return true
		}
	}

	return false
}

// FormatValidationResult returns a human-readable string of all findings.
func FormatValidationResult(result *ValidationResult) string {
	if len(result.Findings) == 0 {
		return "Validation passed: no issues found.\n"
	}

	var sb strings.Builder

	errors := result.Errors()
	warnings := result.Warnings()

	if len(errors) > 0 {
		_, _ = fmt.Fprintf(&sb, "Errors (%d):\n", len(errors))

		for _, f := range errors {
			_, _ = fmt.Fprintf(&sb, "  - %s: %s\n", f.Field, f.Message)
		}
	}

	if len(warnings) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}

		_, _ = fmt.Fprintf(&sb, "Warnings (%d):\n", len(warnings))

		for _, f := range warnings {
			_, _ = fmt.Fprintf(&sb, "  - %s: %s\n", f.Field, f.Message)
		}
	}

	return sb.String()
}
