package filter

// Severity grades a Diagnostic.
type Severity int

// Diagnostic severities.
const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "info"
}

// Diagnostic is an advisory message. Diagnostics never stop filtering.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Advise reports configuration conditions the caller should know about.
func Advise(include, exclude RuleSet) []Diagnostic {
	switch {
	case include.Empty() && exclude.Empty():
		return []Diagnostic{{
			Severity: SeverityWarning,
			Message:  "no whitelist or blacklist configured, pages will not be filtered",
		}}
	case !include.Empty() && !exclude.Empty():
		return []Diagnostic{{
			Severity: SeverityInfo,
			Message:  "whitelist and blacklist both configured, the whitelist is applied first",
		}}
	default:
		return nil
	}
}
