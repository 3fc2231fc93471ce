// Package report renders filter results for humans: summary lines for the
// log sink, a JSON form for tooling and a unified diff of page lists.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/pagefilter/internal/filter"
	"github.com/hupe1980/pagefilter/internal/manifest"
)

// Lines returns the report as line-oriented text. An unchanged run yields a
// single summary line.
func Lines(r filter.Report) []string {
	if !r.Changed() {
		return []string{"pages unchanged"}
	}

	var lines []string

	if r.Main.Before != r.Main.After {
		lines = append(lines, fmt.Sprintf("main pages: %d -> %d", r.Main.Before, r.Main.After))
	}

	if len(r.Main.Removed) > 0 {
		lines = append(lines, fmt.Sprintf("removed from %s: %s",
			manifest.MainSection, strings.Join(r.Main.Removed, ", ")))
	}

	if r.SectionsBefore != r.SectionsAfter {
		lines = append(lines, fmt.Sprintf("subpackages: %d -> %d", r.SectionsBefore, r.SectionsAfter))
	}

	if len(r.RemovedSections) > 0 {
		lines = append(lines, "removed subpackages: "+strings.Join(r.RemovedSections, ", "))
	}

	for _, s := range r.Sections {
		lines = append(lines, fmt.Sprintf("subpackage %s pages: %d -> %d", s.Section, s.Before, s.After))

		if len(s.Removed) > 0 {
			lines = append(lines, fmt.Sprintf("removed from %s: %s", s.Section, strings.Join(s.Removed, ", ")))
		}
	}

	return lines
}

// Format writes a human-readable report to w.
func Format(w io.Writer, r filter.Report) {
	for _, line := range Lines(r) {
		_, _ = fmt.Fprintln(w, line)
	}

	if r.Changed() {
		_, _ = fmt.Fprintf(w, "Summary: %d pages removed, %d subpackages removed\n",
			r.RemovedPages(), len(r.RemovedSections))
	}
}

// FormatJSON writes the report as JSON.
func FormatJSON(w io.Writer, r filter.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// Log writes every report line to logger at info level.
func Log(logger *slog.Logger, r filter.Report) {
	for _, line := range Lines(r) {
		logger.Info(line)
	}
}

// LogDiagnostics writes diagnostics to logger. Warnings go to the warn level.
func LogDiagnostics(logger *slog.Logger, diags []filter.Diagnostic) {
	for _, d := range diags {
		if d.Severity == filter.SeverityWarning {
			logger.Warn(d.Message)
			continue
		}

		logger.Info(d.Message)
	}
}
