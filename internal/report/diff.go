package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/hupe1980/pagefilter/internal/manifest"
)

// DiffResult holds the result of a unified diff computation.
type DiffResult struct {
	Unified        string
	HasDifferences bool
	Hunks          []string
	OldLabel       string
	NewLabel       string
}

// DiffOptions configures diff computation.
type DiffOptions struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultDiffOptions returns sensible default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{
		OldLabel: "before",
		NewLabel: "after",
		Context:  3,
	}
}

// PageListing renders a manifest as one "section: page" line per page. Main
// pages come first, then every subpackage in manifest order.
func PageListing(m *manifest.Manifest) string {
	if m == nil {
		return ""
	}

	var b strings.Builder

	for _, p := range m.Pages {
		fmt.Fprintf(&b, "%s: %s\n", manifest.MainSection, p)
	}

	for _, s := range m.Sections {
		for _, p := range s.Pages {
			fmt.Fprintf(&b, "%s: %s\n", s.Root, p)
		}
	}

	return b.String()
}

// DiffManifests computes a unified diff of the page listings of two manifests.
func DiffManifests(before, after *manifest.Manifest, opts DiffOptions) (*DiffResult, error) {
	return ComputeDiff(PageListing(before), PageListing(after), opts)
}

// ComputeDiff computes a unified diff between two text documents.
func ComputeDiff(oldDoc, newDoc string, opts DiffOptions) (*DiffResult, error) {
	diff := difflib.UnifiedDiff{
		A:        splitLines(oldDoc),
		B:        splitLines(newDoc),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	}

	unified, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	hasDiff := unified != ""

	var hunks []string
	if hasDiff {
		hunks = extractHunks(unified)
	}

	return &DiffResult{
		Unified:        unified,
		HasDifferences: hasDiff,
		Hunks:          hunks,
		OldLabel:       opts.OldLabel,
		NewLabel:       opts.NewLabel,
	}, nil
}

// extractHunks splits unified diff output into hunks. File headers are not
// part of any hunk.
func extractHunks(unified string) []string {
	var hunks []string

	var current strings.Builder

	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		if strings.HasPrefix(line, "@@") && current.Len() > 0 {
			hunks = append(hunks, current.String())
			current.Reset()
		}

		if current.Len() == 0 && !strings.HasPrefix(line, "@@") {
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")
	}

	if current.Len() > 0 {
		hunks = append(hunks, current.String())
	}

	return hunks
}

// WriteDiff writes a formatted diff to the given writer with optional ANSI colors.
func WriteDiff(w io.Writer, result *DiffResult, color bool) {
	if !result.HasDifferences {
		_, _ = fmt.Fprintln(w, "No differences found.")
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(result.Unified, "\n"), "\n") {
		if color {
			writeColorLine(w, line)
		} else {
			_, _ = fmt.Fprintln(w, line)
		}
	}
}

func writeColorLine(w io.Writer, line string) {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		cyan  = "\033[36m"
		bold  = "\033[1m"
		reset = "\033[0m"
	)

	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", bold, line, reset)
	case strings.HasPrefix(line, "@@"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", cyan, line, reset)
	case strings.HasPrefix(line, "-"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", red, line, reset)
	case strings.HasPrefix(line, "+"):
		_, _ = fmt.Fprintf(w, "%s%s%s\n", green, line, reset)
	default:
		_, _ = fmt.Fprintln(w, line)
	}
}

// splitLines keeps trailing newlines for difflib.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
