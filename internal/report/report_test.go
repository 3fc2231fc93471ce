package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagefilter/internal/filter"
	"github.com/hupe1980/pagefilter/internal/manifest"
)

func sampleManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Pages: []string{"pages/index/index", "pages/user/index", "pages/debug/index"},
		Sections: []manifest.Section{
			{Root: "packageA", Pages: []string{"pages/a/1", "pages/a/2"}},
			{Root: "packageB", Pages: []string{"pages/b/1"}},
		},
	}
}

func sampleResult() *filter.Result {
	return filter.Apply(sampleManifest(),
		filter.RuleSet{filter.NewRule("app"), filter.NewRule("packageA")},
		filter.RuleSet{filter.NewRule("app", "pages/debug"), filter.NewRule("packageA", "pages/a/2")},
	)
}

func TestLines_Unchanged(t *testing.T) {
	res := filter.Apply(sampleManifest(), nil, nil)
	assert.Equal(t, []string{"pages unchanged"}, Lines(res.Report))
}

func TestLines_Changed(t *testing.T) {
	lines := Lines(sampleResult().Report)

	assert.Equal(t, []string{
		"main pages: 3 -> 2",
		"removed from app: pages/debug/index",
		"subpackages: 2 -> 1",
		"removed subpackages: packageB",
		"subpackage packageA pages: 2 -> 1",
		"removed from packageA: pages/a/2",
		"subpackage packageB pages: 1 -> 0",
		"removed from packageB: pages/b/1",
	}, lines)
}

func TestLines_MainCountsOmittedWhenEqual(t *testing.T) {
	res := filter.Apply(sampleManifest(), nil, filter.RuleSet{filter.NewRule("packageB")})

	lines := Lines(res.Report)
	for _, l := range lines {
		assert.NotContains(t, l, "main pages")
	}

	assert.Contains(t, lines, "subpackages: 2 -> 1")
}

func TestFormat_Summary(t *testing.T) {
	var buf bytes.Buffer
	Format(&buf, sampleResult().Report)

	out := buf.String()
	assert.Contains(t, out, "main pages: 3 -> 2\n")
	assert.Contains(t, out, "Summary: 3 pages removed, 1 subpackages removed\n")
}

func TestFormat_Unchanged(t *testing.T) {
	var buf bytes.Buffer
	Format(&buf, filter.Report{})

	assert.Equal(t, "pages unchanged\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, sampleResult().Report))

	var decoded filter.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded.SectionsBefore)
	assert.Equal(t, []string{"packageB"}, decoded.RemovedSections)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Log(logger, sampleResult().Report)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="main pages: 3 -> 2"`)
	assert.Contains(t, out, `msg="removed subpackages: packageB"`)
}

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogDiagnostics(logger, []filter.Diagnostic{
		{Severity: filter.SeverityWarning, Message: "nothing configured"},
		{Severity: filter.SeverityInfo, Message: "heads up"},
	})

	out := buf.String()
	assert.Contains(t, out, `level=WARN msg="nothing configured"`)
	assert.Contains(t, out, `level=INFO msg="heads up"`)
}
