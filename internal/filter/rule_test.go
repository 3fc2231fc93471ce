package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		input string
		want  Rule
	}{
		{"app", Rule{Section: "app"}},
		{" packageA ", Rule{Section: "packageA"}},
		{"app=pages/index", Rule{Section: "app", Pages: []string{"pages/index"}}},
		{"app=pages/index/, pages/user", Rule{Section: "app", Pages: []string{"pages/index/", "pages/user"}}},
		{"app=", Rule{Section: "app", Pages: []string{""}}},
		{"app=,,", Rule{Section: "app", Pages: []string{"", "", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRule(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRule_Invalid(t *testing.T) {
	for _, input := range []string{"", "  ", "=pages/index"} {
		_, err := ParseRule(input)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRule)
	}
}

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]string{"app=pages/index", "packageA"})
	require.NoError(t, err)
	assert.Equal(t, RuleSet{NewRule("app", "pages/index"), NewRule("packageA")}, rules)

	_, err = ParseRules([]string{"app", "=x"})
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestRule_String(t *testing.T) {
	assert.Equal(t, "packageA", NewRule("packageA").String())
	assert.Equal(t, "app=a,b", NewRule("app", "a", "b").String())
	assert.Equal(t, []string{"packageA", "app=a"}, RuleSet{NewRule("packageA"), NewRule("app", "a")}.Strings())
}

func TestRule_UnmarshalYAML(t *testing.T) {
	input := `
rules:
  - packageA
  - [packageB]
  - [app, [pages/index/index, pages/user/]]
  - [app, pages/debug]
  - [packageC, ~]
  - section: packageD
    pages: [pages/d/1]
  - root: packageE
`

	var cfg struct {
		Rules RuleSet `yaml:"rules"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(input), &cfg))

	assert.Equal(t, RuleSet{
		NewRule("packageA"),
		NewRule("packageB"),
		NewRule("app", "pages/index/index", "pages/user/"),
		NewRule("app", "pages/debug"),
		NewRule("packageC"),
		NewRule("packageD", "pages/d/1"),
		NewRule("packageE"),
	}, cfg.Rules)
}

func TestRule_UnmarshalYAML_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty tuple", `rules: [[]]`},
		{"too many elements", `rules: [[app, [a], extra]]`},
		{"section not scalar", `rules: [[[app], [a]]]`},
		{"pages not list", `rules: [[app, {a: b}]]`},
		{"empty section", `rules: [""]`},
		{"mapping without section", `rules: [{pages: [a]}]`},
		{"mapping with bad pages", `rules: [{section: app, pages: {a: b}}]`},
		{"null entry", `rules: [packageA, ~]`},
		{"not a list", `rules: packageA`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg struct {
				Rules RuleSet `yaml:"rules"`
			}

			err := yaml.Unmarshal([]byte(tt.input), &cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestRuleSet_UnmarshalYAML_NullEntryIndex(t *testing.T) {
	var cfg struct {
		Rules RuleSet `yaml:"rules"`
	}

	err := yaml.Unmarshal([]byte("rules:\n  - packageA\n  - null\n"), &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRule)
	assert.Contains(t, err.Error(), "[1]")
}

func TestRule_BlankPagesAreNotWholeSection(t *testing.T) {
	var cfg struct {
		Rules RuleSet `yaml:"rules"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(`rules: [[packageA, [""]], [packageB, ["  "]]]`), &cfg))
	require.Len(t, cfg.Rules, 2)
	assert.False(t, cfg.Rules[0].WholeSection())
	assert.Equal(t, []string{""}, cfg.Rules[0].Pages)
	assert.Equal(t, []string{""}, cfg.Rules[1].Pages)

	pages := []string{"pages/a/1", "pages/a/2"}
	assert.Equal(t, pages, ExcludePages(pages, "packageA", cfg.Rules))
	assert.Equal(t, ExcludePages(pages, "packageA", RuleSet{NewRule("packageA", "")}),
		ExcludePages(pages, "packageA", cfg.Rules))
}

func TestRule_TrailingSlashNotWidened(t *testing.T) {
	r, err := ParseRule("app=pages/index/")
	require.NoError(t, err)

	assert.Equal(t, []string{"pages/index/"}, r.Pages)

	pages := []string{"pages/index", "pages/index/detail"}
	assert.Equal(t, pages, ExcludePages(pages, "app", RuleSet{r}))
}

func TestRuleSet_Queries(t *testing.T) {
	rs := RuleSet{NewRule("app", "a"), NewRule("packageA"), NewRule("app", "b")}

	assert.False(t, rs.Empty())
	assert.True(t, RuleSet(nil).Empty())
	assert.Len(t, rs.ForSection("app"), 2)
	assert.True(t, rs.Mentions("packageA"))
	assert.False(t, rs.Mentions("packagea"))
	assert.True(t, rs.WholeSection("packageA"))
	assert.False(t, rs.WholeSection("app"))
}
