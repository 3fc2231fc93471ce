// Package version provides build-time metadata for the pagefilter binary.
// Version, GitCommit, and BuildDate are injected at compile time via -ldflags.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build-time values injected via -ldflags.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// Info holds the build metadata for the binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:   version,
		GitCommit: shortCommit(gitCommit),
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable single-line version string.
func (i Info) String() string {
	return fmt.Sprintf("pagefilter %s (commit: %s, built: %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// JSON returns the version info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling version info: %w", err)
	}

	return string(data), nil
}

// Satisfies checks the binary version against a semver constraint such as
// ">= 1.2, < 2". Development builds satisfy every constraint.
func (i Info) Satisfies(constraint string) error {
	return CheckConstraint(constraint, i.Version)
}

// CheckConstraint reports an error when actual does not satisfy constraint.
// An empty constraint and the "dev" version always pass.
func CheckConstraint(constraint, actual string) error {
	if constraint == "" || actual == "dev" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(actual)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", actual, err)
	}

	if ok, errs := c.Validate(v); !ok {
		if len(errs) > 0 {
			return fmt.Errorf("pagefilter %s does not satisfy %q: %w", actual, constraint, errs[0])
		}

		return fmt.Errorf("pagefilter %s does not satisfy %q", actual, constraint)
	}

	return nil
}

// ValidateConstraint reports whether constraint parses.
func ValidateConstraint(constraint string) error {
	if constraint == "" {
		return nil
	}

	if _, err := semver.NewConstraint(constraint); err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}

	return nil
}

// shortCommit truncates a commit SHA to 7 characters.
func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}

	return commit
}
