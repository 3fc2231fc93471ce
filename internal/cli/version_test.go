package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagefilter/internal/version"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"human", []string{"version"}, "pagefilter dev"},
		{"short", []string{"version", "--short"}, "dev\n"},
		{"check passes for dev builds", []string{"version", "--check", ">= 9.0"}, `pagefilter dev satisfies ">= 9.0"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(tt.args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.want)
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand("version", "--json")
	require.NoError(t, err)

	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))

	assert.Equal(t, "dev", info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
}

func TestVersionCommand_InvalidCheck(t *testing.T) {
	_, _, err := executeCommand("version", "--check", ">>> 1")
	requireExitCode(t, err, 2)
	assert.Contains(t, err.Error(), "parsing version constraint")
}

func TestVersionCommand_JSONAndShortExclusive(t *testing.T) {
	_, _, err := executeCommand("version", "--json", "--short")
	require.Error(t, err)
}

func TestVersionCommand_NoArgs(t *testing.T) {
	_, _, err := executeCommand("version", "extra")
	require.Error(t, err)
}
