// Package cli implements the cobra command tree for pagefilter.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagefilter/internal/config"
	"github.com/hupe1980/pagefilter/internal/logging"
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	cmd := NewRootCommand()

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return 1
	}

	return 0
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "pagefilter",
		Short: "Prune mini-program page manifests with whitelist and blacklist rules",
		Long: `pagefilter trims the page manifest (app.json) of a mini-program build.

A whitelist keeps only the sections and pages it names; a blacklist then
removes sections and pages. Sub-packages left without pages are dropped,
the main package is kept even when empty.

Rules are read from the config file (.pagefilter.yaml), from a separate
rules file (--rules), and from --whitelist / --blacklist flags. Use
"pagefilter validate" to check a manifest and the rules before a build.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			logger := logging.Setup(cfg)

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.String("rulesFile", cfg.RulesFile()),
			)

			return nil
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .pagefilter.yaml)")
	pf.String("rules", "", "rules file with whitelist/blacklist (default: the config file)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Err: err}
	})

	// Register subcommands.
	cmd.AddCommand(
		newVersionCommand(),
		newFilterCommand(),
		newDiffCommand(),
		newWatchCommand(),
		newValidateCommand(),
		newCompletionCommand(),
	)

	return cmd
}
