package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagefilter/internal/config"
	"github.com/hupe1980/pagefilter/internal/report"
)

type diffOptions struct {
	ruleOptions

	// Output format: "unified" (default), "json".
	format string

	// Return exit code 3 when the filter changes the manifest.
	exitCode bool
}

func newDiffCommand() *cobra.Command {
	opts := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <manifest>",
		Short: "Show which pages the filter would remove",
		Long: `Diff runs the filter without writing anything and prints a unified
diff of the page listing before and after filtering, one "section: page"
line per page, followed by a change summary.

With --format json the change report is printed as JSON instead.

Exit codes:
  0  Success (or no changes with --exit-code)
  1  Error
  2  Invalid arguments, configuration or rules
  3  The manifest would change (only with --exit-code)`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifestArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), cmd, args[0], opts)
		},
	}

	registerRuleFlags(cmd, &opts.ruleOptions)

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "unified", "output format: unified, json")
	registerFormatCompletion(cmd, "unified", "json")
	f.BoolVar(&opts.exitCode, "exit-code", false, "exit with code 3 when pages would be removed")

	return cmd
}

func runDiff(ctx context.Context, cmd *cobra.Command, path string, opts *diffOptions) error {
	if opts.format != "unified" && opts.format != "json" {
		return &ExitError{Code: 2, Err: fmt.Errorf("invalid diff format %q (valid: unified, json)", opts.format)}
	}

	res, err := runPipeline(ctx, path, &opts.ruleOptions)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	rep := res.Result.Report

	switch opts.format {
	case "json":
		if err := report.FormatJSON(w, rep); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("formatting JSON: %w", err)}
		}
	default:
		diffOpts := report.DefaultDiffOptions()
		diffOpts.OldLabel = path
		diffOpts.NewLabel = path + " (filtered)"

		diffResult, diffErr := report.DiffManifests(res.Result.Before, res.Result.Manifest, diffOpts)
		if diffErr != nil {
			return &ExitError{Code: 1, Err: diffErr}
		}

		report.WriteDiff(w, diffResult, !config.FromContext(ctx).NoColor)

		if rep.Changed() {
			_, _ = fmt.Fprintln(w)
			report.Format(w, rep)
		}
	}

	if opts.exitCode && rep.Changed() {
		return &ExitError{
			Code: 3,
			Err: fmt.Errorf("manifest changed: %d page(s) and %d subpackage(s) removed",
				rep.RemovedPages(), len(rep.RemovedSections)),
		}
	}

	return nil
}
