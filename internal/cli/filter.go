package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagefilter/internal/logging"
	"github.com/hupe1980/pagefilter/internal/output"
)

type filterOptions struct {
	ruleOptions

	output string
	format string
	dryRun bool
}

func newFilterCommand() *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter <manifest>",
		Short: "Filter the pages of a manifest",
		Long: `Filter applies the whitelist and then the blacklist to a page
manifest (app.json, or an equivalent YAML file) and prints or writes the
pruned manifest.

All other fields of the manifest are kept as they are.

Exit codes:
  0  Success
  1  Error reading or writing files
  2  Invalid arguments, configuration or rules`,
		Example: `  pagefilter filter app.json -w app=pages/index,pages/user -w packageA
  pagefilter filter src/app.json -b packageDebug -o dist/app.json --report`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifestArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.Context(), cmd, args[0], opts)
		},
	}

	registerRuleFlags(cmd, &opts.ruleOptions)

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file path (default: stdout)")
	f.StringVar(&opts.format, "format", "", "output format: json, yaml (default: from file extension)")
	registerFormatCompletion(cmd, "json", "yaml")
	f.BoolVar(&opts.dryRun, "dry-run", false, "preview output without writing files")

	return cmd
}

// resolveFormat picks the output format from the flag, then the output
// path, then the input path.
func resolveFormat(flag, outputPath, inputPath string) (output.Format, error) {
	format, err := output.ParseFormat(flag)
	if err != nil {
		return "", &ExitError{Code: 2, Err: err}
	}

	if format != "" {
		return format, nil
	}

	if outputPath != "" {
		return output.FormatFromPath(outputPath, output.FormatJSON), nil
	}

	return output.FormatFromPath(inputPath, output.FormatJSON), nil
}

func runFilter(ctx context.Context, cmd *cobra.Command, path string, opts *filterOptions) error {
	logger := logging.FromContext(ctx)

	format, err := resolveFormat(opts.format, opts.output, path)
	if err != nil {
		return err
	}

	res, err := runPipeline(ctx, path, &opts.ruleOptions)
	if err != nil {
		return err
	}

	data, err := output.Serialize(res.Output, format)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("serializing manifest: %w", err)}
	}

	if opts.dryRun {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "# Dry-run mode: output preview")
	}

	if opts.output != "" && !opts.dryRun {
		w := output.NewFileWriter(opts.output, output.WithLogger(logger))
		if err := w.Write(data); err != nil {
			return &ExitError{Code: 1, Err: fmt.Errorf("writing output: %w", err)}
		}

		logger.Info("manifest written", slog.String("path", opts.output))

		return nil
	}

	if err := output.NewStdoutWriter(cmd.OutOrStdout()).Write(data); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("writing output: %w", err)}
	}

	return nil
}
