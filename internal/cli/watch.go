package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagefilter/internal/config"
	"github.com/hupe1980/pagefilter/internal/logging"
	"github.com/hupe1980/pagefilter/internal/output"
	"github.com/hupe1980/pagefilter/internal/watch"
)

type watchOptions struct {
	ruleOptions

	output   string
	format   string
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <manifest>",
		Short: "Re-filter a manifest whenever it or the rules change",
		Long: `Watch monitors the manifest and the rules file and re-runs the
filter when either is modified, writing the result to --output.

File changes are debounced to avoid rapid re-runs. Each run reports the
number of main pages, subpackages and removed pages. Errors are reported
and the watcher keeps running.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifestArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0], opts)
		},
	}

	registerRuleFlags(cmd, &opts.ruleOptions)

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file path (required)")
	f.StringVar(&opts.format, "format", "", "output format: json, yaml (default: from file extension)")
	registerFormatCompletion(cmd, "json", "yaml")
	f.DurationVar(&opts.debounce, "debounce", watch.DefaultOptions().Debounce, "debounce interval for file changes")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, opts *watchOptions) error {
	if opts.output == "" {
		return &ExitError{Code: 2, Err: fmt.Errorf("--output (-o) is required for watch mode")}
	}

	if samePath(opts.output, path) {
		return &ExitError{Code: 2, Err: fmt.Errorf("--output must differ from the watched manifest")}
	}

	format, err := resolveFormat(opts.format, opts.output, path)
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx)
	writer := output.NewFileWriter(opts.output, output.WithLogger(logger))

	runFn := func(fnCtx context.Context) (*watch.RunResult, error) {
		res, err := runPipeline(fnCtx, path, &opts.ruleOptions)
		if err != nil {
			return nil, err
		}

		data, err := output.Serialize(res.Output, format)
		if err != nil {
			return nil, fmt.Errorf("serializing manifest: %w", err)
		}

		if err := writer.Write(data); err != nil {
			return nil, fmt.Errorf("writing output: %w", err)
		}

		result := &watch.RunResult{
			RemovedPages: res.Result.Report.RemovedPages(),
			OutputPath:   opts.output,
		}

		if m := res.Result.Manifest; m != nil {
			result.MainPages = len(m.Pages)
			result.Sections = len(m.Sections)
		}

		return result, nil
	}

	files := []string{path}
	if rulesFile := config.FromContext(ctx).RulesFile(); rulesFile != "" {
		files = append(files, rulesFile)
	}

	watchOpts := watch.Options{
		Files:    files,
		Debounce: opts.debounce,
		Logger:   logger,
		Out:      cmd.ErrOrStderr(),
	}

	return watch.Run(ctx, watchOpts, runFn)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)

	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}

	return absA == absB
}
