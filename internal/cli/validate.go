package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagefilter/internal/manifest"
	"github.com/hupe1980/pagefilter/internal/output"
)

type validateOptions struct {
	ruleOptions

	strict bool
}

func newValidateCommand() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check a page manifest and the filter rules",
		Long: `Validate checks that the manifest has the shape the filter expects
(a "pages" list and sub-packages with a root and a pages list) and that
every rule can select something: rules naming a sub-package that does not
exist, or a page prefix that matches no page, are reported as warnings.

A malformed manifest is passed through unchanged by "filter"; validate is
the way to find out why.

Exit codes:
  0  Success
  1  Error reading files
  2  Invalid arguments, configuration or rules
  4  Validation failed (or warnings were found with --strict)`,
		Example: `  pagefilter validate app.json
  pagefilter validate app.json --rules rules.yaml --strict`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifestArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, args[0], opts)
		},
	}

	registerRuleFlags(cmd, &opts.ruleOptions)

	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail on warnings in addition to errors")

	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, path string, opts *validateOptions) error {
	rules, err := loadRules(ctx, &opts.ruleOptions)
	if err != nil {
		return err
	}

	doc, err := manifest.Load(path)
	if err != nil {
		if errors.Is(err, manifest.ErrInvalidFormat) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Syntax error: %v\n", err)
			return &ExitError{Code: 4, Err: err}
		}

		return &ExitError{Code: 1, Err: fmt.Errorf("loading manifest: %w", err)}
	}

	result := output.ValidateManifest(doc, rules.Whitelist, rules.Blacklist)

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), output.FormatValidationResult(result))

	if rules.IsEmpty() {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No rules configured; only the manifest structure was checked.")
	}

	if result.HasErrors() {
		return &ExitError{Code: 4, Err: fmt.Errorf("validation failed with %d error(s)", len(result.Errors()))}
	}

	if opts.strict && result.HasWarnings() {
		return &ExitError{Code: 4, Err: fmt.Errorf("validation failed with %d warning(s) (strict mode)", len(result.Warnings()))}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed.")

	return nil
}
