package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/pagefilter/internal/version"
)

type versionOptions struct {
	json  bool
	short bool
	check string
}

func newVersionCommand() *cobra.Command {
	opts := &versionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the pagefilter version, commit, build date, Go version and platform.

With --check the binary version is tested against a semver constraint, the
same way the "requiredVersion" key of a rules file is checked. Development
builds satisfy every constraint.`,
		Example: `  pagefilter version --short
  pagefilter version --check ">= 0.3, < 1"`,
		Args: cobra.NoArgs,
		// version reads no config file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.json, "json", false, "output version info as JSON")
	f.BoolVar(&opts.short, "short", false, "print the version number only")
	f.StringVar(&opts.check, "check", "", "exit non-zero unless the version satisfies this constraint")

	cmd.MarkFlagsMutuallyExclusive("json", "short")

	return cmd
}

func runVersion(cmd *cobra.Command, opts *versionOptions) error {
	info := version.GetInfo()
	w := cmd.OutOrStdout()

	if opts.check != "" {
		if err := version.ValidateConstraint(opts.check); err != nil {
			return &ExitError{Code: 2, Err: err}
		}

		if err := info.Satisfies(opts.check); err != nil {
			return &ExitError{Code: 1, Err: err}
		}

		_, err := fmt.Fprintf(w, "pagefilter %s satisfies %q\n", info.Version, opts.check)

		return err
	}

	switch {
	case opts.json:
		j, err := info.JSON()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, j)

		return err
	case opts.short:
		_, err := fmt.Fprintln(w, info.Version)

		return err
	default:
		_, err := fmt.Fprintln(w, info.String())

		return err
	}
}
