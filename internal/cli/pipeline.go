package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/pagefilter/internal/config"
	"github.com/hupe1980/pagefilter/internal/filter"
	"github.com/hupe1980/pagefilter/internal/logging"
	"github.com/hupe1980/pagefilter/internal/manifest"
	"github.com/hupe1980/pagefilter/internal/version"
	"github.com/hupe1980/pagefilter/pkg/pagefilter"
)

// pipelineResult holds the outputs of one filter run over a manifest file.
type pipelineResult struct {
	// Input is the document as read from disk.
	Input map[string]interface{}
	// Output is the filtered document.
	Output map[string]interface{}
	Result *pagefilter.Result
	Rules  *config.FilterConfig
}

// loadRules merges the rules file with the rule flags and checks the
// required version. All failures are usage errors (exit code 2).
func loadRules(ctx context.Context, opts *ruleOptions) (*config.FilterConfig, error) {
	cfg := config.FromContext(ctx)

	fileRules, err := config.LoadFilterConfig(cfg.RulesFile())
	if err != nil {
		return nil, &ExitError{Code: 2, Err: err}
	}

	whitelist, err := filter.ParseRules(opts.whitelist)
	if err != nil {
		return nil, &ExitError{Code: 2, Err: fmt.Errorf("--whitelist: %w", err)}
	}

	blacklist, err := filter.ParseRules(opts.blacklist)
	if err != nil {
		return nil, &ExitError{Code: 2, Err: fmt.Errorf("--blacklist: %w", err)}
	}

	rules := fileRules.Extend(whitelist, blacklist)
	rules.Report = rules.Report || opts.report

	if err := rules.CheckVersion(version.GetInfo()); err != nil {
		return nil, &ExitError{Code: 2, Err: err}
	}

	return rules, nil
}

// newHook builds the filter hook for rules, logging through the context logger.
func newHook(ctx context.Context, rules *config.FilterConfig) *pagefilter.Hook {
	opts := []pagefilter.Option{
		pagefilter.WithWhitelist(rules.Whitelist...),
		pagefilter.WithBlacklist(rules.Blacklist...),
		pagefilter.WithLogger(logging.FromContext(ctx)),
	}

	if rules.Report {
		opts = append(opts, pagefilter.WithReport())
	}

	return pagefilter.New(opts...)
}

// runPipeline loads the manifest at path and filters it. This is the shared
// core used by the filter, diff and watch commands.
func runPipeline(ctx context.Context, path string, opts *ruleOptions) (*pipelineResult, error) {
	ctx = logging.With(ctx, slog.String("manifest", path))
	logger := logging.FromContext(ctx)

	rules, err := loadRules(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("rules loaded",
		slog.Any("whitelist", rules.Whitelist.Strings()),
		slog.Any("blacklist", rules.Blacklist.Strings()),
		slog.Bool("report", rules.Report),
	)

	doc, err := manifest.Load(path)
	if err != nil {
		return nil, &ExitError{Code: 1, Err: fmt.Errorf("loading manifest: %w", err)}
	}

	logger.Info("filtering manifest")

	out, res := newHook(ctx, rules).Apply(doc)

	if res.Manifest != nil {
		logger.Debug("manifest filtered",
			slog.Int("mainPages", len(res.Manifest.Pages)),
			slog.Int("subpackages", len(res.Manifest.Sections)),
			slog.Int("removedPages", res.Report.RemovedPages()),
		)
	}

	return &pipelineResult{
		Input:  doc,
		Output: out,
		Result: res,
		Rules:  rules,
	}, nil
}
