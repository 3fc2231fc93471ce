package cli

import (
	"github.com/spf13/cobra"
)

// ruleOptions holds the rule flags shared by filter, diff, watch and validate.
type ruleOptions struct {
	whitelist []string
	blacklist []string
	report    bool
}

// registerRuleFlags adds the whitelist/blacklist flags to a cobra command.
func registerRuleFlags(cmd *cobra.Command, opts *ruleOptions) {
	f := cmd.Flags()
	f.StringArrayVarP(&opts.whitelist, "whitelist", "w", nil,
		`include rule "section" or "section=page1,page2" (repeatable)`)
	f.StringArrayVarP(&opts.blacklist, "blacklist", "b", nil,
		`exclude rule "section" or "section=page1,page2" (repeatable)`)
	f.BoolVar(&opts.report, "report", false, "log a before/after change report")

	_ = cmd.RegisterFlagCompletionFunc("whitelist", completeRuleSections)
	_ = cmd.RegisterFlagCompletionFunc("blacklist", completeRuleSections)
}
