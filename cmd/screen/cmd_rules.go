package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Skufu/GlucoRisk/internal/screening"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rule base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPREMISES\tCONCLUSION\tCF\tCONDITIONAL")
			for _, r := range screening.Default().Rules() {
				names := make([]string, 0, len(r.Premises))
				for _, id := range r.PredicateIDs() {
					names = append(names, string(id))
				}
				cond := ""
				if r.Conditional {
					cond = "female only"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", r.ID, strings.Join(names, " AND "), r.Conclusion, r.Confidence, cond)
			}
			return tw.Flush()
		},
	}
}
