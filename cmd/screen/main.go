package main

import (
	"fmt"
	"os"

	"github.com/Skufu/GlucoRisk/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries state shared by every subcommand.
type cli struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "screen",
		Short: "Fuzzy rule-based diabetes risk screening",
		Long: `screen evaluates patient measurements against a fixed fuzzy rule base and
reports certainty for Diabetes, Pre-diabetes and Normal, the rules that fired,
a risk index and advice.

Outputs are advisory risk scores only, not a diagnosis.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if c.verbose {
				level = "debug"
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newEvalCmd(c),
		newBatchCmd(c),
		newRulesCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
