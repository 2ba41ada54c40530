package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/JakeFAU/nhl-stats-crawler/internal/config"
	"github.com/JakeFAU/nhl-stats-crawler/internal/logging"
	"github.com/JakeFAU/nhl-stats-crawler/internal/version"
)

var debug bool

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nhldata",
		Short: "Crawls NHL game statistics into object storage.",
		Long: `nhldata fetches the NHL schedule and per-game boxscores from the
statsapi endpoint, flattens player statistics into fixed-width CSV files,
and stores one file per game in the configured data bucket. Every run also
stores an audit record in the jobs bucket, whatever the outcome.`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.InitLogger(debug)
			printSplash(cmd.OutOrStdout(), debug)
		},
	}

	cobra.OnInitialize(func() { config.InitViper(viper.GetViper()) })

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newGamesCmd())

	return cmd
}

// printSplash writes the startup banner. Operators reading scheduler logs
// use it to tell which build and verbosity produced the run.
func printSplash(w io.Writer, debug bool) {
	level := "INFO"
	if debug {
		level = "DEBUG"
	}
	fmt.Fprintf(w, "NHLData v%s\n", version.Version)
	fmt.Fprintf(w, "log level is %s and higher\n", level)
}

// Execute is the main entry point. Errors are logged but never turned into
// a non-zero exit code; schedulers judge runs by the audit trail instead.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logging.L.Error("Command execution failed", zap.Error(err))
	}
}
