package main

import (
	"fmt"
	"os"

	"github.com/aretw0/mazerunner/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mazerunner",
	Short: "Mazerunner explores mazes with the left-hand wall-following rule",
	Long: `Mazerunner loads .mz maze files, explores them with a left-hand wall follower
and reports the loop-free path from start to goal together with a score.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default: $MAZERUNNER_CONFIG or ./mazerunner.yaml)")
	rootCmd.PersistentFlags().String("store", "", "Run store: memory, file or redis")
	rootCmd.PersistentFlags().String("out", "", "Directory for the file store and saved frames")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every step at debug level")
	rootCmd.SilenceErrors = true
}

// overrides collects persistent flags that were explicitly set.
func overrides(cmd *cobra.Command) cli.Overrides {
	var o cli.Overrides
	if cmd.Flags().Changed("store") {
		o.Store, _ = cmd.Flags().GetString("store")
	}
	if cmd.Flags().Changed("out") {
		o.OutDir, _ = cmd.Flags().GetString("out")
	}
	if cmd.Flags().Changed("max-steps") {
		o.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
	}
	return o
}
