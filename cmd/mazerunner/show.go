package main

import (
	"github.com/aretw0/mazerunner/internal/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ShowOptions{
			RunID:     args[0],
			Overrides: overrides(cmd),
			Out:       cmd.OutOrStdout(),
		}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		return cli.Show(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("json", false, "Print the run as JSON")
}
