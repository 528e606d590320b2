package main

import (
	"github.com/aretw0/mazerunner/internal/cli"
	"github.com/spf13/cobra"
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve <file.mz>",
	Short: "Explore a maze and print the simplified path",
	Long: `Explores the maze with the left-hand rule (priority LF > F > RF > LLF), simplifies the
visited trace into a loop-free path and prints a report with the score.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.SolveOptions{
			MazePath:  args[0],
			Overrides: overrides(cmd),
			Out:       cmd.OutOrStdout(),
			ErrOut:    cmd.ErrOrStderr(),
		}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Start, _ = cmd.Flags().GetString("start")
		opts.Goal, _ = cmd.Flags().GetString("goal")
		opts.SaveFrames, _ = cmd.Flags().GetBool("save-frames")
		opts.Display, _ = cmd.Flags().GetBool("display")
		opts.Delay, _ = cmd.Flags().GetDuration("delay")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Debug, _ = cmd.Flags().GetBool("debug")

		return cli.RunSolve(opts)
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().String("start", "", `Start cell as "x, y" (default "0, 0")`)
	solveCmd.Flags().String("goal", "", `Goal cell as "x, y" (default: north-east corner)`)
	solveCmd.Flags().Bool("save-frames", false, "Save every frame as text under <out>/<run-id>/frames")
	solveCmd.Flags().Bool("display", false, "Draw every frame on the terminal")
	solveCmd.Flags().Duration("delay", 0, "Pause between displayed frames (e.g. 200ms)")
	solveCmd.Flags().Int("max-steps", 0, "Step limit (default 4*width*height)")
	solveCmd.Flags().Bool("json", false, "Print the run as JSON")

	// `mazerunner maze.mz` is shorthand for `mazerunner solve maze.mz`.
	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return solveCmd.RunE(cmd, args)
	}
}
