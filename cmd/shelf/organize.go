package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var organizeDryRun bool

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "File every document under <Category>/<Year>/",
	Long: `Organize moves every file to its category and year directory, suffixing
names that collide, and records all moves as a single commit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if organizeDryRun {
			report, err := lib.Organizer.Preview(ctx)
			if err != nil {
				return err
			}
			printMoves(out, report)
			fmt.Fprintf(out, "Would move %d file(s)\n", report.Changes.Len())
			return nil
		}

		report, res, err := lib.Service.Organize(ctx)
		if err != nil {
			return fmt.Errorf("failed to organize: %w", err)
		}
		printMoves(out, report)
		fmt.Fprintf(out, "Moved %d file(s)\n", report.Changes.Len())
		printResult(out, res)
		if n := len(report.Failed); n > 0 {
			return fmt.Errorf("%d file(s) could not be moved", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "Show the moves without making them")
}
