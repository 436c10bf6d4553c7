package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf/pkg/core"
)

var onConflict string

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Copy a file into the library",
	Long: `Add copies a file to the top level of the library, keeping its modification
time, and records the addition. Run 'shelf organize' to file it by category and year.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policy, err := core.ParseConflictPolicy(onConflict)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}

		e, res, err := lib.Service.Add(ctx, args[0], policy)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %s\n", e.Path)
		printResult(out, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&onConflict, "on-conflict", "reject", "What to do when the name is taken: reject, overwrite or suffix")
}
