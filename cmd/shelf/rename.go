package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename a document in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}

		e, err := lib.Service.Get(ctx, args[0])
		if err != nil {
			return err
		}
		renamed, res, err := lib.Service.Rename(ctx, e, args[1])
		if err != nil {
			return fmt.Errorf("failed to rename %s: %w", e.Path, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Renamed %s to %s\n", e.Path, renamed.Path)
		printResult(out, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
