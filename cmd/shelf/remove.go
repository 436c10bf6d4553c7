package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf/internal/prompt"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Delete a document from the library",
	Long:  `Remove permanently deletes a document and records the deletion. It asks for confirmation unless --yes is given.`,
	Args:  cobra.ExactArgs(1),
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

		out := cmd.OutOrStdout()
		if !removeYes {
			if !isInteractive(os.Stdin) {
				return errors.New("refusing to remove without confirmation; pass --yes")
			}
			ok, err := prompt.Confirm(fmt.Sprintf("Remove %s permanently?", e.Path), false)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "Kept %s\n", e.Path)
				return nil
			}
		}

		res, err := lib.Service.Remove(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", e.Path, err)
		}
		fmt.Fprintf(out, "Removed %s\n", e.Path)
		printResult(out, res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Do not ask for confirmation")
}
