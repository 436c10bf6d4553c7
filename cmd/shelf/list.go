package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aretw0/shelf/pkg/core"
)

var (
	listJSON bool
	listTree bool
)

type listItem struct {
	core.Entry
	Category core.Category `json:"category"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every document in the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}

		entries, err := lib.Service.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list library: %w", err)
		}

		out := cmd.OutOrStdout()
		switch {
		case listJSON:
			items := make([]listItem, 0, len(entries))
			for _, e := range entries {
				items = append(items, listItem{Entry: e, Category: lib.Classifier.Classify(e.Ext)})
			}
			return writeJSON(out, items)

		case listTree:
			tree := newFileTree(filepath.Base(lib.Config.Root))
			for _, e := range entries {
				tree.Insert(e.Path)
			}
			fmt.Fprint(out, tree.Render())
			return nil
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "The library is empty.")
			return nil
		}
		rows := make([][]string, 0, len(entries))
		for i, e := range entries {
			rows = append(rows, []string{
				fmt.Sprint(i + 1),
				e.Path,
				string(lib.Classifier.Classify(e.Ext)),
				humanize.Bytes(uint64(e.Size)),
				e.Created.Format(time.DateOnly),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Path", "Category", "Size", "Modified"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
		))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listTree, "tree", false, "Output as a directory tree")
}
