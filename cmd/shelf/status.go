package main

import (
	"fmt"
	"sort"

	"github.com/aretw0/introspection"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusJSON bool

// statusReport summarises a library and the state of its components.
type statusReport struct {
	Root       string         `json:"root"`
	Versioning bool           `json:"versioning"`
	Push       bool           `json:"push"`
	Entries    int            `json:"entries"`
	TotalSize  int64          `json:"total_size"`
	Categories map[string]int `json:"categories"`
	Pending    int            `json:"pending_moves"`
	Components map[string]any `json:"components"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a summary of the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		lib, err := openLibrary(ctx)
		if err != nil {
			return err
		}

		entries, err := lib.Service.List(ctx)
		if err != nil {
			return err
		}
		preview, err := lib.Organizer.Preview(ctx)
		if err != nil {
			return err
		}

		report := statusReport{
			Root:       lib.Config.Root,
			Versioning: lib.Config.Versioning,
			Push:       lib.Config.Push,
			Entries:    len(entries),
			Categories: make(map[string]int),
			Pending:    preview.Changes.Len(),
			Components: make(map[string]any),
		}
		for _, e := range entries {
			report.TotalSize += e.Size
			report.Categories[string(lib.Classifier.Classify(e.Ext))]++
		}

		var components []introspection.Introspectable
		components = append(components, lib.Service)
		components = append(components, lib.Service.Components()...)
		for _, c := range components {
			name := fmt.Sprintf("%T", c)
			if comp, ok := c.(introspection.Component); ok {
				name = comp.ComponentType()
			}
			report.Components[name] = c.State()
		}

		out := cmd.OutOrStdout()
		if statusJSON {
			return writeJSON(out, report)
		}

		fmt.Fprintf(out, "Library:    %s\n", report.Root)
		fmt.Fprintf(out, "Versioning: %t (push: %t)\n", report.Versioning, report.Push)
		fmt.Fprintf(out, "Documents:  %d (%s)\n", report.Entries, humanize.Bytes(uint64(report.TotalSize)))
		fmt.Fprintf(out, "Unfiled:    %d\n", report.Pending)

		names := make([]string, 0, len(report.Categories))
		for name := range report.Categories {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, 0, len(names))
		for _, name := range names {
			rows = append(rows, []string{name, fmt.Sprint(report.Categories[name])})
		}
		if len(rows) > 0 {
			fmt.Fprintln(out, renderTable([]string{"Category", "Documents"}, rows, []columnAlignment{alignLeft, alignRight}))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
}
