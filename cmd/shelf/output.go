package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/aretw0/shelf/pkg/core"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printResult reports the commit of a mutation, or why it was not recorded.
func printResult(w io.Writer, res core.Result) {
	if res.Commit != "" {
		fmt.Fprintf(w, "Recorded as %s\n", res.Commit.Short())
	}
	if res.Warning != nil {
		fmt.Fprintf(w, "Warning: change applied but not recorded: %v\n", res.Warning)
	}
}

// printMoves renders the moves of an organize pass and its failures.
func printMoves(w io.Writer, report core.Report) {
	if !report.Changes.Empty() {
		rows := make([][]string, 0, report.Changes.Len())
		for _, c := range report.Changes.Changes {
			rows = append(rows, []string{c.From, c.Path})
		}
		fmt.Fprintln(w, renderTable([]string{"From", "To"}, rows, nil))
	}
	for _, f := range report.Failed {
		fmt.Fprintf(w, "Could not move %s: %v\n", f.Path, f.Err)
	}
}
