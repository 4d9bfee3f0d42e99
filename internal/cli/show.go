package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/datagrid/internal/columns"
	"github.com/mesh-intelligence/datagrid/internal/grid"
	"github.com/mesh-intelligence/datagrid/internal/tui"
	"github.com/mesh-intelligence/datagrid/pkg/types"
)

type showOptions struct {
	filter string
	page   int
}

// showColumn and showRow are the JSON shapes printed by show --json.
type showColumn struct {
	Path     string `json:"path"`
	Header   string `json:"header"`
	Group    string `json:"group,omitempty"`
	Renderer string `json:"renderer,omitempty"`
}

type showRow struct {
	Index  int            `json:"index"`
	Values map[string]any `json:"values"`
}

type showPage struct {
	Index       int `json:"index"`
	Count       int `json:"count"`
	Size        int `json:"size"`
	VisibleRows int `json:"visible_rows"`
	TotalRows   int `json:"total_rows"`
}

type showOutput struct {
	Filter  string       `json:"filter,omitempty"`
	Page    showPage     `json:"page"`
	Columns []showColumn `json:"columns"`
	Rows    []showRow    `json:"rows"`
}

func newShowCmd() *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one page of the dataset",
		Long: "Fetch the configured dataset, apply --filter, and print page --page\n" +
			"as a table, or as JSON with --json.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.filter, "filter", "", "case-insensitive substring filter")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number, 1-based; clamped to the available pages")
	return cmd
}

func runShow(cmd *cobra.Command, opts showOptions) error {
	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	rows, err := src.Fetch(cmd.Context())
	if err != nil {
		return sysError("fetch: %w", err)
	}

	g := newGrid(cfg, slog.Default())
	g.Load(rows)
	g.SetFilter(opts.filter)
	if err := g.Navigate(types.NavJump, opts.page-1); err != nil {
		return sysError("navigate: %w", err)
	}

	if flags.jsonMode {
		return printJSON(cmd, g)
	}
	printTable(cmd, g)
	return nil
}

func printJSON(cmd *cobra.Command, g *grid.Grid) error {
	groups := columns.ForSource(cfg.Source)
	group := make(map[string]string)
	for _, gr := range groups {
		for _, c := range gr.Columns {
			group[c.Path] = gr.Header
		}
	}

	cols := g.Columns()
	out := showOutput{
		Filter:  g.Filter(),
		Columns: make([]showColumn, len(cols)),
		Rows:    []showRow{},
	}
	info := g.PageInfo()
	out.Page = showPage{
		Index:       info.Index + 1,
		Count:       info.Count,
		Size:        info.Size,
		VisibleRows: info.VisibleRows,
		TotalRows:   info.TotalRows,
	}
	for i, c := range cols {
		out.Columns[i] = showColumn{Path: c.Path, Header: c.Header, Group: group[c.Path], Renderer: c.Renderer}
	}
	for _, r := range g.Page() {
		values := make(map[string]any, len(r.Cells))
		for _, cell := range r.Cells {
			values[cell.Column.Path] = cell.Value
		}
		out.Rows = append(out.Rows, showRow{Index: r.Index, Values: values})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return sysError("marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printTable(cmd *cobra.Command, g *grid.Grid) {
	cols := g.Columns()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(columnLabels(columns.ForSource(cfg.Source), cols)...)
	for _, r := range g.Page() {
		cells := make([]string, len(r.Cells))
		for i, cell := range r.Cells {
			cells[i] = tui.RenderCell(cell.Column, cell.Value)
		}
		t.Row(cells...)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, t.Render())
	info := g.PageInfo()
	fmt.Fprintf(out, "Page %d of %d  (%d of %d rows)\n", info.Index+1, info.Count, info.VisibleRows, info.TotalRows)
	if f := g.Filter(); f != "" {
		fmt.Fprintf(out, "Filter: %s\n", f)
	}
}
