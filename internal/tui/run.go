package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/datagrid/internal/source"
)

// Run starts the interactive grid view and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, g Grid, src source.Source, title string, log *slog.Logger) error {
	p := tea.NewProgram(New(ctx, g, src, title, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
