package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/datagrid/internal/logging"
	"github.com/mesh-intelligence/datagrid/internal/paths"
	"github.com/mesh-intelligence/datagrid/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive grid",
		Long: "Open the configured dataset in a full-screen grid with search,\n" +
			"paging, and row editing. Logs go to --log-file since the terminal\n" +
			"belongs to the grid.",
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	src, err := openSource(cfg)
	if err != nil {
		return err
	}

	logPath, err := paths.ResolveLogFile(flags.logFile, cfg.LogFile)
	if err != nil {
		return sysError("resolve log file: %w", err)
	}
	f, err := openLogFile(logPath)
	if err != nil {
		return sysError("%w", err)
	}
	defer f.Close()

	log := logging.New(f, logging.ParseLevel(cfg.LogLevel))
	log.Info("browse started", "source", cfg.Source, "page_size", cfg.PageSize)

	g := newGrid(cfg, log)
	if err := tui.Run(cmd.Context(), g, src, title(cfg), log); err != nil {
		return sysError("run browser: %w", err)
	}
	return nil
}

// openLogFile opens path for appending, creating its directory if needed.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
