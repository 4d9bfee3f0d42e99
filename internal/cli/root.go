// Package cli implements the gridview command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/datagrid/internal/logging"
	"github.com/mesh-intelligence/datagrid/internal/paths"
	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	source    string
	pageSize  int
	logFile   string
	logLevel  string
	jsonMode  bool
}

var flags rootFlags

// cfg is the effective configuration: config.yaml, then GRIDVIEW_* env,
// then flags. Set by PersistentPreRunE.
var cfg types.Config

// configDir is the resolved configuration directory.
var configDir string

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// ExitCode maps a command error to a process exit code. Errors that did not
// come from a command body (flag parsing, unknown commands) are user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "gridview" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	root := &cobra.Command{
		Use:   "gridview",
		Short: "Browse and edit tabular datasets in the terminal",
		Long: "gridview loads a dataset (a bundled sample, a TVMaze show search, a JSONL\n" +
			"file, or a SQLite table) into an editable, filterable, paginated grid.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.source, "source", "", "dataset source: sample, tvmaze, jsonl, sqlite")
	root.PersistentFlags().IntVar(&flags.pageSize, "page-size", 0, "rows per page")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "log file for the browser (default: state dir)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newBrowseCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gridview:", err)
		os.Exit(ExitCode(err))
	}
}

// setup resolves the config directory, loads the configuration, applies
// flag overrides, and installs the default logger.
func setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	dir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	configDir = dir

	loaded, err := loadConfig(dir)
	if err != nil {
		return sysError("%w", err)
	}
	applyFlags(cmd, &loaded)
	if err := loaded.Validate(); err != nil {
		return userError("invalid configuration: %w", err)
	}
	cfg = loaded

	slog.SetDefault(logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel)))
	return nil
}

// applyFlags overrides configuration values with flags the user set.
func applyFlags(cmd *cobra.Command, c *types.Config) {
	pf := cmd.Flags()
	if pf.Changed("source") {
		c.Source = flags.source
	}
	if pf.Changed("page-size") {
		c.PageSize = flags.pageSize
	}
	if pf.Changed("log-level") {
		c.LogLevel = flags.logLevel
	}
}
