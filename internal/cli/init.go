package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

const configHeader = "# gridview configuration\n# Every key can be overridden with GRIDVIEW_<KEY> (dots become underscores).\n\n"

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml with the current settings",
		Long: "Create the configuration directory and write config.yaml from the\n" +
			"effective settings (defaults, environment, and flags). An existing\n" +
			"config.yaml is left alone unless --force is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, force bool) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError("create config directory: %w", err)
	}

	exists, err := configExists(configDir)
	if err != nil {
		return sysError("%w", err)
	}
	path := configPath(configDir)
	if exists && !force {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
		return nil
	}

	if err := writeConfig(path, cfg); err != nil {
		return sysError("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// writeConfig marshals c to YAML and writes it to path.
func writeConfig(path string, c types.Config) error {
	data, err := yaml.Marshal(&c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
