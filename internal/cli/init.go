package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propdeco/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory and a default config.yaml",
		Long: "Create the configuration directory and write a default config.yaml.\n" +
			"An existing config.yaml is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *app) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := ensureConfigDir(configDir); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	written, err := writeDefaultConfig(configDir)
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	path := filepath.Join(configDir, configFileExt)
	if written {
		fmt.Fprintln(cmd.OutOrStdout(), "Created", path)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Config already exists:", path)
	}
	return nil
}
