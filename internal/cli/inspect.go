package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/propdeco/internal/scenario"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <scenario.yaml>",
		Short: "Show the members a scenario installs and their decorator chains",
		Long: `Inspect builds a scenario's object or class without running any step and
dumps every installed member: its declared and installed kind, flags, memo
token, and decorator chain, farthest first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(a, args[0])
			if err != nil {
				return err
			}
			in, err := scenario.NewRunner(a.registry, scenario.WithMode(a.cfg.Mode), scenario.WithLogger(a.log)).Inspect(s)
			if err != nil {
				return userError(fmt.Errorf("%s: %w", args[0], err))
			}

			if a.flags.jsonMode {
				out, err := json.MarshalIndent(in, "", "  ")
				if err != nil {
					return sysError(fmt.Errorf("marshal inspection: %w", err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			scenario.Dump(cmd.OutOrStdout(), in)
			return nil
		},
	}
}
