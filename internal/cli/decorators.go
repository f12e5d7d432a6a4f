package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// decoratorInfo is the JSON form of a registry entry.
type decoratorInfo struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Usage string `json:"usage"`
}

func newDecoratorsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decorators",
		Short: "List the decorators scenario files can name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []decoratorInfo
			for _, e := range a.registry.Entries() {
				kind := "transformer"
				if e.Validator {
					kind = "validator"
				}
				infos = append(infos, decoratorInfo{Name: e.Name, Kind: kind, Usage: e.Usage})
			}

			if a.flags.jsonMode {
				out, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return sysError(fmt.Errorf("marshal decorators: %w", err))
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tUSAGE")
			fmt.Fprintln(w, "----\t----\t-----")
			for _, i := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\n", i.Name, i.Kind, i.Usage)
			}
			return w.Flush()
		},
	}
}
