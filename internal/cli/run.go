package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/propdeco/internal/paths"
	"github.com/mesh-intelligence/propdeco/internal/scenario"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// errScenarioFailed is returned when a scenario ran but a step missed its
// expectations.
var errScenarioFailed = errors.New("scenario failed")

func newRunCmd(a *app) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run scenario files and print their traces",
		Long: `Run declares each scenario's members, applies their decorators, and runs
the steps in order. Every step is traced; a step that misses its expect or
expect_error makes the run fail with exit code 1, but later steps still run.

Example:
  propdeco run scenarios/answer.yaml
  propdeco run --mode strict --json answer.yaml counter.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd.OutOrStdout(), a, types.Mode(mode), args)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "validator mode for decorators that name none: loose or strict (default: from config.yaml)")
	return cmd
}

func runScenarios(out io.Writer, a *app, mode types.Mode, args []string) error {
	if mode == "" {
		mode = a.cfg.Mode
	}
	if !types.ValidMode(mode) {
		return userError(fmt.Errorf("%w: %q", types.ErrModeUnknown, mode))
	}

	runner := scenario.NewRunner(a.registry, scenario.WithMode(mode), scenario.WithLogger(a.log))

	failed := 0
	for _, arg := range args {
		s, err := loadScenario(a, arg)
		if err != nil {
			return err
		}
		res, err := runner.Run(s)
		if err != nil {
			return userError(fmt.Errorf("%s: %w", arg, err))
		}
		if err := writeResult(out, a, res); err != nil {
			return sysError(err)
		}
		if !res.OK() {
			failed++
		}
	}

	if failed > 0 {
		return userError(fmt.Errorf("%w: %d of %d", errScenarioFailed, failed, len(args)))
	}
	return nil
}

// loadScenario resolves arg against the scenario directory and loads it.
func loadScenario(a *app, arg string) (*scenario.Scenario, error) {
	dir, err := paths.ResolveScenarioDir(a.flags.scenarioDir, a.cfg.ScenarioDir)
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve scenario dir: %w", err))
	}
	path := paths.ScenarioPath(dir, arg)
	a.log.Debug("loading scenario", zap.String("path", path))

	s, err := scenario.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, scenario.ErrInvalidScenario) {
			return nil, userError(err)
		}
		return nil, sysError(err)
	}
	return s, nil
}

func writeResult(out io.Writer, a *app, res *scenario.Result) error {
	if a.jsonOutput() {
		return scenario.WriteJSON(out, res)
	}
	return scenario.WriteText(out, res)
}
