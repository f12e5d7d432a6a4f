// Package cli implements the propdeco command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/propdeco/internal/logging"
	"github.com/mesh-intelligence/propdeco/internal/paths"
	"github.com/mesh-intelligence/propdeco/pkg/decorators"
	"github.com/mesh-intelligence/propdeco/pkg/propdeco"
	"github.com/mesh-intelligence/propdeco/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir   string
	scenarioDir string
	logLevel    string
	jsonMode    bool
}

// app carries what PersistentPreRunE resolves to the subcommands.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	log       *zap.Logger
	registry  *decorators.Registry
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// NewRootCmd creates the top-level "propdeco" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "propdeco",
		Short: "Run and inspect decorated property scenarios",
		Long: "propdeco declares object and class members from YAML scenario files,\n" +
			"stacks decorators on them, and traces reads and writes through the stack.",
		Version: propdeco.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch cmd.Name() {
			case "version", "init":
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/propdeco)")
	pf.StringVar(&a.flags.scenarioDir, "scenario-dir", "", "directory relative scenario paths are resolved against (default: working directory)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: from config.yaml)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newRunCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newDecoratorsCmd(a))

	return root
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger and decorator registry.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = dir

	v, err := loadConfig(dir)
	if err != nil {
		return sysError(err)
	}
	cfg, err := configFrom(v, a.flags)
	if err != nil {
		return userError(err)
	}
	a.cfg = cfg

	log, _, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return userError(err)
	}
	a.log = log.With(zap.String("command", cmd.Name()))
	a.registry = decorators.DefaultRegistry(a.log)
	return nil
}

// jsonOutput reports whether results should be written as JSON.
func (a *app) jsonOutput() bool {
	return a.flags.jsonMode || a.cfg.Output == types.OutputJSON
}

// Execute runs the root command with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "propdeco:", err)

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
