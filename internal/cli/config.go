package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/propdeco/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyLogLevel    = "log_level"
	cfgKeyMode        = "mode"
	cfgKeyOutput      = "output"
	cfgKeyScenarioDir = "scenario_dir"

	envPrefix = "PROPDECO"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# propdeco configuration

# Log level: debug, info, warn, error
log_level: warn

# Default validator mode for decorators that do not name one: loose or strict
mode: loose

# Run output: text or json
output: text

# Directory relative scenario paths are resolved against (optional;
# overridable by --scenario-dir)
# scenario_dir:
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. PROPDECO_LOG_LEVEL,
// PROPDECO_MODE, and PROPDECO_OUTPUT override the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetDefault(cfgKeyMode, string(types.DefaultMode))
	v.SetDefault(cfgKeyOutput, types.DefaultOutput)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyLogLevel, cfgKeyMode, cfgKeyOutput} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// configFrom builds a validated Config from v, letting flags win.
func configFrom(v *viper.Viper, flags rootFlags) (types.Config, error) {
	cfg := types.Config{
		LogLevel:    v.GetString(cfgKeyLogLevel),
		Mode:        types.Mode(v.GetString(cfgKeyMode)),
		Output:      v.GetString(cfgKeyOutput),
		ScenarioDir: v.GetString(cfgKeyScenarioDir),
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.jsonMode {
		cfg.Output = types.OutputJSON
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w (log_level=%q mode=%q output=%q)",
			err, cfg.LogLevel, cfg.Mode, cfg.Output)
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	_, err := writeDefaultConfig(configDir)
	return err
}

// writeDefaultConfig is ensureDefaultConfigFile that also reports whether it
// wrote the file.
func writeDefaultConfig(configDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
