package types

import "errors"

// Mode selects how a validator treats a rejected value.
type Mode string

// Validator modes. The zero Mode behaves as ModeLoose.
const (
	ModeLoose  Mode = "loose"
	ModeStrict Mode = "strict"
)

// Output formats for run traces.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the settings the propdeco CLI reads from config.yaml.
type Config struct {
	LogLevel string `json:"log_level" yaml:"log_level"`
	Mode     Mode   `json:"mode" yaml:"mode"`
	Output   string `json:"output" yaml:"output"`

	// ScenarioDir is where relative scenario paths are looked up. Empty
	// means the working directory.
	ScenarioDir string `json:"scenario_dir,omitempty" yaml:"scenario_dir,omitempty"`
}

// Defaults applied when a key is absent from config.yaml.
const (
	DefaultLogLevel = "warn"
	DefaultMode     = ModeLoose
	DefaultOutput   = OutputText
)

// Config validation errors.
var (
	ErrLogLevelUnknown = errors.New("unknown log level")
	ErrModeUnknown     = errors.New("unknown validation mode")
	ErrOutputUnknown   = errors.New("unknown output format")
)

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var knownOutputs = map[string]bool{
	OutputText: true,
	OutputJSON: true,
}

// ValidMode reports whether m names a validator mode. The empty mode is
// valid and means loose.
func ValidMode(m Mode) bool {
	return m == "" || m == ModeLoose || m == ModeStrict
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	if !ValidMode(c.Mode) {
		return ErrModeUnknown
	}
	if !knownOutputs[c.Output] {
		return ErrOutputUnknown
	}
	return nil
}
