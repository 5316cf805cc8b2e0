package trajectory

import (
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"github.com/rtde-tools/trajgen/utils"
)

// DefaultFinalTime is the default trajectory duration in seconds.
const DefaultFinalTime = 5.0

// Config holds the tunable constants of a trajectory. Unset (nil) fields are replaced by
// defaults in Ensure; an explicit zero is kept so Validate can reject it.
type Config struct {
	FinalTime    *float64 `json:"final_time,omitempty"`
	SampleStep   *float64 `json:"sample_step,omitempty"`
	TargetOffset *float64 `json:"target_offset,omitempty"`
}

// DefaultConfig returns a 5s trajectory sampled every 10ms with a -0.5 target offset.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.Ensure()
	return cfg
}

// ConfigFromAttributes decodes a loosely typed attribute map, as found in a rosbag parameter dump
// or a generic json blob, into a Config.
func ConfigFromAttributes(attributes map[string]interface{}) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return cfg, errors.Wrap(err, "failed to decode trajectory attributes")
	}
	return cfg, nil
}

// Ensure fills in defaults for unset fields.
func (cfg *Config) Ensure() {
	if cfg.FinalTime == nil {
		cfg.FinalTime = Float64(DefaultFinalTime)
	}
	if cfg.SampleStep == nil {
		cfg.SampleStep = Float64(DefaultSampleStep)
	}
	if cfg.TargetOffset == nil {
		cfg.TargetOffset = Float64(DefaultTargetOffset)
	}
}

// Float64 returns a pointer to v, for filling in Config fields.
func Float64(v float64) *float64 {
	return &v
}

// Duration returns the final time in seconds, or DefaultFinalTime when unset.
func (cfg Config) Duration() float64 {
	if cfg.FinalTime == nil {
		return DefaultFinalTime
	}
	return *cfg.FinalTime
}

// Step returns the sample step in seconds, or DefaultSampleStep when unset.
func (cfg Config) Step() float64 {
	if cfg.SampleStep == nil {
		return DefaultSampleStep
	}
	return *cfg.SampleStep
}

// Offset returns the target offset, or DefaultTargetOffset when unset.
func (cfg Config) Offset() float64 {
	if cfg.TargetOffset == nil {
		return DefaultTargetOffset
	}
	return *cfg.TargetOffset
}

// Validate checks an ensured config.
func (cfg Config) Validate(path string) error {
	if err := validateFinalTime(cfg.Duration()); err != nil {
		return utils.NewConfigValidationError(path+".final_time", err)
	}
	if step := cfg.Step(); !(step > 0) || math.IsInf(step, 0) {
		return utils.NewConfigValidationError(path+".sample_step", errors.Errorf("must be > 0, got %v", step))
	}
	return nil
}
