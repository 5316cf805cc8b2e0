// Package config defines the structures to configure trajgen.
package config

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/rtde-tools/trajgen/control"
	"github.com/rtde-tools/trajgen/logging"
	"github.com/rtde-tools/trajgen/ros"
	"github.com/rtde-tools/trajgen/trajectory"
	"github.com/rtde-tools/trajgen/utils"
)

// A Config describes the trajectory parameters, the node and its logging.
type Config struct {
	// ConfigFilePath is the path the config was read from, if any.
	ConfigFilePath string `json:"-"`

	Trajectory trajectory.Config `json:"trajectory"`
	Node       control.Config    `json:"node"`
	// Topic is what published trajectories are addressed to.
	Topic string                        `json:"topic,omitempty"`
	Debug bool                          `json:"debug,omitempty"`
	Log   []logging.LoggerPatternConfig `json:"log,omitempty"`
}

// Ensure fills in defaults and validates every section, returning the first problem found.
func (c *Config) Ensure() error {
	c.Trajectory.Ensure()
	if err := c.Trajectory.Validate("trajectory"); err != nil {
		return err
	}
	c.Node.Ensure()
	if err := c.Node.Validate("node"); err != nil {
		return err
	}
	if c.Topic == "" {
		c.Topic = ros.TrajectoryCommandTopic
	}
	for idx, lpc := range c.Log {
		path := fmt.Sprintf("%s.%d", "log", idx)
		if lpc.Pattern == "" {
			return utils.NewConfigValidationFieldRequiredError(path, "pattern")
		}
		if _, err := logging.LevelFromString(lpc.Level); err != nil {
			return utils.NewConfigValidationError(path+".level", errors.WithMessagef(err, "for pattern %q", lpc.Pattern))
		}
	}
	return nil
}

// Default returns an ensured config with every default applied.
func Default() *Config {
	cfg := &Config{}
	// defaults always validate
	if err := cfg.Ensure(); err != nil {
		panic(err)
	}
	return cfg
}
