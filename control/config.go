package control

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/rtde-tools/trajgen/ros"
	"github.com/rtde-tools/trajgen/trajectory"
	"github.com/rtde-tools/trajgen/utils"
)

// OverlapPolicy decides what happens to a joint state that arrives while the node is busy or
// has already produced its trajectory.
type OverlapPolicy string

const (
	// PolicyOnce computes a single trajectory per node; every later joint state is dropped.
	PolicyOnce OverlapPolicy = "once"
	// PolicyDrop drops joint states that arrive while a computation is in flight.
	PolicyDrop OverlapPolicy = "drop"
	// PolicyReject fails joint states that arrive while a computation is in flight with ErrBusy.
	PolicyReject OverlapPolicy = "reject"
)

// Config configures a TrajectoryNode.
type Config struct {
	Policy     OverlapPolicy `json:"policy,omitempty"`
	JointNames []string      `json:"joint_names,omitempty"`
	// JointLimit bounds every commanded position in magnitude. Negative disables the check.
	JointLimit float64 `json:"joint_limit,omitempty"`
	// Target is the absolute axis 0 goal before the trajectory offset is applied. When unset the
	// measured axis 0 position is used.
	Target *float64 `json:"target,omitempty"`
}

// Ensure fills in defaults for unset fields.
func (cfg *Config) Ensure() {
	if cfg.Policy == "" {
		cfg.Policy = PolicyOnce
	}
	if cfg.JointNames == nil {
		cfg.JointNames = ros.URJointNames
	}
	if cfg.JointLimit == 0 {
		cfg.JointLimit = ros.DefaultJointLimit
	}
}

// Validate checks an ensured config.
func (cfg Config) Validate(path string) error {
	switch cfg.Policy {
	case PolicyOnce, PolicyDrop, PolicyReject:
	default:
		return utils.NewConfigValidationError(path+".policy", errors.Errorf("unknown overlap policy %q", cfg.Policy))
	}
	if len(cfg.JointNames) != trajectory.NumJoints {
		return utils.NewConfigValidationError(path+".joint_names",
			errors.Errorf("need %d joint names, got %d", trajectory.NumJoints, len(cfg.JointNames)))
	}
	for i, name := range cfg.JointNames {
		if name == "" {
			return utils.NewConfigValidationFieldRequiredError(path, fmt.Sprintf("joint_names[%d]", i))
		}
	}
	if math.IsNaN(cfg.JointLimit) {
		return utils.NewConfigValidationError(path+".joint_limit", errors.New("must be a number"))
	}
	if cfg.Target != nil && (math.IsNaN(*cfg.Target) || math.IsInf(*cfg.Target, 0)) {
		return utils.NewConfigValidationError(path+".target", errors.Errorf("must be finite, got %v", *cfg.Target))
	}
	return nil
}
