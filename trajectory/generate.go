package trajectory

import (
	"github.com/pkg/errors"

	"github.com/rtde-tools/trajgen/logging"
)

// Plan is the result of one solve-then-sample request.
type Plan struct {
	Snapshot  JointSnapshot
	Target    float64
	Offset    float64
	FinalTime float64
	Solution  Solution
	Sampler   *Sampler
}

// Samples evaluates every waypoint of the plan.
func (p *Plan) Samples() []Sample {
	return p.Sampler.Collect()
}

// Generate fits a trajectory that moves axis 0 of snapshot to target+offset over the configured
// duration and returns the sampled plan. cfg is ensured and validated first.
func Generate(snapshot JointSnapshot, target float64, cfg Config, logger logging.Logger) (*Plan, error) {
	cfg.Ensure()
	if err := cfg.Validate("trajectory"); err != nil {
		return nil, err
	}

	conditions := NewBoundaryConditions(snapshot[0], target, cfg.Duration(), cfg.Offset())
	logger.Debugw("solving boundary value problem", "conditions", conditions)
	sol, err := SolveConditions(conditions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fit trajectory")
	}
	logger.Debugw("solved", "coefficients", sol.Coefficients, "rank", sol.Rank, "residual", sol.Residual)

	return &Plan{
		Snapshot:  snapshot,
		Target:    target,
		Offset:    cfg.Offset(),
		FinalTime: cfg.Duration(),
		Solution:  sol,
		Sampler:   NewSamplerWithStep(sol.Coefficients, cfg.Duration(), cfg.Step(), snapshot),
	}, nil
}
