package control

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/rtde-tools/trajgen/logging"
	"github.com/rtde-tools/trajgen/ros"
	"github.com/rtde-tools/trajgen/trajectory"
)

// ErrBusy is returned by HandleJointState under PolicyReject while another joint state is being
// processed.
var ErrBusy = errors.New("trajectory computation already in progress")

// TrajectoryNode listens for joint states and publishes a trajectory that moves axis 0 from the
// measured position to the configured target.
type TrajectoryNode struct {
	cfg       Config
	trajCfg   trajectory.Config
	publisher Publisher
	logger    logging.Logger

	triggered atomic.Bool
	busy      atomic.Bool
	published atomic.Int64
	dropped   atomic.Int64
}

// NewTrajectoryNode validates both configs and returns a node publishing through publisher.
func NewTrajectoryNode(
	cfg Config,
	trajCfg trajectory.Config,
	publisher Publisher,
	logger logging.Logger,
) (*TrajectoryNode, error) {
	cfg.Ensure()
	if err := cfg.Validate("node"); err != nil {
		return nil, err
	}
	trajCfg.Ensure()
	if err := trajCfg.Validate("trajectory"); err != nil {
		return nil, err
	}
	if publisher == nil {
		return nil, errors.New("trajectory node needs a publisher")
	}
	return &TrajectoryNode{
		cfg:       cfg,
		trajCfg:   trajCfg,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// HandleJointState computes and publishes a trajectory for js, subject to the overlap policy.
// A joint state that the policy drops returns nil.
func (n *TrajectoryNode) HandleJointState(ctx context.Context, js *ros.JointState) error {
	if js == nil {
		return trajectory.NewInsufficientSnapshotError(0)
	}
	switch n.cfg.Policy {
	case PolicyOnce:
		if !n.triggered.CompareAndSwap(false, true) {
			n.drop(ctx, "trajectory already computed")
			return nil
		}
	case PolicyDrop:
		if !n.busy.CompareAndSwap(false, true) {
			n.drop(ctx, "computation in progress")
			return nil
		}
		defer n.busy.Store(false)
	case PolicyReject:
		if !n.busy.CompareAndSwap(false, true) {
			return ErrBusy
		}
		defer n.busy.Store(false)
	}

	n.logger.Warn("Compute Trajectory")
	jt, err := n.compute(js)
	if err != nil {
		return err
	}
	if err := n.publisher.Publish(ctx, jt); err != nil {
		return errors.Wrap(err, "failed to publish trajectory")
	}
	n.published.Inc()
	n.logger.Warn("Trajectory Published")
	return nil
}

func (n *TrajectoryNode) compute(js *ros.JointState) (*ros.JointTrajectory, error) {
	snapshot, err := js.Snapshot()
	if err != nil {
		return nil, err
	}
	target := snapshot[0]
	if n.cfg.Target != nil {
		target = *n.cfg.Target
	}

	plan, err := trajectory.Generate(snapshot, target, n.trajCfg, n.logger)
	if err != nil {
		return nil, err
	}
	summary := plan.Summarize()
	n.logger.Infow("trajectory computed",
		"start", summary.StartPos,
		"end", summary.EndPos,
		"points", summary.Points,
		"peak_velocity", summary.PeakVelocity,
		"residual", summary.Residual,
	)

	jt := ros.NewJointTrajectory(plan.Samples(), n.cfg.JointNames)
	jt.Header = js.Header
	if err := jt.Validate(n.cfg.JointLimit); err != nil {
		return nil, errors.Wrap(err, "generated trajectory rejected")
	}
	return jt, nil
}

func (n *TrajectoryNode) drop(ctx context.Context, reason string) {
	n.dropped.Inc()
	n.logger.CDebugw(ctx, "dropping joint state", "reason", reason, "policy", n.cfg.Policy)
}

// Published returns how many trajectories the node has published.
func (n *TrajectoryNode) Published() int64 {
	return n.published.Load()
}

// Dropped returns how many joint states the overlap policy discarded.
func (n *TrajectoryNode) Dropped() int64 {
	return n.dropped.Load()
}

// Wait blocks until ctx is done. It stands in for spinning a node until shutdown.
func (n *TrajectoryNode) Wait(ctx context.Context) {
	<-ctx.Done()
	n.logger.Infow("trajectory node stopping", "published", n.Published(), "dropped", n.Dropped())
}
