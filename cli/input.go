package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"github.com/rtde-tools/trajgen/ros"
	"github.com/rtde-tools/trajgen/trajectory"
)

// jointStateFromFlags reads the joint state a one shot command works from. Exactly one of
// --bag, --state and --start is expected.
func jointStateFromFlags(c *cli.Context) (*ros.JointState, error) {
	sources := 0
	for _, name := range []string{bagFlag, stateFlag, startFlag} {
		if c.IsSet(name) {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.Errorf("specify exactly one of --%s, --%s or --%s", startFlag, stateFlag, bagFlag)
	}

	switch {
	case c.IsSet(bagFlag):
		states, err := jointStatesFromBag(c)
		if err != nil {
			return nil, err
		}
		return states[0], nil
	case c.IsSet(stateFlag):
		return readJointStateFile(c, c.String(stateFlag))
	default:
		rest := c.Float64Slice(restFlag)
		if len(rest) != 0 && len(rest) != trajectory.NumJoints-1 {
			return nil, errors.Errorf("--%s needs %d values, got %d", restFlag, trajectory.NumJoints-1, len(rest))
		}
		positions := make([]float64, trajectory.NumJoints)
		positions[0] = c.Float64(startFlag)
		copy(positions[1:], rest)
		return &ros.JointState{Name: ros.URJointNames, Position: positions}, nil
	}
}

func jointStatesFromBag(c *cli.Context) ([]*ros.JointState, error) {
	rb, err := ros.ReadBag(c.String(bagFlag))
	if err != nil {
		return nil, err
	}
	states, err := ros.JointStatesFromBag(rb, c.String(topicFlag))
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, errors.Errorf("no joint states on %s", c.String(topicFlag))
	}
	return states, nil
}

func readJointStateFile(c *cli.Context, path string) (*ros.JointState, error) {
	var r io.Reader = c.App.Reader
	if path != "-" {
		//nolint:gosec
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer utils.UncheckedErrorFunc(f.Close)
		r = f
	}
	var js ros.JointState
	if err := json.NewDecoder(r).Decode(&js); err != nil {
		return nil, errors.Wrapf(err, "failed to decode joint state from %s", path)
	}
	return &js, nil
}

// planFromFlags generates the plan for the joint state selected by the input flags, with the
// trajectory flags overriding the config.
func planFromFlags(c *cli.Context) (*trajectory.Plan, error) {
	js, err := jointStateFromFlags(c)
	if err != nil {
		return nil, err
	}
	snapshot, err := js.Snapshot()
	if err != nil {
		return nil, err
	}

	cfg := appConfig(c)
	trajCfg := cfg.Trajectory
	if c.IsSet(finalTimeFlag) {
		trajCfg.FinalTime = trajectory.Float64(c.Float64(finalTimeFlag))
	}
	if c.IsSet(stepFlag) {
		trajCfg.SampleStep = trajectory.Float64(c.Float64(stepFlag))
	}
	if c.IsSet(offsetFlag) {
		trajCfg.TargetOffset = trajectory.Float64(c.Float64(offsetFlag))
	}

	target := snapshot[0]
	switch {
	case c.IsSet(targetFlag):
		target = c.Float64(targetFlag)
	case cfg.Node.Target != nil:
		target = *cfg.Node.Target
	}

	return trajectory.Generate(snapshot, target, trajCfg, loggerNamed(c, "trajgen.trajectory"))
}
