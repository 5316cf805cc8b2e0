package ros

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/rtde-tools/trajgen/trajectory"
)

// DefaultJointLimit is the largest absolute joint position, in radians, a UR arm accepts.
const DefaultJointLimit = 2 * math.Pi

// Snapshot captures the first trajectory.NumJoints positions of the state.
func (js *JointState) Snapshot() (trajectory.JointSnapshot, error) {
	return trajectory.NewJointSnapshot(js.Position)
}

// NewJointTrajectory converts samples into a trajectory command. A nil jointNames uses URJointNames.
func NewJointTrajectory(samples []trajectory.Sample, jointNames []string) *JointTrajectory {
	if jointNames == nil {
		jointNames = URJointNames
	}
	jt := &JointTrajectory{
		JointNames: jointNames,
		Points:     make([]JointTrajectoryPoint, 0, len(samples)),
	}
	for _, sample := range samples {
		jt.Points = append(jt.Points, JointTrajectoryPoint{
			Positions:     append([]float64{}, sample.Positions[:]...),
			Velocities:    append([]float64{}, sample.Velocities[:]...),
			Accelerations: []float64{},
			Effort:        []float64{},
			TimeFromStart: DurationFromTime(sample.Time),
		})
	}
	return jt
}

// Duration is the time_from_start of the last point.
func (jt *JointTrajectory) Duration() time.Duration {
	if len(jt.Points) == 0 {
		return 0
	}
	return jt.Points[len(jt.Points)-1].TimeFromStart.AsTime()
}

// Validate applies the checks a trajectory controller performs before executing a command: every
// point carries a position and velocity per joint, times strictly increase, the trajectory has
// a non-zero duration and, when jointLimit > 0, no position exceeds it in magnitude. All
// violations found are returned together.
func (jt *JointTrajectory) Validate(jointLimit float64) error {
	if len(jt.Points) == 0 {
		return errors.New("trajectory has no points")
	}
	if jt.Duration() == 0 {
		return errors.New("trajectory duration is zero")
	}

	var errs error
	var last time.Duration
	for i, point := range jt.Points {
		if len(point.Positions) != trajectory.NumJoints {
			errs = multierr.Append(errs, errors.Errorf("point %d has %d positions, expected %d",
				i, len(point.Positions), trajectory.NumJoints))
		}
		if len(point.Velocities) != trajectory.NumJoints {
			errs = multierr.Append(errs, errors.Errorf("point %d has %d velocities, expected %d",
				i, len(point.Velocities), trajectory.NumJoints))
		}
		at := point.TimeFromStart.AsTime()
		if i > 0 && at <= last {
			errs = multierr.Append(errs, errors.Errorf("point %d at %v does not follow %v", i, at, last))
		}
		last = at
		if jointLimit <= 0 {
			continue
		}
		for axis, pos := range point.Positions {
			if math.Abs(pos) > jointLimit {
				errs = multierr.Append(errs, errors.Errorf("point %d joint %d position %.4f outside joint limits",
					i, axis, pos))
			}
		}
	}
	return errs
}
