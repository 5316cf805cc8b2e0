package ros

import (
	"time"
)

const (
	// JointStatesTopic is where the arm driver publishes measured joint states.
	JointStatesTopic = "/joint_states"
	// TrajectoryCommandTopic is where the trajectory controller listens for commands.
	TrajectoryCommandTopic = "/ur_rtde/controllers/trajectory_controller/command"
)

// URJointNames are the joint names of a Universal Robots arm, base to tool.
var URJointNames = []string{
	"shoulder_pan_joint",
	"shoulder_lift_joint",
	"elbow_joint",
	"wrist_1_joint",
	"wrist_2_joint",
	"wrist_3_joint",
}

// Time mirrors builtin_interfaces/Time.
type Time struct {
	Sec     int32  `json:"sec"`
	Nanosec uint32 `json:"nanosec"`
}

// Duration mirrors builtin_interfaces/Duration.
type Duration struct {
	Sec     int32  `json:"sec"`
	Nanosec uint32 `json:"nanosec"`
}

// DurationFromTime splits a non-negative duration into whole seconds and the nanosecond remainder.
func DurationFromTime(d time.Duration) Duration {
	return Duration{
		Sec:     int32(d / time.Second),
		Nanosec: uint32(d % time.Second),
	}
}

// AsTime converts the duration back to a time.Duration.
func (d Duration) AsTime() time.Duration {
	return time.Duration(d.Sec)*time.Second + time.Duration(d.Nanosec)
}

// Header mirrors std_msgs/Header.
type Header struct {
	Stamp   Time   `json:"stamp"`
	FrameID string `json:"frame_id"`
}

// JointState mirrors sensor_msgs/JointState.
type JointState struct {
	Header   Header    `json:"header"`
	Name     []string  `json:"name"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
	Effort   []float64 `json:"effort"`
}

// JointTrajectoryPoint mirrors trajectory_msgs/JointTrajectoryPoint.
type JointTrajectoryPoint struct {
	Positions     []float64 `json:"positions"`
	Velocities    []float64 `json:"velocities"`
	Accelerations []float64 `json:"accelerations"`
	Effort        []float64 `json:"effort"`
	TimeFromStart Duration  `json:"time_from_start"`
}

// JointTrajectory mirrors trajectory_msgs/JointTrajectory.
type JointTrajectory struct {
	Header     Header                 `json:"header"`
	JointNames []string               `json:"joint_names"`
	Points     []JointTrajectoryPoint `json:"points"`
}
