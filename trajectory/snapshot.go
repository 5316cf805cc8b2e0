package trajectory

// NumJoints is the number of joints in a snapshot and in every sample.
const NumJoints = 6

// JointSnapshot is the joint positions measured when a trajectory was requested. Only axis 0 is
// driven; the rest are held where they were.
type JointSnapshot [NumJoints]float64

// NewJointSnapshot captures the first NumJoints positions. Extra positions are ignored.
func NewJointSnapshot(positions []float64) (JointSnapshot, error) {
	var snapshot JointSnapshot
	if len(positions) < NumJoints {
		return snapshot, NewInsufficientSnapshotError(len(positions))
	}
	copy(snapshot[:], positions[:NumJoints])
	return snapshot, nil
}
