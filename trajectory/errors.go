package trajectory

import "github.com/pkg/errors"

var (
	// ErrInvalidDuration is returned when the trajectory duration is not a positive finite number.
	ErrInvalidDuration = errors.New("invalid trajectory duration")
	// ErrInsufficientSnapshot is returned when a joint state carries fewer than NumJoints positions.
	ErrInsufficientSnapshot = errors.New("insufficient joint snapshot")
	// ErrIllConditioned is returned when the boundary value system cannot be factorized. For the
	// fixed six constraint system this indicates a bug rather than bad input.
	ErrIllConditioned = errors.New("boundary value system could not be solved")
)

// NewInvalidDurationError returns an error wrapping ErrInvalidDuration.
func NewInvalidDurationError(finalTime float64) error {
	return errors.Wrapf(ErrInvalidDuration, "final time must be > 0, got %v", finalTime)
}

// NewInsufficientSnapshotError returns an error wrapping ErrInsufficientSnapshot.
func NewInsufficientSnapshotError(got int) error {
	return errors.Wrapf(ErrInsufficientSnapshot, "need %d joint positions, got %d", NumJoints, got)
}

func newIllConditionedError(reason string) error {
	return errors.Wrap(ErrIllConditioned, reason)
}
