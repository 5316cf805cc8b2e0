package trajectory

import (
	"iter"
	"math"
	"time"
)

// DefaultSampleStep is the spacing, in seconds, between consecutive samples.
const DefaultSampleStep = 0.01

// countTolerance absorbs the representation error in finalTime/step, e.g. 0.29/0.01 evaluates
// to 28.999999999999996.
const countTolerance = 1e-9

// Sample is one waypoint of the trajectory.
type Sample struct {
	// Time is the offset from the start of the trajectory.
	Time       time.Duration
	Positions  [NumJoints]float64
	Velocities [NumJoints]float64
}

// SampleCount returns floor(finalTime/step)+1, the number of samples covering [0, finalTime].
func SampleCount(finalTime, step float64) int {
	if finalTime < 0 || step <= 0 {
		return 0
	}
	return int(math.Floor(finalTime/step+countTolerance)) + 1
}

// Sampler evaluates fitted coefficients on a fixed time grid. Axis 0 follows the polynomial;
// every other axis stays at its rest position with zero velocity. A Sampler holds no iteration
// state, so it can be walked any number of times.
type Sampler struct {
	coefficients Coefficients
	step         float64
	rest         JointSnapshot
	count        int
}

// NewSampler returns a Sampler over [0, finalTime] at DefaultSampleStep.
func NewSampler(coefficients Coefficients, finalTime float64, rest JointSnapshot) *Sampler {
	return NewSamplerWithStep(coefficients, finalTime, DefaultSampleStep, rest)
}

// NewSamplerWithStep returns a Sampler over [0, finalTime] at the given step.
func NewSamplerWithStep(coefficients Coefficients, finalTime, step float64, rest JointSnapshot) *Sampler {
	return &Sampler{
		coefficients: coefficients,
		step:         step,
		rest:         rest,
		count:        SampleCount(finalTime, step),
	}
}

// Len is the number of samples.
func (s *Sampler) Len() int {
	return s.count
}

// TimeAt returns the time of sample k in seconds.
func (s *Sampler) TimeAt(k int) float64 {
	return float64(k) * s.step
}

// At evaluates sample k. k must be in [0, Len()).
func (s *Sampler) At(k int) Sample {
	t := s.TimeAt(k)
	sample := Sample{
		Time:      time.Duration(math.Round(t * float64(time.Second))),
		Positions: s.rest,
	}
	sample.Positions[0] = s.coefficients.Position(t)
	sample.Velocities[0] = s.coefficients.Velocity(t)
	return sample
}

// All yields every sample in time order.
func (s *Sampler) All() iter.Seq2[int, Sample] {
	return func(yield func(int, Sample) bool) {
		for k := 0; k < s.count; k++ {
			if !yield(k, s.At(k)) {
				return
			}
		}
	}
}

// Collect evaluates every sample into a slice.
func (s *Sampler) Collect() []Sample {
	samples := make([]Sample, 0, s.count)
	for _, sample := range s.All() {
		samples = append(samples, sample)
	}
	return samples
}
