package trajectory

import (
	"testing"
	"time"

	"go.viam.com/test"
)

var rest = JointSnapshot{1, -1.2, 0.8, 0.1, 1.57, -3.1}

func TestSampleCount(t *testing.T) {
	test.That(t, SampleCount(5, 0.01), test.ShouldEqual, 501)
	test.That(t, SampleCount(0.29, 0.01), test.ShouldEqual, 30)
	test.That(t, SampleCount(0.295, 0.01), test.ShouldEqual, 30)
	test.That(t, SampleCount(0.005, 0.01), test.ShouldEqual, 1)
	test.That(t, SampleCount(-1, 0.01), test.ShouldEqual, 0)
	test.That(t, SampleCount(1, 0), test.ShouldEqual, 0)
}

func TestSampler(t *testing.T) {
	c, err := Solve(rest[0], rest[0], 5)
	test.That(t, err, test.ShouldBeNil)

	s := NewSampler(c, 5, rest)
	samples := s.Collect()
	test.That(t, samples, test.ShouldHaveLength, 501)
	test.That(t, s.Len(), test.ShouldEqual, 501)

	test.That(t, samples[0].Time, test.ShouldEqual, time.Duration(0))
	test.That(t, samples[500].Time, test.ShouldEqual, 5*time.Second)
	test.That(t, samples[1].Time, test.ShouldEqual, 10*time.Millisecond)

	test.That(t, samples[0].Positions[0], test.ShouldAlmostEqual, 1, 1e-6)
	test.That(t, samples[500].Positions[0], test.ShouldAlmostEqual, 0.5, 1e-6)
	test.That(t, samples[0].Velocities[0], test.ShouldAlmostEqual, 0, 1e-6)
	test.That(t, samples[500].Velocities[0], test.ShouldAlmostEqual, 0, 1e-6)

	for k, sample := range samples {
		if k > 0 {
			test.That(t, sample.Time > samples[k-1].Time, test.ShouldBeTrue)
		}
		for axis := 1; axis < NumJoints; axis++ {
			test.That(t, sample.Positions[axis], test.ShouldEqual, rest[axis])
			test.That(t, sample.Velocities[axis], test.ShouldEqual, 0.)
		}
		at := s.TimeAt(k)
		test.That(t, sample.Positions[0], test.ShouldEqual, c.Position(at))
		test.That(t, sample.Velocities[0], test.ShouldEqual, c.Velocity(at))
	}
}

func TestSamplerUneven(t *testing.T) {
	c := Coefficients{0, 0, 0, 0, 0, 1, 0}
	s := NewSampler(c, 0.295, rest)
	samples := s.Collect()
	test.That(t, samples, test.ShouldHaveLength, 30)
	last := samples[len(samples)-1]
	test.That(t, last.Time, test.ShouldEqual, 290*time.Millisecond)
	test.That(t, last.Time <= 295*time.Millisecond, test.ShouldBeTrue)
	test.That(t, last.Positions[0], test.ShouldAlmostEqual, 0.29, 1e-12)
	test.That(t, last.Velocities[0], test.ShouldEqual, 1.)
}

func TestSamplerRestartable(t *testing.T) {
	c := Coefficients{0.001, -0.02, 0.1, 0.3, -1, 2, 0.5}
	s := NewSamplerWithStep(c, 1, 0.1, rest)
	test.That(t, s.Collect(), test.ShouldResemble, s.Collect())

	var seen []int
	for k := range s.All() {
		seen = append(seen, k)
		if k == 2 {
			break
		}
	}
	test.That(t, seen, test.ShouldResemble, []int{0, 1, 2})
	test.That(t, s.Collect(), test.ShouldHaveLength, 11)
}
