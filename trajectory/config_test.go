package trajectory

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	test.That(t, cfg.Duration(), test.ShouldEqual, 5.0)
	test.That(t, cfg.Step(), test.ShouldEqual, 0.01)
	test.That(t, cfg.Offset(), test.ShouldEqual, -0.5)
	test.That(t, cfg.Validate("trajectory"), test.ShouldBeNil)

	test.That(t, Config{}.Offset(), test.ShouldEqual, DefaultTargetOffset)
	test.That(t, Config{}.Duration(), test.ShouldEqual, DefaultFinalTime)
	test.That(t, Config{}.Step(), test.ShouldEqual, DefaultSampleStep)
}

func TestConfigFromAttributes(t *testing.T) {
	cfg, err := ConfigFromAttributes(map[string]interface{}{
		"final_time":    "2.5",
		"target_offset": 0,
	})
	test.That(t, err, test.ShouldBeNil)
	cfg.Ensure()
	test.That(t, cfg.Duration(), test.ShouldEqual, 2.5)
	test.That(t, cfg.Step(), test.ShouldEqual, DefaultSampleStep)
	test.That(t, cfg.Offset(), test.ShouldEqual, 0.)

	_, err = ConfigFromAttributes(map[string]interface{}{"final_tim": 2})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "final_tim")
}

func TestConfigValidate(t *testing.T) {
	for _, tc := range []struct {
		cfg    Config
		errStr string
	}{
		{Config{FinalTime: Float64(-1)}, `"trajectory.final_time"`},
		{Config{FinalTime: Float64(0)}, `"trajectory.final_time"`},
		{Config{FinalTime: Float64(5), SampleStep: Float64(-0.01)}, `"trajectory.sample_step": must be > 0`},
		{Config{FinalTime: Float64(5), SampleStep: Float64(0)}, `"trajectory.sample_step": must be > 0`},
	} {
		err := tc.cfg.Validate("trajectory")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
	}

	err := Config{FinalTime: Float64(-1), SampleStep: Float64(0.01)}.Validate("trajectory")
	test.That(t, errors.Is(err, ErrInvalidDuration), test.ShouldBeTrue)

	// a step longer than the duration is fine; the trajectory is then a single sample
	test.That(t, Config{FinalTime: Float64(0.5), SampleStep: Float64(1)}.Validate("trajectory"), test.ShouldBeNil)
}
