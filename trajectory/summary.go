package trajectory

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Summary describes the axis 0 profile of a plan.
type Summary struct {
	Points       int     `json:"points"`
	Duration     float64 `json:"duration"`
	StartPos     float64 `json:"start_position"`
	EndPos       float64 `json:"end_position"`
	PeakVelocity float64 `json:"peak_velocity"`
	PeakAccel    float64 `json:"peak_acceleration"`
	// StartError and EndError are the distance between the fitted endpoints and the requested
	// ones. They are non-zero by the least squares residual.
	StartError float64 `json:"start_error"`
	EndError   float64 `json:"end_error"`
	Residual   float64 `json:"residual"`
}

// Summarize walks every sample of the plan.
func (p *Plan) Summarize() Summary {
	n := p.Sampler.Len()
	positions := make([]float64, 0, n)
	velocities := make([]float64, 0, n)
	accels := make([]float64, 0, n)
	for k, sample := range p.Sampler.All() {
		positions = append(positions, sample.Positions[0])
		velocities = append(velocities, math.Abs(sample.Velocities[0]))
		accels = append(accels, math.Abs(p.Solution.Coefficients.Acceleration(p.Sampler.TimeAt(k))))
	}
	if n == 0 {
		return Summary{Residual: p.Solution.Residual}
	}

	return Summary{
		Points:       n,
		Duration:     p.Sampler.TimeAt(n - 1),
		StartPos:     positions[0],
		EndPos:       positions[n-1],
		PeakVelocity: floats.Max(velocities),
		PeakAccel:    floats.Max(accels),
		StartError:   math.Abs(p.Solution.Coefficients.Position(0) - p.Snapshot[0]),
		EndError:     math.Abs(p.Solution.Coefficients.Position(p.FinalTime) - (p.Target + p.Offset)),
		Residual:     p.Solution.Residual,
	}
}
