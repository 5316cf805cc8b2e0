package trajectory

import "math"

// Degree of the fitted polynomial.
const Degree = 6

// NumCoefficients is the number of polynomial coefficients, Degree+1.
const NumCoefficients = Degree + 1

// Coefficients of p(t) = Σ c[i]·t^(Degree-i), highest power first.
type Coefficients [NumCoefficients]float64

// monomialDerivative evaluates the order-th derivative of t^power. Once differentiation has
// consumed the whole exponent the term is exactly zero. 0^0 is 1.
func monomialDerivative(t float64, power, order int) float64 {
	exponent := power - order
	if exponent < 0 {
		return 0
	}
	factor := 1.0
	for k := 0; k < order; k++ {
		factor *= float64(power - k)
	}
	return factor * math.Pow(t, float64(exponent))
}

// Derivative evaluates the order-th derivative of the polynomial at t. Order 0 is the position.
func (c Coefficients) Derivative(t float64, order int) float64 {
	var sum float64
	for i, coeff := range c {
		sum += coeff * monomialDerivative(t, Degree-i, order)
	}
	return sum
}

// Position is p(t).
func (c Coefficients) Position(t float64) float64 {
	return c.Derivative(t, 0)
}

// Velocity is p'(t).
func (c Coefficients) Velocity(t float64) float64 {
	return c.Derivative(t, 1)
}

// Acceleration is the second derivative of p at t.
func (c Coefficients) Acceleration(t float64) float64 {
	return c.Derivative(t, 2)
}
