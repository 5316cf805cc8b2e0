package trajectory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultTargetOffset is added to the requested target position before fitting.
const DefaultTargetOffset = -0.5

// rankCondition is the relative singular value cutoff used to pick the effective rank.
const rankCondition = 1e-12

// BoundaryCondition pins the Order-th derivative of the trajectory to Value at Time.
type BoundaryCondition struct {
	Time  float64
	Order int
	Value float64
}

func (bc BoundaryCondition) String() string {
	names := [...]string{"position", "velocity", "acceleration"}
	name := fmt.Sprintf("derivative(%d)", bc.Order)
	if bc.Order >= 0 && bc.Order < len(names) {
		name = names[bc.Order]
	}
	return fmt.Sprintf("%s(%g)=%g", name, bc.Time, bc.Value)
}

// NewBoundaryConditions returns the six rest-to-rest constraints: the trajectory starts at
// start, ends at target+offset, and has zero velocity and acceleration at both ends.
func NewBoundaryConditions(start, target, finalTime, offset float64) []BoundaryCondition {
	return []BoundaryCondition{
		{Time: 0, Order: 0, Value: start},
		{Time: finalTime, Order: 0, Value: target + offset},
		{Time: 0, Order: 1},
		{Time: finalTime, Order: 1},
		{Time: 0, Order: 2},
		{Time: finalTime, Order: 2},
	}
}

// SystemMatrix builds the len(conditions)×NumCoefficients matrix whose row r holds the
// derivative of every monomial at condition r's time. It never fails; a zero time only makes
// the rows sparse.
func SystemMatrix(conditions []BoundaryCondition) *mat.Dense {
	a := mat.NewDense(len(conditions), NumCoefficients, nil)
	for r, bc := range conditions {
		for i := 0; i < NumCoefficients; i++ {
			a.Set(r, i, monomialDerivative(bc.Time, Degree-i, bc.Order))
		}
	}
	return a
}

// TargetVector holds the condition values, in order.
func TargetVector(conditions []BoundaryCondition) *mat.VecDense {
	b := mat.NewVecDense(len(conditions), nil)
	for r, bc := range conditions {
		b.SetVec(r, bc.Value)
	}
	return b
}

// Solution is a fitted polynomial with diagnostics about the fit.
type Solution struct {
	Coefficients Coefficients
	// Rank is the effective rank of the system matrix.
	Rank int
	// Residual is ‖A·x − b‖₂.
	Residual float64
}

// SolveConditions finds the minimum-norm least-squares coefficients for the given conditions.
func SolveConditions(conditions []BoundaryCondition) (Solution, error) {
	if len(conditions) == 0 {
		return Solution{}, newIllConditionedError("no boundary conditions")
	}
	a := SystemMatrix(conditions)
	b := TargetVector(conditions)

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDFull); !ok {
		return Solution{}, newIllConditionedError("failed to factorize system matrix")
	}
	rank := svd.Rank(rankCondition)
	if rank == 0 {
		return Solution{}, newIllConditionedError("zero rank system")
	}

	var x mat.VecDense
	svd.SolveVecTo(&x, b, rank)

	var sol Solution
	for i := 0; i < NumCoefficients; i++ {
		sol.Coefficients[i] = x.AtVec(i)
		if math.IsNaN(sol.Coefficients[i]) || math.IsInf(sol.Coefficients[i], 0) {
			return Solution{}, newIllConditionedError("non-finite coefficient")
		}
	}
	sol.Rank = rank
	sol.Residual = residual(a, &x, b)
	return sol, nil
}

func residual(a mat.Matrix, x, b mat.Vector) float64 {
	var r mat.VecDense
	r.MulVec(a, x)
	r.SubVec(&r, b)
	return mat.Norm(&r, 2)
}

func validateFinalTime(finalTime float64) error {
	if !(finalTime > 0) || math.IsInf(finalTime, 0) {
		return NewInvalidDurationError(finalTime)
	}
	return nil
}

// Solve fits a degree 6 polynomial moving from start to target+DefaultTargetOffset over finalTime
// seconds, at rest at both ends.
func Solve(start, target, finalTime float64) (Coefficients, error) {
	sol, err := SolveWithOffset(start, target, finalTime, DefaultTargetOffset)
	if err != nil {
		return Coefficients{}, err
	}
	return sol.Coefficients, nil
}

// SolveWithOffset is Solve with an explicit target offset, returning the fit diagnostics too.
func SolveWithOffset(start, target, finalTime, offset float64) (Solution, error) {
	if err := validateFinalTime(finalTime); err != nil {
		return Solution{}, err
	}
	return SolveConditions(NewBoundaryConditions(start, target, finalTime, offset))
}
