package testutils

import (
	"github.com/crillab/gophersat/solver"
	"github.com/samber/lo"

	"github.com/limaJavier/satmodeler/pkg/sat"
)

// ReferenceSolve solves satInstance in process. On SAT it returns one literal per variable, positive when the variable is true.
func ReferenceSolve(satInstance sat.SAT) (bool, sat.SATSolution) {
	if len(satInstance.Clauses) == 0 {
		return true, lo.Map(lo.Range(int(satInstance.Variables)), func(i int, _ int) int64 { return -int64(i + 1) })
	}

	clauses := lo.Map(satInstance.Clauses, func(clause []int64, _ int) []int {
		return lo.Map(clause, func(literal int64, _ int) int { return int(literal) })
	})
	reference := solver.New(solver.ParseSlice(clauses))
	if reference.Solve() != solver.Sat {
		return false, nil
	}

	model := reference.Model()
	solution := make(sat.SATSolution, satInstance.Variables)
	for i := range solution {
		variable := int64(i + 1)
		if i < len(model) && model[i] {
			solution[i] = variable
		} else {
			solution[i] = -variable
		}
	}
	return true, solution
}
