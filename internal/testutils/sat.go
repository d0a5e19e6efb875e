package testutils

import (
	"math/rand/v2"

	"github.com/limaJavier/satmodeler/pkg/sat"
)

// GenerateSATInstance returns a random CNF instance over the given number of variables
func GenerateSATInstance(random *rand.Rand, variables uint64, clauses int) sat.SAT {
	satInstance := sat.SAT{
		Variables: variables,
		Clauses:   make([][]int64, clauses),
	}

	for i := range clauses {
		satInstance.Clauses[i] = make([]int64, 0, variables)
		for j := range variables {
			if random.Float32() < 0.5 {
				var sign int64 = 1
				if random.Float32() < 0.5 {
					sign = -1
				}
				satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+int64(j)))
			}
		}

		if len(satInstance.Clauses[i]) == 0 {
			var sign int64 = 1
			if random.Float32() < 0.5 {
				sign = -1
			}
			satInstance.Clauses[i] = append(satInstance.Clauses[i], sign*(1+random.Int64N(int64(variables))))
		}
	}

	return satInstance
}

// AssertSATSolution reports whether solution is a consistent set of literals satisfying every clause of satInstance
func AssertSATSolution(satInstance sat.SAT, solution sat.SATSolution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool)
	for _, literal := range solution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range satInstance.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}
