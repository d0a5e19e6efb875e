package model

import (
	"github.com/limaJavier/satmodeler/pkg/lang"
	"github.com/samber/lo"
)

// Naive pairwise encoding is used up to this many literals, or for bounds up to naiveMaxBound
const (
	naiveMaxLiterals = 6
	naiveMaxBound    = 2
)

// EncodeCardinality encodes "kind(k, literals)" with auxiliaries drawn from symbols.
// The encoding is unconditional: its clauses must be asserted as they are, and the returned root is a constant literal.
func EncodeCardinality(kind lang.CardinalityKind, k int, literals []int64, symbols SymbolTable) (int64, [][]int64) {
	formula := &cnf{symbols: symbols, clauses: make([][]int64, 0)}
	root := formula.encodeCardinality(kind, k, literals)
	return root, formula.clauses
}

func (formula *cnf) encodeCardinality(kind lang.CardinalityKind, k int, literals []int64) int64 {
	switch kind {
	case lang.AtLeast:
		return formula.atLeast(k, literals)
	case lang.Exactly:
		atMost := formula.atMost(k, literals)
		atLeast := formula.atLeast(k, literals)
		return formula.and(atMost, atLeast)
	}
	return formula.atMost(k, literals)
}

// atLeast(k, L) holds exactly when atMost(n-k, not L) does
func (formula *cnf) atLeast(k int, literals []int64) int64 {
	negated := lo.Map(literals, func(literal int64, _ int) int64 { return -literal })
	return formula.atMost(len(literals)-k, negated)
}

func (formula *cnf) atMost(k int, literals []int64) int64 {
	n := len(literals)
	switch {
	case k < 0:
		return falseLiteral
	case k >= n:
		return trueLiteral
	case n <= naiveMaxLiterals || k <= naiveMaxBound:
		formula.naiveAtMost(k, literals)
	default:
		formula.sequentialAtMost(k, literals)
	}
	return trueLiteral
}

// naiveAtMost forbids every subset of k+1 literals from being true at once
func (formula *cnf) naiveAtMost(k int, literals []int64) {
	for _, subset := range combinations(literals, k+1) {
		formula.add(lo.Map(subset, func(literal int64, _ int) int64 { return -literal })...)
	}
}

// sequentialAtMost is the sequential counter encoding (Sinz 2005) for 0 < k < n.
// Register s[i][j] holds when at least j+1 of the literals x[0..i] are true.
func (formula *cnf) sequentialAtMost(k int, x []int64) {
	n := len(x)

	s := make([][]int64, n-1)
	for i := range s {
		s[i] = make([]int64, k)
		for j := range s[i] {
			s[i][j] = formula.fresh()
		}
	}

	formula.add(-x[0], s[0][0])
	for j := 1; j < k; j++ {
		formula.add(-s[0][j])
	}

	for i := 1; i < n-1; i++ {
		formula.add(-x[i], s[i][0])
		formula.add(-s[i-1][0], s[i][0])
		for j := 1; j < k; j++ {
			formula.add(-x[i], -s[i-1][j-1], s[i][j])
			formula.add(-s[i-1][j], s[i][j])
		}
		formula.add(-x[i], -s[i-1][k-1])
	}

	formula.add(-x[n-1], -s[n-2][k-1])
}
