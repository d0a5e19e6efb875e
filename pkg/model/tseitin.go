package model

import (
	"fmt"
	"math"
	"slices"

	"github.com/limaJavier/satmodeler/pkg/lang"
)

// Constant literals. They are folded away by the gates and never reach a clause.
const (
	trueLiteral  int64 = math.MaxInt64
	falseLiteral int64 = -trueLiteral
)

// cnf accumulates clauses and allocates auxiliary variables from a symbol table
type cnf struct {
	symbols SymbolTable
	clauses [][]int64
}

// add appends a clause. Constants never reach the output: satisfied clauses are dropped and false literals removed.
// Repeated literals are merged and tautologies dropped.
func (formula *cnf) add(literals ...int64) {
	clause := make([]int64, 0, len(literals))
	for _, literal := range literals {
		switch {
		case literal == trueLiteral:
			return
		case literal == falseLiteral || slices.Contains(clause, literal):
			continue
		case slices.Contains(clause, -literal):
			return
		}
		clause = append(clause, literal)
	}
	formula.clauses = append(formula.clauses, clause)
}

func (formula *cnf) fresh() int64 {
	return formula.symbols.FreshAuxiliary()
}

// and returns aux <-> (a /\ b)
func (formula *cnf) and(a, b int64) int64 {
	switch {
	case a == falseLiteral || b == falseLiteral:
		return falseLiteral
	case a == trueLiteral:
		return b
	case b == trueLiteral:
		return a
	}
	aux := formula.fresh()
	formula.add(-aux, a)
	formula.add(-aux, b)
	formula.add(aux, -a, -b)
	return aux
}

// or returns aux <-> (a \/ b)
func (formula *cnf) or(a, b int64) int64 {
	switch {
	case a == trueLiteral || b == trueLiteral:
		return trueLiteral
	case a == falseLiteral:
		return b
	case b == falseLiteral:
		return a
	}
	aux := formula.fresh()
	formula.add(-aux, a, b)
	formula.add(aux, -a)
	formula.add(aux, -b)
	return aux
}

// implies returns aux <-> (a -> b)
func (formula *cnf) implies(a, b int64) int64 {
	switch {
	case a == falseLiteral || b == trueLiteral:
		return trueLiteral
	case a == trueLiteral:
		return b
	case b == falseLiteral:
		return -a
	}
	aux := formula.fresh()
	formula.add(-aux, -a, b)
	formula.add(aux, a)
	formula.add(aux, -b)
	return aux
}

// iff returns aux <-> (a <-> b)
func (formula *cnf) iff(a, b int64) int64 {
	switch {
	case a == trueLiteral:
		return b
	case a == falseLiteral:
		return -b
	case b == trueLiteral:
		return a
	case b == falseLiteral:
		return -a
	}
	aux := formula.fresh()
	formula.add(-aux, -a, b)
	formula.add(-aux, a, -b)
	formula.add(aux, a, b)
	formula.add(aux, -a, -b)
	return aux
}

// xor returns aux <-> (a xor b)
func (formula *cnf) xor(a, b int64) int64 {
	switch {
	case a == trueLiteral:
		return -b
	case a == falseLiteral:
		return b
	case b == trueLiteral:
		return -a
	case b == falseLiteral:
		return a
	}
	aux := formula.fresh()
	formula.add(-aux, a, b)
	formula.add(-aux, -a, -b)
	formula.add(aux, -a, b)
	formula.add(aux, a, -b)
	return aux
}

// assert makes literal hold: nothing for true, the empty clause for false, a unit clause otherwise
func (formula *cnf) assert(literal int64) {
	switch literal {
	case trueLiteral:
		return
	case falseLiteral:
		formula.clauses = append(formula.clauses, []int64{})
	default:
		formula.add(literal)
	}
}

// tseitinCompiler turns constraint expressions into clauses, one statement at a time
type tseitinCompiler struct {
	cnf
	statement int
}

func newTseitinCompiler(symbols SymbolTable) *tseitinCompiler {
	return &tseitinCompiler{cnf: cnf{symbols: symbols}}
}

// CompileConstraint returns the root literal of expr and the clauses that define it.
// statement is the index of the constraint in its program and bounds which identifiers are visible.
// The root may be one of the constant literals; the caller asserts it.
func (compiler *tseitinCompiler) CompileConstraint(expr lang.Expr, statement int) (int64, [][]int64, error) {
	compiler.statement = statement
	compiler.clauses = make([][]int64, 0)

	var root int64
	var err error
	if cardinality, ok := expr.(*lang.CardinalityExpr); ok {
		root, err = compiler.cardinality(cardinality)
	} else {
		root, err = compiler.literal(expr)
	}
	if err != nil {
		return 0, nil, err
	}
	return root, compiler.clauses, nil
}

// literal compiles expr bottom-up, left before right, and returns the literal standing for it
func (compiler *tseitinCompiler) literal(expr lang.Expr) (int64, error) {
	switch node := expr.(type) {
	case *lang.IdentExpr:
		return compiler.symbols.Lookup(node.Name, compiler.statement, node.Pos)

	case *lang.BoolLit:
		if node.Value {
			return trueLiteral, nil
		}
		return falseLiteral, nil

	case *lang.NotExpr:
		operand, err := compiler.literal(node.Operand)
		if err != nil {
			return 0, err
		}
		return -operand, nil

	case *lang.BinaryExpr:
		left, err := compiler.literal(node.Left)
		if err != nil {
			return 0, err
		}
		right, err := compiler.literal(node.Right)
		if err != nil {
			return 0, err
		}
		switch node.Op {
		case lang.And:
			return compiler.and(left, right), nil
		case lang.Or:
			return compiler.or(left, right), nil
		case lang.Implies:
			return compiler.implies(left, right), nil
		case lang.Iff:
			return compiler.iff(left, right), nil
		case lang.Xor:
			return compiler.xor(left, right), nil
		}
		return 0, fmt.Errorf("unknown binary operator %d at %v", node.Op, node.Pos)

	case *lang.CardinalityExpr:
		return 0, &SemanticError{
			Kind:    NestedCardinality,
			Name:    node.Kind.String(),
			Pos:     node.Pos,
			Message: fmt.Sprintf("%v is only allowed as a whole constraint", node.Kind),
		}
	}
	return 0, fmt.Errorf("unknown expression %T", expr)
}

func (compiler *tseitinCompiler) cardinality(expr *lang.CardinalityExpr) (int64, error) {
	literals := make([]int64, 0, len(expr.Operands))
	for _, operand := range expr.Operands {
		literal, err := compiler.literal(operand)
		if err != nil {
			return 0, err
		}
		literals = append(literals, literal)
	}

	if expr.K < 0 || (expr.Kind != lang.AtMost && expr.K > len(literals)) {
		return 0, &SemanticError{
			Kind:    CardinalityBound,
			Name:    expr.Kind.String(),
			Pos:     expr.Pos,
			Message: fmt.Sprintf("%v bound %d is outside [0, %d]", expr.Kind, expr.K, len(literals)),
		}
	}

	return compiler.encodeCardinality(expr.Kind, expr.K, literals), nil
}
