package model

import (
	"fmt"

	"github.com/limaJavier/satmodeler/pkg/lang"
	"github.com/samber/lo"
)

// Eval reports whether assignment satisfies every constraint of program.
// Every identifier referenced by a constraint must be present in assignment.
func Eval(program *lang.Program, assignment map[string]bool) (bool, error) {
	for _, constraint := range program.Constraints() {
		value, err := evalExpr(constraint.Expr, assignment)
		if err != nil {
			return false, err
		}
		if !value {
			return false, nil
		}
	}
	return true, nil
}

func evalExpr(expr lang.Expr, assignment map[string]bool) (bool, error) {
	switch node := expr.(type) {
	case *lang.IdentExpr:
		value, ok := assignment[node.Name]
		if !ok {
			return false, fmt.Errorf("no value for %q at %v", node.Name, node.Pos)
		}
		return value, nil

	case *lang.BoolLit:
		return node.Value, nil

	case *lang.NotExpr:
		value, err := evalExpr(node.Operand, assignment)
		return !value, err

	case *lang.BinaryExpr:
		left, err := evalExpr(node.Left, assignment)
		if err != nil {
			return false, err
		}
		right, err := evalExpr(node.Right, assignment)
		if err != nil {
			return false, err
		}
		switch node.Op {
		case lang.And:
			return left && right, nil
		case lang.Or:
			return left || right, nil
		case lang.Implies:
			return !left || right, nil
		case lang.Iff:
			return left == right, nil
		case lang.Xor:
			return left != right, nil
		}
		return false, fmt.Errorf("unknown binary operator %d at %v", node.Op, node.Pos)

	case *lang.CardinalityExpr:
		values := make([]bool, 0, len(node.Operands))
		for _, operand := range node.Operands {
			value, err := evalExpr(operand, assignment)
			if err != nil {
				return false, err
			}
			values = append(values, value)
		}
		count := lo.Count(values, true)
		switch node.Kind {
		case lang.AtMost:
			return count <= node.K, nil
		case lang.AtLeast:
			return count >= node.K, nil
		case lang.Exactly:
			return count == node.K, nil
		}
		return false, fmt.Errorf("unknown cardinality %d at %v", node.Kind, node.Pos)
	}
	return false, fmt.Errorf("unknown expression %T", expr)
}
