package lang

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatements(t *testing.T) {
	t.Run("Full program", func(t *testing.T) {
		//** Arrange
		source := `
			var bool: x, y;
			var bool: z;
			constraint x \/ y;
			constraint not z;
			solve satisfy;
		`

		//** Act
		program, err := ParseSource(source)

		//** Assert
		require.Nil(t, err)
		assert.Len(t, program.Statements, 5)
		assert.Equal(t, []string{"x", "y", "z"}, program.Variables())
		assert.Len(t, program.Constraints(), 2)
		assert.IsType(t, &SolveStmt{}, program.Statements[4])
	})

	t.Run("Empty program", func(t *testing.T) {
		//** Act
		program, err := ParseSource("  % nothing here\n")

		//** Assert
		require.Nil(t, err)
		assert.Empty(t, program.Statements)
	})

	t.Run("Declaration positions", func(t *testing.T) {
		//** Act
		program, err := ParseSource("var bool: a,\n b;")

		//** Assert
		require.Nil(t, err)
		decl := program.Statements[0].(*VarDecl)
		assert.Equal(t, 1, decl.Positions[0].Line)
		assert.Equal(t, 2, decl.Positions[1].Line)
		assert.Equal(t, 2, decl.Positions[1].Col)
	})

	t.Run("Token stream without EOF", func(t *testing.T) {
		//** Arrange
		tokens, err := Tokenize("var bool: x;")
		require.Nil(t, err)

		//** Act
		program, err := Parse(tokens[:len(tokens)-1])

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, []string{"x"}, program.Variables())
	})
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		source   string
		expected string
	}{
		{"a <-> b -> c", "(a <-> (b -> c))"},
		{"a -> b \\/ c", "(a -> (b \\/ c))"},
		{"a \\/ b /\\ c", "(a \\/ (b /\\ c))"},
		{"a or b and c", "(a \\/ (b /\\ c))"},
		{"a /\\ b xor c", "(a /\\ (b xor c))"},
		{"not a xor b", "(~a xor b)"},
		{"~!a", "~~a"},
		{"a -> b -> c", "((a -> b) -> c)"},
		{"a <-> b <-> c", "((a <-> b) <-> c)"},
		{"(a \\/ b) /\\ c", "((a \\/ b) /\\ c)"},
		{"xor(a, b /\\ c)", "(a xor (b /\\ c))"},
		{"true -> FALSE", "(true -> false)"},
		{"atmost(1, [a, not b, ~c])", "atmost(1, [a, ~b, ~c])"},
		{"Exactly(2, [a, b, c])", "exactly(2, [a, b, c])"},
	}

	for _, testCase := range cases {
		t.Run(testCase.source, func(t *testing.T) {
			//** Act
			program, err := ParseSource("constraint " + testCase.source + ";")

			//** Assert
			require.Nil(t, err)
			constraints := program.Constraints()
			require.Len(t, constraints, 1)
			assert.Equal(t, testCase.expected, render(constraints[0].Expr))
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		expected string
		line     int
		col      int
	}{
		{"Missing semicolon", "var bool: x", "';'", 1, 12},
		{"Missing type", "var x;", "'bool'", 1, 5},
		{"Empty declaration", "var bool: ;", "identifier", 1, 11},
		{"Dangling operator", "constraint x /\\ ;", "expression", 1, 17},
		{"Unbalanced parenthesis", "constraint (x;", "')'", 1, 14},
		{"Stray token", "x;", "'var', 'constraint' or 'solve'", 1, 1},
		{"Expression in cardinality list", "constraint atmost(1, [x /\\ y]);", "']'", 1, 25},
		{"Double negation in cardinality list", "constraint atmost(1, [not not x]);", "identifier or negated identifier", 1, 27},
		{"Missing bound", "constraint atmost([x]);", "cardinality bound", 1, 19},
		{"Bound overflow", "constraint atmost(99999999999, [x]);", "cardinality bound", 1, 19},
		{"Empty cardinality list", "constraint atmost(1, []);", "identifier or negated identifier", 1, 23},
		{"Xor call without parenthesis", "constraint xor;", "'('", 1, 15},
		{"Second solve", "solve satisfy; solve satisfy;", "at most one solve statement", 1, 16},
		{"Solve without satisfy", "solve;", "'satisfy'", 1, 6},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			//** Act
			program, err := ParseSource(testCase.source)

			//** Assert
			assert.Nil(t, program)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
			assert.Equal(t, testCase.expected, parseErr.Expected)
			assert.Equal(t, testCase.line, parseErr.Pos.Line)
			assert.Equal(t, testCase.col, parseErr.Pos.Col)
		})
	}
}

func TestParseDeepNesting(t *testing.T) {
	//** Arrange
	depth := 100000
	source := "constraint " + strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth) + ";"

	//** Act
	program, err := ParseSource(source)

	//** Assert
	assert.Nil(t, program)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestParseLexErrorPropagates(t *testing.T) {
	//** Act
	program, err := ParseSource("constraint x & y;")

	//** Assert
	assert.Nil(t, program)
	var lexErr *LexError
	assert.True(t, errors.As(err, &lexErr))
}

// render prints an expression fully parenthesized with canonical operators
func render(expr Expr) string {
	switch node := expr.(type) {
	case *IdentExpr:
		return node.Name
	case *BoolLit:
		if node.Value {
			return "true"
		}
		return "false"
	case *NotExpr:
		return "~" + render(node.Operand)
	case *BinaryExpr:
		return "(" + render(node.Left) + " " + node.Op.String() + " " + render(node.Right) + ")"
	case *CardinalityExpr:
		operands := make([]string, len(node.Operands))
		for i, operand := range node.Operands {
			operands[i] = render(operand)
		}
		return node.Kind.String() + "(" + strconv.Itoa(node.K) + ", [" + strings.Join(operands, ", ") + "])"
	}
	return "?"
}
