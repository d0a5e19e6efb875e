package modeler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/satmodeler/pkg/model"
	"github.com/limaJavier/satmodeler/pkg/sat"
)

func TestParse(t *testing.T) {
	t.Run("Valid program", func(t *testing.T) {
		//** Act
		result := Parse("var bool: x, y; % two\nconstraint x \\/ y; solve satisfy;")

		//** Assert
		assert.True(t, result.Valid)
		assert.Equal(t, []string{"x", "y"}, result.Variables)
		assert.Equal(t, 1, result.Constraints)
		assert.Equal(t, 15, result.Tokens)
		assert.Nil(t, result.Error)
	})

	t.Run("Parse error", func(t *testing.T) {
		//** Act
		result := Parse("var bool: x;\nconstraint x /\\;")

		//** Assert
		assert.False(t, result.Valid)
		require.NotNil(t, result.Error)
		assert.Equal(t, 2, result.Error.Line)
		assert.Equal(t, 16, result.Error.Col)
		assert.Contains(t, result.Error.Message, "expected expression")
	})

	t.Run("Lex error", func(t *testing.T) {
		//** Act
		result := Parse("var bool: x$;")

		//** Assert
		assert.False(t, result.Valid)
		require.NotNil(t, result.Error)
		assert.Equal(t, 1, result.Error.Line)
		assert.Equal(t, 12, result.Error.Col)
	})
}

func TestCompile(t *testing.T) {
	t.Run("Single variable", func(t *testing.T) {
		//** Act
		result, err := Compile("var bool: x; constraint x; solve satisfy;")

		//** Assert
		require.Nil(t, err)
		assert.Contains(t, result.DIMACS, "p cnf 1 1")
		assert.Contains(t, strings.Split(result.DIMACS, "\n"), "1 0")
		assert.Equal(t, map[string]int64{"x": 1}, result.VariableMap)
		assert.Equal(t, "p cnf 1 1", result.Header)
		assert.Equal(t, 1, result.UserVariables)
	})

	t.Run("Undeclared identifier", func(t *testing.T) {
		//** Act
		_, err := Compile("constraint z;")

		//** Assert
		var semanticErr *model.SemanticError
		require.True(t, errors.As(err, &semanticErr))
		assert.Equal(t, model.Undeclared, semanticErr.Kind)
		assert.Equal(t, &SourceError{Message: err.Error(), Line: 1, Col: 12}, SourceErrorOf(err))
	})
}

func TestSolve(t *testing.T) {
	modeler := giniModeler()

	t.Run("Exactly all", func(t *testing.T) {
		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x, y, z; constraint exactly(3, [x, y, z]); solve satisfy;"})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Sat, result.Verdict)
		assert.Equal(t, map[string]bool{"x": true, "y": true, "z": true}, result.Assignment)
		assert.Equal(t, "gini", result.Solver)
	})

	t.Run("Atleast with a negated operand", func(t *testing.T) {
		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x, y; constraint atleast(1, [x, y]); constraint not x;"})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Sat, result.Verdict)
		assert.Equal(t, map[string]bool{"x": false, "y": true}, result.Assignment)
	})

	t.Run("Unused variables default to false", func(t *testing.T) {
		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: a, b; constraint a;"})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, map[string]bool{"a": true, "b": false}, result.Assignment)
	})

	t.Run("Examples", func(t *testing.T) {
		for _, example := range modeler.Examples() {
			//** Act
			result, err := modeler.Solve(context.Background(), SolveRequest{Source: example.Source, SolverID: "6"})

			//** Assert
			require.Nil(t, err, example.ID)
			if example.Satisfiable {
				assert.Equal(t, sat.Sat, result.Verdict, example.ID)
				assert.Len(t, result.Assignment, len(Parse(example.Source).Variables), example.ID)
			} else {
				assert.Equal(t, sat.Unsat, result.Verdict, example.ID)
				assert.Nil(t, result.Assignment, example.ID)
			}
		}
	})

	t.Run("Constant false", func(t *testing.T) {
		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x; constraint x /\\ false;"})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Unsat, result.Verdict)
	})

	t.Run("Compile errors are returned as they are", func(t *testing.T) {
		//** Act
		_, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x, x;"})

		//** Assert
		var semanticErr *model.SemanticError
		assert.True(t, errors.As(err, &semanticErr))
	})

	t.Run("Timeout bounds", func(t *testing.T) {
		for _, timeout := range []int{-1, 301} {
			_, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x;", TimeoutSeconds: timeout})
			assert.NotNil(t, err, "%d", timeout)
		}
	})

	t.Run("Unknown solver", func(t *testing.T) {
		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x;", SolverID: "zchaff"})

		//** Assert
		var solverErr *sat.SolverError
		assert.True(t, errors.As(err, &solverErr))
		assert.Equal(t, sat.Failure, result.Verdict)
	})
}

func TestSolveExternal(t *testing.T) {
	t.Run("Timeout", func(t *testing.T) {
		//** Arrange
		modeler := scriptModeler(t, "exec sleep 30")

		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x; constraint x;", SolverID: "kissat", TimeoutSeconds: 1})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Timeout, result.Verdict)
		assert.Nil(t, result.Assignment)
	})

	t.Run("Wrong assignment is rejected", func(t *testing.T) {
		//** Arrange
		modeler := scriptModeler(t, "cat > /dev/null; echo 'v -1 0'; exit 10")

		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x; constraint x;", SolverID: "kissat"})

		//** Assert
		var solverErr *sat.SolverError
		require.True(t, errors.As(err, &solverErr))
		assert.Contains(t, solverErr.Message, "does not satisfy")
		assert.Equal(t, sat.Failure, result.Verdict)
		assert.Nil(t, result.Assignment)
	})

	t.Run("Output is truncated", func(t *testing.T) {
		//** Arrange
		modeler := scriptModeler(t, "cat > /dev/null; i=0; while [ $i -lt 500 ]; do echo 'c progress line'; i=$((i+1)); done; echo 's UNSATISFIABLE'; exit 20")

		//** Act
		result, err := modeler.Solve(context.Background(), SolveRequest{Source: "var bool: x; constraint x;", SolverID: "kissat"})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Unsat, result.Verdict)
		assert.True(t, strings.HasPrefix(result.RawOutput, "c progress line\n"))
		assert.Contains(t, result.RawOutput, "bytes truncated")
		assert.Less(t, len(result.RawOutput), 3100)
	})
}

func TestDecode(t *testing.T) {
	//** Act
	assignment := decode(map[string]int64{"a": 1, "b": 2, "c": 3}, sat.SATSolution{-1, 3, 4, -5})

	//** Assert
	assert.Equal(t, map[string]bool{"a": false, "b": false, "c": true}, assignment)
}

func giniModeler() *Modeler {
	config := sat.DefaultConfig()
	config.DefaultSolver = "gini"
	return NewModeler(sat.NewRegistry(config))
}

// scriptModeler registers a shell script as the kissat executable
func scriptModeler(t *testing.T, body string) *Modeler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kissat.sh")
	require.Nil(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))

	config := sat.DefaultConfig()
	config.Solvers["kissat"] = sat.SolverConfig{Path: path}
	return NewModeler(sat.NewRegistry(config))
}
