package sat_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/satmodeler/internal/testutils"
	"github.com/limaJavier/satmodeler/pkg/sat"
)

func TestKissat(t *testing.T) {
	solver := sat.NewKissatSolver(installed(t, "kissat"))
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
}

func TestCadical(t *testing.T) {
	solver := sat.NewCadicalSolver(installed(t, "cadical"))
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
}

func TestCryptominisat(t *testing.T) {
	solver := sat.NewCryptominisatSolver(installed(t, "cryptominisat5"))
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
}

func TestMinisat(t *testing.T) {
	solver := sat.NewMinisatSolver(installed(t, "minisat"))
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
}

func TestGlucose(t *testing.T) {
	solver := sat.NewGlucoseSolver(installed(t, "glucose"))
	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})
}

func TestGini(t *testing.T) {
	solver := sat.NewGiniSolver()

	t.Run("Random instances", func(t *testing.T) {
		randomExecution(t, solver)
	})

	t.Run("Empty clause", func(t *testing.T) {
		//** Act
		run, err := solver.Solve(context.Background(), sat.SAT{Variables: 1, Clauses: [][]int64{{1}, {}}})

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Unsat, run.Verdict)
	})

	t.Run("Cancelled search", func(t *testing.T) {
		//** Arrange
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		instance := testutils.GenerateSATInstance(rand.New(rand.NewPCG(1, 2)), 200, 850)

		//** Act
		run, err := solver.Solve(ctx, instance)

		//** Assert
		// A search may finish before it notices the cancellation
		if err != nil {
			assert.ErrorIs(t, err, context.Canceled)
			assert.Equal(t, sat.Failure, run.Verdict)
		}
	})
}

func TestCommandSolverClassification(t *testing.T) {
	instance := sat.SAT{Variables: 2, Clauses: [][]int64{{1, -2}, {2}}}

	cases := []struct {
		name     string
		script   string
		verdict  sat.Verdict
		solution sat.SATSolution
		failed   bool
	}{
		{"Satisfiable", "echo 's SATISFIABLE'; echo 'v 1 2'; echo 'v 0'; exit 10", sat.Sat, sat.SATSolution{1, 2}, false},
		{"Unsatisfiable", "echo 's UNSATISFIABLE'; exit 20", sat.Unsat, nil, false},
		{"Timeout wrapper", "exit 124", sat.Timeout, nil, false},
		{"Status line fallback", "echo 's SATISFIABLE'; echo 'v 1 2 0'; exit 0", sat.Sat, sat.SATSolution{1, 2}, false},
		{"Unsatisfiable status line fallback", "echo 's UNSATISFIABLE'; exit 0", sat.Unsat, nil, false},
		{"No verdict", "echo 'c nothing'; exit 0", sat.Failure, nil, true},
		{"Crash", "echo 'boom' >&2; exit 3", sat.Failure, nil, true},
		{"Malformed values", "echo 'v 1 x 0'; exit 10", sat.Failure, nil, true},
		{"Unterminated values", "echo 'v 1 2'; exit 10", sat.Failure, nil, true},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			//** Arrange
			solver := sat.NewKissatSolver(script(t, "cat > /dev/null\n"+testCase.script))

			//** Act
			run, err := solver.Solve(context.Background(), instance)

			//** Assert
			assert.Equal(t, testCase.verdict, run.Verdict)
			assert.Equal(t, testCase.solution, run.Solution)
			if testCase.failed {
				var solverErr *sat.SolverError
				assert.True(t, errors.As(err, &solverErr), "got %v", err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestCommandSolverFiles(t *testing.T) {
	instance := sat.SAT{Variables: 2, Clauses: [][]int64{{1, -2}, {2}}}

	t.Run("Result file", func(t *testing.T) {
		//** Arrange
		// $1 is -verb=0, $2 the DIMACS file and $3 the result file
		solver := sat.NewMinisatSolver(script(t, `grep -q "p cnf 2 2" "$2" || exit 1
printf 'SAT\n1 2 0\n' > "$3"
exit 10`))

		//** Act
		run, err := solver.Solve(context.Background(), instance)

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Sat, run.Verdict)
		assert.Equal(t, sat.SATSolution{1, 2}, run.Solution)
	})

	t.Run("Result file fallback", func(t *testing.T) {
		//** Arrange
		solver := sat.NewGlucoseSolver(script(t, `printf 'UNSAT\n' > "$3"`))

		//** Act
		run, err := solver.Solve(context.Background(), instance)

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.Unsat, run.Verdict)
	})

	t.Run("Input file argument", func(t *testing.T) {
		//** Arrange
		solver := sat.NewSlimeSolver(script(t, `test -f "$1" || exit 1
echo 's SATISFIABLE'
echo 'v -1 2 0'
exit 10`))

		//** Act
		run, err := solver.Solve(context.Background(), instance)

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, sat.SATSolution{-1, 2}, run.Solution)
	})
}

func TestCommandSolverLifecycle(t *testing.T) {
	instance := sat.SAT{Variables: 1, Clauses: [][]int64{{1}}}

	t.Run("Deadline kills the solver", func(t *testing.T) {
		//** Arrange
		solver := sat.NewCadicalSolver(script(t, "exec sleep 30"))
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		//** Act
		start := time.Now()
		run, err := solver.Solve(ctx, instance)

		//** Assert
		assert.Nil(t, err)
		assert.Equal(t, sat.Timeout, run.Verdict)
		assert.Less(t, time.Since(start), 10*time.Second)
	})

	t.Run("Cancellation", func(t *testing.T) {
		//** Arrange
		solver := sat.NewCadicalSolver(script(t, "exec sleep 30"))
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)

		//** Act
		run, err := solver.Solve(ctx, instance)

		//** Assert
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, sat.Failure, run.Verdict)
	})

	t.Run("Missing executable", func(t *testing.T) {
		//** Arrange
		solver := sat.NewKissatSolver(filepath.Join(t.TempDir(), "missing"))

		//** Act
		run, err := solver.Solve(context.Background(), instance)

		//** Assert
		var solverErr *sat.SolverError
		require.True(t, errors.As(err, &solverErr))
		assert.Equal(t, "kissat", solverErr.Solver)
		assert.Equal(t, sat.Failure, run.Verdict)
	})
}

func randomExecution(t *testing.T, solver sat.SATSolver) {
	random := rand.New(rand.NewPCG(3, 5))
	unsatisfiableCount := 0

	for range 10 {
		//** Arrange
		variables := uint64(random.IntN(100) + 1)
		clauses := random.IntN(200) + 1
		instance := testutils.GenerateSATInstance(random, variables, clauses)

		//** Act
		run, err := solver.Solve(context.Background(), instance)
		require.Nil(t, err)

		//** Assert
		satisfiable, _ := testutils.ReferenceSolve(instance)
		if !satisfiable {
			unsatisfiableCount++
			assert.Equal(t, sat.Unsat, run.Verdict)
			continue
		}
		assert.Equal(t, sat.Sat, run.Verdict)
		assert.True(t, testutils.AssertSATSolution(instance, run.Solution), "wrong answer from %v", solver.Name())
	}

	t.Logf("Unsatisfiable instances: %v", unsatisfiableCount)
}

func installed(t *testing.T, executable string) string {
	t.Helper()
	path, err := exec.LookPath(executable)
	if err != nil {
		t.Skipf("%v is not installed", executable)
	}
	return path
}

// script writes an executable shell script and returns its path
func script(t *testing.T, body string) string {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
	path := filepath.Join(t.TempDir(), "solver.sh")
	require.Nil(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}
