package sat

import (
	"context"
	"errors"
	"log"
	"slices"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// How often a running gini search checks whether it should give up
const giniPollInterval = 5 * time.Millisecond

// giniSolver solves in process, so it is available even when no solver executable is installed
type giniSolver struct{}

func NewGiniSolver() SATSolver {
	return &giniSolver{}
}

func (solver *giniSolver) Name() string {
	return "gini"
}

func (solver *giniSolver) Solve(ctx context.Context, sat SAT) (SolverRun, error) {
	log.Printf("gini: solving %v", sat.Header())
	start := time.Now()

	run, err := solver.solve(ctx, sat)
	run.Duration = time.Since(start)
	if err != nil {
		log.Printf("gini: failed after %v: %v", run.Duration, err)
		return run, err
	}
	log.Printf("gini: %v in %v", run.Verdict, run.Duration)
	return run, nil
}

func (solver *giniSolver) solve(ctx context.Context, sat SAT) (SolverRun, error) {
	// gini has no notion of the empty clause
	if slices.ContainsFunc(sat.Clauses, func(clause []int64) bool { return len(clause) == 0 }) {
		return SolverRun{Verdict: Unsat, Output: "s UNSATISFIABLE\n"}, nil
	}

	g := gini.NewVc(int(sat.Variables), len(sat.Clauses))
	for _, clause := range sat.Clauses {
		for _, literal := range clause {
			g.Add(z.Dimacs2Lit(int(literal)))
		}
		g.Add(z.LitNull) // clause terminator
	}

	result, err := wait(ctx, g.GoSolve())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return SolverRun{Verdict: Timeout}, nil
		}
		return SolverRun{Verdict: Failure}, err
	}

	switch result {
	case 1:
		solution := make(SATSolution, 0, sat.Variables)
		maxVar := uint64(g.MaxVar())
		for variable := uint64(1); variable <= sat.Variables; variable++ {
			literal := int64(variable)
			if variable > maxVar || !g.Value(z.Var(variable).Pos()) {
				literal = -literal
			}
			solution = append(solution, literal)
		}
		return SolverRun{Verdict: Sat, Solution: solution, Output: "s SATISFIABLE\n"}, nil
	case -1:
		return SolverRun{Verdict: Unsat, Output: "s UNSATISFIABLE\n"}, nil
	}
	return SolverRun{Verdict: Failure}, &SolverError{Solver: "gini", Message: "search ended without a verdict"}
}

// wait polls a background search until it finishes or ctx is done, in which case the search is stopped
func wait(ctx context.Context, search interface {
	Test() (int, bool)
	Stop() int
}) (int, error) {
	ticker := time.NewTicker(giniPollInterval)
	defer ticker.Stop()

	for {
		if result, done := search.Test(); done {
			return result, nil
		}
		select {
		case <-ctx.Done():
			search.Stop()
			return 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
