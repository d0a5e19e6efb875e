package sat

import (
	"context"
	"time"
)

type Verdict int

const (
	Failure Verdict = iota
	Sat
	Unsat
	Timeout
)

var verdictNames = map[Verdict]string{
	Failure: "ERROR",
	Sat:     "SAT",
	Unsat:   "UNSAT",
	Timeout: "TIMEOUT",
}

func (verdict Verdict) String() string {
	return verdictNames[verdict]
}

// SolverRun is the outcome of one solver invocation
type SolverRun struct {
	Verdict  Verdict
	Solution SATSolution // Satisfying literals, only when Verdict is Sat
	Output   string      // Raw solver output
	ExitCode int
	Duration time.Duration
}

type SATSolver interface {
	Name() string
	// Solve runs the solver on sat until it finishes or ctx is done.
	// An expired deadline yields a Timeout run and no error; any other cancellation returns ctx's error.
	Solve(ctx context.Context, sat SAT) (SolverRun, error)
}
