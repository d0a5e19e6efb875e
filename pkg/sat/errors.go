package sat

import "fmt"

// SolverError reports a solver that could not be run or whose output could not be understood
type SolverError struct {
	Solver  string
	Message string
	Output  string
}

func (err *SolverError) Error() string {
	return fmt.Sprintf("an error occurred during %v execution: %v", err.Solver, err.Message)
}
