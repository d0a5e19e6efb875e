package sat

// NewGlucoseSolver runs the simp flavour of glucose, which shares minisat's command line
func NewGlucoseSolver(path string, args ...string) SATSolver {
	return newCommandSolver("glucose", path, resultFileInput, args, "-verb=0")
}
