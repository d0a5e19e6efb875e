package sat

// NewMinisatSolver runs minisat on temporary files: minisat writes its verdict and model to a result file instead of stdout
func NewMinisatSolver(path string, args ...string) SATSolver {
	return newCommandSolver("minisat", path, resultFileInput, args, "-verb=0")
}
