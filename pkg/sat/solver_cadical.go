package sat

func NewCadicalSolver(path string, args ...string) SATSolver {
	return newCommandSolver("cadical", path, stdinInput, args, "-q")
}
