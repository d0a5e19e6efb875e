package sat

func NewKissatSolver(path string, args ...string) SATSolver {
	return newCommandSolver("kissat", path, stdinInput, args, "-q", "--relaxed")
}
