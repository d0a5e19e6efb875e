package sat

func NewCryptominisatSolver(path string, args ...string) SATSolver {
	return newCommandSolver("cryptominisat", path, stdinInput, args, "--verb", "0")
}
