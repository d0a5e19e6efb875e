package sat

func NewSlimeSolver(path string, args ...string) SATSolver {
	return newCommandSolver("slime", path, fileInput, args)
}
