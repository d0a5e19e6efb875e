package sat

func NewOrtoolsatSolver(path string, args ...string) SATSolver {
	return newCommandSolver("ortoolsat", path, fileInput, args)
}
