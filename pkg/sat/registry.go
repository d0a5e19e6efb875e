package sat

import (
	"fmt"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type solverDefinition struct {
	id         int
	key        string
	name       string
	executable string // Looked up on $PATH when the config has no path
	mode       inputMode
	inProcess  bool
	build      func(path string, args []string) SATSolver
}

// Ids are stable: clients refer to solvers by them
var definitions = []solverDefinition{
	{1, "kissat", "Kissat", "kissat", stdinInput, false, func(path string, args []string) SATSolver { return NewKissatSolver(path, args...) }},
	{2, "minisat", "MiniSat", "minisat", resultFileInput, false, func(path string, args []string) SATSolver { return NewMinisatSolver(path, args...) }},
	{3, "cadical", "CaDiCaL", "cadical", stdinInput, false, func(path string, args []string) SATSolver { return NewCadicalSolver(path, args...) }},
	{4, "cryptominisat", "CryptoMiniSat", "cryptominisat5", stdinInput, false, func(path string, args []string) SATSolver { return NewCryptominisatSolver(path, args...) }},
	{5, "glucose", "Glucose", "glucose", resultFileInput, false, func(path string, args []string) SATSolver { return NewGlucoseSolver(path, args...) }},
	{6, "gini", "Gini", "", stdinInput, true, func(string, []string) SATSolver { return NewGiniSolver() }},
	{7, "slime", "SLIME", "slime", fileInput, false, func(path string, args []string) SATSolver { return NewSlimeSolver(path, args...) }},
	{8, "ortoolsat", "OR-Tools CP-SAT", "ortoolsat", fileInput, false, func(path string, args []string) SATSolver { return NewOrtoolsatSolver(path, args...) }},
}

// SolverInfo describes a registered solver. A solver is ready when its executable resolves.
type SolverInfo struct {
	ID         int
	Key        string
	Name       string
	Executable string
	InputMode  string
	Ready      bool
}

type Registry struct {
	config   Config
	lookPath func(file string) (string, error)
}

func NewRegistry(config Config) *Registry {
	return &Registry{
		config:   config,
		lookPath: exec.LookPath,
	}
}

func (registry *Registry) Config() Config {
	return registry.config
}

// Solvers lists every registered solver in id order
func (registry *Registry) Solvers() []SolverInfo {
	return lo.Map(definitions, func(definition solverDefinition, _ int) SolverInfo {
		return registry.info(definition)
	})
}

// Resolve returns the solver registered under key, which may also be its numeric id.
// An empty key picks the configured default when ready, else the first ready solver.
func (registry *Registry) Resolve(key string) (SATSolver, SolverInfo, error) {
	if strings.TrimSpace(key) == "" {
		return registry.resolveDefault()
	}

	definition, ok := registry.find(key)
	if !ok {
		return nil, SolverInfo{}, &SolverError{Solver: key, Message: "unknown solver"}
	}
	info := registry.info(definition)
	if !info.Ready {
		return nil, info, &SolverError{Solver: definition.key, Message: fmt.Sprintf("executable %q is not available", info.Executable)}
	}
	return definition.build(info.Executable, registry.config.Solvers[definition.key].Args), info, nil
}

func (registry *Registry) resolveDefault() (SATSolver, SolverInfo, error) {
	if registry.config.DefaultSolver != "" {
		if solver, info, err := registry.Resolve(registry.config.DefaultSolver); err == nil {
			return solver, info, nil
		}
	}

	info, ok := lo.Find(registry.Solvers(), func(info SolverInfo) bool { return info.Ready })
	if !ok {
		return nil, SolverInfo{}, &SolverError{Solver: "default", Message: "no solver is available"}
	}
	return registry.Resolve(info.Key)
}

func (registry *Registry) find(key string) (solverDefinition, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if id, err := strconv.Atoi(key); err == nil {
		return lo.Find(definitions, func(definition solverDefinition) bool { return definition.id == id })
	}
	index := slices.IndexFunc(definitions, func(definition solverDefinition) bool { return definition.key == key })
	if index < 0 {
		return solverDefinition{}, false
	}
	return definitions[index], true
}

func (registry *Registry) info(definition solverDefinition) SolverInfo {
	info := SolverInfo{
		ID:        definition.id,
		Key:       definition.key,
		Name:      definition.name,
		InputMode: definition.mode.String(),
	}
	if definition.inProcess {
		info.InputMode = "in process"
		info.Ready = true
		return info
	}

	executable := definition.executable
	if configured, ok := registry.config.Solvers[definition.key]; ok && configured.Path != "" {
		executable = configured.Path
	}
	info.Executable = executable
	if resolved, err := registry.lookPath(executable); err == nil {
		info.Executable = resolved
		info.Ready = true
	}
	return info
}
