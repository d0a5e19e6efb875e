package modeler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/limaJavier/satmodeler/pkg/lang"
	"github.com/limaJavier/satmodeler/pkg/model"
	"github.com/limaJavier/satmodeler/pkg/sat"
)

// Solver output kept in a SolveResult
const maxOutputBytes = 3000

// SourceError locates an error in the source text
type SourceError struct {
	Message string
	Line    int
	Col     int
}

type ParseResult struct {
	Valid       bool
	Variables   []string
	Constraints int
	Tokens      int
	Error       *SourceError
}

type CompileResult struct {
	DIMACS        string
	VariableMap   map[string]int64
	NumVariables  uint64
	NumClauses    uint64
	Header        string
	UserVariables int
}

type SolveRequest struct {
	Source         string
	SolverID       string // Registry key or id, empty for the default solver
	TimeoutSeconds int    // Zero for the configured timeout
}

type SolveResult struct {
	Verdict      sat.Verdict
	Assignment   map[string]bool // Only for SAT
	RawOutput    string
	Solver       string
	ExitCode     int
	Duration     time.Duration
	NumVariables uint64
	NumClauses   uint64
	Error        string
}

// Parse checks source without compiling it
func Parse(source string) ParseResult {
	tokens, err := lang.Tokenize(source)
	if err != nil {
		return ParseResult{Error: SourceErrorOf(err)}
	}
	program, err := lang.Parse(tokens)
	if err != nil {
		return ParseResult{Error: SourceErrorOf(err)}
	}

	return ParseResult{
		Valid:       true,
		Variables:   program.Variables(),
		Constraints: len(program.Constraints()),
		Tokens:      len(tokens) - 1, // EOF is not a token of the source
	}
}

func Compile(source string) (CompileResult, error) {
	compiled, err := compile(source)
	if err != nil {
		return CompileResult{}, err
	}
	return CompileResult{
		DIMACS:        compiled.DIMACS,
		VariableMap:   compiled.VariableMap,
		NumVariables:  compiled.NumVariables,
		NumClauses:    compiled.NumClauses,
		Header:        compiled.Header,
		UserVariables: len(compiled.Variables),
	}, nil
}

type compiledProgram struct {
	model.CompiledModel
	program *lang.Program
}

func compile(source string) (compiledProgram, error) {
	program, err := lang.ParseSource(source)
	if err != nil {
		return compiledProgram{}, err
	}
	compiled, err := model.Compile(program)
	if err != nil {
		return compiledProgram{}, err
	}
	return compiledProgram{CompiledModel: compiled, program: program}, nil
}

// SourceErrorOf extracts message and position from lexing, parsing and semantic errors.
// Other errors are reported at line 0.
func SourceErrorOf(err error) *SourceError {
	var pos lang.Position
	var lexErr *lang.LexError
	var parseErr *lang.ParseError
	var semanticErr *model.SemanticError
	switch {
	case errors.As(err, &lexErr):
		pos = lexErr.Pos
	case errors.As(err, &parseErr):
		pos = parseErr.Pos
	case errors.As(err, &semanticErr):
		pos = semanticErr.Pos
	}
	return &SourceError{Message: err.Error(), Line: pos.Line, Col: pos.Col}
}

type Modeler struct {
	registry *sat.Registry
}

func NewModeler(registry *sat.Registry) *Modeler {
	return &Modeler{registry: registry}
}

func (modeler *Modeler) Solvers() []sat.SolverInfo {
	return modeler.registry.Solvers()
}

func (modeler *Modeler) Examples() []model.Example {
	return model.Examples()
}

// Solve compiles the request's source and hands it to the chosen solver under the request's timeout.
// Solver failures come back both as an ERROR result and as the error.
func (modeler *Modeler) Solve(ctx context.Context, request SolveRequest) (SolveResult, error) {
	timeoutSeconds := request.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = modeler.registry.Config().TimeoutSeconds
	}
	if err := sat.ValidateTimeout(timeoutSeconds); err != nil {
		return SolveResult{}, err
	}

	//** Compile
	compiled, err := compile(request.Source)
	if err != nil {
		return SolveResult{}, err
	}

	//** Solve
	solver, _, err := modeler.registry.Resolve(request.SolverID)
	if err != nil {
		return SolveResult{Verdict: sat.Failure, Error: err.Error()}, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()
	run, err := solver.Solve(ctx, compiled.Instance)

	result := SolveResult{
		Verdict:      run.Verdict,
		RawOutput:    truncate(run.Output, maxOutputBytes),
		Solver:       solver.Name(),
		ExitCode:     run.ExitCode,
		Duration:     run.Duration,
		NumVariables: compiled.NumVariables,
		NumClauses:   compiled.NumClauses,
	}
	if err != nil {
		result.Verdict = sat.Failure
		result.Error = err.Error()
		return result, err
	}

	//** Decode assignment
	if run.Verdict == sat.Sat {
		result.Assignment = decode(compiled.VariableMap, run.Solution)
		satisfied, err := model.Eval(compiled.program, result.Assignment)
		if err == nil && !satisfied {
			err = &sat.SolverError{Solver: solver.Name(), Message: "assignment does not satisfy the model", Output: result.RawOutput}
		}
		if err != nil {
			result.Verdict = sat.Failure
			result.Assignment = nil
			result.Error = err.Error()
			return result, err
		}
	}
	return result, nil
}

// decode maps solution literals back to user variables through the inverse variable map.
// Auxiliary variables are dropped and user variables the solver left out are false.
func decode(variableMap map[string]int64, solution sat.SATSolution) map[string]bool {
	names := lo.Invert(variableMap)
	assignment := lo.MapValues(variableMap, func(int64, string) bool { return false })
	for _, literal := range solution {
		if name, ok := names[max(literal, -literal)]; ok {
			assignment[name] = literal > 0
		}
	}
	return assignment
}

func truncate(output string, limit int) string {
	if len(output) <= limit {
		return output
	}
	return output[:limit] + fmt.Sprintf("\n... (%d bytes truncated)", len(output)-limit)
}
