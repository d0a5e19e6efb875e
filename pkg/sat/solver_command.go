package sat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

type inputMode int

const (
	// DIMACS is fed into the solver's standard input
	stdinInput inputMode = iota
	// DIMACS is written to a temporary file passed as the last argument
	fileInput
	// DIMACS and result are temporary files passed as the last two arguments
	resultFileInput
)

var inputModeNames = map[inputMode]string{
	stdinInput:      "stdin",
	fileInput:       "file",
	resultFileInput: "result file",
}

func (mode inputMode) String() string {
	return inputModeNames[mode]
}

// Time given to the solver's output pipes to close once the process has been killed
const waitDelay = time.Second

// commandSolver runs an external solver executable. Exit code 10 stands for satisfiable, 20 for unsatisfiable and 124 for timeout.
type commandSolver struct {
	name string
	path string
	args []string
	mode inputMode
}

func newCommandSolver(name, path string, mode inputMode, args []string, defaultArgs ...string) *commandSolver {
	if len(args) == 0 {
		args = defaultArgs
	}
	return &commandSolver{
		name: name,
		path: path,
		args: slices.Clone(args),
		mode: mode,
	}
}

func (solver *commandSolver) Name() string {
	return solver.name
}

func (solver *commandSolver) Solve(ctx context.Context, sat SAT) (SolverRun, error) {
	dimacs := sat.ToDIMACS() // Transform SAT into DIMACS-CNF string format
	log.Printf("%v: solving %v", solver.name, sat.Header())

	start := time.Now()
	var run SolverRun
	var err error
	if solver.mode == stdinInput {
		run, err = solver.solveStdin(ctx, dimacs)
	} else {
		run, err = solver.solveFiles(ctx, dimacs)
	}
	run.Duration = time.Since(start)

	if err != nil {
		run.Verdict = Failure
		log.Printf("%v: failed after %v: %v", solver.name, run.Duration, err)
		return run, err
	}
	log.Printf("%v: %v in %v", solver.name, run.Verdict, run.Duration)
	return run, nil
}

func (solver *commandSolver) solveStdin(ctx context.Context, dimacs string) (SolverRun, error) {
	cmd := solver.command(ctx, solver.args)
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return solver.classify(ctx, cmd, err, solverOutput{stdout: stdOut.String(), stderr: stderr.String()})
}

func (solver *commandSolver) solveFiles(ctx context.Context, dimacs string) (SolverRun, error) {
	// Create a temporary file to hold the DIMACS content
	inputTempFile, err := os.CreateTemp("", "dimacs-*.cnf")
	if err != nil {
		return SolverRun{}, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(inputTempFile.Name()) // Ensure the file is removed after execution

	// Write the DIMACS content to the temporary file
	if _, err := inputTempFile.WriteString(dimacs); err != nil {
		inputTempFile.Close()
		return SolverRun{}, fmt.Errorf("failed to write DIMACS to temporary file: %w", err)
	}
	if err := inputTempFile.Close(); err != nil {
		return SolverRun{}, fmt.Errorf("failed to close temporary file: %w", err)
	}

	args := append(slices.Clone(solver.args), inputTempFile.Name())

	resultPath := ""
	if solver.mode == resultFileInput {
		outputTempFile, err := os.CreateTemp("", solver.name+"_output-*.txt")
		if err != nil {
			return SolverRun{}, fmt.Errorf("failed to create temporary file: %w", err)
		}
		outputTempFile.Close()
		resultPath = outputTempFile.Name()
		defer os.Remove(resultPath) // Ensure the file is removed after execution
		args = append(args, resultPath)
	}

	cmd := solver.command(ctx, args)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()

	output := solverOutput{stdout: stdOut.String(), stderr: stderr.String()}
	if resultPath != "" {
		// A missing or empty result file surfaces later as an output without verdict
		content, _ := os.ReadFile(resultPath)
		output.result = string(content)
		output.resultFile = true
	}
	return solver.classify(ctx, cmd, err, output)
}

func (solver *commandSolver) command(ctx context.Context, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, solver.path, args...)
	cmd.WaitDelay = waitDelay
	return cmd
}

// classify turns the outcome of a finished command into a run
func (solver *commandSolver) classify(ctx context.Context, cmd *exec.Cmd, runErr error, output solverOutput) (SolverRun, error) {
	run := SolverRun{Output: output.raw(), ExitCode: -1}
	if cmd.ProcessState != nil {
		run.ExitCode = cmd.ProcessState.ExitCode()
	}

	//** Cancellation
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		run.Verdict = Timeout
		return run, nil
	} else if ctx.Err() != nil {
		return run, ctx.Err()
	}

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return run, &SolverError{Solver: solver.name, Message: runErr.Error(), Output: run.Output}
	}

	//** Exit code
	switch run.ExitCode {
	case 10:
		run.Verdict = Sat
	case 20:
		run.Verdict = Unsat
	case 124:
		run.Verdict = Timeout
	case 0:
		// Some solvers exit with 0 and only report the verdict in their output
		run.Verdict = output.status()
	default:
		return run, &SolverError{
			Solver:  solver.name,
			Message: fmt.Sprintf("exited with code %d: %v", run.ExitCode, strings.TrimSpace(output.stderr)),
			Output:  run.Output,
		}
	}

	switch run.Verdict {
	case Failure:
		return run, &SolverError{Solver: solver.name, Message: "no verdict in solver output", Output: run.Output}
	case Sat:
		solution, err := output.solution()
		if err != nil {
			return run, &SolverError{Solver: solver.name, Message: err.Error(), Output: run.Output}
		}
		run.Solution = solution
	}
	return run, nil
}
