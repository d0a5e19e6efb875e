package sat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// solverOutput is what a finished solver left behind
type solverOutput struct {
	stdout     string
	stderr     string
	result     string // Content of the result file
	resultFile bool
}

func (output solverOutput) raw() string {
	return output.stdout + output.stderr + output.result
}

func (output solverOutput) status() Verdict {
	if output.resultFile {
		verdict, _, _ := parseResultFile(output.result)
		return verdict
	}
	return parseStatus(output.stdout)
}

func (output solverOutput) solution() (SATSolution, error) {
	if output.resultFile {
		verdict, solution, err := parseResultFile(output.result)
		if err == nil && verdict != Sat {
			err = fmt.Errorf("result file reports %v", verdict)
		}
		return solution, err
	}
	return parseSolution(output.stdout)
}

// parseStatus reads the "s SATISFIABLE" or "s UNSATISFIABLE" line. Failure means no verdict was found.
func parseStatus(solverOutput string) Verdict {
	for _, line := range strings.Split(solverOutput, "\n") {
		switch strings.Join(strings.Fields(line), " ") {
		case "s SATISFIABLE":
			return Sat
		case "s UNSATISFIABLE":
			return Unsat
		}
	}
	return Failure
}

// parseSolution collects the literals of the "v" lines up to the terminating 0
func parseSolution(solverOutput string) (SATSolution, error) {
	values := lo.FlatMap(
		lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
			line = strings.TrimSpace(line)
			return line == "v" || line == "V" || strings.HasPrefix(line, "v ") || strings.HasPrefix(line, "V ")
		}),
		func(line string, _ int) []string {
			return strings.Fields(strings.TrimSpace(line)[1:])
		},
	)
	if len(values) == 0 {
		return nil, fmt.Errorf("no value lines in solver output")
	}
	return parseLiterals(values)
}

// parseResultFile reads a minisat-style result file: a SAT, UNSAT or INDET line, followed by the model on SAT
func parseResultFile(content string) (Verdict, SATSolution, error) {
	lines := lo.Filter(strings.Split(content, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	if len(lines) == 0 {
		return Failure, nil, fmt.Errorf("empty result file")
	}

	switch strings.TrimSpace(lines[0]) {
	case "SAT":
		if len(lines) < 2 {
			return Sat, nil, fmt.Errorf("result file has no model")
		}
		solution, err := parseLiterals(strings.Fields(lines[1]))
		return Sat, solution, err
	case "UNSAT":
		return Unsat, nil, nil
	case "INDET":
		return Failure, nil, fmt.Errorf("solver could not decide the instance")
	}
	return Failure, nil, fmt.Errorf("unknown result %q", strings.TrimSpace(lines[0]))
}

func parseLiterals(values []string) (SATSolution, error) {
	solution := make(SATSolution, 0, len(values))
	for _, valueStr := range values {
		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid literal in solver output: %w", err)
		}
		if value == 0 {
			return solution, nil
		}
		solution = append(solution, value)
	}
	return nil, fmt.Errorf("solver output is missing the terminating 0")
}
