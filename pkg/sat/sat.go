package sat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type SATSolution []int64

// SAT is a CNF instance. Comments are written as "c" lines ahead of the problem line.
type SAT struct {
	Variables uint64
	Clauses   [][]int64
	Comments  []string
}

// Header returns the DIMACS problem line
func (s SAT) Header() string {
	return fmt.Sprintf("p cnf %d %d", s.Variables, len(s.Clauses))
}

func (s SAT) ToDIMACS() string {
	var builder strings.Builder
	for _, comment := range s.Comments {
		fmt.Fprintf(&builder, "c %s\n", comment)
	}
	builder.WriteString(s.Header())
	builder.WriteString("\n")
	for _, clause := range s.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// ParseDIMACS reads a DIMACS CNF instance. Clauses may span lines; each one ends at a 0 literal.
func ParseDIMACS(reader io.Reader) (SAT, error) {
	var sat SAT
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header := false
	declaredClauses := 0
	clause := make([]int64, 0)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip blank lines and the "%" terminator some benchmark files carry
		if line == "" || line == "%" {
			continue
		}
		// Comments
		if strings.HasPrefix(line, "c") {
			sat.Comments = append(sat.Comments, strings.TrimSpace(strings.TrimPrefix(line, "c")))
			continue
		}
		// Problem line
		if strings.HasPrefix(line, "p") {
			parts := strings.Fields(line)
			if header || len(parts) != 4 || parts[1] != "cnf" {
				return SAT{}, fmt.Errorf("invalid problem line: %s", line)
			}
			vars, err := strconv.ParseUint(parts[2], 10, 64)
			if err != nil {
				return SAT{}, fmt.Errorf("invalid variable count: %w", err)
			}
			clauses, err := strconv.Atoi(parts[3])
			if err != nil || clauses < 0 {
				return SAT{}, fmt.Errorf("invalid clause count: %v", parts[3])
			}
			sat.Variables, declaredClauses, header = vars, clauses, true
			sat.Clauses = make([][]int64, 0, clauses)
			continue
		}
		if !header {
			return SAT{}, fmt.Errorf("clause before problem line: %s", line)
		}
		// Clause literals
		for _, field := range strings.Fields(line) {
			literal, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return SAT{}, fmt.Errorf("invalid literal %q: %w", field, err)
			}
			if literal == 0 {
				sat.Clauses = append(sat.Clauses, clause)
				clause = make([]int64, 0)
				continue
			}
			clause = append(clause, literal)
		}
	}
	if err := scanner.Err(); err != nil {
		return SAT{}, fmt.Errorf("cannot read DIMACS: %w", err)
	}

	if !header {
		return SAT{}, fmt.Errorf("missing problem line")
	}
	if len(clause) > 0 {
		return SAT{}, fmt.Errorf("unterminated clause: %v", clause)
	}
	if len(sat.Clauses) != declaredClauses {
		return SAT{}, fmt.Errorf("problem line declares %d clauses but %d were found", declaredClauses, len(sat.Clauses))
	}
	return sat, nil
}
