package model

import (
	"fmt"

	"github.com/limaJavier/satmodeler/pkg/sat"
)

// CompiledModel is the DIMACS rendition of a program together with its user variable map
type CompiledModel struct {
	DIMACS       string
	VariableMap  map[string]int64 // User variables only
	Variables    []string         // User variables in id order
	NumVariables uint64
	NumClauses   uint64
	Header       string
	Instance     sat.SAT
}

// write renders clauses in generation order, preceded by one "c <name> <id>" comment per user variable.
// The variable count is the highest id occurring in the clauses.
func write(clauses [][]int64, symbols SymbolTable) CompiledModel {
	names := symbols.Names()

	comments := make([]string, 0, len(names))
	for i, name := range names {
		comments = append(comments, fmt.Sprintf("%s %d", name, i+1))
	}

	maxVariable := int64(0)
	for _, clause := range clauses {
		for _, literal := range clause {
			maxVariable = max(maxVariable, literal, -literal)
		}
	}

	instance := sat.SAT{
		Variables: uint64(maxVariable),
		Clauses:   clauses,
		Comments:  comments,
	}

	return CompiledModel{
		DIMACS:       instance.ToDIMACS(),
		VariableMap:  symbols.VariableMap(),
		Variables:    names,
		NumVariables: instance.Variables,
		NumClauses:   uint64(len(clauses)),
		Header:       instance.Header(),
		Instance:     instance,
	}
}
