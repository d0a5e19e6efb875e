package model

import (
	"fmt"

	"github.com/limaJavier/satmodeler/pkg/lang"
)

type SemanticErrorKind int

const (
	Undeclared SemanticErrorKind = iota
	DuplicateDeclaration
	CardinalityBound
	NestedCardinality
)

var semanticErrorKindNames = map[SemanticErrorKind]string{
	Undeclared:           "undeclared identifier",
	DuplicateDeclaration: "duplicate declaration",
	CardinalityBound:     "cardinality bound out of range",
	NestedCardinality:    "nested cardinality",
}

func (kind SemanticErrorKind) String() string {
	return semanticErrorKindNames[kind]
}

// SemanticError reports a well-formed program that cannot be compiled
type SemanticError struct {
	Kind    SemanticErrorKind
	Name    string
	Pos     lang.Position
	Message string
}

func (err *SemanticError) Error() string {
	return fmt.Sprintf("%v at %v", err.Message, err.Pos)
}
