package model

import "github.com/limaJavier/satmodeler/pkg/lang"

// SymbolTable gives a unique DIMACS id to every declared identifier and vice versa.
// User ids are issued in declaration order starting at 1; auxiliary ids continue after the last user id.
type SymbolTable interface {
	// Declare registers name as declared by the statement at index statement
	Declare(name string, statement int, pos lang.Position) (int64, error)
	// Lookup resolves name as seen from the statement at index statement. Names declared by that statement or a later one are undeclared.
	Lookup(name string, statement int, pos lang.Position) (int64, error)
	// Seal closes user declarations. It must be called before FreshAuxiliary.
	Seal()
	// FreshAuxiliary returns a new id that never collides with a user id
	FreshAuxiliary() int64
	// Name returns the user identifier bound to id
	Name(id int64) (string, bool)
	// Names returns user identifiers in id order
	Names() []string
	// VariableMap returns a copy of the identifier to id map (user variables only)
	VariableMap() map[string]int64
	// MaxVariable returns the highest id issued so far
	MaxVariable() int64
}

func NewSymbolTable() SymbolTable {
	return &symbolTableImplementation{
		ids:        make(map[string]int64),
		declaredAt: make(map[string]int),
		names:      make([]string, 0),
	}
}
