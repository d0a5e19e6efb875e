package model

import (
	"fmt"
	"log"
	"maps"

	"github.com/limaJavier/satmodeler/pkg/lang"
)

type symbolTableImplementation struct {
	ids        map[string]int64
	declaredAt map[string]int
	names      []string // names[id-1] is the identifier of user variable id
	last       int64
	sealed     bool
}

func (table *symbolTableImplementation) Declare(name string, statement int, pos lang.Position) (int64, error) {
	if table.sealed {
		log.Panicf("cannot declare %q: symbol table is sealed", name)
	}
	if _, ok := table.ids[name]; ok {
		return 0, &SemanticError{
			Kind:    DuplicateDeclaration,
			Name:    name,
			Pos:     pos,
			Message: fmt.Sprintf("identifier %q is already declared", name),
		}
	}

	table.last++
	table.ids[name] = table.last
	table.declaredAt[name] = statement
	table.names = append(table.names, name)
	return table.last, nil
}

func (table *symbolTableImplementation) Lookup(name string, statement int, pos lang.Position) (int64, error) {
	id, ok := table.ids[name]
	if !ok {
		return 0, &SemanticError{
			Kind:    Undeclared,
			Name:    name,
			Pos:     pos,
			Message: fmt.Sprintf("identifier %q is not declared", name),
		}
	}
	if table.declaredAt[name] >= statement {
		return 0, &SemanticError{
			Kind:    Undeclared,
			Name:    name,
			Pos:     pos,
			Message: fmt.Sprintf("identifier %q is used before its declaration", name),
		}
	}
	return id, nil
}

func (table *symbolTableImplementation) Seal() {
	table.sealed = true
}

func (table *symbolTableImplementation) FreshAuxiliary() int64 {
	if !table.sealed {
		log.Panicf("auxiliary variable requested before user declarations were sealed")
	}
	table.last++
	return table.last
}

func (table *symbolTableImplementation) Name(id int64) (string, bool) {
	if id < 1 || id > int64(len(table.names)) {
		return "", false
	}
	return table.names[id-1], true
}

func (table *symbolTableImplementation) Names() []string {
	names := make([]string, len(table.names))
	copy(names, table.names)
	return names
}

func (table *symbolTableImplementation) VariableMap() map[string]int64 {
	return maps.Clone(table.ids)
}

func (table *symbolTableImplementation) MaxVariable() int64 {
	return table.last
}
