package model

import "github.com/limaJavier/satmodeler/pkg/lang"

// Compile translates program into an equisatisfiable DIMACS CNF instance.
// User variables are numbered in declaration order and clauses are emitted in statement order, so the output is a pure function of the program.
func Compile(program *lang.Program) (CompiledModel, error) {
	symbols := NewSymbolTable()

	//** Declare user variables
	for index, stmt := range program.Statements {
		decl, ok := stmt.(*lang.VarDecl)
		if !ok {
			continue
		}
		for i, name := range decl.Names {
			pos := decl.Pos
			if i < len(decl.Positions) {
				pos = decl.Positions[i]
			}
			if _, err := symbols.Declare(name, index, pos); err != nil {
				return CompiledModel{}, err
			}
		}
	}
	symbols.Seal()

	//** Compile constraints
	compiler := newTseitinCompiler(symbols)
	formula := &cnf{symbols: symbols, clauses: make([][]int64, 0)}
	for index, stmt := range program.Statements {
		constraint, ok := stmt.(*lang.ConstraintStmt)
		if !ok {
			continue
		}
		root, clauses, err := compiler.CompileConstraint(constraint.Expr, index)
		if err != nil {
			return CompiledModel{}, err
		}
		formula.clauses = append(formula.clauses, clauses...)
		formula.assert(root)
	}

	//** Write DIMACS
	return write(formula.clauses, symbols), nil
}
