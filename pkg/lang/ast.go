package lang

import "github.com/samber/lo"

// Program is the ordered list of statements of a model
type Program struct {
	Statements []Stmt
}

// Stmt is one of *VarDecl, *ConstraintStmt or *SolveStmt
type Stmt interface {
	stmtNode()
	Position() Position
}

type VarDecl struct {
	Names     []string
	Positions []Position // Position of each name, parallel to Names
	Pos       Position
}

type ConstraintStmt struct {
	Expr Expr
	Pos  Position
}

// SolveStmt is the "solve satisfy;" marker. It does not affect compilation.
type SolveStmt struct {
	Pos Position
}

func (*VarDecl) stmtNode()        {}
func (*ConstraintStmt) stmtNode() {}
func (*SolveStmt) stmtNode()      {}

func (stmt *VarDecl) Position() Position        { return stmt.Pos }
func (stmt *ConstraintStmt) Position() Position { return stmt.Pos }
func (stmt *SolveStmt) Position() Position      { return stmt.Pos }

// Expr is a closed set of expression nodes: *IdentExpr, *BoolLit, *NotExpr, *BinaryExpr and *CardinalityExpr.
// Consumers switch over these types exhaustively.
type Expr interface {
	exprNode()
	Position() Position
}

type IdentExpr struct {
	Name string
	Pos  Position
}

type BoolLit struct {
	Value bool
	Pos   Position
}

type NotExpr struct {
	Operand Expr
	Pos     Position
}

type BinaryOp int

const (
	And BinaryOp = iota
	Or
	Implies
	Iff
	Xor
)

var binaryOpSymbols = map[BinaryOp]string{
	And:     "/\\",
	Or:      "\\/",
	Implies: "->",
	Iff:     "<->",
	Xor:     "xor",
}

func (op BinaryOp) String() string {
	return binaryOpSymbols[op]
}

type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Pos   Position
}

type CardinalityKind int

const (
	AtMost CardinalityKind = iota
	AtLeast
	Exactly
)

var cardinalityNames = map[CardinalityKind]string{
	AtMost:  "atmost",
	AtLeast: "atleast",
	Exactly: "exactly",
}

func (kind CardinalityKind) String() string {
	return cardinalityNames[kind]
}

// CardinalityExpr constrains how many of its operands are true.
// Every operand is an *IdentExpr or a *NotExpr wrapping an *IdentExpr.
type CardinalityExpr struct {
	Kind     CardinalityKind
	K        int
	Operands []Expr
	Pos      Position
}

func (*IdentExpr) exprNode()       {}
func (*BoolLit) exprNode()         {}
func (*NotExpr) exprNode()         {}
func (*BinaryExpr) exprNode()      {}
func (*CardinalityExpr) exprNode() {}

func (expr *IdentExpr) Position() Position       { return expr.Pos }
func (expr *BoolLit) Position() Position         { return expr.Pos }
func (expr *NotExpr) Position() Position         { return expr.Pos }
func (expr *BinaryExpr) Position() Position      { return expr.Pos }
func (expr *CardinalityExpr) Position() Position { return expr.Pos }

// Variables returns every declared name in declaration order
func (program *Program) Variables() []string {
	return lo.FlatMap(program.Statements, func(stmt Stmt, _ int) []string {
		if decl, ok := stmt.(*VarDecl); ok {
			return decl.Names
		}
		return nil
	})
}

// Constraints returns the constraint statements in program order
func (program *Program) Constraints() []*ConstraintStmt {
	return lo.FilterMap(program.Statements, func(stmt Stmt, _ int) (*ConstraintStmt, bool) {
		constraint, ok := stmt.(*ConstraintStmt)
		return constraint, ok
	})
}
