package lang

import (
	"strconv"

	"github.com/samber/lo"
)

// Nesting limit for parentheses and unary operators, keeps recursion bounded on hostile input
const maxDepth = 1000

type Parser struct {
	tokens []Token
	pos    int
	depth  int
	solve  bool
}

// ParseSource tokenizes and parses source in one step
func ParseSource(source string) (*Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds a Program from tokens. It stops at the first unexpected token and never returns a partial program.
func Parse(tokens []Token) (*Program, error) {
	parser := &Parser{
		tokens: lo.Filter(tokens, func(token Token, _ int) bool { return token.Kind != Comment }),
	}
	return parser.program()
}

func (parser *Parser) program() (*Program, error) {
	program := &Program{Statements: make([]Stmt, 0)}
	for parser.peek().Kind != EOF {
		stmt, err := parser.statement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
	return program, nil
}

func (parser *Parser) statement() (Stmt, error) {
	switch {
	case parser.check(Keyword, "var"):
		return parser.varDecl()
	case parser.check(Keyword, "constraint"):
		return parser.constraint()
	case parser.check(Keyword, "solve"):
		return parser.solveStmt()
	}
	return nil, parser.unexpected("'var', 'constraint' or 'solve'")
}

// var bool: x, y, z;
func (parser *Parser) varDecl() (Stmt, error) {
	start := parser.advance()
	if _, err := parser.expect(Keyword, "bool"); err != nil {
		return nil, err
	}
	if _, err := parser.expect(Punctuation, ":"); err != nil {
		return nil, err
	}

	decl := &VarDecl{Pos: start.Pos}
	for {
		name, err := parser.expectKind(Ident, "identifier")
		if err != nil {
			return nil, err
		}
		decl.Names = append(decl.Names, name.Lexeme)
		decl.Positions = append(decl.Positions, name.Pos)

		if !parser.check(Punctuation, ",") {
			break
		}
		parser.advance()
	}

	if _, err := parser.expect(Punctuation, ";"); err != nil {
		return nil, err
	}
	return decl, nil
}

// constraint <expr>;
func (parser *Parser) constraint() (Stmt, error) {
	start := parser.advance()
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.expect(Punctuation, ";"); err != nil {
		return nil, err
	}
	return &ConstraintStmt{Expr: expr, Pos: start.Pos}, nil
}

// solve satisfy;
func (parser *Parser) solveStmt() (Stmt, error) {
	if parser.solve {
		return nil, parser.unexpected("at most one solve statement")
	}
	start := parser.advance()
	if _, err := parser.expect(Keyword, "satisfy"); err != nil {
		return nil, err
	}
	if _, err := parser.expect(Punctuation, ";"); err != nil {
		return nil, err
	}
	parser.solve = true
	return &SolveStmt{Pos: start.Pos}, nil
}

//** Expressions, lowest to highest binding: <->, ->, or, and, xor, unary, primary

func (parser *Parser) expression() (Expr, error) {
	parser.depth++
	defer func() { parser.depth-- }()
	if parser.depth > maxDepth {
		return nil, parser.unexpected("a less deeply nested expression")
	}
	return parser.iff()
}

func (parser *Parser) iff() (Expr, error) {
	return parser.binaryChain(Iff, parser.implies, func() bool {
		return parser.check(Operator, "<->")
	})
}

func (parser *Parser) implies() (Expr, error) {
	return parser.binaryChain(Implies, parser.or, func() bool {
		return parser.check(Operator, "->")
	})
}

func (parser *Parser) or() (Expr, error) {
	return parser.binaryChain(Or, parser.and, func() bool {
		return parser.check(Operator, "\\/") || parser.check(LogicOp, "or")
	})
}

func (parser *Parser) and() (Expr, error) {
	return parser.binaryChain(And, parser.xor, func() bool {
		return parser.check(Operator, "/\\") || parser.check(LogicOp, "and")
	})
}

func (parser *Parser) xor() (Expr, error) {
	return parser.binaryChain(Xor, parser.unary, func() bool {
		return parser.check(Builtin, "xor")
	})
}

// binaryChain parses a left-associative chain "operand (op operand)*"
func (parser *Parser) binaryChain(op BinaryOp, operand func() (Expr, error), atOperator func() bool) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for atOperator() {
		operator := parser.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Pos: operator.Pos}
	}
	return left, nil
}

func (parser *Parser) unary() (Expr, error) {
	if !parser.atNegation() {
		return parser.primary()
	}

	parser.depth++
	defer func() { parser.depth-- }()
	if parser.depth > maxDepth {
		return nil, parser.unexpected("a less deeply nested expression")
	}

	operator := parser.advance()
	operand, err := parser.unary()
	if err != nil {
		return nil, err
	}
	return &NotExpr{Operand: operand, Pos: operator.Pos}, nil
}

func (parser *Parser) primary() (Expr, error) {
	token := parser.peek()
	switch {
	case token.Kind == Ident:
		parser.advance()
		return &IdentExpr{Name: token.Lexeme, Pos: token.Pos}, nil
	case token.Kind == Boolean:
		parser.advance()
		return &BoolLit{Value: token.Normalized() == "true", Pos: token.Pos}, nil
	case parser.check(Punctuation, "("):
		parser.advance()
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if _, err := parser.expect(Punctuation, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	case parser.check(Builtin, "xor"):
		return parser.xorCall()
	case token.Kind == Builtin:
		return parser.cardinality()
	}
	return nil, parser.unexpected("expression")
}

// xor(a, b)
func (parser *Parser) xorCall() (Expr, error) {
	start := parser.advance()
	if _, err := parser.expect(Punctuation, "("); err != nil {
		return nil, err
	}
	left, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.expect(Punctuation, ","); err != nil {
		return nil, err
	}
	right, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.expect(Punctuation, ")"); err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: Xor, Left: left, Right: right, Pos: start.Pos}, nil
}

var cardinalityKinds = map[string]CardinalityKind{
	"atmost":  AtMost,
	"atleast": AtLeast,
	"exactly": Exactly,
}

// atmost(k, [x, not y, z])
func (parser *Parser) cardinality() (Expr, error) {
	start := parser.advance()
	expr := &CardinalityExpr{Kind: cardinalityKinds[start.Normalized()], Pos: start.Pos}

	if _, err := parser.expect(Punctuation, "("); err != nil {
		return nil, err
	}

	bound, err := parser.expectKind(Number, "cardinality bound")
	if err != nil {
		return nil, err
	}
	k, err := strconv.ParseInt(bound.Lexeme, 10, 32)
	if err != nil {
		return nil, &ParseError{Expected: "cardinality bound", Found: bound.String(), Pos: bound.Pos}
	}
	expr.K = int(k)

	if _, err := parser.expect(Punctuation, ","); err != nil {
		return nil, err
	}
	if _, err := parser.expect(Punctuation, "["); err != nil {
		return nil, err
	}
	for {
		operand, err := parser.cardinalityLiteral()
		if err != nil {
			return nil, err
		}
		expr.Operands = append(expr.Operands, operand)

		if !parser.check(Punctuation, ",") {
			break
		}
		parser.advance()
	}
	if _, err := parser.expect(Punctuation, "]"); err != nil {
		return nil, err
	}
	if _, err := parser.expect(Punctuation, ")"); err != nil {
		return nil, err
	}
	return expr, nil
}

// Cardinality operands are literals only: x or not x
func (parser *Parser) cardinalityLiteral() (Expr, error) {
	var negation *Token
	if parser.atNegation() {
		operator := parser.advance()
		negation = &operator
	}

	name, err := parser.expectKind(Ident, "identifier or negated identifier")
	if err != nil {
		return nil, err
	}
	ident := &IdentExpr{Name: name.Lexeme, Pos: name.Pos}
	if negation == nil {
		return ident, nil
	}
	return &NotExpr{Operand: ident, Pos: negation.Pos}, nil
}

//** Token helpers

func (parser *Parser) peek() Token {
	if parser.pos < len(parser.tokens) {
		return parser.tokens[parser.pos]
	}
	// Token streams without a trailing EOF are terminated right after their last token
	eof := Token{Kind: EOF, Pos: Position{Line: 1, Col: 1}}
	if len(parser.tokens) > 0 {
		last := parser.tokens[len(parser.tokens)-1]
		eof.Pos = Position{
			Offset: last.Pos.Offset + len(last.Lexeme),
			Line:   last.Pos.Line,
			Col:    last.Pos.Col + len(last.Lexeme),
		}
	}
	return eof
}

func (parser *Parser) advance() Token {
	token := parser.peek()
	if token.Kind != EOF {
		parser.pos++
	}
	return token
}

// check reports whether the current token has the given kind and (case-insensitive) lexeme
func (parser *Parser) check(kind TokenKind, lexeme string) bool {
	token := parser.peek()
	return token.Kind == kind && token.Normalized() == lexeme
}

func (parser *Parser) atNegation() bool {
	return parser.check(Operator, "~") || parser.check(Operator, "!") || parser.check(LogicOp, "not")
}

func (parser *Parser) expect(kind TokenKind, lexeme string) (Token, error) {
	if !parser.check(kind, lexeme) {
		return Token{}, parser.unexpected("'" + lexeme + "'")
	}
	return parser.advance(), nil
}

func (parser *Parser) expectKind(kind TokenKind, description string) (Token, error) {
	if parser.peek().Kind != kind {
		return Token{}, parser.unexpected(description)
	}
	return parser.advance(), nil
}

func (parser *Parser) unexpected(expected string) error {
	token := parser.peek()
	return &ParseError{Expected: expected, Found: token.String(), Pos: token.Pos}
}
