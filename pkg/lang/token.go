package lang

import "fmt"

type TokenKind int

const (
	Keyword TokenKind = iota
	Builtin
	LogicOp
	Boolean
	Operator
	Number
	Ident
	Punctuation
	Comment
	EOF
)

var tokenKindNames = map[TokenKind]string{
	Keyword:     "keyword",
	Builtin:     "builtin",
	LogicOp:     "logic operator",
	Boolean:     "boolean",
	Operator:    "operator",
	Number:      "number",
	Ident:       "identifier",
	Punctuation: "punctuation",
	Comment:     "comment",
	EOF:         "end of input",
}

func (kind TokenKind) String() string {
	if name, ok := tokenKindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(kind))
}

// Position locates a token in the source. Line and Col are 1-based, Offset is the byte offset.
type Position struct {
	Offset int
	Line   int
	Col    int
}

func (pos Position) String() string {
	return fmt.Sprintf("line %d col %d", pos.Line, pos.Col)
}

type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    Position
}

// Normalized returns the lexeme lower-cased for words matched against the keyword table, and as-is otherwise
func (token Token) Normalized() string {
	switch token.Kind {
	case Keyword, Builtin, LogicOp, Boolean:
		return lowerASCII(token.Lexeme)
	}
	return token.Lexeme
}

func (token Token) String() string {
	if token.Kind == EOF {
		return token.Kind.String()
	}
	return fmt.Sprintf("%v %q", token.Kind, token.Lexeme)
}

// Word table, matched case-insensitively
var words = map[string]TokenKind{
	"var":        Keyword,
	"bool":       Keyword,
	"constraint": Keyword,
	"solve":      Keyword,
	"satisfy":    Keyword,
	"atmost":     Builtin,
	"atleast":    Builtin,
	"exactly":    Builtin,
	"xor":        Builtin,
	"not":        LogicOp,
	"and":        LogicOp,
	"or":         LogicOp,
	"true":       Boolean,
	"false":      Boolean,
}

// Symbolic operators ordered by priority: longer operators are matched first
var operators = []string{"<->", "->", "/\\", "\\/", "~", "!"}

const punctuation = ";:,()[]"

func lowerASCII(s string) string {
	bytes := []byte(s)
	for i, c := range bytes {
		if 'A' <= c && c <= 'Z' {
			bytes[i] = c + ('a' - 'A')
		}
	}
	return string(bytes)
}
