package lang

import (
	"strings"
	"unicode/utf8"
)

// Lexer produces tokens lazily, one call to Next at a time
type Lexer struct {
	source string
	offset int
	line   int
	col    int
}

func NewLexer(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
		col:    1,
	}
}

// Tokenize scans the whole source and returns every token except comments, terminated by an EOF token
func Tokenize(source string) ([]Token, error) {
	lexer := NewLexer(source)
	tokens := make([]Token, 0, len(source)/2+1)
	for {
		token, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		if token.Kind == Comment {
			continue
		}
		tokens = append(tokens, token)
		if token.Kind == EOF {
			return tokens, nil
		}
	}
}

// Next returns the next token (comments included). Once EOF has been returned every further call returns EOF again.
func (lexer *Lexer) Next() (Token, error) {
	lexer.skipWhitespace()

	start := lexer.position()
	if lexer.offset >= len(lexer.source) {
		return Token{Kind: EOF, Pos: start}, nil
	}

	rest := lexer.source[lexer.offset:]
	c := rest[0]

	//** Comments: "%" or "//" up to the end of the line
	if c == '%' || strings.HasPrefix(rest, "//") {
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			end = len(rest)
		}
		return lexer.emit(Comment, end, start), nil
	}

	//** Operators: multi-character operators first
	for _, operator := range operators {
		if strings.HasPrefix(rest, operator) {
			return lexer.emit(Operator, len(operator), start), nil
		}
	}

	//** Punctuation
	if strings.IndexByte(punctuation, c) >= 0 {
		return lexer.emit(Punctuation, 1, start), nil
	}

	//** Numbers
	if isDigit(c) {
		end := 1
		for end < len(rest) && isDigit(rest[end]) {
			end++
		}
		return lexer.emit(Number, end, start), nil
	}

	//** Keywords and identifiers
	if isWordStart(c) {
		end := 1
		for end < len(rest) && isWordPart(rest[end]) {
			end++
		}
		kind, ok := words[lowerASCII(rest[:end])]
		if !ok {
			kind = Ident
		}
		return lexer.emit(kind, end, start), nil
	}

	char, _ := utf8.DecodeRuneInString(rest)
	return Token{}, &LexError{Char: char, Pos: start}
}

func (lexer *Lexer) position() Position {
	return Position{Offset: lexer.offset, Line: lexer.line, Col: lexer.col}
}

// Tokens never span lines (comments stop before the newline) so only the column advances
func (lexer *Lexer) emit(kind TokenKind, length int, start Position) Token {
	lexeme := lexer.source[lexer.offset : lexer.offset+length]
	lexer.offset += length
	lexer.col += utf8.RuneCountInString(lexeme)
	return Token{Kind: kind, Lexeme: lexeme, Pos: start}
}

func (lexer *Lexer) skipWhitespace() {
	for lexer.offset < len(lexer.source) {
		switch lexer.source[lexer.offset] {
		case '\n':
			lexer.line++
			lexer.col = 1
		case ' ', '\t', '\r':
			lexer.col++
		default:
			return
		}
		lexer.offset++
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isWordStart(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isWordPart(c byte) bool {
	return isWordStart(c) || isDigit(c)
}
