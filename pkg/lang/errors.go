package lang

import "fmt"

type LexError struct {
	Char rune
	Pos  Position
}

func (err *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at %v", err.Char, err.Pos)
}

// ParseError reports the first unexpected token; parsing stops there.
type ParseError struct {
	Expected string
	Found    string
	Pos      Position
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("expected %v but found %v at %v", err.Expected, err.Found, err.Pos)
}
