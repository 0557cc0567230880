package calc

import "fmt"

// Token represents group a characters with additional information that was
// obtained during the scanning phase.
type Token struct {
	Typ     TokenType
	Lexeme  string
	Literal interface{}
	Line    int
}

// NewToken creates a new token
func NewToken(typ TokenType, lexeme string, literal interface{}, line int) *Token {
	return &Token{typ, lexeme, literal, line}
}

func (t *Token) String() string {
	if t.Literal == nil {
		return fmt.Sprintf("%s %s", t.Typ, t.Lexeme)
	}
	return fmt.Sprintf("%s %s %v", t.Typ, t.Lexeme, t.Literal)
}

// TokenType is a just a wrapped string used to represent token's type
type TokenType string

const (
	// Single-character tokens
	LEFT_PAREN  TokenType = "("
	RIGHT_PAREN TokenType = ")"
	MINUS       TokenType = "-"
	PLUS        TokenType = "+"
	SLASH       TokenType = "/"
	STAR        TokenType = "*"

	// Literals
	NUMBER TokenType = "NUMBER"

	EOF TokenType = "EOF"
)
