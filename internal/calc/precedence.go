package calc

import (
	"fmt"
	"strings"
)

// Precedence selects the table of binary operator levels used by the parser.
type Precedence string

const (
	// PrecedenceInverted groups "+" and "-" before "*" and "/".
	PrecedenceInverted Precedence = "inverted"
	// PrecedenceFlat evaluates all operators from left to right.
	PrecedenceFlat Precedence = "flat"
	// PrecedenceStandard is the usual arithmetic order.
	PrecedenceStandard Precedence = "standard"
)

// ParsePrecedence returns the precedence with the given name.
func ParsePrecedence(name string) (Precedence, error) {
	switch p := Precedence(strings.ToLower(strings.TrimSpace(name))); p {
	case PrecedenceInverted, PrecedenceFlat, PrecedenceStandard:
		return p, nil
	case "":
		return PrecedenceInverted, nil
	}
	return "", fmt.Errorf("unknown precedence %q", name)
}

// levels lists the operators of each binary rule, from the loosest binding
// rule to the tightest one.
func (p Precedence) levels() [][]TokenType {
	switch p {
	case PrecedenceFlat:
		return [][]TokenType{{SLASH, STAR, MINUS, PLUS}}
	case PrecedenceStandard:
		return [][]TokenType{{MINUS, PLUS}, {SLASH, STAR}}
	default:
		return [][]TokenType{{SLASH, STAR}, {MINUS, PLUS}}
	}
}
