package calc

import (
	"strconv"
	"unicode"
)

// Scanner parses the input source and collects all the tokens that can be found
type Scanner struct {
	line     int
	start    int
	current  int
	source   []rune
	skipped  int
	tokens   []*Token
	reporter Reporter
}

// NewScanner creates a new token scanner for a single line of source. The
// line number is only used for tagging tokens and errors.
func NewScanner(source []rune, line int, reporter Reporter) *Scanner {
	scanner := new(Scanner)
	scanner.line = line
	scanner.start = 0
	scanner.current = 0
	scanner.source = source
	scanner.tokens = make([]*Token, 0)
	scanner.reporter = reporter
	return scanner
}

// Scan reads the source and collect all the tokens that were found from the
// source. Characters that are not part of the language are skipped without
// being reported.
func (scanner *Scanner) Scan() []*Token {
	if len(scanner.tokens) != 0 {
		return scanner.tokens
	}

	for scanner.hasNext() {
		scanner.start = scanner.current
		switch r := scanner.advance(); r {
		case '(':
			scanner.addToken(LEFT_PAREN, nil)
		case ')':
			scanner.addToken(RIGHT_PAREN, nil)
		case '-':
			scanner.addToken(MINUS, nil)
		case '+':
			scanner.addToken(PLUS, nil)
		case '*':
			scanner.addToken(STAR, nil)
		case '/':
			scanner.addToken(SLASH, nil)
		default:
			if isDigit(r) {
				scanner.scanNumber()
			} else if !unicode.IsSpace(r) {
				scanner.skipped++
			}
		}
	}
	scanner.tokens = append(
		scanner.tokens,
		NewToken(EOF, "", nil, scanner.line),
	)
	return scanner.tokens
}

func (scanner *Scanner) scanNumber() {
	for isDigit(scanner.peek()) {
		scanner.advance()
	}
	lexeme := string(scanner.source[scanner.start:scanner.current])
	literal, err := strconv.ParseUint(lexeme, 10, 64)
	if err != nil {
		// the lexeme only holds ASCII digits, so the only possible failure is
		// a value out of range
		scanner.reporter.Report(
			NewScanError(scanner.line, "Number literal is too large."),
		)
		return
	}
	scanner.addToken(NUMBER, literal)
}

// addToken appends the lexeme from `start` to `current` as a token of the given
// type and carries the given literal
func (scanner *Scanner) addToken(typ TokenType, literal interface{}) {
	lexeme := string(scanner.source[scanner.start:scanner.current])
	tok := NewToken(typ, lexeme, literal, scanner.line)
	scanner.tokens = append(scanner.tokens, tok)
}

// hasNext returns true if the scanner has not read pass the source length
func (scanner *Scanner) hasNext() bool {
	return scanner.current < len(scanner.source)
}

// advance consumes and returns the rune at the current possible
func (scanner *Scanner) advance() rune {
	r := scanner.source[scanner.current]
	scanner.current++
	return r
}

// peek returns the rune at the current position, but does not consume it
func (scanner *Scanner) peek() rune {
	if !scanner.hasNext() {
		return '\x00'
	}
	return scanner.source[scanner.current]
}

// Skipped returns the number of non-space characters that were dropped
// because they are not part of the language.
func (scanner *Scanner) Skipped() int {
	return scanner.skipped
}

// isDigit only accepts ASCII digits, unicode.IsDigit would let other scripts'
// digits through to strconv.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
