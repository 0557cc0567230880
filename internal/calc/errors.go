package calc

import "fmt"

// ScanError wraps the error message returned by the scanner with the line
// where the error occured.
type ScanError struct {
	line    int
	message string
}

// NewScanError creates a new scanner error
func NewScanError(line int, message string) error {
	return &ScanError{line, message}
}

func (err *ScanError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", err.line, err.message)
}

// ParseError wraps the error message returned by the parser with the token
// at which parsing stopped.
type ParseError struct {
	token   *Token
	message string
}

// NewParseError creates a new parser error
func NewParseError(token *Token, message string) error {
	return &ParseError{token, message}
}

func (err *ParseError) Error() string {
	if err.token.Typ == EOF {
		return fmt.Sprintf(
			"[line %d] Error at end: %s",
			err.token.Line,
			err.message,
		)
	}
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.token.Line,
		err.token.Lexeme,
		err.message,
	)
}

// RuntimeError is returned when a syntactically valid expression can not be
// evaluated. The token is nil when no operator is to blame.
type RuntimeError struct {
	token   *Token
	message string
}

// NewRuntimeError creates a new runtime error
func NewRuntimeError(token *Token, message string) error {
	return &RuntimeError{token, message}
}

func (err *RuntimeError) Error() string {
	if err.token == nil {
		return err.message
	}
	return fmt.Sprintf("%s\n[line %d]", err.message, err.token.Line)
}

// AbortError stops a batch run at the first line that failed.
type AbortError struct {
	Line int
	Err  error
}

func (err *AbortError) Error() string {
	return fmt.Sprintf("aborted at line %d: %v", err.Line, err.Err)
}

func (err *AbortError) Unwrap() error {
	return err.Err
}
