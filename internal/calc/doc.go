/*
Package calc evaluates the integer arithmetic found in the operation order
homework. Each line goes through a Scanner, a Parser and an Interpreter.

Grammar

	expression --> factor ;
	factor     --> term ( ( "/" | "*" ) term )* ;
	term       --> unary ( ( "-" | "+" ) unary )* ;
	unary      --> "-" unary
	             | primary ;
	primary    --> NUMBER
	             | "(" expression ")" ;

Note that "term" binds tighter than "factor": additions and subtractions are
grouped before multiplications and divisions, so "1 + 2 * 3 + 4" is 21. The
other precedence tables accepted by the parser only change the binary rules:

	flat:     binary --> unary ( ( "/" | "*" | "-" | "+" ) unary )* ;
	standard: the usual arithmetic order, "*" and "/" bind tighter.

The scanner skips every character that is not a digit or one of "(", ")",
"+", "-", "*" or "/".
*/
package calc

//go:generate go run ../cmd/ast_codegen .
