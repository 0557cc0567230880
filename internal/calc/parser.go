package calc

// Parser composes the syntax tree from the sequence of tokens of a single
// line. See the package documentation for the grammar.
type Parser struct {
	current  int
	tokens   []*Token
	levels   [][]TokenType
	reporter Reporter
}

// NewParser creates a new parser that uses the inverted precedence table.
func NewParser(tokens []*Token, reporter Reporter) *Parser {
	return NewParserWithPrecedence(tokens, PrecedenceInverted, reporter)
}

// NewParserWithPrecedence creates a new parser for the given precedence table.
func NewParserWithPrecedence(
	tokens []*Token,
	precedence Precedence,
	reporter Reporter,
) *Parser {
	return &Parser{0, tokens, precedence.levels(), reporter}
}

// Parse returns the expression spanning all of the tokens. If the tokens do
// not form exactly one expression, the error is reported and nil is returned.
func (parser *Parser) Parse() Expr {
	expr, err := parser.expression()
	if err == nil && !parser.isEOF() {
		err = NewParseError(parser.peek(), "Expect end of expression.")
	}
	if err != nil {
		parser.reporter.Report(err)
		return nil
	}
	return expr
}

// expression --> factor ;
func (parser *Parser) expression() (Expr, error) {
	return parser.binary(0)
}

// Creates a left-associative nested tree of binary operator nodes for the
// operators at the given level. Match the next level, or unary once all levels
// are exhausted, if the operators are not found. With the inverted table,
// level 0 is "factor" and level 1 is "term".
//
// factor --> term ( ( "/" | "*" ) term )* ;
// term   --> unary ( ( "-" | "+" ) unary )* ;
func (parser *Parser) binary(level int) (Expr, error) {
	if level == len(parser.levels) {
		return parser.unary()
	}
	expr, err := parser.binary(level + 1)
	if err != nil {
		return nil, err
	}
	for parser.match(parser.levels[level]...) {
		op := parser.prev()
		right, err := parser.binary(level + 1)
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// unary --> "-" unary | primary ;
func (parser *Parser) unary() (Expr, error) {
	if parser.match(MINUS) {
		op := parser.prev()
		expr, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return NewUnaryExpr(op, expr), nil
	}
	return parser.primary()
}

// primary --> NUMBER | "(" expression ")" ;
func (parser *Parser) primary() (Expr, error) {
	if parser.match(NUMBER) {
		return NewLiteralExpr(parser.prev().Literal.(uint64)), nil
	}
	if parser.match(LEFT_PAREN) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if err := parser.consume(
			RIGHT_PAREN,
			"Expect ')' after expression.",
		); err != nil {
			return nil, err
		}
		return NewGroupingExpr(expr), nil
	}
	return nil, NewParseError(parser.peek(), "Expect expression.")
}

func (parser *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if parser.check(tt) {
			parser.advance()
			return true
		}
	}
	return false
}

func (parser *Parser) consume(typ TokenType, message string) error {
	if parser.check(typ) {
		parser.advance()
		return nil
	}
	return NewParseError(parser.peek(), message)
}

func (parser *Parser) check(tt TokenType) bool {
	if parser.isEOF() {
		return false
	}
	return parser.peek().Typ == tt
}

func (parser *Parser) advance() *Token {
	if !parser.isEOF() {
		parser.current++
	}
	return parser.prev()
}

func (parser *Parser) isEOF() bool {
	return parser.peek().Typ == EOF
}

func (parser *Parser) peek() *Token {
	return parser.tokens[parser.current]
}

func (parser *Parser) prev() *Token {
	return parser.tokens[parser.current-1]
}
