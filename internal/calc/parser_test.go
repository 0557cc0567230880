package calc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string, precedence Precedence) Expr {
	t.Helper()
	report := newMockReporter()
	toks := NewScanner([]rune(src), 1, report).Scan()
	expr := NewParserWithPrecedence(toks, precedence, report).Parse()
	require.False(t, report.HadError(), "%q: %v", src, report.errors)
	require.NotNil(t, expr)
	return expr
}

func TestParsePrimary(t *testing.T) {
	testCases := []struct {
		toks []*Token
		expr Expr
	}{
		{[]*Token{tokNum("42", 42), tokEOF(1)},
			NewLiteralExpr(42)},

		{[]*Token{
			tokOp(LEFT_PAREN),
			tokNum("7", 7),
			tokOp(RIGHT_PAREN),
			tokEOF(1),
		},
			NewGroupingExpr(NewLiteralExpr(7))},

		{[]*Token{
			tokOp(LEFT_PAREN),
			tokOp(LEFT_PAREN),
			tokNum("7", 7),
			tokOp(RIGHT_PAREN),
			tokOp(RIGHT_PAREN),
			tokEOF(1),
		},
			NewGroupingExpr(NewGroupingExpr(NewLiteralExpr(7)))},
	}

	for _, tc := range testCases {
		report := newMockReporter()
		expr := NewParser(tc.toks, report).Parse()

		assert.False(t, report.HadError())
		if diff := cmp.Diff(tc.expr, expr); diff != "" {
			t.Errorf("unexpected tree (-want +got):\n%s", diff)
		}
	}
}

func TestParseUnary(t *testing.T) {
	testCases := []struct {
		toks []*Token
		expr Expr
	}{
		{[]*Token{tokOp(MINUS), tokNum("3", 3), tokEOF(1)},
			NewUnaryExpr(tokOp(MINUS), NewLiteralExpr(3))},

		{[]*Token{tokOp(MINUS), tokOp(MINUS), tokNum("3", 3), tokEOF(1)},
			NewUnaryExpr(
				tokOp(MINUS),
				NewUnaryExpr(tokOp(MINUS), NewLiteralExpr(3)))},

		{[]*Token{
			tokOp(MINUS),
			tokOp(LEFT_PAREN),
			tokNum("3", 3),
			tokOp(RIGHT_PAREN),
			tokEOF(1),
		},
			NewUnaryExpr(tokOp(MINUS), NewGroupingExpr(NewLiteralExpr(3)))},
	}

	for _, tc := range testCases {
		report := newMockReporter()
		expr := NewParser(tc.toks, report).Parse()

		assert.False(t, report.HadError())
		if diff := cmp.Diff(tc.expr, expr); diff != "" {
			t.Errorf("unexpected tree (-want +got):\n%s", diff)
		}
	}
}

func TestParseTermBindsTighterThanFactor(t *testing.T) {
	// 1 + 2 * 3 + 4 --> (1 + 2) * (3 + 4)
	toks := []*Token{
		tokNum("1", 1),
		tokOp(PLUS),
		tokNum("2", 2),
		tokOp(STAR),
		tokNum("3", 3),
		tokOp(PLUS),
		tokNum("4", 4),
		tokEOF(1),
	}
	want := NewBinaryExpr(
		tokOp(STAR),
		NewBinaryExpr(tokOp(PLUS), NewLiteralExpr(1), NewLiteralExpr(2)),
		NewBinaryExpr(tokOp(PLUS), NewLiteralExpr(3), NewLiteralExpr(4)),
	)

	report := newMockReporter()
	expr := NewParser(toks, report).Parse()

	assert.False(t, report.HadError())
	if diff := cmp.Diff(Expr(want), expr); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestParseLeftAssociative(t *testing.T) {
	testCases := []struct {
		src  string
		want string
	}{
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"1 + 2 - 3", "(- (+ 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"8 * 4 / 2", "(/ (* 8 4) 2)"},
		{"2 * 3 + (4 * 5)", "(* 2 (+ 3 (group (* 4 5))))"},
		{"-1 + -2", "(+ (- 1) (- 2))"},
		{"1 - -2", "(- 1 (- 2))"},
	}

	printer := AstPrinter{}
	for _, tc := range testCases {
		expr := parseSource(t, tc.src, PrecedenceInverted)
		assert.Equal(t, tc.want, printer.Print(expr), tc.src)
	}
}

func TestParsePrecedenceTables(t *testing.T) {
	testCases := []struct {
		src        string
		precedence Precedence
		want       string
	}{
		{"1 + 2 * 3 + 4", PrecedenceInverted, "(* (+ 1 2) (+ 3 4))"},
		{"1 + 2 * 3 + 4", PrecedenceFlat, "(+ (* (+ 1 2) 3) 4)"},
		{"1 + 2 * 3 + 4", PrecedenceStandard, "(+ (+ 1 (* 2 3)) 4)"},
		{"8 / 2 - 1", PrecedenceInverted, "(/ 8 (- 2 1))"},
		{"8 / 2 - 1", PrecedenceFlat, "(- (/ 8 2) 1)"},
		{"8 / 2 - 1", PrecedenceStandard, "(- (/ 8 2) 1)"},
	}

	printer := AstPrinter{}
	for _, tc := range testCases {
		expr := parseSource(t, tc.src, tc.precedence)
		assert.Equal(t, tc.want, printer.Print(expr), "%s with %s", tc.src, tc.precedence)
	}
}

func TestParseWithErrors(t *testing.T) {
	testCases := []struct {
		toks   []*Token
		errors []error
	}{
		// (1 + 2
		{[]*Token{
			tokOp(LEFT_PAREN),
			tokNum("1", 1),
			tokOp(PLUS),
			tokNum("2", 2),
			tokEOF(1),
		},
			[]error{NewParseError(tokEOF(1), "Expect ')' after expression.")}},

		// empty line
		{[]*Token{tokEOF(1)},
			[]error{NewParseError(tokEOF(1), "Expect expression.")}},

		// 1 +
		{[]*Token{tokNum("1", 1), tokOp(PLUS), tokEOF(1)},
			[]error{NewParseError(tokEOF(1), "Expect expression.")}},

		// * 2
		{[]*Token{tokOp(STAR), tokNum("2", 2), tokEOF(1)},
			[]error{NewParseError(tokOp(STAR), "Expect expression.")}},

		// ()
		{[]*Token{tokOp(LEFT_PAREN), tokOp(RIGHT_PAREN), tokEOF(1)},
			[]error{NewParseError(tokOp(RIGHT_PAREN), "Expect expression.")}},

		// 1 2
		{[]*Token{tokNum("1", 1), tokNum("2", 2), tokEOF(1)},
			[]error{NewParseError(tokNum("2", 2), "Expect end of expression.")}},

		// 1 )
		{[]*Token{tokNum("1", 1), tokOp(RIGHT_PAREN), tokEOF(1)},
			[]error{NewParseError(tokOp(RIGHT_PAREN), "Expect end of expression.")}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		report := newMockReporter()
		expr := NewParser(tc.toks, report).Parse()

		assert.Nil(expr)
		assert.True(report.HadError())
		assert.Equal(tc.errors, report.errors)
	}
}

func TestParseErrorMessages(t *testing.T) {
	assert.Equal(t,
		"[line 3] Error at end: Expect ')' after expression.",
		NewParseError(tokEOF(3), "Expect ')' after expression.").Error())
	assert.Equal(t,
		"[line 1] Error at '*': Expect expression.",
		NewParseError(tokOp(STAR), "Expect expression.").Error())
}

func TestParseIsDeterministic(t *testing.T) {
	src := "((2 + 4 * 9) * (6 + 9 * 8 + 6) + 6) + 2 + 4 * 2"

	first := parseSource(t, src, PrecedenceInverted)
	second := parseSource(t, src, PrecedenceInverted)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("trees differ (-first +second):\n%s", diff)
	}
}

func TestParseConsumesAllTokens(t *testing.T) {
	sources := []string{
		"1",
		"1 + 2",
		"(1)",
		"-(-(1))",
		"1 * (2 + (3 - (4 / 5)))",
		"5 * 9 * (7 * 3 * 3 + 9 * 3 + (8 + 6 * 4))",
	}

	for _, src := range sources {
		report := newMockReporter()
		toks := NewScanner([]rune(src), 1, report).Scan()
		parser := NewParser(toks, report)
		expr := parser.Parse()

		assert.NotNil(t, expr, src)
		assert.False(t, report.HadError(), src)
		assert.Equal(t, len(toks)-1, parser.current, src)
	}
}

func TestParsePrecedenceNames(t *testing.T) {
	for _, name := range []string{"inverted", "FLAT", " standard "} {
		_, err := ParsePrecedence(name)
		assert.NoError(t, err, name)
	}
	p, err := ParsePrecedence("")
	assert.NoError(t, err)
	assert.Equal(t, PrecedenceInverted, p)

	_, err = ParsePrecedence("reverse-polish")
	assert.Error(t, err)
}
