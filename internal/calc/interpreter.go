package calc

import "math"

// Interpreter exposes methods for evaluating then given syntax tree. This
// struct implements ExprVisitor
type Interpreter struct {
	reporter Reporter
}

func NewInterpreter(reporter Reporter) *Interpreter {
	return &Interpreter{reporter}
}

// Interpret evaluates the expression and reports the error if it can not be
// evaluated. The boolean result is false when an error was reported.
func (in *Interpreter) Interpret(expr Expr) (int64, bool) {
	val, err := in.Evaluate(expr)
	if err != nil {
		in.reporter.Report(err)
		return 0, false
	}
	return val, true
}

// Evaluate folds the expression into a single value. Operands are evaluated
// from left to right.
func (in *Interpreter) Evaluate(expr Expr) (int64, error) {
	val, err := in.eval(expr)
	if err != nil {
		return 0, err
	}
	return val.(int64), nil
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}
	leftNum := lhs.(int64)
	rightNum := rhs.(int64)

	var (
		result int64
		ok     bool
	)
	switch expr.Op.Typ {
	case PLUS:
		result, ok = addInt64(leftNum, rightNum)
	case MINUS:
		result, ok = subInt64(leftNum, rightNum)
	case STAR:
		result, ok = mulInt64(leftNum, rightNum)
	case SLASH:
		if rightNum == 0 {
			return nil, NewRuntimeError(expr.Op, "Division by zero.")
		}
		result, ok = quoInt64(leftNum, rightNum)
	default:
		panic("Unreachable")
	}
	if !ok {
		return nil, NewRuntimeError(expr.Op, "Integer overflow.")
	}
	return result, nil
}

func (in *Interpreter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return in.eval(expr.Expression)
}

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	if expr.Value > math.MaxInt64 {
		return nil, NewRuntimeError(nil, "Number literal does not fit in a signed 64-bit integer.")
	}
	return int64(expr.Value), nil
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	exprVal, err := in.eval(expr.Expression)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case MINUS:
		result, ok := negInt64(exprVal.(int64))
		if !ok {
			return nil, NewRuntimeError(expr.Op, "Integer overflow.")
		}
		return result, nil
	}
	panic("Unreachable")
}

func (in *Interpreter) eval(expr Expr) (interface{}, error) {
	return expr.Accept(in)
}
