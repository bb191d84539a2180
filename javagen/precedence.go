package javagen

import "github.com/teranos/pyjava/pyast"

// Java operator precedence, higher binds tighter
const (
	precTernary = 3
	precOr      = 4
	precAnd     = 5
	precBitOr   = 6
	precBitXor  = 7
	precBitAnd  = 8
	precEq      = 9
	precRel     = 10
	precShift   = 11
	precAdd     = 12
	precMul     = 13
	precUnary   = 14
	precPrimary = 16
)

// jexpr is an emitted Java expression and the precedence of its
// outermost operator
type jexpr struct {
	code string
	prec int
}

func primary(code string) jexpr { return jexpr{code: code, prec: precPrimary} }

// wrap parenthesizes x when it binds looser than min
func wrap(x jexpr, min int) string {
	if x.prec < min {
		return "(" + x.code + ")"
	}
	return x.code
}

// binaryPrec maps a Python binary operator to its Java operator and level
func binaryPrec(op pyast.Operator) (string, int) {
	switch op {
	case pyast.Add:
		return "+", precAdd
	case pyast.Sub:
		return "-", precAdd
	case pyast.Mult:
		return "*", precMul
	case pyast.Div:
		return "/", precMul
	case pyast.Mod:
		return "%", precMul
	case pyast.LShift:
		return "<<", precShift
	case pyast.RShift:
		return ">>", precShift
	case pyast.BitAnd:
		return "&", precBitAnd
	case pyast.BitXor:
		return "^", precBitXor
	case pyast.BitOr:
		return "|", precBitOr
	}
	return "", 0
}

// binary joins two operands. Java operators are left-associative, so the
// right operand is parenthesized at equal precedence.
func binary(left jexpr, op string, prec int, right jexpr) jexpr {
	return jexpr{
		code: wrap(left, prec) + " " + op + " " + wrap(right, prec+1),
		prec: prec,
	}
}

// unary applies a prefix operator; a nested prefix operand is always
// parenthesized so "- -x" never collapses into "--x".
func unary(op string, operand jexpr) jexpr {
	return jexpr{code: op + wrap(operand, precUnary+1), prec: precUnary}
}

// cast applies a Java cast
func cast(typ string, operand jexpr) jexpr {
	return jexpr{code: "(" + typ + ") " + wrap(operand, precUnary+1), prec: precUnary}
}

// comparePrec maps a relational operator to its Java spelling and level
func comparePrec(op pyast.CmpOperator) (string, int) {
	switch op {
	case pyast.Eq, pyast.Is:
		return "==", precEq
	case pyast.NotEq, pyast.IsNot:
		return "!=", precEq
	case pyast.Lt:
		return "<", precRel
	case pyast.LtE:
		return "<=", precRel
	case pyast.Gt:
		return ">", precRel
	case pyast.GtE:
		return ">=", precRel
	}
	return "", 0
}
