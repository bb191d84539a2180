package pyast

// Operator is a binary arithmetic or bitwise operator
type Operator string

const (
	Add      Operator = "Add"
	Sub      Operator = "Sub"
	Mult     Operator = "Mult"
	MatMult  Operator = "MatMult"
	Div      Operator = "Div"
	FloorDiv Operator = "FloorDiv"
	Mod      Operator = "Mod"
	Pow      Operator = "Pow"
	LShift   Operator = "LShift"
	RShift   Operator = "RShift"
	BitOr    Operator = "BitOr"
	BitXor   Operator = "BitXor"
	BitAnd   Operator = "BitAnd"
)

// UnaryOperator is a prefix operator
type UnaryOperator string

const (
	Invert UnaryOperator = "Invert"
	Not    UnaryOperator = "Not"
	UAdd   UnaryOperator = "UAdd"
	USub   UnaryOperator = "USub"
)

// BoolOperator is `and` / `or`
type BoolOperator string

const (
	And BoolOperator = "And"
	Or  BoolOperator = "Or"
)

// CmpOperator is a comparison operator
type CmpOperator string

const (
	Eq    CmpOperator = "Eq"
	NotEq CmpOperator = "NotEq"
	Lt    CmpOperator = "Lt"
	LtE   CmpOperator = "LtE"
	Gt    CmpOperator = "Gt"
	GtE   CmpOperator = "GtE"
	Is    CmpOperator = "Is"
	IsNot CmpOperator = "IsNot"
	In    CmpOperator = "In"
	NotIn CmpOperator = "NotIn"
)

var operators = map[string]Operator{
	"Add": Add, "Sub": Sub, "Mult": Mult, "MatMult": MatMult, "Div": Div,
	"FloorDiv": FloorDiv, "Mod": Mod, "Pow": Pow, "LShift": LShift,
	"RShift": RShift, "BitOr": BitOr, "BitXor": BitXor, "BitAnd": BitAnd,
}

var unaryOperators = map[string]UnaryOperator{
	"Invert": Invert, "Not": Not, "UAdd": UAdd, "USub": USub,
}

var boolOperators = map[string]BoolOperator{"And": And, "Or": Or}

var cmpOperators = map[string]CmpOperator{
	"Eq": Eq, "NotEq": NotEq, "Lt": Lt, "LtE": LtE, "Gt": Gt, "GtE": GtE,
	"Is": Is, "IsNot": IsNot, "In": In, "NotIn": NotIn,
}

// Arithmetic reports whether op is one of + - * / % ** //
func (op Operator) Arithmetic() bool {
	switch op {
	case Add, Sub, Mult, Div, Mod, Pow, FloorDiv:
		return true
	}
	return false
}

// Symbol returns the Python spelling of op
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case MatMult:
		return "@"
	case Div:
		return "/"
	case FloorDiv:
		return "//"
	case Mod:
		return "%"
	case Pow:
		return "**"
	case LShift:
		return "<<"
	case RShift:
		return ">>"
	case BitOr:
		return "|"
	case BitXor:
		return "^"
	case BitAnd:
		return "&"
	}
	return string(op)
}
