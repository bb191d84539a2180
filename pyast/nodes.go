// Package pyast models the subset of the Python syntax tree pyjava translates.
//
// The node set is closed: every statement and expression kind is a concrete
// struct, and the visitor interfaces carry one method per kind so a consumer
// that forgets a kind does not compile. Kinds outside the modelled subset
// decode to Unsupported / UnsupportedExpr, which keep their original kind
// name so callers can report them.
//
// Trees are read-only once decoded.
package pyast

import "math/big"

// Pos is a source position. Line is 1-based; zero means unknown.
type Pos struct {
	Lineno    int
	ColOffset int
}

// Line returns the 1-based source line, or 0 when unknown
func (p Pos) Line() int { return p.Lineno }

// Node is implemented by every statement and expression
type Node interface {
	Kind() string
	Line() int
}

// Stmt is a statement node
type Stmt interface {
	Node
	Accept(v StmtVisitor)
	stmtNode()
}

// Expr is an expression node
type Expr interface {
	Node
	exprNode()
}

// Module is the root of a decoded tree
type Module struct {
	Body []Stmt
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// FunctionDef is a def block
type FunctionDef struct {
	Pos
	Name       string
	Args       Arguments
	Body       []Stmt
	Decorators []Expr
	Returns    Expr // nil without a return annotation
}

// ClassDef is a class block
type ClassDef struct {
	Pos
	Name       string
	Bases      []Expr
	Body       []Stmt
	Decorators []Expr
}

// Return is a return statement; Value is nil for a bare return
type Return struct {
	Pos
	Value Expr
}

// Assign is `t1 = t2 = value`
type Assign struct {
	Pos
	Targets []Expr
	Value   Expr
}

// AugAssign is `target op= value`
type AugAssign struct {
	Pos
	Target Expr
	Op     Operator
	Value  Expr
}

// AnnAssign is `target: annotation [= value]`
type AnnAssign struct {
	Pos
	Target     Expr
	Annotation Expr
	Value      Expr // nil for a bare annotation
}

// For is a for loop with an optional else block
type For struct {
	Pos
	Target Expr
	Iter   Expr
	Body   []Stmt
	Orelse []Stmt
}

// While is a while loop
type While struct {
	Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// If is an if statement; elif chains nest as a single If in Orelse
type If struct {
	Pos
	Test   Expr
	Body   []Stmt
	Orelse []Stmt
}

// ExprStmt is an expression evaluated for effect
type ExprStmt struct {
	Pos
	Value Expr
}

// Pass is a pass statement
type Pass struct{ Pos }

// Break is a break statement
type Break struct{ Pos }

// Continue is a continue statement
type Continue struct{ Pos }

// Import is `import a, b as c`
type Import struct {
	Pos
	Names []Alias
}

// ImportFrom is `from module import a, b as c`
type ImportFrom struct {
	Pos
	Module string
	Names  []Alias
	Level  int
}

// Unsupported stands in for a statement kind outside the modelled subset
type Unsupported struct {
	Pos
	Type string
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// BoolOp is `a and b and c`
type BoolOp struct {
	Pos
	Op     BoolOperator
	Values []Expr
}

// BinOp is `left op right`
type BinOp struct {
	Pos
	Left  Expr
	Op    Operator
	Right Expr
}

// UnaryOp is `op operand`
type UnaryOp struct {
	Pos
	Op      UnaryOperator
	Operand Expr
}

// Compare is `left op1 c1 op2 c2 ...`
type Compare struct {
	Pos
	Left        Expr
	Ops         []CmpOperator
	Comparators []Expr
}

// Call is `func(args, key=value)`
type Call struct {
	Pos
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

// ConstKind identifies the Python type of a Constant
type ConstKind int

const (
	ConstNone ConstKind = iota
	ConstBool
	ConstInt
	ConstFloat
	ConstString
	ConstBytes
	ConstEllipsis
)

var constKindNames = [...]string{"None", "bool", "int", "float", "str", "bytes", "Ellipsis"}

func (k ConstKind) String() string {
	if int(k) < len(constKindNames) {
		return constKindNames[k]
	}
	return "unknown"
}

// Constant is a literal. Only the field matching Const is meaningful.
type Constant struct {
	Pos
	Const ConstKind
	Bool  bool
	Int   *big.Int
	Float float64
	Str   string
}

// Name is an identifier reference
type Name struct {
	Pos
	ID string
}

// Attribute is `value.attr`
type Attribute struct {
	Pos
	Value Expr
	Attr  string
}

// Subscript is `value[index]`
type Subscript struct {
	Pos
	Value Expr
	Index Expr
}

// List is a list display
type List struct {
	Pos
	Elts []Expr
}

// Tuple is a tuple display
type Tuple struct {
	Pos
	Elts []Expr
}

// Set is a set display
type Set struct {
	Pos
	Elts []Expr
}

// Dict is a dict display. A nil key marks a `**mapping` unpacking.
type Dict struct {
	Pos
	Keys   []Expr
	Values []Expr
}

// IfExp is `body if test else orelse`
type IfExp struct {
	Pos
	Test   Expr
	Body   Expr
	Orelse Expr
}

// JoinedStr is an f-string; Values are Constant and FormattedValue parts
type JoinedStr struct {
	Pos
	Values []Expr
}

// FormattedValue is one `{value}` part of an f-string
type FormattedValue struct {
	Pos
	Value      Expr
	FormatSpec Expr // nil or a JoinedStr
}

// UnsupportedExpr stands in for an expression kind outside the modelled subset
type UnsupportedExpr struct {
	Pos
	Type string
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// Arguments is a function parameter list
type Arguments struct {
	PosOnly  []Arg
	Args     []Arg
	Vararg   *Arg
	KwOnly   []Arg
	Kwarg    *Arg
	Defaults []Expr // right-aligned with PosOnly+Args
}

// All returns positional-only and regular parameters in order
func (a Arguments) All() []Arg {
	out := make([]Arg, 0, len(a.PosOnly)+len(a.Args))
	out = append(out, a.PosOnly...)
	return append(out, a.Args...)
}

// Arg is one parameter
type Arg struct {
	Pos
	Name       string
	Annotation Expr
}

// Keyword is `name=value` in a call; Name is empty for `**kwargs`
type Keyword struct {
	Name  string
	Value Expr
}

// Alias is one imported name
type Alias struct {
	Name   string
	AsName string
}

// Kind names, matching Python's ast class names

func (*FunctionDef) Kind() string { return "FunctionDef" }
func (*ClassDef) Kind() string    { return "ClassDef" }
func (*Return) Kind() string      { return "Return" }
func (*Assign) Kind() string      { return "Assign" }
func (*AugAssign) Kind() string   { return "AugAssign" }
func (*AnnAssign) Kind() string   { return "AnnAssign" }
func (*For) Kind() string         { return "For" }
func (*While) Kind() string       { return "While" }
func (*If) Kind() string          { return "If" }
func (*ExprStmt) Kind() string    { return "Expr" }
func (*Pass) Kind() string        { return "Pass" }
func (*Break) Kind() string       { return "Break" }
func (*Continue) Kind() string    { return "Continue" }
func (*Import) Kind() string      { return "Import" }
func (*ImportFrom) Kind() string  { return "ImportFrom" }
func (s *Unsupported) Kind() string {
	return s.Type
}

func (*BoolOp) Kind() string         { return "BoolOp" }
func (*BinOp) Kind() string          { return "BinOp" }
func (*UnaryOp) Kind() string        { return "UnaryOp" }
func (*Compare) Kind() string        { return "Compare" }
func (*Call) Kind() string           { return "Call" }
func (*Constant) Kind() string       { return "Constant" }
func (*Name) Kind() string           { return "Name" }
func (*Attribute) Kind() string      { return "Attribute" }
func (*Subscript) Kind() string      { return "Subscript" }
func (*List) Kind() string           { return "List" }
func (*Tuple) Kind() string          { return "Tuple" }
func (*Set) Kind() string            { return "Set" }
func (*Dict) Kind() string           { return "Dict" }
func (*IfExp) Kind() string          { return "IfExp" }
func (*JoinedStr) Kind() string      { return "JoinedStr" }
func (*FormattedValue) Kind() string { return "FormattedValue" }
func (e *UnsupportedExpr) Kind() string {
	return e.Type
}

func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*AnnAssign) stmtNode()   {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*If) stmtNode()          {}
func (*ExprStmt) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*Unsupported) stmtNode() {}

func (*BoolOp) exprNode()          {}
func (*BinOp) exprNode()           {}
func (*UnaryOp) exprNode()         {}
func (*Compare) exprNode()         {}
func (*Call) exprNode()            {}
func (*Constant) exprNode()        {}
func (*Name) exprNode()            {}
func (*Attribute) exprNode()       {}
func (*Subscript) exprNode()       {}
func (*List) exprNode()            {}
func (*Tuple) exprNode()           {}
func (*Set) exprNode()             {}
func (*Dict) exprNode()            {}
func (*IfExp) exprNode()           {}
func (*JoinedStr) exprNode()       {}
func (*FormattedValue) exprNode()  {}
func (*UnsupportedExpr) exprNode() {}
