package pyast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// kindNamer returns the visited method's kind, proving every dispatch arm
// reaches the matching method.
type kindNamer struct{}

func (kindNamer) VisitBoolOp(*BoolOp) string                   { return "BoolOp" }
func (kindNamer) VisitBinOp(*BinOp) string                     { return "BinOp" }
func (kindNamer) VisitUnaryOp(*UnaryOp) string                 { return "UnaryOp" }
func (kindNamer) VisitCompare(*Compare) string                 { return "Compare" }
func (kindNamer) VisitCall(*Call) string                       { return "Call" }
func (kindNamer) VisitConstant(*Constant) string               { return "Constant" }
func (kindNamer) VisitName(*Name) string                       { return "Name" }
func (kindNamer) VisitAttribute(*Attribute) string             { return "Attribute" }
func (kindNamer) VisitSubscript(*Subscript) string             { return "Subscript" }
func (kindNamer) VisitList(*List) string                       { return "List" }
func (kindNamer) VisitTuple(*Tuple) string                     { return "Tuple" }
func (kindNamer) VisitSet(*Set) string                         { return "Set" }
func (kindNamer) VisitDict(*Dict) string                       { return "Dict" }
func (kindNamer) VisitIfExp(*IfExp) string                     { return "IfExp" }
func (kindNamer) VisitJoinedStr(*JoinedStr) string             { return "JoinedStr" }
func (kindNamer) VisitFormattedValue(*FormattedValue) string   { return "FormattedValue" }
func (kindNamer) VisitUnsupportedExpr(e *UnsupportedExpr) string { return e.Type }

func TestVisitExprDispatch(t *testing.T) {
	exprs := []Expr{
		&BoolOp{}, &BinOp{}, &UnaryOp{}, &Compare{}, &Call{}, &Constant{},
		&Name{}, &Attribute{}, &Subscript{}, &List{}, &Tuple{}, &Set{},
		&Dict{}, &IfExp{}, &JoinedStr{}, &FormattedValue{},
		&UnsupportedExpr{Type: "Lambda"},
	}
	for _, e := range exprs {
		assert.Equal(t, e.Kind(), VisitExpr[string](kindNamer{}, e))
	}
	assert.Equal(t, "", VisitExpr[string](kindNamer{}, nil))
}

type stmtCounter struct {
	kinds []string
}

func (c *stmtCounter) record(s Stmt) { c.kinds = append(c.kinds, s.Kind()) }

func (c *stmtCounter) VisitFunctionDef(s *FunctionDef) { c.record(s) }
func (c *stmtCounter) VisitClassDef(s *ClassDef)       { c.record(s) }
func (c *stmtCounter) VisitReturn(s *Return)           { c.record(s) }
func (c *stmtCounter) VisitAssign(s *Assign)           { c.record(s) }
func (c *stmtCounter) VisitAugAssign(s *AugAssign)     { c.record(s) }
func (c *stmtCounter) VisitAnnAssign(s *AnnAssign)     { c.record(s) }
func (c *stmtCounter) VisitFor(s *For)                 { c.record(s) }
func (c *stmtCounter) VisitWhile(s *While)             { c.record(s) }
func (c *stmtCounter) VisitIf(s *If)                   { c.record(s) }
func (c *stmtCounter) VisitExprStmt(s *ExprStmt)       { c.record(s) }
func (c *stmtCounter) VisitPass(s *Pass)               { c.record(s) }
func (c *stmtCounter) VisitBreak(s *Break)             { c.record(s) }
func (c *stmtCounter) VisitContinue(s *Continue)       { c.record(s) }
func (c *stmtCounter) VisitImport(s *Import)           { c.record(s) }
func (c *stmtCounter) VisitImportFrom(s *ImportFrom)   { c.record(s) }
func (c *stmtCounter) VisitUnsupported(s *Unsupported) { c.record(s) }

func TestAccept(t *testing.T) {
	stmts := []Stmt{
		&FunctionDef{}, &ClassDef{}, &Return{}, &Assign{}, &AugAssign{},
		&AnnAssign{}, &For{}, &While{}, &If{}, &ExprStmt{}, &Pass{},
		&Break{}, &Continue{}, &Import{}, &ImportFrom{}, &Unsupported{Type: "Try"},
	}
	c := &stmtCounter{}
	for _, s := range stmts {
		s.Accept(c)
	}
	assert.Equal(t, []string{
		"FunctionDef", "ClassDef", "Return", "Assign", "AugAssign",
		"AnnAssign", "For", "While", "If", "Expr", "Pass",
		"Break", "Continue", "Import", "ImportFrom", "Try",
	}, c.kinds)
}

func TestWalk(t *testing.T) {
	body := []Stmt{
		&ClassDef{Name: "A", Body: []Stmt{
			&FunctionDef{Name: "m", Body: []Stmt{
				&For{Body: []Stmt{&Break{}}, Orelse: []Stmt{&Pass{}}},
			}},
		}},
		&If{Body: []Stmt{&Continue{}}, Orelse: []Stmt{&Return{}}},
		&FunctionDef{Name: "skipped", Body: []Stmt{&Pass{}}},
	}

	var seen []string
	Walk(body, func(s Stmt) bool {
		seen = append(seen, s.Kind())
		fn, ok := s.(*FunctionDef)
		return !ok || fn.Name != "skipped"
	})

	assert.Equal(t, []string{
		"ClassDef", "FunctionDef", "For", "Break", "Pass",
		"If", "Continue", "Return", "FunctionDef",
	}, seen)
}

func TestOperatorHelpers(t *testing.T) {
	assert.True(t, FloorDiv.Arithmetic())
	assert.False(t, BitAnd.Arithmetic())
	assert.Equal(t, "**", Pow.Symbol())
	assert.Equal(t, "//", FloorDiv.Symbol())
	assert.Equal(t, "int", ConstInt.String())
}

func TestConstantKindIsNodeKind(t *testing.T) {
	c := &Constant{Const: ConstString, Str: "hi"}
	var x Expr = c
	assert.Equal(t, "Constant", x.Kind())
	assert.Equal(t, ConstString, c.Const)
}
