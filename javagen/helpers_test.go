package javagen

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/pyjava/pyast"
)

// Tree builders for tests

func name(id string) *pyast.Name { return &pyast.Name{ID: id} }

func str(s string) *pyast.Constant { return &pyast.Constant{Const: pyast.ConstString, Str: s} }

func num(n int64) *pyast.Constant { return &pyast.Constant{Const: pyast.ConstInt, Int: big.NewInt(n)} }

func flt(f float64) *pyast.Constant { return &pyast.Constant{Const: pyast.ConstFloat, Float: f} }

func none() *pyast.Constant { return &pyast.Constant{Const: pyast.ConstNone} }

func attr(v pyast.Expr, a string) *pyast.Attribute { return &pyast.Attribute{Value: v, Attr: a} }

func call(fn pyast.Expr, args ...pyast.Expr) *pyast.Call { return &pyast.Call{Func: fn, Args: args} }

func binop(l pyast.Expr, op pyast.Operator, r pyast.Expr) *pyast.BinOp {
	return &pyast.BinOp{Left: l, Op: op, Right: r}
}

func compare(l pyast.Expr, op pyast.CmpOperator, r pyast.Expr) *pyast.Compare {
	return &pyast.Compare{Left: l, Ops: []pyast.CmpOperator{op}, Comparators: []pyast.Expr{r}}
}

func tuple(elts ...pyast.Expr) *pyast.Tuple { return &pyast.Tuple{Elts: elts} }

func assign(target string, v pyast.Expr) *pyast.Assign {
	return &pyast.Assign{Targets: []pyast.Expr{name(target)}, Value: v}
}

func exprStmt(v pyast.Expr) *pyast.ExprStmt { return &pyast.ExprStmt{Value: v} }

func printStmt(args ...pyast.Expr) *pyast.ExprStmt { return exprStmt(call(name("print"), args...)) }

func ret(v pyast.Expr) *pyast.Return { return &pyast.Return{Value: v} }

func def(fn string, params []string, body ...pyast.Stmt) *pyast.FunctionDef {
	args := make([]pyast.Arg, len(params))
	for i, p := range params {
		args[i] = pyast.Arg{Name: p}
	}
	return &pyast.FunctionDef{Name: fn, Args: pyast.Arguments{Args: args}, Body: body}
}

func class(n string, body ...pyast.Stmt) *pyast.ClassDef {
	return &pyast.ClassDef{Name: n, Body: body}
}

func forRange(v string, args []pyast.Expr, body ...pyast.Stmt) *pyast.For {
	return &pyast.For{Target: name(v), Iter: call(name("range"), args...), Body: body}
}

// generate runs the generator with default options and a test logger
func generate(t *testing.T, body ...pyast.Stmt) *Result {
	t.Helper()
	return generateWith(t, DefaultOptions(), body...)
}

func generateWith(t *testing.T, opts Options, body ...pyast.Stmt) *Result {
	t.Helper()
	g := New(opts, zaptest.NewLogger(t).Sugar())
	res, err := g.Generate(&pyast.Module{Body: body})
	require.NoError(t, err)
	return res
}
