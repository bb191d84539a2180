package pyast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/pyjava/errors"
)

// Format is the serialisation of a syntax tree
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a tree format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.WithHint(
		errors.NewUnsupportedInputError("no tree format for %q", path),
		"syntax trees are read from .json, .yaml or .yml files")
}

// DecodeFile reads and decodes a tree, choosing the format by extension
func DecodeFile(path string) (*Module, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	mod, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return mod, nil
}

// Decode parses a tree in the `_type` form produced by ast2json-style dumpers:
// every node is an object whose "_type" names the Python ast class and whose
// remaining keys are that class's fields.
//
// Python 3.7 node names (Num, Str, NameConstant, Bytes, Ellipsis, Index) are
// accepted and folded into their modern equivalents.
func Decode(data []byte, format Format) (*Module, error) {
	var raw interface{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(errors.ErrMalformedTree, err.Error())
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(errors.ErrMalformedTree, err.Error())
		}
	default:
		return nil, errors.NewUnsupportedInputError("unknown tree format %q", format)
	}

	d := &decoder{}
	mod := d.module(raw)
	if d.err != nil {
		return nil, d.err
	}
	return mod, nil
}

type object = map[string]interface{}

// decoder records the first failure; later calls become no-ops returning
// zero values so the descent code stays linear.
type decoder struct {
	err error
}

func (d *decoder) fail(path, format string, args ...interface{}) {
	if d.err == nil {
		d.err = errors.NewMalformedTreeError("%s: %s", path, fmt.Sprintf(format, args...))
	}
}

func (d *decoder) object(v interface{}, path string) object {
	if d.err != nil {
		return nil
	}
	switch m := v.(type) {
	case map[string]interface{}:
		return m
	case map[interface{}]interface{}:
		out := make(object, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	}
	d.fail(path, "expected node object, got %T", v)
	return nil
}

func (d *decoder) typeOf(m object, path string) string {
	t, _ := m["_type"].(string)
	if t == "" && d.err == nil {
		d.fail(path, "node has no _type")
	}
	return t
}

func (d *decoder) list(m object, key, path string) []interface{} {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	l, ok := v.([]interface{})
	if !ok {
		d.fail(path+"."+key, "expected list, got %T", v)
	}
	return l
}

func (d *decoder) str(m object, key, path string) string {
	v, ok := m[key]
	if !ok || v == nil {
		d.fail(path, "missing field %q", key)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(path+"."+key, "expected string, got %T", v)
	}
	return s
}

func optStr(m object, key string) string {
	s, _ := m[key].(string)
	return s
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case json.Number:
		i, _ := n.Int64()
		return int(i)
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func pos(m object) Pos {
	return Pos{Lineno: toInt(m["lineno"]), ColOffset: toInt(m["col_offset"])}
}

func (d *decoder) module(raw interface{}) *Module {
	m := d.object(raw, "$")
	if m == nil {
		return nil
	}
	if t := d.typeOf(m, "$"); t != "Module" && t != "Interactive" && d.err == nil {
		d.fail("$", "root must be Module, got %s", t)
	}
	return &Module{Body: d.stmts(m, "body", "$")}
}

func (d *decoder) stmts(m object, key, path string) []Stmt {
	items := d.list(m, key, path)
	out := make([]Stmt, 0, len(items))
	for i, item := range items {
		if s := d.stmt(item, fmt.Sprintf("%s.%s[%d]", path, key, i)); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (d *decoder) exprs(m object, key, path string) []Expr {
	items := d.list(m, key, path)
	out := make([]Expr, 0, len(items))
	for i, item := range items {
		out = append(out, d.expr(item, fmt.Sprintf("%s.%s[%d]", path, key, i)))
	}
	return out
}

// optExpr decodes m[key], returning nil when it is absent or null
func (d *decoder) optExpr(m object, key, path string) Expr {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	return d.expr(v, path+"."+key)
}

func (d *decoder) reqExpr(m object, key, path string) Expr {
	v, ok := m[key]
	if !ok || v == nil {
		d.fail(path, "missing field %q", key)
		return nil
	}
	return d.expr(v, path+"."+key)
}

func (d *decoder) stmt(v interface{}, path string) Stmt {
	m := d.object(v, path)
	if m == nil {
		return nil
	}
	t := d.typeOf(m, path)
	p := pos(m)
	path = path + "<" + t + ">"

	switch t {
	case "FunctionDef":
		return &FunctionDef{
			Pos:        p,
			Name:       d.str(m, "name", path),
			Args:       d.arguments(m["args"], path+".args"),
			Body:       d.stmts(m, "body", path),
			Decorators: d.exprs(m, "decorator_list", path),
			Returns:    d.optExpr(m, "returns", path),
		}
	case "ClassDef":
		return &ClassDef{
			Pos:        p,
			Name:       d.str(m, "name", path),
			Bases:      d.exprs(m, "bases", path),
			Body:       d.stmts(m, "body", path),
			Decorators: d.exprs(m, "decorator_list", path),
		}
	case "Return":
		return &Return{Pos: p, Value: d.optExpr(m, "value", path)}
	case "Assign":
		return &Assign{Pos: p, Targets: d.exprs(m, "targets", path), Value: d.reqExpr(m, "value", path)}
	case "AugAssign":
		return &AugAssign{
			Pos:    p,
			Target: d.reqExpr(m, "target", path),
			Op:     d.operator(m, path),
			Value:  d.reqExpr(m, "value", path),
		}
	case "AnnAssign":
		return &AnnAssign{
			Pos:        p,
			Target:     d.reqExpr(m, "target", path),
			Annotation: d.reqExpr(m, "annotation", path),
			Value:      d.optExpr(m, "value", path),
		}
	case "For":
		return &For{
			Pos:    p,
			Target: d.reqExpr(m, "target", path),
			Iter:   d.reqExpr(m, "iter", path),
			Body:   d.stmts(m, "body", path),
			Orelse: d.stmts(m, "orelse", path),
		}
	case "While":
		return &While{
			Pos:    p,
			Test:   d.reqExpr(m, "test", path),
			Body:   d.stmts(m, "body", path),
			Orelse: d.stmts(m, "orelse", path),
		}
	case "If":
		return &If{
			Pos:    p,
			Test:   d.reqExpr(m, "test", path),
			Body:   d.stmts(m, "body", path),
			Orelse: d.stmts(m, "orelse", path),
		}
	case "Expr":
		return &ExprStmt{Pos: p, Value: d.reqExpr(m, "value", path)}
	case "Pass":
		return &Pass{Pos: p}
	case "Break":
		return &Break{Pos: p}
	case "Continue":
		return &Continue{Pos: p}
	case "Import":
		return &Import{Pos: p, Names: d.aliases(m, path)}
	case "ImportFrom":
		return &ImportFrom{Pos: p, Module: optStr(m, "module"), Names: d.aliases(m, path), Level: toInt(m["level"])}
	case "":
		return nil
	}
	return &Unsupported{Pos: p, Type: t}
}

func (d *decoder) expr(v interface{}, path string) Expr {
	m := d.object(v, path)
	if m == nil {
		return nil
	}
	t := d.typeOf(m, path)
	p := pos(m)
	path = path + "<" + t + ">"

	switch t {
	case "BoolOp":
		return &BoolOp{Pos: p, Op: d.boolOperator(m, path), Values: d.exprs(m, "values", path)}
	case "BinOp":
		return &BinOp{
			Pos:   p,
			Left:  d.reqExpr(m, "left", path),
			Op:    d.operator(m, path),
			Right: d.reqExpr(m, "right", path),
		}
	case "UnaryOp":
		return &UnaryOp{Pos: p, Op: d.unaryOperator(m, path), Operand: d.reqExpr(m, "operand", path)}
	case "Compare":
		return &Compare{
			Pos:         p,
			Left:        d.reqExpr(m, "left", path),
			Ops:         d.cmpOperators(m, path),
			Comparators: d.exprs(m, "comparators", path),
		}
	case "Call":
		return &Call{
			Pos:      p,
			Func:     d.reqExpr(m, "func", path),
			Args:     d.exprs(m, "args", path),
			Keywords: d.keywords(m, path),
		}
	case "Constant", "Num", "Str", "NameConstant", "Bytes", "Ellipsis":
		return d.constant(m, t, p, path)
	case "Name":
		return &Name{Pos: p, ID: d.str(m, "id", path)}
	case "Attribute":
		return &Attribute{Pos: p, Value: d.reqExpr(m, "value", path), Attr: d.str(m, "attr", path)}
	case "Subscript":
		return &Subscript{Pos: p, Value: d.reqExpr(m, "value", path), Index: d.reqExpr(m, "slice", path)}
	case "Index":
		// Python < 3.9 wraps subscript indexes
		return d.reqExpr(m, "value", path)
	case "List":
		return &List{Pos: p, Elts: d.exprs(m, "elts", path)}
	case "Tuple":
		return &Tuple{Pos: p, Elts: d.exprs(m, "elts", path)}
	case "Set":
		return &Set{Pos: p, Elts: d.exprs(m, "elts", path)}
	case "Dict":
		return d.dict(m, p, path)
	case "IfExp":
		return &IfExp{
			Pos:    p,
			Test:   d.reqExpr(m, "test", path),
			Body:   d.reqExpr(m, "body", path),
			Orelse: d.reqExpr(m, "orelse", path),
		}
	case "JoinedStr":
		return &JoinedStr{Pos: p, Values: d.exprs(m, "values", path)}
	case "FormattedValue":
		return &FormattedValue{Pos: p, Value: d.reqExpr(m, "value", path), FormatSpec: d.optExpr(m, "format_spec", path)}
	case "":
		return nil
	}
	return &UnsupportedExpr{Pos: p, Type: t}
}

func (d *decoder) dict(m object, p Pos, path string) Expr {
	keys := d.list(m, "keys", path)
	values := d.exprs(m, "values", path)
	if len(keys) != len(values) {
		d.fail(path, "dict has %d keys and %d values", len(keys), len(values))
		return nil
	}
	out := &Dict{Pos: p, Keys: make([]Expr, len(keys)), Values: values}
	for i, k := range keys {
		if k != nil {
			out.Keys[i] = d.expr(k, fmt.Sprintf("%s.keys[%d]", path, i))
		}
	}
	return out
}

// constant folds Constant and the legacy literal nodes into one shape.
// Dumpers that cannot express a value in JSON (inf, nan, bytes) send it as
// a string and name the Python type in "value_type".
func (d *decoder) constant(m object, t string, p Pos, path string) Expr {
	c := &Constant{Pos: p}
	var v interface{}
	switch t {
	case "Num":
		v = m["n"]
	case "Str", "Bytes":
		v = m["s"]
	case "Ellipsis":
		c.Const = ConstEllipsis
		return c
	default:
		v = m["value"]
	}

	hint := optStr(m, "value_type")
	if t == "Bytes" {
		hint = "bytes"
	}

	switch hint {
	case "float":
		s := fmt.Sprint(v)
		switch strings.ToLower(s) {
		case "inf", "infinity":
			c.Const, c.Float = ConstFloat, math.Inf(1)
		case "-inf", "-infinity":
			c.Const, c.Float = ConstFloat, math.Inf(-1)
		case "nan":
			c.Const, c.Float = ConstFloat, math.NaN()
		default:
			return d.number(c, v, path, true)
		}
		return c
	case "bytes":
		c.Const, c.Str = ConstBytes, fmt.Sprint(v)
		return c
	case "Ellipsis":
		c.Const = ConstEllipsis
		return c
	case "complex":
		return &UnsupportedExpr{Pos: p, Type: "Constant(complex)"}
	}

	switch val := v.(type) {
	case nil:
		c.Const = ConstNone
	case bool:
		c.Const, c.Bool = ConstBool, val
	case string:
		c.Const, c.Str = ConstString, val
	default:
		return d.number(c, v, path, false)
	}
	return c
}

func (d *decoder) number(c *Constant, v interface{}, path string, forceFloat bool) Expr {
	switch n := v.(type) {
	case json.Number:
		s := n.String()
		if forceFloat || strings.ContainsAny(s, ".eE") {
			f, err := n.Float64()
			if err != nil {
				d.fail(path, "bad float literal %q", s)
				return nil
			}
			c.Const, c.Float = ConstFloat, f
			return c
		}
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			d.fail(path, "bad int literal %q", s)
			return nil
		}
		c.Const, c.Int = ConstInt, i
	case int:
		c.Const, c.Int = ConstInt, big.NewInt(int64(n))
	case int64:
		c.Const, c.Int = ConstInt, big.NewInt(n)
	case uint64:
		c.Const, c.Int = ConstInt, new(big.Int).SetUint64(n)
	case float64:
		c.Const, c.Float = ConstFloat, n
	default:
		d.fail(path, "unsupported literal %T", v)
		return nil
	}
	if forceFloat && c.Const == ConstInt {
		f, _ := new(big.Float).SetInt(c.Int).Float64()
		c.Const, c.Float, c.Int = ConstFloat, f, nil
	}
	return c
}

func (d *decoder) arguments(v interface{}, path string) Arguments {
	var out Arguments
	if v == nil {
		return out
	}
	m := d.object(v, path)
	if m == nil {
		return out
	}
	out.PosOnly = d.args(m, "posonlyargs", path)
	out.Args = d.args(m, "args", path)
	out.KwOnly = d.args(m, "kwonlyargs", path)
	out.Defaults = d.exprs(m, "defaults", path)
	if m["vararg"] != nil {
		a := d.arg(m["vararg"], path+".vararg")
		out.Vararg = &a
	}
	if m["kwarg"] != nil {
		a := d.arg(m["kwarg"], path+".kwarg")
		out.Kwarg = &a
	}
	return out
}

func (d *decoder) args(m object, key, path string) []Arg {
	items := d.list(m, key, path)
	out := make([]Arg, 0, len(items))
	for i, item := range items {
		out = append(out, d.arg(item, fmt.Sprintf("%s.%s[%d]", path, key, i)))
	}
	return out
}

func (d *decoder) arg(v interface{}, path string) Arg {
	m := d.object(v, path)
	if m == nil {
		return Arg{}
	}
	return Arg{Pos: pos(m), Name: d.str(m, "arg", path), Annotation: d.optExpr(m, "annotation", path)}
}

func (d *decoder) keywords(m object, path string) []Keyword {
	items := d.list(m, "keywords", path)
	out := make([]Keyword, 0, len(items))
	for i, item := range items {
		kp := fmt.Sprintf("%s.keywords[%d]", path, i)
		km := d.object(item, kp)
		if km == nil {
			continue
		}
		out = append(out, Keyword{Name: optStr(km, "arg"), Value: d.reqExpr(km, "value", kp)})
	}
	return out
}

func (d *decoder) aliases(m object, path string) []Alias {
	items := d.list(m, "names", path)
	out := make([]Alias, 0, len(items))
	for i, item := range items {
		ap := fmt.Sprintf("%s.names[%d]", path, i)
		am := d.object(item, ap)
		if am == nil {
			continue
		}
		out = append(out, Alias{Name: d.str(am, "name", ap), AsName: optStr(am, "asname")})
	}
	return out
}

// opName reads an operator node such as {"_type": "Add"}
func (d *decoder) opName(v interface{}, path string) string {
	if s, ok := v.(string); ok {
		return s
	}
	m := d.object(v, path)
	if m == nil {
		return ""
	}
	return d.typeOf(m, path)
}

func (d *decoder) operator(m object, path string) Operator {
	name := d.opName(m["op"], path+".op")
	op, ok := operators[name]
	if !ok && d.err == nil {
		d.fail(path, "unknown operator %q", name)
	}
	return op
}

func (d *decoder) unaryOperator(m object, path string) UnaryOperator {
	name := d.opName(m["op"], path+".op")
	op, ok := unaryOperators[name]
	if !ok && d.err == nil {
		d.fail(path, "unknown unary operator %q", name)
	}
	return op
}

func (d *decoder) boolOperator(m object, path string) BoolOperator {
	name := d.opName(m["op"], path+".op")
	op, ok := boolOperators[name]
	if !ok && d.err == nil {
		d.fail(path, "unknown boolean operator %q", name)
	}
	return op
}

func (d *decoder) cmpOperators(m object, path string) []CmpOperator {
	items := d.list(m, "ops", path)
	out := make([]CmpOperator, 0, len(items))
	for i, item := range items {
		name := d.opName(item, fmt.Sprintf("%s.ops[%d]", path, i))
		op, ok := cmpOperators[name]
		if !ok && d.err == nil {
			d.fail(path, "unknown comparison operator %q", name)
		}
		out = append(out, op)
	}
	return out
}
