package javagen

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/teranos/pyjava/pyast"
)

func (e *emitter) unsupportedExpr(kind string, line int) jexpr {
	e.diagnose(SeverityError, KindUnsupportedExpression, line, "unsupported expression %s", kind)
	return primary("/* unsupported: " + kind + " */ null")
}

// literal wraps a numeric literal; a leading minus makes it a unary expression
func literal(code string) jexpr {
	if strings.HasPrefix(code, "-") {
		return jexpr{code: code, prec: precUnary}
	}
	return primary(code)
}

// ---------------------------------------------------------------------------
// Leaves
// ---------------------------------------------------------------------------

func (e *emitter) VisitConstant(c *pyast.Constant) jexpr {
	switch c.Const {
	case pyast.ConstNone:
		return primary("null")
	case pyast.ConstBool:
		return primary(strconv.FormatBool(c.Bool))
	case pyast.ConstInt:
		s := c.Int.String()
		switch {
		case fitsInt32(c):
			return literal(s)
		case fitsInt64(c):
			return literal(s + "L")
		}
		e.diagnose(SeverityInfo, KindLiteral, c.Line(), "integer %s exceeds 64 bits, emitted as BigInteger", s)
		return primary("new " + javaBigInteger + "(\"" + s + "\")")
	case pyast.ConstFloat:
		return floatLiteral(c.Float)
	case pyast.ConstString:
		return primary(javaQuote(c.Str))
	case pyast.ConstBytes:
		e.diagnose(SeverityWarning, KindLiteral, c.Line(), "bytes literal emitted as a String")
		return primary(javaQuote(c.Str))
	}
	return e.unsupportedExpr(c.Const.String(), c.Line())
}

func floatLiteral(f float64) jexpr {
	switch {
	case math.IsInf(f, 1):
		return primary("Double.POSITIVE_INFINITY")
	case math.IsInf(f, -1):
		return primary("Double.NEGATIVE_INFINITY")
	case math.IsNaN(f):
		return primary("Double.NaN")
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return literal(s)
}

// javaQuote renders s as a Java string literal. Control and non-ASCII
// characters are written as \uXXXX escapes, surrogate pairs above the BMP.
func javaQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r >= 0x20 && r < 0x7f {
				b.WriteRune(r)
				continue
			}
			for _, u := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&b, `\u%04x`, u)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (e *emitter) VisitName(n *pyast.Name) jexpr {
	if n.ID == "self" || (e.fn != nil && e.fn.self != "" && n.ID == e.fn.self) {
		return primary("this")
	}
	if _, bound := e.scopes.Lookup(n.ID); bound {
		return primary(n.ID)
	}
	if q, ok := e.imports[n.ID]; ok {
		return primary(e.translateQualified(q))
	}
	if v, ok := e.idioms.name(n.ID); ok {
		return primary(v)
	}
	return primary(n.ID)
}

// translateQualified maps module.member through the names table
func (e *emitter) translateQualified(q string) string {
	module, rest, hasRest := strings.Cut(q, ".")
	t, ok := e.idioms.name(module)
	if !ok {
		return q
	}
	if !hasRest {
		return t
	}
	return t + "." + rest
}

func (e *emitter) VisitAttribute(n *pyast.Attribute) jexpr {
	if v, ok := e.idioms.attrs[e.qualifiedName(n)]; ok {
		return primary(v)
	}
	if e.isSelf(n.Value) {
		return primary("this." + n.Attr)
	}
	return primary(wrap(e.plain(n.Value), precPrimary) + "." + n.Attr)
}

func (e *emitter) VisitSubscript(n *pyast.Subscript) jexpr {
	if u, ok := n.Index.(*pyast.UnsupportedExpr); ok {
		return e.unsupportedExpr("Subscript("+u.Type+")", n.Line())
	}
	coll := e.typeOf(n.Value)
	recv := wrap(e.plain(n.Value), precPrimary)
	switch coll.Type {
	case TypeList:
		return primary(recv + ".get(" + e.index(recv, n.Index, "size") + ")")
	case TypeMap:
		return primary(recv + ".get(" + e.plain(n.Index).code + ")")
	case TypeString:
		return primary("String.valueOf(" + recv + ".charAt(" + e.index(recv, n.Index, "length") + "))")
	}
	return primary(recv + "[" + e.plain(n.Index).code + "]")
}

// index renders a list or string index; a negative constant counts from
// the end
func (e *emitter) index(recv string, idx pyast.Expr, size string) string {
	if v, ok := constInt(idx); ok && v < 0 {
		return recv + "." + size + "() - " + strconv.FormatInt(-v, 10)
	}
	return e.plain(idx).code
}

// ---------------------------------------------------------------------------
// Collections
// ---------------------------------------------------------------------------

func (e *emitter) elements(elts []pyast.Expr) string {
	parts := make([]string, len(elts))
	for i, el := range elts {
		parts[i] = e.plain(el).code
	}
	return strings.Join(parts, ", ")
}

// factory spells an immutable list or set of values for the target version
func (e *emitter) factory(kind string, elts []pyast.Expr) string {
	if e.feat.factories {
		return kind + ".of(" + e.elements(elts) + ")"
	}
	return "Arrays.asList(" + e.elements(elts) + ")"
}

func (e *emitter) VisitList(n *pyast.List) jexpr {
	e.usesCollections = true
	if len(n.Elts) == 0 {
		return primary("new ArrayList<>()")
	}
	return primary("new ArrayList<>(" + e.factory("List", n.Elts) + ")")
}

func (e *emitter) VisitTuple(n *pyast.Tuple) jexpr {
	e.usesCollections = true
	if len(n.Elts) == 0 && !e.feat.factories {
		return primary("Collections.emptyList()")
	}
	return primary(e.factory("List", n.Elts))
}

func (e *emitter) VisitSet(n *pyast.Set) jexpr {
	e.usesCollections = true
	return primary("new HashSet<>(" + e.factory("Set", n.Elts) + ")")
}

func (e *emitter) VisitDict(n *pyast.Dict) jexpr {
	for _, k := range n.Keys {
		if k == nil {
			return e.unsupportedExpr("Dict(**)", n.Line())
		}
	}
	e.usesCollections = true
	if len(n.Keys) == 0 {
		return primary("new HashMap<>()")
	}

	pairs := make([]string, len(n.Keys))
	for i := range n.Keys {
		k, v := e.plain(n.Keys[i]).code, e.plain(n.Values[i]).code
		switch {
		case !e.feat.factories:
			pairs[i] = "put(" + k + ", " + v + ");"
		case len(n.Keys) > 10:
			pairs[i] = "Map.entry(" + k + ", " + v + ")"
		default:
			pairs[i] = k + ", " + v
		}
	}
	switch {
	case !e.feat.factories:
		return primary("new HashMap<>() {{ " + strings.Join(pairs, " ") + " }}")
	case len(n.Keys) > 10:
		return primary("new HashMap<>(Map.ofEntries(" + strings.Join(pairs, ", ") + "))")
	}
	return primary("new HashMap<>(Map.of(" + strings.Join(pairs, ", ") + "))")
}

// ---------------------------------------------------------------------------
// Operators
// ---------------------------------------------------------------------------

func (e *emitter) VisitBinOp(n *pyast.BinOp) jexpr {
	left, right := e.typeOf(n.Left), e.typeOf(n.Right)

	switch n.Op {
	case pyast.Mod:
		if c, ok := n.Left.(*pyast.Constant); ok && c.Const == pyast.ConstString {
			return e.percentFormat(c, n.Right)
		}
	case pyast.Pow:
		call := primary("Math.pow(" + e.plain(n.Left).code + ", " + e.plain(n.Right).code + ")")
		if e.ctx == TypeInt {
			return cast("int", call)
		}
		return call
	case pyast.FloorDiv:
		if left.Type == TypeInt && right.Type == TypeInt {
			return primary("Math.floorDiv(" + e.plain(n.Left).code + ", " + e.plain(n.Right).code + ")")
		}
		quotient := binary(e.plain(n.Left), "/", precMul, e.plain(n.Right))
		return primary("Math.floor(" + quotient.code + ")")
	case pyast.Div:
		target := e.ctx
		if target != TypeInt {
			target = TypeFloat
		}
		l := e.plain(n.Left)
		if left.Type != target {
			l = cast(e.types.Target(target), l)
		}
		return binary(l, "/", precMul, e.plain(n.Right))
	case pyast.Mult:
		switch {
		case left.Type == TypeString && right.Type == TypeInt:
			return e.repeat(n.Left, n.Right)
		case left.Type == TypeInt && right.Type == TypeString:
			return e.repeat(n.Right, n.Left)
		}
	case pyast.MatMult:
		return e.unsupportedExpr("BinOp(MatMult)", n.Line())
	}

	op, prec := binaryPrec(n.Op)
	return binary(e.expr(n.Left), op, prec, e.expr(n.Right))
}

func (e *emitter) repeat(s, count pyast.Expr) jexpr {
	str := wrap(e.plain(s), precPrimary)
	if e.feat.java11 {
		return primary(str + ".repeat(" + e.plain(count).code + ")")
	}
	e.usesCollections = true
	return primary("String.join(\"\", Collections.nCopies(" + e.plain(count).code + ", " + str + "))")
}

func (e *emitter) VisitUnaryOp(n *pyast.UnaryOp) jexpr {
	switch n.Op {
	case pyast.Not:
		return e.condition(n)
	case pyast.USub:
		return unary("-", e.expr(n.Operand))
	case pyast.UAdd:
		return unary("+", e.expr(n.Operand))
	}
	return unary("~", e.expr(n.Operand))
}

func (e *emitter) VisitBoolOp(n *pyast.BoolOp) jexpr {
	return e.condition(n)
}

// condition emits x where Java needs a boolean, spelling Python
// truthiness explicitly for numbers, strings and collections.
func (e *emitter) condition(x pyast.Expr) jexpr {
	switch n := x.(type) {
	case *pyast.BoolOp:
		op, prec := "&&", precAnd
		if n.Op == pyast.Or {
			op, prec = "||", precOr
		}
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = wrap(e.condition(v), prec)
		}
		return jexpr{code: strings.Join(parts, " "+op+" "), prec: prec}
	case *pyast.UnaryOp:
		if n.Op != pyast.Not {
			break
		}
		switch t := e.inferType(n.Operand); {
		case t == TypeString || t.Collection():
			return primary(wrap(e.plain(n.Operand), precPrimary) + ".isEmpty()")
		case t.Numeric():
			return binary(e.plain(n.Operand), "==", precEq, primary("0"))
		}
		return unary("!", e.condition(n.Operand))
	}

	v := e.plain(x)
	switch t := e.inferType(x); {
	case t.Numeric():
		return binary(v, "!=", precEq, primary("0"))
	case t == TypeString || t.Collection():
		return unary("!", primary(wrap(v, precPrimary)+".isEmpty()"))
	}
	return v
}

func (e *emitter) VisitCompare(n *pyast.Compare) jexpr {
	left := n.Left
	parts := make([]jexpr, 0, len(n.Ops))
	for i, op := range n.Ops {
		right := n.Comparators[i]
		parts = append(parts, e.compare(left, op, right))
		left = right
	}
	if len(parts) == 1 {
		return parts[0]
	}
	codes := make([]string, len(parts))
	for i, p := range parts {
		codes[i] = wrap(p, precAnd)
	}
	return jexpr{code: strings.Join(codes, " && "), prec: precAnd}
}

func (e *emitter) compare(l pyast.Expr, op pyast.CmpOperator, r pyast.Expr) jexpr {
	switch op {
	case pyast.In, pyast.NotIn:
		method := "contains"
		if e.inferType(r) == TypeMap {
			method = "containsKey"
		}
		call := primary(wrap(e.plain(r), precPrimary) + "." + method + "(" + e.plain(l).code + ")")
		if op == pyast.NotIn {
			return unary("!", call)
		}
		return call

	case pyast.Eq, pyast.NotEq:
		if isNone(l) || isNone(r) {
			break
		}
		lt, rt := e.inferType(l), e.inferType(r)
		byValue := func(t SemanticType) bool { return t == TypeString || t.Collection() }
		if byValue(lt) || byValue(rt) {
			recv, arg := l, r
			if !byValue(lt) {
				recv, arg = r, l
			}
			call := primary(wrap(e.plain(recv), precPrimary) + ".equals(" + e.plain(arg).code + ")")
			if op == pyast.NotEq {
				return unary("!", call)
			}
			return call
		}

	case pyast.Lt, pyast.LtE, pyast.Gt, pyast.GtE:
		if e.inferType(l) == TypeString && e.inferType(r) == TypeString {
			sym, prec := comparePrec(op)
			cmp := primary(wrap(e.plain(l), precPrimary) + ".compareTo(" + e.plain(r).code + ")")
			return binary(cmp, sym, prec, primary("0"))
		}
	}

	sym, prec := comparePrec(op)
	return binary(e.plain(l), sym, prec, e.plain(r))
}

func (e *emitter) VisitIfExp(n *pyast.IfExp) jexpr {
	test := e.condition(n.Test)
	body := e.expr(n.Body)
	orelse := e.expr(n.Orelse)
	return jexpr{
		code: wrap(test, precTernary+1) + " ? " + wrap(body, precTernary+1) + " : " + wrap(orelse, precTernary),
		prec: precTernary,
	}
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

func (e *emitter) VisitJoinedStr(n *pyast.JoinedStr) jexpr {
	var parts []string
	leadingLiteral := false
	for i, v := range n.Values {
		switch p := v.(type) {
		case *pyast.Constant:
			if p.Const == pyast.ConstString && p.Str == "" {
				continue
			}
			if i == 0 {
				leadingLiteral = true
			}
			parts = append(parts, javaQuote(p.Str))
		case *pyast.FormattedValue:
			parts = append(parts, wrap(e.formatted(p), precAdd+1))
		default:
			parts = append(parts, wrap(e.plain(v), precAdd+1))
		}
	}
	switch {
	case len(parts) == 0:
		return primary(`""`)
	case len(parts) == 1 && leadingLiteral:
		return primary(parts[0])
	case !leadingLiteral:
		parts = append([]string{`""`}, parts...)
	}
	return jexpr{code: strings.Join(parts, " + "), prec: precAdd}
}

func (e *emitter) VisitFormattedValue(n *pyast.FormattedValue) jexpr {
	return e.formatted(n)
}

// formatted emits one f-string substitution; a format spec becomes a
// String.format call
func (e *emitter) formatted(n *pyast.FormattedValue) jexpr {
	val := e.plain(n.Value)
	if n.FormatSpec == nil {
		return val
	}

	spec, ok := constantSpec(n.FormatSpec)
	var (
		conv  byte
		flags string
	)
	if ok {
		conv, flags, ok = formatSpec(spec)
	}
	if !ok {
		e.diagnose(SeverityWarning, KindUnsupportedExpression, n.Line(), "format spec dropped from f-string substitution")
		return val
	}
	if floatConversion(conv) && e.inferType(n.Value) != TypeFloat {
		val = cast("double", val)
	}
	return primary("String.format(" + javaQuote("%"+flags+string(conv)) + ", " + val.code + ")")
}

// constantSpec flattens a format spec made only of literal parts
func constantSpec(x pyast.Expr) (string, bool) {
	switch n := x.(type) {
	case *pyast.Constant:
		return n.Str, n.Const == pyast.ConstString
	case *pyast.JoinedStr:
		var b strings.Builder
		for _, v := range n.Values {
			c, ok := v.(*pyast.Constant)
			if !ok || c.Const != pyast.ConstString {
				return "", false
			}
			b.WriteString(c.Str)
		}
		return b.String(), true
	}
	return "", false
}

func (e *emitter) percentFormat(c *pyast.Constant, rhs pyast.Expr) jexpr {
	var args []pyast.Expr
	switch r := rhs.(type) {
	case *pyast.Tuple:
		args = r.Elts
	case *pyast.Dict:
		return e.unsupportedExpr("BinOp(Mod) with mapping", c.Line())
	default:
		args = []pyast.Expr{rhs}
	}

	tmpl, ok := percentTemplate(c.Str)
	if !ok {
		e.diagnose(SeverityWarning, KindUnsupportedExpression, c.Line(), "format string %q passed through unchanged", c.Str)
		tmpl = template{format: c.Str}
	}
	return e.formatCall(tmpl, args, nil)
}

// formatCall emits String.format, casting an argument to double when a
// float conversion receives a value not inferred as float
func (e *emitter) formatCall(tmpl template, args []pyast.Expr, keywords []pyast.Keyword) jexpr {
	floatArg := make(map[int]bool)
	floatKw := make(map[string]bool)
	var names []string
	for _, ref := range tmpl.refs {
		if ref.arg >= 0 {
			floatArg[ref.arg] = floatArg[ref.arg] || floatConversion(ref.conv)
			continue
		}
		if indexOf(names, ref.name) < 0 {
			names = append(names, ref.name)
		}
		floatKw[ref.name] = floatKw[ref.name] || floatConversion(ref.conv)
	}

	emit := func(x pyast.Expr, float bool) string {
		v := e.plain(x)
		if float && e.inferType(x) != TypeFloat {
			v = cast("double", v)
		}
		return v.code
	}

	parts := []string{javaQuote(tmpl.format)}
	for i, a := range args {
		parts = append(parts, emit(a, floatArg[i]))
	}
	for _, name := range names {
		kw, ok := findKeyword(keywords, name)
		if !ok {
			e.diagnose(SeverityWarning, KindDroppedArgument, 0, "format field {%s} has no matching keyword argument", name)
			parts = append(parts, "null")
			continue
		}
		parts = append(parts, emit(kw.Value, floatKw[name]))
	}
	return primary("String.format(" + strings.Join(parts, ", ") + ")")
}

func findKeyword(kws []pyast.Keyword, name string) (pyast.Keyword, bool) {
	for _, kw := range kws {
		if kw.Name == name {
			return kw, true
		}
	}
	return pyast.Keyword{}, false
}

func (e *emitter) VisitUnsupportedExpr(n *pyast.UnsupportedExpr) jexpr {
	return e.unsupportedExpr(n.Type, n.Line())
}
