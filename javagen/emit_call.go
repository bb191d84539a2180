package javagen

import (
	"strconv"
	"strings"

	"github.com/teranos/pyjava/pyast"
)

const (
	javaScanner = "java.util.Scanner"
	javaRandom  = "java.util.Random"
)

func (e *emitter) VisitCall(n *pyast.Call) jexpr {
	if x, ok := e.callIdiom(n); ok {
		return x
	}
	fn := e.plain(n.Func)
	return primary(wrap(fn, precPrimary) + "(" + e.args(n) + ")")
}

// args renders call arguments; keyword arguments are passed positionally
// in source order because Java has no named arguments.
func (e *emitter) args(n *pyast.Call) string {
	parts := make([]string, 0, len(n.Args)+len(n.Keywords))
	for _, a := range n.Args {
		parts = append(parts, e.plain(a).code)
	}
	if len(n.Keywords) > 0 {
		e.diagnose(SeverityWarning, KindDroppedArgument, n.Line(), "keyword names dropped from call, values passed positionally")
	}
	for _, kw := range n.Keywords {
		parts = append(parts, e.plain(kw.Value).code)
	}
	return strings.Join(parts, ", ")
}

// callIdiom rewrites the builtin, random, math and method calls that have a
// dedicated Java form
func (e *emitter) callIdiom(n *pyast.Call) (jexpr, bool) {
	if name, ok := n.Func.(*pyast.Name); ok {
		if _, user := e.funcs[name.ID]; user {
			return jexpr{}, false
		}
		if e.classes[name.ID] {
			if _, bound := e.scopes.Lookup(name.ID); !bound {
				return primary("new " + name.ID + "(" + e.args(n) + ")"), true
			}
		}
	}

	args := n.Args
	switch e.qualifiedName(n.Func) {
	case "print":
		return e.print(n), true
	case "input":
		return e.input(n), true
	case "random.randint":
		if len(args) == 2 {
			return e.randint(args[0], args[1], true), true
		}
	case "random.randrange":
		switch len(args) {
		case 1:
			e.ensureRandom()
			return primary("random.nextInt(" + e.plain(args[0]).code + ")"), true
		case 2:
			return e.randint(args[0], args[1], false), true
		}
	case "random.random":
		e.ensureRandom()
		return primary("random.nextDouble()"), true
	case "random.choice":
		if len(args) == 1 {
			e.ensureRandom()
			recv := wrap(e.plain(args[0]), precPrimary)
			return primary(recv + ".get(random.nextInt(" + recv + ".size()))"), true
		}
	case "math.floor", "math.ceil":
		if len(args) == 1 {
			fn := strings.TrimPrefix(e.qualifiedName(n.Func), "math.")
			return cast("int", primary("Math."+fn+"("+e.plain(args[0]).code+")")), true
		}
	case "len":
		if len(args) == 1 {
			size := "size"
			if e.inferType(args[0]) == TypeString {
				size = "length"
			}
			return primary(wrap(e.plain(args[0]), precPrimary) + "." + size + "()"), true
		}
	case "int", "float", "str":
		if len(args) == 1 {
			return e.conversion(e.qualifiedName(n.Func), args[0]), true
		}
		if len(args) == 2 && e.qualifiedName(n.Func) == "int" {
			return primary("Integer.parseInt(" + e.plain(args[0]).code + ", " + e.plain(args[1]).code + ")"), true
		}
	case "abs":
		if len(args) == 1 {
			return primary("Math.abs(" + e.plain(args[0]).code + ")"), true
		}
	case "round":
		if len(args) == 1 {
			return cast("int", primary("Math.round("+e.plain(args[0]).code+")")), true
		}
	case "min", "max":
		return e.minMax(e.qualifiedName(n.Func), args)
	}

	if attr, ok := n.Func.(*pyast.Attribute); ok {
		return e.methodIdiom(n, attr)
	}
	return jexpr{}, false
}

// print joins several arguments with the separator and honours end=""
func (e *emitter) print(n *pyast.Call) jexpr {
	name, _ := e.idioms.name("print")
	sep := javaQuote(" ")
	newline := true
	var end *jexpr

	for _, kw := range n.Keywords {
		switch kw.Name {
		case "sep":
			sep = wrap(e.plain(kw.Value), precAdd+1)
		case "end":
			if c, ok := kw.Value.(*pyast.Constant); ok && c.Const == pyast.ConstString {
				if c.Str == "\n" {
					continue
				}
				newline = false
				if c.Str != "" {
					v := primary(javaQuote(c.Str))
					end = &v
				}
				continue
			}
			newline = false
			v := e.plain(kw.Value)
			end = &v
		case "flush":
		default:
			e.diagnose(SeverityWarning, KindDroppedArgument, n.Line(), "print argument %s dropped", kw.Name)
		}
	}

	parts := make([]string, 0, len(n.Args))
	for i, a := range n.Args {
		min := precAdd + 1
		if i == 0 {
			min = precAdd
		}
		parts = append(parts, wrap(e.plain(a), min))
	}
	joined := strings.Join(parts, " + "+sep+" + ")
	if end != nil {
		if joined == "" {
			joined = end.code
		} else {
			joined += " + " + wrap(*end, precAdd+1)
		}
	}

	if !newline && strings.HasSuffix(name, "println") {
		name = strings.TrimSuffix(name, "ln")
	}
	return primary(name + "(" + joined + ")")
}

// ensureScanner constructs the shared stdin reader once per function, or
// once for the module outside any function
func (e *emitter) ensureScanner() {
	e.ensureShared("scanner", javaScanner, "new "+javaScanner+"(System.in)")
}

func (e *emitter) ensureRandom() {
	e.ensureShared("random", javaRandom, "new "+javaRandom+"()")
}

// ensureShared binds a helper object where a hoisted variable would go.
// The construction is queued on that scope's declaration anchor, or lifted
// above the current line for a top-level module statement.
func (e *emitter) ensureShared(name, typ, init string) {
	if _, ok := e.scopes.Lookup(name); ok {
		return
	}
	if e.scopes.Bind(name, Symbol{Target: typ}, Decl{Type: typ, Init: init}, false) {
		e.moveUp(text(typ + " " + name + " = " + init + ";"))
	}
}

// input reads a line; the prompt is printed by a statement lifted above
// the line that reads it
func (e *emitter) input(n *pyast.Call) jexpr {
	e.ensureScanner()
	if len(n.Args) > 0 {
		var prompt jexpr
		inner := e.capture(func() { prompt = e.plain(n.Args[0]) })
		e.moveUp(append(inner, text("System.out.print("+prompt.code+");"))...)
	}
	name, _ := e.idioms.name("input")
	return primary(name + "()")
}

// randint maps an inclusive (or, for randrange, exclusive) bound pair onto
// nextInt's exclusive upper bound plus an offset
func (e *emitter) randint(lo, hi pyast.Expr, inclusive bool) jexpr {
	e.ensureRandom()
	extra := int64(0)
	if inclusive {
		extra = 1
	}

	l, lok := constInt(lo)
	h, hok := constInt(hi)
	if lok && hok {
		call := primary("random.nextInt(" + strconv.FormatInt(h-l+extra, 10) + ")")
		if l == 0 {
			return call
		}
		return binary(literal(strconv.FormatInt(l, 10)), "+", precAdd, call)
	}

	low := e.plain(lo)
	span := binary(e.plain(hi), "-", precAdd, low)
	if inclusive {
		span = binary(span, "+", precAdd, primary("1"))
	}
	return binary(low, "+", precAdd, primary("random.nextInt("+span.code+")"))
}

// conversion handles int(), float() and str() with casts for numbers and
// the configured valueOf names otherwise
func (e *emitter) conversion(fn string, arg pyast.Expr) jexpr {
	t := e.inferType(arg)
	v := e.plain(arg)
	switch {
	case fn == "int" && t == TypeInt, fn == "float" && t == TypeFloat, fn == "str" && t == TypeString:
		return v
	case fn == "int" && t == TypeFloat:
		return cast("int", v)
	case fn == "float" && t == TypeInt:
		return cast("double", v)
	}
	name, _ := e.idioms.name(fn)
	return primary(name + "(" + v.code + ")")
}

func (e *emitter) minMax(fn string, args []pyast.Expr) (jexpr, bool) {
	switch len(args) {
	case 0:
		return jexpr{}, false
	case 1:
		e.usesCollections = true
		return primary("Collections." + fn + "(" + e.plain(args[0]).code + ")"), true
	}
	acc := e.plain(args[len(args)-1]).code
	for i := len(args) - 2; i >= 0; i-- {
		acc = "Math." + fn + "(" + e.plain(args[i]).code + ", " + acc + ")"
	}
	return primary(acc), true
}

// methodIdiom rewrites method calls on strings, lists and maps
func (e *emitter) methodIdiom(n *pyast.Call, attr *pyast.Attribute) (jexpr, bool) {
	if isSuperCall(attr.Value) {
		if attr.Attr == "__init__" {
			return primary("super(" + e.args(n) + ")"), true
		}
		return primary("super." + attr.Attr + "(" + e.args(n) + ")"), true
	}

	recvType := e.inferType(attr.Value)
	args := n.Args
	switch attr.Attr {
	case "format":
		c, ok := attr.Value.(*pyast.Constant)
		if !ok || c.Const != pyast.ConstString {
			break
		}
		tmpl, ok := braceTemplate(c.Str, len(args))
		if !ok {
			e.diagnose(SeverityWarning, KindUnsupportedExpression, n.Line(), "format template %q not converted", c.Str)
			break
		}
		return e.formatCall(tmpl, args, n.Keywords), true

	case "join":
		if len(args) == 1 && (recvType == TypeString || isStringConstant(attr.Value)) {
			return primary("String.join(" + e.plain(attr.Value).code + ", " + e.plain(args[0]).code + ")"), true
		}

	case "get":
		if recvType == TypeMap && len(args) == 2 {
			recv := wrap(e.plain(attr.Value), precPrimary)
			return primary(recv + ".getOrDefault(" + e.plain(args[0]).code + ", " + e.plain(args[1]).code + ")"), true
		}

	case "pop":
		recv := wrap(e.plain(attr.Value), precPrimary)
		switch {
		case recvType == TypeList && len(args) == 0:
			return primary(recv + ".remove(" + recv + ".size() - 1)"), true
		case (recvType == TypeList || recvType == TypeMap) && len(args) == 1:
			return primary(recv + ".remove(" + e.plain(args[0]).code + ")"), true
		}

	case "split":
		if recvType != TypeString {
			break
		}
		e.usesCollections = true
		recv := wrap(e.plain(attr.Value), precPrimary)
		split := recv + ".trim().split(\"\\\\s+\")"
		if len(args) == 1 {
			split = recv + ".split(java.util.regex.Pattern.quote(" + e.plain(args[0]).code + "))"
		}
		return primary("new ArrayList<>(Arrays.asList(" + split + "))"), true

	case "isdigit", "isalpha", "isspace":
		if recvType != TypeString || len(args) != 0 {
			break
		}
		pred := map[string]string{"isdigit": "isDigit", "isalpha": "isLetter", "isspace": "isWhitespace"}[attr.Attr]
		recv := wrap(e.plain(attr.Value), precPrimary)
		return jexpr{
			code: "!" + recv + ".isEmpty() && " + recv + ".chars().allMatch(Character::" + pred + ")",
			prec: precAnd,
		}, true
	}

	if renamed := e.idioms.method(attr.Attr); renamed != attr.Attr {
		recv := wrap(e.plain(attr.Value), precPrimary)
		return primary(recv + "." + renamed + "(" + e.args(n) + ")"), true
	}
	return jexpr{}, false
}

func isSuperCall(x pyast.Expr) bool {
	call, ok := x.(*pyast.Call)
	if !ok {
		return false
	}
	name, ok := call.Func.(*pyast.Name)
	return ok && name.ID == "super"
}
