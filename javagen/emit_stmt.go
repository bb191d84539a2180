package javagen

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/teranos/pyjava/logger"
	"github.com/teranos/pyjava/pyast"
)

func (e *emitter) module(m *pyast.Module) {
	e.collectClasses(m.Body)
	e.anchor(0)
	e.stmts(m.Body)
}

// unsupported replaces a statement with a visible comment
func (e *emitter) unsupported(kind string, line int) {
	e.diagnose(SeverityError, KindUnsupportedStatement, line, "unsupported statement %s", kind)
	e.text("// unsupported: " + kind)
}

// ---------------------------------------------------------------------------
// Definitions
// ---------------------------------------------------------------------------

func (e *emitter) VisitClassDef(s *pyast.ClassDef) {
	if !e.first {
		e.blank()
	}

	header := "public class " + s.Name
	var bases []pyast.Expr
	for _, b := range s.Bases {
		if n, ok := b.(*pyast.Name); ok && n.ID == "object" {
			continue
		}
		bases = append(bases, b)
	}
	if len(bases) > 0 {
		header += " extends " + e.plain(bases[0]).code
	}
	if len(bases) > 1 {
		e.diagnose(SeverityWarning, KindInheritance, s.Line(), "class %s: only the first of %d bases is kept", s.Name, len(bases))
	}
	for _, d := range s.Decorators {
		e.diagnose(SeverityWarning, KindUnsupportedStatement, s.Line(), "class decorator @%s dropped", decoratorName(d))
	}

	saved := e.fn
	e.fn = nil
	defer func() { e.fn = saved }()

	e.text(header + " {")
	e.body(ScopeClass, s.Name, s.Body, func(id ScopeID) { e.anchor(id) })
	e.text("}")
}

func (e *emitter) VisitFunctionDef(s *pyast.FunctionDef) {
	if !e.first {
		e.blank()
	}

	inClass := e.scopes.InClassBody()
	class := e.scopes.Current().Name
	static, receiver, classMethod := !inClass, inClass, false
	for _, d := range s.Decorators {
		switch name := decoratorName(d); name {
		case "staticmethod":
			static, receiver = true, false
		case "classmethod":
			static, receiver, classMethod = true, true, true
		default:
			e.diagnose(SeverityWarning, KindUnsupportedStatement, s.Line(), "decorator @%s on %s dropped", name, s.Name)
		}
	}
	ctor := inClass && s.Name == "__init__"

	fn := &funcCtx{name: s.Name}
	saved := e.fn
	e.fn = fn
	defer func() { e.fn = saved }()

	e.scopes.Scoped(ScopeFunction, s.Name, func(id ScopeID) {
		params := e.params(s, receiver, classMethod, fn)

		mods := "public "
		if static {
			mods += "static "
		}
		switch {
		case ctor:
			e.text("public " + class + "(" + params + ") {")
		case s.Returns != nil:
			fn.declared = e.hintSymbol(s.Returns)
			e.text(mods + e.javaType(fn.declared) + " " + s.Name + "(" + params + ") {")
		default:
			fn.key, fn.hasRef = id, true
			e.retKeys[id] = true
			e.line(text(mods), typeRef{key: id}, text(" "+s.Name+"("+params+") {"))
		}

		e.indent++
		e.anchor(id)
		e.stmts(s.Body)
		e.indent--
		e.text("}")
	})

	if inClass || ctor {
		return
	}
	switch {
	case fn.hasRef:
		if t := e.returns[fn.key]; t != "" {
			e.funcs[s.Name] = Symbol{Type: e.types.Semantic(t), Target: t}
		}
	case fn.declared.Known():
		e.funcs[s.Name] = fn.declared
	}
}

// params renders a parameter list and binds every parameter in the current
// (function) scope. The receiver of an instance or class method is dropped.
func (e *emitter) params(s *pyast.FunctionDef, receiver, classMethod bool, fn *funcCtx) string {
	args := append(s.Args.All(), s.Args.KwOnly...)
	if receiver && len(args) > 0 {
		if !classMethod {
			fn.self = args[0].Name
		}
		args = args[1:]
	}
	if len(s.Args.Defaults) > 0 {
		e.diagnose(SeverityWarning, KindDroppedArgument, s.Line(), "default values of %s dropped", s.Name)
	}

	parts := make([]string, 0, len(args)+1)
	for _, a := range args {
		var sym Symbol
		if a.Annotation != nil {
			sym = e.hintSymbol(a.Annotation)
		}
		e.scopes.BindLocal(a.Name, sym)
		parts = append(parts, e.javaType(sym)+" "+a.Name)
	}
	if s.Args.Vararg != nil {
		e.scopes.BindLocal(s.Args.Vararg.Name, Symbol{})
		parts = append(parts, "Object... "+s.Args.Vararg.Name)
	}
	if s.Args.Kwarg != nil {
		e.diagnose(SeverityWarning, KindDroppedArgument, s.Line(), "keyword arguments **%s of %s dropped", s.Args.Kwarg.Name, s.Name)
	}
	return strings.Join(parts, ", ")
}

func decoratorName(d pyast.Expr) string {
	switch n := d.(type) {
	case *pyast.Name:
		return n.ID
	case *pyast.Attribute:
		return decoratorName(n.Value) + "." + n.Attr
	case *pyast.Call:
		return decoratorName(n.Func)
	}
	return d.Kind()
}

func (e *emitter) VisitReturn(s *pyast.Return) {
	if s.Value == nil || isNone(s.Value) {
		e.text("return;")
		return
	}

	sym := e.typeOf(s.Value)
	ctx := sym.Type
	if e.fn != nil && e.fn.declared.Known() {
		ctx = e.fn.declared.Type
	}
	val := e.withContext(ctx, s.Value)
	if e.fn != nil && e.fn.hasRef {
		e.recordReturn(sym)
	}
	e.text("return " + val.code + ";")
}

// recordReturn joins a returned type into the current function's
// placeholder: any float return pins double, otherwise the last one wins.
func (e *emitter) recordReturn(sym Symbol) {
	fn := e.fn
	switch {
	case sym.Type == TypeFloat:
		fn.floatSeen = true
		e.returns[fn.key] = e.types.Target(TypeFloat)
	case fn.floatSeen:
	default:
		e.returns[fn.key] = e.javaType(sym)
	}
}

// ---------------------------------------------------------------------------
// Assignment
// ---------------------------------------------------------------------------

func (e *emitter) VisitAssign(s *pyast.Assign) {
	last := s.Targets[len(s.Targets)-1]
	e.assign(last, s.Value, nil, s.Line())
	if len(s.Targets) == 1 {
		return
	}
	switch last.(type) {
	case *pyast.Name, *pyast.Attribute, *pyast.Subscript:
	default:
		e.diagnose(SeverityWarning, KindDestructuring, s.Line(), "chained assignment through %s skipped", last.Kind())
		return
	}
	for i := len(s.Targets) - 2; i >= 0; i-- {
		e.assign(s.Targets[i], last, nil, s.Line())
	}
}

func (e *emitter) assign(target, value pyast.Expr, hint *Symbol, line int) {
	switch t := target.(type) {
	case *pyast.Name:
		e.assignName(t.ID, value, hint, line)
	case *pyast.Attribute:
		e.assignAttribute(t, value, hint)
	case *pyast.Subscript:
		e.assignSubscript(t, value)
	case *pyast.Tuple:
		e.destructure(t.Elts, value, line)
	case *pyast.List:
		e.destructure(t.Elts, value, line)
	default:
		e.unsupported("assignment to "+target.Kind(), line)
	}
}

// declType spells the declared type of a new binding. Unknown types use the
// configured policy inline and Object when hoisted; `var x = null` is not
// legal Java, so a None initializer always declares Object.
func (e *emitter) declType(sym Symbol, inline bool, value pyast.Expr) string {
	if sym.Known() {
		return e.javaType(sym)
	}
	if inline && value != nil && !isNone(value) {
		return e.feat.unknownDecl
	}
	return javaObject
}

func (e *emitter) assignName(name string, value pyast.Expr, hint *Symbol, line int) {
	sym := e.typeOf(value)
	if hint != nil {
		sym = *hint
	}

	if e.scopes.InClassBody() {
		e.classField(name, sym, value, line)
		return
	}

	if existing, ok := e.scopes.Lookup(name); ok {
		val := e.withContext(existing.Type, value)
		e.text(name + " = " + val.code + ";")
		return
	}

	val := e.withContext(sym.Type, value)
	inlineType := e.declType(sym, true, value)
	if e.scopes.Bind(name, sym, Decl{Type: e.declType(sym, false, value)}, false) {
		e.text(inlineType + " " + name + " = " + val.code + ";")
		return
	}
	e.text(name + " = " + val.code + ";")
}

// classField turns a class-body assignment into a static field
func (e *emitter) classField(name string, sym Symbol, value pyast.Expr, line int) {
	if _, exists := e.scopes.Current().symbols[name]; exists {
		e.diagnose(SeverityWarning, KindUnsupportedStatement, line, "class attribute %s reassigned in class body, keeping the first value", name)
		return
	}
	var val jexpr
	moves := e.capture(func() { val = e.withContext(sym.Type, value) })
	if len(moves) > 0 {
		e.diagnose(SeverityWarning, KindUnsupportedExpression, line, "setup statements for class attribute %s dropped", name)
	}
	e.scopes.Bind(name, sym, Decl{Modifiers: "static", Type: e.declType(sym, false, value), Init: val.code}, true)
}

func (e *emitter) assignAttribute(t *pyast.Attribute, value pyast.Expr, hint *Symbol) {
	if _, inClass := e.scopes.Nearest(ScopeClass); inClass && e.isSelf(t.Value) {
		member, ok := e.scopes.LookupMember(t.Attr)
		if !ok {
			member = e.typeOf(value)
			if hint != nil {
				member = *hint
			}
			e.scopes.Bind(t.Attr, member, Decl{Type: e.declType(member, false, value)}, true)
		}
		val := e.withContext(member.Type, value)
		e.text("this." + t.Attr + " = " + val.code + ";")
		return
	}

	val := e.withContext(e.inferType(t), value)
	target := e.plain(t)
	e.text(target.code + " = " + val.code + ";")
}

func (e *emitter) assignSubscript(t *pyast.Subscript, value pyast.Expr) {
	coll := e.typeOf(t.Value)
	val := e.withContext(coll.Elem, value)
	recv := wrap(e.plain(t.Value), precPrimary)
	switch coll.Type {
	case TypeList:
		e.text(recv + ".set(" + e.index(recv, t.Index, "size") + ", " + val.code + ");")
	case TypeMap:
		e.text(recv + ".put(" + e.plain(t.Index).code + ", " + val.code + ");")
	default:
		e.text(recv + "[" + e.plain(t.Index).code + "] = " + val.code + ";")
	}
}

// destructure expands `a, b = x, y`. A literal right-hand side assigns
// pairwise (through temporaries when a target also appears on the right);
// a known list is read by index. Other shapes cannot be resolved.
func (e *emitter) destructure(targets []pyast.Expr, value pyast.Expr, line int) {
	var values []pyast.Expr
	switch v := value.(type) {
	case *pyast.Tuple:
		values = v.Elts
	case *pyast.List:
		values = v.Elts
	}

	if values != nil {
		if len(values) != len(targets) {
			e.diagnose(SeverityWarning, KindDestructuring, line, "cannot unpack %d values into %d targets, statement skipped", len(values), len(targets))
			return
		}
		if overlaps(targets, values) {
			values = e.temporaries(values)
		}
		for i := range targets {
			e.assign(targets[i], values[i], nil, line)
		}
		return
	}

	if e.inferType(value) == TypeList && isSimple(value) {
		for i, t := range targets {
			idx := &pyast.Constant{Const: pyast.ConstInt, Int: big.NewInt(int64(i))}
			e.assign(t, &pyast.Subscript{Value: value, Index: idx}, nil, line)
		}
		return
	}

	e.diagnose(SeverityWarning, KindDestructuring, line, "cannot resolve destructuring of %s", value.Kind())
	for _, t := range targets {
		attr, ok := t.(*pyast.Attribute)
		if !ok {
			continue
		}
		if _, inClass := e.scopes.Nearest(ScopeClass); inClass && e.isSelf(attr.Value) {
			if _, ok := e.scopes.LookupMember(attr.Attr); !ok {
				e.scopes.Bind(attr.Attr, Symbol{}, Decl{Type: javaObject}, true)
			}
			e.text("this." + attr.Attr + " = " + unsupported + ";")
			continue
		}
		e.text(e.plain(attr).code + " = " + unsupported + ";")
	}
}

// temporaries evaluates every value into a fresh local first
func (e *emitter) temporaries(values []pyast.Expr) []pyast.Expr {
	out := make([]pyast.Expr, len(values))
	for i, v := range values {
		name := e.fresh("tmp")
		sym := e.typeOf(v)
		val := e.withContext(sym.Type, v)
		e.text(e.declType(sym, true, v) + " " + name + " = " + val.code + ";")
		e.scopes.BindLocal(name, sym)
		out[i] = &pyast.Name{ID: name}
	}
	return out
}

// overlaps reports whether any target name or attribute is read on the right
func overlaps(targets, values []pyast.Expr) bool {
	names := make(map[string]bool, len(targets))
	for _, t := range targets {
		switch n := t.(type) {
		case *pyast.Name:
			names[n.ID] = true
		case *pyast.Attribute:
			names["."+n.Attr] = true
		}
	}
	for _, v := range values {
		if mentions(v, names) {
			return true
		}
	}
	return false
}

func mentions(x pyast.Expr, names map[string]bool) bool {
	switch n := x.(type) {
	case *pyast.Name:
		return names[n.ID]
	case *pyast.Attribute:
		return names["."+n.Attr] || mentions(n.Value, names)
	case *pyast.BinOp:
		return mentions(n.Left, names) || mentions(n.Right, names)
	case *pyast.UnaryOp:
		return mentions(n.Operand, names)
	case *pyast.Subscript:
		return mentions(n.Value, names) || mentions(n.Index, names)
	case *pyast.Call:
		if mentions(n.Func, names) {
			return true
		}
		for _, a := range n.Args {
			if mentions(a, names) {
				return true
			}
		}
	case *pyast.Tuple:
		for _, el := range n.Elts {
			if mentions(el, names) {
				return true
			}
		}
	case *pyast.List:
		for _, el := range n.Elts {
			if mentions(el, names) {
				return true
			}
		}
	}
	return false
}

// isSimple reports whether evaluating x twice is harmless
func isSimple(x pyast.Expr) bool {
	switch n := x.(type) {
	case *pyast.Name:
		return true
	case *pyast.Attribute:
		return isSimple(n.Value)
	}
	return false
}

func (e *emitter) VisitAugAssign(s *pyast.AugAssign) {
	target := e.typeOf(s.Target)
	op, _ := binaryPrec(s.Op)

	switch {
	case s.Op == pyast.Add && target.Type == TypeList:
		val := e.plain(s.Value)
		recv := wrap(e.plain(s.Target), precPrimary)
		e.text(recv + ".addAll(" + val.code + ");")
	case op != "" && isSimple(s.Target) && !(s.Op == pyast.Mult && target.Type == TypeString):
		val := e.withContext(target.Type, s.Value)
		tgt := e.plain(s.Target)
		e.text(tgt.code + " " + op + "= " + val.code + ";")
	default:
		e.assign(s.Target, &pyast.BinOp{Pos: s.Pos, Left: s.Target, Op: s.Op, Right: s.Value}, nil, s.Line())
	}
}

func (e *emitter) VisitAnnAssign(s *pyast.AnnAssign) {
	hint := e.hintSymbol(s.Annotation)
	if s.Value != nil {
		e.assign(s.Target, s.Value, &hint, s.Line())
		return
	}

	typ := e.javaType(hint)
	switch t := s.Target.(type) {
	case *pyast.Name:
		if e.scopes.InClassBody() {
			e.scopes.Bind(t.ID, hint, Decl{Type: typ}, true)
			return
		}
		if _, ok := e.scopes.Lookup(t.ID); ok {
			return
		}
		if e.scopes.Bind(t.ID, hint, Decl{Type: typ}, false) {
			e.text(typ + " " + t.ID + ";")
		}
	case *pyast.Attribute:
		if _, inClass := e.scopes.Nearest(ScopeClass); inClass && e.isSelf(t.Value) {
			e.scopes.Bind(t.Attr, hint, Decl{Type: typ}, true)
		}
	}
}

// ---------------------------------------------------------------------------
// Control flow
// ---------------------------------------------------------------------------

func (e *emitter) VisitIf(s *pyast.If) {
	if isMainGuard(s.Test) {
		e.mainMethod(s)
		return
	}
	cond := e.condition(s.Test)
	e.text("if (" + cond.code + ") {")
	e.ifTail(s)
}

// ifTail emits the body of s and its elif/else chain, closing the last
// brace. An elif whose condition needs setup statements becomes a nested
// if inside an else block so the setup lands in the right block.
func (e *emitter) ifTail(s *pyast.If) {
	e.body(ScopeBlock, "if", s.Body, nil)

	if len(s.Orelse) == 0 {
		e.text("}")
		return
	}

	if elif, ok := s.Orelse[0].(*pyast.If); ok && len(s.Orelse) == 1 && !isMainGuard(elif.Test) {
		e.scopes.Scoped(ScopeBlock, "else", func(ScopeID) {
			var cond jexpr
			moves := e.capture(func() { cond = e.condition(elif.Test) })
			if len(moves) == 0 {
				e.text("} else if (" + cond.code + ") {")
				e.ifTail(elif)
				return
			}
			e.text("} else {")
			e.indent++
			e.pending = append(e.pending, moves...)
			e.text("if (" + cond.code + ") {")
			e.ifTail(elif)
			e.indent--
			e.text("}")
		})
		return
	}

	e.text("} else {")
	e.body(ScopeBlock, "else", s.Orelse, nil)
	e.text("}")
}

// isMainGuard matches `if __name__ == "__main__":` in either operand order
func isMainGuard(test pyast.Expr) bool {
	cmp, ok := test.(*pyast.Compare)
	if !ok || len(cmp.Ops) != 1 || cmp.Ops[0] != pyast.Eq {
		return false
	}
	match := func(a, b pyast.Expr) bool {
		n, ok := a.(*pyast.Name)
		c, cok := b.(*pyast.Constant)
		return ok && cok && n.ID == "__name__" && c.Const == pyast.ConstString && c.Str == "__main__"
	}
	return match(cmp.Left, cmp.Comparators[0]) || match(cmp.Comparators[0], cmp.Left)
}

func (e *emitter) mainMethod(s *pyast.If) {
	if !e.first {
		e.blank()
	}
	saved := e.fn
	e.fn = &funcCtx{name: "main"}
	defer func() { e.fn = saved }()

	e.text("public static void main(String[] args) {")
	e.body(ScopeFunction, "main", s.Body, func(id ScopeID) { e.anchor(id) })
	e.text("}")
	if len(s.Orelse) > 0 {
		e.diagnose(SeverityWarning, KindUnsupportedStatement, s.Line(), "else branch of the main guard dropped")
	}
}

func (e *emitter) VisitWhile(s *pyast.While) {
	e.unsupported(s.Kind(), s.Line())
}

func (e *emitter) VisitFor(s *pyast.For) {
	flag := ""
	if len(s.Orelse) > 0 {
		flag = e.fresh("loopBroke")
		if e.scopes.Bind(flag, e.scalar(TypeBool), Decl{Type: "boolean"}, false) {
			e.text("boolean " + flag + " = false;")
		} else {
			e.text(flag + " = false;")
		}
	}

	e.loops = append(e.loops, loopCtx{flag: flag})
	e.forLoop(e.shapeOf(s), s)
	e.loops = e.loops[:len(e.loops)-1]

	if flag != "" {
		e.text("if (!" + flag + ") {")
		e.body(ScopeBlock, "else", s.Orelse, nil)
		e.text("}")
	}
}

type loopKind int

const (
	loopUnsupported loopKind = iota
	loopElements
	loopRange
	loopEnumerate
	loopItems
)

// forShape is the normalised form of a for loop. range, enumerate and
// items loops are recognised here so the tree itself is never rewritten.
type forShape struct {
	kind loopKind
	// counter is the index variable of range and enumerate loops; it is
	// the key variable of items loops
	counter string
	// elem is the element variable of enumerate, items and element loops
	elem              string
	start, stop, step pyast.Expr
	iter              pyast.Expr
}

var zero = &pyast.Constant{Const: pyast.ConstInt, Int: big.NewInt(0)}

func (e *emitter) shapeOf(s *pyast.For) forShape {
	if call, ok := s.Iter.(*pyast.Call); ok && len(call.Keywords) == 0 {
		switch e.qualifiedName(call.Func) {
		case "range":
			name, ok := s.Target.(*pyast.Name)
			if !ok || len(call.Args) < 1 || len(call.Args) > 3 {
				break
			}
			sh := forShape{kind: loopRange, counter: name.ID, start: zero}
			switch len(call.Args) {
			case 1:
				sh.stop = call.Args[0]
			case 2:
				sh.start, sh.stop = call.Args[0], call.Args[1]
			case 3:
				sh.start, sh.stop, sh.step = call.Args[0], call.Args[1], call.Args[2]
			}
			return sh
		case "enumerate":
			i, x, ok := pairTarget(s.Target)
			if !ok || len(call.Args) < 1 || len(call.Args) > 2 {
				break
			}
			sh := forShape{kind: loopEnumerate, counter: i, elem: x, iter: call.Args[0], start: zero}
			if len(call.Args) == 2 {
				sh.start = call.Args[1]
			}
			return sh
		}
		if attr, ok := call.Func.(*pyast.Attribute); ok && attr.Attr == "items" && len(call.Args) == 0 {
			if k, v, ok := pairTarget(s.Target); ok {
				return forShape{kind: loopItems, counter: k, elem: v, iter: attr.Value}
			}
		}
	}
	if name, ok := s.Target.(*pyast.Name); ok {
		return forShape{kind: loopElements, elem: name.ID, iter: s.Iter}
	}
	return forShape{kind: loopUnsupported}
}

func pairTarget(t pyast.Expr) (string, string, bool) {
	tup, ok := t.(*pyast.Tuple)
	if !ok || len(tup.Elts) != 2 {
		return "", "", false
	}
	a, aok := tup.Elts[0].(*pyast.Name)
	b, bok := tup.Elts[1].(*pyast.Name)
	if !aok || !bok {
		return "", "", false
	}
	return a.ID, b.ID, true
}

func (e *emitter) forLoop(sh forShape, s *pyast.For) {
	switch sh.kind {
	case loopRange:
		e.rangeLoop(sh, s.Body)
	case loopEnumerate:
		e.enumerateLoop(sh, s.Body)
	case loopItems:
		e.itemsLoop(sh, s.Body)
	case loopElements:
		e.elementLoop(sh, s.Body)
	default:
		e.unsupported(s.Kind(), s.Line())
	}
}

// counterInit binds a range or enumerate counter like an assigned name so
// it stays visible after the loop. The header only assigns it. A loop at
// the top of the module declares it on the line above.
func (e *emitter) counterInit(name, start string) string {
	if _, bound := e.scopes.Lookup(name); !bound {
		sym := e.scalar(TypeInt)
		if e.scopes.Bind(name, sym, Decl{Type: e.javaType(sym)}, false) {
			e.text(e.javaType(sym) + " " + name + ";")
		}
	}
	return name + " = " + start
}

func (e *emitter) rangeLoop(sh forShape, body []pyast.Stmt) {
	start := e.withContext(TypeInt, sh.start)
	init := e.counterInit(sh.counter, start.code)
	stop := e.plain(sh.stop)

	step, constant := int64(1), true
	if sh.step != nil {
		step, constant = constInt(sh.step)
	}
	test, update := "!=", sh.counter+"++"
	switch {
	case constant && step == 1:
	case constant && step == -1:
		update = sh.counter + "--"
	case constant && step > 0:
		test, update = "<", sh.counter+" += "+strconv.FormatInt(step, 10)
	case constant && step < 0:
		test, update = ">", sh.counter+" -= "+strconv.FormatInt(-step, 10)
	default:
		update = sh.counter + " += " + e.plain(sh.step).code
	}
	_, prec := comparePrec(pyast.NotEq)
	if test != "!=" {
		prec = precRel
	}

	e.text("for (" + init + "; " + sh.counter + " " + test + " " + wrap(stop, prec+1) + "; " + update + ") {")
	e.body(ScopeLoop, "for", body, nil)
	e.text("}")
}

func (e *emitter) enumerateLoop(sh forShape, body []pyast.Stmt) {
	coll := e.typeOf(sh.iter)
	recv := wrap(e.plain(sh.iter), precPrimary)
	size := "size"
	if coll.Type == TypeString {
		size = "length"
	}

	start := e.withContext(TypeInt, sh.start)
	offset, isConst := constInt(sh.start)
	init := e.counterInit(sh.counter, start.code)
	local := !e.scopes.Hoisting()
	stop, idx := recv+"."+size+"()", sh.counter
	if !isConst || offset != 0 {
		stop += " + " + wrap(start, precAdd+1)
		idx += " - " + wrap(start, precAdd+1)
	}

	e.text("for (" + init + "; " + sh.counter + " != " + stop + "; " + sh.counter + "++) {")
	e.body(ScopeLoop, "for", body, func(ScopeID) {
		elem := e.elemSymbol(coll)
		var read string
		switch coll.Type {
		case TypeList:
			read = recv + ".get(" + idx + ")"
		case TypeString:
			elem = e.scalar(TypeString)
			read = "String.valueOf(" + recv + ".charAt(" + idx + "))"
		default:
			read = recv + "[" + idx + "]"
		}
		e.loopVar(sh.elem, elem, read, local)
	})
	e.text("}")
}

// loopVar sets a variable at the top of a loop body. It is declared there
// only when the loop sits at the top of the module and the name is new;
// otherwise it is bound like an assigned name and only assigned.
func (e *emitter) loopVar(name string, sym Symbol, init string, local bool) {
	if _, ok := e.scopes.Lookup(name); ok {
		e.text(name + " = " + init + ";")
		return
	}
	if local {
		typ := e.feat.unknownDecl
		if sym.Known() {
			typ = e.javaType(sym)
		}
		e.scopes.BindLocal(name, sym)
		e.text(typ + " " + name + " = " + init + ";")
		return
	}
	e.scopes.Bind(name, sym, Decl{Type: e.declType(sym, false, nil)}, false)
	e.text(name + " = " + init + ";")
}

func (e *emitter) itemsLoop(sh forShape, body []pyast.Stmt) {
	coll := e.typeOf(sh.iter)
	recv := wrap(e.plain(sh.iter), precPrimary)
	entry := e.fresh("entry")
	local := !e.scopes.Hoisting()
	e.usesCollections = true

	var entryType string
	switch {
	case coll.Type == TypeMap:
		entryType = "Map.Entry<" + e.types.Boxed(e.types.Target(coll.Key)) + ", " + e.types.Boxed(e.elemTarget(coll)) + ">"
	case e.feat.localVar:
		entryType = javaVar
	default:
		entryType = "Map.Entry<?, ?>"
	}

	e.text("for (" + entryType + " " + entry + " : " + recv + ".entrySet()) {")
	e.body(ScopeLoop, "for", body, func(ScopeID) {
		var key, val Symbol
		if coll.Type == TypeMap {
			if coll.Key != TypeUnknown {
				key = e.scalar(coll.Key)
			}
			val = e.elemSymbol(coll)
		}
		e.loopVar(sh.counter, key, entry+".getKey()", local)
		e.loopVar(sh.elem, val, entry+".getValue()", local)
	})
	e.text("}")
}

// elemTarget spells the element type of a collection symbol
func (e *emitter) elemTarget(coll Symbol) string {
	if coll.ElemTarget != "" {
		return coll.ElemTarget
	}
	return e.types.Target(coll.Elem)
}

func (e *emitter) elementLoop(sh forShape, body []pyast.Stmt) {
	coll := e.typeOf(sh.iter)
	src := e.plain(sh.iter)
	iter := src.code

	var elem Symbol
	switch coll.Type {
	case TypeString:
		elem = e.scalar(TypeString)
		iter = wrap(src, precPrimary) + ".split(\"\")"
	case TypeMap:
		if coll.Key != TypeUnknown {
			elem = e.scalar(coll.Key)
		}
		iter = wrap(src, precPrimary) + ".keySet()"
	case TypeList, TypeSet:
		elem = e.elemSymbol(coll)
	}
	typ := e.feat.unknownDecl
	if elem.Known() {
		typ = e.javaType(elem)
	}

	// A name that is already bound, or that a later assignment would
	// declare ahead of the loop, cannot be the for-each variable.
	if _, bound := e.scopes.Lookup(sh.elem); !bound && !e.scopes.Hoisting() {
		e.text("for (" + typ + " " + sh.elem + " : " + iter + ") {")
		e.body(ScopeLoop, "for", body, func(ScopeID) {
			e.scopes.BindLocal(sh.elem, elem)
		})
		e.text("}")
		return
	}

	tmp := e.fresh(sh.elem)
	e.text("for (" + typ + " " + tmp + " : " + iter + ") {")
	e.body(ScopeLoop, "for", body, func(ScopeID) {
		e.scopes.BindLocal(tmp, elem)
		e.loopVar(sh.elem, elem, tmp, false)
	})
	e.text("}")
}

func (e *emitter) VisitBreak(s *pyast.Break) {
	if n := len(e.loops); n > 0 && e.loops[n-1].flag != "" {
		e.text(e.loops[n-1].flag + " = true;")
	}
	e.text("break;")
}

func (e *emitter) VisitContinue(*pyast.Continue) {
	e.text("continue;")
}

func (e *emitter) VisitPass(*pyast.Pass) {}

// ---------------------------------------------------------------------------
// Expressions as statements, imports
// ---------------------------------------------------------------------------

func (e *emitter) VisitExprStmt(s *pyast.ExprStmt) {
	if c, ok := s.Value.(*pyast.Constant); ok && c.Const == pyast.ConstString {
		e.docstring(c.Str)
		return
	}
	e.text(e.plain(s.Value).code + ";")
}

// docstring renders a bare string statement as a Javadoc block
func (e *emitter) docstring(doc string) {
	lines := strings.Split(strings.TrimSpace(doc), "\n")
	margin := -1
	for _, l := range lines[1:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if n := len(l) - len(strings.TrimLeft(l, " \t")); margin < 0 || n < margin {
			margin = n
		}
	}

	e.text("/**")
	for i, l := range lines {
		if i > 0 && margin > 0 && len(l) >= margin {
			l = l[margin:]
		}
		l = strings.ReplaceAll(strings.TrimRight(l, " \t"), "*/", "* /")
		if l == "" {
			e.text(" *")
			continue
		}
		e.text(" * " + l)
	}
	e.text(" */")
}

func (e *emitter) VisitImport(s *pyast.Import) {
	for _, a := range s.Names {
		if a.AsName != "" {
			e.imports[a.AsName] = a.Name
			continue
		}
		top, _, _ := strings.Cut(a.Name, ".")
		e.imports[top] = top
	}
	e.log.Debugw("import", logger.FieldCount, len(s.Names), logger.FieldLine, s.Line())
}

func (e *emitter) VisitImportFrom(s *pyast.ImportFrom) {
	for _, a := range s.Names {
		if a.Name == "*" {
			continue
		}
		local := a.Name
		if a.AsName != "" {
			local = a.AsName
		}
		e.imports[local] = s.Module + "." + a.Name
	}
	e.log.Debugw("import from", logger.FieldName, s.Module, logger.FieldCount, len(s.Names), logger.FieldLine, s.Line())
}

func (e *emitter) VisitUnsupported(s *pyast.Unsupported) {
	e.unsupported(s.Type, s.Line())
}
