package javagen

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/teranos/pyjava/pyast"
)

// funcCtx is the function currently being emitted
type funcCtx struct {
	name string
	// key is the return-type placeholder key; hasRef is false when the
	// return type came from a hint or the function is a constructor
	key    ScopeID
	hasRef bool
	// floatSeen pins the return type to double once any float is returned
	floatSeen bool
	// declared is the hinted return type, used as assignment context
	declared Symbol
	// self is the receiver parameter name of an instance method
	self string
}

// loopCtx tracks the break flag of a for/else loop; flag is empty when the
// loop has no else block
type loopCtx struct {
	flag string
}

// emitter holds the mutable state of one Generate call
type emitter struct {
	opts   Options
	feat   features
	types  TypeTable
	idioms idiomTable
	log    *zap.SugaredLogger

	scopes *Scopes
	buf    Buffer
	indent int

	// pending move-ups collected while emitting expressions, attached to
	// the next emitted line
	pending []Segment

	returns map[ScopeID]string
	retKeys map[ScopeID]bool

	fn    *funcCtx
	loops []loopCtx
	// ctx is the assignment context type for / and **
	ctx SemanticType

	classes map[string]bool
	funcs   map[string]Symbol
	imports map[string]string

	usesCollections bool
	first           bool
	seq             int
	diags           []Diagnostic
}

func newEmitter(opts Options, feat features, idioms idiomTable, log *zap.SugaredLogger) *emitter {
	return &emitter{
		opts:    opts,
		feat:    feat,
		types:   NewTypeTable(),
		idioms:  idioms,
		log:     log,
		scopes:  NewScopes(log),
		returns: make(map[ScopeID]string),
		retKeys: make(map[ScopeID]bool),
		classes: make(map[string]bool),
		funcs:   make(map[string]Symbol),
		imports: make(map[string]string),
	}
}

// line emits one line at the current indentation; pending move-ups are
// attached in front so the patch engine lifts them above it.
func (e *emitter) line(segs ...Segment) {
	if len(e.pending) > 0 {
		segs = append(e.pending, segs...)
		e.pending = nil
	}
	e.buf.add(e.indent, segs...)
}

func (e *emitter) text(s string) {
	e.line(text(s))
}

func (e *emitter) blank() {
	e.buf.add(e.indent)
}

// anchor emits the hoisted-declaration placeholder of a scope
func (e *emitter) anchor(id ScopeID) {
	e.buf.add(e.indent, scopeDecls{scope: id})
}

// capture runs fn with an empty move-up queue and returns what fn queued,
// leaving the outer queue untouched.
func (e *emitter) capture(fn func()) []Segment {
	saved := e.pending
	e.pending = nil
	fn()
	got := e.pending
	e.pending = saved
	return got
}

// moveUp queues a statement to be placed above the current line
func (e *emitter) moveUp(segs ...Segment) {
	e.pending = append(e.pending, moveUp{segments: segs})
}

// body emits statements one level deeper inside a new scope
func (e *emitter) body(kind ScopeKind, name string, stmts []pyast.Stmt, prelude func(ScopeID)) {
	e.indent++
	e.scopes.Scoped(kind, name, func(id ScopeID) {
		if prelude != nil {
			prelude(id)
		}
		e.stmts(stmts)
	})
	e.indent--
}

func (e *emitter) stmts(stmts []pyast.Stmt) {
	saved := e.first
	e.first = true
	for _, s := range stmts {
		n := len(e.buf.Lines)
		s.Accept(e)
		if len(e.buf.Lines) > n {
			e.first = false
		}
	}
	e.first = saved
}

// withContext emits x with t as the assignment context type
func (e *emitter) withContext(t SemanticType, x pyast.Expr) jexpr {
	saved := e.ctx
	e.ctx = t
	defer func() { e.ctx = saved }()
	return e.expr(x)
}

// plain emits x without an assignment context
func (e *emitter) plain(x pyast.Expr) jexpr {
	return e.withContext(TypeUnknown, x)
}

func (e *emitter) expr(x pyast.Expr) jexpr {
	return pyast.VisitExpr[jexpr](e, x)
}

// fresh returns a unique synthetic identifier
func (e *emitter) fresh(prefix string) string {
	e.seq++
	return prefix + strconv.Itoa(e.seq)
}

// isSelf reports whether x names the receiver of the current method
func (e *emitter) isSelf(x pyast.Expr) bool {
	n, ok := x.(*pyast.Name)
	if !ok {
		return false
	}
	if e.fn != nil && e.fn.self != "" {
		return n.ID == e.fn.self
	}
	return n.ID == "self"
}

// qualifiedName resolves a name or module attribute through the imports,
// so `from random import randint` makes randint read as random.randint.
// Names bound as variables resolve to "", except the synthetic random and
// scanner helpers, which keep reading as their modules.
func (e *emitter) qualifiedName(x pyast.Expr) string {
	switch n := x.(type) {
	case *pyast.Name:
		if sym, bound := e.scopes.Lookup(n.ID); bound && !synthetic(sym) {
			return ""
		}
		if q, ok := e.imports[n.ID]; ok {
			return q
		}
		return n.ID
	case *pyast.Attribute:
		if base := e.qualifiedName(n.Value); base != "" {
			return base + "." + n.Attr
		}
	}
	return ""
}

func synthetic(sym Symbol) bool {
	return sym.Target == javaRandom || sym.Target == javaScanner
}

// collectClasses records every class name before emission so calls and
// hints can refer to classes defined later in the file
func (e *emitter) collectClasses(body []pyast.Stmt) {
	pyast.Walk(body, func(s pyast.Stmt) bool {
		if c, ok := s.(*pyast.ClassDef); ok {
			e.classes[c.Name] = true
		}
		return true
	})
}

var (
	_ pyast.StmtVisitor        = (*emitter)(nil)
	_ pyast.ExprVisitor[jexpr] = (*emitter)(nil)
)
