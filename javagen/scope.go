package javagen

import (
	"go.uber.org/zap"

	"github.com/teranos/pyjava/errors"
)

// ScopeKind classifies a lexical region
type ScopeKind int

const (
	ScopeModule ScopeKind = iota
	ScopeClass
	ScopeFunction
	ScopeLoop
	ScopeBlock
)

var scopeKindNames = [...]string{"module", "class", "function", "loop", "block"}

func (k ScopeKind) String() string {
	if int(k) < len(scopeKindNames) {
		return scopeKindNames[k]
	}
	return "unknown"
}

// ScopeID addresses a scope in the arena by creation order.
// The module scope is always 0.
type ScopeID int

// Decl is a pending variable or field declaration
type Decl struct {
	Modifiers string // "static", "" ...
	Type      string
	Name      string
	Init      string // empty for no initializer
}

// Scope is one lexical region. Scopes stay in the arena after they are
// popped so their declarations can be rendered later.
type Scope struct {
	ID     ScopeID
	Kind   ScopeKind
	Name   string
	Parent ScopeID

	symbols map[string]Symbol
	decls   []Decl
}

// Scopes is the scope stack plus the arena of every scope ever entered
type Scopes struct {
	arena []*Scope
	stack []ScopeID
	log   *zap.SugaredLogger
}

// NewScopes creates a table holding only the module scope
func NewScopes(log *zap.SugaredLogger) *Scopes {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Scopes{log: log}
	s.push(ScopeModule, "module")
	return s
}

func (s *Scopes) push(kind ScopeKind, name string) ScopeID {
	id := ScopeID(len(s.arena))
	parent := id
	if len(s.stack) > 0 {
		parent = s.stack[len(s.stack)-1]
	}
	s.arena = append(s.arena, &Scope{
		ID:      id,
		Kind:    kind,
		Name:    name,
		Parent:  parent,
		symbols: make(map[string]Symbol),
	})
	s.stack = append(s.stack, id)
	return id
}

// Enter pushes a new scope and returns its ID
func (s *Scopes) Enter(kind ScopeKind, name string) ScopeID {
	id := s.push(kind, name)
	s.log.Debugw("enter scope", "scope", int(id), "kind", kind.String(), "name", name, "depth", len(s.stack))
	return id
}

// Exit pops the innermost scope. Popping the module scope is a generator
// defect and panics with an assertion failure.
func (s *Scopes) Exit() ScopeID {
	if len(s.stack) <= 1 {
		panic(errors.AssertionFailedf("scope stack underflow: cannot exit the module scope"))
	}
	id := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.log.Debugw("exit scope", "scope", int(id), "kind", s.arena[id].Kind.String(), "decls", len(s.arena[id].decls))
	return id
}

// Scoped runs fn inside a new scope; the scope is exited on every path out
// of fn, including panics.
func (s *Scopes) Scoped(kind ScopeKind, name string, fn func(id ScopeID)) {
	id := s.Enter(kind, name)
	defer func() {
		if s.Current().ID != id {
			panic(errors.AssertionFailedf("unbalanced scope stack: exiting %d while %d is current", id, s.Current().ID))
		}
		s.Exit()
	}()
	fn(id)
}

// Depth returns the number of active scopes, module included
func (s *Scopes) Depth() int { return len(s.stack) }

// Current returns the innermost active scope
func (s *Scopes) Current() *Scope {
	return s.arena[s.stack[len(s.stack)-1]]
}

// Get returns a scope from the arena
func (s *Scopes) Get(id ScopeID) (*Scope, bool) {
	if id < 0 || int(id) >= len(s.arena) {
		return nil, false
	}
	return s.arena[id], true
}

// Nearest returns the innermost active scope of the given kind
func (s *Scopes) Nearest(kind ScopeKind) (*Scope, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if sc := s.arena[s.stack[i]]; sc.Kind == kind {
			return sc, true
		}
	}
	return nil, false
}

// InClassBody reports whether the innermost scope is a class body
func (s *Scopes) InClassBody() bool {
	return s.Current().Kind == ScopeClass
}

// Lookup finds name innermost-first. Class scopes are only searched when
// they are the innermost scope: inside a method, fields are reached through
// self, never as bare names.
func (s *Scopes) Lookup(name string) (Symbol, bool) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		sc := s.arena[s.stack[i]]
		if sc.Kind == ScopeClass && i != len(s.stack)-1 {
			continue
		}
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupMember finds a field in the nearest enclosing class scope
func (s *Scopes) LookupMember(name string) (Symbol, bool) {
	class, ok := s.Nearest(ScopeClass)
	if !ok {
		return Symbol{}, false
	}
	sym, ok := class.symbols[name]
	return sym, ok
}

// destination picks the scope a new binding is hoisted into
func (s *Scopes) destination(toClass bool) *Scope {
	if toClass {
		if class, ok := s.Nearest(ScopeClass); ok {
			return class
		}
	}
	if fn, ok := s.Nearest(ScopeFunction); ok {
		return fn
	}
	return s.arena[0]
}

// Bind records name in its destination scope: the nearest class scope when
// toClass is set, otherwise the nearest function scope, otherwise the module.
//
// When the destination is the module scope and it is the only active scope,
// the declaration belongs inline at the assignment and inline is true.
// Otherwise decl is queued on the destination unless the name is already
// bound there.
func (s *Scopes) Bind(name string, sym Symbol, decl Decl, toClass bool) (inline bool) {
	dest := s.destination(toClass)
	if _, exists := dest.symbols[name]; exists {
		return false
	}
	dest.symbols[name] = sym

	if dest.Kind == ScopeModule && len(s.stack) == 1 {
		s.log.Debugw("inline declaration", "name", name, "type", sym.Target)
		return true
	}

	decl.Name = name
	dest.decls = append(dest.decls, decl)
	s.log.Debugw("hoisted declaration", "name", name, "type", decl.Type, "scope", int(dest.ID), "kind", dest.Kind.String())
	return false
}

// Hoisting reports whether a binding made now would be queued on an
// enclosing declaration anchor rather than declared where it is made
func (s *Scopes) Hoisting() bool {
	return s.destination(false).Kind != ScopeModule || len(s.stack) > 1
}

// BindLocal binds name in the innermost scope without queuing a declaration.
// Used for parameters, loop variables and synthetic helpers whose
// declaration is written at the point of use.
func (s *Scopes) BindLocal(name string, sym Symbol) {
	s.Current().symbols[name] = sym
}

// Declarations returns a scope's pending declarations, deduplicated by
// name with first occurrence kept.
func (s *Scopes) Declarations(id ScopeID) ([]Decl, bool) {
	sc, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	seen := make(map[string]bool, len(sc.decls))
	out := make([]Decl, 0, len(sc.decls))
	for _, d := range sc.decls {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out, true
}
