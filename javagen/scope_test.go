package javagen

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/pyjava/errors"
)

var intSym = Symbol{Type: TypeInt, Target: "int"}

func TestBindAtModuleDepthIsInline(t *testing.T) {
	s := NewScopes(zaptest.NewLogger(t).Sugar())

	assert.True(t, s.Bind("x", intSym, Decl{Type: "int"}, false))
	assert.False(t, s.Bind("x", intSym, Decl{Type: "int"}, false), "second bind of the same name is not a declaration")

	decls, ok := s.Declarations(0)
	require.True(t, ok)
	assert.Empty(t, decls)
}

func TestBindHoistsToFunction(t *testing.T) {
	s := NewScopes(zaptest.NewLogger(t).Sugar())

	var fn ScopeID
	s.Scoped(ScopeFunction, "f", func(id ScopeID) {
		fn = id
		s.Scoped(ScopeLoop, "for", func(ScopeID) {
			assert.False(t, s.Bind("b", Symbol{Type: TypeString, Target: "String"}, Decl{Type: "String"}, false))
			assert.False(t, s.Bind("a", Symbol{Type: TypeFloat, Target: "double"}, Decl{Type: "double"}, false))
		})
		s.Bind("b", Symbol{Type: TypeString, Target: "String"}, Decl{Type: "String"}, false)

		sym, ok := s.Lookup("a")
		require.True(t, ok, "hoisted names stay visible after the loop")
		assert.Equal(t, TypeFloat, sym.Type)
	})

	decls, ok := s.Declarations(fn)
	require.True(t, ok)
	want := []Decl{{Type: "String", Name: "b"}, {Type: "double", Name: "a"}}
	if diff := deep.Equal(decls, want); diff != nil {
		t.Error(diff)
	}
}

func TestBindToClass(t *testing.T) {
	s := NewScopes(nil)

	var class ScopeID
	s.Scoped(ScopeClass, "Point", func(id ScopeID) {
		class = id
		s.Scoped(ScopeFunction, "__init__", func(ScopeID) {
			s.Bind("x", intSym, Decl{Type: "int"}, true)

			_, bare := s.Lookup("x")
			assert.False(t, bare, "fields are not visible as bare names inside methods")
			_, member := s.LookupMember("x")
			assert.True(t, member)
		})
	})

	decls, _ := s.Declarations(class)
	require.Len(t, decls, 1)
	assert.Equal(t, "x", decls[0].Name)
}

func TestLookupInnermostFirst(t *testing.T) {
	s := NewScopes(nil)
	s.BindLocal("x", intSym)
	s.Scoped(ScopeFunction, "f", func(ScopeID) {
		s.BindLocal("x", Symbol{Type: TypeString, Target: "String"})
		sym, ok := s.Lookup("x")
		require.True(t, ok)
		assert.Equal(t, TypeString, sym.Type)
	})
	sym, _ := s.Lookup("x")
	assert.Equal(t, TypeInt, sym.Type)
}

func TestScopedBalancesStack(t *testing.T) {
	s := NewScopes(nil)
	s.Scoped(ScopeFunction, "f", func(ScopeID) {
		s.Scoped(ScopeBlock, "if", func(ScopeID) {
			assert.Equal(t, 3, s.Depth())
		})
	})
	assert.Equal(t, 1, s.Depth())
}

func TestScopedDetectsUnbalancedStack(t *testing.T) {
	s := NewScopes(nil)
	err := recoverAssertion(func() {
		s.Scoped(ScopeFunction, "f", func(ScopeID) {
			s.Enter(ScopeBlock, "if")
		})
	})
	assert.True(t, errors.IsAssertionFailure(err))
}

func TestExitModuleScopeIsAssertion(t *testing.T) {
	s := NewScopes(nil)
	err := recoverAssertion(func() { s.Exit() })
	assert.True(t, errors.IsAssertionFailure(err))
}

func recoverAssertion(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestNearest(t *testing.T) {
	s := NewScopes(nil)
	s.Scoped(ScopeClass, "A", func(ScopeID) {
		s.Scoped(ScopeFunction, "m", func(fn ScopeID) {
			s.Scoped(ScopeBlock, "if", func(ScopeID) {
				got, ok := s.Nearest(ScopeFunction)
				require.True(t, ok)
				assert.Equal(t, fn, got.ID)
				assert.False(t, s.InClassBody())
			})
		})
		assert.True(t, s.InClassBody())
	})
	_, ok := s.Nearest(ScopeClass)
	assert.False(t, ok)
}
