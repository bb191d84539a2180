package javagen

import (
	"strings"

	"github.com/teranos/pyjava/pyast"
)

// SemanticType is a value category independent of any Java spelling
type SemanticType int

const (
	TypeUnknown SemanticType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeBool
	TypeList
	TypeSet
	TypeMap
)

var semanticNames = [...]string{"unknown", "int", "float", "string", "bool", "list", "set", "map"}

func (t SemanticType) String() string {
	if int(t) < len(semanticNames) {
		return semanticNames[t]
	}
	return "unknown"
}

// Collection reports whether t is a list, set or map
func (t SemanticType) Collection() bool {
	return t == TypeList || t == TypeSet || t == TypeMap
}

// Numeric reports whether t is int or float
func (t SemanticType) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Java spellings used outside the table
const (
	javaLong       = "long"
	javaBigInteger = "java.math.BigInteger"
	javaVoid       = "void"
	javaVar        = "var"
	javaObject     = "Object"
	unsupported    = "UNSUPPORTED"
)

// TypeTable maps semantic types to Java type names and back.
// It is built once and never modified.
type TypeTable struct {
	toTarget   map[SemanticType]string
	toSemantic map[string]SemanticType
	boxed      map[string]string
}

// NewTypeTable builds the fixed Python/Java type table
func NewTypeTable() TypeTable {
	t := TypeTable{
		toTarget: map[SemanticType]string{
			TypeUnknown: javaObject,
			TypeInt:     "int",
			TypeFloat:   "double",
			TypeString:  "String",
			TypeBool:    "boolean",
			TypeList:    "List",
			TypeSet:     "Set",
			TypeMap:     "Map",
		},
		toSemantic: map[string]SemanticType{
			// Java spellings
			"int": TypeInt, "long": TypeInt, "double": TypeFloat, "String": TypeString,
			"boolean": TypeBool, "List": TypeList, "Set": TypeSet, "Map": TypeMap,
			// Python spellings seen in type hints
			"float": TypeFloat, "str": TypeString, "bool": TypeBool,
			"list": TypeList, "set": TypeSet, "dict": TypeMap, "Dict": TypeMap,
		},
		boxed: map[string]string{
			"int": "Integer", "long": "Long", "double": "Double",
			"boolean": "Boolean", "char": "Character",
		},
	}
	return t
}

// Target returns the Java spelling of a semantic type; unknown maps to Object
func (t TypeTable) Target(s SemanticType) string {
	if name, ok := t.toTarget[s]; ok {
		return name
	}
	return javaObject
}

// Semantic maps a Java or Python type name back to its semantic type.
// Generic arguments are ignored: "List<Integer>" is a list.
func (t TypeTable) Semantic(name string) SemanticType {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	if s, ok := t.toSemantic[strings.TrimSpace(name)]; ok {
		return s
	}
	return TypeUnknown
}

// Boxed returns the reference type for a primitive, or name unchanged
func (t TypeTable) Boxed(name string) string {
	if b, ok := t.boxed[name]; ok {
		return b
	}
	return name
}

// Symbol is the type bound to a name. Elem and Key describe collection
// contents when known.
type Symbol struct {
	Type   SemanticType
	Target string
	Elem   SemanticType
	Key    SemanticType
	// ElemTarget overrides the element spelling (e.g. a class name)
	ElemTarget string
}

// Known reports whether the symbol carries a usable Java type
func (s Symbol) Known() bool {
	return s.Type != TypeUnknown || (s.Target != "" && s.Target != javaObject)
}

// symbolOf builds a symbol for a scalar or collection type, spelling
// collections with their element types.
func (t TypeTable) symbolOf(s SemanticType, elem, key SemanticType) Symbol {
	sym := Symbol{Type: s, Elem: elem, Key: key}
	sym.Target = t.render(sym)
	return sym
}

// render spells a symbol as a Java type, including generic arguments
func (t TypeTable) render(s Symbol) string {
	elem := t.Boxed(t.Target(s.Elem))
	if s.ElemTarget != "" {
		elem = t.Boxed(s.ElemTarget)
	}
	switch s.Type {
	case TypeList:
		return "List<" + elem + ">"
	case TypeSet:
		return "Set<" + elem + ">"
	case TypeMap:
		return "Map<" + t.Boxed(t.Target(s.Key)) + ", " + elem + ">"
	}
	return t.Target(s.Type)
}

// fitsInt32 reports whether a Python int literal fits a Java int
func fitsInt32(c *pyast.Constant) bool {
	return c.Int != nil && c.Int.IsInt64() && c.Int.Int64() >= -1<<31 && c.Int.Int64() <= 1<<31-1
}

// fitsInt64 reports whether a Python int literal fits a Java long
func fitsInt64(c *pyast.Constant) bool {
	return c.Int != nil && c.Int.IsInt64()
}
