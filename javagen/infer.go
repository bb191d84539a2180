package javagen

import (
	"github.com/teranos/pyjava/pyast"
)

// inferType derives the semantic type of an expression
func (e *emitter) inferType(x pyast.Expr) SemanticType {
	return e.typeOf(x).Type
}

// typeOf derives the full symbol of an expression: semantic type, Java
// spelling and, for collections, element types. Shapes it does not
// recognise are unknown.
func (e *emitter) typeOf(x pyast.Expr) Symbol {
	switch n := x.(type) {
	case *pyast.Constant:
		return e.constantType(n)

	case *pyast.Name:
		if sym, ok := e.scopes.Lookup(n.ID); ok {
			return sym
		}
		return Symbol{}

	case *pyast.BinOp:
		return e.binOpType(n)

	case *pyast.UnaryOp:
		if n.Op == pyast.Not {
			return e.scalar(TypeBool)
		}
		return e.typeOf(n.Operand)

	case *pyast.Compare, *pyast.BoolOp:
		return e.scalar(TypeBool)

	case *pyast.List:
		return e.types.symbolOf(TypeList, e.commonType(n.Elts), TypeUnknown)
	case *pyast.Tuple:
		return e.types.symbolOf(TypeList, e.commonType(n.Elts), TypeUnknown)
	case *pyast.Set:
		return e.types.symbolOf(TypeSet, e.commonType(n.Elts), TypeUnknown)
	case *pyast.Dict:
		return e.types.symbolOf(TypeMap, e.commonType(n.Values), e.commonType(n.Keys))

	case *pyast.Attribute:
		return e.attributeType(n)

	case *pyast.Subscript:
		coll := e.typeOf(n.Value)
		switch coll.Type {
		case TypeList, TypeMap:
			return e.elemSymbol(coll)
		case TypeString:
			return e.scalar(TypeString)
		}
		return Symbol{}

	case *pyast.Call:
		return e.callType(n)

	case *pyast.IfExp:
		body, orelse := e.typeOf(n.Body), e.typeOf(n.Orelse)
		switch {
		case body.Type == orelse.Type:
			return body
		case body.Type.Numeric() && orelse.Type.Numeric():
			return e.scalar(TypeFloat)
		}
		return Symbol{}

	case *pyast.JoinedStr:
		return e.scalar(TypeString)
	}
	return Symbol{}
}

func (e *emitter) scalar(t SemanticType) Symbol {
	return Symbol{Type: t, Target: e.types.Target(t)}
}

// constantType applies literal width rules: bool before int, ints outside
// 32 bits widen to long.
func (e *emitter) constantType(c *pyast.Constant) Symbol {
	switch c.Const {
	case pyast.ConstBool:
		return e.scalar(TypeBool)
	case pyast.ConstInt:
		sym := e.scalar(TypeInt)
		switch {
		case fitsInt32(c):
		case fitsInt64(c):
			sym.Target = javaLong
		default:
			sym.Target = javaBigInteger
		}
		return sym
	case pyast.ConstFloat:
		return e.scalar(TypeFloat)
	case pyast.ConstString:
		return e.scalar(TypeString)
	}
	return Symbol{}
}

func (e *emitter) binOpType(n *pyast.BinOp) Symbol {
	left, right := e.typeOf(n.Left), e.typeOf(n.Right)
	if !n.Op.Arithmetic() {
		if left.Type == TypeInt && right.Type == TypeInt {
			return left
		}
		return Symbol{}
	}
	switch {
	case left.Type == TypeFloat || right.Type == TypeFloat:
		return e.scalar(TypeFloat)
	case n.Op == pyast.Div && (left.Type == TypeInt || right.Type == TypeInt):
		return e.scalar(TypeFloat)
	case n.Op == pyast.Mult && right.Type == TypeString:
		return right
	case n.Op == pyast.Add && right.Type == TypeString:
		return right
	}
	if left.Type == TypeInt && right.Target == javaLong {
		return right
	}
	return left
}

// commonType is the shared type of every element, or unknown
func (e *emitter) commonType(elts []pyast.Expr) SemanticType {
	if len(elts) == 0 {
		return TypeUnknown
	}
	first := TypeUnknown
	for i, elt := range elts {
		if elt == nil {
			return TypeUnknown
		}
		t := e.inferType(elt)
		if i == 0 {
			first = t
			continue
		}
		if t != first {
			if t.Numeric() && first.Numeric() {
				first = TypeFloat
				continue
			}
			return TypeUnknown
		}
	}
	return first
}

// elemSymbol is the symbol of one element of a collection symbol
func (e *emitter) elemSymbol(coll Symbol) Symbol {
	if coll.ElemTarget != "" {
		return Symbol{Type: e.types.Semantic(coll.ElemTarget), Target: coll.ElemTarget}
	}
	if coll.Elem == TypeUnknown {
		return Symbol{}
	}
	return e.scalar(coll.Elem)
}

func (e *emitter) attributeType(n *pyast.Attribute) Symbol {
	if e.isSelf(n.Value) {
		if sym, ok := e.scopes.LookupMember(n.Attr); ok {
			return sym
		}
		return Symbol{}
	}
	switch e.qualifiedName(n) {
	case "math.pi", "math.e", "math.inf", "math.tau", "math.nan":
		return e.scalar(TypeFloat)
	}
	return Symbol{}
}

func (e *emitter) callType(n *pyast.Call) Symbol {
	switch fn := n.Func.(type) {
	case *pyast.Name:
		if _, bound := e.scopes.Lookup(fn.ID); bound {
			return Symbol{}
		}
		if e.classes[fn.ID] {
			return Symbol{Target: fn.ID}
		}
		if sym, ok := e.funcs[fn.ID]; ok {
			return sym
		}
		switch e.qualifiedName(fn) {
		case "random.randint", "random.randrange":
			return e.scalar(TypeInt)
		case "random.random", "random.uniform":
			return e.scalar(TypeFloat)
		}
		switch fn.ID {
		case "int", "len", "round", "ord":
			return e.scalar(TypeInt)
		case "float":
			return e.scalar(TypeFloat)
		case "str", "input", "chr", "repr":
			return e.scalar(TypeString)
		case "bool", "isinstance":
			return e.scalar(TypeBool)
		case "abs":
			if len(n.Args) == 1 {
				return e.typeOf(n.Args[0])
			}
		case "min", "max":
			if len(n.Args) == 1 {
				return e.elemSymbol(e.typeOf(n.Args[0]))
			}
			return e.types.symbolOf(e.commonType(n.Args), TypeUnknown, TypeUnknown)
		case "list", "sorted":
			if len(n.Args) == 1 {
				if arg := e.typeOf(n.Args[0]); arg.Type == TypeList || arg.Type == TypeSet {
					return e.types.symbolOf(TypeList, arg.Elem, TypeUnknown)
				}
			}
			return e.types.symbolOf(TypeList, TypeUnknown, TypeUnknown)
		case "dict":
			return e.types.symbolOf(TypeMap, TypeUnknown, TypeUnknown)
		case "set":
			return e.types.symbolOf(TypeSet, TypeUnknown, TypeUnknown)
		}

	case *pyast.Attribute:
		switch e.qualifiedName(fn) {
		case "random.randint", "random.randrange":
			return e.scalar(TypeInt)
		case "random.random", "random.uniform":
			return e.scalar(TypeFloat)
		case "random.choice":
			if len(n.Args) == 1 {
				return e.elemSymbol(e.typeOf(n.Args[0]))
			}
		case "math.sqrt", "math.pow", "math.sin", "math.cos", "math.tan", "math.log", "math.exp", "math.fabs":
			return e.scalar(TypeFloat)
		case "math.floor", "math.ceil":
			return e.scalar(TypeInt)
		}
		recv := e.typeOf(fn.Value)
		switch fn.Attr {
		case "format", "upper", "lower", "strip", "lstrip", "rstrip", "replace", "join", "title", "capitalize":
			if recv.Type == TypeString || isStringConstant(fn.Value) {
				return e.scalar(TypeString)
			}
		case "startswith", "endswith", "isdigit", "isalpha", "isspace":
			return e.scalar(TypeBool)
		case "find", "index", "count":
			return e.scalar(TypeInt)
		case "get", "pop":
			if recv.Type == TypeList || recv.Type == TypeMap {
				return e.elemSymbol(recv)
			}
		case "split":
			return e.types.symbolOf(TypeList, TypeString, TypeUnknown)
		case "keys":
			if recv.Type == TypeMap {
				return e.types.symbolOf(TypeSet, recv.Key, TypeUnknown)
			}
		case "copy":
			return recv
		}
	}
	return Symbol{}
}

// hintSymbol converts a type annotation to a symbol. Shapes it cannot read
// produce a diagnostic and the unknown type.
func (e *emitter) hintSymbol(x pyast.Expr) Symbol {
	switch n := x.(type) {
	case *pyast.Name:
		if e.classes[n.ID] {
			return Symbol{Target: n.ID}
		}
		if t := e.types.Semantic(n.ID); t != TypeUnknown {
			return e.types.symbolOf(t, TypeUnknown, TypeUnknown)
		}
		if n.ID == "object" || n.ID == "Any" {
			return Symbol{}
		}
	case *pyast.Attribute:
		return e.hintSymbol(&pyast.Name{Pos: n.Pos, ID: n.Attr})
	case *pyast.Constant:
		switch n.Const {
		case pyast.ConstNone:
			return Symbol{Target: javaVoid}
		case pyast.ConstString:
			return e.hintSymbol(&pyast.Name{Pos: n.Pos, ID: n.Str})
		}
	case *pyast.Subscript:
		outer := e.hintSymbol(n.Value)
		switch outer.Type {
		case TypeList, TypeSet:
			elem := e.hintSymbol(n.Index)
			sym := Symbol{Type: outer.Type, Elem: elem.Type}
			if elem.Type == TypeUnknown && elem.Target != "" {
				sym.ElemTarget = elem.Target
			}
			sym.Target = e.types.render(sym)
			return sym
		case TypeMap:
			if tup, ok := n.Index.(*pyast.Tuple); ok && len(tup.Elts) == 2 {
				key, val := e.hintSymbol(tup.Elts[0]), e.hintSymbol(tup.Elts[1])
				sym := Symbol{Type: TypeMap, Key: key.Type, Elem: val.Type}
				if val.Type == TypeUnknown && val.Target != "" {
					sym.ElemTarget = val.Target
				}
				sym.Target = e.types.render(sym)
				return sym
			}
		default:
			// already reported, or a class used as a generic
			return outer
		}
	}
	e.diagnose(SeverityWarning, KindTypeHint, x.Line(), "unsupported type hint %s, using %s", x.Kind(), javaObject)
	return Symbol{}
}

// javaType spells a symbol for a declaration site. Collection types pull
// in the java.util import.
func (e *emitter) javaType(sym Symbol) string {
	if sym.Type.Collection() {
		e.usesCollections = true
	}
	if sym.Target != "" {
		return sym.Target
	}
	return e.types.render(sym)
}

func isStringConstant(x pyast.Expr) bool {
	c, ok := x.(*pyast.Constant)
	return ok && c.Const == pyast.ConstString
}

func isNone(x pyast.Expr) bool {
	c, ok := x.(*pyast.Constant)
	return ok && c.Const == pyast.ConstNone
}

// constInt returns the value of an integer literal, including a negated one
func constInt(x pyast.Expr) (int64, bool) {
	switch n := x.(type) {
	case *pyast.Constant:
		if n.Const == pyast.ConstInt && n.Int != nil && n.Int.IsInt64() {
			return n.Int.Int64(), true
		}
	case *pyast.UnaryOp:
		if n.Op == pyast.USub {
			if v, ok := constInt(n.Operand); ok {
				return -v, true
			}
		}
	}
	return 0, false
}
