package pyast

// StmtVisitor has one method per statement kind
type StmtVisitor interface {
	VisitFunctionDef(*FunctionDef)
	VisitClassDef(*ClassDef)
	VisitReturn(*Return)
	VisitAssign(*Assign)
	VisitAugAssign(*AugAssign)
	VisitAnnAssign(*AnnAssign)
	VisitFor(*For)
	VisitWhile(*While)
	VisitIf(*If)
	VisitExprStmt(*ExprStmt)
	VisitPass(*Pass)
	VisitBreak(*Break)
	VisitContinue(*Continue)
	VisitImport(*Import)
	VisitImportFrom(*ImportFrom)
	VisitUnsupported(*Unsupported)
}

func (s *FunctionDef) Accept(v StmtVisitor) { v.VisitFunctionDef(s) }
func (s *ClassDef) Accept(v StmtVisitor)    { v.VisitClassDef(s) }
func (s *Return) Accept(v StmtVisitor)      { v.VisitReturn(s) }
func (s *Assign) Accept(v StmtVisitor)      { v.VisitAssign(s) }
func (s *AugAssign) Accept(v StmtVisitor)   { v.VisitAugAssign(s) }
func (s *AnnAssign) Accept(v StmtVisitor)   { v.VisitAnnAssign(s) }
func (s *For) Accept(v StmtVisitor)         { v.VisitFor(s) }
func (s *While) Accept(v StmtVisitor)       { v.VisitWhile(s) }
func (s *If) Accept(v StmtVisitor)          { v.VisitIf(s) }
func (s *ExprStmt) Accept(v StmtVisitor)    { v.VisitExprStmt(s) }
func (s *Pass) Accept(v StmtVisitor)        { v.VisitPass(s) }
func (s *Break) Accept(v StmtVisitor)       { v.VisitBreak(s) }
func (s *Continue) Accept(v StmtVisitor)    { v.VisitContinue(s) }
func (s *Import) Accept(v StmtVisitor)      { v.VisitImport(s) }
func (s *ImportFrom) Accept(v StmtVisitor)  { v.VisitImportFrom(s) }
func (s *Unsupported) Accept(v StmtVisitor) { v.VisitUnsupported(s) }

// ExprVisitor has one method per expression kind, each producing an R
type ExprVisitor[R any] interface {
	VisitBoolOp(*BoolOp) R
	VisitBinOp(*BinOp) R
	VisitUnaryOp(*UnaryOp) R
	VisitCompare(*Compare) R
	VisitCall(*Call) R
	VisitConstant(*Constant) R
	VisitName(*Name) R
	VisitAttribute(*Attribute) R
	VisitSubscript(*Subscript) R
	VisitList(*List) R
	VisitTuple(*Tuple) R
	VisitSet(*Set) R
	VisitDict(*Dict) R
	VisitIfExp(*IfExp) R
	VisitJoinedStr(*JoinedStr) R
	VisitFormattedValue(*FormattedValue) R
	VisitUnsupportedExpr(*UnsupportedExpr) R
}

// VisitExpr dispatches e to the matching method of v.
// A nil expression yields the zero R.
func VisitExpr[R any](v ExprVisitor[R], e Expr) R {
	switch n := e.(type) {
	case *BoolOp:
		return v.VisitBoolOp(n)
	case *BinOp:
		return v.VisitBinOp(n)
	case *UnaryOp:
		return v.VisitUnaryOp(n)
	case *Compare:
		return v.VisitCompare(n)
	case *Call:
		return v.VisitCall(n)
	case *Constant:
		return v.VisitConstant(n)
	case *Name:
		return v.VisitName(n)
	case *Attribute:
		return v.VisitAttribute(n)
	case *Subscript:
		return v.VisitSubscript(n)
	case *List:
		return v.VisitList(n)
	case *Tuple:
		return v.VisitTuple(n)
	case *Set:
		return v.VisitSet(n)
	case *Dict:
		return v.VisitDict(n)
	case *IfExp:
		return v.VisitIfExp(n)
	case *JoinedStr:
		return v.VisitJoinedStr(n)
	case *FormattedValue:
		return v.VisitFormattedValue(n)
	case *UnsupportedExpr:
		return v.VisitUnsupportedExpr(n)
	}
	var zero R
	return zero
}

// Walk calls fn for every statement in body, depth first, including nested
// function, class, loop and branch bodies. Returning false from fn skips the
// statement's children.
func Walk(body []Stmt, fn func(Stmt) bool) {
	for _, s := range body {
		if !fn(s) {
			continue
		}
		switch n := s.(type) {
		case *FunctionDef:
			Walk(n.Body, fn)
		case *ClassDef:
			Walk(n.Body, fn)
		case *For:
			Walk(n.Body, fn)
			Walk(n.Orelse, fn)
		case *While:
			Walk(n.Body, fn)
			Walk(n.Orelse, fn)
		case *If:
			Walk(n.Body, fn)
			Walk(n.Orelse, fn)
		}
	}
}
