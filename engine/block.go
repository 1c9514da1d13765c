package engine

// Block is a compiled, executable unit of source.  Blocks are immutable once
// parsed and live in the state's block table so commands declared against
// them can be re-invoked by any later evaluation.
type Block struct {
	Stmts []Statement
	Span  Span
}

type Statement interface {
	stmtNode()
	StmtSpan() Span
}

// LetStmt binds the value of an expression to a variable on the stack.
type LetStmt struct {
	Name  string
	Value Expr
	Span  Span
}

// ReturnStmt escapes the enclosing block early, optionally with a value.
type ReturnStmt struct {
	Value Expr // may be nil
	Span  Span
}

// PipelineStmt threads data through its elements left to right.  The first
// element may be any expression; the rest are calls.
type PipelineStmt struct {
	Elements []Expr
	Span     Span
}

func (LetStmt) stmtNode()      {}
func (ReturnStmt) stmtNode()   {}
func (PipelineStmt) stmtNode() {}

func (s LetStmt) StmtSpan() Span      { return s.Span }
func (s ReturnStmt) StmtSpan() Span   { return s.Span }
func (s PipelineStmt) StmtSpan() Span { return s.Span }

type Expr interface {
	exprNode()
	ExprSpan() Span
}

type IntLit struct {
	Val  int64
	Span Span
}

type FloatLit struct {
	Val  float64
	Span Span
}

type BoolLit struct {
	Val  bool
	Span Span
}

type StringLit struct {
	Val  string
	Span Span
}

type ListLit struct {
	Items []Expr
	Span  Span
}

type VarRef struct {
	Name string
	Span Span
}

type OpKind int

const (
	OpAdd OpKind = iota
	OpSub
	OpMul
	OpDiv
)

type BinaryOp struct {
	Op       OpKind
	Lhs, Rhs Expr
	Span     Span
}

// CallExpr invokes a declared command.  The decl id was resolved against the
// working set at parse time, so calls can reference commands declared earlier
// in the same chunk.
type CallExpr struct {
	Decl  DeclId
	Head  Span
	Args  []Expr
	Named map[string]Expr
	Span  Span
}

// ExternalCall runs an operating-system command.  It is produced for the
// caret syntax ‘^name’ and for call heads that resolve to no declaration.
type ExternalCall struct {
	Name string
	Args []Expr
	Span Span
}

// SubExpr is a parenthesized subexpression.  It compiles to its own block so
// a full pipeline can appear inside parentheses; the evaluator runs it with
// empty input and collects the result into a value.
type SubExpr struct {
	Block BlockId
	Span  Span
}

func (IntLit) exprNode()       {}
func (FloatLit) exprNode()     {}
func (BoolLit) exprNode()      {}
func (StringLit) exprNode()    {}
func (ListLit) exprNode()      {}
func (VarRef) exprNode()       {}
func (BinaryOp) exprNode()     {}
func (CallExpr) exprNode()     {}
func (ExternalCall) exprNode() {}
func (SubExpr) exprNode()      {}

func (e IntLit) ExprSpan() Span       { return e.Span }
func (e FloatLit) ExprSpan() Span     { return e.Span }
func (e BoolLit) ExprSpan() Span      { return e.Span }
func (e StringLit) ExprSpan() Span    { return e.Span }
func (e ListLit) ExprSpan() Span      { return e.Span }
func (e VarRef) ExprSpan() Span       { return e.Span }
func (e BinaryOp) ExprSpan() Span     { return e.Span }
func (e CallExpr) ExprSpan() Span     { return e.Span }
func (e ExternalCall) ExprSpan() Span { return e.Span }
func (e SubExpr) ExprSpan() Span      { return e.Span }
