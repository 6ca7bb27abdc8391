package syntax

// Program is one checkable unit: annotations declaring the types of free
// names, a single expression, and an optional demanded result type for the
// whole expression.
type Program struct {
	Annotations []Annotation
	Expression  Expr
	Demand      TypeExpr
}

type Annotation struct {
	Name string
	Type TypeExpr
	span Span
}

func (a Annotation) Span() Span {
	return a.span
}

type Expr interface {
	Span() Span
}

type NumberExpr struct {
	Value     string
	IsInteger bool
	span      Span
}

func (e *NumberExpr) Span() Span { return e.span }

type StringExpr struct {
	Value string
	span  Span
}

func (e *StringExpr) Span() Span { return e.span }

type NameExpr struct {
	Name string
	span Span
}

func (e *NameExpr) Span() Span { return e.span }

type UnaryExpr struct {
	Operator string
	Operand  Expr
	span     Span
}

func (e *UnaryExpr) Span() Span { return e.span }

type BinaryExpr struct {
	Operator string
	Left     Expr
	Right    Expr
	span     Span
}

func (e *BinaryExpr) Span() Span { return e.span }

type CallExpr struct {
	Name     string
	NameSpan Span
	Args     []Expr
	span     Span
}

func (e *CallExpr) Span() Span { return e.span }

type ArrayExpr struct {
	Elements []Expr
	span     Span
}

func (e *ArrayExpr) Span() Span { return e.span }

type TypeExpr interface {
	Span() Span
}

// NamedTypeExpr is a capital type name applied to zero or more arguments by
// juxtaposition, e.g. `Pair Int Float`. Lowercase names are type variables.
type NamedTypeExpr struct {
	Name       string
	IsVariable bool
	Args       []TypeExpr
	span       Span
}

func (t *NamedTypeExpr) Span() Span { return t.span }

type ArrayTypeExpr struct {
	Element TypeExpr
	span    Span
}

func (t *ArrayTypeExpr) Span() Span { return t.span }
