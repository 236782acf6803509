// Package predicate builds derived, side-effect-free expressions over schema
// cells. An expression is a plain operator tree: evaluation is a synchronous
// pure function of the referenced cells, and two trees with the same shape
// over the same cells compare equal, which lets the toolbar composer share
// one visibility expression across sections with the same criteria.
package predicate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jask/inkbar/schema"
)

var ErrKindMismatch = errors.New("predicate: operand kinds disagree")

// Expr is one node of an expression tree. Eval never writes a cell.
type Expr interface {
	// Kind is the result kind of the expression.
	Kind() schema.Kind
	// Eval computes the current value (bool, float64 or string).
	Eval() any
	// Cells lists every cell the expression reads, leaves first.
	Cells() []*schema.Cell
	// String renders a normal form used for structural comparison.
	String() string
	// Check validates that every referenced cell is registered with reg and
	// that operand kinds line up. Errors here are build-time errors.
	Check(reg *schema.Registry) error
}

// Equal reports structural equality: same operator tree over the same cells.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// EvalBool evaluates a Bool expression.
func EvalBool(e Expr) bool {
	v, _ := e.Eval().(bool)
	return v
}

// EvalString evaluates a String expression.
func EvalString(e Expr) string {
	v, _ := e.Eval().(string)
	return v
}

// ---------------------------------------------------------------------------
// Leaves
// ---------------------------------------------------------------------------

type cellExpr struct{ c *schema.Cell }

// C references a cell as an expression leaf.
func C(c *schema.Cell) Expr { return cellExpr{c} }

func (e cellExpr) Kind() schema.Kind     { return e.c.Kind() }
func (e cellExpr) Eval() any             { return e.c.Read() }
func (e cellExpr) Cells() []*schema.Cell { return []*schema.Cell{e.c} }
func (e cellExpr) String() string        { return "cell:" + e.c.Name() }
func (e cellExpr) Check(reg *schema.Registry) error {
	if !reg.Has(e.c) {
		return fmt.Errorf("%w: %q", schema.ErrUnknownCell, e.c.Name())
	}
	return nil
}

type litExpr struct {
	v any
	k schema.Kind
}

// Bool is a boolean literal leaf.
func Bool(v bool) Expr { return litExpr{v, schema.Bool} }

// Num is a numeric literal leaf.
func Num(v float64) Expr { return litExpr{v, schema.Number} }

// Str is a string literal leaf.
func Str(v string) Expr { return litExpr{v, schema.String} }

func (e litExpr) Kind() schema.Kind            { return e.k }
func (e litExpr) Eval() any                    { return e.v }
func (e litExpr) Cells() []*schema.Cell        { return nil }
func (e litExpr) Check(*schema.Registry) error { return nil }

func (e litExpr) String() string {
	switch v := e.v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	}
	return fmt.Sprintf("%v", e.v)
}

// ---------------------------------------------------------------------------
// Boolean algebra
// ---------------------------------------------------------------------------

type naryExpr struct {
	op string // "and" | "or"
	xs []Expr
}

// And is true when every operand is true.
func And(xs ...Expr) Expr { return &naryExpr{"and", xs} }

// Or is true when any operand is true.
func Or(xs ...Expr) Expr { return &naryExpr{"or", xs} }

func (e *naryExpr) Kind() schema.Kind { return schema.Bool }

func (e *naryExpr) Eval() any {
	for _, x := range e.xs {
		v := EvalBool(x)
		if e.op == "and" && !v {
			return false
		}
		if e.op == "or" && v {
			return true
		}
	}
	return e.op == "and"
}

func (e *naryExpr) Cells() []*schema.Cell {
	var out []*schema.Cell
	for _, x := range e.xs {
		out = append(out, x.Cells()...)
	}
	return out
}

func (e *naryExpr) String() string {
	parts := make([]string, len(e.xs))
	for i, x := range e.xs {
		parts[i] = x.String()
	}
	return e.op + "(" + strings.Join(parts, ",") + ")"
}

func (e *naryExpr) Check(reg *schema.Registry) error {
	for _, x := range e.xs {
		if err := x.Check(reg); err != nil {
			return err
		}
		if x.Kind() != schema.Bool {
			return fmt.Errorf("%w: %s operand %s is %s, want bool", ErrKindMismatch, e.op, x, x.Kind())
		}
	}
	return nil
}

type notExpr struct{ x Expr }

// Not negates a boolean expression.
func Not(x Expr) Expr { return &notExpr{x} }

func (e *notExpr) Kind() schema.Kind     { return schema.Bool }
func (e *notExpr) Eval() any             { return !EvalBool(e.x) }
func (e *notExpr) Cells() []*schema.Cell { return e.x.Cells() }
func (e *notExpr) String() string        { return "not(" + e.x.String() + ")" }

func (e *notExpr) Check(reg *schema.Registry) error {
	if err := e.x.Check(reg); err != nil {
		return err
	}
	if e.x.Kind() != schema.Bool {
		return fmt.Errorf("%w: not operand %s is %s, want bool", ErrKindMismatch, e.x, e.x.Kind())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Comparisons
// ---------------------------------------------------------------------------

type cmpExpr struct {
	op   string // "eq" "ne" "lt" "le" "gt" "ge"
	a, b Expr
}

// Eq is true when both operands evaluate equal. Operands must share a kind.
func Eq(a, b Expr) Expr { return &cmpExpr{"eq", a, b} }

// Ne is the negation of Eq.
func Ne(a, b Expr) Expr { return &cmpExpr{"ne", a, b} }

// Lt, Le, Gt, Ge compare Number operands.
func Lt(a, b Expr) Expr { return &cmpExpr{"lt", a, b} }
func Le(a, b Expr) Expr { return &cmpExpr{"le", a, b} }
func Gt(a, b Expr) Expr { return &cmpExpr{"gt", a, b} }
func Ge(a, b Expr) Expr { return &cmpExpr{"ge", a, b} }

func (e *cmpExpr) Kind() schema.Kind { return schema.Bool }

func (e *cmpExpr) Eval() any {
	switch e.op {
	case "eq":
		return e.a.Eval() == e.b.Eval()
	case "ne":
		return e.a.Eval() != e.b.Eval()
	}
	av, _ := e.a.Eval().(float64)
	bv, _ := e.b.Eval().(float64)
	switch e.op {
	case "lt":
		return av < bv
	case "le":
		return av <= bv
	case "gt":
		return av > bv
	case "ge":
		return av >= bv
	}
	return false
}

func (e *cmpExpr) Cells() []*schema.Cell {
	return append(e.a.Cells(), e.b.Cells()...)
}

func (e *cmpExpr) String() string {
	return e.op + "(" + e.a.String() + "," + e.b.String() + ")"
}

func (e *cmpExpr) Check(reg *schema.Registry) error {
	if err := e.a.Check(reg); err != nil {
		return err
	}
	if err := e.b.Check(reg); err != nil {
		return err
	}
	if e.a.Kind() != e.b.Kind() {
		return fmt.Errorf("%w: %s(%s, %s)", ErrKindMismatch, e.op, e.a.Kind(), e.b.Kind())
	}
	if e.op != "eq" && e.op != "ne" && e.a.Kind() != schema.Number {
		return fmt.Errorf("%w: %s needs number operands, got %s", ErrKindMismatch, e.op, e.a.Kind())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Select
// ---------------------------------------------------------------------------

type ifExpr struct {
	cond, then, els Expr
}

// If selects then when cond is true, els otherwise. Branches must share a
// kind; the result has that kind.
func If(cond, then, els Expr) Expr { return &ifExpr{cond, then, els} }

func (e *ifExpr) Kind() schema.Kind { return e.then.Kind() }

func (e *ifExpr) Eval() any {
	if EvalBool(e.cond) {
		return e.then.Eval()
	}
	return e.els.Eval()
}

func (e *ifExpr) Cells() []*schema.Cell {
	out := e.cond.Cells()
	out = append(out, e.then.Cells()...)
	return append(out, e.els.Cells()...)
}

func (e *ifExpr) String() string {
	return "if(" + e.cond.String() + "," + e.then.String() + "," + e.els.String() + ")"
}

func (e *ifExpr) Check(reg *schema.Registry) error {
	for _, x := range []Expr{e.cond, e.then, e.els} {
		if err := x.Check(reg); err != nil {
			return err
		}
	}
	if e.cond.Kind() != schema.Bool {
		return fmt.Errorf("%w: if condition is %s, want bool", ErrKindMismatch, e.cond.Kind())
	}
	if e.then.Kind() != e.els.Kind() {
		return fmt.Errorf("%w: if branches are %s and %s", ErrKindMismatch, e.then.Kind(), e.els.Kind())
	}
	return nil
}

// OneOf is sugar for x == v1 OR x == v2 OR ... over string literals.
func OneOf(x Expr, values ...string) Expr {
	xs := make([]Expr, len(values))
	for i, v := range values {
		xs[i] = Eq(x, Str(v))
	}
	return Or(xs...)
}
