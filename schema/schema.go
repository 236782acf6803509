// Package schema declares the reactive state cells a toolbar instance runs
// on: typed named values with a scope, registered up front and mutated only
// through the type-checked write API.
package schema

import (
	"errors"
	"fmt"
)

// Kind is the runtime type of a cell value.
type Kind int

const (
	Bool Kind = iota
	Number
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Scope controls a cell's relationship to the shared namespace. Local cells
// are instance-owned: they broadcast under the instance prefix and never
// accept inbound writes. Shared cells additionally track the page-wide key
// bearing their bare name, so an external control can write them.
type Scope int

const (
	Local Scope = iota
	Shared
)

var (
	ErrDuplicateCell = errors.New("schema: duplicate cell name")
	ErrTypeMismatch  = errors.New("schema: value type does not match cell kind")
	ErrSealed        = errors.New("schema: registry is sealed")
	ErrUnknownCell   = errors.New("schema: cell not registered")
)

// Cell is a handle to one registered state cell. Identity is the handle
// itself; the name is only used at the shared-namespace boundary.
type Cell struct {
	name    string
	kind    Kind
	scope   Scope
	initial any
	value   any
}

func (c *Cell) Name() string { return c.name }
func (c *Cell) Kind() Kind   { return c.kind }
func (c *Cell) Scope() Scope { return c.scope }

// Read returns the current value. The concrete type is bool, float64 or
// string according to Kind.
func (c *Cell) Read() any { return c.value }

func (c *Cell) Bool() bool {
	v, _ := c.value.(bool)
	return v
}

func (c *Cell) Number() float64 {
	v, _ := c.value.(float64)
	return v
}

func (c *Cell) Str() string {
	v, _ := c.value.(string)
	return v
}

// Registry owns every cell of one toolbar instance. All cells are registered
// before Seal; a partially registered schema is never handed out.
type Registry struct {
	cells  map[string]*Cell
	order  []*Cell
	sealed bool
}

func NewRegistry() *Registry {
	return &Registry{cells: make(map[string]*Cell)}
}

// Register declares a cell. Rejects duplicate names, registration after Seal,
// and initial values that disagree with kind.
func (r *Registry) Register(name string, kind Kind, scope Scope, initial any) (*Cell, error) {
	if r.sealed {
		return nil, fmt.Errorf("%w: register %q", ErrSealed, name)
	}
	if _, ok := r.cells[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCell, name)
	}
	initial = normalize(initial)
	if !kindMatches(kind, initial) {
		return nil, fmt.Errorf("%w: cell %q declared %s, initial %T", ErrTypeMismatch, name, kind, initial)
	}
	c := &Cell{name: name, kind: kind, scope: scope, initial: initial, value: initial}
	r.cells[name] = c
	r.order = append(r.order, c)
	return c, nil
}

// Seal closes registration. Writes stay open; the cell set does not.
func (r *Registry) Seal() { r.sealed = true }

func (r *Registry) Sealed() bool { return r.sealed }

// Lookup returns the cell registered under name, or ErrUnknownCell.
func (r *Registry) Lookup(name string) (*Cell, error) {
	c, ok := r.cells[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCell, name)
	}
	return c, nil
}

// Has reports whether the given handle belongs to this registry.
func (r *Registry) Has(c *Cell) bool {
	if c == nil {
		return false
	}
	return r.cells[c.name] == c
}

// Cells returns all cells in registration order.
func (r *Registry) Cells() []*Cell {
	out := make([]*Cell, len(r.order))
	copy(out, r.order)
	return out
}

// Write commits value to the cell after a kind check. The changed return is
// false when the write would not alter the current value; callers use it to
// keep shared mirroring at-most-once per logical change.
func (r *Registry) Write(c *Cell, value any) (changed bool, err error) {
	if !r.Has(c) {
		return false, fmt.Errorf("%w: write to foreign handle", ErrUnknownCell)
	}
	value = normalize(value)
	if !kindMatches(c.kind, value) {
		return false, fmt.Errorf("%w: cell %q is %s, got %T", ErrTypeMismatch, c.name, c.kind, value)
	}
	if c.value == value {
		return false, nil
	}
	c.value = value
	return true, nil
}

// Reset restores every cell to its registered initial value.
func (r *Registry) Reset() {
	for _, c := range r.order {
		c.value = c.initial
	}
}

// normalize widens integer literals to float64 so Number cells accept the
// values Go callers naturally write.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

func kindMatches(k Kind, v any) bool {
	switch k {
	case Bool:
		_, ok := v.(bool)
		return ok
	case Number:
		_, ok := v.(float64)
		return ok
	case String:
		_, ok := v.(string)
		return ok
	}
	return false
}
