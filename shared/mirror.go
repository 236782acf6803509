package shared

import (
	"github.com/jask/inkbar/schema"
)

// DeriveFunc recomputes derived cells after a committed write. It returns the
// new values for any cells that must stay atomically consistent with the
// written cell (for example resolved color cells after a theme change). The
// mirror commits them and folds the ones that actually changed into the same
// outgoing patch.
type DeriveFunc func(changed *schema.Cell) map[*schema.Cell]any

// Mirror is the cross-scope synchronizer for one toolbar instance. Every
// committed write is published under <prefix>_<cellName>, at most once per
// logical change: a write that does not alter the cell's value publishes
// nothing.
type Mirror struct {
	reg    *schema.Registry
	ns     *Namespace
	prefix string
	derive DeriveFunc
}

// NewMirror wires a registry to a namespace under an instance prefix. ns may
// be nil; the mirror then commits locally and publishes nothing.
func NewMirror(reg *schema.Registry, ns *Namespace, prefix string) *Mirror {
	return &Mirror{reg: reg, ns: ns, prefix: prefix}
}

// SetDerive installs the derived-cell recompute hook.
func (m *Mirror) SetDerive(fn DeriveFunc) { m.derive = fn }

// Prefix returns the instance prefix used to qualify published keys.
func (m *Mirror) Prefix() string { return m.prefix }

// Key returns the fully-qualified shared key for a cell.
func (m *Mirror) Key(c *schema.Cell) string { return m.prefix + "_" + c.Name() }

// Write commits value to the cell, recomputes dependents, then publishes one
// patch covering every cell that changed. The local commit always precedes
// the publish, and a publish failure (namespace not mounted yet) is
// swallowed: local state is authoritative and the next change retries.
func (m *Mirror) Write(c *schema.Cell, value any) error {
	changed, err := m.reg.Write(c, value)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	patch := map[string]any{m.Key(c): c.Read()}
	if m.derive != nil {
		for dc, dv := range m.derive(c) {
			dchanged, derr := m.reg.Write(dc, dv)
			if derr != nil {
				return derr
			}
			if dchanged {
				patch[m.Key(dc)] = dc.Read()
			}
		}
	}
	if m.ns != nil {
		_ = m.ns.Apply(patch)
	}
	return nil
}

// Listen applies inbound namespace patches to Shared-scope cells: a patch key
// equal to a shared cell's bare name (no instance prefix) writes that cell,
// recomputes dependents and rebroadcasts under the instance prefix. This is
// how a page-wide control (a theme toggle elsewhere on the page) drives every
// mounted instance. Local-scope cells never accept inbound writes; their only
// external channel is the outbound prefixed mirror. The rebroadcast cannot
// loop: prefixed keys never match a bare cell name.
func (m *Mirror) Listen() {
	if m.ns == nil {
		return
	}
	m.ns.Subscribe(func(patch map[string]any) {
		for _, c := range m.reg.Cells() {
			if c.Scope() != schema.Shared {
				continue
			}
			if v, ok := patch[c.Name()]; ok {
				_ = m.Write(c, v)
			}
		}
	})
}

// Publish re-broadcasts the current value of the given cells without writing
// them. Used once after construction to seed the namespace, mirroring how the
// host pre-seeds signals before the component initializes.
func (m *Mirror) Publish(cells ...*schema.Cell) {
	if m.ns == nil || len(cells) == 0 {
		return
	}
	patch := make(map[string]any, len(cells))
	for _, c := range cells {
		patch[m.Key(c)] = c.Read()
	}
	_ = m.ns.Apply(patch)
}
