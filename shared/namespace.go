// Package shared mirrors committed cell writes into a page-wide key-value
// namespace so independently mounted components (a theme toggle elsewhere on
// the page, another toolbar) can observe toolbar state. Local cells stay the
// source of truth; the namespace is best-effort broadcast.
package shared

import "errors"

var ErrNotMounted = errors.New("shared: namespace not mounted")

// Namespace is an overwrite-only string-keyed store. Instances never collide
// because every key carries its writer's instance prefix, so single-writer
// discipline holds per key without locking: all writes happen on the one UI
// event turn.
type Namespace struct {
	mounted bool
	values  map[string]any
	subs    []func(patch map[string]any)
}

// NewNamespace returns a mounted, empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{mounted: true, values: make(map[string]any)}
}

// NewUnmounted returns a namespace that rejects patches until Mount is
// called. Models the host page before its signal root initializes.
func NewUnmounted() *Namespace {
	return &Namespace{values: make(map[string]any)}
}

func (n *Namespace) Mount()        { n.mounted = true }
func (n *Namespace) Mounted() bool { return n.mounted }

// Apply merges a patch into the namespace and notifies subscribers once with
// the whole patch. Returns ErrNotMounted without applying anything when the
// namespace is not ready.
func (n *Namespace) Apply(patch map[string]any) error {
	if !n.mounted {
		return ErrNotMounted
	}
	if len(patch) == 0 {
		return nil
	}
	for k, v := range patch {
		n.values[k] = v
	}
	for _, fn := range n.subs {
		fn(patch)
	}
	return nil
}

// Get returns the current value under key.
func (n *Namespace) Get(key string) (any, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Subscribe registers a patch observer. Observers run synchronously, after
// the patch has been merged.
func (n *Namespace) Subscribe(fn func(patch map[string]any)) {
	n.subs = append(n.subs, fn)
}

// Len returns the number of keys currently held.
func (n *Namespace) Len() int { return len(n.values) }
