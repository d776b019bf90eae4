package trie

import (
	"fmt"
	"sort"
	"strings"
)

// node is the single representation used by cowtrie for both internal and
// value vertices. The teacher's shortNode/fullNode/valueNode split
// collapses into one type: keys here are consumed one byte at a time, so
// there is no hex-nibble path compression, and payloads carry their own
// type tag for free via the `any` box.
//
// A node is immutable once constructed. Every mutation produces a new
// node; children maps are only ever copied-then-modified, never mutated
// in place, so any map reachable from a previously returned *Trie stays
// exactly as it was.
type node struct {
	children map[byte]*node
	value    any
	hasValue bool
}

// newValueNode builds a value node carrying payload for the given children
// set. children may be nil or empty: a value node needs no children.
func newValueNode(children map[byte]*node, payload any) *node {
	return &node{children: children, value: payload, hasValue: true}
}

// newInternalNode builds an internal node. Callers must only call this
// with a non-empty children map; an internal node with no children
// violates the no-orphan-internals invariant and must instead collapse to
// nil.
func newInternalNode(children map[byte]*node) *node {
	return &node{children: children}
}

// childrenOf returns n's child map, or nil if n itself is nil. It never
// allocates and the returned map must not be mutated by the caller.
func childrenOf(n *node) map[byte]*node {
	if n == nil {
		return nil
	}
	return n.children
}

// childAt returns the child of n indexed by b, or nil if absent or n is nil.
func childAt(n *node, b byte) *node {
	c := childrenOf(n)
	if c == nil {
		return nil
	}
	return c[b]
}

// cloneChildren returns a fresh map containing a shallow copy of n's
// children. The *node pointers themselves are shared, not deep-copied,
// which is what gives cowtrie its structural sharing. The caller is free
// to add or remove one entry in the result without touching n.
func cloneChildren(n *node) map[byte]*node {
	src := childrenOf(n)
	dst := make(map[byte]*node, len(src)+1)
	for b, child := range src {
		dst[b] = child
	}
	return dst
}

// sortedBytes returns the keys of children in ascending byte order, the
// only order in which a node's children are ever required to be walked
// (spec: "iteration order, when needed, ascending by byte value").
func sortedBytes(children map[byte]*node) []byte {
	keys := make([]byte, 0, len(children))
	for b := range children {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// dump renders n and its descendants for debugging/CLI display, in the
// spirit of the teacher's *shortNode/*fullNode fstring pretty-printers,
// but walking a byte child-map instead of a 17-ary nibble array.
func (n *node) dump(indent string) string {
	if n == nil {
		return indent + "<nil>\n"
	}
	var b strings.Builder
	if n.hasValue {
		fmt.Fprintf(&b, "%svalue(%T)=%v\n", indent, n.value, n.value)
	} else {
		fmt.Fprintf(&b, "%s(internal)\n", indent)
	}
	for _, key := range sortedBytes(n.children) {
		fmt.Fprintf(&b, "%s %02x ->\n", indent, key)
		b.WriteString(n.children[key].dump(indent + "   "))
	}
	return b.String()
}
