// Package trie implements an immutable, copy-on-write key/value map keyed
// by byte strings. Every Put and Remove returns a new *Trie that shares
// every untouched subtree with its predecessor by reference; no existing
// node is ever mutated. Values are heterogeneous: any key may carry a
// value of any concrete type, recovered only under the type it was stored
// with.
//
// The shape of the recursion mirrors the teacher go-ethereum-style trie's
// insert/delete walk (copy the spine, share everything else), but without
// hex-nibble path compression, hashing, or backing storage: a child map
// is keyed directly by one key byte, and there is nothing to resolve
// from disk.
package trie

// Trie is a thin, immutable handle onto an optional root node. The zero
// value (and the value returned by New) represents the empty map. Two
// distinct *Trie values may legitimately point at the same root: Remove
// of an absent key does exactly that.
//
// Trie carries no mutable state of its own: once returned from New, Put,
// or Remove, the receiver is safe to keep using, and safe to share across
// goroutines, since nothing ever writes through an existing *Trie or
// *node again.
type Trie struct {
	root *node
}

// New returns the empty trie.
func New() *Trie {
	return &Trie{}
}

// rootOf returns t's root, treating a nil *Trie the same as an empty one.
func rootOf(t *Trie) *node {
	if t == nil {
		return nil
	}
	return t.root
}

// Get looks up key and, if it resolves to a value node whose stored
// payload has dynamic type T, returns that value and true. It returns the
// zero value of T and false if the key is absent, resolves to an internal
// (valueless) node, or resolves to a value stored under any type other
// than T. Get is a free function taking the trie explicitly, mirroring
// how the teacher's TryGet/tryUpdate operate on *Trie.
func Get[T any](t *Trie, key []byte) (T, bool) {
	var zero T
	n := rootOf(t)
	for _, b := range key {
		if n == nil {
			return zero, false
		}
		n = childAt(n, b)
	}
	if n == nil || !n.hasValue {
		return zero, false
	}
	v, ok := n.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Put returns a new trie in which key maps to value, replacing whatever
// value (of any type) key previously mapped to. Every off-path child of
// every node on the walk from the root to key is shared by reference with
// the receiver; at most len(key)+1 new nodes are allocated. Put is a free
// function for the same reason Get is.
func Put[T any](t *Trie, key []byte, value T) *Trie {
	return &Trie{root: put(rootOf(t), key, value)}
}

// put implements the recursive mutation step described by the design:
// terminal step replaces/creates a value node carrying value while
// keeping whatever children the current node had; non-terminal steps
// recurse on the child selected by the next key byte, then rebuild the
// current node with that one child replaced.
func put[T any](n *node, key []byte, value T) *node {
	if len(key) == 0 {
		return newValueNode(childrenOf(n), value)
	}
	b, rest := key[0], key[1:]
	newChild := put(childAt(n, b), rest, value)
	children := cloneChildren(n)
	children[b] = newChild
	return rebuildWithChildren(n, children)
}

// rebuildWithChildren reconstructs n with a new children map, preserving
// n's payload (and its type tag) verbatim if it had one. The rebuild
// never inspects or re-validates the payload's type, so a value can never
// be silently dropped while the spine above it is rebuilt for an
// unrelated key.
func rebuildWithChildren(n *node, children map[byte]*node) *node {
	if n != nil && n.hasValue {
		return newValueNode(children, n.value)
	}
	return newInternalNode(children)
}

// Remove returns a new trie in which key is absent, cleaning up any node
// left both childless and valueless along the way. The cleanup may
// cascade all the way to the root, in which case the returned trie is
// empty. If key was already absent, the returned trie shares the
// receiver's root unchanged.
func (t *Trie) Remove(key []byte) *Trie {
	newRoot, _ := remove(rootOf(t), key)
	return &Trie{root: newRoot}
}

// remove returns the replacement for n with key removed from its subtree,
// and whether anything actually changed. When nothing changed, the first
// result is n itself (or, for the already-nil case, nil) so the caller
// can share it unmodified.
func remove(n *node, key []byte) (*node, bool) {
	if n == nil {
		return nil, false
	}
	if len(key) == 0 {
		if !n.hasValue {
			return n, false
		}
		if len(n.children) == 0 {
			return nil, true
		}
		return newInternalNode(n.children), true
	}
	b, rest := key[0], key[1:]
	oldChild, present := n.children[b]
	if !present {
		return n, false
	}
	newChild, changed := remove(oldChild, rest)
	if !changed {
		return n, false
	}
	children := cloneChildren(n)
	if newChild == nil {
		delete(children, b)
	} else {
		children[b] = newChild
	}
	if len(children) == 0 && !n.hasValue {
		return nil, true
	}
	return rebuildWithChildren(n, children), true
}

// String renders the trie's structure for debugging; not part of the
// abstract contract, but useful to the CLI demonstrator.
func (t *Trie) String() string {
	root := rootOf(t)
	if root == nil {
		return "(empty)\n"
	}
	return root.dump("")
}
