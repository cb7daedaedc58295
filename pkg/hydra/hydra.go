// Package hydra implements the AND/OR tree of outstanding target
// conjunctions described in spec.md §3.4/§4.4. Each node names the set
// of target-line indices still owed a proof and a DNF of assumption
// sets already known to discharge all of them. Ported from the
// source's hydra_t (src/hydra.h, src/hydra.cpp); the shared_ptr arena
// there is replaced by a flat slice indexed by stable integer IDs
// (spec.md §9's preferred alternative to reference counting), and each
// node additionally carries a uuid.UUID purely for log correlation —
// generated per node rather than from a package-level counter, so the
// tree never needs a process-wide singleton to stay reproducible.
package hydra

import (
	"sort"

	"github.com/google/uuid"
)

// NodeID indexes a node in a Tree's arena. The root is always 0.
type NodeID int

// Join records how a node's children combine into the parent's
// obligation: AndJoin means every child must be proved (the node's
// target list was partitioned or rewritten in place), OrJoin means any
// one child proving discharges the parent (a genuine case split).
type Join int

const (
	NoJoin Join = iota
	AndJoin
	OrJoin
)

// Node is one obligation in the tree: prove every target in Targets,
// or exhibit an assumption set under which they are all already
// discharged.
type Node struct {
	ID      NodeID
	DebugID uuid.UUID

	Parent   NodeID // -1 for the root
	Children []NodeID
	Join     Join

	Targets []int   // sorted target-line indices, conjunctive
	Proved  [][]int // DNF: each entry is a sorted assumption set sufficient to close this node
}

// Tree is the arena of all nodes created during a proof attempt, plus
// the current path from the root to the live leaf the waterfall is
// working on.
type Tree struct {
	nodes []*Node
	path  []NodeID
}

// New creates a tree with a single root node owning the given targets.
func New(targets []int) *Tree {
	root := &Node{
		ID:      0,
		DebugID: uuid.New(),
		Parent:  -1,
		Targets: sortedUnique(targets),
	}
	return &Tree{nodes: []*Node{root}, path: []NodeID{0}}
}

func sortedUnique(xs []int) []int {
	set := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		set[x] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for x := range set {
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}

// Get returns the node with the given ID, or nil if out of range.
func (t *Tree) Get(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Root returns the root node's ID.
func (t *Tree) Root() NodeID { return 0 }

// CurrentLeaf returns the ID of the node at the end of the current path.
func (t *Tree) CurrentLeaf() NodeID { return t.path[len(t.path)-1] }

// Path returns the current root-to-leaf path.
func (t *Tree) Path() []NodeID {
	out := make([]NodeID, len(t.path))
	copy(out, t.path)
	return out
}

func (t *Tree) newChild(parent NodeID, targets []int) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{
		ID:      id,
		DebugID: uuid.New(),
		Parent:  parent,
		Targets: sortedUnique(targets),
	})
	p := t.Get(parent)
	p.Children = append(p.Children, id)
	return id
}

func replaceTarget(targets []int, i, j int) []int {
	out := make([]int, 0, len(targets))
	added := false
	for _, x := range targets {
		if x == i {
			if !added {
				out = append(out, j)
				added = true
			}
			continue
		}
		out = append(out, x)
	}
	if !added {
		out = append(out, j)
	}
	return sortedUnique(out)
}

func removeAndAdd(targets []int, remove []int, add int) []int {
	removeSet := make(map[int]bool, len(remove))
	for _, r := range remove {
		removeSet[r] = true
	}
	out := make([]int, 0, len(targets)+1)
	for _, x := range targets {
		if !removeSet[x] {
			out = append(out, x)
		}
	}
	out = append(out, add)
	return sortedUnique(out)
}

// VarsOfFunc maps a target-line index to the set of free variable
// names occurring in it, used to partition a target list into
// independent components.
type VarsOfFunc func(targetIndex int) map[string]struct{}

// partition groups targets into components that share no free
// variable, via union-find over the pairwise variable overlap.
func partition(targets []int, varsOf VarsOfFunc) [][]int {
	parent := make(map[int]int, len(targets))
	for _, idx := range targets {
		parent[idx] = idx
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	vars := make([]map[string]struct{}, len(targets))
	for k, idx := range targets {
		vars[k] = varsOf(idx)
	}
	for i := 0; i < len(targets); i++ {
		for j := i + 1; j < len(targets); j++ {
			if sharesVar(vars[i], vars[j]) {
				union(targets[i], targets[j])
			}
		}
	}

	groups := make(map[int][]int)
	var order []int
	for _, idx := range targets {
		root := find(idx)
		if _, ok := groups[root]; !ok {
			order = append(order, root)
		}
		groups[root] = append(groups[root], idx)
	}
	out := make([][]int, 0, len(order))
	for _, root := range order {
		out = append(out, sortedUnique(groups[root]))
	}
	return out
}

func sharesVar(a, b map[string]struct{}) bool {
	for name := range a {
		if _, ok := b[name]; ok {
			return true
		}
	}
	return false
}

// Replace performs an AND-preserving rewrite of target i to j in the
// current leaf: the obligation is restated, not branched. If varsOf
// partitions the resulting target list into independent components,
// one child per component is attached (all must be proved, AndJoin);
// the new leaf becomes the first component's child. A single component
// still creates one child, so the tree always grows on Replace.
func (t *Tree) Replace(i, j int, varsOf VarsOfFunc) NodeID {
	leaf := t.Get(t.CurrentLeaf())
	newTargets := replaceTarget(leaf.Targets, i, j)
	return t.attachPartitioned(leaf.ID, newTargets, varsOf)
}

// ReplaceList removes every index in remove from the current leaf's
// targets and adds the single index add, then partitions as Replace
// does. Used by moves that discharge several targets for one new one
// (modus ponens/tollens replacing its "other" targets with its result).
func (t *Tree) ReplaceList(remove []int, add int, varsOf VarsOfFunc) NodeID {
	leaf := t.Get(t.CurrentLeaf())
	newTargets := removeAndAdd(leaf.Targets, remove, add)
	return t.attachPartitioned(leaf.ID, newTargets, varsOf)
}

func (t *Tree) attachPartitioned(leaf NodeID, targets []int, varsOf VarsOfFunc) NodeID {
	components := partition(targets, varsOf)
	if len(components) <= 1 {
		child := t.newChild(leaf, targets)
		t.Get(leaf).Join = AndJoin
		t.path = append(t.path, child)
		return child
	}
	t.Get(leaf).Join = AndJoin
	var first NodeID
	for k, comp := range components {
		child := t.newChild(leaf, comp)
		if k == 0 {
			first = child
		}
	}
	t.path = append(t.path, first)
	return first
}

// Split forms two sibling children of the current leaf, one with
// target i replaced by j1, the other by j2, and descends into the
// first. join tells Satisfied how the two combine into the parent's
// obligation: OrJoin for a genuine case split where closing either
// branch suffices (e.g. the disjunctive form P→Q ≡ ¬P∨Q), AndJoin when
// the decomposition requires both halves (e.g. P↔Q ≡ (P→Q)∧(Q→P)).
// This mirrors the single structural hydra_split of the source, which
// is reused by moves with both combination semantics; the semantics is
// the move's to decide, not the tree's.
func (t *Tree) Split(i, j1, j2 int, join Join) (child1, child2 NodeID) {
	leaf := t.Get(t.CurrentLeaf())
	leaf.Join = join
	targets1 := replaceTarget(leaf.Targets, i, j1)
	targets2 := replaceTarget(leaf.Targets, i, j2)
	child1 = t.newChild(leaf.ID, targets1)
	child2 = t.newChild(leaf.ID, targets2)
	t.path = append(t.path, child1)
	return child1, child2
}

// Ascend moves the current path back to the parent of the current
// leaf, so the waterfall can try a sibling branch. No-op at the root.
func (t *Tree) Ascend() {
	if len(t.path) > 1 {
		t.path = t.path[:len(t.path)-1]
	}
}

// Descend appends child to the current path. child must be a child of
// the current leaf.
func (t *Tree) Descend(child NodeID) {
	t.path = append(t.path, child)
}

// AddAssumption absorbs a newly discharged assumption set into the
// current leaf's proved DNF, applying the source's subsumption and
// conflict-merge rules (src/hydra.cpp add_assumption):
//   - if some existing entry is a subset of assumption, assumption adds
//     nothing (already covered, more general);
//   - if assumption is a subset of some existing entry, that entry is
//     replaced by assumption (more general supersedes it);
//   - if assumption and some existing entry E differ in exactly one
//     signed literal (n present as +n in one, -n in the other) and are
//     otherwise identical, the two merge into the common remainder,
//     because the case split on n is now exhaustive;
//   - otherwise assumption is appended as a new disjunct.
//
// Returns true if the node becomes unconditionally proved (the empty
// assumption set is present in Proved after absorption).
//
// A complementary merge restarts the whole scan against the reduced
// Proved list (src/hydra.cpp's add_assumption recurses on
// modified_assumption rather than continuing its own loop), since the
// merge's remainder can itself complete a second merge against an
// entry already passed over earlier in the scan.
func (n *Node) AddAssumption(assumption []int) bool {
	assumption = sortedUnique(assumption)
	if len(assumption) == 0 {
		n.Proved = [][]int{{}}
		return true
	}

	for i, existing := range n.Proved {
		if isSubset(existing, assumption) {
			return n.isUnconditional()
		}
		if remainder, ok := complementaryMerge(assumption, existing); ok {
			rest := make([][]int, 0, len(n.Proved)-1)
			rest = append(rest, n.Proved[:i]...)
			rest = append(rest, n.Proved[i+1:]...)
			n.Proved = rest
			return n.AddAssumption(remainder)
		}
	}

	out := n.Proved[:0:0]
	for _, existing := range n.Proved {
		if isSubset(assumption, existing) {
			continue // superseded by the new, more general assumption
		}
		out = append(out, existing)
	}
	out = append(out, assumption)
	n.Proved = out

	return n.isUnconditional()
}

func (n *Node) isUnconditional() bool {
	for _, e := range n.Proved {
		if len(e) == 0 {
			return true
		}
	}
	return false
}

func isSubset(small, big []int) bool {
	bigSet := make(map[int]bool, len(big))
	for _, x := range big {
		bigSet[x] = true
	}
	for _, x := range small {
		if !bigSet[x] {
			return false
		}
	}
	return true
}

// complementaryMerge reports whether a and b differ in exactly one
// signed literal n (as +n in one, -n in the other) with identical
// remainders, and if so returns that common remainder.
func complementaryMerge(a, b []int) ([]int, bool) {
	if len(a) != len(b) {
		return nil, false
	}
	aSet := make(map[int]bool, len(a))
	for _, x := range a {
		aSet[x] = true
	}
	var diff int
	diffCount := 0
	for _, x := range b {
		if !aSet[x] {
			diffCount++
			diff = x
		}
	}
	if diffCount != 1 || !aSet[-diff] {
		return nil, false
	}
	remainder := make([]int, 0, len(a)-1)
	for _, x := range a {
		if x != -diff {
			remainder = append(remainder, x)
		}
	}
	return sortedUnique(remainder), true
}

// Satisfied reports whether node id is proved, recursively combining
// children per their join kind: AndJoin requires every child
// satisfied, OrJoin requires at least one. A node with no children is
// satisfied iff its own Proved DNF already contains the empty set.
func (t *Tree) Satisfied(id NodeID) bool {
	n := t.Get(id)
	if n == nil {
		return false
	}
	if n.isUnconditional() {
		return true
	}
	if len(n.Children) == 0 {
		return false
	}
	switch n.Join {
	case OrJoin:
		for _, c := range n.Children {
			if t.Satisfied(c) {
				return true
			}
		}
		return false
	default: // AndJoin or NoJoin with children treated as AND
		for _, c := range n.Children {
			if !t.Satisfied(c) {
				return false
			}
		}
		return true
	}
}

// Proved reports whether the whole tree has collapsed to an
// unconditional proof: the root is satisfied.
func (t *Tree) Proved() bool {
	return t.Satisfied(t.Root())
}
