package hydra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func noVars(int) map[string]struct{} { return map[string]struct{}{} }

func varsOf(m map[int]map[string]struct{}) VarsOfFunc {
	return func(idx int) map[string]struct{} { return m[idx] }
}

func TestNewRootHoldsTargets(t *testing.T) {
	tree := New([]int{1, 2, 3})
	root := tree.Get(tree.Root())
	assert.Equal(t, []int{1, 2, 3}, root.Targets)
	assert.Equal(t, tree.Root(), tree.CurrentLeaf())
}

func TestReplaceSingleComponentGrowsPath(t *testing.T) {
	tree := New([]int{1})
	child := tree.Replace(1, 2, noVars)

	assert.Equal(t, child, tree.CurrentLeaf())
	assert.Equal(t, []int{2}, tree.Get(child).Targets)
	assert.Equal(t, AndJoin, tree.Get(tree.Root()).Join)
}

func TestReplacePartitionsIndependentTargets(t *testing.T) {
	tree := New([]int{1})
	vars := varsOf(map[int]map[string]struct{}{
		2: {"x": {}},
		3: {"y": {}},
	})
	// target 1 splits into two independent new targets 2 and 3
	leaf := tree.Get(tree.CurrentLeaf())
	leaf.Targets = []int{2, 3}
	first := tree.attachPartitioned(leaf.ID, []int{2, 3}, vars)

	root := tree.Get(tree.Root())
	assert.Len(t, root.Children, 2)
	assert.Equal(t, AndJoin, root.Join)
	assert.Equal(t, first, tree.CurrentLeaf())
}

func TestSplitCreatesOrJoinSiblings(t *testing.T) {
	tree := New([]int{1})
	c1, c2 := tree.Split(1, 2, 3, OrJoin)

	root := tree.Get(tree.Root())
	assert.Equal(t, OrJoin, root.Join)
	assert.ElementsMatch(t, []NodeID{c1, c2}, root.Children)
	assert.Equal(t, []int{2}, tree.Get(c1).Targets)
	assert.Equal(t, []int{3}, tree.Get(c2).Targets)
	assert.Equal(t, c1, tree.CurrentLeaf())
}

func TestAddAssumptionUnconditionalSatisfiesLeaf(t *testing.T) {
	tree := New([]int{1})
	leaf := tree.Get(tree.CurrentLeaf())

	unconditional := leaf.AddAssumption(nil)
	assert.True(t, unconditional)
	assert.True(t, tree.Proved())
}

func TestAddAssumptionSubsumption(t *testing.T) {
	n := &Node{}
	n.AddAssumption([]int{1})
	// a more specific assumption set adds nothing once a subset is proved
	n.AddAssumption([]int{1, 2})
	assert.Equal(t, [][]int{{1}}, n.Proved)
}

func TestAddAssumptionMoreGeneralSupersedes(t *testing.T) {
	n := &Node{}
	n.AddAssumption([]int{1, 2})
	n.AddAssumption([]int{1})
	assert.Equal(t, [][]int{{1}}, n.Proved)
}

func TestAddAssumptionComplementaryMerge(t *testing.T) {
	n := &Node{}
	n.AddAssumption([]int{3, 5})
	unconditional := n.AddAssumption([]int{-3, 5})
	assert.False(t, unconditional)
	assert.Equal(t, [][]int{{5}}, n.Proved)
}

func TestAddAssumptionCascadesThroughMultipleMerges(t *testing.T) {
	n := &Node{Proved: [][]int{{-1, 2, 3}, {2, -3}}}
	unconditional := n.AddAssumption([]int{1, 2, 3})
	assert.False(t, unconditional)
	assert.Equal(t, [][]int{{2}}, n.Proved)
}

func TestSatisfiedAndJoinRequiresAllChildren(t *testing.T) {
	tree := New([]int{1})
	vars := varsOf(map[int]map[string]struct{}{
		2: {"x": {}},
		3: {"y": {}},
	})
	tree.Get(tree.CurrentLeaf()).Targets = []int{2, 3}
	first := tree.attachPartitioned(tree.CurrentLeaf(), []int{2, 3}, vars)

	root := tree.Get(tree.Root())
	other := root.Children[1]
	if other == first {
		other = root.Children[0]
	}

	assert.False(t, tree.Proved())
	tree.Get(first).AddAssumption(nil)
	assert.False(t, tree.Proved())
	tree.Get(other).AddAssumption(nil)
	assert.True(t, tree.Proved())
}

func TestSatisfiedOrJoinRequiresOneChild(t *testing.T) {
	tree := New([]int{1})
	c1, c2 := tree.Split(1, 2, 3, OrJoin)
	_ = c2

	assert.False(t, tree.Proved())
	tree.Get(c1).AddAssumption(nil)
	assert.True(t, tree.Proved())
}

func TestAscendAndDescend(t *testing.T) {
	tree := New([]int{1})
	c1, c2 := tree.Split(1, 2, 3, OrJoin)
	assert.Equal(t, c1, tree.CurrentLeaf())

	tree.Ascend()
	assert.Equal(t, tree.Root(), tree.CurrentLeaf())

	tree.Descend(c2)
	assert.Equal(t, c2, tree.CurrentLeaf())
}
