package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proofdroid/prover/pkg/formula"
)

func atom(name string) *formula.Node {
	return formula.NewApplication(formula.NewVariableArity(name, formula.Predicate, 0))
}

func TestAppendIsStable(t *testing.T) {
	tab := New()
	l0 := NewHypothesis(atom("P"), Justification{Reason: ReasonHypothesis})
	idx0 := tab.Append(l0)
	l1 := NewHypothesis(atom("Q"), Justification{Reason: ReasonHypothesis})
	idx1 := tab.Append(l1)

	assert.Equal(t, 0, idx0)
	assert.Equal(t, 1, idx1)
	assert.Same(t, l0, tab.Get(0))
	assert.Same(t, l1, tab.Get(1))
}

func TestAssumptionsCompatible(t *testing.T) {
	assert.True(t, AssumptionsCompatible([]int{1, 2}, []int{3}))
	assert.False(t, AssumptionsCompatible([]int{1, 2}, []int{-2, 3}))
}

func TestCombineRestrictionsEmptyMeansAll(t *testing.T) {
	assert.Equal(t, []int{1, 2}, CombineRestrictions(nil, []int{1, 2}))
	assert.Equal(t, []int{1, 2}, CombineRestrictions([]int{1, 2}, nil))
	assert.Equal(t, []int{2}, CombineRestrictions([]int{1, 2}, []int{2, 3}))
}

func TestPurgeDeadCascades(t *testing.T) {
	tab := New()
	target := NewTarget(atom("Q"), atom("Q"), Justification{Reason: ReasonTarget})
	tIdx := tab.Append(target)

	hyp := NewHypothesis(atom("P"), Justification{Reason: ReasonHypothesis})
	hyp.Restrictions = []int{tIdx}
	tab.Append(hyp)

	target.Dead = true
	tab.PurgeDead()

	assert.True(t, hyp.Dead)
	assert.False(t, hyp.Active)
}

func TestSelectTargetsActivatesUnrestrictedHypotheses(t *testing.T) {
	tab := New()
	t1 := tab.Append(NewTarget(atom("A"), atom("A"), Justification{Reason: ReasonTarget}))
	t2 := tab.Append(NewTarget(atom("B"), atom("B"), Justification{Reason: ReasonTarget}))

	unrestricted := NewHypothesis(atom("H"), Justification{Reason: ReasonHypothesis})
	tab.Append(unrestricted)

	restricted := NewHypothesis(atom("H2"), Justification{Reason: ReasonHypothesis})
	restricted.Restrictions = []int{t2}
	tab.Append(restricted)

	tab.SelectTargets(map[int]bool{t1: true})

	assert.True(t, tab.Get(t1).Active)
	assert.False(t, tab.Get(t2).Active)
	assert.True(t, unrestricted.Active)
	assert.False(t, restricted.Active)
}
