package moves

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/hydra"
	"github.com/proofdroid/prover/pkg/registry"
	"github.com/proofdroid/prover/pkg/tableau"
)

func unaryPred(name string, arg *formula.Node) *formula.Node {
	return formula.NewApplication(formula.NewVariableArity(name, formula.Predicate, 1), arg)
}

func binaryPred(name string, a, b *formula.Node) *formula.Node {
	return formula.NewApplication(formula.NewVariableArity(name, formula.Predicate, 2), a, b)
}

func ind(name string) *formula.Node { return formula.NewVariable(name, formula.Individual) }

func newEngine(targets []int) (*Engine, *tableau.Tableau, *hydra.Tree) {
	tab := tableau.New()
	tree := hydra.New(targets)
	reg := registry.New()
	return New(tab, tree, reg), tab, tree
}

func TestSkolemizeExistentialOfUniversal(t *testing.T) {
	e, tab, _ := newEngine(nil)
	y := ind("y")
	x := ind("x")
	body := binaryPred("P", x, formula.NewVariable("y", formula.Individual))
	exists := formula.NewQuantifier(formula.SymbolExists, x, body)
	forall := formula.NewQuantifier(formula.SymbolForall, y, exists)

	idx := tab.Append(tableau.NewHypothesis(forall, tableau.Justification{Reason: tableau.ReasonHypothesis}))
	changed := e.Skolemize(idx)
	require.True(t, changed)

	result := tab.Get(idx).Formula
	assert.Equal(t, formula.Application, result.Type)
	skolemTerm := result.Children[1]
	skolemFn := skolemTerm.Children[0]
	assert.Equal(t, formula.Function, skolemFn.VarKind)
	assert.Len(t, skolemTerm.Children, 2) // head + y argument
	innerArg := result.Children[2]
	assert.Equal(t, "y", innerArg.Name)
}

func TestSkolemizeOmitsUnusedUniversal(t *testing.T) {
	e, tab, _ := newEngine(nil)
	y := ind("y")
	z := ind("z")
	x := ind("x")
	body := binaryPred("P", x, formula.NewVariable("y", formula.Individual))
	exists := formula.NewQuantifier(formula.SymbolExists, x, body)
	forallZ := formula.NewQuantifier(formula.SymbolForall, z, exists)
	forallY := formula.NewQuantifier(formula.SymbolForall, y, forallZ)

	idx := tab.Append(tableau.NewHypothesis(forallY, tableau.Justification{Reason: tableau.ReasonHypothesis}))
	e.Skolemize(idx)

	result := tab.Get(idx).Formula
	skolemTerm := result.Children[1]
	assert.Equal(t, formula.Application, skolemTerm.Type)
	assert.Len(t, skolemTerm.Children, 2) // head + y argument
}

func TestSplitConjunctionHypothesisProducesBothConjuncts(t *testing.T) {
	e, tab, _ := newEngine(nil)
	p, q := unaryPred("P", ind("a")), unaryPred("Q", ind("a"))
	conj := formula.NewBinary(formula.SymbolAnd, p, q)
	idx := tab.Append(tableau.NewHypothesis(conj, tableau.Justification{Reason: tableau.ReasonHypothesis}))

	changed := e.SplitConjunction(idx)
	require.True(t, changed)
	assert.True(t, tab.Get(idx).Dead)
	assert.Equal(t, 3, tab.Len())
	assert.True(t, formula.Equal(tab.Get(1).Formula, p))
	assert.True(t, formula.Equal(tab.Get(2).Formula, q))
}

func TestSplitConjunctionTargetOrSplitsHydra(t *testing.T) {
	e, tab, tree := newEngine([]int{0})
	p, q := unaryPred("P", ind("a")), unaryPred("Q", ind("a"))
	disj := formula.NewBinary(formula.SymbolOr, p, q)
	idx := tab.Append(tableau.NewTarget(disj, nil, tableau.Justification{Reason: tableau.ReasonTarget}))

	changed := e.SplitConjunction(idx)
	require.True(t, changed)
	assert.Equal(t, hydra.OrJoin, tree.Get(tree.Root()).Join)
	assert.Len(t, tree.Get(tree.Root()).Children, 2)
}

func TestMaterialEquivalenceTargetSplitsAndJoin(t *testing.T) {
	e, tab, tree := newEngine([]int{0})
	p, q := unaryPred("P", ind("a")), unaryPred("Q", ind("a"))
	iff := formula.NewBinary(formula.SymbolIff, p, q)
	idx := tab.Append(tableau.NewTarget(iff, nil, tableau.Justification{Reason: tableau.ReasonTarget}))

	changed := e.MaterialEquivalence(idx)
	require.True(t, changed)
	assert.Equal(t, hydra.AndJoin, tree.Get(tree.Root()).Join)

	c1 := tab.Get(tree.Get(tree.Get(tree.Root()).Children[0]).Targets[0])
	assert.True(t, c1.Target)
	assert.True(t, c1.Formula.IsImplication())
}

func TestDisjunctiveIdempotenceCollapsesTarget(t *testing.T) {
	e, tab, tree := newEngine([]int{0})
	p := unaryPred("P", ind("a"))
	disj := formula.NewBinary(formula.SymbolOr, formula.DeepCopy(p), formula.DeepCopy(p))
	idx := tab.Append(tableau.NewTarget(disj, nil, tableau.Justification{Reason: tableau.ReasonTarget}))

	changed := e.DisjunctiveIdempotence(idx)
	require.True(t, changed)
	assert.True(t, tab.Get(idx).Dead)
	newIdx := tree.Get(tree.CurrentLeaf()).Targets[0]
	assert.True(t, formula.Equal(tab.Get(newIdx).Formula, p))
	assert.Equal(t, tableau.ReasonDisjunctiveIdempotence, tab.Get(newIdx).Justification.Reason)
}

func TestModusPonensSimple(t *testing.T) {
	e, tab, tree := newEngine(nil)
	a := ind("a")
	x := ind("x")

	pa := unaryPred("P", a)
	idxP := tab.Append(tableau.NewHypothesis(pa, tableau.Justification{Reason: tableau.ReasonHypothesis}))

	px := unaryPred("P", formula.NewVariable("x", formula.Individual))
	qx := unaryPred("Q", formula.NewVariable("x", formula.Individual))
	impl := formula.NewBinary(formula.SymbolImplies, px, qx)
	idxImpl := tab.Append(tableau.NewHypothesis(impl, tableau.Justification{Reason: tableau.ReasonHypothesis}))
	_ = x

	qa := unaryPred("Q", formula.DeepCopy(a))
	idxTarget := tab.Append(tableau.NewTarget(qa, formula.DeepCopy(qa), tableau.Justification{Reason: tableau.ReasonTarget}))
	tree = hydra.New([]int{idxTarget})
	e.Hydra = tree

	changed := e.ModusPonensTollens(idxImpl, []int{idxP}, true, nil)
	require.True(t, changed)
	assert.True(t, tab.Get(idxImpl).Split)

	newLine := tab.Get(tab.Len() - 1)
	assert.False(t, newLine.Target)
	assert.True(t, formula.Equal(newLine.Formula, qa))
}

func TestSplitDisjunctionIntroducesSignedAssumptions(t *testing.T) {
	e, tab, _ := newEngine(nil)
	a := unaryPred("A", ind("x"))
	b := unaryPred("B", ind("y"))
	disj := formula.NewBinary(formula.SymbolOr, a, b)
	idx := tab.Append(tableau.NewHypothesis(disj, tableau.Justification{Reason: tableau.ReasonHypothesis}))

	changed := e.SplitDisjunction(idx)
	require.True(t, changed)
	assert.True(t, tab.Get(idx).Split)

	n := idx + 1
	assert.Equal(t, []int{n}, tab.Get(idx+1).Assumptions)
	assert.Equal(t, []int{-n}, tab.Get(idx+2).Assumptions)
	assert.Equal(t, []int{-n}, tab.Get(idx+3).Assumptions)
}

func TestEqualityRewriteReplacesFirstMatch(t *testing.T) {
	e, tab, tree := newEngine([]int{0})
	a, b := ind("a"), ind("b")
	eq := formula.NewEquals(a, b)
	idxEq := tab.Append(tableau.NewHypothesis(eq, tableau.Justification{Reason: tableau.ReasonHypothesis}))

	pa := unaryPred("P", formula.DeepCopy(a))
	idxTarget := tab.Append(tableau.NewTarget(pa, formula.DeepCopy(pa), tableau.Justification{Reason: tableau.ReasonTarget}))
	tree2 := hydra.New([]int{idxTarget})
	e.Hydra = tree2

	changed := e.EqualityRewrite(idxTarget, idxEq)
	require.True(t, changed)
	assert.True(t, tab.Get(idxTarget).Dead)

	newIdx := tree2.Get(tree2.CurrentLeaf()).Targets[0]
	expected := unaryPred("P", formula.DeepCopy(b))
	assert.True(t, formula.Equal(tab.Get(newIdx).Formula, expected))
	_ = tree
}

// TestModusPonensRenamesCollidingVariables exercises spec.md §4.2 step
// 3: the implication's free x and the unit clause's free x are a
// naming coincidence, not a shared binding, so unification must not
// see the implication's x occurring inside f(x) and fail the occurs
// check.
func TestModusPonensRenamesCollidingVariables(t *testing.T) {
	e, tab, tree := newEngine(nil)
	x := ind("x")

	px := unaryPred("P", x)
	qx := unaryPred("Q", formula.NewVariable("x", formula.Individual))
	impl := formula.NewBinary(formula.SymbolImplies, px, qx)
	idxImpl := tab.Append(tableau.NewHypothesis(impl, tableau.Justification{Reason: tableau.ReasonHypothesis}))

	fx := formula.NewApplication(formula.NewVariableArity("f", formula.Function, 1), ind("x"))
	pfx := unaryPred("P", fx)
	idxOther := tab.Append(tableau.NewHypothesis(pfx, tableau.Justification{Reason: tableau.ReasonHypothesis}))

	tree = hydra.New(nil)
	e.Hydra = tree

	changed := e.ModusPonensTollens(idxImpl, []int{idxOther}, true, nil)
	require.True(t, changed)

	newLine := tab.Get(tab.Len() - 1)
	assert.False(t, newLine.Target)
	expected := unaryPred("Q", formula.DeepCopy(fx))
	assert.True(t, formula.Equal(newLine.Formula, expected))
}
