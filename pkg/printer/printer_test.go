package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/tableau"
)

func unaryPred(name string, arg *formula.Node) *formula.Node {
	return formula.NewApplication(formula.NewVariableArity(name, formula.Predicate, 1), arg)
}

func TestFormatNodeAtomicPredicate(t *testing.T) {
	a := formula.NewVariable("a", formula.Individual)
	f := unaryPred("P", a)

	assert.Equal(t, "P(a)", New(REPR).FormatNode(f))
	assert.Equal(t, "P(a')", New(Unicode).FormatNode(f))
}

func TestFormatNodeConjunctionUnicode(t *testing.T) {
	x := formula.NewVariable("x", formula.Individual)
	y := formula.NewVariable("y", formula.Individual)
	conj := formula.NewBinary(formula.SymbolAnd, unaryPred("P", x), unaryPred("Q", y))

	assert.Equal(t, "P(x') ∧ Q(y')", New(Unicode).FormatNode(conj))
	assert.Equal(t, `P(x) \wedge Q(y)`, New(REPR).FormatNode(conj))
}

func TestFormatNodeParenthesizesEqualPrecedenceChild(t *testing.T) {
	x := formula.NewVariable("x", formula.Individual)
	y := formula.NewVariable("y", formula.Individual)
	z := formula.NewVariable("z", formula.Individual)

	inner := formula.NewBinary(formula.SymbolAnd, unaryPred("P", x), unaryPred("Q", y))
	outer := formula.NewBinary(formula.SymbolAnd, inner, unaryPred("R", z))

	assert.Equal(t, "(P(x') ∧ Q(y')) ∧ R(z')", New(Unicode).FormatNode(outer))
}

func TestFormatNodeImplicationDoesNotParenthesizeTighterChild(t *testing.T) {
	x := formula.NewVariable("x", formula.Individual)
	y := formula.NewVariable("y", formula.Individual)
	z := formula.NewVariable("z", formula.Individual)

	conj := formula.NewBinary(formula.SymbolAnd, unaryPred("P", x), unaryPred("Q", y))
	impl := formula.NewBinary(formula.SymbolImplies, conj, unaryPred("R", z))

	assert.Equal(t, "P(x') ∧ Q(y') → R(z')", New(Unicode).FormatNode(impl))
}

func TestFormatNodeNegatedEqualityPrintsNotEquals(t *testing.T) {
	a := formula.NewVariable("a", formula.Individual)
	b := formula.NewVariable("b", formula.Individual)
	eq := formula.NewEquals(a, b)
	neq, err := formula.NegateNode(eq, false)
	assert.NoError(t, err)

	assert.Equal(t, "a' ≠ b'", New(Unicode).FormatNode(neq))
	assert.Equal(t, `a \neq b`, New(REPR).FormatNode(neq))
}

func TestFormatNodeEqualityIsUnparenthesizedInfix(t *testing.T) {
	a := formula.NewVariable("a", formula.Individual)
	b := formula.NewVariable("b", formula.Individual)
	eq := formula.NewEquals(a, b)

	assert.Equal(t, "a' = b'", New(Unicode).FormatNode(eq))
}

func TestFormatNodeVariableSubscript(t *testing.T) {
	v := formula.NewVariable("x_3", formula.Individual)

	assert.Equal(t, "x_3", New(REPR).FormatNode(v))
	assert.Equal(t, "x₃'", New(Unicode).FormatNode(v))
}

func TestFormatNodeBoundVariableHasNoTrailingQuote(t *testing.T) {
	x := formula.NewVariable("x", formula.Individual)
	body := unaryPred("P", formula.DeepCopy(x))
	quant := formula.NewQuantifier(formula.SymbolForall, x, body)

	assert.Equal(t, "∀x P(x)", New(Unicode).FormatNode(quant))
}

func TestJustificationStringHypothesisAndTarget(t *testing.T) {
	assert.Equal(t, "Hyp", JustificationString(tableau.Justification{Reason: tableau.ReasonHypothesis}))
	assert.Equal(t, "Tar", JustificationString(tableau.Justification{Reason: tableau.ReasonTarget}))
}

func TestJustificationStringWithSources(t *testing.T) {
	j := tableau.Justification{Reason: tableau.ReasonModusPonens, Sources: []int{1, 3}}
	assert.Equal(t, "MP[2,4]", JustificationString(j))
}

func TestLineStringMarksDeadLines(t *testing.T) {
	a := formula.NewVariable("a", formula.Individual)
	line := tableau.NewHypothesis(unaryPred("P", a), tableau.Justification{Reason: tableau.ReasonHypothesis})
	line.Dead = true

	s := New(Unicode).LineString(0, line)
	assert.Contains(t, s, "H*")
	assert.Contains(t, s, "P(a')")
}
