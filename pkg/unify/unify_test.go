package unify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/subst"
)

func ind(name string) *formula.Node { return formula.NewVariable(name, formula.Individual) }

func fn(name string, args ...*formula.Node) *formula.Node {
	return formula.NewApplication(formula.NewVariableArity(name, formula.Function, len(args)), args...)
}

func TestUnifyVariableWithConstant(t *testing.T) {
	s, ok := Unify(ind("x"), formula.NewConstant(formula.SymbolEmptyset), subst.New())
	require.True(t, ok)
	bound := s.Lookup("x")
	require.NotNil(t, bound)
	assert.Equal(t, formula.SymbolEmptyset, bound.Symbol)
}

func TestUnifySoundness(t *testing.T) {
	a := fn("f", ind("x"), formula.NewConstant(formula.SymbolTop))
	b := fn("f", formula.NewConstant(formula.SymbolBot), ind("y"))

	s, ok := Unify(a, b, subst.New())
	require.True(t, ok)

	subA := subst.Substitute(a, s)
	subB := subst.Substitute(b, s)
	assert.True(t, formula.Equal(subA, subB))
}

func TestOccursCheckFails(t *testing.T) {
	x := ind("x")
	term := fn("f", ind("x"))
	_, ok := Unify(x, term, subst.New())
	assert.False(t, ok)
}

func TestUnifyDifferentArityFails(t *testing.T) {
	a := fn("f", ind("x"))
	b := fn("f", ind("x"), ind("y"))
	_, ok := Unify(a, b, subst.New())
	assert.False(t, ok)
}

func TestUnifyFunctionsNeverBound(t *testing.T) {
	headVar := formula.NewVariableArity("f", formula.Function, 1)
	a := formula.NewApplication(headVar, ind("x"))
	otherHead := formula.NewVariableArity("g", formula.Function, 1)
	b := formula.NewApplication(otherHead, ind("x"))

	_, ok := Unify(a, b, subst.New())
	assert.False(t, ok, "functions with different names never unify, even though both are variable heads")
}

func TestUnifyConstants(t *testing.T) {
	_, ok := Unify(formula.NewConstant(formula.SymbolTop), formula.NewConstant(formula.SymbolBot), subst.New())
	assert.False(t, ok)

	s, ok := Unify(formula.NewConstant(formula.SymbolTop), formula.NewConstant(formula.SymbolTop), subst.New())
	assert.True(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestUnifyChainedVariables(t *testing.T) {
	s := subst.New()
	s, ok := Unify(ind("x"), ind("y"), s)
	require.True(t, ok)
	s, ok = Unify(ind("y"), formula.NewConstant(formula.SymbolTop), s)
	require.True(t, ok)

	walked := s.Walk(ind("x"))
	assert.Equal(t, formula.SymbolTop, walked.Symbol)
}
