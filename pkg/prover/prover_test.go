package prover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/waterfall"
)

func unaryPred(name string, arg *formula.Node) *formula.Node {
	return formula.NewApplication(formula.NewVariableArity(name, formula.Predicate, 1), arg)
}

func TestAutomateProvesModusPonens(t *testing.T) {
	p := NewSilent()
	a := formula.NewVariable("a", formula.Individual)

	_, err := p.AddHypothesis(unaryPred("P", a))
	require.NoError(t, err)

	x := formula.NewVariable("x", formula.Individual)
	impl := formula.NewBinary(formula.SymbolImplies, unaryPred("P", x), unaryPred("Q", formula.DeepCopy(x)))
	_, err = p.AddHypothesis(impl)
	require.NoError(t, err)

	_, err = p.AddTarget(unaryPred("Q", formula.DeepCopy(a)))
	require.NoError(t, err)

	require.NoError(t, p.Load())

	result, err := p.Automate(Config{MoveBudget: 10})
	require.NoError(t, err)
	assert.Equal(t, waterfall.Proved, result)
	assert.True(t, Proved(result))
}

func TestAutomateBeforeLoadFails(t *testing.T) {
	p := NewSilent()
	_, err := p.Automate(Config{})
	assert.Error(t, err)
}

func TestAddLineAfterLoadFails(t *testing.T) {
	p := NewSilent()
	_, err := p.AddTarget(unaryPred("P", formula.NewVariable("a", formula.Individual)))
	require.NoError(t, err)
	require.NoError(t, p.Load())

	_, err = p.AddHypothesis(unaryPred("Q", formula.NewVariable("b", formula.Individual)))
	assert.Error(t, err)
}

func TestAddLibraryLineRequiresLoad(t *testing.T) {
	p := NewSilent()
	_, err := p.AddLibraryLine(unaryPred("P", formula.NewVariable("a", formula.Individual)))
	assert.Error(t, err)

	require.NoError(t, p.Load())
	idx, err := p.AddLibraryLine(unaryPred("P", formula.NewVariable("b", formula.Individual)))
	require.NoError(t, err)
	assert.True(t, p.Tab.Get(idx).Active)

	p.Cleanup()
}
