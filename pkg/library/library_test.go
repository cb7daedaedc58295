package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/prover"
)

func TestLoadAppendsTheoremAndDefinition(t *testing.T) {
	p := prover.NewSilent()
	_, err := p.AddTarget(formula.NewApplication(
		formula.NewVariableArity("Q", formula.Predicate, 1),
		formula.NewVariable("a", formula.Individual),
	))
	require.NoError(t, err)
	require.NoError(t, p.Load())

	before := len(p.Tab.Lines)

	records := []Record{
		{Type: Theorem, Formula: `P(x) \to Q(x)`},
		{Type: Definition, Formula: `P(a)`},
	}
	require.NoError(t, Load(records, p))

	assert.Greater(t, len(p.Tab.Lines), before)
}

func TestLoadRejectsUnknownRecordType(t *testing.T) {
	p := prover.NewSilent()
	require.NoError(t, p.Load())

	err := Load([]Record{{Type: "mystery", Formula: "a = b"}}, p)
	assert.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, 1, loadErr.Record)
}

func TestLoadSurfacesParseError(t *testing.T) {
	p := prover.NewSilent()
	require.NoError(t, p.Load())

	err := Load([]Record{{Type: Theorem, Formula: "a = $"}}, p)
	assert.Error(t, err)
}

func TestLoadFileMissingPath(t *testing.T) {
	p := prover.NewSilent()
	require.NoError(t, p.Load())

	err := LoadFile("/nonexistent/path/to/library.yaml", p)
	assert.Error(t, err)
}
