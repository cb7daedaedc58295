package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofdroid/prover/pkg/printer"
)

// roundTrip checks that Parse(src) re-rendered through the REPR printer
// reproduces src exactly, mirroring the source's own parser test, which
// feeds each case straight back through to_string(REPR) and compares.
func roundTrip(t *testing.T, src string) {
	t.Helper()
	n, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, printer.New(printer.REPR).FormatNode(n))
}

func TestParseRoundTripsOriginalFixtures(t *testing.T) {
	roundTrip(t, "a = b")
	roundTrip(t, "f(a) = b")
	roundTrip(t, `\mathcal{P}(S) = T`)
}

func TestParseRoundTripsConnectives(t *testing.T) {
	roundTrip(t, `P(x) \wedge Q(y)`)
	roundTrip(t, `P(x) \vee Q(y)`)
	roundTrip(t, `P(x) \to Q(y)`)
	roundTrip(t, `P(x) \leftrightarrow Q(y)`)
	roundTrip(t, `\neg P(x)`)
}

func TestParseRoundTripsQuantifiers(t *testing.T) {
	roundTrip(t, `\forall x P(x)`)
	roundTrip(t, `\exists x P(x)`)
}

func TestParseRoundTripsSetOperators(t *testing.T) {
	roundTrip(t, `a \cap b = c`)
	roundTrip(t, `a \cup b = c`)
	roundTrip(t, `a \in S`)
	roundTrip(t, `S \subseteq T`)
}

func TestParseNegatedEquality(t *testing.T) {
	n, err := Parse(`a \neq b`)
	require.NoError(t, err)
	assert.True(t, n.IsNegation())
}

func TestParseRespectsPrecedence(t *testing.T) {
	n, err := Parse(`P(x) \wedge Q(y) \to R(z)`)
	require.NoError(t, err)
	assert.True(t, n.IsImplication())
	assert.True(t, n.Children[0].IsConjunction())
}

func TestParseRejectsBareTermAsFormula(t *testing.T) {
	_, err := Parse("a")
	assert.Error(t, err)
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse("a = b c")
	assert.Error(t, err)
}

func TestParseRejectsUnexpectedCharacter(t *testing.T) {
	_, err := Parse("a = $")
	assert.Error(t, err)
}
