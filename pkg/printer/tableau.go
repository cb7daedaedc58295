package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/proofdroid/prover/pkg/tableau"
)

// reasonTags maps tableau.Reason to the short justification tag
// spec.md §6 prints before a line's one-based source-line list, e.g.
// "MP[2,4]". Hypothesis and Target carry no source list and print as
// bare "Hyp"/"Tar". EqualitySubst and SplitDisjunction have no tag
// named in spec.md's enumeration; "EQ" and "SD" extend the same
// two-or-three-letter abbreviation scheme the rest of the table uses.
var reasonTags = map[tableau.Reason]string{
	tableau.ReasonModusPonens:                "MP",
	tableau.ReasonModusTollens:                "MT",
	tableau.ReasonDisjunctiveIdempotence:      "DI",
	tableau.ReasonConjunctiveIdempotence:      "CI",
	tableau.ReasonSplitConjunction:            "SC",
	tableau.ReasonSplitConjunctiveImplication: "SCI",
	tableau.ReasonSplitDisjunctiveImplication: "SDI",
	tableau.ReasonNegatedImplication:          "NI",
	tableau.ReasonMaterialEquivalence:         "ME",
	tableau.ReasonConditionalPremise:          "CP",
	tableau.ReasonSplitDisjunction:            "SD",
	tableau.ReasonEqualitySubst:               "EQ",
}

// JustificationString renders j the way spec.md §6's tableau listing
// prints a line's provenance: "Hyp", "Tar", or "TAG[s1,s2,...]" with
// every source index shown one-based.
func JustificationString(j tableau.Justification) string {
	switch j.Reason {
	case tableau.ReasonHypothesis:
		return "Hyp"
	case tableau.ReasonTarget:
		return "Tar"
	}
	tag, ok := reasonTags[j.Reason]
	if !ok {
		tag = "?"
	}
	if len(j.Sources) == 0 {
		return tag
	}
	parts := make([]string, len(j.Sources))
	for i, s := range j.Sources {
		parts[i] = strconv.Itoa(s + 1)
	}
	return tag + "[" + strings.Join(parts, ",") + "]"
}

// LineString renders one tableau line the way a driver's tableau dump
// shows it: one-based index, T/H marker, formula, justification. Dead
// lines are marked with a "*" after the T/H marker rather than omitted,
// so a dump stays a stable
// reference for justification line numbers even after purging.
func (p *Printer) LineString(index int, line *tableau.Line) string {
	marker := "H"
	if line.Target {
		marker = "T"
	}
	if line.Dead {
		marker += "*"
	}
	return fmt.Sprintf("%3d %s  %s    %s", index+1, marker, p.FormatNode(line.Formula), JustificationString(line.Justification))
}

// TableauString renders every line of tab in order, one per line.
func (p *Printer) TableauString(tab *tableau.Tableau) string {
	var b strings.Builder
	for i, line := range tab.Lines {
		b.WriteString(p.LineString(i, line))
		b.WriteByte('\n')
	}
	return b.String()
}
