// Package tableau implements the append-only proof-line sequence
// described in spec.md §3.3/§4.3: each line is a hypothesis or target
// carrying a canonical formula, justification, signed assumption set,
// and target-restriction set, plus the bookkeeping the waterfall needs
// to avoid redundant work. Ported from the source's context_t/tabline_t
// (src/context.h), with the C++ vector-of-struct mutated in place
// replaced by a slice of pointers so that *Line identity survives
// append (spec.md §5: "Tableau indices are stable once assigned").
package tableau

import (
	"sort"

	"github.com/proofdroid/prover/pkg/formula"
)

// Reason tags how a line was derived.
type Reason int

const (
	ReasonHypothesis Reason = iota
	ReasonTarget
	ReasonModusPonens
	ReasonModusTollens
	ReasonDisjunctiveIdempotence
	ReasonConjunctiveIdempotence
	ReasonSplitConjunction
	ReasonSplitDisjunctiveImplication
	ReasonSplitConjunctiveImplication
	ReasonNegatedImplication
	ReasonMaterialEquivalence
	ReasonConditionalPremise
	ReasonSplitDisjunction
	ReasonEqualitySubst
)

// Justification records why a line exists: the reason plus the
// 0-based indices of the source lines it was derived from.
type Justification struct {
	Reason  Reason
	Sources []int
}

// Unification records that this target line's formula unified with a
// live hypothesis during closure detection.
type Unification struct {
	PriorLine int
	Subst     any // *subst.Substitution; typed any to avoid an import cycle with pkg/subst
}

// Line is one entry of the tableau.
type Line struct {
	Formula  *formula.Node
	Negation *formula.Node // only meaningful when Target is true

	Target bool
	Active bool
	Dead   bool

	Justification Justification
	Assumptions   []int // sorted; +n assumed true, -n assumed false
	Restrictions  []int // sorted; empty means unrestricted

	Constants map[string]struct{}

	// AppliedUnits records (implicationLine, targetLine) pairs already
	// tried by move_mpt, so the waterfall does not retry them.
	AppliedUnits map[[2]int]bool

	Unifications []Unification

	Split bool // an implication already used forward by modus ponens
}

// NewHypothesis builds a fresh, active hypothesis line.
func NewHypothesis(f *formula.Node, just Justification) *Line {
	return &Line{
		Formula:       f,
		Active:        true,
		Justification: just,
		Constants:     formula.GetConstants(f),
		AppliedUnits:  make(map[[2]int]bool),
	}
}

// NewTarget builds a fresh, active target line. negation is a deep copy
// of f's negation, cached for modus tollens and re-skolemization.
func NewTarget(f, negation *formula.Node, just Justification) *Line {
	return &Line{
		Formula:       f,
		Negation:      negation,
		Target:        true,
		Active:        true,
		Justification: just,
		Constants:     formula.GetConstants(f),
		AppliedUnits:  make(map[[2]int]bool),
	}
}

// Tableau is the append-only sequence of lines.
type Tableau struct {
	Lines []*Line
}

// New returns an empty tableau.
func New() *Tableau {
	return &Tableau{}
}

// Append adds line to the tableau and returns its stable 0-based index.
func (t *Tableau) Append(line *Line) int {
	t.Lines = append(t.Lines, line)
	return len(t.Lines) - 1
}

// Get returns the line at index, or nil if out of range.
func (t *Tableau) Get(index int) *Line {
	if index < 0 || index >= len(t.Lines) {
		return nil
	}
	return t.Lines[index]
}

// Len returns the number of lines.
func (t *Tableau) Len() int { return len(t.Lines) }

// sortedUnique returns the sorted, duplicate-free elements of xs.
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

// AssumptionsCompatible reports whether two assumption sets can coexist:
// false iff some n is asserted true in one and false in the other.
func AssumptionsCompatible(a, b []int) bool {
	bSet := make(map[int]bool, len(b))
	for _, n := range b {
		bSet[n] = true
	}
	for _, n := range a {
		if bSet[-n] {
			return false
		}
	}
	return true
}

// CombineAssumptions returns the sorted union of two assumption sets.
func CombineAssumptions(a, b []int) []int {
	return sortedUnique(append(append([]int{}, a...), b...))
}

// RestrictionsCompatible is true iff either list is empty (unrestricted)
// or the two lists share at least one target index.
func RestrictionsCompatible(a, b []int) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	bSet := make(map[int]bool, len(b))
	for _, n := range b {
		bSet[n] = true
	}
	for _, n := range a {
		if bSet[n] {
			return true
		}
	}
	return false
}

// CombineRestrictions computes the intersection of two restriction
// lists, except that an empty list means "all targets" and is absorbed
// by the other (non-empty) list, per spec.md §4.3.
func CombineRestrictions(a, b []int) []int {
	if len(a) == 0 {
		return sortedUnique(b)
	}
	if len(b) == 0 {
		return sortedUnique(a)
	}
	bSet := make(map[int]bool, len(b))
	for _, n := range b {
		bSet[n] = true
	}
	var out []int
	for _, n := range sortedUnique(a) {
		if bSet[n] {
			out = append(out, n)
		}
	}
	return out
}

// PurgeDead marks every hypothesis whose restriction list is non-empty
// and all of whose restricted target lines are dead, dead and inactive.
// Runs to a fixed point because purging one hypothesis's restricted
// target may itself have been kept alive only by that hypothesis
// chain — the source's purge_dead is likewise re-run after every move.
func (t *Tableau) PurgeDead() {
	changed := true
	for changed {
		changed = false
		for _, line := range t.Lines {
			if line.Target || line.Dead || len(line.Restrictions) == 0 {
				continue
			}
			allDead := true
			for _, targetIdx := range line.Restrictions {
				target := t.Get(targetIdx)
				if target == nil || !target.Dead {
					allDead = false
					break
				}
			}
			if allDead {
				line.Dead = true
				line.Active = false
				changed = true
			}
		}
	}
}

// SelectTargets activates exactly the target lines in targets, plus
// every alive hypothesis whose restrictions are empty or intersect
// targets. Mirrors the source's select_targets: it does not deactivate
// dead lines, only toggles Active among the alive ones.
func (t *Tableau) SelectTargets(targets map[int]bool) {
	for i, line := range t.Lines {
		if line.Dead {
			line.Active = false
			continue
		}
		if line.Target {
			line.Active = targets[i]
			continue
		}
		if len(line.Restrictions) == 0 {
			line.Active = true
			continue
		}
		active := false
		for _, r := range line.Restrictions {
			if targets[r] {
				active = true
				break
			}
		}
		line.Active = active
	}
}

// LiveLines returns the indices of every active, non-dead line.
func (t *Tableau) LiveLines() []int {
	var out []int
	for i, line := range t.Lines {
		if line.Active && !line.Dead {
			out = append(out, i)
		}
	}
	return out
}
