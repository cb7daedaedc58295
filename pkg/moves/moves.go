// Package moves implements the cleanup and reasoning move catalogue:
// the total, boolean-returning transformations the waterfall applies
// to tableau lines and the hydra tree. Ported from the source's
// moves.cpp. Every move respects assumptions_compatible and
// restrictions_compatible; a move that would combine incompatible
// lines is silently skipped (returns false, changes nothing), matching
// the "move-not-applicable is silent" rule in spec.md §7.
package moves

import (
	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/hydra"
	"github.com/proofdroid/prover/pkg/registry"
	"github.com/proofdroid/prover/pkg/subst"
	"github.com/proofdroid/prover/pkg/tableau"
	"github.com/proofdroid/prover/pkg/unify"
)

// Engine bundles the three pieces of shared state a move mutates: the
// tableau, the current hydra tree, and the variable registry used to
// mint Skolem functions and rename collisions.
type Engine struct {
	Tab   *tableau.Tableau
	Hydra *hydra.Tree
	Reg   *registry.Registry
}

// New returns an Engine over the given tableau, hydra tree, and
// registry. None of the three are copied; the Engine mutates them in
// place.
func New(tab *tableau.Tableau, hyd *hydra.Tree, reg *registry.Registry) *Engine {
	return &Engine{Tab: tab, Hydra: hyd, Reg: reg}
}

// negateCopy negates a deep copy of f. A failure means f was not
// actually a formula, a structural bug upstream rather than a
// move-not-applicable condition; per spec.md §7 that still surfaces as
// an ordinary false return, not a panic, so callers propagate ok.
func negateCopy(f *formula.Node, rewriteDisj bool) (n *formula.Node, ok bool) {
	n, err := formula.NegateNode(formula.DeepCopy(f), rewriteDisj)
	if err != nil {
		return nil, false
	}
	return n, true
}

func (e *Engine) varsOf(targetIdx int) map[string]struct{} {
	line := e.Tab.Get(targetIdx)
	return formula.VarsUsed(line.Formula, true, true)
}

func cloneInto(line *tableau.Line, just tableau.Justification) *tableau.Line {
	return &tableau.Line{
		Active:        true,
		Assumptions:   append([]int{}, line.Assumptions...),
		Restrictions:  append([]int{}, line.Restrictions...),
		Justification: just,
	}
}

func appendHypothesis(e *Engine, source *tableau.Line, f *formula.Node, just tableau.Justification) int {
	l := cloneInto(source, just)
	l.Formula = f
	l.Constants = formula.GetConstants(f)
	l.AppliedUnits = make(map[[2]int]bool)
	return e.Tab.Append(l)
}

func appendTarget(e *Engine, source *tableau.Line, f, negation *formula.Node, just tableau.Justification) int {
	l := cloneInto(source, just)
	l.Formula = f
	l.Negation = negation
	l.Target = true
	l.Constants = formula.GetConstants(f)
	l.AppliedUnits = make(map[[2]int]bool)
	return e.Tab.Append(l)
}

func kill(line *tableau.Line) {
	line.Dead = true
	line.Active = false
}

func liveFormula(line *tableau.Line) (matrix *formula.Node, specials []*formula.Node) {
	return formula.SplitSpecial(line.Formula)
}

// Skolemize strips the leading quantifier prefix of line idx's
// formula, replacing each existential with a fresh function of the
// outer universals actually occurring in its scope (or a fresh
// parameter when none do), and dropping each universal. For a target,
// the Negation field is re-skolemized and renegated in step, since the
// negation must stay the cached negation of the formula. After
// stripping, every remaining free Individual variable is parameterized
// (made Skolem-rigid): per spec.md §4.5 this acts as "on the first
// call", which is always true for a line, since re-running Skolemize
// on an all-Parameter formula is a no-op.
func (e *Engine) Skolemize(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead {
		return false
	}
	if !hasLeadingQuantifier(line.Formula) {
		return false
	}

	newFormula := Parameterize(skolemize(line.Formula, nil, e.Reg))
	line.Formula = newFormula
	line.Constants = formula.GetConstants(newFormula)

	if line.Target && line.Negation != nil {
		newNegation := Parameterize(skolemize(line.Negation, nil, e.Reg))
		line.Negation = newNegation
	}
	return true
}

func hasLeadingQuantifier(n *formula.Node) bool {
	matrix, _ := formula.SplitSpecial(n)
	return matrix.Type == formula.Quantifier
}

// skolemize strips the leading quantifier chain from n, given the
// universally quantified variable names already in scope.
func skolemize(n *formula.Node, universals []string, reg *registry.Registry) *formula.Node {
	matrix, specials := formula.SplitSpecial(n)
	if matrix.Type != formula.Quantifier {
		return n
	}

	bound, body := matrix.Children[0], matrix.Children[1]
	switch matrix.Symbol {
	case formula.SymbolForall:
		formula.UnbindVar(body, bound.Name)
		stripped := skolemize(body, append(universals, bound.Name), reg)
		return formula.ReapplySpecial(specials, stripped)

	case formula.SymbolExists:
		formula.UnbindVar(body, bound.Name)
		used := usedOf(universals, body)
		fresh := reg.Fresh(bound.Name)

		var term *formula.Node
		if len(used) == 0 {
			term = formula.NewVariable(fresh, formula.Parameter)
		} else {
			args := make([]*formula.Node, len(used))
			for i, name := range used {
				args[i] = formula.NewVariable(name, formula.Individual)
			}
			head := formula.NewVariableArity(fresh, formula.Function, len(used))
			term = formula.NewApplication(head, args...)
		}

		s := subst.New()
		s, _ = s.Extend(bound.Name, term)
		substituted := subst.Substitute(body, s)
		stripped := skolemize(substituted, universals, reg)
		return formula.ReapplySpecial(specials, stripped)

	default:
		return n
	}
}

func usedOf(universals []string, body *formula.Node) []string {
	free := formula.VarsUsed(body, false, false)
	var out []string
	for _, u := range universals {
		if _, ok := free[u]; ok {
			out = append(out, u)
		}
	}
	return out
}

// Parameterize converts every free Individual variable in formula to
// Parameter kind, in place, matching node.cpp's parameterize. Called
// once a line's leading quantifiers have been stripped: the remaining
// free variables are universally-quantified-then-eliminated, so they
// act as arbitrary-but-fixed constants, not unification variables.
func Parameterize(f *formula.Node) *formula.Node {
	if f.Type == formula.Variable && f.VarKind == formula.Individual && !f.Bound {
		f.VarKind = formula.Parameter
		return f
	}
	for _, c := range f.Children {
		Parameterize(c)
	}
	return f
}

// MaterialEquivalence implements move_me: a hypothesis or target whose
// matrix is P↔Q. On a hypothesis, both directions are true, so two new
// hypotheses P→Q and Q→P are appended (no hydra interaction). On a
// target, proving P↔Q requires proving both directions, so the hydra
// splits into an AndJoin pair.
func (e *Engine) MaterialEquivalence(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead {
		return false
	}
	matrix, specials := liveFormula(line)
	if !matrix.IsEquivalence() {
		return false
	}
	p, q := matrix.Children[0], matrix.Children[1]
	pq := formula.ReapplySpecial(specials, formula.NewBinary(formula.SymbolImplies, formula.DeepCopy(p), formula.DeepCopy(q)))
	qp := formula.ReapplySpecial(specials, formula.NewBinary(formula.SymbolImplies, formula.DeepCopy(q), formula.DeepCopy(p)))

	just := tableau.Justification{Reason: tableau.ReasonMaterialEquivalence, Sources: []int{idx}}
	if !line.Target {
		appendHypothesis(e, line, pq, just)
		appendHypothesis(e, line, qp, just)
		kill(line)
		return true
	}

	negPQ, ok := negateCopy(pq, true)
	if !ok {
		return false
	}
	negQP, ok := negateCopy(qp, true)
	if !ok {
		return false
	}
	idxPQ := appendTarget(e, line, pq, negPQ, just)
	idxQP := appendTarget(e, line, qp, negQP, just)
	e.Hydra.Split(idx, idxPQ, idxQP, hydra.AndJoin)
	kill(line)
	return true
}

// ConditionalPremise implements move_cp: a target of the form P→Q adds
// P as a hypothesis restricted to a new target Q, and hydra-replaces
// the old target with the new one (AND-preserving: discharging Q under
// the added hypothesis P discharges the original implication).
func (e *Engine) ConditionalPremise(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead || !line.Target {
		return false
	}
	matrix, specials := liveFormula(line)
	if !matrix.IsImplication() {
		return false
	}
	p, q := matrix.Children[0], matrix.Children[1]

	just := tableau.Justification{Reason: tableau.ReasonConditionalPremise, Sources: []int{idx}}
	qForm := formula.ReapplySpecial(specials, formula.DeepCopy(q))
	negQForm, ok := negateCopy(qForm, true)
	if !ok {
		return false
	}
	idxQ := appendTarget(e, line, qForm, negQForm, just)

	pForm := formula.ReapplySpecial(specials, formula.DeepCopy(p))
	hypLine := cloneInto(line, just)
	hypLine.Formula = pForm
	hypLine.Constants = formula.GetConstants(pForm)
	hypLine.AppliedUnits = make(map[[2]int]bool)
	hypLine.Restrictions = tableau.CombineRestrictions(hypLine.Restrictions, []int{idxQ})
	e.Tab.Append(hypLine)

	e.Hydra.Replace(idx, idxQ, e.varsOf)
	kill(line)
	return true
}

// SplitConjunction implements move_sc: a hypothesis A∧B splits into
// two hypotheses (AND, both facts available); a target A∨B splits the
// hydra into an OrJoin pair (proving either disjunct suffices).
func (e *Engine) SplitConjunction(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead {
		return false
	}
	matrix, specials := liveFormula(line)
	just := tableau.Justification{Reason: tableau.ReasonSplitConjunction, Sources: []int{idx}}

	if !line.Target {
		if !matrix.IsConjunction() {
			return false
		}
		a := formula.ReapplySpecial(specials, formula.DeepCopy(matrix.Children[0]))
		b := formula.ReapplySpecial(specials, formula.DeepCopy(matrix.Children[1]))
		appendHypothesis(e, line, a, just)
		appendHypothesis(e, line, b, just)
		kill(line)
		return true
	}

	if !matrix.IsDisjunction() {
		return false
	}
	a := formula.ReapplySpecial(specials, formula.DeepCopy(matrix.Children[0]))
	b := formula.ReapplySpecial(specials, formula.DeepCopy(matrix.Children[1]))
	negA, ok := negateCopy(a, true)
	if !ok {
		return false
	}
	negB, ok := negateCopy(b, true)
	if !ok {
		return false
	}
	idxA := appendTarget(e, line, a, negA, just)
	idxB := appendTarget(e, line, b, negB, just)
	e.Hydra.Split(idx, idxA, idxB, hydra.OrJoin)
	kill(line)
	return true
}

// NegatedImplication implements move_ni. Ported directly from
// moves.cpp's move_ni (see DESIGN.md for the restriction-bookkeeping
// divergence noted there):
//
//   - Hypothesis ¬(P→Q), with every free variable of Q also free in P:
//     decompose into hypothesis P and a new target whose Formula is ¬Q
//     (Negation Q) — an artificial obligation whose later discharge
//     would mean Q was independently derived, contradicting the known
//     ¬Q and closing that branch.
//   - Target P→Q: rewritten to its disjunctive form ¬P∨Q and OR-split
//     into two target branches, ¬P and Q.
func (e *Engine) NegatedImplication(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead {
		return false
	}
	matrix, specials := liveFormula(line)
	just := tableau.Justification{Reason: tableau.ReasonNegatedImplication, Sources: []int{idx}}

	if !line.Target {
		if !matrix.IsNegation() || !matrix.Children[0].IsImplication() {
			return false
		}
		inner := matrix.Children[0]
		p, q := inner.Children[0], inner.Children[1]
		varsQ := formula.VarsUsed(q, true, true)
		varsP := formula.VarsUsed(p, true, true)
		for v := range varsQ {
			if _, ok := varsP[v]; !ok {
				return false
			}
		}

		pForm := formula.ReapplySpecial(specials, formula.DeepCopy(p))
		negQ, ok := negateCopy(q, false)
		if !ok {
			return false
		}
		notQ := formula.ReapplySpecial(specials, negQ)
		qForm := formula.ReapplySpecial(specials, formula.DeepCopy(q))

		appendHypothesis(e, line, pForm, just)
		appendTarget(e, line, notQ, qForm, just)
		kill(line)
		return true
	}

	if !matrix.IsImplication() {
		return false
	}
	p, q := matrix.Children[0], matrix.Children[1]
	negP, ok := negateCopy(p, false)
	if !ok {
		return false
	}
	notP := formula.ReapplySpecial(specials, negP)
	pCanon := formula.ReapplySpecial(specials, formula.DisjunctionToImplication(formula.DeepCopy(p)))
	qForm := formula.ReapplySpecial(specials, formula.DeepCopy(q))
	negQ, ok := negateCopy(q, true)
	if !ok {
		return false
	}
	notQ := formula.ReapplySpecial(specials, negQ)

	idxNotP := appendTarget(e, line, notP, pCanon, just)
	idxQ := appendTarget(e, line, qForm, notQ, just)
	e.Hydra.Split(idx, idxNotP, idxQ, hydra.OrJoin)
	kill(line)
	return true
}

// SplitDisjunctiveImplication implements move_sdi: a hypothesis
// (P∨Q)→R, or a dual target, where every free variable of R already
// occurs in both P and Q, emits P→R and Q→R. Hypothesis form adds both;
// target form AND-splits, since (P∨Q)→R ≡ (P→R)∧(Q→R) and both
// implications must be closed to close the original.
func (e *Engine) SplitDisjunctiveImplication(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead {
		return false
	}
	matrix, specials := liveFormula(line)
	if !matrix.IsImplication() || !matrix.Children[0].IsDisjunction() {
		return false
	}
	antecedent, r := matrix.Children[0], matrix.Children[1]
	p, q := antecedent.Children[0], antecedent.Children[1]

	varsR := formula.VarsUsed(r, true, true)
	varsP := formula.VarsUsed(p, true, true)
	varsQ := formula.VarsUsed(q, true, true)
	for v := range varsR {
		_, okP := varsP[v]
		_, okQ := varsQ[v]
		if !okP || !okQ {
			return false
		}
	}

	just := tableau.Justification{Reason: tableau.ReasonSplitDisjunctiveImplication, Sources: []int{idx}}
	pr := formula.ReapplySpecial(specials, formula.NewBinary(formula.SymbolImplies, formula.DeepCopy(p), formula.DeepCopy(r)))
	qr := formula.ReapplySpecial(specials, formula.NewBinary(formula.SymbolImplies, formula.DeepCopy(q), formula.DeepCopy(r)))

	if !line.Target {
		appendHypothesis(e, line, pr, just)
		appendHypothesis(e, line, qr, just)
		kill(line)
		return true
	}

	negPR, ok := negateCopy(pr, true)
	if !ok {
		return false
	}
	negQR, ok := negateCopy(qr, true)
	if !ok {
		return false
	}
	idxPR := appendTarget(e, line, pr, negPR, just)
	idxQR := appendTarget(e, line, qr, negQR, just)
	e.Hydra.Split(idx, idxPR, idxQR, hydra.AndJoin)
	kill(line)
	return true
}

// SplitConjunctiveImplication implements move_sci: a hypothesis
// P→(Q∧R), or a dual target, where every free variable of Q and R
// already occurs in P, emits P→Q and P→R. Both directions are needed
// to reconstruct the original (AND for hypotheses and targets alike:
// P→(Q∧R) ≡ (P→Q)∧(P→R)).
func (e *Engine) SplitConjunctiveImplication(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead {
		return false
	}
	matrix, specials := liveFormula(line)
	if !matrix.IsImplication() || !matrix.Children[1].IsConjunction() {
		return false
	}
	p, consequent := matrix.Children[0], matrix.Children[1]
	q, r := consequent.Children[0], consequent.Children[1]

	varsP := formula.VarsUsed(p, true, true)
	for v := range formula.VarsUsed(q, true, true) {
		if _, ok := varsP[v]; !ok {
			return false
		}
	}
	for v := range formula.VarsUsed(r, true, true) {
		if _, ok := varsP[v]; !ok {
			return false
		}
	}

	just := tableau.Justification{Reason: tableau.ReasonSplitConjunctiveImplication, Sources: []int{idx}}
	pq := formula.ReapplySpecial(specials, formula.NewBinary(formula.SymbolImplies, formula.DeepCopy(p), formula.DeepCopy(q)))
	pr := formula.ReapplySpecial(specials, formula.NewBinary(formula.SymbolImplies, formula.DeepCopy(p), formula.DeepCopy(r)))

	if !line.Target {
		appendHypothesis(e, line, pq, just)
		appendHypothesis(e, line, pr, just)
		kill(line)
		return true
	}

	negPQ, ok := negateCopy(pq, true)
	if !ok {
		return false
	}
	negPR, ok := negateCopy(pr, true)
	if !ok {
		return false
	}
	idxPQ := appendTarget(e, line, pq, negPQ, just)
	idxPR := appendTarget(e, line, pr, negPR, just)
	e.Hydra.Split(idx, idxPQ, idxPR, hydra.AndJoin)
	kill(line)
	return true
}

// DisjunctiveIdempotence implements move_di: P∨P (hypothesis or
// target matrix) collapses to P in place.
func (e *Engine) DisjunctiveIdempotence(idx int) bool {
	return idempotence(e, idx, func(m *formula.Node) bool { return m.IsDisjunction() }, tableau.ReasonDisjunctiveIdempotence)
}

// ConjunctiveIdempotence implements move_ci: P∧P collapses to P.
func (e *Engine) ConjunctiveIdempotence(idx int) bool {
	return idempotence(e, idx, func(m *formula.Node) bool { return m.IsConjunction() }, tableau.ReasonConjunctiveIdempotence)
}

func idempotence(e *Engine, idx int, shape func(*formula.Node) bool, reason tableau.Reason) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead {
		return false
	}
	matrix, specials := liveFormula(line)
	if !shape(matrix) || !formula.Equal(matrix.Children[0], matrix.Children[1]) {
		return false
	}
	collapsed := formula.ReapplySpecial(specials, formula.DeepCopy(matrix.Children[0]))
	just := tableau.Justification{Reason: reason, Sources: []int{idx}}

	if !line.Target {
		appendHypothesis(e, line, collapsed, just)
		kill(line)
		return true
	}
	negCollapsed, ok := negateCopy(collapsed, true)
	if !ok {
		return false
	}
	idxNew := appendTarget(e, line, collapsed, negCollapsed, just)
	e.Hydra.Replace(idx, idxNew, e.varsOf)
	kill(line)
	return true
}

// ModusPonensTollens implements move_mpt. impl is the index of a (live,
// non-dead) implication line; others names the "other" lines; ponens
// selects forward (all others hypotheses) or backward (all others
// targets) inference. specialLines is the set of line indices the
// stripped guards must unify against — spec.md §9 notes this is empty
// in every call site the source exercises, so the default waterfall
// path passes nil and every guard must simply have no surviving
// constrained variable, or the move fails.
func (e *Engine) ModusPonensTollens(impl int, others []int, ponens bool, specialLines []int) bool {
	implLine := e.Tab.Get(impl)
	if implLine == nil || !implLine.Active || implLine.Dead {
		return false
	}
	for _, o := range others {
		otherLine := e.Tab.Get(o)
		if otherLine == nil || !otherLine.Active || otherLine.Dead {
			return false
		}
		if ponens && otherLine.Target {
			return false
		}
		if !ponens && !otherLine.Target {
			return false
		}
		if !tableau.AssumptionsCompatible(implLine.Assumptions, otherLine.Assumptions) {
			return false
		}
		if !tableau.RestrictionsCompatible(implLine.Restrictions, otherLine.Restrictions) {
			return false
		}
	}

	matrix, specials := liveFormula(implLine)
	workingImpl := formula.DeepCopy(matrix)
	if !ponens {
		contra, err := formula.Contrapositive(workingImpl)
		if err != nil {
			return false
		}
		workingImpl = contra
	}
	if !workingImpl.IsImplication() {
		return false
	}

	// spec.md §4.2 step 3: a variable shared by name between the
	// implication and an "other" line is a naming coincidence, not a
	// real shared binding — rename every such collision to a fresh
	// name before unifying, matching moves.cpp's modus_ponens (its
	// vars_used/set_intersection/vars_rename_list/rename_vars run
	// before conjunction_to_list, on the whole implication copy).
	renaming := make(map[string]string)
	for _, o := range others {
		otherFormula := e.Tab.Get(o).Formula
		for v := range formula.FindCommonVariables(workingImpl, otherFormula) {
			if _, done := renaming[v]; !done {
				renaming[v] = e.Reg.Fresh(v)
			}
		}
	}
	if len(renaming) > 0 {
		formula.RenameVars(workingImpl, renaming)
	}

	conjuncts := formula.ConjunctionToList(workingImpl.Children[0])
	if len(conjuncts) != len(others) {
		return false
	}

	s := subst.New()
	var ok bool
	for i, conjunct := range conjuncts {
		otherFormula := e.Tab.Get(others[i]).Formula
		if ponens {
			s, ok = unify.Unify(conjunct, otherFormula, s)
		} else {
			otherNeg := e.Tab.Get(others[i]).Negation
			s, ok = unify.Unify(conjunct, otherNeg, s)
		}
		if !ok {
			return false
		}
	}

	consequent := workingImpl.Children[1]
	var resultFormula *formula.Node
	if ponens {
		resultFormula = subst.Substitute(consequent, s)
	} else {
		neg, err := formula.NegateNode(formula.DeepCopy(consequent), true)
		if err != nil {
			return false
		}
		resultFormula = subst.Substitute(neg, s)
	}

	for _, special := range specials {
		substituted := subst.Substitute(special, s)
		matched := false
		for _, li := range specialLines {
			candidate := e.Tab.Get(li)
			if candidate == nil {
				continue
			}
			if _, ok := unify.Unify(substituted, candidate.Formula, subst.New()); ok {
				matched = true
				break
			}
		}
		used := formula.VarsUsed(resultFormula, false, false)
		if _, stillUsed := used[special.Children[1].Name]; stillUsed && !matched {
			return false
		}
	}
	resultFormula = formula.ReapplySpecial(specials, resultFormula)

	combinedAssumptions := implLine.Assumptions
	combinedRestrictions := implLine.Restrictions
	for _, o := range others {
		otherLine := e.Tab.Get(o)
		combinedAssumptions = tableau.CombineAssumptions(combinedAssumptions, otherLine.Assumptions)
		combinedRestrictions = tableau.CombineRestrictions(combinedRestrictions, otherLine.Restrictions)
	}

	sources := append([]int{impl}, others...)
	reason := tableau.ReasonModusPonens
	if !ponens {
		reason = tableau.ReasonModusTollens
	}
	just := tableau.Justification{Reason: reason, Sources: sources}

	if ponens {
		l := &tableau.Line{
			Formula:       resultFormula,
			Active:        true,
			Justification: just,
			Assumptions:   combinedAssumptions,
			Restrictions:  combinedRestrictions,
			Constants:     formula.GetConstants(resultFormula),
			AppliedUnits:  make(map[[2]int]bool),
		}
		e.Tab.Append(l)
		implLine.Split = true
		return true
	}

	negResult, ok := negateCopy(resultFormula, true)
	if !ok {
		return false
	}
	idxNew := e.Tab.Append(&tableau.Line{
		Formula:       resultFormula,
		Negation:      negResult,
		Target:        true,
		Active:        true,
		Justification: just,
		Assumptions:   combinedAssumptions,
		Restrictions:  combinedRestrictions,
		Constants:     formula.GetConstants(resultFormula),
		AppliedUnits:  make(map[[2]int]bool),
	})
	e.Hydra.ReplaceList(others, idxNew, e.varsOf)
	for _, o := range others {
		kill(e.Tab.Get(o))
	}
	return true
}

// EqualityRewrite implements move_rewrite: given a line and an
// equality hypothesis P=Q, find the first subterm of the line's
// formula that unifies with P (pre-order traversal) and replace it
// with the substituted Q. Target/hypothesis status is preserved; for a
// target the Negation field is recomputed from the rewritten formula.
func (e *Engine) EqualityRewrite(idx, eqIdx int) bool {
	line := e.Tab.Get(idx)
	eqLine := e.Tab.Get(eqIdx)
	if line == nil || eqLine == nil || !line.Active || line.Dead || !eqLine.Active || eqLine.Dead {
		return false
	}
	if eqLine.Target {
		return false
	}
	eqMatrix, _ := liveFormula(eqLine)
	if eqMatrix.Type != formula.Application || len(eqMatrix.Children) != 3 || eqMatrix.Children[0].Symbol != formula.SymbolEquals {
		return false
	}
	p, q := eqMatrix.Children[1], eqMatrix.Children[2]
	if !tableau.AssumptionsCompatible(line.Assumptions, eqLine.Assumptions) {
		return false
	}
	if !tableau.RestrictionsCompatible(line.Restrictions, eqLine.Restrictions) {
		return false
	}

	rewritten, ok := rewriteFirst(line.Formula, p, q)
	if !ok {
		return false
	}

	just := tableau.Justification{Reason: tableau.ReasonEqualitySubst, Sources: []int{idx, eqIdx}}
	if !line.Target {
		appendHypothesis(e, line, rewritten, just)
		kill(line)
		return true
	}
	negRewritten, ok := negateCopy(rewritten, true)
	if !ok {
		return false
	}
	idxNew := appendTarget(e, line, rewritten, negRewritten, just)
	e.Hydra.Replace(idx, idxNew, e.varsOf)
	kill(line)
	return true
}

// rewriteFirst performs a pre-order search for a subterm unifying with
// p and replaces it (and only it) with q under that unifier.
func rewriteFirst(n, p, q *formula.Node) (*formula.Node, bool) {
	if s, ok := unify.Unify(formula.DeepCopy(p), formula.DeepCopy(n), subst.New()); ok && n.IsTerm() {
		return subst.Substitute(q, s), true
	}
	if len(n.Children) == 0 {
		return n, false
	}
	cp := &formula.Node{Type: n.Type, Symbol: n.Symbol, Name: n.Name, VarKind: n.VarKind, Bound: n.Bound, Arity: n.Arity}
	cp.Children = make([]*formula.Node, len(n.Children))
	rewrote := false
	for i, c := range n.Children {
		if !rewrote {
			if newChild, ok := rewriteFirst(c, p, q); ok {
				cp.Children[i] = newChild
				rewrote = true
				continue
			}
		}
		cp.Children[i] = formula.DeepCopy(c)
	}
	return cp, rewrote
}

// SplitDisjunction implements move_sd: a hypothesis A∨B with disjoint
// free variables produces three hypotheses under signed assumptions:
// ¬A with {+n}, A with {-n}, B with {-n}, where n is the line's
// 1-based index. This is the only move that introduces assumptions.
func (e *Engine) SplitDisjunction(idx int) bool {
	line := e.Tab.Get(idx)
	if line == nil || !line.Active || line.Dead || line.Target {
		return false
	}
	matrix, specials := liveFormula(line)
	if !matrix.IsDisjunction() {
		return false
	}
	a, b := matrix.Children[0], matrix.Children[1]
	varsA := formula.VarsUsed(a, true, true)
	varsB := formula.VarsUsed(b, true, true)
	for v := range varsA {
		if _, ok := varsB[v]; ok {
			return false
		}
	}

	n := idx + 1 // 1-based index per spec.md §4.5
	just := tableau.Justification{Reason: tableau.ReasonSplitDisjunction, Sources: []int{idx}}

	negA, ok := negateCopy(a, false)
	if !ok {
		return false
	}
	notA := formula.ReapplySpecial(specials, negA)
	aForm := formula.ReapplySpecial(specials, formula.DeepCopy(a))
	bForm := formula.ReapplySpecial(specials, formula.DeepCopy(b))

	notAHyp := cloneInto(line, just)
	notAHyp.Formula = notA
	notAHyp.Constants = formula.GetConstants(notA)
	notAHyp.AppliedUnits = make(map[[2]int]bool)
	notAHyp.Assumptions = tableau.CombineAssumptions(notAHyp.Assumptions, []int{n})
	e.Tab.Append(notAHyp)

	aHyp := cloneInto(line, just)
	aHyp.Formula = aForm
	aHyp.Constants = formula.GetConstants(aForm)
	aHyp.AppliedUnits = make(map[[2]int]bool)
	aHyp.Assumptions = tableau.CombineAssumptions(aHyp.Assumptions, []int{-n})
	e.Tab.Append(aHyp)

	bHyp := cloneInto(line, just)
	bHyp.Formula = bForm
	bHyp.Constants = formula.GetConstants(bForm)
	bHyp.AppliedUnits = make(map[[2]int]bool)
	bHyp.Assumptions = tableau.CombineAssumptions(bHyp.Assumptions, []int{-n})
	e.Tab.Append(bHyp)

	line.Split = true
	return true
}
