// Package subst implements the finite variable-to-term map used by
// unification and the moves that build new lines from old ones. Ported
// from the source's substitute.cpp/substitute.h (where a Substitution is
// an unordered_map<string, node*>), with composition rules (spec.md
// §3.2: left-biased merge, a new binding is rejected if it conflicts
// with an existing one) layered on top.
package subst

import "github.com/proofdroid/prover/pkg/formula"

// Substitution maps individual-variable names to trees. Bound values
// are not checked for kind: unification binds variables, constants
// (⊤ and ⊥ included), applications and tuples.
type Substitution struct {
	bindings map[string]*formula.Node
}

// New returns an empty substitution.
func New() *Substitution {
	return &Substitution{bindings: make(map[string]*formula.Node)}
}

// Lookup returns the term bound to name, or nil if unbound.
func (s *Substitution) Lookup(name string) *formula.Node {
	return s.bindings[name]
}

// Len reports the number of bindings.
func (s *Substitution) Len() int { return len(s.bindings) }

// Clone returns an independent copy sharing no mutable state with s.
func (s *Substitution) Clone() *Substitution {
	cp := make(map[string]*formula.Node, len(s.bindings))
	for k, v := range s.bindings {
		cp[k] = v
	}
	return &Substitution{bindings: cp}
}

// Extend returns a new substitution with name bound to term, or false if
// name is already bound to a structurally different term (a conflicting
// binding is rejected rather than overwritten).
func (s *Substitution) Extend(name string, term *formula.Node) (*Substitution, bool) {
	if existing, ok := s.bindings[name]; ok {
		if !formula.Equal(existing, term) {
			return nil, false
		}
		return s, true
	}
	next := s.Clone()
	next.bindings[name] = term
	return next, true
}

// Merge composes s with other using a left-biased rule: every binding of
// other is added to s via Extend, so a name bound in both must agree.
// Returns false on the first conflict.
func Merge(s, other *Substitution) (*Substitution, bool) {
	result := s
	for name, term := range other.bindings {
		var ok bool
		result, ok = result.Extend(name, term)
		if !ok {
			return nil, false
		}
	}
	return result, true
}

// Names returns the bound variable names (unordered).
func (s *Substitution) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for n := range s.bindings {
		names = append(names, n)
	}
	return names
}

// Walk follows a chain of variable-to-variable bindings in s starting
// from term, returning the final value. Unlike Substitute, Walk does
// not descend into compound structure — it only chases variable
// indirection, matching the teacher's Substitution.Walk in
// pkg/minikanren/core.go.
func (s *Substitution) Walk(term *formula.Node) *formula.Node {
	for term.IsFreeVariable() {
		bound := s.bindings[term.Name]
		if bound == nil {
			return term
		}
		term = bound
	}
	return term
}

// Substitute applies s to every free Individual variable occurring in
// formula, returning a new tree. Bound occurrences (Bound==true) are
// never rewritten, which has the same effect as the source's informal
// "does not descend into ∀x. φ" without needing a separate
// per-quantifier guard.
// Functions and predicates (Variable nodes with VarKind Function or
// Predicate) are never substituted.
func Substitute(node *formula.Node, s *Substitution) *formula.Node {
	if node == nil {
		return nil
	}
	if node.IsFreeVariable() {
		if bound, ok := s.bindings[node.Name]; ok {
			return formula.DeepCopy(bound)
		}
	}

	cp := &formula.Node{
		Type:    node.Type,
		Symbol:  node.Symbol,
		Name:    node.Name,
		VarKind: node.VarKind,
		Bound:   node.Bound,
		Arity:   node.Arity,
	}
	if len(node.Children) > 0 {
		cp.Children = make([]*formula.Node, len(node.Children))
		for i, c := range node.Children {
			cp.Children[i] = Substitute(c, s)
		}
	}
	return cp
}
