// Package unify implements standard first-order unification with
// occurs-check over the formula tree, distinguishing unifiable
// individual variables from parameters, functions, and predicates.
// Ported from the source's unify.cpp.
package unify

import (
	"github.com/proofdroid/prover/pkg/formula"
	"github.com/proofdroid/prover/pkg/subst"
)

// Unify attempts to unify a and b under the bindings already recorded in
// s, returning an extended substitution on success. Occurs-check is
// always enabled. Functions and predicates are never bound by
// unification; only free Individual variables are.
func Unify(a, b *formula.Node, s *subst.Substitution) (*subst.Substitution, bool) {
	if a.IsFreeVariable() {
		return unifyVariable(a, b, s)
	}
	if b.IsFreeVariable() {
		return unifyVariable(b, a, s)
	}

	if a.Type == formula.Variable && b.Type == formula.Variable {
		if a.VarKind != b.VarKind {
			return nil, false
		}
		return s, a.Name == b.Name
	}

	if a.Type != b.Type {
		return nil, false
	}

	switch a.Type {
	case formula.Constant:
		return s, a.Symbol == b.Symbol

	case formula.Application:
		return unifyApplication(a, b, s)

	case formula.Tuple:
		return unifyChildren(a.Children, b.Children, s)

	case formula.LogicalUnary:
		if a.Symbol != b.Symbol {
			return nil, false
		}
		return Unify(a.Children[0], b.Children[0], s)

	case formula.LogicalBinary:
		if a.Symbol != b.Symbol {
			return nil, false
		}
		return unifyChildren(a.Children, b.Children, s)

	case formula.Quantifier:
		return unifyQuantifier(a, b, s)

	default:
		return nil, false
	}
}

func unifyApplication(a, b *formula.Node, s *subst.Substitution) (*subst.Substitution, bool) {
	headA, headB := a.Children[0], b.Children[0]
	if headA.Type != headB.Type {
		return nil, false
	}
	switch headA.Type {
	case formula.Variable:
		if headA.VarKind != headB.VarKind || headA.Name != headB.Name {
			return nil, false
		}
	case formula.BinaryOp, formula.UnaryOp, formula.BinaryPred, formula.UnaryPred:
		if headA.Symbol != headB.Symbol {
			return nil, false
		}
	default:
		return nil, false
	}

	if len(a.Children) != len(b.Children) {
		return nil, false
	}
	return unifyChildren(a.Children[1:], b.Children[1:], s)
}

func unifyChildren(as, bs []*formula.Node, s *subst.Substitution) (*subst.Substitution, bool) {
	if len(as) != len(bs) {
		return nil, false
	}
	for i := range as {
		next, ok := Unify(as[i], bs[i], s)
		if !ok {
			return nil, false
		}
		s = next
	}
	return s, true
}

func unifyQuantifier(a, b *formula.Node, s *subst.Substitution) (*subst.Substitution, bool) {
	if a.Symbol != b.Symbol {
		return nil, false
	}
	// Bound variables are not aliased or renamed here: two quantifiers
	// unify only when their bound variables already share a name, so
	// quantifier unification never introduces a substitution binding
	// for the bound variable itself.
	boundA, boundB := a.Children[0], b.Children[0]
	if boundA.Name != boundB.Name {
		return nil, false
	}
	return Unify(a.Children[1], b.Children[1], s)
}

func unifyVariable(v, term *formula.Node, s *subst.Substitution) (*subst.Substitution, bool) {
	if bound := s.Lookup(v.Name); bound != nil {
		return Unify(bound, term, s)
	}

	if term.IsFreeVariable() {
		if bound := s.Lookup(term.Name); bound != nil {
			return Unify(v, bound, s)
		}
		if term.Name == v.Name {
			return s, true
		}
	}

	if occursCheck(v.Name, term) {
		return nil, false
	}

	if !(term.Type == formula.Variable || term.Type == formula.Constant ||
		term.Type == formula.Application || term.Type == formula.Tuple) {
		return nil, false
	}

	return s.Extend(v.Name, term)
}

// occursCheck reports whether a variable named name occurs anywhere in
// term, preventing the infinite structures an unchecked binding x := f(x)
// would create.
func occursCheck(name string, term *formula.Node) bool {
	if term.Type == formula.Variable && term.Name == name {
		return true
	}
	for _, c := range term.Children {
		if occursCheck(name, c) {
			return true
		}
	}
	return false
}
