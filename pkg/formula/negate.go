package formula

import "github.com/proofdroid/prover/pkg/proverr"

// NegateNode produces the negation-normal-form negation of n: double
// negation collapses, De Morgan pushes ¬ through ∧/∨, ¬(φ→ψ) ≡ φ∧¬ψ,
// ¬(φ↔ψ) ≡ (φ∧¬ψ)∨(ψ∧¬φ), quantifiers dualize, ¬⊤≡⊥ and ¬⊥≡⊤. When
// rewriteDisj is set, a disjunction at the top of the result is
// canonicalized to its equivalent implication ¬A→B; disjunctions nested
// inside the result (under another connective or a quantifier) are not
// rewritten. Returns
// ErrNotAFormula for any term (Variable, Tuple, UnaryOp, BinaryOp, or a
// non-⊤/⊥ Constant), matching node.cpp's negate_node.
//
// n is consumed: callers that still need the original should pass
// DeepCopy(n).
func NegateNode(n *Node, rewriteDisj bool) (*Node, error) {
	switch n.Type {
	case UnaryPred, BinaryPred:
		return NewUnary(SymbolNot, n), nil

	case Application:
		if n.Children[0].IsPredicate() {
			return NewUnary(SymbolNot, n), nil
		}
		return nil, proverr.ErrNotAFormula

	case LogicalUnary:
		if n.Symbol == SymbolNot {
			phi := n.Children[0]
			if rewriteDisj {
				return DisjunctionToImplication(phi), nil
			}
			return phi, nil
		}
		return NewUnary(SymbolNot, n), nil

	case LogicalBinary:
		switch n.Symbol {
		case SymbolAnd:
			leftNeg, err := NegateNode(n.Children[0], false)
			if err != nil {
				return nil, err
			}
			rightNeg, err := NegateNode(n.Children[1], false)
			if err != nil {
				return nil, err
			}
			res := NewBinary(SymbolOr, leftNeg, rightNeg)
			if rewriteDisj {
				return DisjunctionToImplication(res), nil
			}
			return res, nil

		case SymbolOr:
			leftNeg, err := NegateNode(n.Children[0], false)
			if err != nil {
				return nil, err
			}
			rightNeg, err := NegateNode(n.Children[1], false)
			if err != nil {
				return nil, err
			}
			return NewBinary(SymbolAnd, leftNeg, rightNeg), nil

		case SymbolImplies:
			phi, psi := n.Children[0], n.Children[1]
			negPsi, err := NegateNode(psi, false)
			if err != nil {
				return nil, err
			}
			return NewBinary(SymbolAnd, phi, negPsi), nil

		case SymbolIff:
			phi, psi := n.Children[0], n.Children[1]
			negPhi, err := NegateNode(DeepCopy(phi), false)
			if err != nil {
				return nil, err
			}
			negPsi, err := NegateNode(DeepCopy(psi), false)
			if err != nil {
				return nil, err
			}
			left := NewBinary(SymbolAnd, phi, negPsi)
			right := NewBinary(SymbolAnd, psi, negPhi)
			res := NewBinary(SymbolOr, left, right)
			if rewriteDisj {
				return DisjunctionToImplication(res), nil
			}
			return res, nil

		default:
			return NewUnary(SymbolNot, n), nil
		}

	case Quantifier:
		newSym := SymbolExists
		if n.Symbol == SymbolExists {
			newSym = SymbolForall
		}
		v, body := n.Children[0], n.Children[1]
		negBody, err := NegateNode(body, false)
		if err != nil {
			return nil, err
		}
		return &Node{Type: Quantifier, Symbol: newSym, Children: []*Node{v, negBody}}, nil

	case Constant:
		switch n.Symbol {
		case SymbolTop:
			return NewConstant(SymbolBot), nil
		case SymbolBot:
			return NewConstant(SymbolTop), nil
		default:
			return nil, proverr.ErrNotAFormula
		}

	default:
		return nil, proverr.ErrNotAFormula
	}
}

// DisjunctionToImplication rewrites a top-level disjunction A∨B into the
// equivalent implication ¬A→B, consuming formula. Any other shape is
// returned unchanged. If negating A fails (A is a term rather than a
// formula), A is wrapped in an explicit ¬ instead; node.cpp's
// disjunction_to_implication never checks the analogous call's result.
func DisjunctionToImplication(formula *Node) *Node {
	if !formula.IsDisjunction() {
		return formula
	}
	antecedent := formula.Children[0]
	negated, err := NegateNode(antecedent, false)
	if err != nil {
		negated = NewUnary(SymbolNot, antecedent)
	}
	return NewBinary(SymbolImplies, negated, formula.Children[1])
}

// Contrapositive returns ¬B→¬A for an implication A→B. Fails if
// implication is not an implication node.
func Contrapositive(implication *Node) (*Node, error) {
	if !implication.IsImplication() {
		return nil, proverr.NewStructural("contrapositive", "node is not an implication")
	}
	antecedent, consequent := implication.Children[0], implication.Children[1]

	notConsequent, err := NegateNode(DeepCopy(consequent), false)
	if err != nil {
		return nil, err
	}
	notAntecedent, err := NegateNode(DeepCopy(antecedent), false)
	if err != nil {
		return nil, err
	}
	return NewBinary(SymbolImplies, notConsequent, notAntecedent), nil
}
