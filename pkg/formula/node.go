// Package formula implements the immutable-by-convention formula/term
// tree used throughout the prover: deep copy, structural equality modulo
// bound-variable renaming, negation normal form, disjunction→implication
// rewriting, and the traversal primitives the moves and waterfall rely
// on. Ported from the source's node.h/node.cpp, with the C++ pointer
// ownership and manual `children.clear(); delete n;` idiom replaced by
// plain Go values: a transformation either returns a brand-new tree or
// takes ownership of a subtree by detaching it from its old parent, the
// way the teacher's Term.Clone()/Term.Equal() pair models ownership in
// pkg/minikanren/core.go without reference counting.
package formula

import "fmt"

// NodeType is the tag of the formula/term sum type.
type NodeType int

const (
	Variable NodeType = iota
	Constant
	Quantifier
	LogicalUnary
	LogicalBinary
	UnaryOp
	BinaryOp
	UnaryPred
	BinaryPred
	Application
	Tuple
)

func (t NodeType) String() string {
	switch t {
	case Variable:
		return "Variable"
	case Constant:
		return "Constant"
	case Quantifier:
		return "Quantifier"
	case LogicalUnary:
		return "LogicalUnary"
	case LogicalBinary:
		return "LogicalBinary"
	case UnaryOp:
		return "UnaryOp"
	case BinaryOp:
		return "BinaryOp"
	case UnaryPred:
		return "UnaryPred"
	case BinaryPred:
		return "BinaryPred"
	case Application:
		return "Application"
	case Tuple:
		return "Tuple"
	default:
		return "Unknown"
	}
}

// Node is a single cell of the formula/term tree. Every node owns its
// Children exclusively: sharing across two live trees is not permitted.
// Variable-only fields (VarKind, Bound, Arity, Name) are meaningless on
// non-Variable nodes and left zero-valued.
type Node struct {
	Type    NodeType
	Symbol  Symbol
	Name    string
	VarKind VarKind
	Bound   bool
	Arity   int

	Children []*Node
}

// NewVariable creates a free Variable node of the given kind.
func NewVariable(name string, kind VarKind) *Node {
	return &Node{Type: Variable, Name: name, VarKind: kind}
}

// NewVariableArity creates a Function/Predicate variable node carrying
// its declared arity (used when such a variable heads an Application).
func NewVariableArity(name string, kind VarKind, arity int) *Node {
	return &Node{Type: Variable, Name: name, VarKind: kind, Arity: arity}
}

// NewConstant creates a symbolic constant (⊤, ⊥, ∅, ...).
func NewConstant(sym Symbol) *Node {
	return &Node{Type: Constant, Symbol: sym}
}

// NewQuantifier creates a ∀/∃ node. v must be a Variable node; BindVar
// runs over the whole quantifier (binder slot included), so v itself
// and every occurrence within body are marked bound, matching the
// source's invariant that a quantifier's bound variable is marked bound
// in every occurrence, including the one introducing it.
func NewQuantifier(sym Symbol, v *Node, body *Node) *Node {
	q := &Node{Type: Quantifier, Symbol: sym, Children: []*Node{v, body}}
	BindVar(q, v.Name)
	return q
}

// NewUnary creates a LogicalUnary node (only ¬ in this algebra).
func NewUnary(sym Symbol, child *Node) *Node {
	return &Node{Type: LogicalUnary, Symbol: sym, Children: []*Node{child}}
}

// NewBinary creates a LogicalBinary node (∧, ∨, →, ↔).
func NewBinary(sym Symbol, left, right *Node) *Node {
	return &Node{Type: LogicalBinary, Symbol: sym, Children: []*Node{left, right}}
}

// NewUnaryOpHead / NewBinaryOpHead / NewUnaryPredHead / NewBinaryPredHead
// create bare operator/predicate symbol heads. These are never used
// alone; they become children.Children[0] of an Application node.
func NewUnaryOpHead(sym Symbol) *Node   { return &Node{Type: UnaryOp, Symbol: sym} }
func NewBinaryOpHead(sym Symbol) *Node  { return &Node{Type: BinaryOp, Symbol: sym} }
func NewUnaryPredHead(sym Symbol) *Node { return &Node{Type: UnaryPred, Symbol: sym} }
func NewBinaryPredHead(sym Symbol) *Node {
	return &Node{Type: BinaryPred, Symbol: sym}
}

// NewApplication creates an Application node: head applied to args.
func NewApplication(head *Node, args ...*Node) *Node {
	children := make([]*Node, 0, len(args)+1)
	children = append(children, head)
	children = append(children, args...)
	return &Node{Type: Application, Children: children}
}

// NewTuple creates an ordered Tuple of terms.
func NewTuple(elems ...*Node) *Node {
	return &Node{Type: Tuple, Children: append([]*Node{}, elems...)}
}

// NewEquals builds the Application(BinaryPred(=), lhs, rhs) encoding
// spec.md §3.1 mandates for equality.
func NewEquals(lhs, rhs *Node) *Node {
	return NewApplication(NewBinaryPredHead(SymbolEquals), lhs, rhs)
}

// IsPredicate mirrors node::is_predicate: true for predicate symbol
// heads, predicate-kind variables, and the ⊤/⊥ constants.
func (n *Node) IsPredicate() bool {
	switch n.Type {
	case BinaryPred, UnaryPred:
		return true
	case Variable:
		return n.VarKind == Predicate
	case Constant:
		return n.Symbol == SymbolTop || n.Symbol == SymbolBot
	default:
		return false
	}
}

// IsVariable reports whether n is an Individual-kind Variable node
// (bound or free).
func (n *Node) IsVariable() bool {
	return n.Type == Variable && n.VarKind == Individual
}

// IsFreeVariable reports whether n is an unbound Individual variable.
func (n *Node) IsFreeVariable() bool {
	return n.Type == Variable && n.VarKind == Individual && !n.Bound
}

// IsParameter reports whether n is a Skolem-parameter variable.
func (n *Node) IsParameter() bool {
	return n.Type == Variable && n.VarKind == Parameter
}

func (n *Node) IsNegation() bool    { return n.Type == LogicalUnary && n.Symbol == SymbolNot }
func (n *Node) IsConjunction() bool { return n.Type == LogicalBinary && n.Symbol == SymbolAnd }
func (n *Node) IsDisjunction() bool { return n.Type == LogicalBinary && n.Symbol == SymbolOr }
func (n *Node) IsImplication() bool { return n.Type == LogicalBinary && n.Symbol == SymbolImplies }
func (n *Node) IsEquivalence() bool { return n.Type == LogicalBinary && n.Symbol == SymbolIff }

// IsTerm reports whether n denotes a term (never a formula): variables,
// constants that aren't ⊤/⊥, applications whose head isn't a predicate,
// and tuples.
func (n *Node) IsTerm() bool {
	switch n.Type {
	case Variable:
		return n.VarKind != Predicate
	case Constant:
		return n.Symbol != SymbolTop && n.Symbol != SymbolBot
	case Application:
		return len(n.Children) > 0 && !n.Children[0].IsPredicate()
	case Tuple, UnaryOp, BinaryOp:
		return true
	default:
		return false
	}
}

// IsSpecialImplication reports whether n has the shape P(x) -> phi where
// P is a structural (predicate) head applied to a single bare variable
// argument. Moves peel such guards before pattern matching.
func (n *Node) IsSpecialImplication() bool {
	if !n.IsImplication() {
		return false
	}
	ante := n.Children[0]
	if ante.Type != Application || len(ante.Children) != 2 {
		return false
	}
	return ante.Children[0].IsPredicate() && ante.Children[1].IsVariable()
}

// DeepCopy returns an independent tree equal in structure to n. No
// sharing survives the copy, matching the source's deep_copy.
func DeepCopy(n *Node) *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Type:    n.Type,
		Symbol:  n.Symbol,
		Name:    n.Name,
		VarKind: n.VarKind,
		Bound:   n.Bound,
		Arity:   n.Arity,
	}
	if len(n.Children) > 0 {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = DeepCopy(c)
		}
	}
	return cp
}

// String gives a minimal, always-available debug rendering. The
// re-parsable/Unicode display formats with full operator precedence
// live in pkg/printer, which renders nodes itself and does not call
// this method.
func (n *Node) String() string {
	switch n.Type {
	case Variable:
		return n.Name
	case Constant, UnaryOp, BinaryOp, UnaryPred, BinaryPred:
		repr, _, _, _, _ := SymbolInfo(n.Symbol)
		return repr
	case LogicalUnary:
		return fmt.Sprintf("(%s %s)", symbolRepr0(n.Symbol), n.Children[0])
	case LogicalBinary:
		return fmt.Sprintf("(%s %s %s)", n.Children[0], symbolRepr0(n.Symbol), n.Children[1])
	case Quantifier:
		return fmt.Sprintf("(%s%s %s)", symbolRepr0(n.Symbol), n.Children[0], n.Children[1])
	case Application:
		s := n.Children[0].String() + "("
		for i, arg := range n.Children[1:] {
			if i > 0 {
				s += ", "
			}
			s += arg.String()
		}
		return s + ")"
	case Tuple:
		s := "("
		for i, c := range n.Children {
			if i > 0 {
				s += ", "
			}
			s += c.String()
		}
		return s + ")"
	default:
		return "<?>"
	}
}

func symbolRepr0(sym Symbol) string {
	repr, _, _, _, _ := SymbolInfo(sym)
	return repr
}
