package formula

import "sort"

// VarsUsed returns the set of Individual-variable names occurring in n,
// filtered by includeParams (whether Parameter-kind variables count) and
// includeBound (whether bound occurrences count). Ported from
// node.cpp's vars_used.
func VarsUsed(n *Node, includeParams, includeBound bool) map[string]struct{} {
	out := make(map[string]struct{})
	varsUsed(n, includeParams, includeBound, out)
	return out
}

func varsUsed(n *Node, includeParams, includeBound bool, out map[string]struct{}) {
	if n == nil {
		return
	}
	if n.Type == Variable && (n.VarKind == Individual || n.VarKind == Parameter) {
		if includeParams || n.VarKind != Parameter {
			if includeBound || !n.Bound {
				out[n.Name] = struct{}{}
			}
		}
	}
	for _, c := range n.Children {
		varsUsed(c, includeParams, includeBound, out)
	}
}

// FindCommonVariables returns the intersection of a's free variables and
// b's free (and bound) variables, matching node.cpp's
// find_common_variables: vars1 excludes parameters, vars2 includes them.
func FindCommonVariables(a, b *Node) map[string]struct{} {
	vars1 := VarsUsed(a, false, false)
	vars2 := VarsUsed(b, true, true)
	common := make(map[string]struct{})
	for v := range vars1 {
		if _, ok := vars2[v]; ok {
			common[v] = struct{}{}
		}
	}
	return common
}

// SortedNames returns the names of a set in sorted order, for
// deterministic iteration (renaming, printing).
func SortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BindVar toggles Bound=true on every occurrence of a Variable named
// name within current. Used when wrapping a formula in a quantifier
// binding that name.
func BindVar(current *Node, name string) {
	if current == nil {
		return
	}
	if current.Type == Variable && current.Name == name {
		current.Bound = true
	}
	for _, c := range current.Children {
		BindVar(c, name)
	}
}

// UnbindVar toggles Bound=false on every occurrence of name within
// current (used by Skolemization once a quantifier is stripped).
func UnbindVar(current *Node, name string) {
	if current == nil {
		return
	}
	if current.Type == Variable && current.Name == name {
		current.Bound = false
	}
	for _, c := range current.Children {
		UnbindVar(c, name)
	}
}

// RenameVars replaces the name of every Variable node named by a key of
// renaming with the corresponding value, in place. Free and bound
// occurrences, quantifier binder slots included, are renamed alike.
func RenameVars(root *Node, renaming map[string]string) {
	if root == nil {
		return
	}
	if root.Type == Variable {
		if to, ok := renaming[root.Name]; ok {
			root.Name = to
		}
	}
	for _, c := range root.Children {
		RenameVars(c, renaming)
	}
}

// ConjunctionToList flattens a left-associated conjunction into a
// left-to-right vector of deep-copied conjuncts. A non-conjunction
// yields a single-element vector containing a deep copy of the node
// itself, matching node.cpp's conjunction_to_list.
func ConjunctionToList(conjunction *Node) []*Node {
	if !conjunction.IsConjunction() {
		return []*Node{DeepCopy(conjunction)}
	}

	var reversed []*Node
	current := conjunction
	for current.IsConjunction() {
		reversed = append(reversed, DeepCopy(current.Children[1]))
		current = current.Children[0]
	}
	reversed = append(reversed, DeepCopy(current))

	out := make([]*Node, len(reversed))
	for i, n := range reversed {
		out[len(reversed)-1-i] = n
	}
	return out
}

// FormulaDepth returns the expression depth of formula (1 for a leaf).
func FormulaDepth(formula *Node) int {
	max := 0
	for _, child := range formula.Children {
		if d := FormulaDepth(child); d > max {
			max = d
		}
	}
	return max + 1
}

// MaxTermDepth returns the maximum depth among the term subtrees of
// formula, skipping straight through logical connectives and
// quantifiers. Used by the left/right rewrite-direction heuristic.
func MaxTermDepth(formula *Node) int {
	if formula.IsTerm() {
		return FormulaDepth(formula)
	}
	max := 0
	for _, child := range formula.Children {
		if d := MaxTermDepth(child); d > max {
			max = d
		}
	}
	return max
}

// GetConstants collects the set of predicate/function/operator symbols
// occurring in formula (UnaryOp/BinaryOp/UnaryPred/BinaryPred heads, and
// variable-kind Function/Predicate names). Used by the tableau to cache
// each line's "constants" for the waterfall's cheap subset filtering.
func GetConstants(formula *Node) map[string]struct{} {
	out := make(map[string]struct{})
	getConstants(formula, out)
	return out
}

func getConstants(n *Node, out map[string]struct{}) {
	if n == nil {
		return
	}
	switch n.Type {
	case UnaryOp, BinaryOp, UnaryPred, BinaryPred:
		repr, _, _, _, _ := SymbolInfo(n.Symbol)
		out[repr] = struct{}{}
	case Variable:
		if n.VarKind == Function || n.VarKind == Predicate {
			out[n.Name] = struct{}{}
		}
	}
	for _, c := range n.Children {
		getConstants(c, out)
	}
}

// ConstantsSubset reports whether every element of small is present in
// big — the waterfall's "constants(target) ⊆ constants(impl)" filter.
func ConstantsSubset(small, big map[string]struct{}) bool {
	for k := range small {
		if _, ok := big[k]; !ok {
			return false
		}
	}
	return true
}
