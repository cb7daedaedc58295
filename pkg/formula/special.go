package formula

// UnwrapSpecial peels every outer special-implication guard P(x)->phi
// off formula and returns the remaining matrix, without copying. Used
// when a move only needs to inspect the matrix's shape.
func UnwrapSpecial(formula *Node) *Node {
	matrix := formula
	for matrix.IsSpecialImplication() {
		matrix = matrix.Children[1]
	}
	return matrix
}

// SplitSpecial peels every outer special-implication guard off formula,
// returning the guard predicates (outermost first) and the remaining
// matrix. Mirrors node.cpp's split_special.
func SplitSpecial(formula *Node) (matrix *Node, specials []*Node) {
	matrix = formula
	for matrix.IsSpecialImplication() {
		specials = append(specials, matrix.Children[0])
		matrix = matrix.Children[1]
	}
	return matrix, specials
}

// ReapplySpecial rewraps formula in the given guards, innermost last,
// dropping any guard whose constrained variable no longer occurs free
// in formula. Guards are deep-copied; callers retain ownership of the
// slice passed in. Mirrors node.cpp's reapply_special.
func ReapplySpecial(specials []*Node, formula *Node) *Node {
	used := VarsUsed(formula, false, false)

	for i := len(specials) - 1; i >= 0; i-- {
		special := specials[i]
		// special is Application(predicateHead, variable); the
		// constrained variable is the second child.
		if len(special.Children) < 2 {
			continue
		}
		if _, ok := used[special.Children[1].Name]; !ok {
			continue
		}
		formula = NewBinary(SymbolImplies, DeepCopy(special), formula)
	}
	return formula
}
