package formula

// Equal reports whether a and b are structurally equal modulo a
// consistent renaming of variables bound by quantifiers: walking both
// trees in lockstep, entering a quantifier extends a name-mapping from
// a's bound name to b's bound name for the remainder of that subtree.
// Free variables must match by name exactly. Ported from node.cpp's
// equal_helper.
func Equal(a, b *Node) bool {
	return equalHelper(a, b, map[string]string{})
}

func equalHelper(a, b *Node, varMap map[string]string) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}

	switch a.Type {
	case Variable:
		if a.VarKind != b.VarKind {
			return false
		}
		if a.VarKind == Individual {
			if mapped, ok := varMap[a.Name]; ok {
				return mapped == b.Name
			}
			return a.Name == b.Name
		}
		return a.Name == b.Name

	case Constant:
		return a.Symbol == b.Symbol

	case Quantifier:
		if a.Symbol != b.Symbol {
			return false
		}
		nested := make(map[string]string, len(varMap)+1)
		for k, v := range varMap {
			nested[k] = v
		}
		nested[a.Children[0].Name] = b.Children[0].Name
		return equalHelper(a.Children[1], b.Children[1], nested)

	case LogicalUnary:
		return a.Symbol == b.Symbol && equalHelper(a.Children[0], b.Children[0], varMap)

	case LogicalBinary:
		return a.Symbol == b.Symbol &&
			equalHelper(a.Children[0], b.Children[0], varMap) &&
			equalHelper(a.Children[1], b.Children[1], varMap)

	case UnaryOp, BinaryOp:
		return a.Symbol == b.Symbol

	case UnaryPred, BinaryPred:
		if a.Symbol != b.Symbol || len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !equalHelper(a.Children[i], b.Children[i], varMap) {
				return false
			}
		}
		return true

	case Application:
		if len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !equalHelper(a.Children[i], b.Children[i], varMap) {
				return false
			}
		}
		return true

	case Tuple:
		if len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !equalHelper(a.Children[i], b.Children[i], varMap) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
