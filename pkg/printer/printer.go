// Package printer renders formula trees in the two output formats the
// original driver supports: REPR (re-parsable, LaTeX-flavored operator
// spellings like `\to`, `\wedge`) and Unicode (display spellings like
// →, ∧). Ported from `node.h`'s `to_string`/`parenthesize`, including
// its precedence-driven parenthesization and its `¬(a=b)` → `a ≠ b`
// special case. pkg/formula depends only on `fmt.Stringer` (its own
// `Node.String` debug rendering); nothing in the core imports this
// package, matching spec.md §1's "pretty-printing is an out-of-scope
// collaborator" boundary.
package printer

import (
	"strconv"
	"strings"

	"github.com/proofdroid/prover/pkg/formula"
)

// Format selects which spelling table Printer uses.
type Format int

const (
	REPR Format = iota
	Unicode
)

// Printer renders formula.Node trees under a fixed Format.
type Printer struct {
	Format Format
}

// New returns a Printer for the given format.
func New(format Format) *Printer {
	return &Printer{Format: format}
}

// FormatNode renders n as this printer's output format.
func (p *Printer) FormatNode(n *formula.Node) string {
	return p.render(n)
}

func (p *Printer) symbol(sym formula.Symbol) string {
	repr, unicode, _, _, _ := formula.SymbolInfo(sym)
	if p.Format == REPR {
		return repr
	}
	return unicode
}

// isNotEquals reports whether n is ¬(a = b), the original's "neq"
// special case.
func isNotEquals(n *formula.Node) bool {
	if !n.IsNegation() {
		return false
	}
	arg := n.Children[0]
	return arg.Type == formula.Application &&
		len(arg.Children) == 3 &&
		arg.Children[0].Type == formula.BinaryPred &&
		arg.Children[0].Symbol == formula.SymbolEquals
}

// precOf returns the operator precedence/associativity/fixity used to
// parenthesize n as a child: an Application's own precedence is that
// of its head symbol (falling back to FixityFunctional for ordinary
// variable-headed applications, via SymbolInfo's unknown-symbol
// default), every other node type uses its own Symbol directly.
func precOf(n *formula.Node) (prec int, assoc formula.Associativity, fixity formula.Fixity) {
	if n.Type == formula.Application {
		_, _, prec, assoc, fixity = formula.SymbolInfo(n.Children[0].Symbol)
		return
	}
	_, _, prec, assoc, fixity = formula.SymbolInfo(n.Symbol)
	return
}

// isAtomic reports whether n never needs parentheses regardless of its
// parent's precedence: variables, constants, tuples, quantifiers (whose
// own scope-delimiting already makes further parens redundant), and
// functional-fixity applications like f(x) or P(x,y).
func isAtomic(n *formula.Node) bool {
	switch n.Type {
	case formula.Variable, formula.Constant, formula.Tuple, formula.Quantifier:
		return true
	case formula.Application:
		_, _, _, _, fix := formula.SymbolInfo(n.Children[0].Symbol)
		return fix == formula.FixityFunctional
	default:
		return false
	}
}

// paren renders child, wrapping it in parentheses whenever its own
// precedence is not strictly tighter-binding (a lower precedence
// number) than parentPrec. Matches
// node.h's parenthesize: equal-precedence siblings are always
// parenthesized regardless of associativity (the source computes an
// associativity-sensitive branch but every path through it still falls
// through to the unconditional parenthesized return).
func (p *Printer) paren(child *formula.Node, parentPrec int) string {
	if isAtomic(child) {
		return p.render(child)
	}
	childPrec, _, _ := precOf(child)
	s := p.render(child)
	if childPrec < parentPrec {
		return s
	}
	return "(" + s + ")"
}

func (p *Printer) render(n *formula.Node) string {
	switch n.Type {
	case formula.Variable:
		return p.renderVariable(n)

	case formula.Constant, formula.UnaryOp, formula.BinaryOp, formula.UnaryPred, formula.BinaryPred:
		return p.symbol(n.Symbol)

	case formula.LogicalUnary:
		if isNotEquals(n) {
			eq := n.Children[0]
			sep := " \\neq "
			if p.Format == Unicode {
				sep = " ≠ "
			}
			return p.render(eq.Children[1]) + sep + p.render(eq.Children[2])
		}
		ownPrec, _, _ := precOf(n)
		prefix := p.symbol(n.Symbol)
		if p.Format == REPR {
			prefix += " "
		}
		return prefix + p.paren(n.Children[0], ownPrec)

	case formula.LogicalBinary:
		ownPrec, _, _ := precOf(n)
		return p.paren(n.Children[0], ownPrec) + " " + p.symbol(n.Symbol) + " " + p.paren(n.Children[1], ownPrec)

	case formula.Quantifier:
		prefix := p.symbol(n.Symbol)
		if p.Format == REPR {
			prefix += " "
		}
		return prefix + p.render(n.Children[0]) + " " + p.paren(n.Children[1], 0)

	case formula.Application:
		return p.renderApplication(n)

	case formula.Tuple:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = p.render(c)
		}
		return "(" + strings.Join(parts, ", ") + ")"

	default:
		return "<?>"
	}
}

func (p *Printer) renderApplication(n *formula.Node) string {
	head := n.Children[0]
	_, _, _, _, fixity := formula.SymbolInfo(head.Symbol)

	switch head.Type {
	case formula.UnaryOp, formula.BinaryOp, formula.UnaryPred, formula.BinaryPred:
		if fixity == formula.FixityInfix && len(n.Children) == 3 {
			return p.render(n.Children[1]) + " " + p.symbol(head.Symbol) + " " + p.render(n.Children[2])
		}
		return p.symbol(head.Symbol) + "(" + p.render(n.Children[1]) + ")"
	default:
		args := make([]string, len(n.Children)-1)
		for i, arg := range n.Children[1:] {
			args[i] = p.render(arg)
		}
		return p.render(head) + "(" + strings.Join(args, ", ") + ")"
	}
}

func (p *Printer) renderVariable(n *formula.Node) string {
	if p.Format == REPR {
		return n.Name
	}
	base, digit, ok := splitSubscript(n.Name)
	name := n.Name
	if ok {
		name = base + unicodeDigit(digit)
	}
	if n.VarKind == formula.Individual && !n.Bound {
		name += "'"
	}
	return name
}

// splitSubscript splits a registry-minted name like "f_3" into ("f", 3,
// true) when the suffix after the last underscore is entirely digits
// 0-9 (a single subscript digit, matching append_unicode_subscript's
// single-digit range); any other shape reports ok=false and the name
// is left untouched.
func splitSubscript(name string) (base string, digit int, ok bool) {
	i := strings.LastIndexByte(name, '_')
	if i < 0 || i == len(name)-1 {
		return "", 0, false
	}
	suffix := name[i+1:]
	n, err := strconv.Atoi(suffix)
	if err != nil || n < 0 || n > 9 {
		return "", 0, false
	}
	return name[:i], n, true
}

// unicodeDigit returns the Unicode subscript character for 0-9
// (U+2080..U+2089).
func unicodeDigit(d int) string {
	return string(rune(0x2080 + d))
}
