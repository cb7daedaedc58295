package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/proofdroid/prover/pkg/formula"
)

// SyntaxError reports a parse failure at a source position, the way the
// source's parser reports "Syntax error near position N".
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("parser: syntax error near position %d: %s", e.Pos, e.Msg)
}

type parser struct {
	toks []token
	pos  int
}

// Parse reads a REPR-notation formula (e.g. "\forall x (P(x) \to Q(x))")
// and returns its formula.Node tree. An identifier's kind (Individual,
// Function, or Predicate) defaults to a term and is reinterpreted as
// Predicate only once parsing confirms it stands alone as a complete
// atomic formula and its name follows the corpus's predicate-naming
// convention. See promoteToPredicate.
func Parse(src string) (*formula.Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseImplication()
	if err != nil {
		return nil, err
	}
	if p.cur().kind != tokEOF {
		return nil, &SyntaxError{Pos: p.cur().pos, Msg: "trailing input"}
	}
	return n, nil
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.cur().kind != kind {
		return token{}, &SyntaxError{Pos: p.cur().pos, Msg: "expected " + what}
	}
	return p.advance(), nil
}

// parseImplication handles \to (right-associative, precedence 5) and
// delegates its operands to parseIff, which handles \leftrightarrow and
// everything tighter-binding.
func (p *parser) parseImplication() (*formula.Node, error) {
	left, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.cur().kind == tokImplies {
		p.advance()
		right, err := p.parseImplication()
		if err != nil {
			return nil, err
		}
		return formula.NewBinary(formula.SymbolImplies, left, right), nil
	}
	return left, nil
}

// parseIff handles \leftrightarrow, same precedence tier as \to but
// non-associative: at most one occurrence is accepted per level.
func (p *parser) parseIff() (*formula.Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur().kind == tokIff {
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return formula.NewBinary(formula.SymbolIff, left, right), nil
	}
	return left, nil
}

func (p *parser) parseOr() (*formula.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = formula.NewBinary(formula.SymbolOr, left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (*formula.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().kind == tokAnd {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = formula.NewBinary(formula.SymbolAnd, left, right)
	}
	return left, nil
}

// parseUnary handles \neg, \forall, and \exists, all of which bind
// everything to their right down through the comparison level before
// yielding to a looser connective.
func (p *parser) parseUnary() (*formula.Node, error) {
	switch p.cur().kind {
	case tokNot:
		p.advance()
		arg, err := p.parseAtomExpr()
		if err != nil {
			return nil, err
		}
		return formula.NewUnary(formula.SymbolNot, arg), nil

	case tokForall, tokExists:
		sym := formula.SymbolForall
		if p.cur().kind == tokExists {
			sym = formula.SymbolExists
		}
		p.advance()
		v, err := p.expect(tokIdent, "bound variable")
		if err != nil {
			return nil, err
		}
		body, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		varNode := formula.NewVariable(v.text, formula.Individual)
		return formula.NewQuantifier(sym, varNode, body), nil

	default:
		return p.parseAtomExpr()
	}
}

// parseAtomExpr handles the comparison tier (=, \neq, \subset,
// \subseteq, \in), non-associative: exactly zero or one such operator
// per atomic formula, each side a term built from the set-operator
// tier.
func (p *parser) parseAtomExpr() (*formula.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	switch p.cur().kind {
	case tokEquals:
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return formula.NewEquals(left, right), nil

	case tokNeq:
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return formula.NewUnary(formula.SymbolNot, formula.NewEquals(left, right)), nil

	case tokSubset, tokSubsetEq, tokElement:
		sym := symbolFor(p.cur().kind)
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return formula.NewApplication(formula.NewBinaryPredHead(sym), left, right), nil
	}

	promoteToPredicate(left)
	if !isFormulaHead(left) {
		return nil, &SyntaxError{Pos: p.cur().pos, Msg: "expected a formula, found a bare term"}
	}
	return left, nil
}

// isFormulaHead reports whether n, standing alone, is a complete
// formula rather than a term: an Application counts through its head
// (formula.Node.IsPredicate only recognizes bare predicate-kind nodes,
// not an Application built from one), a parenthesized connective or
// quantifier formula counts as it is, everything else through
// IsPredicate directly.
func isFormulaHead(n *formula.Node) bool {
	switch n.Type {
	case formula.Application:
		return n.Children[0].IsPredicate()
	case formula.LogicalUnary, formula.LogicalBinary, formula.Quantifier:
		return true
	}
	return n.IsPredicate()
}

// promoteToPredicate reinterprets a bare variable or a variable-headed
// application parsed tentatively as a term (the default, since the
// grammar cannot tell "P(x)" the predicate from "f(x)" the function
// until it sees whether a comparison operator follows) as a predicate,
// once it turns out to stand alone as a complete atomic formula. The
// corpus's own naming convention (P, Q, R for predicates; a, b, f for
// terms) is the only signal left at this point in the grammar, so a
// name is promoted only when it starts with an uppercase letter;
// anything else is left as a term, so "a" alone still surfaces as a
// syntax error rather than a bare 0-ary predicate. Non-variable heads
// (set operators, \mathcal{P}) are left untouched either way.
func promoteToPredicate(n *formula.Node) {
	switch n.Type {
	case formula.Variable:
		if n.VarKind == formula.Individual && startsUpper(n.Name) {
			n.VarKind = formula.Predicate
		}
	case formula.Application:
		head := n.Children[0]
		if head.Type == formula.Variable && head.VarKind == formula.Function && startsUpper(head.Name) {
			head.VarKind = formula.Predicate
		}
	}
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// parseTerm handles the set-operator tier (\cap, \cup, \setminus,
// \times), all left-associative at the same precedence.
func (p *parser) parseTerm() (*formula.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		var sym formula.Symbol
		switch p.cur().kind {
		case tokCap:
			sym = formula.SymbolCap
		case tokCup:
			sym = formula.SymbolCup
		case tokSetminus:
			sym = formula.SymbolSetminus
		case tokTimes:
			sym = formula.SymbolTimes
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = formula.NewApplication(formula.NewBinaryOpHead(sym), left, right)
	}
}

func (p *parser) parsePrimary() (*formula.Node, error) {
	switch p.cur().kind {
	case tokTop:
		p.advance()
		return formula.NewConstant(formula.SymbolTop), nil
	case tokBot:
		p.advance()
		return formula.NewConstant(formula.SymbolBot), nil
	case tokEmptyset:
		p.advance()
		return formula.NewConstant(formula.SymbolEmptyset), nil

	case tokPowerset:
		p.advance()
		if _, err := p.expect(tokLParen, "("); err != nil {
			return nil, err
		}
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return formula.NewApplication(formula.NewUnaryOpHead(formula.SymbolPowerset), arg), nil

	case tokLParen:
		p.advance()
		inner, err := p.parseImplication()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		return inner, nil

	case tokIdent:
		return p.parseIdentOrApplication()

	default:
		return nil, &SyntaxError{Pos: p.cur().pos, Msg: "expected a term or formula"}
	}
}

// parseIdentOrApplication always builds an Individual variable or a
// Function-headed application by default; promoteToPredicate corrects
// the kind to Predicate at the one point in the grammar that can tell
// the difference (parseAtomExpr, once it knows no comparison operator
// follows).
func (p *parser) parseIdentOrApplication() (*formula.Node, error) {
	tok := p.advance()
	name := tok.text

	if p.cur().kind != tokLParen {
		return formula.NewVariable(name, formula.Individual), nil
	}

	p.advance() // consume '('
	var args []*formula.Node
	if p.cur().kind != tokRParen {
		for {
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur().kind != tokComma {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(tokRParen, ")"); err != nil {
		return nil, err
	}

	head := formula.NewVariableArity(name, formula.Function, len(args))
	return formula.NewApplication(head, args...), nil
}

func symbolFor(kind tokenKind) formula.Symbol {
	switch kind {
	case tokSubset:
		return formula.SymbolSubset
	case tokSubsetEq:
		return formula.SymbolSubsetEq
	case tokElement:
		return formula.SymbolElement
	default:
		return formula.SymbolNone
	}
}

