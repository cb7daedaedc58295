package formula

// Symbol identifies the operator, predicate, constant, or quantifier
// carried by a node whose meaning is not a free-form name. Ported from
// the source's symbol_enum.
type Symbol int

const (
	SymbolNone Symbol = iota
	SymbolForall
	SymbolExists
	SymbolAnd
	SymbolOr
	SymbolNot
	SymbolImplies
	SymbolIff
	SymbolEquals
	SymbolSubset
	SymbolSubsetEq
	SymbolElement
	SymbolTop
	SymbolBot
	SymbolEmptyset
	SymbolPowerset
	SymbolCap
	SymbolCup
	SymbolSetminus
	SymbolTimes
)

// VarKind distinguishes the five roles a Variable node may play.
// Functions, predicates, and parameters are never substituted by
// first-order unification; only Individual variables with Bound=false
// (free variables) are.
type VarKind int

const (
	Individual VarKind = iota
	Function
	Predicate
	Parameter
	Metavar
)

func (k VarKind) String() string {
	switch k {
	case Individual:
		return "individual"
	case Function:
		return "function"
	case Predicate:
		return "predicate"
	case Parameter:
		return "parameter"
	case Metavar:
		return "metavar"
	default:
		return "unknown"
	}
}

// symbolRepr holds the re-parsable ("repr") and Unicode spellings, plus
// enough precedence/associativity/fixity data for pkg/printer to
// reconstruct the source's parenthesization rules.
type symbolRepr struct {
	repr    string
	unicode string
	prec    int
	assoc   Associativity
	fixity  Fixity
}

// Associativity controls which side of an equal-precedence infix symbol
// requires parenthesization.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

// Fixity distinguishes infix operators from prefix/functional ones.
type Fixity int

const (
	FixityNone Fixity = iota
	FixityInfix
	FixityFunctional
)

var symbolTable = map[Symbol]symbolRepr{
	SymbolForall:   {`\forall`, "∀", 0, AssocNone, FixityNone},
	SymbolExists:   {`\exists`, "∃", 0, AssocNone, FixityNone},
	SymbolAnd:      {`\wedge`, "∧", 4, AssocLeft, FixityInfix},
	SymbolOr:       {`\vee`, "∨", 4, AssocLeft, FixityInfix},
	SymbolNot:      {`\neg`, "¬", 0, AssocNone, FixityFunctional},
	SymbolImplies:  {`\to`, "→", 5, AssocRight, FixityInfix},
	SymbolIff:      {`\leftrightarrow`, "↔", 5, AssocNone, FixityInfix},
	SymbolTop:      {`\top`, "⊤", 0, AssocNone, FixityNone},
	SymbolBot:      {`\bot`, "⊥", 0, AssocNone, FixityNone},
	SymbolEmptyset: {`\emptyset`, "∅", 0, AssocNone, FixityNone},
	SymbolEquals:   {"=", "=", 3, AssocNone, FixityInfix},
	SymbolSubset:   {`\subset`, "⊂", 3, AssocNone, FixityInfix},
	SymbolSubsetEq: {`\subseteq`, "⊆", 3, AssocNone, FixityInfix},
	SymbolElement:  {`\in`, "∈", 3, AssocNone, FixityInfix},
	SymbolCap:      {`\cap`, "∩", 2, AssocLeft, FixityInfix},
	SymbolCup:      {`\cup`, "∪", 2, AssocLeft, FixityInfix},
	SymbolSetminus: {`\setminus`, "∖", 2, AssocLeft, FixityInfix},
	SymbolTimes:    {`\times`, "×", 2, AssocLeft, FixityInfix},
	SymbolPowerset: {`\mathcal{P}`, "𝒫", 0, AssocNone, FixityFunctional},
}

// SymbolInfo returns the precedence/associativity/fixity/spelling data
// for sym, or a zero-value functional entry for unknown symbols.
func SymbolInfo(sym Symbol) (repr, unicode string, prec int, assoc Associativity, fixity Fixity) {
	info, ok := symbolTable[sym]
	if !ok {
		return "", "", 0, AssocNone, FixityFunctional
	}
	return info.repr, info.unicode, info.prec, info.assoc, info.fixity
}

// builtinPredicateSymbols lists the built-in set-theoretic predicate
// symbols that count as "structural predicates" for special-implication
// guard detection: a typing predicate applied to a bare variable, e.g.
// P(x) in P(x) -> phi. The source treats any user predicate variable as
// eligible; nothing in this module reads this table.
var builtinPredicateSymbols = map[Symbol]bool{
	SymbolEquals:   true,
	SymbolSubset:   true,
	SymbolSubsetEq: true,
	SymbolElement:  true,
}
