package preprocess

import (
	"strings"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/oracle"
)

// typeEnv is a minimal TypeEnvironment: it resolves the syntactic type a
// constant or record was written with, not a fully inferred type lattice.
// A real front end's type checker is out of scope; this is the fixed
// external surface the translator depends on (§4.7).
type typeEnv struct {
	byID map[ast.NodeID]string
}

func (t *typeEnv) ResolveType(id ast.NodeID) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}

// polyObjects finalises the numeric type of every constant node reachable
// from a translation unit's clauses. Since the AST carries no type
// annotation on Constant beyond its written syntax, finalisation is a
// convention: a "." in the text selects float, an explicit override table
// (populated by whatever front end owns type inference) selects unsigned,
// everything else defaults to signed.
type polyObjects struct {
	finalized map[ast.NodeID]oracle.ConstantType
}

func (p *polyObjects) FinalizedConstantType(id ast.NodeID) (oracle.ConstantType, bool) {
	t, ok := p.finalized[id]
	return t, ok
}

// FinalizeConstants walks every clause and stamps a ConstantType onto each
// numeric Constant node, consulting unsigned as an explicit override set
// (node ids the caller already knows are unsigned-typed) since Text alone
// cannot distinguish "5" (signed) from "5" (unsigned) without an external
// type judgement.
func FinalizeConstants(clauses []*ast.Clause, unsigned map[ast.NodeID]bool) (oracle.PolymorphicObjects, oracle.TypeEnvironment) {
	finalized := make(map[ast.NodeID]oracle.ConstantType)
	names := make(map[ast.NodeID]string)

	var walkArg func(ast.Argument)
	walkArg = func(a ast.Argument) {
		switch v := a.(type) {
		case ast.Constant:
			switch v.Kind {
			case ast.ConstantNumeric:
				switch {
				case strings.Contains(v.Text, "."):
					finalized[v.ID] = oracle.ConstantTypeFloat
					names[v.ID] = "float"
				case unsigned[v.ID]:
					finalized[v.ID] = oracle.ConstantTypeUnsigned
					names[v.ID] = "unsigned"
				default:
					finalized[v.ID] = oracle.ConstantTypeSigned
					names[v.ID] = "number"
				}
			case ast.ConstantString:
				names[v.ID] = "symbol"
			case ast.ConstantNil:
				names[v.ID] = "nil"
			}
		case ast.RecordInit:
			names[v.ID] = "record"
			for _, f := range v.Fields {
				walkArg(f)
			}
		case ast.Functor:
			for _, f := range v.Args {
				walkArg(f)
			}
		case ast.Aggregator:
			if v.Target != nil {
				walkArg(v.Target)
			}
			walkLits(v.Body, walkArg)
		}
	}

	for _, c := range clauses {
		for _, a := range c.Head.Args {
			walkArg(a)
		}
		walkLits(c.Body, walkArg)
	}

	return &polyObjects{finalized: finalized}, &typeEnv{byID: names}
}

func walkLits(lits []ast.Literal, walkArg func(ast.Argument)) {
	for _, lit := range lits {
		switch l := lit.(type) {
		case ast.PositiveAtom:
			for _, a := range l.Atom.Args {
				walkArg(a)
			}
		case ast.NegatedAtom:
			for _, a := range l.Atom.Args {
				walkArg(a)
			}
		case ast.BinaryConstraint:
			walkArg(l.LHS)
			walkArg(l.RHS)
		}
	}
}
