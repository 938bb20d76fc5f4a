package preprocess

import "github.com/relmach/ramc/internal/ast"

// ADTBranch names one branch of an algebraic data type: its tag
// (encoded as the record's leading field) and field count, matching
// Soufflé's ADT-to-record lowering (original_source/src/ast2ram): a sum
// type becomes a record whose first column discriminates the branch and
// whose remaining columns hold that branch's fields, so downstream
// translation never needs to know ADTs exist.
type ADTBranch struct {
	Tag    int64
	Fields int
}

// LowerADTConstructors rewrites every constructor call — a user functor
// whose operator names a branch in branches — into the equivalent
// RecordInit, in place, across every clause. Constructor calls not
// covered by branches are left untouched, since a functor and a
// constructor are syntactically identical (a named operator applied to
// arguments) until an external ADT declaration disambiguates them.
func LowerADTConstructors(clauses []*ast.Clause, branches map[string]ADTBranch) {
	var rewrite func(ast.Argument) ast.Argument
	rewrite = func(a ast.Argument) ast.Argument {
		switch v := a.(type) {
		case ast.Functor:
			for i, arg := range v.Args {
				v.Args[i] = rewrite(arg)
			}
			branch, ok := branches[v.Operator]
			if !ok || v.Kind != ast.FunctorUser {
				return v
			}
			fields := make([]ast.Argument, 0, branch.Fields+1)
			fields = append(fields, ast.Constant{
				ID:   v.ID + "#tag",
				Kind: ast.ConstantNumeric,
				Text: itoa64(branch.Tag),
			})
			fields = append(fields, v.Args...)
			return ast.RecordInit{ID: v.ID, Fields: fields}
		case ast.RecordInit:
			for i, f := range v.Fields {
				v.Fields[i] = rewrite(f)
			}
			return v
		case ast.Aggregator:
			if v.Target != nil {
				v.Target = rewrite(v.Target)
			}
			rewriteLits(v.Body, rewrite)
			return v
		default:
			return a
		}
	}

	for _, c := range clauses {
		for i, a := range c.Head.Args {
			c.Head.Args[i] = rewrite(a)
		}
		rewriteLits(c.Body, rewrite)
	}
}

func rewriteLits(lits []ast.Literal, rewrite func(ast.Argument) ast.Argument) {
	for i, lit := range lits {
		switch l := lit.(type) {
		case ast.PositiveAtom:
			for j, a := range l.Atom.Args {
				l.Atom.Args[j] = rewrite(a)
			}
			lits[i] = l
		case ast.NegatedAtom:
			for j, a := range l.Atom.Args {
				l.Atom.Args[j] = rewrite(a)
			}
			lits[i] = l
		case ast.BinaryConstraint:
			l.LHS = rewrite(l.LHS)
			l.RHS = rewrite(l.RHS)
			lits[i] = l
		}
	}
}

func itoa64(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
