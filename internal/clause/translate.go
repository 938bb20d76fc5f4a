// Package clause implements the Clause Translator of spec.md §4.5: lowering
// one Datalog clause, for one semi-naive version, into a RAM Query
// statement nesting Scan/UnpackRecord/Aggregate/NestedIntrinsicOperator
// operations around a Filter-guarded Project.
package clause

import (
	"fmt"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/constrainttrans"
	"github.com/relmach/ramc/internal/index"
	"github.com/relmach/ramc/internal/names"
	"github.com/relmach/ramc/internal/oracle"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/ramerr"
	"github.com/relmach/ramc/internal/valuetrans"
)

// Options carries the per-version context a recursive stratum's driver
// supplies for a clause belonging to a recursive SCC. Zero value is the
// correct Options for a non-recursive clause.
type Options struct {
	Recursive      bool
	Version        int
	DeltaOrigIndex int             // written-order index of this version's delta atom; meaningful iff Recursive
	SCCMembers     map[string]bool // relation names sharing the clause's SCC; nil iff !Recursive
}

// TranslateClause lowers original into a RAM Statement for opts.Version.
func TranslateClause(ctx *oracle.Context, original *ast.Clause, opts Options) (ram.Statement, error) {
	if original.IsFact() {
		if opts.Recursive {
			return nil, ramerr.New(ramerr.CodeFactInSCC, original.Head.Relation,
				"fact clause cannot belong to a recursive stratum")
		}
		return translateFact(ctx, original)
	}
	return translateRule(ctx, original, opts)
}

func translateFact(ctx *oracle.Context, c *ast.Clause) (ram.Statement, error) {
	vi := index.New(c.Head.Relation)
	tr := valuetrans.New(vi, ctx, c.Head.Relation)
	args, err := translateArgs(tr, c.Head.Args)
	if err != nil {
		return nil, err
	}
	op := ram.Operation(ram.Project{Relation: c.Head.Relation, Args: args})
	return debugWrap(c, op), nil
}

func translateRule(ctx *oracle.Context, c *ast.Clause, opts Options) (ram.Statement, error) {
	ordered := reorderBody(c, opts.Version)

	vi := index.New(c.Head.Relation)
	if err := buildIndex(vi, ctx, ordered, c.Head); err != nil {
		return nil, err
	}
	tr := valuetrans.New(vi, ctx, c.Head.Relation)

	headArgs, err := translateArgs(tr, c.Head.Args)
	if err != nil {
		return nil, err
	}

	nullary := len(c.Head.Args) == 0
	headName := names.Concrete(c.Head.Relation)
	if opts.Recursive {
		headName = names.New(c.Head.Relation)
	}
	op := ram.Operation(ram.Project{Relation: headName, Args: headArgs})
	if nullary {
		op = ram.Filter{Cond: ram.EmptinessCheck{Relation: headName}, Inner: op}
	}

	op = applyVariableBindingConstraints(vi, op)

	op, err = applyLiteralConstraints(ordered, tr, op)
	if err != nil {
		return nil, err
	}

	if opts.Recursive {
		op = applySemiNaiveGuards(ctx, c, ordered, vi, opts, headArgs, op)
	}

	op, err = wrapGenerators(vi, tr, op)
	if err != nil {
		return nil, err
	}

	op, err = wrapOperatorStack(ctx, c, vi, tr, opts, nullary, op)
	if err != nil {
		return nil, err
	}

	return debugWrap(c, op), nil
}

func translateArgs(tr *valuetrans.Translator, args []ast.Argument) ([]ram.Expression, error) {
	out := make([]ram.Expression, len(args))
	for i, a := range args {
		v, err := tr.Translate(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// applyVariableBindingConstraints implements §4.5.3 stage 4: every
// non-defining occurrence of a variable, aside from occurrences at
// generator levels (handled inside the generator's own condition), forces
// equality with the defining occurrence.
func applyVariableBindingConstraints(vi *index.ValueIndex, op ram.Operation) ram.Operation {
	for _, entry := range vi.VariablesSorted() {
		def := entry.Locs[0]
		for _, loc := range entry.Locs[1:] {
			if vi.IsGenerator(loc.Level) {
				continue
			}
			op = ram.Filter{
				Cond: ram.Constraint{
					Op:  ram.EQ,
					LHS: ram.TupleElement{Level: def.Level, Column: def.Column},
					RHS: ram.TupleElement{Level: loc.Level, Column: loc.Column},
				},
				Inner: op,
			}
		}
	}
	return op
}

// applyLiteralConstraints implements §4.5.3 stage 5's non-recursive half:
// every body literal that yields a condition is applied as a Filter, in
// the clause's reordered order.
func applyLiteralConstraints(ordered []orderedLit, tr *valuetrans.Translator, op ram.Operation) (ram.Operation, error) {
	for _, ol := range ordered {
		cond, ok, err := constrainttrans.Translate(ol.lit, tr)
		if err != nil {
			return nil, err
		}
		if ok {
			op = ram.Filter{Cond: cond, Inner: op}
		}
	}
	return op, nil
}

// applySemiNaiveGuards implements §4.5.3 stage 5's recursive half: negate
// the head's own tuple against the concrete head relation (skip re-derived
// tuples), then negate every same-SCC atom positioned after the delta atom
// in the chosen order against that atom's delta relation (prevs), so
// exactly one body atom per derivation is the delta.
func applySemiNaiveGuards(ctx *oracle.Context, c *ast.Clause, ordered []orderedLit, vi *index.ValueIndex, opts Options, headArgs []ram.Expression, op ram.Operation) ram.Operation {
	op = ram.Filter{
		Cond: ram.Negation{Cond: ram.ExistenceCheck{
			Relation: names.Concrete(c.Head.Relation),
			Args:     fullTupleArgs(ctx, c.Head.Relation, headArgs),
		}},
		Inner: op,
	}

	deltaPos := -1
	for pos, ol := range ordered {
		if ol.origIndex == opts.DeltaOrigIndex {
			deltaPos = pos
			break
		}
	}

	posByOrigIndex := make(map[int]int, len(ordered))
	for pos, ol := range ordered {
		posByOrigIndex[ol.origIndex] = pos
	}

	for level, site := range vi.Operators() {
		if site.Kind != index.KindAtomScan {
			continue
		}
		if site.AtomIndex == opts.DeltaOrigIndex {
			continue
		}
		if !opts.SCCMembers[site.Atom.Relation] {
			continue
		}
		if posByOrigIndex[site.AtomIndex] <= deltaPos {
			continue
		}
		valueArgs := make([]ram.Expression, len(site.Atom.Args))
		for i := range site.Atom.Args {
			valueArgs[i] = ram.TupleElement{Level: level, Column: i}
		}
		op = ram.Filter{
			Cond: ram.Negation{Cond: ram.ExistenceCheck{
				Relation: names.Delta(site.Atom.Relation),
				Args:     fullTupleArgs(ctx, site.Atom.Relation, valueArgs),
			}},
			Inner: op,
		}
	}

	return op
}

func fullTupleArgs(ctx *oracle.Context, relation string, valueArgs []ram.Expression) []ram.Expression {
	aux := ctx.Aux.AuxArity(relation)
	args := make([]ram.Expression, 0, len(valueArgs)+aux)
	args = append(args, valueArgs...)
	for i := 0; i < aux; i++ {
		args = append(args, ram.UndefValue{})
	}
	return args
}

// wrapOperatorStack implements §4.5.3 stage 7: wrap op in the operator
// stack from the innermost site (adjacent to the generator levels) out to
// the outermost (level 0). A nullary head's innermost site additionally
// stops its loop with a Break once the head relation is no longer empty.
func wrapOperatorStack(ctx *oracle.Context, c *ast.Clause, vi *index.ValueIndex, tr *valuetrans.Translator, opts Options, nullary bool, op ram.Operation) (ram.Operation, error) {
	sites := vi.Operators()
	for k := len(sites) - 1; k >= 0; k-- {
		site := sites[k]
		switch site.Kind {
		case index.KindAtomScan:
			args := site.Atom.Args
			inner, err := constantEqualityFilters(tr, args, k, op)
			if err != nil {
				return nil, err
			}
			relName := atomName(opts, c.Head.Relation, site)
			inner = ram.Filter{Cond: ram.Negation{Cond: ram.EmptinessCheck{Relation: relName}}, Inner: inner}

			if !needsScan(args) {
				op = inner
				continue
			}
			var freq string
			if ctx.Profile {
				freq = fmt.Sprintf("@frequency-atom;%s;%s;%d", relName, c.Head.Relation, site.AtomIndex)
			}
			scan := ram.Operation(ram.Scan{Relation: relName, Level: k, FrequencyTag: freq, Inner: inner})
			if nullary && k == len(sites)-1 {
				headName := names.Concrete(c.Head.Relation)
				if opts.Recursive {
					headName = names.New(c.Head.Relation)
				}
				scan = ram.Break{
					Cond:  ram.Negation{Cond: ram.EmptinessCheck{Relation: headName}},
					Inner: scan,
				}
			}
			op = scan
		case index.KindRecordUnpack:
			defLoc, ok := vi.RecordDefinition(site.RecordID)
			if !ok {
				return nil, ramerr.New(ramerr.CodeDuplicateRecordDef, c.Head.Relation,
					"record-init operator site has no recorded definition point")
			}
			inner, err := constantEqualityFilters(tr, site.Fields, k, op)
			if err != nil {
				return nil, err
			}
			op = ram.UnpackRecord{
				Ref:   ram.TupleElement{Level: defLoc.Level, Column: defLoc.Column},
				Level: k,
				Arity: site.Arity,
				Inner: inner,
			}
		}
	}
	return op, nil
}

// atomName picks the relation an atom scan site names: the delta relation
// for the chosen delta atom of a recursive version, the "new" relation if
// the atom's relation is the clause's own head, otherwise the concrete
// relation.
func atomName(opts Options, headRelation string, site index.OperatorSite) string {
	if opts.Recursive && site.AtomIndex == opts.DeltaOrigIndex {
		return names.Delta(site.Atom.Relation)
	}
	if site.Atom.Relation == headRelation {
		return names.New(site.Atom.Relation)
	}
	return names.Concrete(site.Atom.Relation)
}

func debugWrap(c *ast.Clause, op ram.Operation) ram.Statement {
	return ram.DebugInfo{
		SourceText:     c.SourceText,
		SourceLocation: c.SourceLocation.String(),
		Inner:          ram.Query{Op: op},
	}
}
