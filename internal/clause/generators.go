package clause

import (
	"fmt"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/constrainttrans"
	"github.com/relmach/ramc/internal/index"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/ramerr"
	"github.com/relmach/ramc/internal/valuetrans"
)

var aggregatorOpToRAM = map[ast.AggregatorOp]ram.AggregateOp{
	ast.AggCount: ram.AggregateCount,
	ast.AggSum:   ram.AggregateSum,
	ast.AggMin:   ram.AggregateMin,
	ast.AggMax:   ram.AggregateMax,
	ast.AggMean:  ram.AggregateMean,
}

var intrinsicVariantToRAM = map[ast.IntrinsicVariant]ram.IntrinsicVariant{
	ast.VariantRange:  ram.Range,
	ast.VariantURange: ram.URange,
	ast.VariantFRange: ram.FRange,
}

// wrapGenerators implements §4.5.3 stage 6: wrap inner, working from the
// deepest generator (last in the list) outward to the shallowest, so the
// result nests generator levels in the same order they were assigned.
func wrapGenerators(vi *index.ValueIndex, tr *valuetrans.Translator, inner ram.Operation) (ram.Operation, error) {
	op := inner
	gens := vi.Generators()
	for i := len(gens) - 1; i >= 0; i-- {
		g := gens[i]
		loc, _ := vi.GetGeneratorLoc(g.NodeID)
		wrapped, err := wrapOneGenerator(vi, tr, g, loc.Level, op)
		if err != nil {
			return nil, err
		}
		op = wrapped
	}
	return op, nil
}

func wrapOneGenerator(vi *index.ValueIndex, tr *valuetrans.Translator, g index.GeneratorSite, level int, inner ram.Operation) (ram.Operation, error) {
	switch g.Kind {
	case index.KindAggregator:
		return wrapAggregator(vi, tr, g.Aggregator, level, inner)
	case index.KindMultiResultFunctor:
		return wrapMultiResultFunctor(tr, g.Functor, level, inner)
	default:
		return nil, ramerr.New(ramerr.CodeUnhandledGenerator, tr.Clause,
			fmt.Sprintf("unknown generator kind %d", g.Kind))
	}
}

func wrapMultiResultFunctor(tr *valuetrans.Translator, f *ast.Functor, level int, inner ram.Operation) (ram.Operation, error) {
	variant, ok := ast.IsMultiResultVariant(f.Operator)
	if !ok {
		return nil, ramerr.New(ramerr.CodeUnhandledGenerator, tr.Clause,
			fmt.Sprintf("functor %q is not a multi-result variant", f.Operator))
	}
	ramVariant, ok := intrinsicVariantToRAM[variant]
	if !ok {
		return nil, ramerr.New(ramerr.CodeUnhandledGenerator, tr.Clause,
			fmt.Sprintf("unmapped multi-result variant %q", variant))
	}
	args := make([]ram.Expression, len(f.Args))
	for i, a := range f.Args {
		v, err := tr.Translate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ram.NestedIntrinsicOperator{Variant: ramVariant, Args: args, Level: level, Inner: inner}, nil
}

// wrapAggregator builds the Aggregate node for agg: its scanned relation
// and aggregation condition come from the single positive atom of its
// body (§4.5.3 stage 6).
func wrapAggregator(vi *index.ValueIndex, tr *valuetrans.Translator, agg *ast.Aggregator, level int, inner ram.Operation) (ram.Operation, error) {
	op, ok := aggregatorOpToRAM[agg.Op]
	if !ok {
		return nil, ramerr.New(ramerr.CodeUnhandledGenerator, tr.Clause,
			fmt.Sprintf("unknown aggregator op %q", agg.Op))
	}

	atom, err := singleAggregatorAtom(agg)
	if err != nil {
		return nil, err
	}

	cond, err := aggregationCondition(vi, tr, agg, atom, level)
	if err != nil {
		return nil, err
	}

	var target ram.Expression
	if op != ram.AggregateCount {
		target, err = tr.Translate(agg.Target)
		if err != nil {
			return nil, err
		}
	}

	return ram.Aggregate{
		Op:       op,
		Relation: atom.Relation,
		Target:   target,
		Cond:     cond,
		Level:    level,
		Inner:    inner,
	}, nil
}

// aggregationCondition implements §4.5.3 stage 6's inner condition: the
// conjunction of the aggregator body's own constraints, plus an equality
// between each atom argument that is bound outside the aggregator and its
// generator-level tuple element. Arguments whose defining occurrence is
// this very generator level are local to the aggregation and skipped, to
// avoid a self-referential equality.
func aggregationCondition(vi *index.ValueIndex, tr *valuetrans.Translator, agg *ast.Aggregator, atom ast.Atom, level int) (ram.Condition, error) {
	var conds []ram.Condition

	for _, lit := range agg.Body {
		cond, ok, err := constrainttrans.Translate(lit, tr)
		if err != nil {
			return nil, err
		}
		if ok {
			conds = append(conds, cond)
		}
	}

	constConds, err := constantEqualityConditions(tr, atom.Args, level)
	if err != nil {
		return nil, err
	}
	conds = append(conds, constConds...)

	for col, arg := range atom.Args {
		v, ok := arg.(ast.Variable)
		if !ok {
			continue
		}
		defLoc, err := vi.DefiningLocation(v.Name)
		if err != nil {
			return nil, err
		}
		if defLoc.Level == level && defLoc.Column == col {
			continue
		}
		conds = append(conds, ram.Constraint{
			Op:  ram.EQ,
			LHS: ram.TupleElement{Level: defLoc.Level, Column: defLoc.Column},
			RHS: ram.TupleElement{Level: level, Column: col},
		})
	}

	switch len(conds) {
	case 0:
		return ram.Conjunction{}, nil
	case 1:
		return conds[0], nil
	default:
		return ram.Conjunction{Conds: conds}, nil
	}
}
