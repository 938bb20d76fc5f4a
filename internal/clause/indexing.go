package clause

import (
	"fmt"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/index"
	"github.com/relmach/ramc/internal/oracle"
	"github.com/relmach/ramc/internal/ramerr"
)

// buildIndex implements §4.5.3 stage 2: it pushes an operator-stack site
// for each positive atom of the reordered body and indexes its arguments,
// collects generators from the binary constraints and the head, indexes
// each aggregator's body atom at its generator level, and finally aliases
// `=` constraints that equate a value with a generator.
func buildIndex(vi *index.ValueIndex, ctx *oracle.Context, ordered []orderedLit, head ast.Atom) error {
	for _, ol := range ordered {
		pos, ok := ol.lit.(ast.PositiveAtom)
		if !ok {
			continue
		}
		level := vi.PushOperator(index.OperatorSite{
			Kind:      index.KindAtomScan,
			AtomIndex: ol.origIndex,
			Atom:      pos.Atom,
			Arity:     len(pos.Atom.Args),
		})
		if err := indexArgs(vi, pos.Atom.Args, level); err != nil {
			return err
		}
	}

	for _, ol := range ordered {
		bc, ok := ol.lit.(ast.BinaryConstraint)
		if !ok {
			continue
		}
		collectGenerators(vi, ctx, bc.LHS)
		collectGenerators(vi, ctx, bc.RHS)
	}
	for _, harg := range head.Args {
		collectGenerators(vi, ctx, harg)
	}

	for _, g := range vi.Generators() {
		if g.Kind != index.KindAggregator {
			continue
		}
		loc, _ := vi.GetGeneratorLoc(g.NodeID)
		atom, err := singleAggregatorAtom(g.Aggregator)
		if err != nil {
			return err
		}
		if err := indexArgs(vi, atom.Args, loc.Level); err != nil {
			return err
		}
	}

	for _, ol := range ordered {
		bc, ok := ol.lit.(ast.BinaryConstraint)
		if !ok || bc.Op != ast.OpEq {
			continue
		}
		aliasGeneratorEquality(vi, bc.LHS, bc.RHS)
		aliasGeneratorEquality(vi, bc.RHS, bc.LHS)
	}

	return nil
}

// indexArgs indexes each argument of a body atom or record field list at
// level, recording variable occurrences and record definition points and
// pushing nested operator-stack sites for records. Only variables,
// unnamed variables, constants and records may appear as direct
// pattern-matching arguments; anything else is a fatal fault.
func indexArgs(vi *index.ValueIndex, args []ast.Argument, level int) error {
	for col, arg := range args {
		if err := indexArg(vi, arg, level, col); err != nil {
			return err
		}
	}
	return nil
}

func indexArg(vi *index.ValueIndex, arg ast.Argument, level, col int) error {
	switch a := arg.(type) {
	case ast.Variable:
		vi.AddVarReference(a.Name, index.Location{Level: level, Column: col})
		return nil
	case ast.UnnamedVariable:
		return nil
	case ast.Constant:
		return nil
	case ast.RecordInit:
		if err := vi.SetRecordDefinition(a.ID, index.Location{Level: level, Column: col}); err != nil {
			return err
		}
		nested := vi.PushOperator(index.OperatorSite{
			Kind:      index.KindRecordUnpack,
			AtomIndex: -1,
			RecordID:  a.ID,
			Fields:    a.Fields,
			Arity:     len(a.Fields),
		})
		return indexArgs(vi, a.Fields, nested)
	default:
		return ramerr.New(ramerr.CodeInvalidAtomArg, "",
			fmt.Sprintf("argument of type %T is not a valid pattern (must be variable, constant or record)", arg))
	}
}

// collectGenerators walks arg looking for aggregators and multi-result
// functors — the only shapes that install generator-list entries — and
// pushes each newly-found one. It recurses through non-generator functors
// and record inits so a generator nested inside either is still found.
func collectGenerators(vi *index.ValueIndex, ctx *oracle.Context, arg ast.Argument) {
	switch a := arg.(type) {
	case ast.Aggregator:
		if _, seen := vi.GetGeneratorLoc(a.ID); seen {
			return
		}
		aggCopy := a
		vi.PushGenerator(index.GeneratorSite{Kind: index.KindAggregator, NodeID: a.ID, Aggregator: &aggCopy})
	case ast.Functor:
		if ctx.Functors.IsMultiResult(a) {
			if _, seen := vi.GetGeneratorLoc(a.ID); seen {
				return
			}
			fCopy := a
			vi.PushGenerator(index.GeneratorSite{Kind: index.KindMultiResultFunctor, NodeID: a.ID, Functor: &fCopy})
			return
		}
		for _, sub := range a.Args {
			collectGenerators(vi, ctx, sub)
		}
	case ast.RecordInit:
		for _, f := range a.Fields {
			collectGenerators(vi, ctx, f)
		}
	}
}

// aliasGeneratorEquality binds maybeVar's defining Location to other's
// generator Location when maybeVar is a bare variable and other is a
// generator node that has already been assigned a Location — i.e. a
// binary `X = count : { ... }` constraint makes X refer directly to the
// generator's result rather than needing a separate equality condition.
func aliasGeneratorEquality(vi *index.ValueIndex, maybeVar, other ast.Argument) {
	v, ok := maybeVar.(ast.Variable)
	if !ok {
		return
	}
	var genID ast.NodeID
	switch o := other.(type) {
	case ast.Aggregator:
		genID = o.ID
	case ast.Functor:
		genID = o.ID
	default:
		return
	}
	loc, ok := vi.GetGeneratorLoc(genID)
	if !ok {
		return
	}
	vi.AliasVarTo(v.Name, loc)
}

// singleAggregatorAtom returns the sole positive atom of an aggregator's
// body. Aggregators over more than one atom, or none, are not supported.
func singleAggregatorAtom(agg *ast.Aggregator) (ast.Atom, error) {
	var found *ast.Atom
	for _, lit := range agg.Body {
		pos, ok := lit.(ast.PositiveAtom)
		if !ok {
			continue
		}
		if found != nil {
			return ast.Atom{}, ramerr.New(ramerr.CodeAggregatorArity, "",
				"aggregator body must contain exactly one positive atom")
		}
		atomCopy := pos.Atom
		found = &atomCopy
	}
	if found == nil {
		return ast.Atom{}, ramerr.New(ramerr.CodeAggregatorArity, "",
			"aggregator body must contain exactly one positive atom")
	}
	return *found, nil
}
