// Package driver implements the §4.6 driver: stratum-by-stratum emission
// of non-recursive relations and semi-naïve recursive loops over the SCC
// topological order an oracle.SCCGraph provides.
package driver

import (
	"sort"
	"strings"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/clause"
	"github.com/relmach/ramc/internal/names"
	"github.com/relmach/ramc/internal/oracle"
	"github.com/relmach/ramc/internal/ram"
)

// Run assembles the full RAM translation unit for clauses, one stratum per
// oracle.SCCGraph.Order() entry.
func Run(ctx *oracle.Context, clauses []*ast.Clause) (ram.Statement, error) {
	byRelation := groupByHead(clauses)

	var strata []ram.Statement
	for _, scc := range ctx.SCC.Order() {
		members := ctx.SCC.Members(scc)
		ctx.Logger.Debug("translating stratum", "scc", scc, "members", members)

		var stmt ram.Statement
		var err error
		if ctx.SCC.IsRecursive(scc) {
			stmt, err = translateRecursiveStratum(ctx, byRelation, scc, members)
		} else {
			stmt, err = translateNonRecursiveStratum(ctx, byRelation, scc, members[0])
		}
		if err != nil {
			return nil, err
		}
		strata = append(strata, stmt)
	}
	return ram.Sequence{Stmts: strata}, nil
}

func groupByHead(clauses []*ast.Clause) map[string][]*ast.Clause {
	out := make(map[string][]*ast.Clause)
	for _, c := range clauses {
		out[c.Head.Relation] = append(out[c.Head.Relation], c)
	}
	return out
}

// translateNonRecursiveStratum implements §4.6's first bullet: a singleton
// SCC with no self-loop translates every clause of its relation directly
// into the concrete relation, bracketed by load/store/log-size.
func translateNonRecursiveStratum(ctx *oracle.Context, byRelation map[string][]*ast.Clause, scc oracle.SCCID, r string) (ram.Statement, error) {
	var stmts []ram.Statement
	for _, rel := range ctx.Schedule.LoadBefore(scc) {
		stmts = append(stmts, ram.Load{Relation: rel})
	}
	for _, cl := range byRelation[r] {
		stmt, err := clause.TranslateClause(ctx, cl, clause.Options{})
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if ctx.IO.HasOutput(r) {
		stmts = append(stmts, ram.Store{Relation: r})
	}
	if ctx.Profile {
		stmts = append(stmts, ram.LogSize{Relation: r})
	}
	for _, rel := range ctx.Schedule.ClearAfter(scc) {
		stmts = append(stmts, ram.Clear{Relation: rel})
	}

	var out ram.Statement = ram.Sequence{Stmts: stmts}
	if ctx.Profile {
		out = ram.LogRelationTimer{Relation: r, Inner: out}
	}
	return out, nil
}

// translateRecursiveStratum implements §4.6's second bullet: preamble
// (seed new/concrete from base clauses, copy into delta), loop body
// (evaluate every semi-naïve version of every recursive clause, then
// merge/swap/clear), exit once every delta in the SCC is empty, postamble
// (store/log-size/clear-expired).
func translateRecursiveStratum(ctx *oracle.Context, byRelation map[string][]*ast.Clause, scc oracle.SCCID, members []string) (ram.Statement, error) {
	sccSet := make(map[string]bool, len(members))
	for _, m := range members {
		sccSet[m] = true
	}

	var preamble []ram.Statement
	for _, rel := range ctx.Schedule.LoadBefore(scc) {
		preamble = append(preamble, ram.Load{Relation: rel})
	}
	for _, r := range members {
		for _, cl := range byRelation[r] {
			if clause.UsesSCCAtom(cl, sccSet) {
				continue
			}
			stmt, err := clause.TranslateClause(ctx, cl, clause.Options{
				Recursive:      true,
				Version:        0,
				DeltaOrigIndex: -1,
				SCCMembers:     sccSet,
			})
			if err != nil {
				return nil, err
			}
			preamble = append(preamble, stmt)
		}
	}
	for _, r := range members {
		preamble = append(preamble, seedTableUpdates(r)...)
	}

	var loopBody []ram.Statement
	for _, r := range members {
		for _, cl := range byRelation[r] {
			if !clause.UsesSCCAtom(cl, sccSet) {
				continue
			}
			versions, err := clause.GenerateVersions(cl, sccSet)
			if err != nil {
				return nil, err
			}
			for _, opts := range versions {
				stmt, err := clause.TranslateClause(ctx, cl, opts)
				if err != nil {
					return nil, err
				}
				loopBody = append(loopBody, stmt)
			}
		}
	}
	for _, r := range members {
		loopBody = append(loopBody, iterationTableUpdates(r)...)
	}
	loopBody = append(loopBody, ram.Exit{Cond: allDeltasEmpty(members)})

	var postamble []ram.Statement
	for _, r := range members {
		if ctx.IO.HasOutput(r) {
			postamble = append(postamble, ram.Store{Relation: r})
		}
		if ctx.Profile {
			postamble = append(postamble, ram.LogSize{Relation: r})
		}
	}
	for _, rel := range ctx.Schedule.ClearAfter(scc) {
		postamble = append(postamble, ram.Clear{Relation: rel})
	}

	stmts := append(append([]ram.Statement{}, preamble...), ram.Loop{Body: ram.Sequence{Stmts: loopBody}})
	stmts = append(stmts, postamble...)

	var out ram.Statement = ram.Sequence{Stmts: stmts}
	if ctx.Profile {
		sorted := append([]string(nil), members...)
		sort.Strings(sorted)
		out = ram.LogRelationTimer{Relation: strings.Join(sorted, ","), Inner: out}
	}
	return out, nil
}

// seedTableUpdates implements the preamble's "copy result into delta(r)":
// new(r) was just populated by evaluating r's base clauses; fold it into
// concrete(r) and delta(r), then clear it for the loop's first iteration.
func seedTableUpdates(r string) []ram.Statement {
	return []ram.Statement{
		ram.Merge{Target: names.Concrete(r), Source: names.New(r)},
		ram.Merge{Target: names.Delta(r), Source: names.New(r)},
		ram.Clear{Relation: names.New(r)},
	}
}

// iterationTableUpdates implements the loop body's per-relation table
// update: accumulate this iteration's derivations into concrete(r), swap
// them into delta(r) for the next iteration (via clear-then-merge, the RAM
// alphabet having no dedicated swap node), and clear new(r).
func iterationTableUpdates(r string) []ram.Statement {
	return []ram.Statement{
		ram.Merge{Target: names.Concrete(r), Source: names.New(r)},
		ram.Clear{Relation: names.Delta(r)},
		ram.Merge{Target: names.Delta(r), Source: names.New(r)},
		ram.Clear{Relation: names.New(r)},
	}
}

func allDeltasEmpty(members []string) ram.Condition {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	conds := make([]ram.Condition, len(sorted))
	for i, r := range sorted {
		conds[i] = ram.EmptinessCheck{Relation: names.Delta(r)}
	}
	if len(conds) == 1 {
		return conds[0]
	}
	return ram.Conjunction{Conds: conds}
}
