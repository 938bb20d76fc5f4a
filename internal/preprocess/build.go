// Package preprocess implements spec.md §4.7: the fixed external
// analyses the clause translator and driver consult (type environment,
// functor classification, polymorph finalisation, auxiliary arity,
// relation details, the SCC/schedule pair, I/O directives, SIPS metric)
// plus the AST transformation passes that must run before translation
// (ADT-to-record lowering, constant type finalisation, default literal
// reordering). Grounded on internal/compiler/cycle.go's dependency-graph
// and SCC discipline, generalised from a sync-log cycle detector to a
// stratum scheduler.
package preprocess

import (
	"log/slog"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/oracle"
)

// Options configures a Build call. All maps are optional; nil is treated
// as empty.
type Options struct {
	Relations       []ast.Relation
	Directives      map[string]Directive
	SipsMetric      string
	UnsignedConsts  map[ast.NodeID]bool
	ADTBranches     map[string]ADTBranch
	MultiResultUser map[string]bool
	UserOperatorTypes map[string]string
	Symbols         oracle.SymbolTable
	Profile         bool
	Logger          *slog.Logger
}

// Build runs the full preprocessing pipeline over clauses — ADT lowering,
// constant finalisation, default plan assignment — and returns a
// populated oracle.Context ready for internal/driver.Run. clauses is
// mutated in place by the AST transformation passes, matching how a real
// front end's passes rewrite the tree it owns.
func Build(clauses []*ast.Clause, opts Options) *oracle.Context {
	if opts.ADTBranches != nil {
		LowerADTConstructors(clauses, opts.ADTBranches)
	}

	poly, types := FinalizeConstants(clauses, opts.UnsignedConsts)
	functors := NewFunctorAnalysis(opts.MultiResultUser, opts.UserOperatorTypes)
	relCache := NewRelationCache(opts.Relations)
	scc := BuildSCCGraph(clauses, opts.Relations)
	io := NewIOType(opts.Directives)
	sched := NewSchedule(clauses, scc, io)
	sips := NewSipsMetric(opts.SipsMetric)

	ApplyDefaultPlans(clauses, sips)

	ctx := oracle.NewContext()
	ctx.Types = types
	ctx.Functors = functors
	ctx.Poly = poly
	ctx.Aux = relCache
	ctx.Relations = relCache
	ctx.SCC = scc
	ctx.Schedule = sched
	ctx.IO = io
	ctx.Sips = sips
	ctx.Symbols = opts.Symbols
	ctx.Profile = opts.Profile
	if opts.Logger != nil {
		ctx.Logger = opts.Logger
	}
	return ctx
}
