package oracle

import "github.com/relmach/ramc/internal/ast"

// ConstantType is the finalised type PolymorphicObjects stamps onto a
// numeric constant node. There is deliberately no "unresolved" zero value
// that silently parses as anything — callers must use Ok from
// FinalizedConstantType to detect an unresolved constant, which is a
// fatal condition (§4.8, §4.9).
type ConstantType int

const (
	ConstantTypeSigned ConstantType = iota
	ConstantTypeUnsigned
	ConstantTypeFloat
)

// TypeEnvironment resolves the semantic type of any argument node. The
// clause translator itself does not consult types directly today — it is
// exposed for completeness and for functor operator-typing decisions made
// by FunctorAnalysis — but is part of the fixed external surface.
type TypeEnvironment interface {
	ResolveType(id ast.NodeID) (typeName string, ok bool)
}

// FunctorAnalysis classifies functors as single- or multi-result and
// types their operators. IsMultiResult must agree with
// ast.IsMultiResultVariant for the built-in range family; it is consulted
// so user-defined multi-result functors are supported uniformly.
type FunctorAnalysis interface {
	IsMultiResult(f ast.Functor) bool
	OperatorType(operator string) (typeName string, ok bool)
}

// PolymorphicObjects reports finalised types for constants and operators
// once the preprocessor's polymorph-finalisation pass has run.
type PolymorphicObjects interface {
	FinalizedConstantType(id ast.NodeID) (ConstantType, bool)
}

// AuxiliaryArity reports the trailing provenance/height column count of a
// relation, excluded from matching.
type AuxiliaryArity interface {
	AuxArity(relation string) int
}

// RelationDetailCache maps an atom to its declaring relation's full
// detail (arity split).
type RelationDetailCache interface {
	Relation(name string) (ast.Relation, bool)
}

// SCCID identifies a strongly connected component of the relation
// dependency graph.
type SCCID int

// SCCGraph groups relations into strongly connected components, ordered
// topologically for stratum scheduling.
type SCCGraph interface {
	// Order returns SCC ids in topological (dependency-respecting) order.
	Order() []SCCID
	// Members returns the relation names belonging to scc.
	Members(scc SCCID) []string
	// SCCOf returns the SCC a relation belongs to.
	SCCOf(relation string) SCCID
	// IsRecursive reports whether scc is a true recursive stratum (more
	// than one member, or a single member with a self-loop) as opposed to
	// a singleton non-recursive relation.
	IsRecursive(scc SCCID) bool
}

// RelationSchedule reports, per completed stratum, which relations should
// be loaded before it runs and which should be cleared once it is the
// last consumer of them (§4.6, SPEC_FULL.md §C.2).
type RelationSchedule interface {
	LoadBefore(scc SCCID) []string
	ClearAfter(scc SCCID) []string
}

// IOType reports whether a relation carries an input or output directive.
type IOType interface {
	HasInput(relation string) bool
	HasOutput(relation string) bool
}

// SipsMetric orders body atoms for a clause version using a
// sideways-information-passing heuristic. The default order (identity) is
// used when a clause carries no execution plan and version selection is
// left to this metric — see internal/preprocess.
type SipsMetric interface {
	Order(relation string, version int, atoms []ast.Literal) []int
}

// SymbolTable interns strings to stable integer ids. Repeated interning of
// the same string must yield the same id; it must be safe to call
// throughout translation (spec.md §5).
type SymbolTable interface {
	Intern(s string) int
}
