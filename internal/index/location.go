// Package index implements the per-clause Value Index, operator stack and
// generator list of spec.md §3-§4.2: the map from every variable name and
// every record/generator site to its defining Location, plus the ordered
// list of nesting sites a clause introduces.
//
// A ValueIndex, its operator stack and its generator list are created
// fresh per clause translation (see internal/clause) and discarded when
// the RAM statement is returned — no state survives across clauses.
package index

import "github.com/relmach/ramc/internal/ast"

// Location identifies where a value is produced in the nested operation
// tree: the level that materializes it, and the column within that
// level's tuple.
type Location struct {
	Level  int
	Column int
}

// NestingKind distinguishes the two kinds of operator-stack sites.
type NestingKind int

const (
	KindAtomScan NestingKind = iota
	KindRecordUnpack
)

// OperatorSite is one entry of the operator stack: an atom (produces a
// Scan) or a record-init (produces an UnpackRecord). Its level is its
// index in the stack.
type OperatorSite struct {
	Kind NestingKind

	// AtomIndex indexes into the clause's body as written, before
	// reordering (KindAtomScan only); -1 for KindRecordUnpack.
	AtomIndex int

	// Atom is the positive atom this site scans (KindAtomScan only).
	Atom ast.Atom

	// RecordID is the node id of the record-init this site unpacks
	// (KindRecordUnpack only).
	RecordID ast.NodeID

	// Fields is the record's field argument list (KindRecordUnpack only),
	// kept so constant sub-arguments can still be equality-filtered.
	Fields []ast.Argument

	// Arity is the number of columns materialized at this level: the
	// atom's argument count, or the record's field count.
	Arity int
}

// GeneratorKind distinguishes the two kinds of generator-list entries.
type GeneratorKind int

const (
	KindAggregator GeneratorKind = iota
	KindMultiResultFunctor
)

// GeneratorSite is one entry of the generator list: an aggregator or a
// multi-result functor. Its level continues above the operator stack —
// generator j has level len(operators)+j.
type GeneratorSite struct {
	Kind       GeneratorKind
	NodeID     ast.NodeID
	Aggregator *ast.Aggregator // set iff Kind == KindAggregator
	Functor    *ast.Functor    // set iff Kind == KindMultiResultFunctor
}
