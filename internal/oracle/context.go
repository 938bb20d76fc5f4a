package oracle

import (
	"io"
	"log/slog"
)

// Context bundles every external analysis the core needs, plus the
// configuration surface of spec.md §6, into a single immutable value
// threaded through translation. No package under internal/clause,
// internal/index, internal/valuetrans or internal/constrainttrans reads a
// process-wide singleton — everything comes from a Context passed in.
type Context struct {
	Types     TypeEnvironment
	Functors  FunctorAnalysis
	Poly      PolymorphicObjects
	Aux       AuxiliaryArity
	Relations RelationDetailCache
	SCC       SCCGraph
	Schedule  RelationSchedule
	IO        IOType
	Sips      SipsMetric
	Symbols   SymbolTable

	// Profile enables LogRelationTimer/LogSize wrappers and
	// "@frequency-atom" scan annotations.
	Profile bool

	// Logger receives structured narration of driver/translator progress.
	// Defaults to a discard logger when nil (see NewContext).
	Logger *slog.Logger

	// DebugReport is an optional per-clause report hook. Nothing in this
	// module calls it: neither the clause translator nor the driver
	// produces report strings.
	DebugReport func(clauseID, report string)
}

// NewContext returns a Context with a discard logger, suitable as a base
// to fill in with the fields of interest.
func NewContext() *Context {
	return &Context{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
