// Package ram defines the output node alphabet of the translation engine:
// the imperative relational-algebra machine program a downstream evaluator
// executes. Every node type here is a sealed interface member — only types
// in this package implement Statement, Operation, Condition and
// Expression — which lets backend compilers exhaustively type-switch
// without a default case silently swallowing a new variant.
//
// The four sealed interfaces mirror the shape of a RAM program:
//
//	Statement  top-level: Query, Sequence, Loop, Exit, Merge, Clear, Load, Store, ...
//	Operation  the nested per-tuple tree inside a Query: Project, Scan, Filter, ...
//	Condition  used inside Filter/Break/Exit: EmptinessCheck, ExistenceCheck, Constraint, ...
//	Expression value positions: TupleElement, SignedConstant, UndefValue, ...
package ram
