// Package oracle bundles the read-only analyses spec.md §6 lists as
// external collaborators: type environment, functor classification,
// polymorphic type resolution, auxiliary arity, relation details, SCC
// grouping, load/clear scheduling, I/O direction, SIPS reordering
// strategy, and the symbol table.
//
// None of these are designed here — front-end semantic analysis is out of
// scope for this module (spec.md §1). This package only fixes the
// interfaces the core is written against, plus a Context that threads a
// single immutable bundle of them through every lowering call, per the
// Design Notes §9 guidance to avoid reaching for global state.
package oracle
