// Package ast provides the input AST for the RAM translation engine: a
// Datalog dialect with rules over named relations, records, algebraic data
// types (once lowered by the preprocessor), arithmetic functors, aggregation,
// and optional per-clause execution plans.
//
// This package contains type definitions only. Front-end parsing and AST
// semantic analyses live outside this module (see internal/oracle); ast
// imports nothing internal, keeping it the foundational layer.
//
// Key design constraints:
//   - Node identity is carried by NodeID, assigned by the front end (or a
//     test builder), never reconstructed from pointer identity.
//   - Argument is a closed sum type; new variants require touching every
//     switch in internal/index, internal/valuetrans and internal/clause.
package ast
