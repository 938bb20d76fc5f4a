// Package ramerr defines the fatal-fault taxonomy of spec.md §7 and §4.9.
//
// Structural invariant violations abort translation outright — there is no
// per-clause recovery, and a Fault is never silently downgraded to a
// warning. Everything else either produces a well-typed RAM fragment or is
// silently omitted from a condition chain, per §4.9; those paths use plain
// fmt.Errorf wrapping, not Fault.
package ramerr

import "fmt"

// Code identifies a category of fatal structural violation.
type Code string

const (
	CodeFactInSCC          Code = "FACT_IN_SCC"
	CodeDuplicateRecordDef Code = "DUPLICATE_RECORD_DEFINITION"
	CodeAggregatorArity    Code = "AGGREGATOR_BODY_ARITY"
	CodeUnresolvedType     Code = "UNRESOLVED_CONSTANT_TYPE"
	CodePlanVersionOOB     Code = "PLAN_VERSION_OUT_OF_BOUNDS"
	CodeUnknownConstant    Code = "UNKNOWN_CONSTANT_KIND"
	CodeUnhandledGenerator Code = "UNHANDLED_GENERATOR_KIND"
	CodeUnresolvedVariable Code = "UNRESOLVED_VARIABLE_REFERENCE"
	CodeInvalidAtomArg     Code = "INVALID_ATOM_ARGUMENT"
)

// Fault is a fatal, structural invariant violation. Translation of the
// whole unit aborts as soon as one is returned — a malformed RAM output
// would silently miscompute, so there is no partial recovery.
type Fault struct {
	Code   Code
	Clause string // head relation name, for context
	Detail string
	Err    error // wrapped underlying error, if any
}

func (f *Fault) Error() string {
	if f.Clause != "" {
		return fmt.Sprintf("%s: %s (clause=%s)", f.Code, f.Detail, f.Clause)
	}
	return fmt.Sprintf("%s: %s", f.Code, f.Detail)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// New constructs a Fault.
func New(code Code, clause, detail string) *Fault {
	return &Fault{Code: code, Clause: clause, Detail: detail}
}

// Wrap constructs a Fault around an underlying error.
func Wrap(code Code, clause, detail string, err error) *Fault {
	return &Fault{Code: code, Clause: clause, Detail: detail, Err: err}
}

// IsFault reports whether err is (or wraps) a *Fault.
func IsFault(err error) bool {
	_, ok := AsFault(err)
	return ok
}

// AsFault extracts a *Fault from err, if present anywhere in its chain.
func AsFault(err error) (*Fault, bool) {
	for err != nil {
		if f, ok := err.(*Fault); ok {
			return f, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
