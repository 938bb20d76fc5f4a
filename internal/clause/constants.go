package clause

import (
	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/valuetrans"
)

// constantEqualityConditions implements §4.5.4: for each constant argument
// at level, build an equality Constraint between its tuple element and its
// translated value, using FEQ for float constants and EQ otherwise.
// Unnamed variables and non-constant arguments contribute nothing.
func constantEqualityConditions(tr *valuetrans.Translator, args []ast.Argument, level int) ([]ram.Condition, error) {
	var conds []ram.Condition
	for col, arg := range args {
		c, ok := arg.(ast.Constant)
		if !ok {
			continue
		}
		val, err := tr.Translate(c)
		if err != nil {
			return nil, err
		}
		op := ram.EQ
		if _, isFloat := val.(ram.FloatConstant); isFloat {
			op = ram.FEQ
		}
		conds = append(conds, ram.Constraint{
			Op:  op,
			LHS: ram.TupleElement{Level: level, Column: col},
			RHS: val,
		})
	}
	return conds, nil
}

// constantEqualityFilters wraps inner in one Filter per constant argument,
// per §4.5.3 stage 7's "prepend constant-equality filters" instruction.
func constantEqualityFilters(tr *valuetrans.Translator, args []ast.Argument, level int, inner ram.Operation) (ram.Operation, error) {
	conds, err := constantEqualityConditions(tr, args, level)
	if err != nil {
		return nil, err
	}
	op := inner
	for _, cond := range conds {
		op = ram.Filter{Cond: cond, Inner: op}
	}
	return op, nil
}

// needsScan reports whether an atom's argument list requires a physical
// Scan node: it must have at least one argument and not all of them may be
// unnamed variables (§4.5.3 stage 7). A pure-existence atom (no arguments,
// or every argument unnamed) needs only its emptiness check.
func needsScan(args []ast.Argument) bool {
	if len(args) == 0 {
		return false
	}
	for _, a := range args {
		if _, ok := a.(ast.UnnamedVariable); !ok {
			return true
		}
	}
	return false
}
