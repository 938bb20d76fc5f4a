// Package constrainttrans implements the Constraint Translator of
// spec.md §4.4: lowering an AST body literal into a RAM condition.
package constrainttrans

import (
	"fmt"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/ramerr"
	"github.com/relmach/ramc/internal/valuetrans"
)

var binaryOpToConstraintOp = map[ast.BinaryOp]ram.ConstraintOp{
	ast.OpEq: ram.EQ,
	ast.OpNe: ram.NE,
	ast.OpLt: ram.LT,
	ast.OpLe: ram.LE,
	ast.OpGt: ram.GT,
	ast.OpGe: ram.GE,
}

// Translate lowers a body literal to a RAM condition. The second return
// value reports whether a condition was produced at all: positive atoms
// and negated atoms yield no condition here (structural, or handled by
// the clause translator's add_negate — §4.5), and both are valid,
// silently-omitted outcomes per §4.9, not errors.
func Translate(lit ast.Literal, tr *valuetrans.Translator) (ram.Condition, bool, error) {
	switch l := lit.(type) {
	case ast.BinaryConstraint:
		return translateBinary(l, tr)
	case ast.PositiveAtom, ast.NegatedAtom:
		return nil, false, nil
	default:
		return nil, false, nil
	}
}

func translateBinary(l ast.BinaryConstraint, tr *valuetrans.Translator) (ram.Condition, bool, error) {
	op, ok := binaryOpToConstraintOp[l.Op]
	if !ok {
		return nil, false, ramerr.New(ramerr.CodeUnknownConstant, tr.Clause,
			fmt.Sprintf("unknown binary constraint operator %q", l.Op))
	}
	lhs, err := tr.Translate(l.LHS)
	if err != nil {
		return nil, false, err
	}
	rhs, err := tr.Translate(l.RHS)
	if err != nil {
		return nil, false, err
	}
	return ram.Constraint{Op: op, LHS: lhs, RHS: rhs}, true, nil
}
