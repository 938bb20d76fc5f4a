package preprocess

import "github.com/relmach/ramc/internal/ast"

// builtinOperatorTypes gives the result type of the fixed intrinsic
// operator set. Anything not listed here falls back to the caller's
// userOperatorTypes table, matching how user-defined functors extend the
// operator namespace without redeclaring the built-ins.
var builtinOperatorTypes = map[string]string{
	"+": "number", "-": "number", "*": "number", "/": "number", "%": "number",
	"band": "number", "bor": "number", "bxor": "number", "bshl": "number", "bshr": "number",
	"land": "number", "lor": "number",
	"cat": "symbol", "ord": "number", "strlen": "number", "substr": "symbol",
	"to_number": "number", "to_string": "symbol", "to_float": "float", "to_unsigned": "unsigned",
}

type functorAnalysis struct {
	multiResult map[string]bool
	userTypes   map[string]string
}

func (f *functorAnalysis) IsMultiResult(fn ast.Functor) bool {
	if fn.Kind == ast.FunctorIntrinsic {
		if _, ok := ast.IsMultiResultVariant(fn.Operator); ok {
			return true
		}
	}
	return f.multiResult[fn.Operator]
}

func (f *functorAnalysis) OperatorType(operator string) (string, bool) {
	if t, ok := builtinOperatorTypes[operator]; ok {
		return t, true
	}
	t, ok := f.userTypes[operator]
	return t, ok
}

// NewFunctorAnalysis builds the FunctorAnalysis oracle. multiResultUser
// names user-defined functors that yield more than one binding per call,
// the same role range/urange/frange play among intrinsics. userTypes
// gives the result type of user-defined operators not covered by the
// built-in table.
func NewFunctorAnalysis(multiResultUser map[string]bool, userTypes map[string]string) *functorAnalysis {
	return &functorAnalysis{multiResult: multiResultUser, userTypes: userTypes}
}
