package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/index"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/symtab"
	"github.com/relmach/ramc/internal/valuetrans"
)

func newTestTranslator(t *testing.T) *valuetrans.Translator {
	t.Helper()
	ctx := preprocess.Build(nil, preprocess.Options{Symbols: symtab.New()})
	return valuetrans.New(index.New("edge"), ctx, "edge")
}

func TestConstantEqualityConditionsSkipsVariablesAndUnnamed(t *testing.T) {
	tr := newTestTranslator(t)
	args := []ast.Argument{
		ast.Variable{Name: "x"},
		ast.UnnamedVariable{},
	}
	conds, err := constantEqualityConditions(tr, args, 0)
	require.NoError(t, err)
	assert.Empty(t, conds)
}

func TestConstantEqualityConditionsErrorsForUnfinalisedNumeric(t *testing.T) {
	tr := newTestTranslator(t)
	args := []ast.Argument{
		ast.Constant{ID: "c1", Kind: ast.ConstantNumeric, Text: "7"},
	}
	// c1 was never walked by FinalizeConstants, so it has no finalised type.
	_, err := constantEqualityConditions(tr, args, 0)
	assert.Error(t, err, "constant not walked by FinalizeConstants has no finalised type")
}

func TestConstantEqualityConditionsFloatUsesFEQ(t *testing.T) {
	c := &ast.Clause{
		Head: ast.Atom{Relation: "edge", Args: []ast.Argument{
			ast.Constant{ID: "c1", Kind: ast.ConstantNumeric, Text: "1.5"},
		}},
	}
	ctx := preprocess.Build([]*ast.Clause{c}, preprocess.Options{
		Relations: []ast.Relation{{Name: "edge", ValueArity: 1}},
		Symbols:   symtab.New(),
	})
	tr := valuetrans.New(index.New("edge"), ctx, "edge")

	conds, err := constantEqualityConditions(tr, c.Head.Args, 0)
	require.NoError(t, err)
	require.Len(t, conds, 1)
	cond, ok := conds[0].(ram.Constraint)
	require.True(t, ok)
	assert.Equal(t, ram.FEQ, cond.Op)
}

func TestNeedsScanFalseForAllUnnamed(t *testing.T) {
	assert.False(t, needsScan(nil))
	assert.False(t, needsScan([]ast.Argument{ast.UnnamedVariable{}, ast.UnnamedVariable{}}))
}

func TestNeedsScanTrueWhenAnyBoundArg(t *testing.T) {
	assert.True(t, needsScan([]ast.Argument{ast.UnnamedVariable{}, ast.Variable{Name: "x"}}))
}
