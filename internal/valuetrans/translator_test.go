package valuetrans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/index"
	"github.com/relmach/ramc/internal/oracle"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/symtab"
	"github.com/relmach/ramc/internal/testutil"
	"github.com/relmach/ramc/internal/valuetrans"
)

func buildCtx(t *testing.T, clauses []*ast.Clause, relations []ast.Relation) *oracle.Context {
	t.Helper()
	return preprocess.Build(clauses, preprocess.Options{
		Relations: relations,
		Symbols:   symtab.New(),
	})
}

func TestTranslateVariableResolvesDefiningLocation(t *testing.T) {
	b := testutil.NewBuilder()
	fact := b.Fact("edge", b.Sym("a"), b.Sym("b"))
	ctx := buildCtx(t, []*ast.Clause{fact}, []ast.Relation{b.Relation("edge", 2, 0)})

	vi := index.New("edge")
	vi.AddVarReference("x", index.Location{Level: 0, Column: 1})

	tr := valuetrans.New(vi, ctx, "edge")
	expr, err := tr.Translate(ast.Variable{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, ram.TupleElement{Level: 0, Column: 1}, expr)
}

func TestTranslateUnnamedVariableYieldsUndefValue(t *testing.T) {
	b := testutil.NewBuilder()
	ctx := buildCtx(t, []*ast.Clause{b.Fact("edge", b.Sym("a"))}, []ast.Relation{b.Relation("edge", 1, 0)})

	tr := valuetrans.New(index.New("edge"), ctx, "edge")
	expr, err := tr.Translate(ast.UnnamedVariable{})
	require.NoError(t, err)
	assert.Equal(t, ram.UndefValue{}, expr)
}

func TestTranslateStringConstantInternsSymbol(t *testing.T) {
	b := testutil.NewBuilder()
	sym := b.Sym("hello")
	fact := b.Fact("edge", sym)
	ctx := buildCtx(t, []*ast.Clause{fact}, []ast.Relation{b.Relation("edge", 1, 0)})

	tr := valuetrans.New(index.New("edge"), ctx, "edge")
	expr, err := tr.Translate(sym)
	require.NoError(t, err)

	sc, ok := expr.(ram.SignedConstant)
	require.True(t, ok)
	assert.GreaterOrEqual(t, sc.Value, int64(0))
}

func TestTranslateNumericConstantDefaultsToSigned(t *testing.T) {
	b := testutil.NewBuilder()
	num := b.Num("42")
	fact := b.Fact("edge", num)
	ctx := buildCtx(t, []*ast.Clause{fact}, []ast.Relation{b.Relation("edge", 1, 0)})

	tr := valuetrans.New(index.New("edge"), ctx, "edge")
	expr, err := tr.Translate(num)
	require.NoError(t, err)
	assert.Equal(t, ram.SignedConstant{Value: 42}, expr)
}

func TestTranslateFloatConstant(t *testing.T) {
	b := testutil.NewBuilder()
	num := b.Num("3.5")
	fact := b.Fact("edge", num)
	ctx := buildCtx(t, []*ast.Clause{fact}, []ast.Relation{b.Relation("edge", 1, 0)})

	tr := valuetrans.New(index.New("edge"), ctx, "edge")
	expr, err := tr.Translate(num)
	require.NoError(t, err)
	assert.Equal(t, ram.FloatConstant{Value: 3.5}, expr)
}

func TestTranslateNilConstantIsZero(t *testing.T) {
	tr := valuetrans.New(index.New("edge"), buildCtx(t, nil, nil), "edge")
	expr, err := tr.Translate(ast.Constant{Kind: ast.ConstantNil})
	require.NoError(t, err)
	assert.Equal(t, ram.SignedConstant{Value: 0}, expr)
}

func TestTranslateRecordInitPacksFields(t *testing.T) {
	b := testutil.NewBuilder()
	rec := b.Record(b.Num("1"), b.Num("2"))
	fact := b.Fact("pair", rec)
	ctx := buildCtx(t, []*ast.Clause{fact}, []ast.Relation{b.Relation("pair", 1, 0)})

	tr := valuetrans.New(index.New("pair"), ctx, "pair")
	expr, err := tr.Translate(rec)
	require.NoError(t, err)

	packed, ok := expr.(ram.PackRecord)
	require.True(t, ok)
	require.Len(t, packed.Args, 2)
	assert.Equal(t, ram.SignedConstant{Value: 1}, packed.Args[0])
	assert.Equal(t, ram.SignedConstant{Value: 2}, packed.Args[1])
}

func TestTranslateIntrinsicFunctorLowersOperator(t *testing.T) {
	b := testutil.NewBuilder()
	fn := b.Intrinsic("+", b.Num("1"), b.Num("2"))
	fact := b.Fact("sum", fn)
	ctx := buildCtx(t, []*ast.Clause{fact}, []ast.Relation{b.Relation("sum", 1, 0)})

	tr := valuetrans.New(index.New("sum"), ctx, "sum")
	expr, err := tr.Translate(fn)
	require.NoError(t, err)

	op, ok := expr.(ram.IntrinsicOperator)
	require.True(t, ok)
	assert.Equal(t, "+", op.Operator)
	assert.Len(t, op.Args, 2)
}
