package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/index"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/symtab"
)

func TestBuildIndexPushesOneOperatorSitePerPositiveAtom(t *testing.T) {
	head := ast.Atom{Relation: "path", Args: []ast.Argument{ast.Variable{Name: "x"}, ast.Variable{Name: "z"}}}
	c := &ast.Clause{
		Head: head,
		Body: []ast.Literal{
			ast.PositiveAtom{Atom: ast.Atom{Relation: "path", Args: []ast.Argument{ast.Variable{Name: "x"}, ast.Variable{Name: "y"}}}},
			ast.PositiveAtom{Atom: ast.Atom{Relation: "edge", Args: []ast.Argument{ast.Variable{Name: "y"}, ast.Variable{Name: "z"}}}},
		},
	}
	ordered := reorderBody(c, 0)

	ctx := preprocess.Build([]*ast.Clause{c}, preprocess.Options{
		Relations: []ast.Relation{{Name: "path", ValueArity: 2}, {Name: "edge", ValueArity: 2}},
		Symbols:   symtab.New(),
	})

	vi := index.New("path")
	require.NoError(t, buildIndex(vi, ctx, ordered, head))

	require.Len(t, vi.Operators(), 2)
	loc, err := vi.DefiningLocation("x")
	require.NoError(t, err)
	assert.Equal(t, index.Location{Level: 0, Column: 0}, loc)

	locY, err := vi.DefiningLocation("y")
	require.NoError(t, err)
	assert.Equal(t, index.Location{Level: 0, Column: 1}, locY)
}

func TestBuildIndexRecordArgumentPushesNestedSite(t *testing.T) {
	head := ast.Atom{Relation: "pair"}
	rec := ast.RecordInit{ID: "rec-1", Fields: []ast.Argument{ast.Variable{Name: "a"}, ast.Variable{Name: "b"}}}
	c := &ast.Clause{
		Head: head,
		Body: []ast.Literal{
			ast.PositiveAtom{Atom: ast.Atom{Relation: "pairs", Args: []ast.Argument{rec}}},
		},
	}
	ordered := reorderBody(c, 0)
	ctx := preprocess.Build([]*ast.Clause{c}, preprocess.Options{
		Relations: []ast.Relation{{Name: "pairs", ValueArity: 1}},
		Symbols:   symtab.New(),
	})

	vi := index.New("pair")
	require.NoError(t, buildIndex(vi, ctx, ordered, head))

	require.Len(t, vi.Operators(), 2, "one atom scan plus one record unpack site")
	defLoc, ok := vi.RecordDefinition("rec-1")
	require.True(t, ok)
	assert.Equal(t, index.Location{Level: 0, Column: 0}, defLoc)
}

func TestIndexArgRejectsFunctorAsDirectPattern(t *testing.T) {
	vi := index.New("edge")
	err := indexArg(vi, ast.Functor{ID: "f1", Kind: ast.FunctorIntrinsic, Operator: "+"}, 0, 0)
	assert.Error(t, err)
}

func TestSingleAggregatorAtomRejectsMultipleAtoms(t *testing.T) {
	agg := &ast.Aggregator{
		Op: ast.AggCount,
		Body: []ast.Literal{
			ast.PositiveAtom{Atom: ast.Atom{Relation: "a"}},
			ast.PositiveAtom{Atom: ast.Atom{Relation: "b"}},
		},
	}
	_, err := singleAggregatorAtom(agg)
	assert.Error(t, err)
}

func TestSingleAggregatorAtomRejectsEmptyBody(t *testing.T) {
	agg := &ast.Aggregator{Op: ast.AggCount}
	_, err := singleAggregatorAtom(agg)
	assert.Error(t, err)
}
