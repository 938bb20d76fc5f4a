package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/oracle"
	"github.com/relmach/ramc/internal/preprocess"
)

func TestFinalizeConstantsDefaultsToSigned(t *testing.T) {
	c := &ast.Clause{
		Head: ast.Atom{Relation: "edge", Args: []ast.Argument{
			ast.Constant{ID: "c1", Kind: ast.ConstantNumeric, Text: "7"},
		}},
	}
	poly, types := preprocess.FinalizeConstants([]*ast.Clause{c}, nil)

	ct, ok := poly.FinalizedConstantType("c1")
	require.True(t, ok)
	assert.Equal(t, oracle.ConstantTypeSigned, ct)

	name, ok := types.ResolveType("c1")
	require.True(t, ok)
	assert.Equal(t, "number", name)
}

func TestFinalizeConstantsDetectsFloatByDecimalPoint(t *testing.T) {
	c := &ast.Clause{
		Head: ast.Atom{Relation: "edge", Args: []ast.Argument{
			ast.Constant{ID: "c1", Kind: ast.ConstantNumeric, Text: "3.14"},
		}},
	}
	poly, _ := preprocess.FinalizeConstants([]*ast.Clause{c}, nil)

	ct, ok := poly.FinalizedConstantType("c1")
	require.True(t, ok)
	assert.Equal(t, oracle.ConstantTypeFloat, ct)
}

func TestFinalizeConstantsHonorsUnsignedOverride(t *testing.T) {
	c := &ast.Clause{
		Head: ast.Atom{Relation: "edge", Args: []ast.Argument{
			ast.Constant{ID: "c1", Kind: ast.ConstantNumeric, Text: "7"},
		}},
	}
	poly, _ := preprocess.FinalizeConstants([]*ast.Clause{c}, map[ast.NodeID]bool{"c1": true})

	ct, ok := poly.FinalizedConstantType("c1")
	require.True(t, ok)
	assert.Equal(t, oracle.ConstantTypeUnsigned, ct)
}

func TestFinalizeConstantsWalksNestedRecordsAndFunctors(t *testing.T) {
	c := &ast.Clause{
		Head: ast.Atom{Relation: "wrap", Args: []ast.Argument{
			ast.RecordInit{ID: "rec1", Fields: []ast.Argument{
				ast.Functor{ID: "f1", Kind: ast.FunctorIntrinsic, Operator: "+", Args: []ast.Argument{
					ast.Constant{ID: "c1", Kind: ast.ConstantNumeric, Text: "2.0"},
				}},
			}},
		}},
	}
	poly, types := preprocess.FinalizeConstants([]*ast.Clause{c}, nil)

	ct, ok := poly.FinalizedConstantType("c1")
	require.True(t, ok)
	assert.Equal(t, oracle.ConstantTypeFloat, ct)

	name, ok := types.ResolveType("rec1")
	require.True(t, ok)
	assert.Equal(t, "record", name)
}

func TestFinalizeConstantsWalksAggregatorBody(t *testing.T) {
	c := &ast.Clause{
		Head: ast.Atom{Relation: "total", Args: []ast.Argument{
			ast.Aggregator{
				ID: "agg1",
				Op: ast.AggCount,
				Body: []ast.Literal{
					ast.PositiveAtom{Atom: ast.Atom{Relation: "edge", Args: []ast.Argument{
						ast.Constant{ID: "c1", Kind: ast.ConstantString, Text: "x"},
					}}},
				},
			},
		}},
	}
	_, types := preprocess.FinalizeConstants([]*ast.Clause{c}, nil)

	name, ok := types.ResolveType("c1")
	require.True(t, ok)
	assert.Equal(t, "symbol", name)
}
