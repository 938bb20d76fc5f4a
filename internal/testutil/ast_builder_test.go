package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/testutil"
)

func TestBuilderDeterministicIDs(t *testing.T) {
	b1 := testutil.NewBuilder()
	c1 := b1.Num("1")

	b2 := testutil.NewBuilder()
	c2 := b2.Num("1")

	require.IsType(t, ast.Constant{}, c1)
	assert.Equal(t, c1.(ast.Constant).ID, c2.(ast.Constant).ID)
}

func TestBuilderRandomIDsDiffer(t *testing.T) {
	b1 := testutil.NewBuilder().UseRandomIDs()
	b2 := testutil.NewBuilder().UseRandomIDs()

	c1 := b1.Num("1").(ast.Constant)
	c2 := b2.Num("1").(ast.Constant)

	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestBuilderFactAndRule(t *testing.T) {
	b := testutil.NewBuilder()

	fact := b.Fact("edge", b.Sym("a"), b.Sym("b"))
	assert.True(t, fact.IsFact())
	assert.Equal(t, "edge", fact.Head.Relation)

	rule := b.Rule(
		b.Atom("path", b.Var("x"), b.Var("y")),
		b.Pos("edge", b.Var("x"), b.Var("y")),
	)
	assert.False(t, rule.IsFact())
	assert.Len(t, rule.Body, 1)
}
