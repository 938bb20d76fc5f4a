package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/testutil"
)

func TestApplyDefaultPlansSkipsFacts(t *testing.T) {
	b := testutil.NewBuilder()
	fact := b.Fact("edge", b.Sym("a"))
	preprocess.ApplyDefaultPlans([]*ast.Clause{fact}, preprocess.NewSipsMetric("none"))
	assert.Nil(t, fact.Plan)
}

func TestApplyDefaultPlansSkipsClausesWithExistingPlan(t *testing.T) {
	b := testutil.NewBuilder()
	rule := b.Rule(b.Atom("path", b.Var("x")), b.Pos("edge", b.Var("x")))
	existing := &ast.ExecutionPlan{Orders: map[int][]int{0: {1}}}
	rule.Plan = existing

	preprocess.ApplyDefaultPlans([]*ast.Clause{rule}, preprocess.NewSipsMetric("none"))
	assert.Same(t, existing, rule.Plan)
}

func TestApplyDefaultPlansAssignsOneBasedOrder(t *testing.T) {
	b := testutil.NewBuilder()
	rule := b.Rule(
		b.Atom("path", b.Var("x"), b.Var("y")),
		b.Pos("a", b.Var("x")),
		b.Pos("b", b.Var("y")),
	)

	preprocess.ApplyDefaultPlans([]*ast.Clause{rule}, preprocess.NewSipsMetric("none"))

	require.NotNil(t, rule.Plan)
	order, ok := rule.Plan.OrderFor(0)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, order)
}
