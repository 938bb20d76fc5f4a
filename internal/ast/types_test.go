package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relmach/ramc/internal/ast"
)

func TestSourceLocationStringFormatsFileLineColumn(t *testing.T) {
	loc := ast.SourceLocation{File: "t.dl", Line: 3, Column: 12}
	assert.Equal(t, "t.dl:3:12", loc.String())
}

func TestSourceLocationStringEmptyWithoutFile(t *testing.T) {
	assert.Equal(t, "", ast.SourceLocation{Line: 3}.String())
}

func TestClauseIsFact(t *testing.T) {
	fact := &ast.Clause{Head: ast.Atom{Relation: "edge"}}
	assert.True(t, fact.IsFact())

	rule := &ast.Clause{
		Head: ast.Atom{Relation: "path"},
		Body: []ast.Literal{ast.PositiveAtom{Atom: ast.Atom{Relation: "edge"}}},
	}
	assert.False(t, rule.IsFact())
}

func TestExecutionPlanMaxVersionNilPlan(t *testing.T) {
	var p *ast.ExecutionPlan
	assert.Equal(t, -1, p.MaxVersion())

	_, ok := p.OrderFor(0)
	assert.False(t, ok)
}

func TestExecutionPlanMaxVersionPicksHighest(t *testing.T) {
	p := &ast.ExecutionPlan{Orders: map[int][]int{0: {1}, 2: {2, 1}, 1: {1, 2}}}
	assert.Equal(t, 2, p.MaxVersion())

	order, ok := p.OrderFor(2)
	assert.True(t, ok)
	assert.Equal(t, []int{2, 1}, order)
}

func TestIsMultiResultVariantRecognizesBuiltins(t *testing.T) {
	variant, ok := ast.IsMultiResultVariant("range")
	assert.True(t, ok)
	assert.Equal(t, ast.VariantRange, variant)

	_, ok = ast.IsMultiResultVariant("+")
	assert.False(t, ok)
}
