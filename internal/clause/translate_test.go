package clause_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/clause"
	"github.com/relmach/ramc/internal/names"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/symtab"
	"github.com/relmach/ramc/internal/testutil"
)

func TestTranslateClauseFactYieldsDebugWrappedProject(t *testing.T) {
	b := testutil.NewBuilder()
	fact := b.Fact("edge", b.Sym("a"), b.Sym("b"))
	ctx := preprocess.Build([]*ast.Clause{fact}, preprocess.Options{
		Relations: []ast.Relation{b.Relation("edge", 2, 0)},
		Symbols:   symtab.New(),
	})

	stmt, err := clause.TranslateClause(ctx, fact, clause.Options{})
	require.NoError(t, err)

	dbg, ok := stmt.(ram.DebugInfo)
	require.True(t, ok)
	query, ok := dbg.Inner.(ram.Query)
	require.True(t, ok)
	proj, ok := query.Op.(ram.Project)
	require.True(t, ok)
	assert.Equal(t, "edge", proj.Relation)
	assert.Len(t, proj.Args, 2)
}

func TestTranslateClauseFactRejectsRecursiveOption(t *testing.T) {
	b := testutil.NewBuilder()
	fact := b.Fact("edge", b.Sym("a"))
	ctx := preprocess.Build([]*ast.Clause{fact}, preprocess.Options{
		Relations: []ast.Relation{b.Relation("edge", 1, 0)},
		Symbols:   symtab.New(),
	})

	_, err := clause.TranslateClause(ctx, fact, clause.Options{Recursive: true})
	assert.Error(t, err)
}

func TestTranslateClauseNonRecursiveRuleNestsAScan(t *testing.T) {
	b := testutil.NewBuilder()
	relations := []ast.Relation{
		b.Relation("edge", 2, 0),
		b.Relation("path", 2, 0),
	}
	rule := b.Rule(
		b.Atom("path", b.Var("x"), b.Var("y")),
		b.Pos("edge", b.Var("x"), b.Var("y")),
	)
	ctx := preprocess.Build([]*ast.Clause{rule}, preprocess.Options{
		Relations: relations,
		Symbols:   symtab.New(),
	})

	stmt, err := clause.TranslateClause(ctx, rule, clause.Options{})
	require.NoError(t, err)

	dbg, ok := stmt.(ram.DebugInfo)
	require.True(t, ok)
	query, ok := dbg.Inner.(ram.Query)
	require.True(t, ok)

	scan, ok := query.Op.(ram.Scan)
	require.True(t, ok, "expected outermost operator to be a Scan, got %T", query.Op)
	assert.Equal(t, "edge", scan.Relation)
}

func TestTranslateClauseRecursiveVersionUsesDeltaRelation(t *testing.T) {
	b := testutil.NewBuilder()
	relations := []ast.Relation{
		b.Relation("edge", 2, 0),
		b.Relation("path", 2, 0),
	}
	rule := b.Rule(
		b.Atom("path", b.Var("x"), b.Var("z")),
		b.Pos("path", b.Var("x"), b.Var("y")),
		b.Pos("edge", b.Var("y"), b.Var("z")),
	)
	ctx := preprocess.Build([]*ast.Clause{rule}, preprocess.Options{
		Relations: relations,
		Symbols:   symtab.New(),
	})

	versions, err := clause.GenerateVersions(rule, map[string]bool{"path": true})
	require.NoError(t, err)
	require.Len(t, versions, 1)

	stmt, err := clause.TranslateClause(ctx, rule, versions[0])
	require.NoError(t, err)

	dbg, ok := stmt.(ram.DebugInfo)
	require.True(t, ok)
	query, ok := dbg.Inner.(ram.Query)
	require.True(t, ok)
	scan, ok := query.Op.(ram.Scan)
	require.True(t, ok, "expected outermost operator to be a Scan, got %T", query.Op)
	assert.Equal(t, names.Delta("path"), scan.Relation)
}
