package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/driver"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/symtab"
	"github.com/relmach/ramc/internal/testutil"
)

func TestRunNonRecursiveJoin(t *testing.T) {
	b := testutil.NewBuilder()

	relations := []ast.Relation{
		b.Relation("edge", 2, 0),
		b.Relation("path", 2, 0),
	}
	clauses := []*ast.Clause{
		b.Fact("edge", b.Sym("a"), b.Sym("b")),
		b.Rule(
			b.Atom("path", b.Var("x"), b.Var("y")),
			b.Pos("edge", b.Var("x"), b.Var("y")),
		),
	}

	ctx := preprocess.Build(clauses, preprocess.Options{
		Relations: relations,
		Symbols:   symtab.New(),
	})

	stmt, err := driver.Run(ctx, clauses)
	require.NoError(t, err)

	seq, ok := stmt.(ram.Sequence)
	require.True(t, ok)
	assert.Len(t, seq.Stmts, 2, "one stratum per non-recursive relation SCC")
}

func TestRunRecursiveTransitiveClosureContainsLoop(t *testing.T) {
	b := testutil.NewBuilder()

	relations := []ast.Relation{
		b.Relation("edge", 2, 0),
		b.Relation("path", 2, 0),
	}
	clauses := []*ast.Clause{
		b.Fact("edge", b.Sym("a"), b.Sym("b")),
		b.Rule(
			b.Atom("path", b.Var("x"), b.Var("y")),
			b.Pos("edge", b.Var("x"), b.Var("y")),
		),
		b.Rule(
			b.Atom("path", b.Var("x"), b.Var("z")),
			b.Pos("path", b.Var("x"), b.Var("y")),
			b.Pos("edge", b.Var("y"), b.Var("z")),
		),
	}

	ctx := preprocess.Build(clauses, preprocess.Options{
		Relations: relations,
		Symbols:   symtab.New(),
	})

	stmt, err := driver.Run(ctx, clauses)
	require.NoError(t, err)

	assert.True(t, containsLoop(stmt), "recursive path stratum must contain a ram.Loop")
}

func containsLoop(s ram.Statement) bool {
	switch v := s.(type) {
	case ram.Loop:
		return true
	case ram.Sequence:
		for _, sub := range v.Stmts {
			if containsLoop(sub) {
				return true
			}
		}
	case ram.LogRelationTimer:
		return containsLoop(v.Inner)
	case ram.DebugInfo:
		return containsLoop(v.Inner)
	}
	return false
}
