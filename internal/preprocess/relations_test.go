package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/preprocess"
	"github.com/relmach/ramc/internal/testutil"
)

func TestRelationCacheLooksUpByName(t *testing.T) {
	cache := preprocess.NewRelationCache([]ast.Relation{
		{Name: "edge", ValueArity: 2, AuxArity: 1},
	})

	rel, ok := cache.Relation("edge")
	require.True(t, ok)
	assert.Equal(t, 2, rel.ValueArity)
	assert.Equal(t, 1, cache.AuxArity("edge"))
	assert.Equal(t, 0, cache.AuxArity("missing"))

	_, ok = cache.Relation("missing")
	assert.False(t, ok)
}

func TestIOTypeReflectsDirectives(t *testing.T) {
	io := preprocess.NewIOType(map[string]preprocess.Directive{
		"edge": {Input: true},
		"path": {Output: true},
	})

	assert.True(t, io.HasInput("edge"))
	assert.False(t, io.HasOutput("edge"))
	assert.True(t, io.HasOutput("path"))
	assert.False(t, io.HasInput("unknown"))
}

func TestScheduleLoadBeforeReturnsOnlyInputMembers(t *testing.T) {
	b := testutil.NewBuilder()
	relations := []ast.Relation{
		b.Relation("edge", 2, 0),
		b.Relation("path", 2, 0),
	}
	clauses := []*ast.Clause{
		b.Rule(b.Atom("path", b.Var("x"), b.Var("y")), b.Pos("edge", b.Var("x"), b.Var("y"))),
	}
	scc := preprocess.BuildSCCGraph(clauses, relations)
	io := preprocess.NewIOType(map[string]preprocess.Directive{"edge": {Input: true}})
	sched := preprocess.NewSchedule(clauses, scc, io)

	edgeSCC := scc.SCCOf("edge")
	assert.Equal(t, []string{"edge"}, sched.LoadBefore(edgeSCC))

	pathSCC := scc.SCCOf("path")
	assert.Empty(t, sched.LoadBefore(pathSCC))
}

func TestScheduleClearAfterExemptsOutputRelations(t *testing.T) {
	b := testutil.NewBuilder()
	relations := []ast.Relation{
		b.Relation("edge", 2, 0),
		b.Relation("path", 2, 0),
	}
	clauses := []*ast.Clause{
		b.Rule(b.Atom("path", b.Var("x"), b.Var("y")), b.Pos("edge", b.Var("x"), b.Var("y"))),
	}
	scc := preprocess.BuildSCCGraph(clauses, relations)
	io := preprocess.NewIOType(map[string]preprocess.Directive{"path": {Output: true}})
	sched := preprocess.NewSchedule(clauses, scc, io)

	// path's own clause is the last (only) consumer of both "edge" and
	// "path" (as its head), so both relations' last-use stratum is
	// path's SCC; "path" itself is exempt from clearing since it is an
	// output relation.
	pathSCC := scc.SCCOf("path")
	assert.Equal(t, []string{"edge"}, sched.ClearAfter(pathSCC))

	edgeSCC := scc.SCCOf("edge")
	assert.Empty(t, sched.ClearAfter(edgeSCC))
}
