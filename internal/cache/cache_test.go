package cache_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/cache"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/ramjson"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := cache.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMissReturnsNotFound(t *testing.T) {
	c := openTestCache(t)

	_, _, ok, err := c.Get("nonexistent", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutThenGetRoundTrips(t *testing.T) {
	c := openTestCache(t)
	stmt := ram.Query{Op: ram.Project{Relation: "edge", Args: nil}}

	require.NoError(t, c.Put("clause-1", 0, stmt, 1700000000))

	ramHash, ramJSON, ok, err := c.Get("clause-1", 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, ramHash)
	assert.NotEmpty(t, ramJSON)
}

func TestPutOverwritesSameKey(t *testing.T) {
	c := openTestCache(t)
	first := ram.Query{Op: ram.Project{Relation: "edge", Args: nil}}
	second := ram.Query{Op: ram.Project{Relation: "path", Args: nil}}

	require.NoError(t, c.Put("clause-1", 0, first, 1))
	require.NoError(t, c.Put("clause-1", 0, second, 2))

	hash1, err := ramjson.Hash(second)
	require.NoError(t, err)

	hash2, _, _, err := c.Get("clause-1", 0)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2, "second get should return second put's hash")
}

func clauseAt(text string, line int) *ast.Clause {
	return &ast.Clause{
		SourceText:     text,
		SourceLocation: ast.SourceLocation{File: "t.dl", Line: line, Column: 1},
	}
}

func TestClauseKeyIsPositionAndTextSensitive(t *testing.T) {
	a := clauseAt("edge(x, y) :- foo(x, y).", 1)
	other := clauseAt("edge(x, y) :- foo(x, y).", 2)
	same := clauseAt("edge(x, y) :- foo(x, y).", 1)
	otherText := clauseAt("edge(x, y) :- bar(x, y).", 1)

	assert.Equal(t, cache.ClauseKey(a, 0), cache.ClauseKey(same, 0))
	assert.NotEqual(t, cache.ClauseKey(a, 0), cache.ClauseKey(other, 0))
	assert.NotEqual(t, cache.ClauseKey(a, 0), cache.ClauseKey(otherText, 0))
}
