package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relmach/ramc/internal/symtab"
)

func TestInternIsStable(t *testing.T) {
	tab := symtab.New()

	a := tab.Intern("alice")
	b := tab.Intern("bob")
	a2 := tab.Intern("alice")

	assert.Equal(t, a, a2)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, tab.Len())
}

func TestLookupReversesIntern(t *testing.T) {
	tab := symtab.New()
	id := tab.Intern("carol")

	s, ok := tab.Lookup(id)
	assert.True(t, ok)
	assert.Equal(t, "carol", s)

	_, ok = tab.Lookup(id + 1)
	assert.False(t, ok)
}

func TestLookupRejectsNegative(t *testing.T) {
	tab := symtab.New()
	_, ok := tab.Lookup(-1)
	assert.False(t, ok)
}
