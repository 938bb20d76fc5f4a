package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relmach/ramc/internal/names"
)

func TestConcreteIsIdentity(t *testing.T) {
	assert.Equal(t, "path", names.Concrete("path"))
}

func TestDeltaAndNewAreDistinctFromConcrete(t *testing.T) {
	assert.Equal(t, "Δpath", names.Delta("path"))
	assert.Equal(t, "path'", names.New("path"))
}

func TestVariantsAreInjectiveAcrossRelations(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range []string{"path", "edge"} {
		for _, v := range []string{names.Concrete(r), names.Delta(r), names.New(r)} {
			assert.False(t, seen[v], "name %q collided across relation/variant pairs", v)
			seen[v] = true
		}
	}
}
