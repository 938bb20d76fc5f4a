package clause

import (
	"fmt"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/ramerr"
)

// UsesSCCAtom reports whether c's body contains a positive atom whose
// relation belongs to sccMembers — i.e. whether c is a recursive clause of
// its stratum, as opposed to a base clause seeding it (§4.6 preamble).
func UsesSCCAtom(c *ast.Clause, sccMembers map[string]bool) bool {
	for _, lit := range c.Body {
		pos, ok := lit.(ast.PositiveAtom)
		if ok && sccMembers[pos.Atom.Relation] {
			return true
		}
	}
	return false
}

// GenerateVersions implements §4.5.5: one Options value per in-SCC body
// atom of c, in written order, each naming that atom as the version's
// delta source. The counter — and hence the version numbers assigned —
// only advances over in-SCC atoms. If c carries an execution plan
// referencing a version at or beyond the resulting count, that is fatal.
func GenerateVersions(c *ast.Clause, sccMembers map[string]bool) ([]Options, error) {
	var out []Options
	counter := 0
	for i, lit := range c.Body {
		pos, ok := lit.(ast.PositiveAtom)
		if !ok || !sccMembers[pos.Atom.Relation] {
			continue
		}
		out = append(out, Options{
			Recursive:      true,
			Version:        counter,
			DeltaOrigIndex: i,
			SCCMembers:     sccMembers,
		})
		counter++
	}

	if c.Plan != nil && c.Plan.MaxVersion() >= counter {
		return nil, ramerr.New(ramerr.CodePlanVersionOOB, c.Head.Relation,
			fmt.Sprintf("execution plan references version %d but clause has only %d versions", c.Plan.MaxVersion(), counter))
	}

	return out, nil
}
