package clause

import "github.com/relmach/ramc/internal/ast"

// orderedLit pairs a body literal with its position in the clause as
// written, surviving any execution-plan reordering so delta/prevs
// selection (identified by written position) can still be located after
// the reorder.
type orderedLit struct {
	origIndex int
	lit       ast.Literal
}

// reorderBody implements §4.5.3 stage 1: if the clause carries an
// execution plan for version, apply its 1-based ordering (remapped to
// 0-based); otherwise preserve written order.
func reorderBody(c *ast.Clause, version int) []orderedLit {
	body := c.Body
	ordered := make([]orderedLit, len(body))

	if order, ok := c.Plan.OrderFor(version); ok && len(order) == len(body) {
		for pos, oneBased := range order {
			idx := oneBased - 1
			ordered[pos] = orderedLit{origIndex: idx, lit: body[idx]}
		}
		return ordered
	}

	for i, l := range body {
		ordered[i] = orderedLit{origIndex: i, lit: l}
	}
	return ordered
}
