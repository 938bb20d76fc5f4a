package preprocess

import "github.com/relmach/ramc/internal/ast"

// ApplyDefaultPlans computes and attaches an ExecutionPlan to every clause
// with a body that does not already carry one, using metric to order the
// body once. The plan holds an order for version 0 only; a later
// semi-naïve version of a recursive rule finds no entry and keeps the
// body in its written order.
func ApplyDefaultPlans(clauses []*ast.Clause, metric interface {
	Order(relation string, version int, atoms []ast.Literal) []int
}) {
	for _, c := range clauses {
		if c.Plan != nil || len(c.Body) == 0 {
			continue
		}
		order := metric.Order(c.Head.Relation, 0, c.Body)
		oneBased := make([]int, len(order))
		for i, idx := range order {
			oneBased[i] = idx + 1
		}
		c.Plan = &ast.ExecutionPlan{Orders: map[int][]int{0: oneBased}}
	}
}
