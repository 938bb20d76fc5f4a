package preprocess

import "github.com/relmach/ramc/internal/ast"

// noneSips preserves written body order regardless of version — the
// baseline metric named in spec.md §6.
type noneSips struct{}

func (noneSips) Order(relation string, version int, atoms []ast.Literal) []int {
	order := make([]int, len(atoms))
	for i := range order {
		order[i] = i
	}
	return order
}

// firstFreeSips prefers, at each step, the not-yet-placed literal that
// binds at least one variable no earlier placed literal has already
// bound — a greedy sideways-information-passing heuristic that tends to
// push atoms binding "new" variables before ones that only re-check
// already-bound variables.
type firstFreeSips struct{}

func (firstFreeSips) Order(relation string, version int, atoms []ast.Literal) []int {
	n := len(atoms)
	placed := make([]bool, n)
	bound := make(map[string]bool)
	order := make([]int, 0, n)

	freeVars := func(lit ast.Literal) []string {
		var vars []string
		var walk func(ast.Argument)
		walk = func(a ast.Argument) {
			switch v := a.(type) {
			case ast.Variable:
				vars = append(vars, v.Name)
			case ast.RecordInit:
				for _, f := range v.Fields {
					walk(f)
				}
			case ast.Functor:
				for _, f := range v.Args {
					walk(f)
				}
			}
		}
		switch l := lit.(type) {
		case ast.PositiveAtom:
			for _, a := range l.Atom.Args {
				walk(a)
			}
		case ast.NegatedAtom:
			for _, a := range l.Atom.Args {
				walk(a)
			}
		case ast.BinaryConstraint:
			walk(l.LHS)
			walk(l.RHS)
		}
		return vars
	}

	for len(order) < n {
		best, bestNew := -1, -1
		for i, lit := range atoms {
			if placed[i] {
				continue
			}
			newCount := 0
			for _, v := range freeVars(lit) {
				if !bound[v] {
					newCount++
				}
			}
			if newCount > bestNew {
				best, bestNew = i, newCount
			}
		}
		placed[best] = true
		order = append(order, best)
		for _, v := range freeVars(atoms[best]) {
			bound[v] = true
		}
	}
	return order
}

// NewSipsMetric selects a SipsMetric implementation by configuration name
// (config.Config.SipsMetric).
func NewSipsMetric(name string) interface {
	Order(relation string, version int, atoms []ast.Literal) []int
} {
	if name == "first-free" {
		return firstFreeSips{}
	}
	return noneSips{}
}
