package preprocess

import (
	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/oracle"
)

// relationGraph maps a relation to every relation its clause bodies
// reference — the edge direction is "depends on", so a Tarjan pass
// naturally completes (and hence emits) a dependency's component before
// the component that uses it, adapted from internal/compiler/cycle.go's
// sync-dependency graph.
type relationGraph map[string][]string

func buildRelationGraph(clauses []*ast.Clause, relations []ast.Relation) relationGraph {
	graph := make(relationGraph)
	for _, r := range relations {
		graph[r.Name] = nil
	}
	for _, c := range clauses {
		if _, ok := graph[c.Head.Relation]; !ok {
			graph[c.Head.Relation] = nil
		}
		for _, lit := range c.Body {
			var rel string
			switch l := lit.(type) {
			case ast.PositiveAtom:
				rel = l.Atom.Relation
			case ast.NegatedAtom:
				rel = l.Atom.Relation
			default:
				continue
			}
			graph[c.Head.Relation] = append(graph[c.Head.Relation], rel)
		}
	}
	return graph
}

// tarjanSCC finds strongly connected components of graph using Tarjan's
// algorithm, returned in the order components complete — dependencies
// before dependents, since a node's component only completes once every
// reachable successor's component has.
func tarjanSCC(graph relationGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for node := range graph {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}

func hasSelfLoop(node string, graph relationGraph) bool {
	for _, n := range graph[node] {
		if n == node {
			return true
		}
	}
	return false
}

type sccGraph struct {
	order     []oracle.SCCID
	members   map[oracle.SCCID][]string
	sccOf     map[string]oracle.SCCID
	recursive map[oracle.SCCID]bool
}

func (g *sccGraph) Order() []oracle.SCCID           { return g.order }
func (g *sccGraph) Members(id oracle.SCCID) []string { return g.members[id] }
func (g *sccGraph) SCCOf(r string) oracle.SCCID      { return g.sccOf[r] }
func (g *sccGraph) IsRecursive(id oracle.SCCID) bool { return g.recursive[id] }

// BuildSCCGraph groups relations into strongly connected components,
// ordered so that every relation's dependencies occupy an earlier or
// equal stratum (§4.6).
func BuildSCCGraph(clauses []*ast.Clause, relations []ast.Relation) oracle.SCCGraph {
	graph := buildRelationGraph(clauses, relations)
	comps := tarjanSCC(graph)

	g := &sccGraph{
		members:   make(map[oracle.SCCID][]string, len(comps)),
		sccOf:     make(map[string]oracle.SCCID),
		recursive: make(map[oracle.SCCID]bool, len(comps)),
	}
	for i, comp := range comps {
		id := oracle.SCCID(i)
		g.order = append(g.order, id)
		g.members[id] = comp
		recursive := len(comp) > 1
		if !recursive && len(comp) == 1 {
			recursive = hasSelfLoop(comp[0], graph)
		}
		g.recursive[id] = recursive
		for _, r := range comp {
			g.sccOf[r] = id
		}
	}
	return g
}
