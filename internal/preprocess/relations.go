package preprocess

import (
	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/oracle"
)

// Directive records the input/output facing of a relation, the analogue
// of a `.decl` directive's I/O clauses in the source system.
type Directive struct {
	Input  bool
	Output bool
}

type relationCache struct {
	byName map[string]ast.Relation
}

func (r *relationCache) Relation(name string) (ast.Relation, bool) {
	rel, ok := r.byName[name]
	return rel, ok
}

func (r *relationCache) AuxArity(name string) int {
	if rel, ok := r.byName[name]; ok {
		return rel.AuxArity
	}
	return 0
}

// NewRelationCache builds the RelationDetailCache/AuxiliaryArity oracle
// pair from a translation unit's relation declarations.
func NewRelationCache(relations []ast.Relation) *relationCache {
	byName := make(map[string]ast.Relation, len(relations))
	for _, r := range relations {
		byName[r.Name] = r
	}
	return &relationCache{byName: byName}
}

type ioType struct {
	directives map[string]Directive
}

func (t *ioType) HasInput(relation string) bool  { return t.directives[relation].Input }
func (t *ioType) HasOutput(relation string) bool { return t.directives[relation].Output }

// NewIOType builds the IOType oracle from an explicit per-relation
// directive map.
func NewIOType(directives map[string]Directive) *ioType {
	return &ioType{directives: directives}
}

// relationSchedule derives LoadBefore/ClearAfter from I/O directives and
// last-use stratum: an input relation loads before the first stratum of
// its own SCC; every non-output relation clears once the last stratum
// that references it (as a head or a body atom) finishes.
type relationSchedule struct {
	scc     oracle.SCCGraph
	io      oracle.IOType
	lastUse map[string]oracle.SCCID
}

func (s *relationSchedule) LoadBefore(id oracle.SCCID) []string {
	var out []string
	for _, r := range s.scc.Members(id) {
		if s.io.HasInput(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s *relationSchedule) ClearAfter(id oracle.SCCID) []string {
	var out []string
	for r, last := range s.lastUse {
		if last == id && !s.io.HasOutput(r) {
			out = append(out, r)
		}
	}
	return out
}

// NewSchedule computes the last stratum referencing each relation, so a
// relation clears as soon as no later stratum can still depend on it.
// Output relations are exempted from clearing so Store observes their
// final contents; no later statement clears them.
func NewSchedule(clauses []*ast.Clause, scc oracle.SCCGraph, io oracle.IOType) *relationSchedule {
	rank := make(map[oracle.SCCID]int)
	for i, id := range scc.Order() {
		rank[id] = i
	}

	lastUse := make(map[string]oracle.SCCID)
	touch := func(relation string, consumerSCC oracle.SCCID) {
		if cur, ok := lastUse[relation]; !ok || rank[consumerSCC] > rank[cur] {
			lastUse[relation] = consumerSCC
		}
	}

	for _, c := range clauses {
		headSCC := scc.SCCOf(c.Head.Relation)
		touch(c.Head.Relation, headSCC)
		for _, lit := range c.Body {
			switch l := lit.(type) {
			case ast.PositiveAtom:
				touch(l.Atom.Relation, headSCC)
			case ast.NegatedAtom:
				touch(l.Atom.Relation, headSCC)
			}
		}
	}

	return &relationSchedule{scc: scc, io: io, lastUse: lastUse}
}
