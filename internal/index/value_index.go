package index

import (
	"fmt"
	"sort"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/ramerr"
)

// ValueIndex is the per-clause map from every variable name and every
// record/generator site to its defining Location (§4.2).
type ValueIndex struct {
	clause string // head relation, for fault context only

	vars       map[string][]Location
	varOrder   []string // first-seen order, for deterministic auxiliary iteration
	recordDefs map[ast.NodeID]Location
	genLocs    map[ast.NodeID]Location

	operators  []OperatorSite
	generators []GeneratorSite
}

// New creates an empty ValueIndex for the clause producing head relation
// clauseName (used only to annotate faults with context).
func New(clauseName string) *ValueIndex {
	return &ValueIndex{
		clause:     clauseName,
		vars:       make(map[string][]Location),
		recordDefs: make(map[ast.NodeID]Location),
		genLocs:    make(map[ast.NodeID]Location),
	}
}

// PushOperator appends site to the operator stack and returns its level
// (its index).
func (vi *ValueIndex) PushOperator(site OperatorSite) int {
	level := len(vi.operators)
	vi.operators = append(vi.operators, site)
	return level
}

// Operators returns the operator stack in level order.
func (vi *ValueIndex) Operators() []OperatorSite {
	return vi.operators
}

// PushGenerator appends site to the generator list and returns its level
// (len(operators) + its index in the generator list).
func (vi *ValueIndex) PushGenerator(site GeneratorSite) int {
	level := len(vi.operators) + len(vi.generators)
	vi.generators = append(vi.generators, site)
	vi.genLocs[site.NodeID] = Location{Level: level, Column: 0}
	return level
}

// Generators returns the generator list in level order.
func (vi *ValueIndex) Generators() []GeneratorSite {
	return vi.generators
}

// IsGenerator reports whether level is a generator level (as opposed to
// an operator-stack level).
func (vi *ValueIndex) IsGenerator(level int) bool {
	return level >= len(vi.operators)
}

// TotalLevels returns len(operators) + len(generators).
func (vi *ValueIndex) TotalLevels() int {
	return len(vi.operators) + len(vi.generators)
}

// AddVarReference appends an occurrence of name at loc. If this is the
// first occurrence of name, it becomes the defining Location. Returns
// whether this occurrence is the defining one.
func (vi *ValueIndex) AddVarReference(name string, loc Location) bool {
	existing, seen := vi.vars[name]
	if !seen {
		vi.varOrder = append(vi.varOrder, name)
	}
	vi.vars[name] = append(existing, loc)
	return !seen
}

// AliasVarTo binds name's defining Location to loc, as if loc were name's
// first occurrence. Used when a binary `=` constraint equates a variable
// to an aggregator or multi-result functor result (§4.5.3 stage 2). If
// name already has occurrences, loc is simply appended like any other
// reference — the earliest-inserted occurrence remains defining, matching
// the Value Index's ordinary "first inserted reference is defining" rule.
func (vi *ValueIndex) AliasVarTo(name string, loc Location) {
	vi.AddVarReference(name, loc)
}

// VarLocations returns the occurrences recorded for name, in insertion
// order (index 0 is the defining Location), and whether name has been
// seen at all.
func (vi *ValueIndex) VarLocations(name string) ([]Location, bool) {
	locs, ok := vi.vars[name]
	return locs, ok
}

// DefiningLocation returns the defining Location for name, or a
// ramerr.Fault if name has never been indexed. This is the situation
// spec.md's Design Notes call an "unexpected state" rather than an
// enumerated fatal condition — an internal-fault, not a rejected program,
// since well-formedness is assumed to have been checked upstream.
func (vi *ValueIndex) DefiningLocation(name string) (Location, error) {
	locs, ok := vi.vars[name]
	if !ok || len(locs) == 0 {
		return Location{}, ramerr.New(ramerr.CodeUnresolvedVariable, vi.clause,
			fmt.Sprintf("variable %q has no indexed occurrence", name))
	}
	return locs[0], nil
}

// VarEntry pairs a variable name with all of its recorded occurrences.
type VarEntry struct {
	Name string
	Locs []Location
}

// VariablesSorted returns every indexed variable and its occurrences,
// sorted by name for deterministic iteration (§8 Determinism property).
func (vi *ValueIndex) VariablesSorted() []VarEntry {
	names := make([]string, 0, len(vi.vars))
	for n := range vi.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]VarEntry, 0, len(names))
	for _, n := range names {
		out = append(out, VarEntry{Name: n, Locs: vi.vars[n]})
	}
	return out
}

// SetRecordDefinition records the one-shot definition point of the
// record-init identified by id. A duplicate set is a programmer error
// (fatal, §4.2).
func (vi *ValueIndex) SetRecordDefinition(id ast.NodeID, loc Location) error {
	if _, exists := vi.recordDefs[id]; exists {
		return ramerr.New(ramerr.CodeDuplicateRecordDef, vi.clause,
			"record-init node already has a definition point")
	}
	vi.recordDefs[id] = loc
	return nil
}

// RecordDefinition returns the definition point of the record-init
// identified by id.
func (vi *ValueIndex) RecordDefinition(id ast.NodeID) (Location, bool) {
	loc, ok := vi.recordDefs[id]
	return loc, ok
}

// SetGeneratorLoc is exposed for the rare case a generator's Location
// needs to be set independent of PushGenerator (it is not; PushGenerator
// always assigns it). Kept to mirror the §4.2 operation list exactly.
func (vi *ValueIndex) SetGeneratorLoc(id ast.NodeID, loc Location) {
	vi.genLocs[id] = loc
}

// GetGeneratorLoc returns the Location assigned to the generator
// identified by id.
func (vi *ValueIndex) GetGeneratorLoc(id ast.NodeID) (Location, bool) {
	loc, ok := vi.genLocs[id]
	return loc, ok
}
