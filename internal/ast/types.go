package ast

// NodeID stably identifies an AST node across the lifetime of a translation
// unit. It is assigned by the front end (or, in tests, by the builders in
// internal/testutil) and is the only thing the Value Index uses to key
// record-definition points and generator locations — the AST is never
// walked by pointer identity.
type NodeID string

// Relation identifies a named relation and its arity split.
//
// ValueArity is the number of columns that participate in matching.
// AuxArity is the trailing provenance/height column count; auxiliary
// columns are excluded from matching but still occupy trailing tuple
// positions.
type Relation struct {
	Name       string
	ValueArity int
	AuxArity   int
}

// SourceLocation is a human-readable position, carried through to
// ram.DebugInfo for diagnostics. It has no semantic effect on translation.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return ""
	}
	return l.File + ":" + itoa(l.Line) + ":" + itoa(l.Column)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Atom is a relation name applied to a list of arguments. It appears as the
// head of a Clause, or wrapped as a PositiveAtom / NegatedAtom in a body.
type Atom struct {
	Relation string
	Args     []Argument
}

// Literal is a body element: a positive atom, a negated atom, or a binary
// constraint. It is a sealed interface — only types in this package
// implement it.
type Literal interface {
	literalNode()
}

// PositiveAtom is a body atom that introduces a scan (operator-stack site).
type PositiveAtom struct {
	Atom Atom
}

func (PositiveAtom) literalNode() {}

// NegatedAtom is a body atom used only as an existence-check filter; it
// does not introduce a scan of its own. Its arguments must already be
// bound by an earlier positive literal.
type NegatedAtom struct {
	Atom Atom
}

func (NegatedAtom) literalNode() {}

// BinaryOp enumerates the binary constraint operators available to a
// written clause. FEQ is never written by hand — it is synthesized
// internally for constant-constraint float comparisons (§4.5.4).
type BinaryOp string

const (
	OpEq BinaryOp = "="
	OpNe BinaryOp = "!="
	OpLt BinaryOp = "<"
	OpLe BinaryOp = "<="
	OpGt BinaryOp = ">"
	OpGe BinaryOp = ">="
)

// BinaryConstraint is a body literal comparing two arguments.
type BinaryConstraint struct {
	Op  BinaryOp
	LHS Argument
	RHS Argument
}

func (BinaryConstraint) literalNode() {}

// Clause is a head atom and a body of literals. A fact is a Clause with an
// empty Body.
type Clause struct {
	Head           Atom
	Body           []Literal
	Plan           *ExecutionPlan
	SourceText     string
	SourceLocation SourceLocation
}

// IsFact reports whether the clause has no body literals.
func (c *Clause) IsFact() bool {
	return len(c.Body) == 0
}

// ExecutionPlan maps a semi-naïve version number to an explicit body-atom
// ordering. Orders are 1-based indices into Clause.Body as written; the
// clause translator remaps them to 0-based before use.
type ExecutionPlan struct {
	Orders map[int][]int
}

// OrderFor returns the 1-based order for version, and whether one was
// declared.
func (p *ExecutionPlan) OrderFor(version int) ([]int, bool) {
	if p == nil {
		return nil, false
	}
	order, ok := p.Orders[version]
	return order, ok
}

// MaxVersion returns the highest version referenced by the plan, or -1 if
// the plan declares no orders.
func (p *ExecutionPlan) MaxVersion() int {
	if p == nil || len(p.Orders) == 0 {
		return -1
	}
	max := -1
	for v := range p.Orders {
		if v > max {
			max = v
		}
	}
	return max
}
