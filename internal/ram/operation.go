package ram

// Operation is a node in the nested per-tuple operation tree inside a
// Query. Sealed to this package.
type Operation interface {
	operationNode()
}

// Project emits one tuple into Relation. It is always the innermost node
// of a Query's operation tree — the point where a matched, filtered
// binding is materialized into the head relation.
type Project struct {
	Relation string
	Args     []Expression
}

func (Project) operationNode() {}

// Scan iterates every tuple of Relation, binding it at Level, and
// evaluates Inner once per tuple. FrequencyTag is populated only when
// profiling is enabled (§C.1 of SPEC_FULL.md); it is empty otherwise.
type Scan struct {
	Relation     string
	Level        int
	FrequencyTag string
	Inner        Operation
}

func (Scan) operationNode() {}

// Break evaluates Inner but stops the nearest enclosing loop over the
// current Scan once Cond becomes true. Used to implement the "project at
// most once" discipline for nullary-head clauses.
type Break struct {
	Cond  Condition
	Inner Operation
}

func (Break) operationNode() {}

// Filter evaluates Inner only when Cond holds.
type Filter struct {
	Cond  Condition
	Inner Operation
}

func (Filter) operationNode() {}

// UnpackRecord dereferences the record value found at Ref, binds its Arity
// fields at Level, and evaluates Inner once.
type UnpackRecord struct {
	Ref   TupleElement
	Level int
	Arity int
	Inner Operation
}

func (UnpackRecord) operationNode() {}

// AggregateOp enumerates the aggregation operators available in RAM.
type AggregateOp string

const (
	AggregateCount AggregateOp = "COUNT"
	AggregateSum   AggregateOp = "SUM"
	AggregateMin   AggregateOp = "MIN"
	AggregateMax   AggregateOp = "MAX"
	AggregateMean  AggregateOp = "MEAN"
)

// Aggregate computes Op over every tuple of Relation satisfying Cond,
// optionally projecting Target per tuple (nil for COUNT), and binds the
// single resulting value at Level before evaluating Inner.
type Aggregate struct {
	Op       AggregateOp
	Relation string
	Target   Expression // nil for COUNT
	Cond     Condition
	Level    int
	Inner    Operation
}

func (Aggregate) operationNode() {}

// IntrinsicVariant names a multi-result intrinsic generator.
type IntrinsicVariant string

const (
	Range  IntrinsicVariant = "RANGE"
	URange IntrinsicVariant = "URANGE"
	FRange IntrinsicVariant = "FRANGE"
)

// NestedIntrinsicOperator evaluates a multi-result intrinsic (a range
// generator), binding each produced value at Level in turn and evaluating
// Inner once per value.
type NestedIntrinsicOperator struct {
	Variant IntrinsicVariant
	Args    []Expression
	Level   int
	Inner   Operation
}

func (NestedIntrinsicOperator) operationNode() {}
