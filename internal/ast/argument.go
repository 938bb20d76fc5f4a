package ast

// Argument is the closed sum type for value-position AST nodes: variable,
// constant, record-init, functor (intrinsic or user), and aggregator. It is
// a sealed interface — only types in this package implement it.
type Argument interface {
	argumentNode()
}

// Variable is a named variable occurrence. The first occurrence indexed by
// the Value Index (internal/index) becomes its defining Location; every
// other occurrence references it.
type Variable struct {
	Name string
}

func (Variable) argumentNode() {}

// UnnamedVariable is the `_` wildcard. It never receives a Location and
// always lowers to ram.UndefValue. Per the source comment this behavior
// (rather than renaming unnamed variables to reduce index fan-out) is
// preserved as-is; see spec Open Questions.
type UnnamedVariable struct{}

func (UnnamedVariable) argumentNode() {}

// ConstantKind distinguishes the literal syntax a constant was written
// with. For numeric constants this is NOT the same as the constant's
// finalised type — that is stamped separately by the PolymorphicObjects
// oracle and consulted at lowering time (§4.8).
type ConstantKind int

const (
	ConstantNumeric ConstantKind = iota
	ConstantString
	ConstantNil
)

// Constant is a literal value. Its finalised numeric type (int / unsigned /
// float) is not carried on the node — it is resolved via
// oracle.PolymorphicObjects at translation time, matching the source
// system's separation of syntax from resolved type.
type Constant struct {
	ID   NodeID
	Kind ConstantKind
	Text string // textual form for numeric constants; the string value itself for ConstantString
}

func (Constant) argumentNode() {}

// RecordInit is a fixed-arity tuple constructor. When it appears as an
// argument of a positive body atom (directly, or nested inside another
// RecordInit that does), the clause translator treats it as a
// deconstruction site: it receives exactly one Location (its "definition
// point", the location where the record value itself is found) and pushes
// its own operator-stack level so its Fields can be unpacked. In any other
// position it is simply constructed via the Value Translator's pack rule.
type RecordInit struct {
	ID     NodeID
	Fields []Argument
}

func (RecordInit) argumentNode() {}

// FunctorKind distinguishes intrinsic (built-in) from user-defined
// functors. Both may be single- or multi-result; the classification comes
// from the FunctorAnalysis oracle, not from this node.
type FunctorKind int

const (
	FunctorIntrinsic FunctorKind = iota
	FunctorUser
)

// IntrinsicVariant names a multi-result intrinsic functor. Single-result
// intrinsics (+, -, *, ...) use Operator directly and are not members of
// this enum.
type IntrinsicVariant string

const (
	VariantRange  IntrinsicVariant = "range"
	VariantURange IntrinsicVariant = "urange"
	VariantFRange IntrinsicVariant = "frange"
)

// Functor applies an operator to sub-arguments. Whether it is single- or
// multi-result is classified externally by FunctorAnalysis; a multi-result
// functor is a generator and receives a Location the same way an
// Aggregator does.
type Functor struct {
	ID       NodeID
	Kind     FunctorKind
	Operator string
	Args     []Argument
}

func (Functor) argumentNode() {}

// AggregatorOp enumerates the supported aggregation operators.
type AggregatorOp string

const (
	AggCount AggregatorOp = "count"
	AggSum   AggregatorOp = "sum"
	AggMin   AggregatorOp = "min"
	AggMax   AggregatorOp = "max"
	AggMean  AggregatorOp = "mean"
)

// Aggregator computes a value over the bindings of an inner sub-clause
// body. Target is nil for count. The inner Body must contain exactly one
// PositiveAtom; anything else (zero atoms, more than one) is a fatal
// structural violation caught at translation time.
type Aggregator struct {
	ID     NodeID
	Op     AggregatorOp
	Target Argument // nil for count
	Body   []Literal
}

func (Aggregator) argumentNode() {}

// IsMultiResultVariant reports whether operator names one of the built-in
// multi-result range generators. FunctorAnalysis is still the source of
// truth for user-defined functors; this only covers the fixed intrinsic
// set spec.md names explicitly.
func IsMultiResultVariant(operator string) (IntrinsicVariant, bool) {
	switch IntrinsicVariant(operator) {
	case VariantRange, VariantURange, VariantFRange:
		return IntrinsicVariant(operator), true
	default:
		return "", false
	}
}
