package testutil

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/relmach/ramc/internal/ast"
)

// Builder assembles ast.Clause trees for tests. It assigns NodeIDs from a
// DeterministicClock by default, so two builders constructing the same
// tree shape in the same call order produce byte-identical ids — required
// for golden RAM-tree comparisons across test runs. UseRandomIDs switches
// to google/uuid for tests that only care about structural shape.
type Builder struct {
	clock  *DeterministicClock
	random bool
}

// NewBuilder returns a Builder with deterministic, clock-sequenced node
// ids starting from 1.
func NewBuilder() *Builder {
	return &Builder{clock: NewDeterministicClock()}
}

// UseRandomIDs switches id generation to google/uuid, for tests that
// construct trees dynamically and don't need reproducible ids.
func (b *Builder) UseRandomIDs() *Builder {
	b.random = true
	return b
}

func (b *Builder) nextID(prefix string) ast.NodeID {
	if b.random {
		return ast.NodeID(prefix + "-" + uuid.NewString())
	}
	return ast.NodeID(fmt.Sprintf("%s-%d", prefix, b.clock.Next()))
}

// Var returns a named variable argument.
func (b *Builder) Var(name string) ast.Argument { return ast.Variable{Name: name} }

// Unnamed returns the `_` wildcard argument.
func (b *Builder) Unnamed() ast.Argument { return ast.UnnamedVariable{} }

// Num returns a numeric constant with a fresh node id.
func (b *Builder) Num(text string) ast.Argument {
	return ast.Constant{ID: b.nextID("const"), Kind: ast.ConstantNumeric, Text: text}
}

// Sym returns a string (symbol) constant with a fresh node id.
func (b *Builder) Sym(text string) ast.Argument {
	return ast.Constant{ID: b.nextID("const"), Kind: ast.ConstantString, Text: text}
}

// Nil returns a nil constant with a fresh node id.
func (b *Builder) Nil() ast.Argument {
	return ast.Constant{ID: b.nextID("const"), Kind: ast.ConstantNil}
}

// Record returns a record-init argument over fields, with a fresh node id.
func (b *Builder) Record(fields ...ast.Argument) ast.Argument {
	return ast.RecordInit{ID: b.nextID("rec"), Fields: fields}
}

// Intrinsic returns a single- or multi-result intrinsic functor call.
func (b *Builder) Intrinsic(operator string, args ...ast.Argument) ast.Argument {
	return ast.Functor{ID: b.nextID("functor"), Kind: ast.FunctorIntrinsic, Operator: operator, Args: args}
}

// UserFunctor returns a user-defined functor call.
func (b *Builder) UserFunctor(name string, args ...ast.Argument) ast.Argument {
	return ast.Functor{ID: b.nextID("functor"), Kind: ast.FunctorUser, Operator: name, Args: args}
}

// Agg returns an aggregator over a single-atom body.
func (b *Builder) Agg(op ast.AggregatorOp, target ast.Argument, body ...ast.Literal) ast.Argument {
	return ast.Aggregator{ID: b.nextID("agg"), Op: op, Target: target, Body: body}
}

// Atom returns a relation applied to args.
func (b *Builder) Atom(relation string, args ...ast.Argument) ast.Atom {
	return ast.Atom{Relation: relation, Args: args}
}

// Pos wraps an atom as a positive body literal.
func (b *Builder) Pos(relation string, args ...ast.Argument) ast.Literal {
	return ast.PositiveAtom{Atom: b.Atom(relation, args...)}
}

// Neg wraps an atom as a negated body literal.
func (b *Builder) Neg(relation string, args ...ast.Argument) ast.Literal {
	return ast.NegatedAtom{Atom: b.Atom(relation, args...)}
}

// Cmp returns a binary constraint literal.
func (b *Builder) Cmp(op ast.BinaryOp, lhs, rhs ast.Argument) ast.Literal {
	return ast.BinaryConstraint{Op: op, LHS: lhs, RHS: rhs}
}

// Fact returns a fact clause: a head atom with no body.
func (b *Builder) Fact(relation string, args ...ast.Argument) *ast.Clause {
	return &ast.Clause{Head: b.Atom(relation, args...)}
}

// Rule returns a rule clause from a head atom and body literals.
func (b *Builder) Rule(head ast.Atom, body ...ast.Literal) *ast.Clause {
	return &ast.Clause{Head: head, Body: body}
}

// Relation returns a relation declaration.
func (b *Builder) Relation(name string, valueArity, auxArity int) ast.Relation {
	return ast.Relation{Name: name, ValueArity: valueArity, AuxArity: auxArity}
}
