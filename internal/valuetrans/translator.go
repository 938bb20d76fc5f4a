// Package valuetrans implements the Value Translator of spec.md §4.3: a
// pure recursive lowering from an AST argument expression to a RAM
// expression, resolving variables through a Value Index.
package valuetrans

import (
	"fmt"
	"strconv"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/index"
	"github.com/relmach/ramc/internal/oracle"
	"github.com/relmach/ramc/internal/ram"
	"github.com/relmach/ramc/internal/ramerr"
)

// Translator lowers ast.Argument nodes to ram.Expression nodes, given the
// Value Index built for the enclosing clause and the external oracles.
type Translator struct {
	Index  *index.ValueIndex
	Ctx    *oracle.Context
	Clause string // head relation name, for fault context
}

// New returns a Translator bound to idx and ctx.
func New(idx *index.ValueIndex, ctx *oracle.Context, clauseName string) *Translator {
	return &Translator{Index: idx, Ctx: ctx, Clause: clauseName}
}

// Translate lowers a single argument expression.
func (t *Translator) Translate(arg ast.Argument) (ram.Expression, error) {
	switch a := arg.(type) {
	case ast.Variable:
		return t.translateVariable(a)
	case ast.UnnamedVariable:
		return ram.UndefValue{}, nil
	case ast.Constant:
		return t.translateConstant(a)
	case ast.RecordInit:
		return t.translateRecordInit(a)
	case ast.Functor:
		return t.translateFunctor(a)
	case ast.Aggregator:
		return t.translateGeneratorValue(a.ID)
	default:
		return nil, ramerr.New(ramerr.CodeUnknownConstant, t.Clause,
			fmt.Sprintf("unhandled argument node type %T", arg))
	}
}

func (t *Translator) translateVariable(v ast.Variable) (ram.Expression, error) {
	loc, err := t.Index.DefiningLocation(v.Name)
	if err != nil {
		return nil, err
	}
	return ram.TupleElement{Level: loc.Level, Column: loc.Column}, nil
}

// translateGeneratorValue lowers an aggregator or multi-result functor
// occurring as a value: it has already been installed as a scan site by
// the clause translator, so it lowers to the tuple element at its
// generator Location.
func (t *Translator) translateGeneratorValue(id ast.NodeID) (ram.Expression, error) {
	loc, ok := t.Index.GetGeneratorLoc(id)
	if !ok {
		return nil, ramerr.New(ramerr.CodeUnhandledGenerator, t.Clause,
			"generator node has no assigned location")
	}
	return ram.TupleElement{Level: loc.Level, Column: loc.Column}, nil
}

func (t *Translator) translateConstant(c ast.Constant) (ram.Expression, error) {
	switch c.Kind {
	case ast.ConstantNil:
		return ram.SignedConstant{Value: 0}, nil
	case ast.ConstantString:
		id := t.Ctx.Symbols.Intern(c.Text)
		return ram.SignedConstant{Value: int64(id)}, nil
	case ast.ConstantNumeric:
		return t.translateNumericConstant(c)
	default:
		return nil, ramerr.New(ramerr.CodeUnknownConstant, t.Clause,
			fmt.Sprintf("unknown constant kind %d", c.Kind))
	}
}

func (t *Translator) translateNumericConstant(c ast.Constant) (ram.Expression, error) {
	finalType, ok := t.Ctx.Poly.FinalizedConstantType(c.ID)
	if !ok {
		return nil, ramerr.New(ramerr.CodeUnresolvedType, t.Clause,
			fmt.Sprintf("numeric constant %q has no finalised type", c.Text))
	}
	switch finalType {
	case oracle.ConstantTypeSigned:
		v, err := strconv.ParseInt(c.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse signed constant %q: %w", c.Text, err)
		}
		return ram.SignedConstant{Value: v}, nil
	case oracle.ConstantTypeUnsigned:
		v, err := strconv.ParseUint(c.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse unsigned constant %q: %w", c.Text, err)
		}
		return ram.UnsignedConstant{Value: v}, nil
	case oracle.ConstantTypeFloat:
		v, err := strconv.ParseFloat(c.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("parse float constant %q: %w", c.Text, err)
		}
		return ram.FloatConstant{Value: v}, nil
	default:
		return nil, ramerr.New(ramerr.CodeUnresolvedType, t.Clause,
			fmt.Sprintf("unhandled finalised constant type %d", finalType))
	}
}

func (t *Translator) translateRecordInit(r ast.RecordInit) (ram.Expression, error) {
	args := make([]ram.Expression, len(r.Fields))
	for i, f := range r.Fields {
		v, err := t.Translate(f)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return ram.PackRecord{Args: args}, nil
}

func (t *Translator) translateFunctor(f ast.Functor) (ram.Expression, error) {
	if t.Ctx.Functors.IsMultiResult(f) {
		return t.translateGeneratorValue(f.ID)
	}
	args := make([]ram.Expression, len(f.Args))
	for i, a := range f.Args {
		v, err := t.Translate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch f.Kind {
	case ast.FunctorIntrinsic:
		return ram.IntrinsicOperator{Operator: f.Operator, Args: args}, nil
	case ast.FunctorUser:
		return ram.UserOperator{Name: f.Operator, Args: args}, nil
	default:
		return nil, ramerr.New(ramerr.CodeUnknownConstant, t.Clause,
			fmt.Sprintf("unknown functor kind %d", f.Kind))
	}
}
