package specload

import (
	"encoding/json"
	"fmt"

	"github.com/relmach/ramc/internal/ast"
	"github.com/relmach/ramc/internal/preprocess"
)

// Document is a fully decoded translation unit, ready for
// preprocess.Build.
type Document struct {
	Relations  []ast.Relation
	Directives map[string]preprocess.Directive
	Clauses    []*ast.Clause
}

type docJSON struct {
	Relations  []relationJSON             `json:"relations"`
	Directives map[string]directiveJSON   `json:"directives"`
	Clauses    []clauseJSON               `json:"clauses"`
}

type relationJSON struct {
	Name       string `json:"name"`
	ValueArity int    `json:"value_arity"`
	AuxArity   int    `json:"aux_arity"`
}

type directiveJSON struct {
	Input  bool `json:"input"`
	Output bool `json:"output"`
}

type clauseJSON struct {
	Head           atomJSON          `json:"head"`
	Body           []json.RawMessage `json:"body"`
	Plan           map[string][]int  `json:"plan"`
	SourceText     string            `json:"source_text"`
	SourceLocation *locJSON          `json:"source_location"`
}

type locJSON struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type atomJSON struct {
	Relation string            `json:"relation"`
	Args     []json.RawMessage `json:"args"`
}

type argJSON struct {
	Kind         string            `json:"kind"`
	Name         string            `json:"name"`          // var
	Type         string            `json:"type"`           // const
	Text         string            `json:"text"`           // const
	ID           string            `json:"id"`             // record, functor, agg
	Fields       []json.RawMessage `json:"fields"`         // record
	FunctorKind  string            `json:"functor_kind"`   // functor
	Operator     string            `json:"operator"`       // functor
	Args         []json.RawMessage `json:"args"`           // functor
	Op           string            `json:"op"`             // agg
	Target       json.RawMessage   `json:"target"`         // agg
	Body         []json.RawMessage `json:"body"`           // agg
}

type litJSON struct {
	Kind     string            `json:"kind"`
	Negated  bool              `json:"negated"`
	Relation string            `json:"relation"`
	Args     []json.RawMessage `json:"args"`
	Op       string            `json:"op"`
	LHS      json.RawMessage   `json:"lhs"`
	RHS      json.RawMessage   `json:"rhs"`
}

// Load reads, validates, and decodes a translation-unit document from
// data.
func Load(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var raw docJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("specload: decode: %w", err)
	}

	relations := make([]ast.Relation, len(raw.Relations))
	for i, r := range raw.Relations {
		relations[i] = ast.Relation{Name: r.Name, ValueArity: r.ValueArity, AuxArity: r.AuxArity}
	}

	directives := make(map[string]preprocess.Directive, len(raw.Directives))
	for name, d := range raw.Directives {
		directives[name] = preprocess.Directive{Input: d.Input, Output: d.Output}
	}

	clauses := make([]*ast.Clause, len(raw.Clauses))
	for i, c := range raw.Clauses {
		clause, err := decodeClause(c)
		if err != nil {
			return nil, fmt.Errorf("specload: clause %d: %w", i, err)
		}
		clauses[i] = clause
	}

	return &Document{Relations: relations, Directives: directives, Clauses: clauses}, nil
}

func decodeClause(c clauseJSON) (*ast.Clause, error) {
	head, err := decodeAtom(c.Head)
	if err != nil {
		return nil, fmt.Errorf("head: %w", err)
	}

	body := make([]ast.Literal, len(c.Body))
	for i, raw := range c.Body {
		lit, err := decodeLiteral(raw)
		if err != nil {
			return nil, fmt.Errorf("body[%d]: %w", i, err)
		}
		body[i] = lit
	}

	var plan *ast.ExecutionPlan
	if len(c.Plan) > 0 {
		orders := make(map[int][]int, len(c.Plan))
		for k, v := range c.Plan {
			var version int
			if _, err := fmt.Sscanf(k, "%d", &version); err != nil {
				return nil, fmt.Errorf("plan key %q: %w", k, err)
			}
			orders[version] = v
		}
		plan = &ast.ExecutionPlan{Orders: orders}
	}

	loc := ast.SourceLocation{}
	if c.SourceLocation != nil {
		loc = ast.SourceLocation{File: c.SourceLocation.File, Line: c.SourceLocation.Line, Column: c.SourceLocation.Column}
	}

	return &ast.Clause{
		Head:           head,
		Body:           body,
		Plan:           plan,
		SourceText:     c.SourceText,
		SourceLocation: loc,
	}, nil
}

func decodeAtom(a atomJSON) (ast.Atom, error) {
	args := make([]ast.Argument, len(a.Args))
	for i, raw := range a.Args {
		arg, err := decodeArgument(raw)
		if err != nil {
			return ast.Atom{}, fmt.Errorf("arg[%d]: %w", i, err)
		}
		args[i] = arg
	}
	return ast.Atom{Relation: a.Relation, Args: args}, nil
}

func decodeLiteral(raw json.RawMessage) (ast.Literal, error) {
	var l litJSON
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	switch l.Kind {
	case "atom":
		args := make([]ast.Argument, len(l.Args))
		for i, a := range l.Args {
			arg, err := decodeArgument(a)
			if err != nil {
				return nil, fmt.Errorf("arg[%d]: %w", i, err)
			}
			args[i] = arg
		}
		atom := ast.Atom{Relation: l.Relation, Args: args}
		if l.Negated {
			return ast.NegatedAtom{Atom: atom}, nil
		}
		return ast.PositiveAtom{Atom: atom}, nil
	case "constraint":
		lhs, err := decodeArgument(l.LHS)
		if err != nil {
			return nil, fmt.Errorf("lhs: %w", err)
		}
		rhs, err := decodeArgument(l.RHS)
		if err != nil {
			return nil, fmt.Errorf("rhs: %w", err)
		}
		return ast.BinaryConstraint{Op: ast.BinaryOp(l.Op), LHS: lhs, RHS: rhs}, nil
	default:
		return nil, fmt.Errorf("unknown literal kind %q", l.Kind)
	}
}

func decodeArgument(raw json.RawMessage) (ast.Argument, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty argument")
	}
	var a argJSON
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	switch a.Kind {
	case "var":
		return ast.Variable{Name: a.Name}, nil
	case "_":
		return ast.UnnamedVariable{}, nil
	case "const":
		kind, err := decodeConstantKind(a.Type)
		if err != nil {
			return nil, err
		}
		return ast.Constant{ID: ast.NodeID(a.ID), Kind: kind, Text: a.Text}, nil
	case "record":
		fields := make([]ast.Argument, len(a.Fields))
		for i, f := range a.Fields {
			field, err := decodeArgument(f)
			if err != nil {
				return nil, fmt.Errorf("field[%d]: %w", i, err)
			}
			fields[i] = field
		}
		return ast.RecordInit{ID: ast.NodeID(a.ID), Fields: fields}, nil
	case "functor":
		fk := ast.FunctorIntrinsic
		if a.FunctorKind == "user" {
			fk = ast.FunctorUser
		}
		args := make([]ast.Argument, len(a.Args))
		for i, sub := range a.Args {
			arg, err := decodeArgument(sub)
			if err != nil {
				return nil, fmt.Errorf("arg[%d]: %w", i, err)
			}
			args[i] = arg
		}
		return ast.Functor{ID: ast.NodeID(a.ID), Kind: fk, Operator: a.Operator, Args: args}, nil
	case "agg":
		var target ast.Argument
		if len(a.Target) > 0 {
			t, err := decodeArgument(a.Target)
			if err != nil {
				return nil, fmt.Errorf("target: %w", err)
			}
			target = t
		}
		body := make([]ast.Literal, len(a.Body))
		for i, b := range a.Body {
			lit, err := decodeLiteral(b)
			if err != nil {
				return nil, fmt.Errorf("body[%d]: %w", i, err)
			}
			body[i] = lit
		}
		return ast.Aggregator{ID: ast.NodeID(a.ID), Op: ast.AggregatorOp(a.Op), Target: target, Body: body}, nil
	default:
		return nil, fmt.Errorf("unknown argument kind %q", a.Kind)
	}
}

func decodeConstantKind(s string) (ast.ConstantKind, error) {
	switch s {
	case "numeric":
		return ast.ConstantNumeric, nil
	case "string":
		return ast.ConstantString, nil
	case "nil":
		return ast.ConstantNil, nil
	default:
		return 0, fmt.Errorf("unknown constant type %q", s)
	}
}
