package ramjson

import (
	"fmt"
	"strconv"

	"github.com/relmach/ramc/internal/ram"
)

// EncodeStatement lowers a RAM statement into the canonical Value tree.
func EncodeStatement(s ram.Statement) (Value, error) {
	switch v := s.(type) {
	case ram.Query:
		op, err := EncodeOperation(v.Op)
		if err != nil {
			return nil, err
		}
		return Node("Query", Object{"op": op}), nil
	case ram.Sequence:
		stmts, err := encodeStatements(v.Stmts)
		if err != nil {
			return nil, err
		}
		return Node("Sequence", Object{"stmts": stmts}), nil
	case ram.Loop:
		body, err := EncodeStatement(v.Body)
		if err != nil {
			return nil, err
		}
		return Node("Loop", Object{"body": body}), nil
	case ram.Exit:
		cond, err := EncodeCondition(v.Cond)
		if err != nil {
			return nil, err
		}
		return Node("Exit", Object{"cond": cond}), nil
	case ram.Merge:
		return Node("Merge", Object{"target": String(v.Target), "source": String(v.Source)}), nil
	case ram.Clear:
		return Node("Clear", Object{"relation": String(v.Relation)}), nil
	case ram.Load:
		return Node("Load", Object{"relation": String(v.Relation)}), nil
	case ram.Store:
		return Node("Store", Object{"relation": String(v.Relation)}), nil
	case ram.DebugInfo:
		inner, err := EncodeStatement(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("DebugInfo", Object{
			"source_text":     String(v.SourceText),
			"source_location": String(v.SourceLocation),
			"inner":           inner,
		}), nil
	case ram.LogRelationTimer:
		inner, err := EncodeStatement(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("LogRelationTimer", Object{"relation": String(v.Relation), "inner": inner}), nil
	case ram.LogSize:
		return Node("LogSize", Object{"relation": String(v.Relation)}), nil
	default:
		return nil, fmt.Errorf("ramjson: unhandled statement type %T", s)
	}
}

func encodeStatements(stmts []ram.Statement) (Array, error) {
	out := make(Array, len(stmts))
	for i, s := range stmts {
		v, err := EncodeStatement(s)
		if err != nil {
			return nil, fmt.Errorf("stmts[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// EncodeOperation lowers a RAM operation into the canonical Value tree.
func EncodeOperation(op ram.Operation) (Value, error) {
	switch v := op.(type) {
	case ram.Project:
		args, err := encodeExpressions(v.Args)
		if err != nil {
			return nil, err
		}
		return Node("Project", Object{"relation": String(v.Relation), "args": args}), nil
	case ram.Scan:
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("Scan", Object{
			"relation":      String(v.Relation),
			"level":         Int(v.Level),
			"frequency_tag": String(v.FrequencyTag),
			"inner":         inner,
		}), nil
	case ram.Break:
		cond, err := EncodeCondition(v.Cond)
		if err != nil {
			return nil, err
		}
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("Break", Object{"cond": cond, "inner": inner}), nil
	case ram.Filter:
		cond, err := EncodeCondition(v.Cond)
		if err != nil {
			return nil, err
		}
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("Filter", Object{"cond": cond, "inner": inner}), nil
	case ram.UnpackRecord:
		ref, err := EncodeExpression(v.Ref)
		if err != nil {
			return nil, err
		}
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("UnpackRecord", Object{
			"ref":   ref,
			"level": Int(v.Level),
			"arity": Int(v.Arity),
			"inner": inner,
		}), nil
	case ram.Aggregate:
		cond, err := EncodeCondition(v.Cond)
		if err != nil {
			return nil, err
		}
		var target Value = Null{}
		if v.Target != nil {
			target, err = EncodeExpression(v.Target)
			if err != nil {
				return nil, err
			}
		}
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("Aggregate", Object{
			"op":       String(v.Op),
			"relation": String(v.Relation),
			"target":   target,
			"cond":     cond,
			"level":    Int(v.Level),
			"inner":    inner,
		}), nil
	case ram.NestedIntrinsicOperator:
		args, err := encodeExpressions(v.Args)
		if err != nil {
			return nil, err
		}
		inner, err := EncodeOperation(v.Inner)
		if err != nil {
			return nil, err
		}
		return Node("NestedIntrinsicOperator", Object{
			"variant": String(v.Variant),
			"args":    args,
			"level":   Int(v.Level),
			"inner":   inner,
		}), nil
	default:
		return nil, fmt.Errorf("ramjson: unhandled operation type %T", op)
	}
}

// EncodeCondition lowers a RAM condition into the canonical Value tree.
func EncodeCondition(cond ram.Condition) (Value, error) {
	switch v := cond.(type) {
	case ram.EmptinessCheck:
		return Node("EmptinessCheck", Object{"relation": String(v.Relation)}), nil
	case ram.ExistenceCheck:
		args, err := encodeExpressions(v.Args)
		if err != nil {
			return nil, err
		}
		return Node("ExistenceCheck", Object{"relation": String(v.Relation), "args": args}), nil
	case ram.Negation:
		inner, err := EncodeCondition(v.Cond)
		if err != nil {
			return nil, err
		}
		return Node("Negation", Object{"cond": inner}), nil
	case ram.Constraint:
		lhs, err := EncodeExpression(v.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := EncodeExpression(v.RHS)
		if err != nil {
			return nil, err
		}
		return Node("Constraint", Object{"op": String(v.Op), "lhs": lhs, "rhs": rhs}), nil
	case ram.Conjunction:
		conds := make(Array, len(v.Conds))
		for i, c := range v.Conds {
			ev, err := EncodeCondition(c)
			if err != nil {
				return nil, fmt.Errorf("conds[%d]: %w", i, err)
			}
			conds[i] = ev
		}
		return Node("Conjunction", Object{"conds": conds}), nil
	default:
		return nil, fmt.Errorf("ramjson: unhandled condition type %T", cond)
	}
}

// EncodeExpression lowers a RAM expression into the canonical Value tree.
func EncodeExpression(expr ram.Expression) (Value, error) {
	switch v := expr.(type) {
	case ram.TupleElement:
		return Node("TupleElement", Object{"level": Int(v.Level), "column": Int(v.Column)}), nil
	case ram.SignedConstant:
		return Node("SignedConstant", Object{"value": Int(v.Value)}), nil
	case ram.UnsignedConstant:
		return Node("UnsignedConstant", Object{"value": String(strconv.FormatUint(v.Value, 10))}), nil
	case ram.FloatConstant:
		return Node("FloatConstant", Object{"value": Float(v.Value)}), nil
	case ram.UndefValue:
		return Node("UndefValue", Object{}), nil
	case ram.IntrinsicOperator:
		args, err := encodeExpressions(v.Args)
		if err != nil {
			return nil, err
		}
		return Node("IntrinsicOperator", Object{"operator": String(v.Operator), "args": args}), nil
	case ram.UserOperator:
		args, err := encodeExpressions(v.Args)
		if err != nil {
			return nil, err
		}
		return Node("UserOperator", Object{"name": String(v.Name), "args": args}), nil
	case ram.PackRecord:
		args, err := encodeExpressions(v.Args)
		if err != nil {
			return nil, err
		}
		return Node("PackRecord", Object{"args": args}), nil
	default:
		return nil, fmt.Errorf("ramjson: unhandled expression type %T", expr)
	}
}

func encodeExpressions(exprs []ram.Expression) (Array, error) {
	out := make(Array, len(exprs))
	for i, e := range exprs {
		v, err := EncodeExpression(e)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
