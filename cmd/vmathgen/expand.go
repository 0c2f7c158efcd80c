// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

// ExpandOptions controls optional deviations from the legacy output.
type ExpandOptions struct {
	// UnaryIntrinsicsTakeOneArg drops the unused second parameter that the
	// one-argument intrinsics (abs, floor, sin, ...) carry for compatibility
	// with existing consumers of the header.
	UnaryIntrinsicsTakeOneArg bool
}

// allCtors is the constructor set of every vector type, in emission order.
var allCtors = []ir.CtorKind{
	ir.CtorDefault,
	ir.CtorCopy,
	ir.CtorMove,
	ir.CtorCopyAssign,
	ir.CtorMoveAssign,
	ir.CtorValue,
}

// ExpandModule expands every (kind, arity) pair of the table.
//
// The first pass declares each type followed by its free functions, kinds in
// table order and arities ascending. The second pass produces the conversion
// bodies in the same order; they reference sibling types, so they can only be
// emitted once every type has been declared.
func ExpandModule(profiles []ScalarProfile, opts ExpandOptions) (*ir.Module, error) {
	if err := validateProfiles(profiles); err != nil {
		return nil, fmt.Errorf("invalid type table: %w", err)
	}

	m := &ir.Module{}
	for _, p := range profiles {
		for _, arity := range ir.Arities {
			m.Types = append(m.Types, ExpandType(profiles, p, arity, opts))
		}
	}

	for _, p := range profiles {
		for _, arity := range ir.Arities {
			for _, src := range otherProfiles(profiles, p) {
				m.Conversions = append(m.Conversions, expandConversion(src, p, arity))
			}
		}
	}
	return m, nil
}

// ExpandType produces the struct declaration and free functions of one
// vector type.
func ExpandType(profiles []ScalarProfile, p ScalarProfile, arity ir.Arity, opts ExpandOptions) ir.TypeDecl {
	t := p.VectorType(arity)
	st := &ir.Struct{
		Type:   t,
		Fields: arity.Fields(),
		Ctors:  allCtors,
		Conversions: lo.Map(otherProfiles(profiles, p), func(src ScalarProfile, _ int) ir.VectorType {
			return src.VectorType(arity)
		}),
		Format: true,
	}

	var funcs []*ir.Func
	for _, fam := range applicableFamilies(p) {
		for _, op := range fam.Ops {
			funcs = append(funcs, expandOp(t, fam.Name, op, opts))
		}
	}
	return ir.TypeDecl{Struct: st, Funcs: funcs}
}

func otherProfiles(profiles []ScalarProfile, p ScalarProfile) []ScalarProfile {
	return lo.Filter(profiles, func(q ScalarProfile, _ int) bool {
		return q.Kind != p.Kind
	})
}

// expandOp writes the elementwise body of op for type t.
func expandOp(t ir.VectorType, family string, op OpSpec, opts ExpandOptions) *ir.Func {
	params := []string{"a", "b"}
	switch {
	case op.Shape == ir.ShapeUnaryOp:
		params = params[:1]
	case op.Shape == ir.ShapeUnaryIntrinsic && opts.UnaryIntrinsicsTakeOneArg:
		params = params[:1]
	}

	fields := lo.Map(t.Arity.Fields(), func(f string, _ int) ir.Expr {
		a := &ir.FieldRef{Param: "a", Field: f}
		b := &ir.FieldRef{Param: "b", Field: f}
		switch op.Shape {
		case ir.ShapeUnaryOp:
			return &ir.Unary{Op: op.Name, X: a}
		case ir.ShapeBinaryOp:
			return &ir.Binary{Op: op.Name, X: a, Y: b}
		case ir.ShapeUnaryIntrinsic:
			// b stays in the signature but is never read.
			return &ir.Call{Func: op.Name, Args: []ir.Expr{a}}
		default:
			return &ir.Call{Func: op.Name, Args: []ir.Expr{a, b}}
		}
	})

	return &ir.Func{
		Name:   op.Name,
		Family: family,
		Shape:  op.Shape,
		Type:   t,
		Params: params,
		Fields: fields,
	}
}

// expandConversion builds the body of the to(from) conversion constructor.
func expandConversion(from, to ScalarProfile, arity ir.Arity) *ir.Conversion {
	return &ir.Conversion{
		From:  from.VectorType(arity),
		To:    to.VectorType(arity),
		Param: "a",
		Fields: lo.Map(arity.Fields(), func(f string, _ int) ir.Expr {
			return &ir.Cast{From: from.Kind, To: to.Kind, X: &ir.FieldRef{Param: "a", Field: f}}
		}),
	}
}
