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
	"github.com/samber/lo"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

// OpSpec is one operator or intrinsic in a family.
type OpSpec struct {
	Name   string   // "+", "min", "floor"
	Shape  ir.Shape // how the op is expanded over fields
	Method string   // Go method name; intrinsics default to the title-cased Name
}

// OpFamily is a group of operations gated by one predicate over the scalar
// profile. A family applies to every arity of a kind or to none.
type OpFamily struct {
	Name    string
	Applies func(p ScalarProfile) bool
	Ops     []OpSpec
}

// transcendental lists the one-argument float intrinsics in emission order.
var transcendental = []string{
	"abs", "floor", "ceil", "round", "sqrt", "trunc",
	"sin", "cos", "tan",
	"sinh", "cosh", "tanh",
	"asin", "acos", "atan",
	"asinh", "acosh", "atanh",
}

func mathOps() []OpSpec {
	ops := []OpSpec{{Name: "atan2", Shape: ir.ShapeBinaryIntrinsic}}
	for _, name := range transcendental {
		ops = append(ops, OpSpec{Name: name, Shape: ir.ShapeUnaryIntrinsic})
	}
	return ops
}

// families is ordered; expansion emits them in this order.
var families = []OpFamily{
	{
		Name:    "arithmetic",
		Applies: ScalarProfile.IsNumeric,
		Ops: []OpSpec{
			{Name: "+", Shape: ir.ShapeBinaryOp, Method: "Add"},
			{Name: "-", Shape: ir.ShapeBinaryOp, Method: "Sub"},
			{Name: "*", Shape: ir.ShapeBinaryOp, Method: "Mul"},
			{Name: "/", Shape: ir.ShapeBinaryOp, Method: "Div"},
		},
	},
	{
		Name:    "negate",
		Applies: func(p ScalarProfile) bool { return p.IsNumeric() && p.Signed },
		Ops: []OpSpec{
			{Name: "-", Shape: ir.ShapeUnaryOp, Method: "Neg"},
		},
	},
	{
		Name:    "minmax",
		Applies: ScalarProfile.IsNumeric,
		Ops: []OpSpec{
			{Name: "min", Shape: ir.ShapeBinaryIntrinsic},
			{Name: "max", Shape: ir.ShapeBinaryIntrinsic},
		},
	},
	{
		Name:    "math",
		Applies: func(p ScalarProfile) bool { return p.Floating },
		Ops:     mathOps(),
	},
	{
		Name:    "bitwise",
		Applies: func(p ScalarProfile) bool { return p.Integer },
		Ops: []OpSpec{
			{Name: "%", Shape: ir.ShapeBinaryOp, Method: "Rem"},
			{Name: "&", Shape: ir.ShapeBinaryOp, Method: "And"},
			{Name: "|", Shape: ir.ShapeBinaryOp, Method: "Or"},
			{Name: "^", Shape: ir.ShapeBinaryOp, Method: "Xor"},
			{Name: "~", Shape: ir.ShapeUnaryOp, Method: "Not"},
		},
	},
	{
		Name:    "logical",
		Applies: func(p ScalarProfile) bool { return p.Boolean },
		Ops: []OpSpec{
			{Name: "&&", Shape: ir.ShapeBinaryOp, Method: "And"},
			{Name: "||", Shape: ir.ShapeBinaryOp, Method: "Or"},
			{Name: "!", Shape: ir.ShapeUnaryOp, Method: "Not"},
		},
	},
}

// applicableFamilies returns the families that apply to p, in order.
func applicableFamilies(p ScalarProfile) []OpFamily {
	return lo.Filter(families, func(f OpFamily, _ int) bool {
		return f.Applies(p)
	})
}

// lookupOp finds the definition of an expanded operation.
func lookupOp(family, name string, shape ir.Shape) (OpSpec, bool) {
	for _, f := range families {
		if f.Name != family {
			continue
		}
		return lo.Find(f.Ops, func(op OpSpec) bool {
			return op.Name == name && op.Shape == shape
		})
	}
	return OpSpec{}, false
}
