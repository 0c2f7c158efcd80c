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

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArityFields(t *testing.T) {
	tests := []struct {
		arity Arity
		want  []string
	}{
		{2, []string{"x", "y"}},
		{3, []string{"x", "y", "z"}},
		{4, []string{"x", "y", "z", "w"}},
	}
	for _, tt := range tests {
		t.Run(VectorType{Kind: KindFloat, Arity: tt.arity}.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.arity.Fields())
		})
	}
}

func TestArityFieldsAreNotShared(t *testing.T) {
	f := Arity(2).Fields()
	f = append(f, "extra")
	assert.Equal(t, []string{"x", "y", "z"}, Arity(3).Fields())
	assert.Len(t, f, 3)
}

func TestArityFieldsPanicsOnInvalid(t *testing.T) {
	for _, a := range []Arity{0, 1, 5} {
		assert.Panics(t, func() { a.Fields() }, "arity %d", a)
		assert.False(t, a.Valid())
	}
}

func TestVectorTypeName(t *testing.T) {
	tests := []struct {
		typ  VectorType
		want string
	}{
		{VectorType{KindUint, 2}, "uint2"},
		{VectorType{KindInt, 3}, "int3"},
		{VectorType{KindFloat, 4}, "float4"},
		{VectorType{KindBool, 2}, "bool2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.Name())
		assert.Equal(t, tt.want, tt.typ.String())
	}
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestFieldIndex(t *testing.T) {
	assert.Equal(t, 0, FieldIndex("x"))
	assert.Equal(t, 3, FieldIndex("w"))
	assert.Equal(t, -1, FieldIndex("q"))
}

func TestShapeIsOperator(t *testing.T) {
	assert.True(t, ShapeUnaryOp.IsOperator())
	assert.True(t, ShapeBinaryOp.IsOperator())
	assert.False(t, ShapeUnaryIntrinsic.IsOperator())
	assert.False(t, ShapeBinaryIntrinsic.IsOperator())
}

func TestFuncUnused(t *testing.T) {
	abs := &Func{
		Name:   "abs",
		Shape:  ShapeUnaryIntrinsic,
		Type:   VectorType{KindFloat, 2},
		Params: []string{"a", "b"},
		Fields: []Expr{
			&Call{Func: "abs", Args: []Expr{&FieldRef{"a", "x"}}},
			&Call{Func: "abs", Args: []Expr{&FieldRef{"a", "y"}}},
		},
	}
	assert.Equal(t, []string{"b"}, abs.Unused())

	add := &Func{
		Name:   "+",
		Shape:  ShapeBinaryOp,
		Type:   VectorType{KindInt, 2},
		Params: []string{"a", "b"},
		Fields: []Expr{
			&Binary{Op: "+", X: &FieldRef{"a", "x"}, Y: &FieldRef{"b", "x"}},
			&Binary{Op: "+", X: &FieldRef{"a", "y"}, Y: &FieldRef{"b", "y"}},
		},
	}
	assert.Empty(t, add.Unused())
}

func TestWalk(t *testing.T) {
	e := &Cast{From: KindInt, To: KindFloat, X: &Unary{Op: "-", X: &Binary{
		Op: "*",
		X:  &FieldRef{"a", "x"},
		Y:  &Call{Func: "min", Args: []Expr{&FieldRef{"a", "y"}, &FieldRef{"b", "y"}}},
	}}}
	var refs []string
	n := 0
	Walk(e, func(e Expr) {
		n++
		if r, ok := e.(*FieldRef); ok {
			refs = append(refs, r.Param+"."+r.Field)
		}
	})
	assert.Equal(t, 7, n)
	assert.Equal(t, []string{"a.x", "a.y", "b.y"}, refs)
}

func TestModuleLookup(t *testing.T) {
	f2 := VectorType{KindFloat, 2}
	i2 := VectorType{KindInt, 2}
	neg := &Func{Name: "-", Shape: ShapeUnaryOp, Type: f2, Params: []string{"a"}}
	sub := &Func{Name: "-", Shape: ShapeBinaryOp, Type: f2, Params: []string{"a", "b"}}
	conv := &Conversion{From: f2, To: i2, Param: "a"}
	m := &Module{
		Types:       []TypeDecl{{Struct: &Struct{Type: f2}, Funcs: []*Func{sub, neg}}},
		Conversions: []*Conversion{conv},
	}

	assert.NotNil(t, m.Lookup(f2))
	assert.Nil(t, m.Lookup(i2))
	assert.Same(t, neg, m.Func(f2, "-", 1))
	assert.Same(t, sub, m.Func(f2, "-", 2))
	assert.Nil(t, m.Func(i2, "-", 2))
	assert.Same(t, conv, m.Conversion(f2, i2))
	assert.Nil(t, m.Conversion(i2, f2))
}
