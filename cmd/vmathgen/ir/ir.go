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

// Package ir holds the language-neutral descriptors produced by vmathgen's
// expansion engine: vector types, their struct declarations, the elementwise
// free functions applicable to them and the cross-kind conversions.
//
// Every function body is stored as one expression tree per field, so the
// same IR can be rendered as C++ or Go, or interpreted directly (see Eval).
package ir

import (
	"fmt"
	"strconv"
)

// Kind is the element kind of a vector type.
type Kind int

const (
	KindUint Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Valid reports whether k is one of the four element kinds.
func (k Kind) Valid() bool {
	return k >= KindUint && k <= KindBool
}

// Arity is the component count of a vector type.
type Arity int

// Arities lists the supported arities in emission order.
var Arities = []Arity{2, 3, 4}

var fieldNames = [...]string{"x", "y", "z", "w"}

// Valid reports whether a is 2, 3 or 4.
func (a Arity) Valid() bool {
	return a >= 2 && a <= 4
}

// Fields returns the field names for a, in declaration order.
// It panics if a is not a valid arity.
func (a Arity) Fields() []string {
	if !a.Valid() {
		panic(fmt.Sprintf("ir: invalid arity %d", int(a)))
	}
	return fieldNames[:a:a]
}

// FieldIndex returns the position of the named field, or -1.
func FieldIndex(name string) int {
	for i, f := range fieldNames {
		if f == name {
			return i
		}
	}
	return -1
}

// VectorType identifies one generated type.
type VectorType struct {
	Kind  Kind
	Arity Arity
}

// Name returns the canonical type name, e.g. "float3".
func (t VectorType) Name() string {
	return t.Kind.String() + strconv.Itoa(int(t.Arity))
}

func (t VectorType) String() string { return t.Name() }

// Shape classifies how a function is applied to its fields.
type Shape int

const (
	ShapeUnaryOp Shape = iota
	ShapeBinaryOp
	ShapeUnaryIntrinsic
	ShapeBinaryIntrinsic
)

func (s Shape) String() string {
	switch s {
	case ShapeUnaryOp:
		return "unary-op"
	case ShapeBinaryOp:
		return "binary-op"
	case ShapeUnaryIntrinsic:
		return "unary-intrinsic"
	case ShapeBinaryIntrinsic:
		return "binary-intrinsic"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// IsOperator reports whether functions of this shape are spelled as operators.
func (s Shape) IsOperator() bool {
	return s == ShapeUnaryOp || s == ShapeBinaryOp
}

// CtorKind names one constructor in a struct declaration.
type CtorKind int

const (
	CtorDefault CtorKind = iota
	CtorCopy
	CtorMove
	CtorCopyAssign
	CtorMoveAssign
	CtorValue
)

// Struct is the declaration of one vector type.
type Struct struct {
	Type   VectorType
	Fields []string
	Ctors  []CtorKind

	// Conversions lists the source types of the conversion constructors,
	// in table order. Their bodies live in Module.Conversions.
	Conversions []VectorType

	// Format is true when the type has a "(x, y, ...)" format operator.
	Format bool
}

// Func is one elementwise free function.
type Func struct {
	Name   string // operator symbol ("+", "~") or intrinsic name ("min")
	Family string
	Shape  Shape
	Type   VectorType
	Params []string

	// Fields holds one expression per field of Type, in arity order.
	Fields []Expr
}

// Unused returns the parameters that no field expression references.
func (f *Func) Unused() []string {
	used := make(map[string]bool)
	for _, e := range f.Fields {
		Walk(e, func(e Expr) {
			if r, ok := e.(*FieldRef); ok {
				used[r.Param] = true
			}
		})
	}
	var out []string
	for _, p := range f.Params {
		if !used[p] {
			out = append(out, p)
		}
	}
	return out
}

// Conversion is the out-of-line body of a conversion constructor.
type Conversion struct {
	From, To VectorType
	Param    string
	Fields   []Expr
}

// TypeDecl groups a struct declaration with its free functions.
type TypeDecl struct {
	Struct *Struct
	Funcs  []*Func
}

// Module is the complete output of one generation run.
type Module struct {
	// Types is the first pass: every struct and its functions.
	Types []TypeDecl

	// Conversions is the second pass, emitted after every type is declared.
	Conversions []*Conversion
}

// Lookup returns the declaration of t, or nil.
func (m *Module) Lookup(t VectorType) *TypeDecl {
	for i := range m.Types {
		if m.Types[i].Struct.Type == t {
			return &m.Types[i]
		}
	}
	return nil
}

// Func returns the function of t with the given name and parameter count,
// or nil. Unary and binary minus share a name, so the count disambiguates.
func (m *Module) Func(t VectorType, name string, nparams int) *Func {
	decl := m.Lookup(t)
	if decl == nil {
		return nil
	}
	for _, f := range decl.Funcs {
		if f.Name == name && len(f.Params) == nparams {
			return f
		}
	}
	return nil
}

// Conversion returns the conversion body from -> to, or nil.
func (m *Module) Conversion(from, to VectorType) *Conversion {
	for _, c := range m.Conversions {
		if c.From == from && c.To == to {
			return c
		}
	}
	return nil
}
