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

// Expr is a scalar expression computing one field of a result.
type Expr interface {
	isExpr()
}

// FieldRef reads a field of a parameter: a.x.
type FieldRef struct {
	Param string
	Field string
}

// Unary applies a prefix operator: -a.x, ~a.x, !a.x.
type Unary struct {
	Op string
	X  Expr
}

// Binary applies an infix operator: a.x + b.x.
type Binary struct {
	Op   string
	X, Y Expr
}

// Call applies a named intrinsic: floor(a.x), min(a.x, b.x).
// Func is the neutral intrinsic name; emitters choose the spelling.
type Call struct {
	Func string
	Args []Expr
}

// Cast converts a scalar between element kinds: (float)a.x.
type Cast struct {
	From, To Kind
	X        Expr
}

func (*FieldRef) isExpr() {}
func (*Unary) isExpr()    {}
func (*Binary) isExpr()   {}
func (*Call) isExpr()     {}
func (*Cast) isExpr()     {}

// Walk calls fn for e and every sub-expression, depth first.
func Walk(e Expr, fn func(Expr)) {
	if e == nil {
		return
	}
	fn(e)
	switch e := e.(type) {
	case *Unary:
		Walk(e.X, fn)
	case *Binary:
		Walk(e.X, fn)
		Walk(e.Y, fn)
	case *Call:
		for _, a := range e.Args {
			Walk(a, fn)
		}
	case *Cast:
		Walk(e.X, fn)
	}
}
