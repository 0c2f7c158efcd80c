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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDivideByZero is returned when an integer division or remainder has a
// zero divisor.
var ErrDivideByZero = errors.New("integer divide by zero")

// Vector is a concrete value of a vector type. Elems holds uint32, int32,
// float32 or bool values according to Type.Kind.
type Vector struct {
	Type  VectorType
	Elems []any
}

// NewVector builds a vector of type t. Untyped Go constants (int, float64)
// are converted to the element kind when they fit.
func NewVector(t VectorType, elems ...any) (Vector, error) {
	if !t.Arity.Valid() || !t.Kind.Valid() {
		return Vector{}, fmt.Errorf("invalid vector type %v", t)
	}
	if len(elems) != int(t.Arity) {
		return Vector{}, fmt.Errorf("%s: got %d elements, want %d", t.Name(), len(elems), t.Arity)
	}
	v := Vector{Type: t, Elems: make([]any, len(elems))}
	for i, e := range elems {
		s, err := coerce(t.Kind, e)
		if err != nil {
			return Vector{}, fmt.Errorf("%s.%s: %w", t.Name(), fieldNames[i], err)
		}
		v.Elems[i] = s
	}
	return v, nil
}

// MustVector is like NewVector but panics on error.
func MustVector(t VectorType, elems ...any) Vector {
	v, err := NewVector(t, elems...)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats v as "(x, y, ...)".
func (v Vector) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = formatScalar(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatScalar(s any) string {
	switch s := s.(type) {
	case uint32:
		return strconv.FormatUint(uint64(s), 10)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case float32:
		return strconv.FormatFloat(float64(s), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

func coerce(k Kind, e any) (any, error) {
	switch k {
	case KindUint:
		switch e := e.(type) {
		case uint32:
			return e, nil
		case int:
			if e < 0 || int64(e) > math.MaxUint32 {
				return nil, fmt.Errorf("%d overflows uint32", e)
			}
			return uint32(e), nil
		}
	case KindInt:
		switch e := e.(type) {
		case int32:
			return e, nil
		case int:
			if e < math.MinInt32 || e > math.MaxInt32 {
				return nil, fmt.Errorf("%d overflows int32", e)
			}
			return int32(e), nil
		}
	case KindFloat:
		switch e := e.(type) {
		case float32:
			return e, nil
		case float64:
			return float32(e), nil
		case int:
			return float32(e), nil
		}
	case KindBool:
		if b, ok := e.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as %s", e, k)
}

// Eval applies f to concrete arguments, one per parameter.
func (f *Func) Eval(args ...Vector) (Vector, error) {
	if len(args) != len(f.Params) {
		return Vector{}, fmt.Errorf("%s %s: got %d arguments, want %d", f.Type.Name(), f.Name, len(args), len(f.Params))
	}
	env := make(map[string]Vector, len(args))
	for i, p := range f.Params {
		if args[i].Type != f.Type {
			return Vector{}, fmt.Errorf("%s %s: argument %s has type %s", f.Type.Name(), f.Name, p, args[i].Type.Name())
		}
		env[p] = args[i]
	}
	return evalFields(f.Type, f.Fields, env)
}

// Eval converts src field by field.
func (c *Conversion) Eval(src Vector) (Vector, error) {
	if src.Type != c.From {
		return Vector{}, fmt.Errorf("conversion %s -> %s: source has type %s", c.From.Name(), c.To.Name(), src.Type.Name())
	}
	return evalFields(c.To, c.Fields, map[string]Vector{c.Param: src})
}

func evalFields(t VectorType, fields []Expr, env map[string]Vector) (Vector, error) {
	out := Vector{Type: t, Elems: make([]any, len(fields))}
	for i, e := range fields {
		s, err := eval(e, env)
		if err != nil {
			return Vector{}, fmt.Errorf("%s.%s: %w", t.Name(), fieldNames[i], err)
		}
		out.Elems[i] = s
	}
	return out, nil
}

func eval(e Expr, env map[string]Vector) (any, error) {
	switch e := e.(type) {
	case *FieldRef:
		v, ok := env[e.Param]
		if !ok {
			return nil, fmt.Errorf("unknown parameter %q", e.Param)
		}
		idx := FieldIndex(e.Field)
		if idx < 0 || idx >= len(v.Elems) {
			return nil, fmt.Errorf("%s has no field %q", v.Type.Name(), e.Field)
		}
		return v.Elems[idx], nil
	case *Unary:
		x, err := eval(e.X, env)
		if err != nil {
			return nil, err
		}
		return evalUnary(e.Op, x)
	case *Binary:
		x, err := eval(e.X, env)
		if err != nil {
			return nil, err
		}
		y, err := eval(e.Y, env)
		if err != nil {
			return nil, err
		}
		return evalBinary(e.Op, x, y)
	case *Call:
		args := make([]any, len(e.Args))
		for i, a := range e.Args {
			s, err := eval(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = s
		}
		return evalCall(e.Func, args)
	case *Cast:
		x, err := eval(e.X, env)
		if err != nil {
			return nil, err
		}
		return castScalar(x, e.To)
	default:
		return nil, fmt.Errorf("unsupported expression %T", e)
	}
}

func evalUnary(op string, x any) (any, error) {
	switch x := x.(type) {
	case uint32:
		switch op {
		case "-":
			return -x, nil
		case "~":
			return ^x, nil
		}
	case int32:
		switch op {
		case "-":
			return -x, nil
		case "~":
			return ^x, nil
		}
	case float32:
		if op == "-" {
			return -x, nil
		}
	case bool:
		if op == "!" {
			return !x, nil
		}
	}
	return nil, fmt.Errorf("operator %s not defined on %T", op, x)
}

func evalBinary(op string, x, y any) (any, error) {
	switch x := x.(type) {
	case uint32:
		if y, ok := y.(uint32); ok {
			return intBinary(op, x, y)
		}
	case int32:
		if y, ok := y.(int32); ok {
			return intBinary(op, x, y)
		}
	case float32:
		if y, ok := y.(float32); ok {
			switch op {
			case "+":
				return x + y, nil
			case "-":
				return x - y, nil
			case "*":
				return x * y, nil
			case "/":
				return x / y, nil
			}
			return nil, fmt.Errorf("operator %s not defined on float32", op)
		}
	case bool:
		if y, ok := y.(bool); ok {
			switch op {
			case "&&":
				return x && y, nil
			case "||":
				return x || y, nil
			}
			return nil, fmt.Errorf("operator %s not defined on bool", op)
		}
	}
	return nil, fmt.Errorf("operator %s: mismatched operands %T and %T", op, x, y)
}

func intBinary[T uint32 | int32](op string, x, y T) (any, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		if y == 0 {
			return nil, ErrDivideByZero
		}
		return x / y, nil
	case "%":
		if y == 0 {
			return nil, ErrDivideByZero
		}
		return x % y, nil
	case "&":
		return x & y, nil
	case "|":
		return x | y, nil
	case "^":
		return x ^ y, nil
	}
	return nil, fmt.Errorf("operator %s not defined on %T", op, x)
}

// unaryMath maps intrinsic names to their float semantics.
var unaryMath = map[string]func(float64) float64{
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"sqrt":  math.Sqrt,
	"trunc": math.Trunc,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"asinh": math.Asinh,
	"acosh": math.Acosh,
	"atanh": math.Atanh,
}

// IsUnaryMath reports whether name is a one-argument float intrinsic.
func IsUnaryMath(name string) bool {
	_, ok := unaryMath[name]
	return ok
}

func evalCall(name string, args []any) (any, error) {
	switch name {
	case "min", "max":
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: got %d arguments, want 2", name, len(args))
		}
		return minMax(name == "min", args[0], args[1])
	case "atan2":
		if len(args) != 2 {
			return nil, fmt.Errorf("atan2: got %d arguments, want 2", len(args))
		}
		y, ok1 := args[0].(float32)
		x, ok2 := args[1].(float32)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("atan2: operands must be float32, got %T and %T", args[0], args[1])
		}
		return float32(math.Atan2(float64(y), float64(x))), nil
	}
	fn, ok := unaryMath[name]
	if !ok {
		return nil, fmt.Errorf("unknown intrinsic %q", name)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: got %d arguments, want 1", name, len(args))
	}
	x, ok := args[0].(float32)
	if !ok {
		return nil, fmt.Errorf("%s: operand must be float32, got %T", name, args[0])
	}
	return float32(fn(float64(x))), nil
}

func minMax(isMin bool, x, y any) (any, error) {
	switch x := x.(type) {
	case uint32:
		if y, ok := y.(uint32); ok {
			return pick(isMin, x, y), nil
		}
	case int32:
		if y, ok := y.(int32); ok {
			return pick(isMin, x, y), nil
		}
	case float32:
		if y, ok := y.(float32); ok {
			return pick(isMin, x, y), nil
		}
	}
	return nil, fmt.Errorf("min/max: unsupported operands %T and %T", x, y)
}

// pick follows std::min / std::max: the first argument wins ties and
// unordered comparisons.
func pick[T uint32 | int32 | float32](isMin bool, x, y T) T {
	if isMin {
		if y < x {
			return y
		}
		return x
	}
	if x < y {
		return y
	}
	return x
}

// castScalar converts s to kind k with C cast semantics.
func castScalar(s any, k Kind) (any, error) {
	switch s := s.(type) {
	case bool:
		var n uint32
		if s {
			n = 1
		}
		switch k {
		case KindUint:
			return n, nil
		case KindInt:
			return int32(n), nil
		case KindFloat:
			return float32(n), nil
		case KindBool:
			return s, nil
		}
	case uint32:
		return castNumber(s, k)
	case int32:
		return castNumber(s, k)
	case float32:
		return castNumber(s, k)
	}
	return nil, fmt.Errorf("cannot cast %T to %s", s, k)
}

func castNumber[T uint32 | int32 | float32](s T, k Kind) (any, error) {
	switch k {
	case KindUint:
		if f, ok := any(s).(float32); ok && f < 0 {
			// Go leaves negative float to unsigned conversion
			// implementation-defined; go through int64 for a stable result.
			return uint32(int64(f)), nil
		}
		return uint32(s), nil
	case KindInt:
		return int32(s), nil
	case KindFloat:
		return float32(s), nil
	case KindBool:
		return s != 0, nil
	}
	return nil, fmt.Errorf("cannot cast %T to %s", s, k)
}
