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
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

// cppIncludes are the standard headers the generated code depends on:
// fixed-width integers, math and stream output.
var cppIncludes = []string{"cstdint", "cmath", "ostream"}

// cppIntrinsics maps neutral intrinsic names to their C++ spelling.
var cppIntrinsics = map[string]string{
	"min":   "std::min",
	"max":   "std::max",
	"atan2": "std::atan2f",
	"abs":   "std::fabs",
	"floor": "std::floorf",
	"ceil":  "std::ceilf",
	"round": "std::roundf",
	"sqrt":  "std::sqrt",
	"trunc": "std::truncf",
	"sin":   "std::sinf",
	"cos":   "std::cosf",
	"tan":   "std::tanf",
	"sinh":  "std::sinhf",
	"cosh":  "std::coshf",
	"tanh":  "std::tanhf",
	"asin":  "std::asinf",
	"acos":  "std::acosf",
	"atan":  "std::atanf",
	"asinh": "std::asinhf",
	"acosh": "std::acoshf",
	"atanh": "std::atanhf",
}

// CppEmitter renders a module as a single C++ header.
type CppEmitter struct {
	Profiles []ScalarProfile

	// Namespaces wraps the declarations, outermost first.
	Namespaces []string
}

// Emit renders m. The output is a complete header.
func (e *CppEmitter) Emit(m *ir.Module) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("// Vector math utilities.\n")
	buf.WriteString("#pragma once\n")
	for _, inc := range cppIncludes {
		fmt.Fprintf(&buf, "#include <%s>\n", inc)
	}
	buf.WriteString("\n")
	for _, ns := range e.Namespaces {
		fmt.Fprintf(&buf, "namespace %s {\n", ns)
	}

	for _, decl := range m.Types {
		e.emitStruct(&buf, decl.Struct)
		for _, fn := range decl.Funcs {
			if err := e.emitFunc(&buf, fn); err != nil {
				return nil, fmt.Errorf("%s: %w", e.typeName(decl.Struct.Type), err)
			}
		}
	}

	for _, conv := range m.Conversions {
		if err := e.emitConversion(&buf, conv); err != nil {
			return nil, fmt.Errorf("conversion %s -> %s: %w", e.typeName(conv.From), e.typeName(conv.To), err)
		}
	}

	for i := len(e.Namespaces) - 1; i >= 0; i-- {
		fmt.Fprintf(&buf, "} // namespace %s\n", e.Namespaces[i])
	}
	return buf.Bytes(), nil
}

func (e *CppEmitter) typeName(t ir.VectorType) string {
	return profileFor(e.Profiles, t.Kind).Token + strconv.Itoa(int(t.Arity))
}

func (e *CppEmitter) scalar(k ir.Kind) string {
	return profileFor(e.Profiles, k).CType
}

func (e *CppEmitter) emitStruct(buf *bytes.Buffer, st *ir.Struct) {
	name := e.typeName(st.Type)
	scalar := e.scalar(st.Type.Kind)

	fmt.Fprintf(buf, "struct %s {\n", name)
	fmt.Fprintf(buf, "  %s %s;\n", scalar, strings.Join(st.Fields, ", "))

	for _, ctor := range st.Ctors {
		switch ctor {
		case ir.CtorDefault:
			fmt.Fprintf(buf, "  %s() = default;\n", name)
		case ir.CtorCopy:
			fmt.Fprintf(buf, "  %s(const %s&) = default;\n", name, name)
		case ir.CtorMove:
			fmt.Fprintf(buf, "  %s(%s&&) = default;\n", name, name)
		case ir.CtorCopyAssign:
			fmt.Fprintf(buf, "  %s& operator=(const %s&) = default;\n", name, name)
		case ir.CtorMoveAssign:
			fmt.Fprintf(buf, "  %s& operator=(%s&&) = default;\n", name, name)
		case ir.CtorValue:
			params := make([]string, len(st.Fields))
			inits := make([]string, len(st.Fields))
			for i, f := range st.Fields {
				params[i] = scalar + " " + f
				inits[i] = f + "(" + f + ")"
			}
			fmt.Fprintf(buf, "  inline %s(%s) : %s {}\n", name, strings.Join(params, ", "), strings.Join(inits, ", "))
		}
	}

	for _, src := range st.Conversions {
		fmt.Fprintf(buf, "  inline %s(const struct %s& a);\n", name, e.typeName(src))
	}

	if st.Format {
		parts := make([]string, len(st.Fields))
		for i, f := range st.Fields {
			parts[i] = "a." + f
		}
		fmt.Fprintf(buf, "  friend std::ostream& operator<<(std::ostream& out, const %s& a) { return out << \"(\" << %s << \")\"; }\n",
			name, strings.Join(parts, ` << ", " << `))
	}
	buf.WriteString("};\n")
}

func (e *CppEmitter) emitFunc(buf *bytes.Buffer, fn *ir.Func) error {
	name := e.typeName(fn.Type)

	fnName := fn.Name
	if fn.Shape.IsOperator() {
		fnName = "operator" + fn.Name
	}

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = "const " + name + "& " + p
	}

	fields := make([]string, len(fn.Fields))
	for i, f := range fn.Fields {
		s, err := e.expr(f)
		if err != nil {
			return fmt.Errorf("%s: %w", fnName, err)
		}
		fields[i] = s
	}

	fmt.Fprintf(buf, "inline %s %s(%s) { return %s { %s }; }\n",
		name, fnName, strings.Join(params, ", "), name, strings.Join(fields, ", "))
	return nil
}

func (e *CppEmitter) emitConversion(buf *bytes.Buffer, conv *ir.Conversion) error {
	to := e.typeName(conv.To)
	fields := conv.To.Arity.Fields()

	inits := make([]string, len(conv.Fields))
	for i, f := range conv.Fields {
		s, err := e.expr(f)
		if err != nil {
			return err
		}
		inits[i] = fields[i] + "(" + s + ")"
	}

	fmt.Fprintf(buf, "  inline %s::%s(const %s& %s) : %s {}\n",
		to, to, e.typeName(conv.From), conv.Param, strings.Join(inits, ", "))
	return nil
}

func (e *CppEmitter) expr(x ir.Expr) (string, error) {
	switch x := x.(type) {
	case *ir.FieldRef:
		return x.Param + "." + x.Field, nil
	case *ir.Unary:
		s, err := e.operand(x.X)
		if err != nil {
			return "", err
		}
		return x.Op + s, nil
	case *ir.Binary:
		l, err := e.operand(x.X)
		if err != nil {
			return "", err
		}
		r, err := e.operand(x.Y)
		if err != nil {
			return "", err
		}
		return l + " " + x.Op + " " + r, nil
	case *ir.Call:
		spelled, ok := cppIntrinsics[x.Func]
		if !ok {
			return "", fmt.Errorf("no C++ spelling for intrinsic %q", x.Func)
		}
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			s, err := e.expr(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return spelled + "(" + strings.Join(args, ", ") + ")", nil
	case *ir.Cast:
		s, err := e.operand(x.X)
		if err != nil {
			return "", err
		}
		return "(" + e.scalar(x.To) + ")" + s, nil
	default:
		return "", fmt.Errorf("unsupported expression %T", x)
	}
}

// operand renders x for use inside a larger expression.
func (e *CppEmitter) operand(x ir.Expr) (string, error) {
	s, err := e.expr(x)
	if err != nil {
		return "", err
	}
	if _, ok := x.(*ir.Binary); ok {
		return "(" + s + ")", nil
	}
	return s, nil
}
