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

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

// goMathFuncs maps the float intrinsics to their math package function.
// min and max use the builtins.
var goMathFuncs = map[string]string{
	"atan2": "Atan2",
	"abs":   "Abs",
	"floor": "Floor",
	"ceil":  "Ceil",
	"round": "Round",
	"sqrt":  "Sqrt",
	"trunc": "Trunc",
	"sin":   "Sin",
	"cos":   "Cos",
	"tan":   "Tan",
	"sinh":  "Sinh",
	"cosh":  "Cosh",
	"tanh":  "Tanh",
	"asin":  "Asin",
	"acos":  "Acos",
	"atan":  "Atan",
	"asinh": "Asinh",
	"acosh": "Acosh",
	"atanh": "Atanh",
}

// goOperators maps operators whose Go spelling differs.
var goOperators = map[string]string{
	"~": "^",
}

// GoEmitter renders a module as a Go source file. Operators become methods
// on the vector types and conversion constructors become TFromS functions.
type GoEmitter struct {
	Profiles []ScalarProfile
	Package  string
}

// Emit renders and formats m.
func (e *GoEmitter) Emit(m *ir.Module) ([]byte, error) {
	var buf bytes.Buffer
	title := cases.Title(language.English)

	usesMath := false
	for _, decl := range m.Types {
		for _, fn := range decl.Funcs {
			if _, ok := goMathFuncs[fn.Name]; ok && !fn.Shape.IsOperator() {
				usesMath = true
			}
		}
	}

	fmt.Fprintf(&buf, "// Code generated by vmathgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "// Package %s provides fixed-size vector types with elementwise operations.\n", e.Package)
	fmt.Fprintf(&buf, "package %s\n\n", e.Package)
	fmt.Fprintf(&buf, "import (\n\t\"fmt\"\n")
	if usesMath {
		fmt.Fprintf(&buf, "\t\"math\"\n")
	}
	fmt.Fprintf(&buf, ")\n\n")

	for _, decl := range m.Types {
		e.emitStruct(&buf, title, decl.Struct)
		for _, fn := range decl.Funcs {
			if err := e.emitFunc(&buf, title, fn); err != nil {
				return nil, fmt.Errorf("%s: %w", e.typeName(title, decl.Struct.Type), err)
			}
		}
	}

	needsBoolTo := false
	for _, conv := range m.Conversions {
		if err := e.emitConversion(&buf, title, conv); err != nil {
			return nil, fmt.Errorf("conversion %s -> %s: %w", e.typeName(title, conv.From), e.typeName(title, conv.To), err)
		}
		if conv.From.Kind == ir.KindBool && conv.To.Kind != ir.KindBool {
			needsBoolTo = true
		}
	}
	if needsBoolTo {
		e.emitBoolTo(&buf)
	}

	out, err := imports.Process(e.Package+".gen.go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated Go: %w", err)
	}
	return out, nil
}

func (e *GoEmitter) typeName(title cases.Caser, t ir.VectorType) string {
	return title.String(profileFor(e.Profiles, t.Kind).Token) + strconv.Itoa(int(t.Arity))
}

func (e *GoEmitter) scalar(k ir.Kind) string {
	return profileFor(e.Profiles, k).GoType
}

func goField(f string) string { return strings.ToUpper(f) }

func (e *GoEmitter) emitStruct(buf *bytes.Buffer, title cases.Caser, st *ir.Struct) {
	name := e.typeName(title, st.Type)
	scalar := e.scalar(st.Type.Kind)
	fields := lo.Map(st.Fields, func(f string, _ int) string { return goField(f) })

	fmt.Fprintf(buf, "// %s is a %d-component vector of %s.\n", name, st.Type.Arity, scalar)
	fmt.Fprintf(buf, "type %s struct {\n\t%s %s\n}\n\n", name, strings.Join(fields, ", "), scalar)

	for _, ctor := range st.Ctors {
		// Go values copy and move by assignment, so only the value
		// constructor needs a declaration.
		if ctor != ir.CtorValue {
			continue
		}
		inits := make([]string, len(st.Fields))
		for i, f := range st.Fields {
			inits[i] = goField(f) + ": " + f
		}
		fmt.Fprintf(buf, "// New%s returns the vector (%s).\n", name, strings.Join(st.Fields, ", "))
		fmt.Fprintf(buf, "func New%s(%s %s) %s {\n\treturn %s{%s}\n}\n\n",
			name, strings.Join(st.Fields, ", "), scalar, name, name, strings.Join(inits, ", "))
	}

	if st.Format {
		verbs := strings.TrimSuffix(strings.Repeat("%v, ", len(st.Fields)), ", ")
		args := lo.Map(fields, func(f string, _ int) string { return "a." + f })
		fmt.Fprintf(buf, "// String formats a as \"(%s)\".\n", strings.Join(st.Fields, ", "))
		fmt.Fprintf(buf, "func (a %s) String() string {\n\treturn fmt.Sprintf(\"(%s)\", %s)\n}\n\n",
			name, verbs, strings.Join(args, ", "))
	}
}

// goMethod returns the method name of fn.
func goMethod(title cases.Caser, fn *ir.Func) (string, error) {
	op, ok := lookupOp(fn.Family, fn.Name, fn.Shape)
	if !ok {
		return "", fmt.Errorf("unknown operation %q in family %q", fn.Name, fn.Family)
	}
	if op.Method != "" {
		return op.Method, nil
	}
	return title.String(op.Name), nil
}

func (e *GoEmitter) emitFunc(buf *bytes.Buffer, title cases.Caser, fn *ir.Func) error {
	name := e.typeName(title, fn.Type)
	method, err := goMethod(title, fn)
	if err != nil {
		return err
	}
	if len(fn.Params) == 0 {
		return fmt.Errorf("%s has no receiver", method)
	}

	params := lo.Map(fn.Params[1:], func(p string, _ int) string { return p + " " + name })
	fields := make([]string, len(fn.Fields))
	for i, f := range fn.Fields {
		s, err := e.expr(f)
		if err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
		fields[i] = s
	}

	if unused := fn.Unused(); len(unused) > 0 {
		fmt.Fprintf(buf, "// %s applies %s to each component of %s; %s is ignored.\n",
			method, fn.Name, fn.Params[0], strings.Join(unused, ", "))
	} else {
		fmt.Fprintf(buf, "// %s applies %s componentwise.\n", method, fn.Name)
	}
	fmt.Fprintf(buf, "func (%s %s) %s(%s) %s {\n\treturn %s{%s}\n}\n\n",
		fn.Params[0], name, method, strings.Join(params, ", "), name, name, strings.Join(fields, ", "))
	return nil
}

func (e *GoEmitter) emitConversion(buf *bytes.Buffer, title cases.Caser, conv *ir.Conversion) error {
	from := e.typeName(title, conv.From)
	to := e.typeName(title, conv.To)

	fields := make([]string, len(conv.Fields))
	for i, f := range conv.Fields {
		s, err := e.expr(f)
		if err != nil {
			return err
		}
		fields[i] = s
	}

	fmt.Fprintf(buf, "// %sFrom%s converts each component of %s to %s.\n", to, from, conv.Param, e.scalar(conv.To.Kind))
	fmt.Fprintf(buf, "func %sFrom%s(%s %s) %s {\n\treturn %s{%s}\n}\n\n",
		to, from, conv.Param, from, to, to, strings.Join(fields, ", "))
	return nil
}

func (e *GoEmitter) emitBoolTo(buf *bytes.Buffer) {
	var numeric []string
	for _, p := range e.Profiles {
		if p.IsNumeric() {
			numeric = append(numeric, p.GoType)
		}
	}
	fmt.Fprintf(buf, "func boolTo[T %s](v bool) T {\n\tif v {\n\t\treturn 1\n\t}\n\treturn 0\n}\n",
		strings.Join(numeric, " | "))
}

func (e *GoEmitter) expr(x ir.Expr) (string, error) {
	switch x := x.(type) {
	case *ir.FieldRef:
		return x.Param + "." + goField(x.Field), nil
	case *ir.Unary:
		s, err := e.operand(x.X)
		if err != nil {
			return "", err
		}
		op := x.Op
		if spelled, ok := goOperators[op]; ok {
			op = spelled
		}
		return op + s, nil
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
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			s, err := e.expr(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		if x.Func == "min" || x.Func == "max" {
			return x.Func + "(" + strings.Join(args, ", ") + ")", nil
		}
		fn, ok := goMathFuncs[x.Func]
		if !ok {
			return "", fmt.Errorf("no Go spelling for intrinsic %q", x.Func)
		}
		wide := lo.Map(args, func(a string, _ int) string { return "float64(" + a + ")" })
		return "float32(math." + fn + "(" + strings.Join(wide, ", ") + "))", nil
	case *ir.Cast:
		s, err := e.expr(x.X)
		if err != nil {
			return "", err
		}
		switch {
		case x.From == x.To:
			return s, nil
		case x.To == ir.KindBool:
			return s + " != 0", nil
		case x.From == ir.KindBool:
			return "boolTo[" + e.scalar(x.To) + "](" + s + ")", nil
		default:
			return e.scalar(x.To) + "(" + s + ")", nil
		}
	default:
		return "", fmt.Errorf("unsupported expression %T", x)
	}
}

func (e *GoEmitter) operand(x ir.Expr) (string, error) {
	s, err := e.expr(x)
	if err != nil {
		return "", err
	}
	if _, ok := x.(*ir.Binary); ok {
		return "(" + s + ")", nil
	}
	return s, nil
}
