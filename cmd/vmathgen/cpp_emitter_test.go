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
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

var update = flag.Bool("update", false, "rewrite golden files in testdata")

func emitCpp(t *testing.T, opts ExpandOptions, namespaces ...string) string {
	t.Helper()
	m := expandDefault(t, opts)
	e := &CppEmitter{Profiles: DefaultProfiles(), Namespaces: namespaces}
	out, err := e.Emit(m)
	require.NoError(t, err)
	return string(out)
}

func checkGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if *update {
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644))
	}
	want, err := os.ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
}

func TestCppEmitGolden(t *testing.T) {
	checkGolden(t, "vmath.hpp", emitCpp(t, ExpandOptions{}, "liong", "vmath"))
}

func TestCppEmitGoldenUnaryOneArg(t *testing.T) {
	checkGolden(t, "vmath_unary.hpp", emitCpp(t, ExpandOptions{UnaryIntrinsicsTakeOneArg: true}, "liong", "vmath"))
}

func TestCppEmitStructure(t *testing.T) {
	out := emitCpp(t, ExpandOptions{}, "liong", "vmath")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Equal(t, []string{
		"// Vector math utilities.",
		"#pragma once",
		"#include <cstdint>",
		"#include <cmath>",
		"#include <ostream>",
		"",
		"namespace liong {",
		"namespace vmath {",
	}, lines[:8])
	assert.Equal(t, []string{"} // namespace vmath", "} // namespace liong"}, lines[len(lines)-2:])

	assert.Equal(t, 12, strings.Count(out, "\nstruct "))

	// Conversions are only defined after the last struct.
	lastStruct := strings.LastIndex(out, "\nstruct ")
	firstDef := strings.Index(out, "  inline uint2::uint2(")
	assert.Greater(t, firstDef, lastStruct)

	assert.Contains(t, out, "  inline int3::int3(const float3& a) : x((int32_t)a.x), y((int32_t)a.y), z((int32_t)a.z) {}\n")
	assert.Contains(t, out, "  inline float2::float2(const bool2& a) : x((float)a.x), y((float)a.y) {}\n")
	assert.Contains(t, out, "inline bool2 operator!(const bool2& a) { return bool2 { !a.x, !a.y }; }\n")
	assert.Contains(t, out, "inline int4 operator-(const int4& a) { return int4 { -a.x, -a.y, -a.z, -a.w }; }\n")
	assert.Contains(t, out, `  friend std::ostream& operator<<(std::ostream& out, const float4& a) { return out << "(" << a.x << ", " << a.y << ", " << a.z << ", " << a.w << ")"; }`)
	assert.NotContains(t, out, "operator-(const uint2& a)")
	assert.NotContains(t, out, "operator%(const float")
}

func TestCppEmitConversionDefinitionCount(t *testing.T) {
	out := emitCpp(t, ExpandOptions{}, "liong", "vmath")
	defs := 0
	decls := 0
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "  inline ") && strings.Contains(line, "::"):
			defs++
		case strings.HasPrefix(line, "  inline ") && strings.Contains(line, "(const struct "):
			decls++
		}
	}
	assert.Equal(t, 36, defs)
	assert.Equal(t, 36, decls)
}

func TestCppEmitNamespaces(t *testing.T) {
	out := emitCpp(t, ExpandOptions{}, "gfx")
	assert.True(t, strings.HasPrefix(out, "// Vector math utilities.\n#pragma once\n#include <cstdint>\n#include <cmath>\n#include <ostream>\n\nnamespace gfx {\nstruct uint2 {\n"))
	assert.True(t, strings.HasSuffix(out, "} // namespace gfx\n"))

	bare := emitCpp(t, ExpandOptions{})
	assert.NotContains(t, bare, "namespace")
	assert.True(t, strings.HasSuffix(bare, "{}\n"))
}

func TestCppEmitUnknownIntrinsic(t *testing.T) {
	f2 := ir.VectorType{Kind: ir.KindFloat, Arity: 2}
	m := &ir.Module{Types: []ir.TypeDecl{{
		Struct: &ir.Struct{Type: f2, Fields: f2.Arity.Fields()},
		Funcs: []*ir.Func{{
			Name:   "erf",
			Shape:  ir.ShapeUnaryIntrinsic,
			Type:   f2,
			Params: []string{"a"},
			Fields: []ir.Expr{
				&ir.Call{Func: "erf", Args: []ir.Expr{&ir.FieldRef{Param: "a", Field: "x"}}},
				&ir.Call{Func: "erf", Args: []ir.Expr{&ir.FieldRef{Param: "a", Field: "y"}}},
			},
		}},
	}}}
	_, err := (&CppEmitter{Profiles: DefaultProfiles()}).Emit(m)
	assert.ErrorContains(t, err, `no C++ spelling for intrinsic "erf"`)
}

func TestCppEmitNestedOperands(t *testing.T) {
	e := &CppEmitter{Profiles: DefaultProfiles()}
	s, err := e.expr(&ir.Unary{Op: "-", X: &ir.Binary{
		Op: "*",
		X:  &ir.FieldRef{Param: "a", Field: "x"},
		Y:  &ir.Binary{Op: "+", X: &ir.FieldRef{Param: "a", Field: "y"}, Y: &ir.FieldRef{Param: "b", Field: "y"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "-(a.x * (a.y + b.y))", s)

	s, err = e.expr(&ir.Cast{From: ir.KindFloat, To: ir.KindUint, X: &ir.FieldRef{Param: "a", Field: "z"}})
	require.NoError(t, err)
	assert.Equal(t, "(uint32_t)a.z", s)
}
