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
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles()
	require.NoError(t, validateProfiles(profiles))

	tokens := lo.Map(profiles, func(p ScalarProfile, _ int) string { return p.Token })
	assert.Equal(t, []string{"uint", "int", "float", "bool"}, tokens)

	ctypes := lo.Map(profiles, func(p ScalarProfile, _ int) string { return p.CType })
	assert.Equal(t, []string{"uint32_t", "int32_t", "float", "bool"}, ctypes)

	gotypes := lo.Map(profiles, func(p ScalarProfile, _ int) string { return p.GoType })
	assert.Equal(t, []string{"uint32", "int32", "float32", "bool"}, gotypes)
}

func TestDefaultProfilesIsACopy(t *testing.T) {
	p := DefaultProfiles()
	p[0].Token = "u"
	assert.Equal(t, "uint", DefaultProfiles()[0].Token)
}

func TestProfilePredicates(t *testing.T) {
	tests := []struct {
		kind     ir.Kind
		numeric  bool
		signed   bool
		floating bool
		boolean  bool
	}{
		{ir.KindUint, true, false, false, false},
		{ir.KindInt, true, true, false, false},
		{ir.KindFloat, true, true, true, false},
		{ir.KindBool, false, false, false, true},
	}
	profiles := DefaultProfiles()
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := profileFor(profiles, tt.kind)
			assert.Equal(t, tt.numeric, p.IsNumeric())
			assert.Equal(t, tt.signed, p.Signed)
			assert.Equal(t, tt.floating, p.Floating)
			assert.Equal(t, tt.boolean, p.Boolean)
		})
	}
}

func TestValidateProfiles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p []ScalarProfile) []ScalarProfile
		want   string
	}{
		{"invalid kind", func(p []ScalarProfile) []ScalarProfile {
			p[0].Kind = ir.Kind(7)
			return p
		}, "invalid kind"},
		{"duplicate kind", func(p []ScalarProfile) []ScalarProfile {
			p[1].Kind = ir.KindUint
			return p
		}, "duplicate kind"},
		{"missing token", func(p []ScalarProfile) []ScalarProfile {
			p[2].Token = ""
			return p
		}, "missing type token"},
		{"duplicate token", func(p []ScalarProfile) []ScalarProfile {
			p[1].Token = "uint"
			return p
		}, "duplicate type token"},
		{"missing C++ type", func(p []ScalarProfile) []ScalarProfile {
			p[0].CType = ""
			return p
		}, "missing C++ scalar type"},
		{"missing Go type", func(p []ScalarProfile) []ScalarProfile {
			p[3].GoType = ""
			return p
		}, "missing Go scalar type"},
		{"numeric bool", func(p []ScalarProfile) []ScalarProfile {
			p[3].Integer = true
			return p
		}, "boolean kind cannot be numeric"},
		{"missing kind", func(p []ScalarProfile) []ScalarProfile {
			return p[:3]
		}, "missing profile for kind bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProfiles(tt.mutate(DefaultProfiles()))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestProfileForPanicsOnMissingKind(t *testing.T) {
	assert.Panics(t, func() { profileFor(DefaultProfiles()[:2], ir.KindFloat) })
}

func TestApplicableFamilies(t *testing.T) {
	tests := []struct {
		kind ir.Kind
		want []string
	}{
		{ir.KindUint, []string{"arithmetic", "minmax", "bitwise"}},
		{ir.KindInt, []string{"arithmetic", "negate", "minmax", "bitwise"}},
		{ir.KindFloat, []string{"arithmetic", "negate", "minmax", "math"}},
		{ir.KindBool, []string{"logical"}},
	}
	profiles := DefaultProfiles()
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := lo.Map(applicableFamilies(profileFor(profiles, tt.kind)), func(f OpFamily, _ int) string {
				return f.Name
			})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMathFamilyOrder(t *testing.T) {
	ops := mathOps()
	require.Len(t, ops, 19)
	assert.Equal(t, OpSpec{Name: "atan2", Shape: ir.ShapeBinaryIntrinsic}, ops[0])
	for _, op := range ops[1:] {
		assert.Equal(t, ir.ShapeUnaryIntrinsic, op.Shape, op.Name)
		assert.True(t, ir.IsUnaryMath(op.Name), op.Name)
	}
	assert.Equal(t, "abs", ops[1].Name)
	assert.Equal(t, "atanh", ops[18].Name)
}

func TestLookupOp(t *testing.T) {
	op, ok := lookupOp("negate", "-", ir.ShapeUnaryOp)
	require.True(t, ok)
	assert.Equal(t, "Neg", op.Method)

	op, ok = lookupOp("arithmetic", "-", ir.ShapeBinaryOp)
	require.True(t, ok)
	assert.Equal(t, "Sub", op.Method)

	_, ok = lookupOp("arithmetic", "-", ir.ShapeUnaryOp)
	assert.False(t, ok)
	_, ok = lookupOp("nope", "+", ir.ShapeBinaryOp)
	assert.False(t, ok)
}
