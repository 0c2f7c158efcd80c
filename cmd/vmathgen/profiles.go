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

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

// ScalarProfile describes one element kind: how it is spelled in each output
// language and which properties gate the operation families.
type ScalarProfile struct {
	Kind   ir.Kind
	Token  string // "float": type name prefix (float2, float3, ...)
	CType  string // "float"
	GoType string // "float32"

	Integer  bool // integer-like: arithmetic, bitwise, min/max
	Signed   bool // admits unary negation
	Floating bool // arithmetic, transcendental math, min/max
	Boolean  bool // logical operators only
}

// IsNumeric reports whether the kind supports arithmetic.
func (p ScalarProfile) IsNumeric() bool { return p.Integer || p.Floating }

// VectorType returns the vector type of this kind with the given arity.
func (p ScalarProfile) VectorType(arity ir.Arity) ir.VectorType {
	return ir.VectorType{Kind: p.Kind, Arity: arity}
}

// defaultProfiles is the type-algebra table. Declaration order is emission
// order.
var defaultProfiles = []ScalarProfile{
	{Kind: ir.KindUint, Token: "uint", CType: "uint32_t", GoType: "uint32", Integer: true},
	{Kind: ir.KindInt, Token: "int", CType: "int32_t", GoType: "int32", Integer: true, Signed: true},
	{Kind: ir.KindFloat, Token: "float", CType: "float", GoType: "float32", Signed: true, Floating: true},
	{Kind: ir.KindBool, Token: "bool", CType: "bool", GoType: "bool", Boolean: true},
}

// DefaultProfiles returns a copy of the built-in table.
func DefaultProfiles() []ScalarProfile {
	out := make([]ScalarProfile, len(defaultProfiles))
	copy(out, defaultProfiles)
	return out
}

// validateProfiles checks that the table covers every kind exactly once and
// that each entry has all of its spellings.
func validateProfiles(profiles []ScalarProfile) error {
	seen := make(map[ir.Kind]bool)
	tokens := make(map[string]bool)
	for i, p := range profiles {
		if !p.Kind.Valid() {
			return fmt.Errorf("profile %d: invalid kind %v", i, p.Kind)
		}
		if seen[p.Kind] {
			return fmt.Errorf("profile %d: duplicate kind %v", i, p.Kind)
		}
		seen[p.Kind] = true
		if p.Token == "" {
			return fmt.Errorf("profile %v: missing type token", p.Kind)
		}
		if tokens[p.Token] {
			return fmt.Errorf("profile %v: duplicate type token %q", p.Kind, p.Token)
		}
		tokens[p.Token] = true
		if p.CType == "" {
			return fmt.Errorf("profile %v: missing C++ scalar type", p.Kind)
		}
		if p.GoType == "" {
			return fmt.Errorf("profile %v: missing Go scalar type", p.Kind)
		}
		if p.Boolean && p.IsNumeric() {
			return fmt.Errorf("profile %v: boolean kind cannot be numeric", p.Kind)
		}
	}
	for _, k := range []ir.Kind{ir.KindUint, ir.KindInt, ir.KindFloat, ir.KindBool} {
		if !seen[k] {
			return fmt.Errorf("missing profile for kind %v", k)
		}
	}
	return nil
}

// profileFor returns the profile of kind k. Callers validate the table first.
func profileFor(profiles []ScalarProfile, k ir.Kind) ScalarProfile {
	for _, p := range profiles {
		if p.Kind == k {
			return p
		}
	}
	panic(fmt.Sprintf("vmathgen: no profile for kind %v", k))
}
