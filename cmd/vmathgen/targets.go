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
	"strings"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

// Emitter serializes an expanded module into one artifact.
type Emitter interface {
	Emit(m *ir.Module) ([]byte, error)
}

// EmitConfig carries the settings an emitter may need.
type EmitConfig struct {
	Profiles   []ScalarProfile
	Namespaces []string // C++ namespaces, outermost first
	Package    string   // Go package name
}

// Target represents an output language.
type Target struct {
	Name          string // "cpp", "go"
	DefaultOutput string // used when no output path is given
	NewEmitter    func(cfg EmitConfig) Emitter
}

// CppTarget returns the C++ header target.
func CppTarget() Target {
	return Target{
		Name:          "cpp",
		DefaultOutput: "include/vmath.hpp",
		NewEmitter: func(cfg EmitConfig) Emitter {
			return &CppEmitter{Profiles: cfg.Profiles, Namespaces: cfg.Namespaces}
		},
	}
}

// GoTarget returns the Go package target.
func GoTarget() Target {
	return Target{
		Name:          "go",
		DefaultOutput: "vmath/vmath.gen.go",
		NewEmitter: func(cfg EmitConfig) Emitter {
			return &GoEmitter{Profiles: cfg.Profiles, Package: cfg.Package}
		},
	}
}

// AvailableTargets returns the names accepted by GetTarget.
func AvailableTargets() []string {
	return []string{"cpp", "go"}
}

// GetTarget returns the target configuration for the given name.
func GetTarget(name string) (Target, error) {
	switch name {
	case "cpp":
		return CppTarget(), nil
	case "go":
		return GoTarget(), nil
	default:
		return Target{}, fmt.Errorf("unknown target: %s (valid: %s)", name, strings.Join(AvailableTargets(), ", "))
	}
}
