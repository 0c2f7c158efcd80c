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
	"errors"
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajroetker/vmathgen/cmd/vmathgen/ir"
)

// ErrStale is returned in check mode when the artifact on disk differs from
// what the generator would write.
var ErrStale = errors.New("generated file is out of date")

// Generator orchestrates the code generation process.
type Generator struct {
	Target     string        // "cpp" or "go"
	OutputFile string        // Destination; empty uses the target default, "-" writes to Stdout
	Namespace  string        // C++ namespace path, e.g. "liong::vmath"
	Package    string        // Go package name
	Options    ExpandOptions // Deviations from the legacy output
	Check      bool          // Compare with the existing artifact instead of writing

	Profiles []ScalarProfile // Type table; nil uses DefaultProfiles
	Stdout   io.Writer       // Used when OutputFile is "-"
	Logger   *slog.Logger    // nil discards log output
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g.Logger
}

func (g *Generator) profiles() []ScalarProfile {
	if g.Profiles == nil {
		return DefaultProfiles()
	}
	return g.Profiles
}

// Expand validates the table and builds the module.
func (g *Generator) Expand() (*ir.Module, error) {
	log := g.logger()
	profiles := g.profiles()

	m, err := ExpandModule(profiles, g.Options)
	if err != nil {
		return nil, err
	}
	log.Debug("validated type table", "kinds", len(profiles),
		"unary_one_arg", g.Options.UnaryIntrinsicsTakeOneArg)
	for _, decl := range m.Types {
		log.Debug("expanded type",
			"type", decl.Struct.Type.Name(),
			"fields", len(decl.Struct.Fields),
			"conversions", len(decl.Struct.Conversions),
			"funcs", len(decl.Funcs))
	}
	log.Debug("expanded conversions", "count", len(m.Conversions))
	return m, nil
}

// Generate returns the complete artifact without touching the filesystem.
func (g *Generator) Generate() ([]byte, error) {
	target, err := GetTarget(g.targetName())
	if err != nil {
		return nil, err
	}
	namespaces, err := parseNamespace(g.Namespace)
	if err != nil {
		return nil, err
	}
	pkg := g.Package
	if pkg == "" {
		pkg = "vmath"
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("invalid Go package name %q", pkg)
	}

	m, err := g.Expand()
	if err != nil {
		return nil, err
	}

	emitter := target.NewEmitter(EmitConfig{
		Profiles:   g.profiles(),
		Namespaces: namespaces,
		Package:    pkg,
	})
	out, err := emitter.Emit(m)
	if err != nil {
		return nil, fmt.Errorf("emit %s: %w", target.Name, err)
	}
	return out, nil
}

// Run executes the code generation pipeline. The artifact is assembled in
// memory and written in one step, so a failed run leaves no partial file.
func (g *Generator) Run() error {
	log := g.logger()

	out, err := g.Generate()
	if err != nil {
		return err
	}

	path := g.outputPath()
	if path == "-" {
		w := g.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if g.Check {
		existing, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("check %s: %w", path, err)
		}
		if !bytes.Equal(existing, out) {
			return fmt.Errorf("%s: %w", path, ErrStale)
		}
		log.Info("generated file is up to date", "path", path)
		return nil
	}

	if err := writeFileAtomic(path, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Info("generated", "path", path, "target", g.targetName(), "bytes", len(out))
	return nil
}

func (g *Generator) targetName() string {
	if g.Target == "" {
		return "cpp"
	}
	return g.Target
}

func (g *Generator) outputPath() string {
	if g.OutputFile != "" {
		return g.OutputFile
	}
	if t, err := GetTarget(g.targetName()); err == nil {
		return t.DefaultOutput
	}
	return ""
}

// parseNamespace splits "a::b" into its components. An empty string means no
// namespace wrapper.
func parseNamespace(ns string) ([]string, error) {
	if ns == "" {
		return nil, nil
	}
	parts := strings.Split(ns, "::")
	for _, p := range parts {
		if !token.IsIdentifier(p) {
			return nil, fmt.Errorf("invalid namespace %q: bad component %q", ns, p)
		}
	}
	return parts, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// List writes a summary of every vector type in emission order.
func (g *Generator) List(w io.Writer) error {
	m, err := g.Expand()
	if err != nil {
		return err
	}
	profiles := g.profiles()
	for _, decl := range m.Types {
		names := make([]string, len(decl.Funcs))
		for i, fn := range decl.Funcs {
			names[i] = fn.Name
			if fn.Shape == ir.ShapeUnaryOp {
				names[i] += "a"
			}
		}
		st := decl.Struct
		name := fmt.Sprintf("%s%d", profileFor(profiles, st.Type.Kind).Token, st.Type.Arity)
		if _, err := fmt.Fprintf(w, "%-7s fields=%-8s conversions=%d funcs=%s\n",
			name, strings.Join(st.Fields, ","), len(st.Conversions), strings.Join(names, " ")); err != nil {
			return err
		}
	}
	return nil
}
