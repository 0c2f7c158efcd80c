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

// Command vmathgen generates fixed-size vector types (2, 3 and 4 components
// over uint, int, float and bool) with their operators, elementwise math
// intrinsics, cross-kind conversions and stream formatting.
//
// Usage:
//
//	vmathgen                                   # writes include/vmath.hpp
//	vmathgen -o include/vmath.hpp --namespace liong::vmath
//	vmathgen --lang go -o vmath/vmath.gen.go --package vmath
//	vmathgen --check                           # fail if the header is stale
//	vmathgen list                              # print the type matrix
//
// Or via go:generate:
//
//	//go:generate vmathgen -o include/vmath.hpp
//
// Every definition is derived from one table of element kinds and the
// operation families each kind admits, so the generated types stay
// consistent across the kind x arity x operation matrix.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	gen := &Generator{}
	var verbose bool

	root := &cobra.Command{
		Use:           "vmathgen",
		Short:         "Generate fixed-size vector math types",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			gen.Logger = newLogger(cmd.ErrOrStderr(), verbose)
			gen.Stdout = cmd.OutOrStdout()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return gen.Run()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gen.Target, "lang", "cpp", "Output language ("+strings.Join(AvailableTargets(), ", ")+")")
	pf.StringVar(&gen.Namespace, "namespace", "liong::vmath", "C++ namespace path wrapping the declarations")
	pf.StringVar(&gen.Package, "package", "vmath", "Go package name of the generated file")
	pf.BoolVar(&gen.Options.UnaryIntrinsicsTakeOneArg, "unary-one-arg", false,
		"Drop the unused second parameter of one-argument intrinsics (abs, floor, sin, ...)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Verbose output for debugging")

	f := root.Flags()
	f.StringVarP(&gen.OutputFile, "output", "o", "", "Output file (default: include/vmath.hpp for cpp, vmath/vmath.gen.go for go; - for stdout)")
	f.BoolVar(&gen.Check, "check", false, "Exit with an error if the output file is not up to date")

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every vector type with its fields, conversions and functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen.List(cmd.OutOrStdout())
		},
	})
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
