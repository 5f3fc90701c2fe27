// Package typegen translates declarations into type definitions for a target language.
//
// # Architecture
//
// The package uses a two-layer design:
//  1. A language-agnostic driver (translate.go) walks the declarations in order,
//     validates them and collects diagnostics into a Result
//  2. Language-specific generators (typescript/) render each declaration
//
// This separation allows adding new target languages without touching the driver.
//
// # Design Decisions
//
//   - The prelude is emitted exactly once per run, before any declaration, even
//     when the input is empty
//   - Output order is input order, also when rendering in parallel
//   - A declaration renders completely or not at all. Unsupported constructs and
//     structural violations skip the declaration and are reported as diagnostics;
//     they never abort the run
//   - Generators are pure: identical declarations always render identical text
//
// # Implementing a New Generator
//
//  1. Create package: typegen/<language>/generator.go
//  2. Implement the Generator interface (see below), typically on top of
//     util.ConvertType with a language-specific util.TypeConverterConfig
//  3. Add the language to the generate command in cmd/rs2ts/commands
//  4. Add golden fixtures under typegen/testdata
package typegen

import "github.com/teranos/rs2ts/decl"

// Generator defines the interface for language-specific type generators.
type Generator interface {
	// Language returns the language name (e.g., "typescript")
	Language() string

	// FileExtension returns the file extension for this language (e.g., "ts")
	FileExtension() string

	// Prelude returns the fixed declarations emitted before any translated item
	Prelude() string

	// GenerateAlias renders a type alias declaration
	GenerateAlias(a *decl.Alias) (string, error)

	// GenerateRecord renders a record (struct) declaration
	GenerateRecord(r *decl.Record) (string, error)

	// GenerateUnion renders an adjacently tagged union (enum) declaration
	GenerateUnion(u *decl.Union) (string, error)
}
