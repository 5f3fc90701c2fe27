package typegen

import (
	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
)

// Result holds the output of one translation run.
type Result struct {
	// Language is the generator's target language
	Language string `json:"language" yaml:"language"`

	// Text is the prelude followed by every rendered declaration, in input order
	Text string `json:"-" yaml:"-"`

	// Declarations lists the items that rendered, in input order
	Declarations []Declaration `json:"declarations" yaml:"declarations"`

	// Diagnostics lists the items that were skipped, in input order
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Declaration is one rendered item.
type Declaration struct {
	// Index is the item's position in the input sequence
	Index int       `json:"index" yaml:"index"`
	Name  string    `json:"name" yaml:"name"`
	Kind  decl.Kind `json:"kind" yaml:"kind"`
	Text  string    `json:"-" yaml:"-"`
}

// DiagnosticKind classifies why an item was skipped.
type DiagnosticKind string

const (
	DiagnosticUnsupported DiagnosticKind = "unsupported_construct"
	DiagnosticStructural  DiagnosticKind = "structural_violation"
)

// Diagnostic records one skipped item. Skips never fail the run.
type Diagnostic struct {
	Index   int            `json:"index" yaml:"index"`
	Item    string         `json:"item,omitempty" yaml:"item,omitempty"`
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Message string         `json:"message" yaml:"message"`
}

// Skipped returns the number of items that produced no output.
func (r *Result) Skipped() int {
	return len(r.Diagnostics)
}

// Names returns the names of the rendered declarations, in output order.
func (r *Result) Names() []string {
	names := make([]string, len(r.Declarations))
	for i, d := range r.Declarations {
		names[i] = d.Name
	}
	return names
}

// newDiagnostic classifies err for the item at index.
func newDiagnostic(index int, it decl.Item, err error) Diagnostic {
	kind := DiagnosticUnsupported
	if errors.IsStructural(err) {
		kind = DiagnosticStructural
	}
	return Diagnostic{
		Index:   index,
		Item:    decl.NameOf(it),
		Kind:    kind,
		Message: err.Error(),
	}
}
