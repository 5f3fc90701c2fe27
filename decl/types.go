// Package decl defines the closed set of declaration and type-expression
// shapes that the translator understands.
//
// Values are built once by a front end (see rustsrc) and consumed once by a
// generator (see typegen). Nothing in this package is mutated after
// construction, so values may be shared freely between goroutines.
//
// Both TypeExpr and Item are sealed: only types in this package implement
// them. Generators can therefore switch over them exhaustively without a
// dependency on any parser's node types.
package decl

import (
	"strconv"
	"strings"
)

// TypeExpr is a type expression. The implementations are *Named and *Tuple.
type TypeExpr interface {
	typeExpr()
	String() string
}

// Named is an identifier with optional generic arguments, e.g. i32 or
// HashMap<String, Person>. Args is empty for non-generic identifiers.
type Named struct {
	Ident string
	Args  []TypeExpr
}

func (*Named) typeExpr() {}

// String renders the expression in source-like syntax for diagnostics.
func (n *Named) String() string {
	if n == nil {
		return "<nil>"
	}
	if len(n.Args) == 0 {
		return n.Ident
	}
	return n.Ident + "<" + joinExprs(n.Args) + ">"
}

// Tuple is a fixed-length heterogeneous sequence, e.g. (i32, String).
// The empty tuple is Rust's unit type.
type Tuple struct {
	Elems []TypeExpr
}

func (*Tuple) typeExpr() {}

// String renders the expression in source-like syntax for diagnostics.
func (t *Tuple) String() string {
	if t == nil {
		return "<nil>"
	}
	return "(" + joinExprs(t.Elems) + ")"
}

// NewNamed is a convenience constructor for a Named type expression.
func NewNamed(ident string, args ...TypeExpr) *Named {
	return &Named{Ident: ident, Args: args}
}

// NewTuple is a convenience constructor for a Tuple type expression.
func NewTuple(elems ...TypeExpr) *Tuple {
	return &Tuple{Elems: elems}
}

func joinExprs(exprs []TypeExpr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		if e == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// FieldKey identifies a field: a name for record fields, or a position for
// tuple-struct fields.
type FieldKey struct {
	Name  string
	Index int
	// Positional is true when the key is Index rather than Name
	Positional bool
}

// NameKey returns a named field key.
func NameKey(name string) FieldKey {
	return FieldKey{Name: name}
}

// IndexKey returns a positional field key.
func IndexKey(index int) FieldKey {
	return FieldKey{Index: index, Positional: true}
}

// String renders the key as it appears in serialized data: the name, or
// the decimal index for positional fields.
func (k FieldKey) String() string {
	if k.Positional {
		return strconv.Itoa(k.Index)
	}
	return k.Name
}

// Field is a single member of a record or record-shaped variant.
type Field struct {
	Key  FieldKey
	Type TypeExpr
}
