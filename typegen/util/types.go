package util

import (
	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
)

// TypeConverterConfig configures how source type expressions are converted to target language types.
type TypeConverterConfig struct {
	// TypeMapping maps source primitive identifiers to target language types
	TypeMapping map[string]string

	// GenericFormat formats a generic application given the (mapped) identifier
	// and the already-converted arguments, e.g. TypeScript: "HashMap<string,Person,>"
	GenericFormat func(ident string, args []string) string

	// TupleFormat formats a fixed-length heterogeneous sequence, e.g. TypeScript: "[number,string]"
	TupleFormat func(elems []string) string

	// Expansions rewrite selected generic applications inline, keyed by the
	// source identifier. An expansion returns false to fall back to GenericFormat.
	// e.g. TypeScript: Option<T> -> "T | undefined"
	Expansions map[string]func(args []string) (string, bool)
}

// ConvertType converts a type expression to a target language type string.
// The config parameter provides language-specific formatting rules.
//
// Identifiers absent from TypeMapping pass through unchanged; they are either
// target builtins already or user types declared elsewhere in the output.
// Any shape outside decl.Named and decl.Tuple is reported as
// errors.ErrUnsupportedConstruct rather than guessed at.
func ConvertType(expr decl.TypeExpr, config *TypeConverterConfig) (string, error) {
	switch t := expr.(type) {
	case *decl.Named:
		if t == nil {
			return "", errors.NewUnsupportedf("nil named type")
		}

		ident := t.Ident
		if mapped, ok := config.TypeMapping[t.Ident]; ok {
			ident = mapped
		}
		if len(t.Args) == 0 {
			return ident, nil
		}

		args, err := convertAll(t.Args, config)
		if err != nil {
			return "", errors.Wrapf(err, "generic argument of %s", t.Ident)
		}

		if expand, ok := config.Expansions[t.Ident]; ok {
			if out, ok := expand(args); ok {
				return out, nil
			}
		}
		return config.GenericFormat(ident, args), nil

	case *decl.Tuple:
		if t == nil {
			return "", errors.NewUnsupportedf("nil tuple type")
		}
		elems, err := convertAll(t.Elems, config)
		if err != nil {
			return "", errors.Wrap(err, "tuple element")
		}
		return config.TupleFormat(elems), nil

	case nil:
		return "", errors.NewUnsupportedf("missing type expression")

	default:
		return "", errors.NewUnsupportedf("type expression %T", expr)
	}
}

func convertAll(exprs []decl.TypeExpr, config *TypeConverterConfig) ([]string, error) {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		s, err := ConvertType(e, config)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
