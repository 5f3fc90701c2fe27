package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
)

// A deliberately different target syntax, to show the converter has no
// TypeScript knowledge of its own.
var testConfig = &TypeConverterConfig{
	TypeMapping:   map[string]string{"i32": "Int", "String": "Text"},
	GenericFormat: func(ident string, args []string) string { return ident + "[" + strings.Join(args, " ") + "]" },
	TupleFormat:   func(elems []string) string { return "(" + strings.Join(elems, " * ") + ")" },
	Expansions: map[string]func([]string) (string, bool){
		"Box": func(args []string) (string, bool) {
			if len(args) != 1 {
				return "", false
			}
			return args[0], true
		},
	},
}

func TestConvertType(t *testing.T) {
	tests := []struct {
		name string
		expr decl.TypeExpr
		want string
	}{
		{"mapped primitive", decl.NewNamed("i32"), "Int"},
		{"pass-through identifier", decl.NewNamed("Person"), "Person"},
		{"generic application", decl.NewNamed("Vec", decl.NewNamed("String")), "Vec[Text]"},
		{"nested generics", decl.NewNamed("Map", decl.NewNamed("String"), decl.NewNamed("Vec", decl.NewNamed("i32"))), "Map[Text Vec[Int]]"},
		{"tuple", decl.NewTuple(decl.NewNamed("i32"), decl.NewNamed("Person")), "(Int * Person)"},
		{"empty tuple", decl.NewTuple(), "()"},
		{"expansion", decl.NewNamed("Box", decl.NewNamed("i32")), "Int"},
		{"expansion declines", decl.NewNamed("Box", decl.NewNamed("i32"), decl.NewNamed("A")), "Box[Int A]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertType(tt.expr, testConfig)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertType_Unsupported(t *testing.T) {
	var nilNamed *decl.Named

	tests := []struct {
		name string
		expr decl.TypeExpr
	}{
		{"nil", nil},
		{"typed nil", nilNamed},
		{"nil nested in generic", decl.NewNamed("Vec", nil)},
		{"nil nested in tuple", decl.NewTuple(decl.NewNamed("i32"), nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertType(tt.expr, testConfig)
			assert.Empty(t, got)
			assert.True(t, errors.IsUnsupported(err), "got %v", err)
		})
	}
}
