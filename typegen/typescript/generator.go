// Package typescript renders declarations as TypeScript type definitions
// for serde's JSON representation of the same Rust types.
package typescript

import (
	"strings"

	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
	"github.com/teranos/rs2ts/typegen/util"
)

// Member names of the adjacently tagged union object.
const (
	TagField     = "test"
	ContentField = "result"
)

// Generator implements typegen.Generator for TypeScript
type Generator struct{}

// NewGenerator creates a new TypeScript generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "typescript"
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns "ts"
func (g *Generator) FileExtension() string {
	return "ts"
}

// Prelude returns the fixed prelude (implements typegen.Generator)
func (g *Generator) Prelude() string {
	return Prelude()
}

// GenerateAlias implements typegen.Generator
func (g *Generator) GenerateAlias(a *decl.Alias) (string, error) {
	return GenerateAlias(a)
}

// GenerateRecord implements typegen.Generator
func (g *Generator) GenerateRecord(r *decl.Record) (string, error) {
	return GenerateInterface(r)
}

// GenerateUnion implements typegen.Generator
func (g *Generator) GenerateUnion(u *decl.Union) (string, error) {
	return GenerateTaggedUnion(u)
}

// TypeMapping defines how Rust primitive types map to TypeScript types.
// Identifiers not listed pass through unchanged.
var TypeMapping = map[string]string{
	"i8":     "number",
	"i16":    "number",
	"i32":    "number",
	"i64":    "number",
	"i128":   "number",
	"isize":  "number",
	"u8":     "number",
	"u16":    "number",
	"u32":    "number",
	"u64":    "number",
	"u128":   "number",
	"usize":  "number",
	"f32":    "number",
	"f64":    "number",
	"String": "string",
	"str":    "string",
	"char":   "string",
	"bool":   "boolean",
}

// typeConverterConfig is the TypeScript-specific type conversion configuration
var typeConverterConfig = &util.TypeConverterConfig{
	TypeMapping: TypeMapping,
	// Every argument is followed by a comma: HashMap<string,number,>
	GenericFormat: func(ident string, args []string) string {
		var sb strings.Builder
		sb.WriteString(ident)
		sb.WriteString("<")
		for _, a := range args {
			sb.WriteString(a)
			sb.WriteString(",")
		}
		sb.WriteString(">")
		return sb.String()
	},
	TupleFormat: func(elems []string) string {
		return "[" + strings.Join(elems, ",") + "]"
	},
	Expansions: map[string]func([]string) (string, bool){
		"Option": func(args []string) (string, bool) {
			if len(args) != 1 {
				return "", false
			}
			return args[0] + " | undefined", true
		},
	},
}

// TranslateType renders a type expression as a TypeScript type.
func TranslateType(expr decl.TypeExpr) (string, error) {
	return util.ConvertType(expr, typeConverterConfig)
}

// GenerateAlias renders: export type NAME = T;
func GenerateAlias(a *decl.Alias) (string, error) {
	ts, err := TranslateType(a.Type)
	if err != nil {
		return "", errors.Wrapf(err, "type alias %s", a.Name)
	}
	return "export type " + header(a.Name, a.Params) + " = " + ts + ";", nil
}

// GenerateInterface renders: export interface NAME {k:T;k:T;};
func GenerateInterface(r *decl.Record) (string, error) {
	body, err := objectType(r.Fields)
	if err != nil {
		return "", errors.Wrapf(err, "struct %s", r.Name)
	}
	return "export interface " + header(r.Name, r.Params) + " " + body + ";", nil
}

// GenerateTaggedUnion renders an adjacently tagged union:
//
//	export type NAME = | { test: "A" , result: T} | { test: "B" , result: undefined};
func GenerateTaggedUnion(u *decl.Union) (string, error) {
	var sb strings.Builder
	sb.WriteString("export type ")
	sb.WriteString(header(u.Name, u.Params))
	sb.WriteString(" =")
	for _, v := range u.Variants {
		payload, err := payloadType(v.Payload)
		if err != nil {
			return "", errors.Wrapf(err, "enum %s variant %s", u.Name, v.Name)
		}
		sb.WriteString(" | { ")
		sb.WriteString(TagField)
		sb.WriteString(": ")
		sb.WriteString(quote(v.Name))
		sb.WriteString(" , ")
		sb.WriteString(ContentField)
		sb.WriteString(": ")
		sb.WriteString(payload)
		sb.WriteString("}")
	}
	sb.WriteString(";")
	return sb.String(), nil
}

func payloadType(p decl.VariantPayload) (string, error) {
	switch pl := p.(type) {
	case decl.NoPayload, *decl.NoPayload:
		return "undefined", nil
	case *decl.SinglePayload:
		return TranslateType(pl.Type)
	case *decl.RecordPayload:
		return objectType(pl.Fields)
	default:
		return "", errors.NewUnsupportedf("variant payload %T", p)
	}
}

// objectType renders fields as {k:T;k:T;}
func objectType(fields []decl.Field) (string, error) {
	var sb strings.Builder
	sb.WriteString("{")
	for _, f := range fields {
		ts, err := TranslateType(f.Type)
		if err != nil {
			return "", errors.Wrapf(err, "field %s", f.Key)
		}
		sb.WriteString(propertyKey(f.Key.String()))
		sb.WriteString(":")
		sb.WriteString(ts)
		sb.WriteString(";")
	}
	sb.WriteString("}")
	return sb.String(), nil
}

// header renders NAME or NAME<T, U>
func header(name string, params []string) string {
	if len(params) == 0 {
		return name
	}
	return name + "<" + strings.Join(params, ", ") + ">"
}
