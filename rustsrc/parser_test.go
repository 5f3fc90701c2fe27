package rustsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/rs2ts/decl"
)

func named(ident string, args ...decl.TypeExpr) *decl.Named { return decl.NewNamed(ident, args...) }

func parseOne(t *testing.T, src string) decl.Item {
	t.Helper()
	items, err := Parse("test.rs", src)
	require.NoError(t, err)
	require.Len(t, items, 1)
	return items[0]
}

func requireUnsupported(t *testing.T, it decl.Item) *decl.Unsupported {
	t.Helper()
	u, ok := it.(*decl.Unsupported)
	require.True(t, ok, "expected *decl.Unsupported, got %T", it)
	return u
}

func TestParse_Alias(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *decl.Alias
	}{
		{"primitive", "type Integer32 = i32;", &decl.Alias{Name: "Integer32", Type: named("i32")}},
		{"pub alias", "pub type Name = String;", &decl.Alias{Name: "Name", Type: named("String")}},
		{"generic", "type People = HashMap<String, Person>;", &decl.Alias{Name: "People", Type: named("HashMap", named("String"), named("Person"))}},
		{"path keeps last segment", "type M = std::collections::HashMap<String, u8>;", &decl.Alias{Name: "M", Type: named("HashMap", named("String"), named("u8"))}},
		{"leading colons", "type M = ::std::string::String;", &decl.Alias{Name: "M", Type: named("String")}},
		{"tuple", "type Pair = (i32, String);", &decl.Alias{Name: "Pair", Type: decl.NewTuple(named("i32"), named("String"))}},
		{"unit", "type Unit = ();", &decl.Alias{Name: "Unit", Type: decl.NewTuple()}},
		{"parenthesized", "type P = (u8);", &decl.Alias{Name: "P", Type: named("u8")}},
		{"one-tuple", "type P = (u8,);", &decl.Alias{Name: "P", Type: decl.NewTuple(named("u8"))}},
		{"nested", "type N = Vec<Option<(u8, bool)>>;", &decl.Alias{Name: "N", Type: named("Vec", named("Option", decl.NewTuple(named("u8"), named("bool"))))}},
		{"turbofish", "type V = Vec::<u8>;", &decl.Alias{Name: "V", Type: named("Vec", named("u8"))}},
		{"generic params", "type Pair<A, B: Clone> = (A, B);", &decl.Alias{Name: "Pair", Params: []string{"A", "B"}, Type: decl.NewTuple(named("A"), named("B"))}},
		{"lifetime params are dropped", "type S<'a, T> = Box<T>;", &decl.Alias{Name: "S", Params: []string{"T"}, Type: named("Box", named("T"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOne(t, tt.src))
		})
	}
}

func TestParse_Struct(t *testing.T) {
	src := `
/// A person.
#[derive(Debug, Serialize, Deserialize)]
pub struct Person {
    pub name: String,
    pub(crate) age: u8,
    has_gut_issues: bool,
}`
	want := &decl.Record{Name: "Person", Fields: []decl.Field{
		{Key: decl.NameKey("name"), Type: named("String")},
		{Key: decl.NameKey("age"), Type: named("u8")},
		{Key: decl.NameKey("has_gut_issues"), Type: named("bool")},
	}}
	assert.Equal(t, want, parseOne(t, src))
}

func TestParse_StructShapes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *decl.Record
	}{
		{"unit", "struct Marker;", &decl.Record{Name: "Marker", Fields: []decl.Field{}}},
		{"empty braces", "struct Empty {}", &decl.Record{Name: "Empty", Fields: []decl.Field{}}},
		{"tuple", "pub struct Point(pub f64, f64);", &decl.Record{Name: "Point", Fields: []decl.Field{
			{Key: decl.IndexKey(0), Type: named("f64")},
			{Key: decl.IndexKey(1), Type: named("f64")},
		}}},
		{"tuple field that is a tuple", "struct W(pub (u8, u8));", &decl.Record{Name: "W", Fields: []decl.Field{
			{Key: decl.IndexKey(0), Type: decl.NewTuple(named("u8"), named("u8"))},
		}}},
		{"generic with where", "struct Page<T> where T: Clone { items: Vec<T> }", &decl.Record{Name: "Page", Params: []string{"T"}, Fields: []decl.Field{
			{Key: decl.NameKey("items"), Type: named("Vec", named("T"))},
		}}},
		{"raw identifier field", "struct K { r#type: String }", &decl.Record{Name: "K", Fields: []decl.Field{
			{Key: decl.NameKey("type"), Type: named("String")},
		}}},
		{"serde rename and skip", `struct R {
			#[serde(rename = "first-name")]
			first_name: String,
			#[serde(skip)]
			cache: Vec<u8>,
			#[serde(default, skip_serializing_if = "Option::is_none")]
			nick: Option<String>,
		}`, &decl.Record{Name: "R", Fields: []decl.Field{
			{Key: decl.NameKey("first-name"), Type: named("String")},
			{Key: decl.NameKey("nick"), Type: named("Option", named("String"))},
		}}},
		{"serde rename_all", `#[serde(rename_all = "camelCase")]
		struct C { user_id: u64, #[serde(rename = "X")] other_field: bool }`, &decl.Record{Name: "C", Fields: []decl.Field{
			{Key: decl.NameKey("userId"), Type: named("u64")},
			{Key: decl.NameKey("X"), Type: named("bool")},
		}}},
		{"skipped tuple field keeps indexes dense", "struct T(u8, #[serde(skip)] u16, u32);", &decl.Record{Name: "T", Fields: []decl.Field{
			{Key: decl.IndexKey(0), Type: named("u8")},
			{Key: decl.IndexKey(1), Type: named("u32")},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOne(t, tt.src))
		})
	}
}

func TestParse_Enum(t *testing.T) {
	src := `
#[serde(tag = "test", content = "result")]
enum HealthStatus {
    Protein(i32),
    Triglycerid(i32),
    Fats(i32),
}`
	want := &decl.Union{Name: "HealthStatus", Variants: []decl.Variant{
		{Name: "Protein", Payload: &decl.SinglePayload{Type: named("i32")}},
		{Name: "Triglycerid", Payload: &decl.SinglePayload{Type: named("i32")}},
		{Name: "Fats", Payload: &decl.SinglePayload{Type: named("i32")}},
	}}
	assert.Equal(t, want, parseOne(t, src))
}

func TestParse_EnumShapes(t *testing.T) {
	src := `
#[derive(Serialize)]
#[serde(tag = "test", content = "result", rename_all = "snake_case")]
pub enum Message<T> {
    Quit,
    Move { x: i32, y: i32 },
    #[serde(rename = "write")]
    WriteText(String),
    Wrap(T),
    Nothing(),
    #[serde(skip)]
    Internal(u8),
    Code = 3,
}`
	want := &decl.Union{Name: "Message", Params: []string{"T"}, Variants: []decl.Variant{
		{Name: "quit", Payload: decl.NoPayload{}},
		{Name: "move", Payload: &decl.RecordPayload{Fields: []decl.Field{
			{Key: decl.NameKey("x"), Type: named("i32")},
			{Key: decl.NameKey("y"), Type: named("i32")},
		}}},
		{Name: "write", Payload: &decl.SinglePayload{Type: named("String")}},
		{Name: "wrap", Payload: &decl.SinglePayload{Type: named("T")}},
		{Name: "nothing", Payload: &decl.SinglePayload{Type: decl.NewTuple()}},
		{Name: "code", Payload: decl.NoPayload{}},
	}}
	assert.Equal(t, want, parseOne(t, src))
}

func TestParse_SkippedMembersAreNotChecked(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want decl.Item
	}{
		{"skipped slice reference field", "struct Cache<'a> { id: u32, #[serde(skip)] raw: &'a [u8] }",
			&decl.Record{Name: "Cache", Fields: []decl.Field{
				{Key: decl.NameKey("id"), Type: named("u32")},
			}}},
		{"skip_serializing field", "struct Job { name: String, #[serde(skip_serializing)] run: Box<dyn Send> }",
			&decl.Record{Name: "Job", Fields: []decl.Field{
				{Key: decl.NameKey("name"), Type: named("String")},
			}}},
		{"skipped tuple field", "struct Ptr(u8, #[serde(skip)] *const u8);",
			&decl.Record{Name: "Ptr", Fields: []decl.Field{
				{Key: decl.IndexKey(0), Type: named("u8")},
			}}},
		{"skipped multi-field variant", `#[serde(tag = "test", content = "result")]
		enum E { #[serde(skip)] Pair(u8, u8), One(u8) }`,
			&decl.Union{Name: "E", Variants: []decl.Variant{
				{Name: "One", Payload: &decl.SinglePayload{Type: named("u8")}},
			}}},
		{"skipped variant with reference payload", `#[serde(tag = "test", content = "result")]
		enum F<'a> { #[serde(skip)] View { data: &'a str }, Done }`,
			&decl.Union{Name: "F", Variants: []decl.Variant{
				{Name: "Done", Payload: decl.NoPayload{}},
			}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOne(t, tt.src))
		})
	}
}

func TestParse_UnsupportedMemberAfterSkippedOne(t *testing.T) {
	u := requireUnsupported(t, parseOne(t, "struct S { #[serde(skip)] a: &'static str, b: [u8; 4] }"))
	assert.Equal(t, "S", u.Name)
	assert.Equal(t, "array type [u8; 4]", u.Label)
}

func TestParse_EnumWithoutSerdeAttributes(t *testing.T) {
	it := parseOne(t, "enum Flag { On, Off = 1 << 2 }")
	u, ok := it.(*decl.Union)
	require.True(t, ok)
	assert.Len(t, u.Variants, 2)
}

func TestParse_UnsupportedItems(t *testing.T) {
	src := `
#![allow(dead_code)]
use std::collections::{HashMap, HashSet};
extern crate serde;
mod inner;
mod nested { struct Hidden; }
const MAX: [u8; 2] = [1, 2];
static mut COUNT: usize = 0;
pub(crate) async fn run() -> Result<(), String> { Ok(()) }
unsafe impl Send for Person {}
impl<T> Page<T> where T: Clone { fn len(&self) -> usize { 0 } }
trait Named { fn name(&self) -> &str; }
macro_rules! square { ($x:expr) => { $x * $x }; }
lazy_static! { static ref X: u8 = 1; }
println!("{}", 1);
extern "C" { fn abs(x: i32) -> i32; }
union IntOrFloat { i: u32, f: f32 }
`
	items, err := Parse("lib.rs", src)
	require.NoError(t, err)

	want := []decl.Unsupported{
		{Label: "use declaration"},
		{Name: "serde", Label: "extern crate"},
		{Name: "inner", Label: "module"},
		{Name: "nested", Label: "module"},
		{Name: "MAX", Label: "const item"},
		{Name: "COUNT", Label: "static item"},
		{Name: "run", Label: "fn item"},
		{Label: "impl block"},
		{Label: "impl block"},
		{Name: "Named", Label: "trait item"},
		{Name: "square", Label: "macro definition"},
		{Name: "lazy_static", Label: "macro invocation"},
		{Name: "println", Label: "macro invocation"},
		{Label: "extern block"},
		{Name: "IntOrFloat", Label: "union item"},
	}
	require.Len(t, items, len(want))
	for i, w := range want {
		u := requireUnsupported(t, items[i])
		assert.Equal(t, w, *u, "item %d", i)
	}
}

func TestParse_UnsupportedTypes(t *testing.T) {
	tests := []struct {
		src   string
		name  string
		label string
	}{
		{"type S = &'static str;", "S", "reference type &'static str"},
		{"struct B<'a> { s: &'a mut String }", "B", "reference type &'a mut String"},
		{"type P = *const u8;", "P", "raw pointer type *const u8"},
		{"type A = [u8; 32];", "A", "array type [u8; 32]"},
		{"type A = [u8; 1 << 4];", "A", "array type [u8; 1 << 4]"},
		{"type S = [u8];", "S", "slice type [u8]"},
		{"type F = fn(u8) -> bool;", "F", "function pointer type fn(u8) -> bool"},
		{`type F = unsafe extern "C" fn();`, "F", `function pointer type unsafe extern "C" fn()`},
		{"type D = Box<dyn Fn(u8) -> u8 + Send>;", "D", "trait object type dyn Fn(u8) -> u8 + Send"},
		{"type N = !;", "N", "never type"},
		{"type I = Vec<_>;", "I", "inferred type _"},
		{"type Q = <T as Iterator>::Item;", "Q", "qualified path type <T as Iterator>::Item"},
		{"struct C<'a> { c: Cow<'a, str> }", "C", "lifetime argument 'a"},
		{"type I = Box<dyn Iterator<Item = u8>>;", "I", "trait object type dyn Iterator<Item = u8>"},
		{"type B = Foo<Item = u8>;", "B", "associated type binding Item = u8"},
		{"type K = Arr<3>;", "K", "const generic argument 3"},
		{"struct Buf<const N: usize> { data: Vec<u8> }", "Buf", "const generic parameter N"},
		{"type F = Box<Fn(u8)>;", "F", "function trait type Fn(u8)"},
		{"type M = my_macro!(u8);", "M", "macro in type position my_macro!(u8)"},
		{"enum Shape { Rect(u32, u32), Dot }", "Shape", "tuple variant Rect with 2 fields"},
		{`#[serde(untagged)] enum U { A(u8) }`, "U", "untagged enum"},
		{`#[serde(tag = "type")] enum U { A { x: u8 } }`, "U", `internally tagged enum (tag "type")`},
		{`#[serde(tag = "t", content = "c")] enum U { A(u8) }`, "U", `adjacently tagged enum with tag "t" and content "c"`},
		{`#[serde(rename_all = "Title Case")] struct S { a: u8 }`, "S", `serde rename_all rule "Title Case"`},
		{`struct S { #[serde(flatten)] inner: Inner }`, "S", "serde flatten on field inner"},
		{`#[serde(transparent)] struct S(u8);`, "S", "serde transparent struct"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			u := requireUnsupported(t, parseOne(t, tt.src))
			assert.Equal(t, tt.name, u.Name)
			assert.Equal(t, tt.label, u.Label)
		})
	}
}

func TestParse_ItemAfterUnsupportedIsKept(t *testing.T) {
	items, err := Parse("lib.rs", `
type S = &str;
fn helper() {}
type Integer32 = i32;`)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, decl.KindUnsupported, items[0].ItemKind())
	assert.Equal(t, decl.KindUnsupported, items[1].ItemKind())
	assert.Equal(t, &decl.Alias{Name: "Integer32", Type: named("i32")}, items[2])
}

func TestParse_Empty(t *testing.T) {
	items, err := Parse("empty.rs", "// nothing here\n")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind ErrorKind
		line int
	}{
		{"missing semicolon", "type A = i32", ErrorKindEOF, 1},
		{"missing equals", "type A i32;", ErrorKindSyntax, 1},
		{"unclosed struct", "struct A {\n  a: u8,\n", ErrorKindEOF, 3},
		{"mismatched delimiter", "fn f() { (] }", ErrorKindUnbalanced, 1},
		{"stray closer", "}", ErrorKindUnbalanced, 1},
		{"not an item", "let x = 1;", ErrorKindSyntax, 1},
		{"bad field", "struct A { 1: u8 }", ErrorKindSyntax, 1},
		{"bad type", "type A = ;", ErrorKindSyntax, 1},
		{"bad token", "struct A { a: u8 `}", ErrorKindSyntax, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Parse("bad.rs", tt.src)
			assert.Nil(t, items)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.kind, pe.Kind)
			assert.Equal(t, "bad.rs", pe.File)
			assert.Equal(t, tt.line, pe.Pos.Line)
		})
	}
}

func TestParseFile(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.rs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
