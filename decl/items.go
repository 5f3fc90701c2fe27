package decl

// Kind names a declaration variant.
type Kind string

const (
	KindAlias       Kind = "alias"
	KindRecord      Kind = "record"
	KindUnion       Kind = "union"
	KindUnsupported Kind = "unsupported"
)

// Item is a top-level declaration. The implementations are *Alias, *Record,
// *Union and *Unsupported.
type Item interface {
	item()
	// ItemName returns the declared name (may be empty for Unsupported items
	// that have no name, such as use declarations)
	ItemName() string
	ItemKind() Kind
}

// Alias binds a name to a type: type Integer32 = i32;
type Alias struct {
	Name   string
	Params []string
	Type   TypeExpr
}

func (*Alias) item()              {}
func (a *Alias) ItemName() string { return a.Name }
func (*Alias) ItemKind() Kind     { return KindAlias }

// Record is a struct. Fields keep declaration order; an empty Fields slice
// is the unit shape.
type Record struct {
	Name   string
	Params []string
	Fields []Field
}

func (*Record) item()              {}
func (r *Record) ItemName() string { return r.Name }
func (*Record) ItemKind() Kind     { return KindRecord }

// Union is an enum serialized with adjacent tagging: every value is an
// object holding the variant name in one member and the payload in another.
type Union struct {
	Name     string
	Params   []string
	Variants []Variant
}

func (*Union) item()              {}
func (u *Union) ItemName() string { return u.Name }
func (*Union) ItemKind() Kind     { return KindUnion }

// Unsupported stands in for a declaration the translator cannot express.
// Label describes what was found, e.g. "fn item" or "reference type &str".
type Unsupported struct {
	Name  string
	Label string
}

func (*Unsupported) item()              {}
func (u *Unsupported) ItemName() string { return u.Name }
func (*Unsupported) ItemKind() Kind     { return KindUnsupported }

// NameOf returns the declared name of it, or "" for nil items.
func NameOf(it Item) string {
	switch d := it.(type) {
	case *Alias:
		if d != nil {
			return d.Name
		}
	case *Record:
		if d != nil {
			return d.Name
		}
	case *Union:
		if d != nil {
			return d.Name
		}
	case *Unsupported:
		if d != nil {
			return d.Name
		}
	}
	return ""
}

// Variant is one case of a Union.
type Variant struct {
	Name    string
	Payload VariantPayload
}

// VariantPayload is the data carried by a variant. The implementations are
// NoPayload, *SinglePayload and *RecordPayload.
type VariantPayload interface {
	variantPayload()
}

// NoPayload is a unit variant.
type NoPayload struct{}

func (NoPayload) variantPayload() {}

// SinglePayload is a newtype variant such as Protein(i32).
type SinglePayload struct {
	Type TypeExpr
}

func (*SinglePayload) variantPayload() {}

// RecordPayload is a struct-like variant such as Move { x: i32, y: i32 }.
type RecordPayload struct {
	Fields []Field
}

func (*RecordPayload) variantPayload() {}
