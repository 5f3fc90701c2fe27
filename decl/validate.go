package decl

import "github.com/teranos/rs2ts/errors"

// Validate checks the structural invariants of an item.
// Violations wrap errors.ErrStructuralViolation. Unsupported items are
// always valid; they carry no structure to check.
func Validate(it Item) error {
	if isNil(it) {
		return errors.NewStructuralf("nil declaration")
	}
	switch d := it.(type) {
	case *Alias:
		if err := validateHeader("type alias", d.Name, d.Params); err != nil {
			return err
		}
		return validateExpr(d.Type)

	case *Record:
		if err := validateHeader("struct", d.Name, d.Params); err != nil {
			return err
		}
		return validateFields(d.Fields)

	case *Union:
		if err := validateHeader("enum", d.Name, d.Params); err != nil {
			return err
		}
		if len(d.Variants) == 0 {
			return errors.NewStructuralf("enum %s has no variants", d.Name)
		}
		seen := make(map[string]bool, len(d.Variants))
		for _, v := range d.Variants {
			if v.Name == "" {
				return errors.NewStructuralf("enum %s has a variant with an empty name", d.Name)
			}
			if seen[v.Name] {
				return errors.NewStructuralf("enum %s declares variant %s twice", d.Name, v.Name)
			}
			seen[v.Name] = true
			if err := validatePayload(v.Payload); err != nil {
				return errors.Wrapf(err, "variant %s", v.Name)
			}
		}
		return nil

	case *Unsupported:
		return nil

	default:
		return errors.NewUnsupportedf("declaration of type %T", it)
	}
}

func isNil(it Item) bool {
	switch d := it.(type) {
	case nil:
		return true
	case *Alias:
		return d == nil
	case *Record:
		return d == nil
	case *Union:
		return d == nil
	case *Unsupported:
		return d == nil
	}
	return false
}

func validateHeader(what, name string, params []string) error {
	if name == "" {
		return errors.NewStructuralf("%s with an empty name", what)
	}
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if p == "" {
			return errors.NewStructuralf("%s %s has an empty generic parameter", what, name)
		}
		if seen[p] {
			return errors.NewStructuralf("%s %s declares generic parameter %s twice", what, name, p)
		}
		seen[p] = true
	}
	return nil
}

func validateFields(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !f.Key.Positional && f.Key.Name == "" {
			return errors.NewStructuralf("field with an empty name")
		}
		if f.Key.Positional && f.Key.Index < 0 {
			return errors.NewStructuralf("field with negative index %d", f.Key.Index)
		}
		key := f.Key.String()
		if seen[key] {
			return errors.NewStructuralf("field %s declared twice", key)
		}
		seen[key] = true
		if err := validateExpr(f.Type); err != nil {
			return errors.Wrapf(err, "field %s", key)
		}
	}
	return nil
}

func validatePayload(p VariantPayload) error {
	switch pl := p.(type) {
	case NoPayload, *NoPayload:
		return nil
	case *SinglePayload:
		return validateExpr(pl.Type)
	case *RecordPayload:
		return validateFields(pl.Fields)
	case nil:
		return errors.NewStructuralf("missing payload")
	default:
		return errors.NewUnsupportedf("payload of type %T", p)
	}
}

func validateExpr(e TypeExpr) error {
	switch t := e.(type) {
	case *Named:
		if t == nil {
			return errors.NewStructuralf("nil type expression")
		}
		if t.Ident == "" {
			return errors.NewStructuralf("named type with an empty identifier")
		}
		for _, a := range t.Args {
			if err := validateExpr(a); err != nil {
				return err
			}
		}
		return nil
	case *Tuple:
		if t == nil {
			return errors.NewStructuralf("nil type expression")
		}
		for _, el := range t.Elems {
			if err := validateExpr(el); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return errors.NewStructuralf("nil type expression")
	default:
		return errors.NewUnsupportedf("type expression of type %T", e)
	}
}
