// Package rustsrc lowers Rust source text to declarations.
//
// Only type aliases, structs and enums are translated. Every other item
// (fn, impl, trait, use, mod, macros, ...) is consumed and reported as a
// decl.Unsupported so that the caller can log it. The same happens to a
// type, struct or enum that contains a construct outside the decl model,
// such as a reference type or a lifetime argument: the whole item is
// reported, never truncated.
//
// Paths keep only their last segment: std::collections::HashMap<K, V> is
// lowered to HashMap<K, V>. Names are not resolved.
//
// Malformed source (bad tokens, unbalanced delimiters, premature end of
// file) is fatal and reported as a *ParseError.
package rustsrc

import (
	"fmt"
	"os"
	"strings"

	"github.com/teranos/rs2ts/decl"
	"github.com/teranos/rs2ts/errors"
)

// Member names serde must use for an enum to be translatable as an
// adjacently tagged union.
const (
	TagName     = "test"
	ContentName = "result"
)

// ParseFile reads and parses a Rust source file.
func ParseFile(path string) ([]decl.Item, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Parse(path, string(src))
}

// Parse lowers every top-level item of src, in source order. filename is
// only used in error messages.
func Parse(filename, src string) ([]decl.Item, error) {
	toks, err := Tokenize(src)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.WithFile(filename)
		}
		return nil, err
	}

	p := &parser{file: filename, src: src, toks: toks}
	items := []decl.Item{}
	for p.peek().Kind != TokEOF {
		// inner attributes and stray semicolons are not items
		if p.at("#") && p.peekN(1).is("!") && p.peekN(2).is("[") {
			p.next()
			p.next()
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
			continue
		}
		if p.accept(";") {
			continue
		}

		it, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

type parser struct {
	file string
	src  string
	toks []Token
	pos  int

	// first construct in the current item that has no decl equivalent
	unsupported string
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) peekN(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

// next consumes a token. The trailing EOF token is never consumed.
func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(text string) bool {
	return p.peek().is(text)
}

func (p *parser) accept(text string) bool {
	if p.at(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) errorAt(tok Token, kind ErrorKind, msg string) *ParseError {
	pe := NewParseError(kind, tok.Pos, msg).WithFile(p.file)
	if tok.Kind == TokEOF {
		pe.Kind = ErrorKindEOF
		pe.Message = "unexpected end of file, " + msg
	} else {
		pe.WithToken(tok.Raw)
	}
	return pe
}

func (p *parser) expect(text string) (Token, error) {
	if p.at(text) {
		return p.next(), nil
	}
	return Token{}, p.errorAt(p.peek(), ErrorKindSyntax, fmt.Sprintf("expected %q", text))
}

func (p *parser) expectIdent(what string) (Token, error) {
	if p.peek().Kind == TokIdent {
		return p.next(), nil
	}
	return Token{}, p.errorAt(p.peek(), ErrorKindSyntax, "expected "+what)
}

// markUnsupported records the first unsupported construct of the item
func (p *parser) markUnsupported(label string) {
	if p.unsupported == "" {
		p.unsupported = label
	}
}

// spanFrom returns the source text from start to the last consumed token,
// with whitespace runs collapsed.
func (p *parser) spanFrom(start Token) string {
	end := start.End
	if p.pos > 0 && p.toks[p.pos-1].End > end {
		end = p.toks[p.pos-1].End
	}
	return strings.Join(strings.Fields(p.src[start.Pos.Offset:end]), " ")
}

// skipBalanced consumes a delimited group starting at the current opener
func (p *parser) skipBalanced() error {
	open := p.peek()
	if !isOpener(open) {
		return p.errorAt(open, ErrorKindSyntax, "expected a delimited group")
	}
	var stack []Token
	for {
		tok := p.next()
		switch {
		case tok.Kind == TokEOF:
			top := stack[len(stack)-1]
			return p.errorAt(tok, ErrorKindEOF, fmt.Sprintf("unclosed %q opened at %s", top.Value, top.Pos)).
				WithSuggestion("add the missing " + closerFor[top.Value])
		case isOpener(tok):
			stack = append(stack, tok)
		case isCloser(tok):
			top := stack[len(stack)-1]
			if closerFor[top.Value] != tok.Value {
				return p.errorAt(tok, ErrorKindUnbalanced, "mismatched closing delimiter").
					WithSuggestion(fmt.Sprintf("%q opened at %s expects %q", top.Value, top.Pos, closerFor[top.Value]))
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil
			}
		}
	}
}

// groupTokens consumes a delimited group and returns the tokens inside it
func (p *parser) groupTokens() ([]Token, error) {
	start := p.pos
	if err := p.skipBalanced(); err != nil {
		return nil, err
	}
	return p.toks[start+1 : p.pos-1], nil
}

// skipUntil consumes tokens until one of stops appears outside any
// (), [], {} or <> nesting. The stop token is not consumed.
func (p *parser) skipUntil(stops ...string) error {
	return p.skipTokens(true, stops)
}

// skipExprUntil is skipUntil for expressions, where < and > are operators.
func (p *parser) skipExprUntil(stops ...string) error {
	return p.skipTokens(false, stops)
}

func (p *parser) skipTokens(angles bool, stops []string) error {
	angle := 0
	for {
		tok := p.peek()
		if tok.Kind == TokEOF {
			return p.errorAt(tok, ErrorKindEOF, "expected one of "+strings.Join(stops, " "))
		}
		if angle == 0 {
			for _, s := range stops {
				if tok.is(s) {
					return nil
				}
			}
		}
		switch {
		case isOpener(tok):
			if err := p.skipBalanced(); err != nil {
				return err
			}
			continue
		case isCloser(tok):
			return p.errorAt(tok, ErrorKindUnbalanced, "unexpected closing delimiter")
		case angles && tok.is("<"):
			angle++
		case angles && tok.is(">") && angle > 0:
			angle--
		}
		p.next()
	}
}

func (p *parser) skipVisibility() error {
	if !p.accept("pub") {
		return nil
	}
	if p.at("(") {
		switch n := p.peekN(1); {
		case n.is("crate"), n.is("self"), n.is("super"), n.is("in"):
			return p.skipBalanced()
		}
	}
	return nil
}

// parseItem parses one top-level item, including its attributes
func (p *parser) parseItem() (decl.Item, error) {
	p.unsupported = ""
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if err := p.skipVisibility(); err != nil {
		return nil, err
	}

	var it decl.Item
	switch {
	case p.at("type"):
		it, err = p.parseAlias()
	case p.at("struct"):
		it, err = p.parseStruct(attrs)
	case p.at("enum"):
		it, err = p.parseEnum(attrs)
	default:
		return p.skipOtherItem()
	}
	if err != nil {
		return nil, err
	}
	if p.unsupported != "" {
		return &decl.Unsupported{Name: it.ItemName(), Label: p.unsupported}, nil
	}
	return it, nil
}

// skipOtherItem consumes an item that is never translated
func (p *parser) skipOtherItem() (decl.Item, error) {
	start := p.peek()
	for p.at("unsafe") || p.at("async") || p.at("default") ||
		(p.at("const") && (p.peekN(1).is("fn") || p.peekN(1).is("unsafe") || p.peekN(1).is("async"))) ||
		(p.at("extern") && p.peekN(1).Kind == TokString && p.peekN(2).is("fn")) {
		if p.at("extern") {
			p.next()
		}
		p.next()
	}

	var label, name string
	tok := p.peek()
	ident := func(n int) string {
		if t := p.peekN(n); t.Kind == TokIdent {
			return t.Value
		}
		return ""
	}
	switch {
	case tok.is("fn"):
		label, name = "fn item", ident(1)
	case tok.is("impl"):
		label = "impl block"
	case tok.is("trait"):
		label, name = "trait item", ident(1)
	case tok.is("mod"):
		label, name = "module", ident(1)
	case tok.is("const"):
		label, name = "const item", ident(1)
	case tok.is("static"):
		label, name = "static item", ident(1)
		if p.peekN(1).is("mut") {
			name = ident(2)
		}
	case tok.is("use"):
		label = "use declaration"
	case tok.is("extern") && p.peekN(1).is("crate"):
		label, name = "extern crate", ident(2)
	case tok.is("extern"):
		label = "extern block"
	case tok.is("union") && p.peekN(1).Kind == TokIdent:
		label, name = "union item", ident(1)
	case tok.is("macro_rules") && p.peekN(1).is("!"):
		label, name = "macro definition", ident(2)
	case tok.Kind == TokIdent && p.peekN(1).is("!"):
		label, name = "macro invocation", tok.Value
	case isCloser(tok):
		return nil, p.errorAt(tok, ErrorKindUnbalanced, "unexpected closing delimiter")
	default:
		return nil, p.errorAt(start, ErrorKindSyntax, "expected an item").
			WithSuggestion("top-level items start with a keyword such as struct, enum, type or fn")
	}

	// an item ends at a top-level ';' or after its top-level {} body
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokEOF:
			return nil, p.errorAt(tok, ErrorKindEOF, "expected ';' or '}' to end the "+label)
		case tok.is(";"):
			p.next()
			return &decl.Unsupported{Name: name, Label: label}, nil
		case tok.is("{"):
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
			p.accept(";")
			return &decl.Unsupported{Name: name, Label: label}, nil
		case isOpener(tok):
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
		case isCloser(tok):
			return nil, p.errorAt(tok, ErrorKindUnbalanced, "unexpected closing delimiter")
		default:
			p.next()
		}
	}
}

// parseAlias parses: type NAME<PARAMS> = TYPE;
func (p *parser) parseAlias() (decl.Item, error) {
	p.next()
	name, err := p.expectIdent("a type alias name")
	if err != nil {
		return nil, err
	}
	params, err := p.parseGenericParams()
	if err != nil {
		return nil, err
	}
	if err := p.skipWhere(); err != nil {
		return nil, err
	}
	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &decl.Alias{Name: name.Value, Params: params, Type: ty}, nil
}

// parseStruct parses named, tuple and unit structs
func (p *parser) parseStruct(attrs serdeAttrs) (decl.Item, error) {
	p.next()
	name, err := p.expectIdent("a struct name")
	if err != nil {
		return nil, err
	}
	rec := &decl.Record{Name: name.Value, Fields: []decl.Field{}}
	if rec.Params, err = p.parseGenericParams(); err != nil {
		return nil, err
	}
	if err := p.skipWhere(); err != nil {
		return nil, err
	}
	p.checkStructAttrs(attrs)

	switch {
	case p.accept(";"):
	case p.at("{"):
		if rec.Fields, err = p.parseNamedFields(attrs.renameAll); err != nil {
			return nil, err
		}
	case p.at("("):
		if rec.Fields, err = p.parseTupleFields(); err != nil {
			return nil, err
		}
		if err := p.skipWhere(); err != nil {
			return nil, err
		}
		if _, err := p.expect(";"); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorAt(p.peek(), ErrorKindSyntax, "expected '{', '(' or ';' after struct name")
	}
	return rec, nil
}

func (p *parser) checkStructAttrs(attrs serdeAttrs) {
	switch {
	case attrs.badRule != "":
		p.markUnsupported(fmt.Sprintf("serde rename_all rule %q", attrs.badRule))
	case attrs.transparent:
		p.markUnsupported("serde transparent struct")
	case attrs.hasTag:
		p.markUnsupported(fmt.Sprintf("serde tag %q on a struct", attrs.tag))
	}
}

// parseNamedFields parses { [attrs] [vis] name: Type, ... }
func (p *parser) parseNamedFields(rule renameRule) ([]decl.Field, error) {
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	fields := []decl.Field{}
	for !p.accept("}") {
		attrs, err := p.parseOuterAttrs()
		if err != nil {
			return nil, err
		}
		if err := p.skipVisibility(); err != nil {
			return nil, err
		}
		name, err := p.expectIdent("a field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(":"); err != nil {
			return nil, err
		}
		prev := p.unsupported
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if !p.at("}") {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}

		if attrs.skip {
			// never serialized, so its type does not matter
			p.unsupported = prev
			continue
		}
		if attrs.flatten {
			p.markUnsupported("serde flatten on field " + name.Value)
		}
		key := rule.applyToField(name.Value)
		if attrs.rename != "" {
			key = attrs.rename
		}
		fields = append(fields, decl.Field{Key: decl.NameKey(key), Type: ty})
	}
	return fields, nil
}

// parseTupleFields parses ( [attrs] [vis] Type, ... ). Skipped fields do
// not take up an index and their types are not checked.
func (p *parser) parseTupleFields() ([]decl.Field, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	fields := []decl.Field{}
	for !p.accept(")") {
		attrs, err := p.parseOuterAttrs()
		if err != nil {
			return nil, err
		}
		if err := p.skipVisibility(); err != nil {
			return nil, err
		}
		prev := p.unsupported
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if !p.at(")") {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
		if attrs.skip {
			p.unsupported = prev
			continue
		}
		fields = append(fields, decl.Field{Key: decl.IndexKey(len(fields)), Type: ty})
	}
	return fields, nil
}

// parseEnum parses an enum and checks that serde represents it with
// adjacent tagging under the expected member names
func (p *parser) parseEnum(attrs serdeAttrs) (decl.Item, error) {
	p.next()
	name, err := p.expectIdent("an enum name")
	if err != nil {
		return nil, err
	}
	u := &decl.Union{Name: name.Value, Variants: []decl.Variant{}}
	if u.Params, err = p.parseGenericParams(); err != nil {
		return nil, err
	}
	if err := p.skipWhere(); err != nil {
		return nil, err
	}
	p.checkEnumAttrs(attrs)

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	for !p.accept("}") {
		v, skip, err := p.parseVariant(attrs.renameAll)
		if err != nil {
			return nil, err
		}
		if !p.at("}") {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
		if !skip {
			u.Variants = append(u.Variants, v)
		}
	}
	return u, nil
}

func (p *parser) checkEnumAttrs(attrs serdeAttrs) {
	switch {
	case attrs.badRule != "":
		p.markUnsupported(fmt.Sprintf("serde rename_all rule %q", attrs.badRule))
	case attrs.untagged:
		p.markUnsupported("untagged enum")
	case attrs.hasTag && !attrs.hasContent:
		p.markUnsupported(fmt.Sprintf("internally tagged enum (tag %q)", attrs.tag))
	case attrs.hasContent && !attrs.hasTag:
		p.markUnsupported(fmt.Sprintf("serde content %q without tag", attrs.content))
	case attrs.hasTag && (attrs.tag != TagName || attrs.content != ContentName):
		p.markUnsupported(fmt.Sprintf("adjacently tagged enum with tag %q and content %q", attrs.tag, attrs.content))
	}
}

// parseVariant parses one variant with its attributes and discriminant. A
// skipped variant leaves no trace on the item, whatever its payload.
func (p *parser) parseVariant(rule renameRule) (decl.Variant, bool, error) {
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return decl.Variant{}, false, err
	}
	prev := p.unsupported
	if err := p.skipVisibility(); err != nil {
		return decl.Variant{}, false, err
	}
	name, err := p.expectIdent("a variant name")
	if err != nil {
		return decl.Variant{}, false, err
	}
	if attrs.badRule != "" {
		p.markUnsupported(fmt.Sprintf("serde rename_all rule %q", attrs.badRule))
	}

	v := decl.Variant{Name: rule.applyToVariant(name.Value), Payload: decl.NoPayload{}}
	if attrs.rename != "" {
		v.Name = attrs.rename
	}

	switch {
	case p.at("{"):
		fields, err := p.parseNamedFields(attrs.renameAll)
		if err != nil {
			return decl.Variant{}, false, err
		}
		v.Payload = &decl.RecordPayload{Fields: fields}
	case p.at("("):
		fields, err := p.parseTupleFields()
		if err != nil {
			return decl.Variant{}, false, err
		}
		switch len(fields) {
		case 0:
			v.Payload = &decl.SinglePayload{Type: decl.NewTuple()}
		case 1:
			v.Payload = &decl.SinglePayload{Type: fields[0].Type}
		default:
			if attrs.skip {
				break
			}
			p.markUnsupported(fmt.Sprintf("tuple variant %s with %d fields", name.Value, len(fields)))
		}
	}

	if p.accept("=") {
		if err := p.skipExprUntil(",", "}"); err != nil {
			return decl.Variant{}, false, err
		}
	}
	if attrs.skip {
		p.unsupported = prev
	}
	return v, attrs.skip, nil
}

// parseGenericParams parses <'a, T: Bound, U = Default> and returns the
// type parameter names. Lifetimes, bounds and defaults are dropped.
func (p *parser) parseGenericParams() ([]string, error) {
	if !p.accept("<") {
		return nil, nil
	}
	var params []string
	for !p.accept(">") {
		tok := p.peek()
		switch {
		case tok.Kind == TokLifetime:
			p.next()
			if p.accept(":") {
				if err := p.skipUntil(",", ">"); err != nil {
					return nil, err
				}
			}
		case tok.is("const"):
			p.next()
			name, err := p.expectIdent("a const parameter name")
			if err != nil {
				return nil, err
			}
			p.markUnsupported("const generic parameter " + name.Value)
			if err := p.skipUntil(",", ">"); err != nil {
				return nil, err
			}
		case tok.Kind == TokIdent:
			p.next()
			params = append(params, tok.Value)
			if p.at(":") || p.at("=") {
				if err := p.skipUntil(",", ">"); err != nil {
					return nil, err
				}
			}
		default:
			return nil, p.errorAt(tok, ErrorKindSyntax, "expected a generic parameter")
		}
		if !p.at(">") {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	return params, nil
}

// skipWhere consumes a where clause if present
func (p *parser) skipWhere() error {
	if !p.accept("where") {
		return nil
	}
	return p.skipUntil("{", ";", "=")
}

// parseType parses a type expression. Constructs outside the decl model
// are consumed, recorded with markUnsupported and yield a nil expression.
func (p *parser) parseType() (decl.TypeExpr, error) {
	start := p.peek()
	switch {
	case start.is("("):
		return p.parseTupleType()

	case start.is("&"):
		p.next()
		if p.peek().Kind == TokLifetime {
			p.next()
		}
		p.accept("mut")
		if _, err := p.parseType(); err != nil {
			return nil, err
		}
		p.markUnsupported("reference type " + p.spanFrom(start))
		return nil, nil

	case start.is("*"):
		p.next()
		if !p.accept("const") && !p.accept("mut") {
			return nil, p.errorAt(p.peek(), ErrorKindSyntax, "expected const or mut after *")
		}
		if _, err := p.parseType(); err != nil {
			return nil, err
		}
		p.markUnsupported("raw pointer type " + p.spanFrom(start))
		return nil, nil

	case start.is("["):
		p.next()
		if _, err := p.parseType(); err != nil {
			return nil, err
		}
		label := "slice type "
		if p.accept(";") {
			label = "array type "
			if err := p.skipExprUntil("]"); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}
		p.markUnsupported(label + p.spanFrom(start))
		return nil, nil

	case start.is("!"):
		p.next()
		p.markUnsupported("never type")
		return nil, nil

	case start.is("<"):
		return nil, p.parseQualifiedPath(start)

	case start.is("fn"), start.is("unsafe"), start.is("extern"):
		return nil, p.parseFnPointer(start)

	case start.is("for"):
		p.next()
		if err := p.skipAngles(); err != nil {
			return nil, err
		}
		if _, err := p.parseType(); err != nil {
			return nil, err
		}
		p.markUnsupported("higher-ranked type " + p.spanFrom(start))
		return nil, nil

	case start.is("dyn"), start.is("impl"):
		p.next()
		if err := p.skipUntil(",", ">", ";", "=", "{", "}", ")", "]"); err != nil {
			return nil, err
		}
		what := "trait object type "
		if start.is("impl") {
			what = "impl trait type "
		}
		p.markUnsupported(what + p.spanFrom(start))
		return nil, nil

	case start.is("_"):
		p.next()
		p.markUnsupported("inferred type _")
		return nil, nil

	case start.Kind == TokIdent, start.is("::"):
		return p.parsePath()
	}
	return nil, p.errorAt(start, ErrorKindSyntax, "expected a type")
}

// parseTupleType parses (), (T) and (T, U, ...)
func (p *parser) parseTupleType() (decl.TypeExpr, error) {
	p.next()
	if p.accept(")") {
		return decl.NewTuple(), nil
	}
	var elems []decl.TypeExpr
	trailingComma := false
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, t)
		trailingComma = p.accept(",")
		if p.accept(")") {
			break
		}
		if !trailingComma {
			return nil, p.errorAt(p.peek(), ErrorKindSyntax, "expected ',' or ')' in tuple type")
		}
	}
	if len(elems) == 1 && !trailingComma {
		return elems[0], nil
	}
	return decl.NewTuple(elems...), nil
}

// parsePath parses a::b::Name<Args> and keeps the last segment
func (p *parser) parsePath() (decl.TypeExpr, error) {
	start := p.peek()
	p.accept("::")

	var last *decl.Named
	for {
		seg, err := p.expectIdent("a path segment")
		if err != nil {
			return nil, err
		}
		last = &decl.Named{Ident: seg.Value}

		switch {
		case p.at("<"), p.at("::") && p.peekN(1).is("<"):
			p.accept("::")
			if last.Args, err = p.parseGenericArgs(); err != nil {
				return nil, err
			}
		case p.at("("):
			// Fn(A) -> B
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
			if p.accept("->") {
				if _, err := p.parseType(); err != nil {
					return nil, err
				}
			}
			p.markUnsupported("function trait type " + p.spanFrom(start))
		case p.at("!"):
			p.next()
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
			p.markUnsupported("macro in type position " + p.spanFrom(start))
			return nil, nil
		}

		if !(p.at("::") && p.peekN(1).Kind == TokIdent) {
			break
		}
		p.next()
		if len(last.Args) > 0 {
			p.markUnsupported("associated type path " + p.spanFrom(start))
		}
	}
	return last, nil
}

// parseGenericArgs parses <T, U> at the current '<'
func (p *parser) parseGenericArgs() ([]decl.TypeExpr, error) {
	if _, err := p.expect("<"); err != nil {
		return nil, err
	}
	var args []decl.TypeExpr
	for !p.accept(">") {
		tok := p.peek()
		switch {
		case tok.Kind == TokLifetime:
			p.next()
			p.markUnsupported("lifetime argument " + tok.Raw)
		case tok.Kind == TokIdent && (p.peekN(1).is("=") || p.peekN(1).is(":")):
			p.next()
			p.next()
			if err := p.skipUntil(",", ">"); err != nil {
				return nil, err
			}
			p.markUnsupported("associated type binding " + p.spanFrom(tok))
		case tok.Kind == TokNumber, tok.Kind == TokString, tok.Kind == TokChar,
			tok.is("{"), tok.is("-"), tok.is("true"), tok.is("false"):
			if err := p.skipUntil(",", ">"); err != nil {
				return nil, err
			}
			p.markUnsupported("const generic argument " + p.spanFrom(tok))
		default:
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		if !p.at(">") {
			if _, err := p.expect(","); err != nil {
				return nil, err
			}
		}
	}
	return args, nil
}

// parseQualifiedPath consumes <T as Trait>::Name
func (p *parser) parseQualifiedPath(start Token) error {
	if err := p.skipAngles(); err != nil {
		return err
	}
	for p.accept("::") {
		if _, err := p.expectIdent("a path segment"); err != nil {
			return err
		}
		if p.at("<") {
			if _, err := p.parseGenericArgs(); err != nil {
				return err
			}
		}
	}
	p.markUnsupported("qualified path type " + p.spanFrom(start))
	return nil
}

// parseFnPointer consumes [unsafe] [extern "abi"] fn(A, B) -> C
func (p *parser) parseFnPointer(start Token) error {
	p.accept("unsafe")
	if p.accept("extern") && p.peek().Kind == TokString {
		p.next()
	}
	if _, err := p.expect("fn"); err != nil {
		return err
	}
	if !p.at("(") {
		return p.errorAt(p.peek(), ErrorKindSyntax, "expected '(' after fn")
	}
	if err := p.skipBalanced(); err != nil {
		return err
	}
	if p.accept("->") {
		if _, err := p.parseType(); err != nil {
			return err
		}
	}
	p.markUnsupported("function pointer type " + p.spanFrom(start))
	return nil
}

// skipAngles consumes a balanced <...> group at the current '<'
func (p *parser) skipAngles() error {
	if _, err := p.expect("<"); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch {
		case tok.Kind == TokEOF:
			return p.errorAt(tok, ErrorKindEOF, "expected '>'")
		case isOpener(tok):
			if err := p.skipBalanced(); err != nil {
				return err
			}
			continue
		case isCloser(tok):
			return p.errorAt(tok, ErrorKindUnbalanced, "unexpected closing delimiter")
		case tok.is("<"):
			depth++
		case tok.is(">"):
			depth--
		}
		p.next()
	}
	return nil
}
