package rustsrc

// meta is one entry of an attribute argument list: a bare word
// (untagged), a name-value pair (rename = "x") or a nested list
// (rename(serialize = "x")).
type meta struct {
	name     string
	value    string
	hasValue bool
	list     []meta
}

// serdeAttrs is the merged content of every #[serde(...)] attribute on one
// node. Options that do not change the JSON shape are ignored.
type serdeAttrs struct {
	rename      string
	renameAll   renameRule
	badRule     string
	tag         string
	content     string
	hasTag      bool
	hasContent  bool
	untagged    bool
	skip        bool
	flatten     bool
	transparent bool
}

// parseOuterAttrs consumes #[...] attributes in front of an item, field or
// variant and returns the serde options among them.
func (p *parser) parseOuterAttrs() (serdeAttrs, error) {
	var sa serdeAttrs
	for p.at("#") && p.peekN(1).is("[") {
		p.next()
		inner, err := p.groupTokens()
		if err != nil {
			return sa, err
		}
		if len(inner) >= 3 && inner[0].Kind == TokIdent && inner[0].Value == "serde" &&
			inner[1].is("(") && inner[len(inner)-1].is(")") {
			sa.merge(parseMetas(inner[2 : len(inner)-1]))
		}
	}
	return sa, nil
}

func (sa *serdeAttrs) merge(metas []meta) {
	for _, m := range metas {
		switch m.name {
		case "rename":
			if v, ok := m.serializeValue(); ok {
				sa.rename = v
			}
		case "rename_all":
			if v, ok := m.serializeValue(); ok {
				if rule, ok := parseRenameRule(v); ok {
					sa.renameAll = rule
				} else {
					sa.badRule = v
				}
			}
		case "tag":
			sa.tag, sa.hasTag = m.value, true
		case "content":
			sa.content, sa.hasContent = m.value, true
		case "untagged":
			sa.untagged = true
		case "skip", "skip_serializing":
			sa.skip = true
		case "flatten":
			sa.flatten = true
		case "transparent":
			sa.transparent = true
		}
	}
}

// serializeValue returns the value of name = "v" or, for the split form
// name(serialize = "v", deserialize = "w"), the serialize side.
func (m meta) serializeValue() (string, bool) {
	if m.hasValue {
		return m.value, true
	}
	for _, sub := range m.list {
		if sub.name == "serialize" && sub.hasValue {
			return sub.value, true
		}
	}
	return "", false
}

// parseMetas parses a comma separated attribute argument list. toks is
// known to be balanced.
func parseMetas(toks []Token) []meta {
	var out []meta
	i := 0
	for i < len(toks) {
		var m meta
		if toks[i].Kind == TokIdent {
			m.name = toks[i].Value
			i++
			switch {
			case i < len(toks) && toks[i].is("="):
				i++
				if i < len(toks) {
					m.value, m.hasValue = literalValue(toks[i]), true
					i++
				}
			case i < len(toks) && toks[i].is("("):
				end := matchClose(toks, i)
				m.list = parseMetas(toks[i+1 : end])
				i = end + 1
			}
		}
		// skip to the next top-level comma
		depth := 0
		for i < len(toks) {
			t := toks[i]
			i++
			if depth == 0 && t.is(",") {
				break
			}
			if isOpener(t) {
				depth++
			} else if isCloser(t) {
				depth--
			}
		}
		if m.name != "" {
			out = append(out, m)
		}
	}
	return out
}

func literalValue(t Token) string {
	if t.Kind == TokString {
		return t.Value
	}
	return t.Raw
}

// matchClose returns the index of the closer matching the opener at i
func matchClose(toks []Token, i int) int {
	depth := 0
	for j := i; j < len(toks); j++ {
		if isOpener(toks[j]) {
			depth++
		} else if isCloser(toks[j]) {
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(toks) - 1
}

var closerFor = map[string]string{"(": ")", "[": "]", "{": "}"}

func isOpener(t Token) bool {
	return t.Kind == TokPunct && (t.Value == "(" || t.Value == "[" || t.Value == "{")
}

func isCloser(t Token) bool {
	return t.Kind == TokPunct && (t.Value == ")" || t.Value == "]" || t.Value == "}")
}
