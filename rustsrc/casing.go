package rustsrc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// renameRule is a serde rename_all rule
type renameRule string

const (
	ruleNone           renameRule = ""
	ruleLower          renameRule = "lowercase"
	ruleUpper          renameRule = "UPPERCASE"
	rulePascal         renameRule = "PascalCase"
	ruleCamel          renameRule = "camelCase"
	ruleSnake          renameRule = "snake_case"
	ruleScreamingSnake renameRule = "SCREAMING_SNAKE_CASE"
	ruleKebab          renameRule = "kebab-case"
	ruleScreamingKebab renameRule = "SCREAMING-KEBAB-CASE"
)

func parseRenameRule(s string) (renameRule, bool) {
	switch r := renameRule(s); r {
	case ruleLower, ruleUpper, rulePascal, ruleCamel, ruleSnake,
		ruleScreamingSnake, ruleKebab, ruleScreamingKebab:
		return r, true
	}
	return ruleNone, false
}

// applyToVariant renames a PascalCase variant name the way serde does
func (r renameRule) applyToVariant(v string) string {
	switch r {
	case ruleLower:
		return strings.ToLower(v)
	case ruleUpper:
		return strings.ToUpper(v)
	case ruleCamel:
		return lowerFirst(v)
	case ruleSnake:
		return toSnakeCase(v)
	case ruleScreamingSnake:
		return strings.ToUpper(toSnakeCase(v))
	case ruleKebab:
		return strings.ReplaceAll(toSnakeCase(v), "_", "-")
	case ruleScreamingKebab:
		return strings.ReplaceAll(strings.ToUpper(toSnakeCase(v)), "_", "-")
	}
	return v
}

// applyToField renames a snake_case field name the way serde does
func (r renameRule) applyToField(f string) string {
	switch r {
	case ruleUpper, ruleScreamingSnake:
		return strings.ToUpper(f)
	case rulePascal:
		return toPascalCase(f)
	case ruleCamel:
		return lowerFirst(toPascalCase(f))
	case ruleKebab:
		return strings.ReplaceAll(f, "_", "-")
	case ruleScreamingKebab:
		return strings.ReplaceAll(strings.ToUpper(f), "_", "-")
	}
	return f
}

// toSnakeCase inserts an underscore before every uppercase letter after
// the first. Acronyms are not kept together: HTTPCode -> h_t_t_p_code.
func toSnakeCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			sb.WriteRune('_')
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// toPascalCase capitalizes the letter after each underscore and drops the
// underscores.
func toPascalCase(s string) string {
	var sb strings.Builder
	capitalize := true
	for _, r := range s {
		switch {
		case r == '_':
			capitalize = true
		case capitalize:
			sb.WriteRune(unicode.ToUpper(r))
			capitalize = false
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
