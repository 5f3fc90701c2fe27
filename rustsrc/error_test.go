package rustsrc

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/teranos/rs2ts/errors"
)

func TestParseError_Plain(t *testing.T) {
	pe := NewParseError(ErrorKindSyntax, Position{Line: 3, Character: 4}, `expected "="`).
		WithFile("lib.rs").
		WithToken("i32").
		WithSuggestion("type aliases look like: type A = B;")

	assert.Equal(t, `lib.rs:3:5: expected "=" (found "i32"). Suggestions: type aliases look like: type A = B;`, pe.Error())
}

func TestParseError_NoFile(t *testing.T) {
	pe := NewParseError(ErrorKindEOF, Position{Line: 1, Character: 0}, "unterminated string literal")
	assert.Equal(t, "1:1: unterminated string literal", pe.Error())
}

func TestParseError_Terminal(t *testing.T) {
	pterm.DisableColor()
	t.Cleanup(pterm.EnableColor)

	pe := NewParseError(ErrorKindUnbalanced, Position{Line: 2, Character: 0}, "mismatched closing delimiter").
		WithFile("a.rs").
		WithToken("]").
		WithSuggestion(`"(" opened at 1:3 expects ")"`)

	out := pe.FormatError(ErrorContextTerminal)
	assert.Contains(t, out, "mismatched closing delimiter")
	assert.Contains(t, out, "Location: a.rs:2:1")
	assert.Contains(t, out, "Token: ']'")
	assert.Contains(t, out, `• "(" opened at 1:3 expects ")"`)
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	pe := NewParseError(ErrorKindSyntax, Position{Line: 1}, "bad").WithUnderlying(cause)
	assert.True(t, errors.Is(pe, cause))

	wrapped := errors.Wrap(pe, "parsing lib.rs")
	var got *ParseError
	assert.True(t, errors.As(wrapped, &got))
	assert.Equal(t, ErrorKindSyntax, got.Kind)
}
