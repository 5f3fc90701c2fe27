package rustsrc

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// ErrorKind categorizes parse errors for programmatic handling
type ErrorKind string

const (
	ErrorKindSyntax     ErrorKind = "syntax"      // Malformed token or unexpected token
	ErrorKindUnbalanced ErrorKind = "unbalanced"  // Unclosed or stray delimiter
	ErrorKindEOF        ErrorKind = "unexpected_eof"
)

// ErrorContext selects how a ParseError is rendered
type ErrorContext int

const (
	ErrorContextPlain    ErrorContext = iota // Logs, reports, tests
	ErrorContextTerminal                     // Colored CLI output
)

// ParseError is a fatal error for one source file. Constructs the
// translator cannot express are not parse errors; they lower to
// decl.Unsupported instead.
type ParseError struct {
	Err         error     // Underlying error
	Kind        ErrorKind // Error category
	Message     string    // Human-readable message
	File        string    // Source file name, may be empty
	Pos         Position  // Where the error occurred
	Token       string    // Offending token text (optional)
	Suggestions []string  // Possible fixes
}

// Error implements error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// FormatError generates context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextTerminal {
		return e.formatTerminalError()
	}
	return e.formatPlainError()
}

func (e *ParseError) location() string {
	if e.File == "" {
		return e.Pos.String()
	}
	return e.File + ":" + e.Pos.String()
}

// formatPlainError creates a concise single-line error for logs
func (e *ParseError) formatPlainError() string {
	msg := e.location() + ": " + e.Message
	if e.Token != "" {
		msg += fmt.Sprintf(" (found %q)", e.Token)
	}
	if len(e.Suggestions) > 0 {
		msg += ". Suggestions: " + strings.Join(e.Suggestions, ", ")
	}
	return msg
}

// formatTerminalError creates rich colored error for terminal
func (e *ParseError) formatTerminalError() string {
	var sb strings.Builder
	sb.WriteString(pterm.Red(e.Message))

	sb.WriteString("\n\n")
	sb.WriteString(pterm.LightCyan("Context:"))
	sb.WriteString(fmt.Sprintf("\n  %s %s", pterm.Yellow("Location:"), e.location()))
	if e.Token != "" {
		sb.WriteString(fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token))
	}

	if len(e.Suggestions) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(pterm.Green("Suggestions:"))
		for _, s := range e.Suggestions {
			sb.WriteString("\n  • ")
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// Unwrap for errors.Is/As compatibility
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError with the given kind and message
func NewParseError(kind ErrorKind, pos Position, message string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: message,
		Pos:     pos,
	}
}

// WithFile sets the source file name
func (e *ParseError) WithFile(file string) *ParseError {
	e.File = file
	return e
}

// WithToken sets the token text that caused the error
func (e *ParseError) WithToken(token string) *ParseError {
	e.Token = token
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(suggestion string) *ParseError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithUnderlying sets the underlying error
func (e *ParseError) WithUnderlying(err error) *ParseError {
	e.Err = err
	return e
}
