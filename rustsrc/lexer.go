package rustsrc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a lexical token
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokLifetime // 'a
	TokString   // "..", b"..", r#".."#
	TokChar     // 'x', b'x'
	TokNumber
	TokPunct
)

func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "end of file"
	case TokIdent:
		return "identifier"
	case TokLifetime:
		return "lifetime"
	case TokString:
		return "string literal"
	case TokChar:
		return "char literal"
	case TokNumber:
		return "number"
	case TokPunct:
		return "punctuation"
	}
	return "unknown"
}

// Token is one lexical token. For identifiers Value has any r# prefix
// removed; for string literals Value is the unescaped content. Raw is the
// exact source text.
type Token struct {
	Kind  TokenKind
	Value string
	Raw   string
	Pos   Position
	End   int // byte offset just past the token
}

// is reports whether t is punctuation or a keyword-like identifier with
// the given text. Raw identifiers never match keywords.
func (t Token) is(text string) bool {
	switch t.Kind {
	case TokPunct:
		return t.Value == text
	case TokIdent:
		return t.Raw == text
	}
	return false
}

// multi-character punctuation; everything else is lexed one rune at a time
// so that nested generic closers such as >> stay separate tokens.
var multiPunct = []string{"::", "->", "=>"}

const singlePunct = "<>()[]{},;:=#!&*?+-./@|^%~$"

// Lexer turns Rust source into tokens. Comments, including doc comments,
// are discarded.
type Lexer struct {
	src string
	pt  *PositionTracker
	off int
}

// NewLexer creates a lexer over src
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, pt: NewPositionTracker(src)}
}

// Tokenize lexes the whole input. The final token is always TokEOF.
func Tokenize(src string) ([]Token, error) {
	lx := NewLexer(src)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks, nil
		}
	}
}

func (lx *Lexer) peekRune(ahead int) rune {
	off := lx.off
	for i := 0; ; i++ {
		if off >= len(lx.src) {
			return 0
		}
		r, size := utf8.DecodeRuneInString(lx.src[off:])
		if i == ahead {
			return r
		}
		off += size
	}
}

func (lx *Lexer) pos() Position {
	lx.pt.AdvanceTo(lx.off)
	return lx.pt.CurrentPosition()
}

func (lx *Lexer) errorf(kind ErrorKind, at Position, msg string) *ParseError {
	return NewParseError(kind, at, msg)
}

// Next returns the next token
func (lx *Lexer) Next() (Token, error) {
	if err := lx.skipTrivia(); err != nil {
		return Token{}, err
	}
	start := lx.pos()
	if lx.off >= len(lx.src) {
		return Token{Kind: TokEOF, Pos: start, End: lx.off}, nil
	}

	r := lx.peekRune(0)
	switch {
	case r == 'b' && lx.peekRune(1) == '\'':
		lx.off++
		return lx.lexChar(start)
	case (r == 'b' && lx.peekRune(1) == '"') || (r == 'c' && lx.peekRune(1) == '"'):
		lx.off++
		return lx.lexString(start)
	case r == 'r' && (lx.peekRune(1) == '"' || (lx.peekRune(1) == '#' && (lx.peekRune(2) == '"' || lx.peekRune(2) == '#'))):
		lx.off++
		return lx.lexRawString(start)
	case r == 'b' && lx.peekRune(1) == 'r' && (lx.peekRune(2) == '"' || lx.peekRune(2) == '#'):
		lx.off += 2
		return lx.lexRawString(start)
	case r == 'r' && lx.peekRune(1) == '#' && isIdentStart(lx.peekRune(2)):
		lx.off += 2
		tok := lx.lexIdent(start)
		tok.Raw = lx.src[start.Offset:lx.off]
		return tok, nil
	case isIdentStart(r):
		return lx.lexIdent(start), nil
	case r >= '0' && r <= '9':
		return lx.lexNumber(start), nil
	case r == '"':
		return lx.lexString(start)
	case r == '\'':
		return lx.lexQuote(start)
	}

	for _, p := range multiPunct {
		if strings.HasPrefix(lx.src[lx.off:], p) {
			lx.off += len(p)
			return Token{Kind: TokPunct, Value: p, Raw: p, Pos: start, End: lx.off}, nil
		}
	}
	if strings.ContainsRune(singlePunct, r) {
		lx.off++
		s := string(r)
		return Token{Kind: TokPunct, Value: s, Raw: s, Pos: start, End: lx.off}, nil
	}

	return Token{}, lx.errorf(ErrorKindSyntax, start, "unexpected character").
		WithToken(string(r))
}

// skipTrivia skips whitespace, line comments and nested block comments
func (lx *Lexer) skipTrivia() error {
	for lx.off < len(lx.src) {
		rest := lx.src[lx.off:]
		switch {
		case strings.HasPrefix(rest, "//"):
			nl := strings.IndexByte(rest, '\n')
			if nl < 0 {
				lx.off = len(lx.src)
			} else {
				lx.off += nl + 1
			}
		case strings.HasPrefix(rest, "/*"):
			start := lx.pos()
			depth := 0
			i := 0
			for {
				if i >= len(rest) {
					return lx.errorf(ErrorKindEOF, start, "unterminated block comment").
						WithSuggestion("close the comment with */")
				}
				if strings.HasPrefix(rest[i:], "/*") {
					depth++
					i += 2
					continue
				}
				if strings.HasPrefix(rest[i:], "*/") {
					depth--
					i += 2
					if depth == 0 {
						break
					}
					continue
				}
				i++
			}
			lx.off += i
		default:
			r, size := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				return nil
			}
			lx.off += size
		}
	}
	return nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (lx *Lexer) lexIdent(start Position) Token {
	begin := lx.off
	for lx.off < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.off:])
		if !isIdentContinue(r) {
			break
		}
		lx.off += size
	}
	value := lx.src[begin:lx.off]
	return Token{Kind: TokIdent, Value: value, Raw: value, Pos: start, End: lx.off}
}

func (lx *Lexer) lexNumber(start Position) Token {
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]
		if c == '.' {
			// 1.5 but not the range 1..2 or a method call 1.max()
			if lx.off+1 < len(lx.src) && lx.src[lx.off+1] >= '0' && lx.src[lx.off+1] <= '9' {
				lx.off++
				continue
			}
			break
		}
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			lx.off++
			continue
		}
		break
	}
	raw := lx.src[start.Offset:lx.off]
	return Token{Kind: TokNumber, Value: raw, Raw: raw, Pos: start, End: lx.off}
}

// lexString lexes "..." starting at the opening quote
func (lx *Lexer) lexString(start Position) (Token, error) {
	lx.off++ // opening quote
	var sb strings.Builder
	for {
		if lx.off >= len(lx.src) {
			return Token{}, lx.errorf(ErrorKindEOF, start, "unterminated string literal").
				WithSuggestion(`close the string with "`)
		}
		c := lx.src[lx.off]
		switch c {
		case '"':
			lx.off++
			return Token{Kind: TokString, Value: sb.String(), Raw: lx.src[start.Offset:lx.off], Pos: start, End: lx.off}, nil
		case '\\':
			if lx.off+1 >= len(lx.src) {
				lx.off++
				continue
			}
			esc := lx.src[lx.off+1]
			lx.off += 2
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '\n':
				// line continuation: skip leading whitespace on the next line
				for lx.off < len(lx.src) && strings.IndexByte(" \t\r\n", lx.src[lx.off]) >= 0 {
					lx.off++
				}
			default:
				// \\ \" \' and the \x / \u forms, kept verbatim past the backslash
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(c)
			lx.off++
		}
	}
}

// lexRawString lexes r#"..."# starting after the r
func (lx *Lexer) lexRawString(start Position) (Token, error) {
	hashes := 0
	for lx.off < len(lx.src) && lx.src[lx.off] == '#' {
		hashes++
		lx.off++
	}
	if lx.off >= len(lx.src) || lx.src[lx.off] != '"' {
		return Token{}, lx.errorf(ErrorKindSyntax, start, "malformed raw string literal").
			WithToken(lx.src[start.Offset:lx.off])
	}
	lx.off++
	closer := `"` + strings.Repeat("#", hashes)
	end := strings.Index(lx.src[lx.off:], closer)
	if end < 0 {
		return Token{}, lx.errorf(ErrorKindEOF, start, "unterminated raw string literal").
			WithSuggestion("close the string with " + closer)
	}
	value := lx.src[lx.off : lx.off+end]
	lx.off += end + len(closer)
	return Token{Kind: TokString, Value: value, Raw: lx.src[start.Offset:lx.off], Pos: start, End: lx.off}, nil
}

// lexQuote distinguishes a lifetime 'a from a char literal 'a'
func (lx *Lexer) lexQuote(start Position) (Token, error) {
	r1 := lx.peekRune(1)
	r2 := lx.peekRune(2)
	if r1 != '\\' && r2 != '\'' && isIdentStart(r1) {
		lx.off++ // quote
		ident := lx.lexIdent(start)
		raw := lx.src[start.Offset:lx.off]
		return Token{Kind: TokLifetime, Value: ident.Value, Raw: raw, Pos: start, End: lx.off}, nil
	}
	return lx.lexChar(start)
}

// lexChar lexes 'x' starting at the opening quote
func (lx *Lexer) lexChar(start Position) (Token, error) {
	lx.off++ // opening quote
	for lx.off < len(lx.src) {
		c := lx.src[lx.off]
		if c == '\\' {
			lx.off += 2
			continue
		}
		if c == '\n' {
			break
		}
		lx.off++
		if c == '\'' {
			raw := lx.src[start.Offset:lx.off]
			return Token{Kind: TokChar, Value: raw, Raw: raw, Pos: start, End: lx.off}, nil
		}
	}
	return Token{}, lx.errorf(ErrorKindSyntax, start, "unterminated char literal").
		WithSuggestion("close the literal with '")
}
