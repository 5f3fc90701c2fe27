package rustsrc

import "fmt"

// Position represents a line/column position in source text
// Uses LSP conventions: 1-based line numbers, 0-based character offsets
type Position struct {
	Line      int `json:"line"`      // 1-based line number
	Character int `json:"character"` // 0-based character offset within line
	Offset    int `json:"offset"`    // 0-based byte offset in entire source
}

// String renders the position as line:column with a 1-based column, the
// way compilers report it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Character+1)
}

// Range represents a source code span from start to end position
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// PositionTracker maintains line/column/offset state during tokenization
type PositionTracker struct {
	source    string
	line      int // 1-based
	character int // 0-based within line, counted in runes
	offset    int // 0-based in source
}

// NewPositionTracker creates a tracker starting at beginning of source
func NewPositionTracker(source string) *PositionTracker {
	return &PositionTracker{
		source: source,
		line:   1,
	}
}

// Advance updates position after consuming text
// Handles newlines by incrementing line and resetting character position
func (pt *PositionTracker) Advance(text string) {
	for _, ch := range text {
		if ch == '\n' {
			pt.line++
			pt.character = 0
		} else {
			pt.character++
		}
		pt.offset += len(string(ch))
	}
}

// AdvanceTo moves forward to byte offset off, which must not be before the
// current offset.
func (pt *PositionTracker) AdvanceTo(off int) {
	if off > len(pt.source) {
		off = len(pt.source)
	}
	if off > pt.offset {
		pt.Advance(pt.source[pt.offset:off])
	}
}

// CurrentPosition returns the current position snapshot
func (pt *PositionTracker) CurrentPosition() Position {
	return Position{
		Line:      pt.line,
		Character: pt.character,
		Offset:    pt.offset,
	}
}
