package scanner

// Cursor is a read position over an immutable line buffer.
// It is passed by value; every move returns a new Cursor.
type Cursor struct {
	lines []string
	pos   int
}

// NewCursor positions a cursor at the first line.
func NewCursor(lines []string) Cursor {
	return Cursor{lines: lines}
}

// Pos returns the 0-indexed line position.
func (c Cursor) Pos() int {
	return c.pos
}

// Len returns the number of lines in the buffer.
func (c Cursor) Len() int {
	return len(c.lines)
}

// Done reports whether the cursor is past the last line.
func (c Cursor) Done() bool {
	return c.pos >= len(c.lines)
}

// Line returns the raw line at the cursor, or "" when done.
func (c Cursor) Line() string {
	if c.Done() {
		return ""
	}
	return c.lines[c.pos]
}

// Next returns a cursor one line further.
func (c Cursor) Next() Cursor {
	return c.Advance(1)
}

// Advance returns a cursor n lines further, clamped to the buffer end.
func (c Cursor) Advance(n int) Cursor {
	pos := c.pos + n
	if pos > len(c.lines) {
		pos = len(c.lines)
	}
	if pos < 0 {
		pos = 0
	}
	return Cursor{lines: c.lines, pos: pos}
}
