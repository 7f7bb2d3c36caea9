package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for ExtractBlock:
// - Empty input returns an empty block
// - Input without braces returns every line
// - Nested blocks stop at the line that balances depth
// - Extraction can start at a later line
// - Comment lines and block comments are skipped and not counted
// - Unterminated blocks return what was collected
// - Lines are trimmed
// - Cursor movement never leaves the buffer

// Test: empty input returns empty output
func TestExtractBlock_Empty(t *testing.T) {
	t.Parallel()

	block, next := ExtractBlock(0, NewCursor(nil))
	assert.Empty(t, block)
	assert.True(t, next.Done())
}

// Test: without braces every line is returned
func TestExtractBlock_NoBraces(t *testing.T) {
	t.Parallel()

	lines := []string{"line1", "line2", "line3"}
	block, next := ExtractBlock(0, NewCursor(lines))
	assert.Equal(t, lines, block)
	assert.True(t, next.Done())
}

// Test: nested braces end at the balancing line, excluding what follows
func TestExtractBlock_StopsAtBalancingLine(t *testing.T) {
	t.Parallel()

	lines := []string{"{", "if (x>0) {", "x++;", "}", "}", "outside"}
	block, next := ExtractBlock(1, NewCursor(lines))

	assert.Equal(t, []string{"{", "if (x>0) {", "x++;", "}", "}"}, block)
	assert.Equal(t, 5, next.Pos())
	assert.Equal(t, "outside", next.Line())
}

// Test: the longer nested scenario keeps everything through the second close
func TestExtractBlock_NestedWithStatement(t *testing.T) {
	t.Parallel()

	lines := []string{"{", "int x = 1;", "if (x > 0) {", "x++;", "}", "}", "outside"}
	block, _ := ExtractBlock(1, NewCursor(lines))

	assert.Equal(t, []string{"{", "int x = 1;", "if (x > 0) {", "x++;", "}", "}"}, block)
}

// Test: extraction starts at the cursor position
func TestExtractBlock_StartsAtCursor(t *testing.T) {
	t.Parallel()

	lines := []string{"// comment", "{", "code;", "}"}
	block, next := ExtractBlock(1, NewCursor(lines).Next())

	assert.Equal(t, []string{"{", "code;", "}"}, block)
	assert.True(t, next.Done())
}

// Test: comments are neither collected nor depth-counted
func TestExtractBlock_SkipsComments(t *testing.T) {
	t.Parallel()

	lines := []string{
		"{",
		"// }",
		"",
		"/* block",
		"}",
		"still comment */",
		"x;",
		"/* single */",
		"/* lead */ y;",
		"}",
		"after",
	}
	block, next := ExtractBlock(0, NewCursor(lines))

	assert.Equal(t, []string{"{", "x;", "y;", "}"}, block)
	assert.Equal(t, "after", next.Line())
}

// Test: an unterminated block returns the accumulated lines
func TestExtractBlock_Unterminated(t *testing.T) {
	t.Parallel()

	block, next := ExtractBlock(0, NewCursor([]string{"{", "a;", "{", "b;", "}"}))
	assert.Equal(t, []string{"{", "a;", "{", "b;", "}"}, block)
	assert.True(t, next.Done())
}

// Test: collected lines are trimmed
func TestExtractBlock_TrimsLines(t *testing.T) {
	t.Parallel()

	block, _ := ExtractBlock(0, NewCursor([]string{"  {  ", "\tx;", " } "}))
	assert.Equal(t, []string{"{", "x;", "}"}, block)
}

// Test: cursor is immutable and clamps at both ends
func TestCursor(t *testing.T) {
	t.Parallel()

	c := NewCursor([]string{"a", "b"})
	next := c.Next()

	assert.Equal(t, 0, c.Pos())
	assert.Equal(t, "a", c.Line())
	assert.Equal(t, "b", next.Line())
	assert.Equal(t, 2, c.Len())

	end := c.Advance(10)
	assert.True(t, end.Done())
	assert.Equal(t, "", end.Line())
	assert.Equal(t, 2, end.Pos())
	assert.Equal(t, 0, c.Advance(-3).Pos())
}
