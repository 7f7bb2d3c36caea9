package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/classdiagram/internal/model"
)

// Test Plan for ExtractEnum:
// - Header modifier, name and namespace are read for every modifier
// - Trailing commas and inline comments are stripped from values
// - Blank, comment and bare brace lines add nothing
// - Missing name yields UnknownEnum while values are still read
// - Initializers and attributes are removed from values
// - Attributes with nested brackets are removed whole
// - Single-line enums are split from the header
// - Duplicate values are kept in order
// - The returned cursor resumes after the closing line

// Test: modifier, name and values for each modifier form
func TestExtractEnum_ModifierAndName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   model.AccessModifier
	}{
		{"public enum Color", model.Public},
		{"private enum Color", model.Private},
		{"protected internal enum Color", model.ProtectedInternal},
		{"private protected enum Color", model.PrivateProtected},
		{"protected enum Color", model.Protected},
		{"enum Color", model.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			lines := []string{tt.header, "{", "    Red,", "    Green,", "    Blue", "}"}
			e, _ := ExtractEnum(NewCursor(lines), "TestNamespace")

			assert.Equal(t, "Color", e.Name)
			assert.Equal(t, "TestNamespace", e.Namespace)
			assert.Equal(t, tt.want, e.AccessModifier)
			assert.Equal(t, []string{"Red", "Green", "Blue"}, e.Values)
		})
	}
}

// Test: commas and inline comments are stripped
func TestExtractEnum_ValuesWithComments(t *testing.T) {
	t.Parallel()

	lines := []string{
		"public enum Status",
		"{",
		"    Active, // active status",
		"    Inactive , // not active",
		"    Pending // waiting",
		"}",
	}
	e, _ := ExtractEnum(NewCursor(lines), "NS")
	assert.Equal(t, []string{"Active", "Inactive", "Pending"}, e.Values)
}

// Test: blank, comment and bare brace lines contribute nothing
func TestExtractEnum_IgnoresEmptyLinesAndBraces(t *testing.T) {
	t.Parallel()

	lines := []string{
		"enum EmptyTest",
		"{",
		"",
		"    // comment",
		"    Value1,",
		"    {",
		"    /* note */",
		"    Value2",
		"}",
	}
	e, _ := ExtractEnum(NewCursor(lines), "NS2")
	assert.Equal(t, []string{"Value1", "Value2"}, e.Values)
}

// Test: malformed header keeps scanning values
func TestExtractEnum_UnknownName(t *testing.T) {
	t.Parallel()

	lines := []string{"public enum", "{", "    A,", "    B", "}"}
	e, _ := ExtractEnum(NewCursor(lines), "NS3")

	assert.Equal(t, "UnknownEnum", e.Name)
	assert.Equal(t, model.Public, e.AccessModifier)
	assert.Equal(t, []string{"A", "B"}, e.Values)
}

// Test: initializers and attributes are dropped from values
func TestExtractEnum_InitializersAndAttributes(t *testing.T) {
	t.Parallel()

	lines := []string{
		"[Flags]",
		"public enum Access : byte",
		"{",
		`    [Description("none")] None = 0,`,
		"    [Obsolete]",
		"    Read = 1 << 0,",
		"    Write = 1 << 1",
		"}",
	}
	e, _ := ExtractEnum(NewCursor(lines).Next(), "")

	assert.Equal(t, "Access", e.Name)
	assert.Equal(t, []string{"None", "Read", "Write"}, e.Values)
}

// Test: single-line enum bodies are read from the header
func TestExtractEnum_SingleLine(t *testing.T) {
	t.Parallel()

	lines := []string{"public enum Color { Red, Green = 2, Blue }", "class Next"}
	e, next := ExtractEnum(NewCursor(lines), "")

	assert.Equal(t, "Color", e.Name)
	assert.Equal(t, []string{"Red", "Green", "Blue"}, e.Values)
	assert.Equal(t, "class Next", next.Line())
}

// Test: values on the header line after an opening brace are kept
func TestExtractEnum_OpenBraceOnHeader(t *testing.T) {
	t.Parallel()

	lines := []string{"enum Size {", "Small,", "Large", "}"}
	e, next := ExtractEnum(NewCursor(lines), "")

	assert.Equal(t, []string{"Small", "Large"}, e.Values)
	assert.True(t, next.Done())
}

// Test: duplicates are not removed
func TestExtractEnum_DuplicatesKept(t *testing.T) {
	t.Parallel()

	lines := []string{"enum Dup", "{", "A,", "B,", "A,", "}"}
	e, _ := ExtractEnum(NewCursor(lines), "")
	assert.Equal(t, []string{"A", "B", "A"}, e.Values)
}

// Test: cursor resumes after the closing line and records the header line
func TestExtractEnum_CursorAndLocation(t *testing.T) {
	t.Parallel()

	lines := []string{"using System;", "", "enum E", "{", "X", "}", "after"}
	e, next := ExtractEnum(NewCursor(lines).Advance(2), "")

	require.Equal(t, []string{"X"}, e.Values)
	assert.Equal(t, 3, e.Location.Line)
	assert.Equal(t, "after", next.Line())
}

// Test: an unterminated enum returns collected values
func TestExtractEnum_Unterminated(t *testing.T) {
	t.Parallel()

	e, next := ExtractEnum(NewCursor([]string{"enum Open", "{", "A,", "B"}), "")
	assert.Equal(t, []string{"A", "B"}, e.Values)
	assert.True(t, next.Done())
}

// Test: attribute arguments containing brackets
func TestExtractEnum_NestedAttributeBrackets(t *testing.T) {
	t.Parallel()

	lines := []string{
		"enum Level",
		"{",
		`    [Display(Name = "[low]")] Low,`,
		"    High",
		"}",
	}
	e, _ := ExtractEnum(NewCursor(lines), "")

	assert.Equal(t, []string{"Low", "High"}, e.Values)
}
