package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Scan:
// - Block, braced and file-scoped namespace headers update the namespace
// - Incoming state applies until a namespace header is seen
// - Declarations dispatch to the right extractor in source order
// - Comment lines and block comments hide declarations
// - Keywords inside statements or strings do not dispatch
// - Attributes before and on the header line are tolerated
// - Attribute groups with commas, spaces and nested brackets still dispatch
// - Header line numbers are recorded
// - Unterminated input never panics

const shopSource = `using System;

namespace Shop.Orders
{
    /// <summary>An order.</summary>
    [Serializable]
    public class Order : Entity, IAuditable
    {
        public int Id { get; set; }
        public OrderStatus Status { get; set; }

        public decimal Total(bool withTax)
        {
            return withTax ? _total * 1.2m : _total;
        }
    }

    public interface IAuditable
    {
        DateTime CreatedAt { get; }
        void Touch();
    }

    public enum OrderStatus
    {
        Draft,
        Paid,
    }
}`

// Test: a realistic file yields every declaration with its namespace
func TestScan_File(t *testing.T) {
	t.Parallel()

	result, state := Scan(strings.Split(shopSource, "\n"), State{})

	require.Len(t, result.Classes, 1)
	order := result.Classes[0]
	assert.Equal(t, "Order", order.Name)
	assert.Equal(t, "Shop.Orders", order.Namespace)
	assert.Equal(t, []string{"Entity"}, order.BaseTypes)
	assert.Equal(t, []string{"IAuditable"}, order.ImplementedInterfaces)
	assert.Len(t, order.Properties, 2)
	require.Len(t, order.Methods, 1)
	assert.Equal(t, "Total", order.Methods[0].Name)
	assert.Equal(t, 7, order.Location.Line)

	require.Len(t, result.Interfaces, 1)
	assert.Equal(t, "IAuditable", result.Interfaces[0].Name)
	assert.Len(t, result.Interfaces[0].Properties, 1)
	assert.Len(t, result.Interfaces[0].Methods, 1)

	require.Len(t, result.Enums, 1)
	assert.Equal(t, []string{"Draft", "Paid"}, result.Enums[0].Values)
	assert.Equal(t, "Shop.Orders", result.Enums[0].Namespace)

	assert.Equal(t, "Shop.Orders", state.Namespace)
}

// Test: namespace header forms
func TestScan_NamespaceForms(t *testing.T) {
	t.Parallel()

	lines := []string{
		"namespace Alpha;",
		"class A {",
		"}",
		"namespace Beta {",
		"class B {",
		"}",
		"}",
		"namespace Gamma",
		"enum C { X }",
	}
	result, state := Scan(lines, State{})

	require.Len(t, result.Classes, 2)
	assert.Equal(t, "Alpha", result.Classes[0].Namespace)
	assert.Equal(t, "Beta", result.Classes[1].Namespace)
	require.Len(t, result.Enums, 1)
	assert.Equal(t, "Gamma", result.Enums[0].Namespace)
	assert.Equal(t, State{Namespace: "Gamma"}, state)
}

// Test: the incoming state is the starting namespace
func TestScan_IncomingState(t *testing.T) {
	t.Parallel()

	result, state := Scan([]string{"class A {", "}"}, State{Namespace: "Carried"})

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "Carried", result.Classes[0].Namespace)
	assert.Equal(t, "Carried", state.Namespace)
}

// Test: comments hide declarations
func TestScan_Comments(t *testing.T) {
	t.Parallel()

	lines := []string{
		"// public class Fake {}",
		"/*",
		"public class Hidden",
		"{",
		"}",
		"*/",
		"public class Real { }",
	}
	result, _ := Scan(lines, State{})

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "Real", result.Classes[0].Name)
}

// Test: keywords that are not declaration headers are ignored
func TestScan_NoFalseDispatch(t *testing.T) {
	t.Parallel()

	lines := []string{
		`string kind = "class Foo";`,
		"var e = x is enum;",
		"Use(interface);",
		"public static partial class Helpers { }",
		"[Flags] internal enum Mode { A, B }",
	}
	result, _ := Scan(lines, State{})

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "Helpers", result.Classes[0].Name)
	require.Len(t, result.Enums, 1)
	assert.Equal(t, "Mode", result.Enums[0].Name)
	assert.Empty(t, result.Interfaces)
}

// Test: unterminated and empty input
func TestScan_Degraded(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		result, _ := Scan([]string{"public class Broken {", "public int X { get; set; }"}, State{})
		require.Len(t, result.Classes, 1)
		assert.Len(t, result.Classes[0].Properties, 1)
	})

	result, state := Scan(nil, State{})
	assert.Equal(t, 0, result.Len())
	assert.Equal(t, "", state.Namespace)
}

// Test: attribute groups on the header line
func TestScan_AttributeGroupsOnHeader(t *testing.T) {
	t.Parallel()

	lines := []string{
		"[Flags, Serializable]",
		"public enum A",
		"{",
		"X,",
		"}",
		"[Flags, Serializable] public enum B",
		"{",
		"Y,",
		"}",
		`[Obsolete("use X")] public class C`,
		"{",
		"    public int Id { get; set; }",
		"}",
		`[DebuggerDisplay("[{Id}]")] [Serializable] public interface ID`,
		"{",
		"    void Run();",
		"}",
	}
	result, _ := Scan(lines, State{})

	require.Len(t, result.Enums, 2)
	assert.Equal(t, "A", result.Enums[0].Name)
	assert.Equal(t, "B", result.Enums[1].Name)
	assert.Equal(t, []string{"Y"}, result.Enums[1].Values)
	assert.Equal(t, 6, result.Enums[1].Location.Line)

	require.Len(t, result.Classes, 1)
	assert.Equal(t, "C", result.Classes[0].Name)
	assert.Len(t, result.Classes[0].Properties, 1)

	require.Len(t, result.Interfaces, 1)
	assert.Equal(t, "ID", result.Interfaces[0].Name)
	assert.Len(t, result.Interfaces[0].Methods, 1)
}
