package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for model:
// - Kind.Sentinel returns the fixed placeholder per keyword
// - DeclName resolves to its value or to the sentinel
// - Resolved("") is treated as unresolved
// - AccessModifier.String falls back to the default
// - AccessModifier serializes as the keyword
// - Result.Merge preserves order
// - Result.FilterNamespace keeps child namespaces only

func TestKind_Sentinel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "UnknownClass", KindClass.Sentinel())
	assert.Equal(t, "UnknownInterface", KindInterface.Sentinel())
	assert.Equal(t, "UnknownEnum", KindEnum.Sentinel())
}

func TestDeclName_Resolve(t *testing.T) {
	t.Parallel()

	name := Resolved("Order")
	assert.True(t, name.IsResolved())
	assert.Equal(t, "Order", name.Resolve(KindClass))

	missing := Unresolved()
	assert.False(t, missing.IsResolved())
	assert.Equal(t, "UnknownInterface", missing.Resolve(KindInterface))

	empty := Resolved("")
	assert.False(t, empty.IsResolved())
	assert.Equal(t, "UnknownEnum", empty.Resolve(KindEnum))
}

func TestAccessModifier_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "protected internal", ProtectedInternal.String())
	assert.Equal(t, "internal", AccessModifier("").String())
}

func TestAccessModifier_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Property{Name: "Id", TypeName: "int", AccessModifier: PrivateProtected})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"access":"private protected"`)
}

func TestResult_MergePreservesOrder(t *testing.T) {
	t.Parallel()

	r := NewResult()
	r.AddClass(Class{Name: "A"})
	r.AddEnum(Enum{Name: "E1"})

	other := NewResult()
	other.AddClass(Class{Name: "B"})
	other.AddInterface(Interface{Name: "IB"})
	other.AddEnum(Enum{Name: "E2"})

	r.Merge(other)
	r.Merge(nil)

	require.Len(t, r.Classes, 2)
	assert.Equal(t, "A", r.Classes[0].Name)
	assert.Equal(t, "B", r.Classes[1].Name)
	assert.Equal(t, []string{"E1", "E2"}, []string{r.Enums[0].Name, r.Enums[1].Name})
	assert.Equal(t, 5, r.Len())
}

func TestResult_FilterNamespace(t *testing.T) {
	t.Parallel()

	r := NewResult()
	r.AddClass(Class{Name: "A", Namespace: "Shop"})
	r.AddClass(Class{Name: "B", Namespace: "Shop.Orders"})
	r.AddClass(Class{Name: "C", Namespace: "Shopping"})
	r.AddEnum(Enum{Name: "E", Namespace: ""})

	filtered := r.FilterNamespace("Shop")
	require.Len(t, filtered.Classes, 2)
	assert.Equal(t, "A", filtered.Classes[0].Name)
	assert.Equal(t, "B", filtered.Classes[1].Name)
	assert.Empty(t, filtered.Enums)

	assert.Equal(t, 4, r.FilterNamespace("").Len())
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Shop.Order", QualifiedName("Shop", "Order"))
	assert.Equal(t, "Order", QualifiedName("", "Order"))
}
