package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func codeNameFields() []FilterField {
	return []FilterField{
		{Key: "code", Label: "Code", Type: FilterText},
		{Key: "name", Label: "Name", Type: FilterText},
	}
}

func TestNewFilterSetStartsWithOneDefaultSlot(t *testing.T) {
	fs := NewFilterSet(codeNameFields())
	slots := fs.Slots()
	require.Len(t, slots, 1)
	require.Equal(t, "code", slots[0].Key)
}

func TestAddBoundedByDeclaredFields(t *testing.T) {
	fs := NewFilterSet(codeNameFields())
	require.True(t, fs.CanAdd())
	require.True(t, fs.Add())
	require.Equal(t, []string{"code", "name"}, fs.ActiveKeys())

	// Both fields active: adding is a no-op.
	require.False(t, fs.CanAdd())
	require.False(t, fs.Add())
	require.Len(t, fs.Slots(), 2)
}

func TestRemoveLastSlotRestoresDefault(t *testing.T) {
	fs := NewFilterSet(codeNameFields())
	fs.SetValue("code", "abc")
	fs.Remove("code")

	slots := fs.Slots()
	require.Len(t, slots, 1, "never zero slots while fields exist")
	require.Equal(t, "code", slots[0].Key)
	require.Empty(t, slots[0].Value)
}

func TestRemoveOneOfTwoKeepsOther(t *testing.T) {
	fs := NewFilterSet(codeNameFields())
	fs.Add()
	fs.SetValue("name", "portfolio")
	fs.Remove("code")

	require.Equal(t, []string{"name"}, fs.ActiveKeys())
	require.Equal(t, map[string]any{"name": "portfolio"}, fs.Clean())
}

func TestSetTypeClearsPriorValue(t *testing.T) {
	fs := NewFilterSet(codeNameFields())
	fs.SetValue("code", "stale")
	require.True(t, fs.SetType("code", "name"))

	slots := fs.Slots()
	require.Equal(t, "name", slots[0].Key)
	require.Empty(t, slots[0].Value)
	require.Empty(t, fs.Clean())
}

func TestSetTypeRejectsUnknownOrActiveTarget(t *testing.T) {
	fs := NewFilterSet(codeNameFields())
	fs.Add()
	require.False(t, fs.SetType("code", "name"), "target already active")
	require.False(t, fs.SetType("code", "bogus"))
}

func TestCleanPrunesEmptyValues(t *testing.T) {
	fields := append(codeNameFields(), FilterField{
		Key: "category", Label: "Category", Type: FilterMultiSelect,
		Options: []FilterOption{{Value: "1", Label: "Web"}},
	})
	fs := NewFilterSet(fields)
	fs.Add()
	fs.Add()
	fs.SetValue("code", "  ")
	fs.SetValues("category", []string{"", " "})

	require.Empty(t, fs.Clean(), "all-empty submission yields an empty filter object")

	fs.SetValue("name", "cms")
	fs.SetValues("category", []string{"1", ""})
	require.Equal(t, map[string]any{"name": "cms", "category": []string{"1"}}, fs.Clean())
}

func TestResetRestoresSingleDefaultSlot(t *testing.T) {
	fs := NewFilterSet(codeNameFields())
	fs.Add()
	fs.SetValue("code", "x")
	fs.Reset()

	slots := fs.Slots()
	require.Len(t, slots, 1)
	require.Equal(t, "code", slots[0].Key)
	require.Empty(t, fs.Clean())
}

func TestNoDeclaredFields(t *testing.T) {
	fs := NewFilterSet(nil)
	require.Empty(t, fs.Slots())
	require.False(t, fs.CanAdd())
	fs.Remove("anything")
	require.Empty(t, fs.Slots())
}
