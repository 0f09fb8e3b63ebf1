package templates

import (
	"testing"

	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

func TestNewTemplateData_RejectsConflictingCommonKey(t *testing.T) {
	_, err := NewTemplateData(map[string]any{"Entity": 1}, "Entity", "page")
	require.ErrorIs(t, err, ErrPrimaryKeyConflict)
	require.True(t, derrors.IsCategory(err, derrors.CategoryContract))

	_, err = NewTemplateData(nil, "", "page")
	require.True(t, derrors.IsCategory(err, derrors.CategoryContract))
}

func TestTemplateData_Lookup(t *testing.T) {
	common := map[string]any{"Title": "Site", "Alpha": 1}
	d, err := NewTemplateData(common, "Entity", "page")
	require.NoError(t, err)

	v, ok := d.Get("Entity")
	require.True(t, ok)
	require.Equal(t, "page", v)
	require.Equal(t, "page", d.Primary())
	require.Equal(t, "Entity", d.PrimaryKey())

	v, ok = d.Get("Title")
	require.True(t, ok)
	require.Equal(t, "Site", v)

	_, ok = d.Get("Missing")
	require.False(t, ok)

	require.Equal(t, []string{"Entity", "Alpha", "Title"}, d.Keys())
	require.Equal(t, 3, d.Len())
}

func TestTemplateData_PrimaryWinsAfterCommonChanges(t *testing.T) {
	common := map[string]any{"Title": "Site"}
	d, err := NewTemplateData(common, "Entity", "page")
	require.NoError(t, err)

	common["Later"] = true
	common["Entity"] = "shadow"

	v, ok := d.Get("Entity")
	require.True(t, ok)
	require.Equal(t, "page", v)
	require.Equal(t, "Entity", d.Keys()[0])
	require.Equal(t, 3, d.Len())

	m := d.Map()
	require.Equal(t, "page", m["Entity"])
	require.Equal(t, true, m["Later"])
}

func TestTemplateData_NilCommon(t *testing.T) {
	d, err := NewTemplateData(nil, "Entity", 42)
	require.NoError(t, err)
	require.Equal(t, []string{"Entity"}, d.Keys())
	require.Equal(t, map[string]any{"Entity": 42}, d.Map())
}
