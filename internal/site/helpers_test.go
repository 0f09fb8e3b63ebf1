package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
)

const testModel = `
namespaces:
  - name: Acme.Widgets
    summary: <summary>Widget types.</summary>
    types:
      - name: Widget
        kind: class
        summary: <summary>A <c>Widget</c> spins.</summary>
        attributes:
          - type: Obsolete
            args: ["Use Gadget"]
        members:
          - kind: constructor
          - name: Spin
            summary: <summary>Spins once.</summary>
          - name: Spin
            parameters:
              - name: times
                type: System.Int32
                description: <para>How often.</para>
          - name: Speed
            kind: property
            summary: <summary>Current speed. See <see cref="M:Acme.Widgets.Widget.Spin"/>.</summary>
        nested:
          - name: Part
            kind: struct
      - name: Color
        kind: enum
        members:
          - name: Red
            kind: field
`

func parseTestModel(t *testing.T) *docmodel.Model {
	t.Helper()
	m, err := docmodel.ParseModel([]byte(testModel))
	require.NoError(t, err)
	return m
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// lookupType returns the type with the given full name.
func lookupType(t *testing.T, m *docmodel.Model, full string) *docmodel.TypeDoc {
	t.Helper()
	v, ok := m.Lookup("T:" + full)
	require.True(t, ok, full)
	return v.(*docmodel.TypeDoc)
}
