package docmodel

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleModel = `
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
            named:
              - name: Error
                value: true
        members:
          - kind: constructor
          - name: Spin
            kind: method
          - name: Spin
            kind: method
            parameters:
              - name: times
                type: System.Int32
          - name: Speed
            kind: property
        nested:
          - name: Part
            kind: struct
      - name: MarkerAttribute
        kind: class
      - name: Tagged
        attributes:
          - type: Marker
`

func TestParseModel_LinksParentsAndGroups(t *testing.T) {
	m, err := ParseModel([]byte(sampleModel))
	require.NoError(t, err)

	types := m.Types()
	require.Len(t, types, 4)
	widget := types[0]
	require.Equal(t, "Acme.Widgets.Widget", widget.FullName())
	require.Nil(t, widget.DeclaringType())
	require.Equal(t, "Acme.Widgets", widget.Namespace().Name)

	part := types[1]
	require.Equal(t, "Acme.Widgets.Widget.Part", part.FullName())
	require.Equal(t, "Widget.Part", QualifiedName(part))

	groups := widget.Groups()
	require.Len(t, groups, 3)
	require.Equal(t, "Widget", groups[0].Name, "constructors default to the type name")
	require.Equal(t, KindConstructor, groups[0].Kind)
	require.True(t, widget.Methods()[0].Overloaded())
	require.Len(t, widget.Properties(), 1)
	require.Equal(t, "Widget.Spin", QualifiedName(widget.Methods()[0]))

	require.Equal(t, "A Widget spins.", widget.Summary.Text())
}

func TestModel_Lookup(t *testing.T) {
	m, err := ParseModel([]byte(sampleModel))
	require.NoError(t, err)

	v, ok := m.Lookup("M:Acme.Widgets.Widget.Spin(System.Int32)")
	require.True(t, ok)
	require.IsType(t, &OverloadGroup{}, v)

	v, ok = m.Lookup("M:Acme.Widgets.Widget.#ctor")
	require.True(t, ok)
	require.Equal(t, KindConstructor, v.(*OverloadGroup).Kind)

	_, ok = m.Lookup("N:Acme.Widgets")
	require.True(t, ok)

	_, ok = m.Lookup("T:System.String")
	require.False(t, ok)
}

func TestAttributeDoc_ResolvesDocumentedTypes(t *testing.T) {
	m, err := ParseModel([]byte(sampleModel))
	require.NoError(t, err)

	widget := m.Types()[0]
	obsolete := widget.Attributes[0]
	require.IsType(t, &ExternalType{}, obsolete.AttributeType())
	require.Equal(t, []any{"Use Gadget"}, obsolete.ConstructorArguments())
	require.Equal(t, []NamedArgument{{Name: "Error", Value: true}}, obsolete.NamedArguments())

	tagged := m.Types()[3]
	marker := tagged.Attributes[0].AttributeType()
	require.IsType(t, &TypeDoc{}, marker)
	require.Equal(t, "MarkerAttribute", marker.MemberName())
}

func TestParseModel_Errors(t *testing.T) {
	_, err := ParseModel([]byte("namespaces:\n  - types: []\n"))
	require.Error(t, err)

	_, err = ParseModel([]byte("namespaces:\n  - name: A\n    types:\n      - name: T\n      - name: T\n"))
	require.ErrorContains(t, err, "duplicate type A.T")

	_, err = ParseModel([]byte("namespaces:\n  - name: A\n    summary: <summary>unclosed\n"))
	require.Error(t, err)
}

func TestDescribe(t *testing.T) {
	m, err := ParseModel([]byte(sampleModel))
	require.NoError(t, err)

	require.Equal(t, "namespace Acme.Widgets", Describe(m.Namespaces[0]))
	require.Equal(t, "Widget.Spin", Describe(m.Types()[0].Methods()[0]))
	require.Equal(t, "topic Intro", Describe(NewFileTopic("docs/intro.md", "Intro")))
	require.Equal(t, "attribute Obsolete", Describe(m.Types()[0].Attributes[0]))
	require.Equal(t, "int", Describe(42))
}

func TestParseComment(t *testing.T) {
	c, err := ParseComment("<summary>The <c>code</c> summary</summary>")
	require.NoError(t, err)
	require.Equal(t, "summary", c.CommentElement().Tag)

	c, err = ParseComment("<summary>A</summary><remarks>B</remarks>")
	require.NoError(t, err)
	require.Equal(t, "doc", c.CommentElement().Tag)
	require.Equal(t, "AB", c.Text())
}

func TestFileTopic_RenderContent(t *testing.T) {
	topic := NewFileTopic("docs/a.md", "A")
	require.Error(t, topic.RenderContent(nil))

	var called bool
	topic.SetContentRenderer(func(_ io.Writer) error {
		called = true
		return nil
	})
	require.NoError(t, topic.RenderContent(nil))
	require.True(t, called)
}
