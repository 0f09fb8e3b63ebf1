package docmodel

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"gopkg.in/yaml.v3"
)

// Comment is a parsed XML documentation comment such as
// <summary>Creates a <see cref="T:Acme.Widget"/>.</summary>.
type Comment struct {
	el *etree.Element
}

// ParseComment parses an XML comment fragment. A fragment with a single root
// element yields that element; anything else is wrapped in a <doc> element.
func ParseComment(src string) (*Comment, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<doc>" + src + "</doc>"); err != nil {
		return nil, fmt.Errorf("parse comment: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse comment: empty document")
	}
	children := root.ChildElements()
	if len(children) == 1 && !hasText(root) {
		return &Comment{el: children[0]}, nil
	}
	return &Comment{el: root}, nil
}

// NewComment wraps an already parsed element.
func NewComment(el *etree.Element) *Comment { return &Comment{el: el} }

func (c *Comment) CommentElement() *etree.Element { return c.el }

// Text returns the comment's character data with whitespace collapsed.
func (c *Comment) Text() string {
	if c == nil || c.el == nil {
		return ""
	}
	var b strings.Builder
	collectText(&b, c.el)
	return strings.Join(strings.Fields(b.String()), " ")
}

func (c *Comment) String() string { return c.Text() }

// UnmarshalYAML reads a comment from a YAML string holding XML.
func (c *Comment) UnmarshalYAML(value *yaml.Node) error {
	var src string
	if err := value.Decode(&src); err != nil {
		return err
	}
	parsed, err := ParseComment(src)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = *parsed
	return nil
}

func hasText(el *etree.Element) bool {
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return true
		}
	}
	return false
}

func collectText(b *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			collectText(b, t)
		}
	}
}
