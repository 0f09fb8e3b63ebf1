// Package docmodel describes the documentation entities the renderer knows how
// to format and the documentation context that resolves them to URLs.
//
// Entities are recognized by the capabilities they implement rather than by
// their concrete types, so any model can be rendered as long as its values
// satisfy one of the interfaces below.
package docmodel

import (
	"fmt"
	"io"
	"reflect"

	"github.com/beevik/etree"

	"git.home.luguber.info/inful/docrender/internal/markup"
)

// CommentContent is a parsed XML documentation comment fragment.
type CommentContent interface {
	CommentElement() *etree.Element
}

// Member is an API member that has its own documentation page or anchor.
// Types are members too; DeclaringType is nil for top-level types.
type Member interface {
	MemberName() string
	DeclaringType() Member
}

// Namespace is a namespace handle.
type Namespace interface {
	NamespaceName() string
}

// Topic is a free-form documentation page that knows how to render its own
// content in the page output format.
type Topic interface {
	TopicTitle() string
	RenderContent(w io.Writer) error
}

// Attribute is a custom attribute instance applied to an entity.
type Attribute interface {
	AttributeType() Member
	ConstructorArguments() []any
	NamedArguments() []NamedArgument
}

// NamedArgument is a property or field assignment carried by an attribute.
type NamedArgument struct {
	Name  string
	Value any
}

// Context is the documentation context the renderer is bound to.
type Context interface {
	NamespaceURL(ns Namespace) string
	MemberURL(m Member) string
	TopicURL(t Topic) string
	ContentFormatter() ContentFormatter
}

// ContentFormatter renders comment trees in the page output format and hands
// out markup writers for inline output.
type ContentFormatter interface {
	Format() markup.Format
	NewMarkupWriter(w *markup.Writer) (*markup.MarkupWriter, error)
	WriteComment(mw *markup.MarkupWriter, comment *etree.Element) error
}

// QualifiedName returns the member name prefixed with its declaring type, if any.
func QualifiedName(m Member) string {
	if decl := m.DeclaringType(); !IsNil(decl) {
		return decl.MemberName() + "." + m.MemberName()
	}
	return m.MemberName()
}

// Describe returns a short human readable description of an entity for
// progress output and log records.
func Describe(v any) string {
	switch e := v.(type) {
	case nil:
		return "<nil>"
	case Namespace:
		return "namespace " + e.NamespaceName()
	case Topic:
		return "topic " + e.TopicTitle()
	case Attribute:
		if t := e.AttributeType(); !IsNil(t) {
			return "attribute " + t.MemberName()
		}
		return "attribute"
	case Member:
		return QualifiedName(e)
	case fmt.Stringer:
		return e.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}

// IsNil reports whether v is nil or an interface holding a nil pointer, map,
// slice, func or channel.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
