// Package formatting turns documentation entities into inline markup.
//
// A Dispatcher is bound to one documentation context and picks the formatter
// for a value from the capabilities the value's type implements. Capabilities
// are checked in a fixed order, most specific first: comment content,
// namespaces, topics, attributes and finally members.
package formatting

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/beevik/etree"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

// Formatter writes one kind of entity inline through w.
type Formatter interface {
	Format(w *markup.Writer, v any) error
}

type capability struct {
	name      string
	matches   func(t reflect.Type) bool
	formatter Formatter
}

var (
	elementType        = reflect.TypeFor[*etree.Element]()
	commentContentType = reflect.TypeFor[docmodel.CommentContent]()
	namespaceType      = reflect.TypeFor[docmodel.Namespace]()
	topicType          = reflect.TypeFor[docmodel.Topic]()
	attributeType      = reflect.TypeFor[docmodel.Attribute]()
	memberType         = reflect.TypeFor[docmodel.Member]()
)

func implements(iface reflect.Type) func(reflect.Type) bool {
	return func(t reflect.Type) bool { return t.Implements(iface) }
}

// IsCommentContent reports whether values of t are rendered as comment content.
func IsCommentContent(t reflect.Type) bool {
	return t == elementType || t.Implements(commentContentType)
}

// Dispatcher resolves formatters by value type and caches the result per type.
type Dispatcher struct {
	ctx          docmodel.Context
	capabilities []capability

	mu    sync.Mutex
	cache map[reflect.Type]Formatter
}

// NewDispatcher returns a dispatcher bound to ctx.
func NewDispatcher(ctx docmodel.Context) *Dispatcher {
	return &Dispatcher{
		ctx: ctx,
		capabilities: []capability{
			{name: "comment", matches: IsCommentContent, formatter: &CommentFormatter{ctx: ctx}},
			{name: "namespace", matches: implements(namespaceType), formatter: &NamespaceFormatter{ctx: ctx}},
			{name: "topic", matches: implements(topicType), formatter: &TopicFormatter{ctx: ctx}},
			{name: "attribute", matches: implements(attributeType), formatter: &AttributeFormatter{ctx: ctx}},
			{name: "member", matches: implements(memberType), formatter: &MemberFormatter{ctx: ctx}},
		},
		cache: make(map[reflect.Type]Formatter),
	}
}

// Context returns the documentation context the dispatcher is bound to.
func (d *Dispatcher) Context() docmodel.Context { return d.ctx }

// TryCreateFormatter returns the formatter for values of type t.
func (d *Dispatcher) TryCreateFormatter(t reflect.Type) (Formatter, bool) {
	if t == nil {
		return nil, false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if f, ok := d.cache[t]; ok {
		return f, f != nil
	}
	var found Formatter
	for _, c := range d.capabilities {
		if c.matches(t) {
			found = c.formatter
			break
		}
	}
	d.cache[t] = found
	return found, found != nil
}

// CapabilityOf names the capability values of type t are formatted as, or ""
// when none applies.
func (d *Dispatcher) CapabilityOf(t reflect.Type) string {
	for _, c := range d.capabilities {
		if c.matches(t) {
			return c.name
		}
	}
	return ""
}

// Format writes v with its formatter. Values with no recognized capability
// are a caller bug and fail with a contract error.
func (d *Dispatcher) Format(w *markup.Writer, v any) error {
	f, ok := d.TryCreateFormatter(reflect.TypeOf(v))
	if !ok {
		return unsupported(v)
	}
	return f.Format(w, v)
}

// Encode writes any template value: nil values write nothing, markup.Raw is
// written verbatim, entities go through their formatter and anything else is
// written as encoded text.
func (d *Dispatcher) Encode(w *markup.Writer, v any) error {
	if docmodel.IsNil(v) {
		return nil
	}
	switch val := v.(type) {
	case markup.Raw:
		return w.WithSuppressed(func(s *markup.Scope) error {
			_, err := s.WriteString(string(val))
			return err
		})
	case string:
		_, err := w.WriteString(val)
		return err
	}
	if f, ok := d.TryCreateFormatter(reflect.TypeOf(v)); ok {
		return f.Format(w, v)
	}
	_, err := fmt.Fprint(w, v)
	return err
}

func unsupported(v any) error {
	return derrors.UnsupportedValue(fmt.Sprintf("%T", v))
}

// withMarkup opens a markup writer from the context's content formatter and
// closes it on every path.
func withMarkup(ctx docmodel.Context, w *markup.Writer, fn func(mw *markup.MarkupWriter) error) error {
	mw, err := ctx.ContentFormatter().NewMarkupWriter(w)
	if err != nil {
		return err
	}
	defer mw.Close()
	return fn(mw)
}
