package formatting

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

// CommentFormatter renders comment content through the context's content formatter.
type CommentFormatter struct{ ctx docmodel.Context }

func (f *CommentFormatter) Format(w *markup.Writer, v any) error {
	var el *etree.Element
	switch c := v.(type) {
	case *etree.Element:
		el = c
	case docmodel.CommentContent:
		el = c.CommentElement()
	default:
		return unsupported(v)
	}
	return withMarkup(f.ctx, w, func(mw *markup.MarkupWriter) error {
		return f.ctx.ContentFormatter().WriteComment(mw, el)
	})
}

// MemberFormatter links to a member, qualified by its declaring type.
type MemberFormatter struct{ ctx docmodel.Context }

func (f *MemberFormatter) Format(w *markup.Writer, v any) error {
	m, ok := v.(docmodel.Member)
	if !ok {
		return unsupported(v)
	}
	return withMarkup(f.ctx, w, func(mw *markup.MarkupWriter) error {
		return mw.WriteLink(docmodel.QualifiedName(m), f.ctx.MemberURL(m))
	})
}

// NamespaceFormatter links to a namespace.
type NamespaceFormatter struct{ ctx docmodel.Context }

func (f *NamespaceFormatter) Format(w *markup.Writer, v any) error {
	ns, ok := v.(docmodel.Namespace)
	if !ok {
		return unsupported(v)
	}
	return withMarkup(f.ctx, w, func(mw *markup.MarkupWriter) error {
		return mw.WriteLink(ns.NamespaceName(), f.ctx.NamespaceURL(ns))
	})
}

// TopicFormatter lets the topic render its own content.
type TopicFormatter struct{ ctx docmodel.Context }

func (f *TopicFormatter) Format(w *markup.Writer, v any) error {
	t, ok := v.(docmodel.Topic)
	if !ok {
		return unsupported(v)
	}
	return withMarkup(f.ctx, w, func(mw *markup.MarkupWriter) error {
		return t.RenderContent(mw)
	})
}

// AttributeFormatter links to the attribute type followed by its arguments,
// e.g. Obsolete("Use Gadget", Error = true).
type AttributeFormatter struct{ ctx docmodel.Context }

func (f *AttributeFormatter) Format(w *markup.Writer, v any) error {
	a, ok := v.(docmodel.Attribute)
	if !ok {
		return unsupported(v)
	}
	return withMarkup(f.ctx, w, func(mw *markup.MarkupWriter) error {
		if t := a.AttributeType(); !docmodel.IsNil(t) {
			if err := mw.WriteLink(t.MemberName(), f.ctx.MemberURL(t)); err != nil {
				return err
			}
		}
		args, named := a.ConstructorArguments(), a.NamedArguments()
		if len(args) == 0 && len(named) == 0 {
			return nil
		}
		if err := mw.WriteRaw("("); err != nil {
			return err
		}
		n := 0
		sep := func() error {
			n++
			if n == 1 {
				return nil
			}
			return mw.WriteRaw(", ")
		}
		for _, arg := range args {
			if err := sep(); err != nil {
				return err
			}
			if err := f.writeArgument(mw, arg); err != nil {
				return err
			}
		}
		for _, na := range named {
			if err := sep(); err != nil {
				return err
			}
			if err := mw.WriteText(na.Name + " = "); err != nil {
				return err
			}
			if err := f.writeArgument(mw, na.Value); err != nil {
				return err
			}
		}
		return mw.WriteRaw(")")
	})
}

func (f *AttributeFormatter) writeArgument(mw *markup.MarkupWriter, v any) error {
	switch val := v.(type) {
	case nil:
		return mw.WriteText("null")
	case docmodel.Member:
		return mw.WriteLink(docmodel.QualifiedName(val), f.ctx.MemberURL(val))
	case docmodel.Namespace:
		return mw.WriteLink(val.NamespaceName(), f.ctx.NamespaceURL(val))
	case string:
		return mw.WriteText(strconv.Quote(val))
	default:
		return mw.WriteText(fmt.Sprint(val))
	}
}
