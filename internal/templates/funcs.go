package templates

import (
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

// funcs returns the helpers every template can call.
func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		encodeFunc: r.encode,
		"raw":      raw,
		"markdown": r.markdownHelper,
		"url":      r.url,
		"link":     r.link,
		"code":     r.code,
		"join":     r.join,
		"describe": docmodel.Describe,
	}
}

// encode renders any value for the page: entities through their formatter,
// markup.Raw verbatim and everything else as encoded text.
func (r *Renderer) encode(v any) (markup.Raw, error) {
	var b strings.Builder
	if err := r.dispatcher.Encode(markup.NewWriter(&b, r.format), v); err != nil {
		return "", err
	}
	return markup.Raw(b.String()), nil
}

// raw marks a value as already formatted markup.
func raw(v any) markup.Raw {
	switch s := v.(type) {
	case markup.Raw:
		return s
	case string:
		return markup.Raw(s)
	case nil:
		return ""
	default:
		return markup.Raw(fmt.Sprint(v))
	}
}

func (r *Renderer) markdownHelper(src string) (markup.Raw, error) {
	out, err := r.markdown.Transform(src)
	return markup.Raw(out), err
}

// url resolves the page URL of a namespace, topic or member.
func (r *Renderer) url(v any) (string, error) {
	if docmodel.IsNil(v) {
		return "", derrors.InvalidArgument("url", "value must not be nil")
	}
	switch e := v.(type) {
	case docmodel.Namespace:
		return r.ctx.NamespaceURL(e), nil
	case docmodel.Topic:
		return r.ctx.TopicURL(e), nil
	case docmodel.Member:
		return r.ctx.MemberURL(e), nil
	case string:
		return e, nil
	}
	return "", derrors.UnsupportedValue(fmt.Sprintf("%T", v))
}

// link writes a link with a custom label to an entity or URL string.
func (r *Renderer) link(label string, target any) (markup.Raw, error) {
	u, err := r.url(target)
	if err != nil {
		return "", err
	}
	d := markup.DialectFor(r.format)
	if u == "" {
		return markup.Raw(d.Escape(label)), nil
	}
	return markup.Raw(d.Link(d.Escape(label), u)), nil
}

func (r *Renderer) code(text string) markup.Raw {
	return markup.Raw(markup.DialectFor(r.format).Code(text))
}

// join encodes every element of a slice and joins them with sep.
func (r *Renderer) join(sep string, items any) (markup.Raw, error) {
	if docmodel.IsNil(items) {
		return "", nil
	}
	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return "", derrors.InvalidArgument("join", fmt.Sprintf("cannot join %T", items))
	}
	encodedSep := markup.DialectFor(r.format).Escape(sep)
	parts := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, err := r.encode(rv.Index(i).Interface())
		if err != nil {
			return "", err
		}
		parts = append(parts, string(s))
	}
	return markup.Raw(strings.Join(parts, encodedSep)), nil
}
