package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// linkRewriter is a goldmark extension replacing the HTML renderer's link and
// autolink output so destinations go through a URLTransformer first.
type linkRewriter struct {
	urls URLTransformer
}

func (e *linkRewriter) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		// Lower values win over the default HTML renderer (1000).
		util.Prioritized(newLinkRenderer(e.urls), 100),
	))
}

// funcCapture collects the render funcs a NodeRenderer registers.
type funcCapture map[ast.NodeKind]renderer.NodeRendererFunc

func (c funcCapture) Register(kind ast.NodeKind, fn renderer.NodeRendererFunc) {
	c[kind] = fn
}

type linkRenderer struct {
	urls     URLTransformer
	inner    renderer.NodeRenderer
	defaults funcCapture
}

func newLinkRenderer(urls URLTransformer) *linkRenderer {
	r := &linkRenderer{
		urls:     urls,
		inner:    html.NewRenderer(),
		defaults: funcCapture{},
	}
	r.inner.RegisterFuncs(r.defaults)
	return r
}

// SetOption forwards renderer options (html.WithUnsafe and friends) to the
// wrapped default renderer.
func (r *linkRenderer) SetOption(name renderer.OptionName, value any) {
	if so, ok := r.inner.(renderer.SetOptioner); ok {
		so.SetOption(name, value)
	}
}

func (r *linkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
}

func (r *linkRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		n := node.(*ast.Link)
		if rewritten, ok := r.urls.TryTransformURL(string(n.Destination)); ok {
			n.Destination = []byte(rewritten)
		}
	}
	return r.defaults[ast.KindLink](w, source, node, entering)
}

func (r *linkRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.AutoLink)
	if !entering || n.AutoLinkType != ast.AutoLinkURL {
		return r.defaults[ast.KindAutoLink](w, source, node, entering)
	}
	rewritten, ok := r.urls.TryTransformURL(string(n.URL(source)))
	if !ok {
		return r.defaults[ast.KindAutoLink](w, source, node, entering)
	}

	var b bytes.Buffer
	b.WriteString(`<a href="`)
	b.Write(util.EscapeHTML(util.URLEscape([]byte(rewritten), false)))
	b.WriteString(`">`)
	b.Write(util.EscapeHTML(n.Label(source)))
	b.WriteString(`</a>`)
	_, err := w.Write(b.Bytes())
	return ast.WalkContinue, err
}
