// Package markdown converts markdown topic sources into page output.
//
// Markdown topics may contain live template expressions such as
// {{link .Entity}}. The transformer swaps every brace-delimited span for an
// opaque placeholder before conversion and puts the original text back
// afterwards, so the expressions reach the template engine untouched. Link
// and autolink destinations are passed through an optional URLTransformer on
// the way.
package markdown

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

// URLTransformer rewrites link destinations found in markdown.
type URLTransformer interface {
	// MayTransformURLs reports whether TryTransformURL can ever succeed.
	// When false, link rewriting is skipped entirely.
	MayTransformURLs() bool
	// TryTransformURL returns the rewritten destination and true, or false to
	// keep the original.
	TryTransformURL(original string) (string, bool)
}

// Transformer converts markdown into one output format. It is safe for
// concurrent use once constructed.
type Transformer struct {
	format markup.Format
	urls   URLTransformer
	md     goldmark.Markdown
}

// NewTransformer returns a transformer producing format. urls may be nil.
func NewTransformer(format markup.Format, urls URLTransformer) *Transformer {
	if urls != nil && !urls.MayTransformURLs() {
		urls = nil
	}

	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
		extension.Footnote,
	}
	if urls != nil {
		exts = append(exts, &linkRewriter{urls: urls})
	}

	return &Transformer{
		format: format,
		urls:   urls,
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Format returns the output format produced by the transformer.
func (t *Transformer) Format() markup.Format { return t.format }

// Transform converts src. Empty or blank input yields "".
func (t *Transformer) Transform(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	ph := newPlaceholders()
	protected := []byte(ph.protect(src))

	var out []byte
	switch t.format {
	case markup.FormatMarkdown:
		if t.urls == nil {
			out = protected
			break
		}
		rewritten, err := rewriteDestinations(protected, t.urls)
		if err != nil {
			return "", derrors.InternalError("rewrite markdown link destinations", err)
		}
		out = rewritten
	default:
		var buf bytes.Buffer
		pctx := parser.NewContext(parser.WithIDs(newHeadingIDs(ph)))
		if err := t.md.Convert(protected, &buf, parser.WithContext(pctx)); err != nil {
			return "", derrors.InternalError("convert markdown", err)
		}
		out = buf.Bytes()
	}

	return ph.restore(string(out)), nil
}

// TransformTo reads all of r, converts it and writes the result to w.
func (t *Transformer) TransformTo(w io.Writer, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityError, "read markdown source")
	}
	out, err := t.Transform(string(src))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
