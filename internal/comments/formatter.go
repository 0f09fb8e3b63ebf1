// Package comments renders XML documentation comment trees (<summary>,
// <remarks>, <see>, <list>, ...) as HTML or Markdown.
package comments

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"git.home.luguber.info/inful/docrender/internal/markup"
)

// Resolver resolves documentation ids (cref values) to a label and URL.
type Resolver interface {
	ResolveCref(cref string) (label, url string, ok bool)
}

// Formatter is the content formatter of a documentation context. It
// implements docmodel.ContentFormatter.
type Formatter struct {
	dialect  markup.Dialect
	resolver Resolver
}

// NewFormatter returns a formatter for format. resolver may be nil, in which
// case every cref renders as code.
func NewFormatter(format markup.Format, resolver Resolver) *Formatter {
	return &Formatter{dialect: markup.DialectFor(format), resolver: resolver}
}

func (f *Formatter) Format() markup.Format { return f.dialect.Format() }

func (f *Formatter) NewMarkupWriter(w *markup.Writer) (*markup.MarkupWriter, error) {
	return markup.NewMarkupWriter(w)
}

// WriteComment renders comment through mw.
func (f *Formatter) WriteComment(mw *markup.MarkupWriter, comment *etree.Element) error {
	if comment == nil {
		return nil
	}
	return mw.WriteRaw(f.Render(comment))
}

// Render returns the comment's content (not the element itself) in the
// formatter's output format.
func (f *Formatter) Render(el *etree.Element) string {
	out := f.children(el)
	if f.dialect.Format() == markup.FormatMarkdown {
		out = markdownBlankLines.ReplaceAllString(out, "\n\n")
	}
	return strings.TrimSpace(out)
}

var (
	whitespaceRun      = regexp.MustCompile(`\s+`)
	markdownBlankLines = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)
)

func (f *Formatter) children(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(f.dialect.Escape(whitespaceRun.ReplaceAllString(t.Data, " ")))
		case *etree.Element:
			b.WriteString(f.element(t))
		}
	}
	return b.String()
}

func (f *Formatter) element(el *etree.Element) string {
	md := f.dialect.Format() == markup.FormatMarkdown
	switch strings.ToLower(el.Tag) {
	case "c":
		return f.dialect.Code(plainText(el))
	case "code":
		return f.codeBlock(el, md)
	case "para", "p":
		if md {
			return "\n\n" + strings.TrimSpace(f.children(el)) + "\n\n"
		}
		return "<p>" + strings.TrimSpace(f.children(el)) + "</p>"
	case "b", "strong":
		return f.dialect.Emphasis(f.children(el), true)
	case "i", "em":
		return f.dialect.Emphasis(f.children(el), false)
	case "see", "seealso":
		return f.reference(el)
	case "a":
		return f.hyperlink(el, el.SelectAttrValue("href", ""))
	case "paramref", "typeparamref":
		return f.dialect.Code(el.SelectAttrValue("name", ""))
	case "br":
		if md {
			return "  \n"
		}
		return "<br />"
	case "list":
		if md {
			return f.markdownList(el)
		}
		return f.htmlList(el)
	default:
		return f.children(el)
	}
}

func (f *Formatter) reference(el *etree.Element) string {
	if cref := el.SelectAttrValue("cref", ""); cref != "" {
		label := strings.TrimSpace(plainText(el))
		resolvedLabel, url, ok := "", "", false
		if f.resolver != nil {
			resolvedLabel, url, ok = f.resolver.ResolveCref(cref)
		}
		if label == "" {
			label = resolvedLabel
		}
		if label == "" {
			label = CrefLabel(cref)
		}
		if ok && url != "" {
			return f.dialect.Link(f.dialect.Escape(label), url)
		}
		return f.dialect.Code(label)
	}
	if href := el.SelectAttrValue("href", ""); href != "" {
		return f.hyperlink(el, href)
	}
	if word := el.SelectAttrValue("langword", ""); word != "" {
		return f.dialect.Code(word)
	}
	return f.children(el)
}

func (f *Formatter) hyperlink(el *etree.Element, href string) string {
	label := strings.TrimSpace(f.children(el))
	if href == "" {
		return label
	}
	if label == "" {
		label = f.dialect.Escape(href)
	}
	return f.dialect.Link(label, href)
}

func (f *Formatter) codeBlock(el *etree.Element, md bool) string {
	code := dedent(plainText(el))
	lang := el.SelectAttrValue("lang", el.SelectAttrValue("language", ""))
	if md {
		fence := "```"
		for strings.Contains(code, fence) {
			fence += "`"
		}
		return "\n\n" + fence + lang + "\n" + code + "\n" + fence + "\n\n"
	}
	if lang != "" {
		return `<pre><code class="language-` + f.dialect.Escape(lang) + `">` + f.dialect.Escape(code) + "</code></pre>"
	}
	return "<pre><code>" + f.dialect.Escape(code) + "</code></pre>"
}

type listItem struct {
	term        string
	description string
}

func (f *Formatter) listItems(el *etree.Element) (header *listItem, items []listItem) {
	for _, child := range el.ChildElements() {
		tag := strings.ToLower(child.Tag)
		if tag != "item" && tag != "listheader" {
			continue
		}
		it := listItem{}
		term, desc := child.SelectElement("term"), child.SelectElement("description")
		if term == nil && desc == nil {
			it.description = strings.TrimSpace(f.children(child))
		} else {
			if term != nil {
				it.term = strings.TrimSpace(f.children(term))
			}
			if desc != nil {
				it.description = strings.TrimSpace(f.children(desc))
			}
		}
		if tag == "listheader" {
			h := it
			header = &h
			continue
		}
		items = append(items, it)
	}
	return header, items
}

func (it listItem) inline(strong func(string) string) string {
	switch {
	case it.term != "" && it.description != "":
		return strong(it.term) + ": " + it.description
	case it.term != "":
		return it.term
	default:
		return it.description
	}
}

func (f *Formatter) htmlList(el *etree.Element) string {
	header, items := f.listItems(el)
	strong := func(s string) string { return f.dialect.Emphasis(s, true) }
	var b strings.Builder
	switch strings.ToLower(el.SelectAttrValue("type", "bullet")) {
	case "table":
		b.WriteString("<table>")
		if header != nil {
			b.WriteString("<thead><tr><th>" + header.term + "</th><th>" + header.description + "</th></tr></thead>")
		}
		b.WriteString("<tbody>")
		for _, it := range items {
			b.WriteString("<tr><td>" + it.term + "</td><td>" + it.description + "</td></tr>")
		}
		b.WriteString("</tbody></table>")
	case "number":
		b.WriteString("<ol>")
		for _, it := range items {
			b.WriteString("<li>" + it.inline(strong) + "</li>")
		}
		b.WriteString("</ol>")
	default:
		b.WriteString("<ul>")
		for _, it := range items {
			b.WriteString("<li>" + it.inline(strong) + "</li>")
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

func (f *Formatter) markdownList(el *etree.Element) string {
	header, items := f.listItems(el)
	strong := func(s string) string { return f.dialect.Emphasis(s, true) }
	var b strings.Builder
	b.WriteString("\n\n")
	switch strings.ToLower(el.SelectAttrValue("type", "bullet")) {
	case "table":
		h := listItem{term: "Term", description: "Description"}
		if header != nil {
			h = *header
		}
		b.WriteString("| " + h.term + " | " + h.description + " |\n| --- | --- |\n")
		for _, it := range items {
			b.WriteString("| " + it.term + " | " + it.description + " |\n")
		}
	case "number":
		for i, it := range items {
			b.WriteString(strconv.Itoa(i+1) + ". " + it.inline(strong) + "\n")
		}
	default:
		for _, it := range items {
			b.WriteString("- " + it.inline(strong) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// CrefLabel derives a display label from a documentation id:
// "M:Acme.Widget.Spin(System.Int32)" becomes "Spin" and constructor ids
// become the type name.
func CrefLabel(cref string) string {
	s := cref
	if len(s) > 2 && s[1] == ':' {
		s = s[2:]
	}
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	label := parts[len(parts)-1]
	if label == "#ctor" && len(parts) > 1 {
		label = parts[len(parts)-2]
	}
	if i := strings.IndexByte(label, '`'); i >= 0 {
		label = label[:i]
	}
	return label
}

func plainText(el *etree.Element) string {
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return b.String()
}

// dedent trims surrounding blank lines and the indentation shared by every
// non-blank line.
func dedent(code string) string {
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	indent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, l := range lines {
		if len(l) >= indent && indent > 0 {
			lines[i] = l[indent:]
		}
	}
	return strings.Join(lines, "\n")
}
