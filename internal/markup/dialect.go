package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Dialect knows the inline syntax of one output format.
type Dialect interface {
	Format() Format
	// Escape encodes plain text so it renders literally.
	Escape(text string) string
	// Link renders a hyperlink; label must already be escaped.
	Link(label, url string) string
	// Code renders an inline code span from plain text.
	Code(text string) string
	// Emphasis renders label (already escaped) as emphasized or strong text.
	Emphasis(label string, strong bool) string
}

// DialectFor returns the dialect for format. Unknown formats fall back to HTML.
func DialectFor(format Format) Dialect {
	if format == FormatMarkdown {
		return markdownDialect{}
	}
	return htmlDialect{}
}

type htmlDialect struct{}

func (htmlDialect) Format() Format { return FormatHTML }

func (htmlDialect) Escape(text string) string { return html.EscapeString(text) }

func (htmlDialect) Link(label, url string) string {
	return `<a href="` + html.EscapeString(url) + `">` + label + `</a>`
}

func (htmlDialect) Code(text string) string {
	return "<code>" + html.EscapeString(text) + "</code>"
}

func (htmlDialect) Emphasis(label string, strong bool) string {
	if strong {
		return "<strong>" + label + "</strong>"
	}
	return "<em>" + label + "</em>"
}

type markdownDialect struct{}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`|`, `\|`,
)

var markdownURLEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
	"<", "%3C",
	">", "%3E",
)

func (markdownDialect) Format() Format { return FormatMarkdown }

func (markdownDialect) Escape(text string) string { return markdownEscaper.Replace(text) }

func (markdownDialect) Link(label, url string) string {
	return "[" + label + "](" + markdownURLEscaper.Replace(url) + ")"
}

// Code uses a backtick fence one longer than the longest run inside text.
func (markdownDialect) Code(text string) string {
	longest, run := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}

func (markdownDialect) Emphasis(label string, strong bool) string {
	if strong {
		return "**" + label + "**"
	}
	return "*" + label + "*"
}
