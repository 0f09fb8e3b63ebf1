// Package markup holds the output formats pages are rendered into and the
// encoded writer that template output flows through.
//
// Everything a template prints is encoded for the page format unless it is
// explicitly marked as markup (Raw) or written inside a suppression scope.
package markup

import (
	"fmt"
	"strings"
)

// Format identifies a page output format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// ParseFormat normalizes a configured format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", raw)
	}
}

// Extension returns the file extension (with dot) used for pages in this format.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}
	return ".html"
}

func (f Format) String() string { return string(f) }

// Raw is text that is already in the page output format and must be written verbatim.
type Raw string
