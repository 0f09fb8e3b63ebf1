package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/docrender/internal/markup"
)

// rewriteDestinations rewrites inline link, reference definition and autolink
// destinations of a markdown source through urls and returns the edited
// source. Fenced and indented code blocks and code spans are left alone.
func rewriteDestinations(src []byte, urls URLTransformer) ([]byte, error) {
	s := destinationScanner{src: src, urls: urls}
	var fence codeFence

	for lineStart := 0; lineStart < len(src); {
		lineEnd := bytes.IndexByte(src[lineStart:], '\n')
		if lineEnd == -1 {
			lineEnd = len(src)
		} else {
			lineEnd += lineStart
		}
		line := src[lineStart:lineEnd]

		switch {
		case fence.open:
			fence.closeOn(line)
		case fence.openOn(line), isIndentedCode(line):
		default:
			if start, stop, ok := referenceDestination(line); ok {
				s.rewrite(lineStart+start, lineStart+stop)
			} else {
				s.scanInline(line, lineStart)
			}
		}
		lineStart = lineEnd + 1
	}

	return ApplyEdits(src, s.edits)
}

type destinationScanner struct {
	src   []byte
	urls  URLTransformer
	edits []Edit
}

func (s *destinationScanner) rewrite(start, stop int) {
	if stop <= start {
		return
	}
	if rewritten, ok := s.urls.TryTransformURL(string(s.src[start:stop])); ok {
		s.edits = append(s.edits, Edit{Start: start, End: stop, Replacement: []byte(rewritten)})
	}
}

// rewriteAutoLink turns <url> into [url](rewritten) since an autolink can only
// hold an absolute URL.
func (s *destinationScanner) rewriteAutoLink(start, end int) {
	url := string(s.src[start+1 : end])
	rewritten, ok := s.urls.TryTransformURL(url)
	if !ok {
		return
	}
	d := markup.DialectFor(markup.FormatMarkdown)
	s.edits = append(s.edits, Edit{
		Start:       start,
		End:         end + 1,
		Replacement: []byte(d.Link(d.Escape(url), rewritten)),
	})
}

func (s *destinationScanner) scanInline(line []byte, offset int) {
	open := 0
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && util.IsPunct(line[i+1]):
			i += 2
		case c == '`':
			i = skipCodeSpan(line, i)
		case c == '<':
			if end, ok := autoLinkEnd(line, i); ok {
				s.rewriteAutoLink(offset+i, offset+end)
				i = end + 1
				continue
			}
			i++
		case c == '[':
			open++
			i++
		case c == ']' && open > 0:
			open--
			if i+1 < len(line) && line[i+1] == '(' {
				if start, stop, ok := parseDestination(line, i+2); ok {
					s.rewrite(offset+start, offset+stop)
					i = stop
					open = 0
					continue
				}
			}
			i++
		default:
			i++
		}
	}
}

// skipCodeSpan returns the index after the code span opening at pos, or after
// the backtick run when it is never closed.
func skipCodeSpan(line []byte, pos int) int {
	run := countRun(line, pos, '`')
	for i := pos + run; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}
		n := countRun(line, i, '`')
		if n == run {
			return i + n
		}
		i += n
	}
	return pos + run
}

// autoLinkEnd reports the index of the closing '>' of a URI autolink
// (<scheme:rest>) opening at pos.
func autoLinkEnd(line []byte, pos int) (int, bool) {
	i := pos + 1
	for i < len(line) && (util.IsAlphaNumeric(line[i]) || line[i] == '+' || line[i] == '.' || line[i] == '-') {
		i++
	}
	if scheme := i - pos - 1; scheme < 2 || scheme > 32 || !util.IsAlphaNumeric(line[pos+1]) {
		return 0, false
	}
	if i >= len(line) || line[i] != ':' {
		return 0, false
	}
	for ; i < len(line); i++ {
		switch c := line[i]; {
		case c == '>':
			return i, true
		case c == '<' || util.IsSpace(c):
			return 0, false
		}
	}
	return 0, false
}

// referenceDestination finds the destination of a reference definition line
// such as `[label]: dest "title"`.
func referenceDestination(line []byte) (start, stop int, ok bool) {
	width, pos := util.IndentWidth(line, 0)
	if width > 3 || pos >= len(line) || line[pos] != '[' {
		return 0, 0, false
	}
	end := bytes.IndexByte(line[pos:], ']')
	if end <= 1 || end+pos+1 >= len(line) || line[pos+end+1] != ':' {
		return 0, 0, false
	}
	return parseDestination(line, pos+end+2)
}

// parseDestination reads a link destination starting at pos, either
// <bracketed> or bare with balanced parentheses.
func parseDestination(line []byte, pos int) (start, stop int, ok bool) {
	for pos < len(line) && util.IsSpace(line[pos]) {
		pos++
	}
	if pos >= len(line) {
		return 0, 0, false
	}
	if line[pos] == '<' {
		end := bytes.IndexByte(line[pos:], '>')
		if end < 0 {
			return 0, 0, false
		}
		return pos + 1, pos + end, true
	}
	depth, i := 0, pos
loop:
	for ; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line) && util.IsPunct(line[i+1]):
			i++
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				break loop
			}
			depth--
		case util.IsSpace(c):
			break loop
		}
	}
	if i == pos {
		return 0, 0, false
	}
	return pos, i, true
}

type codeFence struct {
	open bool
	char byte
	size int
}

func (f *codeFence) openOn(line []byte) bool {
	width, pos := util.IndentWidth(line, 0)
	if width > 3 || pos >= len(line) {
		return false
	}
	c := line[pos]
	if c != '`' && c != '~' {
		return false
	}
	run := countRun(line, pos, c)
	if run < 3 || (c == '`' && bytes.IndexByte(line[pos+run:], '`') >= 0) {
		return false
	}
	*f = codeFence{open: true, char: c, size: run}
	return true
}

func (f *codeFence) closeOn(line []byte) {
	width, pos := util.IndentWidth(line, 0)
	if width > 3 || pos >= len(line) {
		return
	}
	if run := countRun(line, pos, f.char); run >= f.size && util.IsBlank(line[pos+run:]) {
		f.open = false
	}
}

func isIndentedCode(line []byte) bool {
	width, _ := util.IndentWidth(line, 0)
	return width >= 4 && !util.IsBlank(line)
}

func countRun(line []byte, pos int, c byte) int {
	i := pos
	for i < len(line) && line[i] == c {
		i++
	}
	return i - pos
}
