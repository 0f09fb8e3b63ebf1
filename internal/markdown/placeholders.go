package markdown

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// templateExpr matches brace-delimited template spans such as {{.Entity}} or
// {{{raw}}}. RE2 guarantees linear matching time.
var templateExpr = regexp.MustCompile(`\{{2,}(?s:.*?)\}{2,}`)

const placeholderPrefix = "tplph"

// placeholders records the template spans replaced during one Transform
// call. Tokens are alphanumeric so markdown leaves them alone wherever they
// appear, and the trailing "x" keeps token 1 from being a prefix of token 10.
type placeholders struct {
	runID     string
	originals []string
}

func newPlaceholders() *placeholders {
	return &placeholders{runID: strings.ReplaceAll(uuid.NewString(), "-", "")}
}

func (p *placeholders) token(i int) string {
	return placeholderPrefix + p.runID + strconv.Itoa(i) + "x"
}

func (p *placeholders) protect(src string) string {
	return templateExpr.ReplaceAllStringFunc(src, func(expr string) string {
		tok := p.token(len(p.originals))
		p.originals = append(p.originals, expr)
		return tok
	})
}

// strip removes every recorded token from b.
func (p *placeholders) strip(b []byte) []byte {
	for i := range p.originals {
		b = bytes.ReplaceAll(b, []byte(p.token(i)), nil)
	}
	return b
}

func (p *placeholders) restore(out string) string {
	if len(p.originals) == 0 {
		return out
	}
	pairs := make([]string, 0, 2*len(p.originals))
	for i, expr := range p.originals {
		pairs = append(pairs, p.token(i), expr)
	}
	return strings.NewReplacer(pairs...).Replace(out)
}
