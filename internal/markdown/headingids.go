package markdown

import (
	"bytes"
	"strconv"
	"unicode"

	"github.com/yuin/goldmark/ast"
)

// headingIDs generates heading ids with placeholder tokens removed, so an id
// never carries a template expression once the originals are restored.
// It satisfies goldmark's parser.IDs.
type headingIDs struct {
	ph   *placeholders
	used map[string]bool
}

func newHeadingIDs(ph *placeholders) *headingIDs {
	return &headingIDs{ph: ph, used: map[string]bool{}}
}

func (h *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	slug := slugify(h.ph.strip(value))
	if len(slug) == 0 {
		if kind == ast.KindHeading {
			slug = []byte("heading")
		} else {
			slug = []byte("id")
		}
	}
	id := string(slug)
	for i := 1; h.used[id]; i++ {
		id = string(slug) + "-" + strconv.Itoa(i)
	}
	h.used[id] = true
	return []byte(id)
}

func (h *headingIDs) Put(value []byte) {
	h.used[string(value)] = true
}

// slugify lowercases letters and digits, turns whitespace, '-' and '_' runs
// into a single '-' and drops everything else.
func slugify(value []byte) []byte {
	var b bytes.Buffer
	dash := false
	for _, r := range string(bytes.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_':
			dash = true
		}
	}
	return b.Bytes()
}
