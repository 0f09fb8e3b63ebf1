package markdown

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
)

// Edit replaces source[Start:End] with Replacement. Offsets refer to the
// original source; End is exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping byte-range edits to source in one pass
// and returns the updated content. Source is never modified.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(a.Start, b.Start)
	})

	prev := 0
	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < 0:
			return nil, fmt.Errorf("invalid edit[%d]: negative range", i)
		case e.End < e.Start:
			return nil, fmt.Errorf("invalid edit[%d]: end before start", i)
		case e.End > len(source):
			return nil, fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		case e.Start < prev:
			return nil, fmt.Errorf("invalid edit[%d]: overlaps previous edit", i)
		}
		prev = e.End
	}

	var out bytes.Buffer
	out.Grow(len(source))
	prev = 0
	for _, e := range sorted {
		out.Write(source[prev:e.Start])
		out.Write(e.Replacement)
		prev = e.End
	}
	out.Write(source[prev:])
	return out.Bytes(), nil
}
