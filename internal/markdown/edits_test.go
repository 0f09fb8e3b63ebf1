package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_SingleReplacement(t *testing.T) {
	src := []byte("See [API](./api-guide.md) for details.\n")
	old := []byte("./api-guide.md")
	idx := bytes.Index(src, old)
	require.NotEqual(t, -1, idx)

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len(old), Replacement: []byte("./api_guide.md")}})
	require.NoError(t, err)
	require.Equal(t, "See [API](./api_guide.md) for details.\n", string(out))
}

func TestApplyEdits_MultipleReplacements(t *testing.T) {
	src := []byte("A: ./old.md\nB: ./old.md#frag\n")

	idx1 := bytes.Index(src, []byte("./old.md"))
	require.NotEqual(t, -1, idx1)

	idx2 := bytes.LastIndex(src, []byte("./old.md#frag"))
	require.NotEqual(t, -1, idx2)

	out, err := ApplyEdits(src, []Edit{
		{Start: idx1, End: idx1 + len("./old.md"), Replacement: []byte("./new.md")},
		{Start: idx2, End: idx2 + len("./old.md#frag"), Replacement: []byte("./new.md#frag")},
	})
	require.NoError(t, err)
	require.Equal(t, "A: ./new.md\nB: ./new.md#frag\n", string(out))
}

func TestApplyEdits_CRLFInputPreserved(t *testing.T) {
	src := []byte("A: ./old.md\r\nB: ./old.md\r\n")

	idx := bytes.Index(src, []byte("./old.md"))
	require.NotEqual(t, -1, idx)

	out, err := ApplyEdits(src, []Edit{{
		Start:       idx,
		End:         idx + len("./old.md"),
		Replacement: []byte("./new.md"),
	}})
	require.NoError(t, err)
	require.Equal(t, "A: ./new.md\r\nB: ./old.md\r\n", string(out))
}

func TestApplyEdits_ReferenceDefinitionReplacement(t *testing.T) {
	src := []byte("Reference: [api][1]\n\n[1]: ./api-guide.md \"Title\"\n")
	old := []byte("./api-guide.md")
	idx := bytes.Index(src, old)
	require.NotEqual(t, -1, idx)

	out, err := ApplyEdits(src, []Edit{{Start: idx, End: idx + len(old), Replacement: []byte("./api_guide.md")}})
	require.NoError(t, err)
	require.Contains(t, string(out), "[1]: ./api_guide.md \"Title\"")
}

func TestApplyEdits_InvalidEdits(t *testing.T) {
	src := []byte("abcdef")
	tests := []struct {
		name  string
		edits []Edit
		want  string
	}{
		{"overlap", []Edit{{Start: 1, End: 4}, {Start: 3, End: 5}}, "overlaps previous edit"},
		{"overlap given out of order", []Edit{{Start: 3, End: 5}, {Start: 1, End: 4}}, "overlaps previous edit"},
		{"negative", []Edit{{Start: -1, End: 2}}, "negative range"},
		{"reversed", []Edit{{Start: 4, End: 2}}, "end before start"},
		{"past end", []Edit{{Start: 4, End: 7}}, "range out of bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyEdits(src, tt.edits)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestApplyEdits_Insertions(t *testing.T) {
	src := []byte("<https://x>")

	out, err := ApplyEdits(src, []Edit{
		{Start: len(src), End: len(src), Replacement: []byte("!")},
		{Start: 0, End: 0, Replacement: []byte("see ")},
		{Start: 1, End: 10, Replacement: []byte("https://y")},
	})
	require.NoError(t, err)
	require.Equal(t, "see <https://y>!", string(out))
}

func TestApplyEdits_AdjacentEditsAndUntouchedSource(t *testing.T) {
	src := []byte("abcdef")

	out, err := ApplyEdits(src, []Edit{
		{Start: 2, End: 4, Replacement: []byte("Y")},
		{Start: 0, End: 2, Replacement: []byte("X")},
	})
	require.NoError(t, err)
	require.Equal(t, "XYef", string(out))
	require.Equal(t, "abcdef", string(src))

	same, err := ApplyEdits(src, nil)
	require.NoError(t, err)
	require.Equal(t, "abcdef", string(same))
}
