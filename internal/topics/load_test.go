package topics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestParse_TitleSources(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{"front matter", "a.md", "---\ntitle: From Meta\n---\n# Heading\n", "From Meta"},
		{"first heading", "a.md", "Intro\n\n## The `Widget` guide\n\n# Later\n", "The Widget guide"},
		{"setext heading", "a.md", "Setext Title\n============\n", "Setext Title"},
		{"file name", "guides/getting-started.md", "no headings here\n", "Getting Started"},
		{"blank meta title", "my_topic.md", "---\ntitle: \"  \"\n---\nbody\n", "My Topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, err := Parse(tt.path, []byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.want, topic.TopicTitle())
			require.Equal(t, tt.path, topic.TopicPath())
		})
	}
}

func TestParse_StripsFrontMatter(t *testing.T) {
	topic, err := Parse("a.md", []byte("---\r\ntitle: T\r\nweight: 3\r\n---\r\nBody {{.Entity}}\r\n"))
	require.NoError(t, err)
	require.Equal(t, "Body {{.Entity}}\r\n", topic.Body)
	require.Equal(t, 3, topic.Meta["weight"])
}

func TestParse_EmptyFrontMatter(t *testing.T) {
	topic, err := Parse("empty.md", []byte("---\n---\n# Hi\n"))
	require.NoError(t, err)
	require.Equal(t, "Hi", topic.Title)
	require.Equal(t, "# Hi\n", topic.Body)
	require.Empty(t, topic.Meta)
}

func TestParse_FrontMatterOnlyWithoutTrailingNewline(t *testing.T) {
	topic, err := Parse("hello.md", []byte("---\ntitle: Hello\n---"))
	require.NoError(t, err)
	require.Equal(t, "Hello", topic.Title)
	require.Empty(t, topic.Body)
}

func TestParse_UnclosedFrontMatter(t *testing.T) {
	_, err := Parse("bad.md", []byte("---\ntitle: x\n# no close\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.md", "# Bravo\n")
	writeFile(t, root, "guides/a.md", "# Alpha\n")
	writeFile(t, root, "notes.txt", "ignored")
	writeFile(t, root, ".hidden/c.md", "# Hidden\n")

	loaded, err := LoadDir(root)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, "b.md", loaded[0].Path)
	require.Equal(t, "guides/a.md", loaded[1].Path)
	require.Equal(t, "Alpha", loaded[1].Title)
}

func TestLoadDir_Missing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
