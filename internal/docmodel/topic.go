package docmodel

import (
	"errors"
	"io"
)

// FileTopic is a topic backed by a source file. Its content renderer is
// attached by whoever compiles the file (see site.Builder); until then
// RenderContent fails.
type FileTopic struct {
	// Path is the source path, usually relative to the topics root.
	Path  string
	Title string
	// Body is the markdown source without front matter.
	Body string
	Meta map[string]any

	render func(w io.Writer) error
}

// NewFileTopic returns a topic for path with the given title.
func NewFileTopic(path, title string) *FileTopic {
	return &FileTopic{Path: path, Title: title}
}

func (t *FileTopic) TopicTitle() string { return t.Title }

// TopicPath returns the source path the topic was loaded from.
func (t *FileTopic) TopicPath() string { return t.Path }

func (t *FileTopic) String() string { return t.Title }

// SetContentRenderer attaches the callback used by RenderContent.
func (t *FileTopic) SetContentRenderer(fn func(w io.Writer) error) {
	t.render = fn
}

// RenderContent writes the rendered topic body.
func (t *FileTopic) RenderContent(w io.Writer) error {
	if t.render == nil {
		return errors.New("topic " + t.Path + " has no content renderer")
	}
	return t.render(w)
}
