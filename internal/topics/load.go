package topics

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

var titleCaser = cases.Title(language.Und)

// LoadDir reads every markdown file below dir as a topic. Topic paths are
// relative to dir and use forward slashes; the result is in lexical path order.
func LoadDir(dir string) ([]*docmodel.FileTopic, error) {
	out := make([]*docmodel.FileTopic, 0)
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		topic, err := LoadFile(p, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		out = append(out, topic)
		return nil
	})
	if err != nil {
		if _, ok := derrors.As(err); ok {
			return nil, err
		}
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "load topics").
			WithContext("dir", dir)
	}
	return out, nil
}

// LoadFile reads one topic from file and records it under path.
func LoadFile(file, topicPath string) (*docmodel.FileTopic, error) {
	// #nosec G304 -- topic files come from the configured topics directory
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "read topic").
			WithContext("path", file)
	}
	return Parse(topicPath, content)
}

// Parse builds a topic from markdown content. The title comes from the
// front matter "title" field, then the first heading, then the file name.
func Parse(topicPath string, content []byte) (*docmodel.FileTopic, error) {
	header, body, err := splitFrontMatter(content)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityError, "parse topic front matter").
			WithContext("path", topicPath)
	}
	meta, err := parseFrontMatter(header)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityError, "parse topic front matter").
			WithContext("path", topicPath)
	}

	title, _ := meta["title"].(string)
	if strings.TrimSpace(title) == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = titleFromPath(topicPath)
	}

	topic := docmodel.NewFileTopic(topicPath, title)
	topic.Body = string(body)
	topic.Meta = meta
	return topic, nil
}

func firstHeading(body []byte) string {
	root := goldmark.New().Parser().Parse(text.NewReader(body))
	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			title = strings.TrimSpace(inlineText(h, body))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}

// titleFromPath turns "guides/getting-started.md" into "Getting Started".
func titleFromPath(p string) string {
	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(name)
}
