package site

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/markup"
	"git.home.luguber.info/inful/docrender/internal/templates"
)

//go:embed defaults/*.tmpl
var defaultTemplates embed.FS

// IndexTemplate renders the site landing page.
const IndexTemplate = "index"

const templateExt = ".tmpl"

// loadTemplates adds the built-in templates for format, then every *.tmpl
// file in dir. A file's base name is its template name, so site files
// replace built-in templates of the same name.
func loadTemplates(r *templates.Renderer, format markup.Format, dir string) error {
	name := "defaults/" + format.String() + templateExt
	src, err := defaultTemplates.ReadFile(name)
	if err != nil {
		return derrors.InternalError("read built-in templates", err)
	}
	if err := r.AddInlineTemplate(name, string(src)); err != nil {
		return err
	}

	if dir != "" {
		files, err := templateFiles(dir)
		if err != nil {
			return err
		}
		for _, file := range files {
			base := filepath.Base(file)
			if err := r.AddTemplate(strings.TrimSuffix(base, filepath.Ext(base)), file); err != nil {
				return err
			}
		}
	}

	for _, required := range append(templates.TemplateNames(), IndexTemplate) {
		if !r.HasTemplate(required) {
			return derrors.TemplateNotFound(required)
		}
	}
	return nil
}

// templateFiles lists *.tmpl files directly inside dir in lexical order.
func templateFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.ConfigInvalid("templates.dir", "directory does not exist: "+dir)
		}
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "read templates directory").
			WithContext("path", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), templateExt) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}

// funcs returns the site helpers available to every template.
func (r *Resolver) funcs() template.FuncMap {
	return template.FuncMap{
		"title":  Title,
		"anchor": Anchor,
	}
}

// Title returns the display title of a page entity.
func Title(v any) string {
	if docmodel.IsNil(v) {
		return ""
	}
	switch e := v.(type) {
	case docmodel.Topic:
		return e.TopicTitle()
	case *docmodel.NamespaceDoc:
		return e.Name
	case *docmodel.TypeDoc:
		return e.FullName()
	case *docmodel.OverloadGroup:
		if t := e.Type(); t != nil {
			return t.FullName() + "." + e.Name
		}
		return e.Name
	case docmodel.Namespace:
		return e.NamespaceName()
	case docmodel.Member:
		return docmodel.QualifiedName(e)
	}
	return docmodel.Describe(v)
}
