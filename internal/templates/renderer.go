// Package templates owns the page templates of a site and renders pages from
// them.
//
// Templates use text/template syntax. Every output action is encoded for the
// page format: entities (members, namespaces, topics, attributes, comments)
// are written through the formatting dispatcher and plain values are escaped.
// Wrap a value in raw to emit it verbatim. All templates share one namespace,
// so any template can include another with {{template "name" .}}.
package templates

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/template"
	"text/template/parse"
	"time"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/formatting"
	"git.home.luguber.info/inful/docrender/internal/logfields"
	"git.home.luguber.info/inful/docrender/internal/markdown"
	"git.home.luguber.info/inful/docrender/internal/markup"
	"git.home.luguber.info/inful/docrender/internal/metrics"
)

// Options configures a Renderer. Context is required.
type Options struct {
	Context docmodel.Context
	// Common is shared by every render. The renderer adds the build date to
	// it; callers may add keys between renders.
	Common   map[string]any
	Reporter Reporter
	Recorder metrics.Recorder
	// URLTransformer rewrites links inside markdown rendered by templates.
	URLTransformer markdown.URLTransformer
	// Funcs adds site specific helpers. Built-in helpers keep their names.
	Funcs  template.FuncMap
	Logger *slog.Logger
}

// Renderer compiles templates once and renders pages from them. It is not
// safe for concurrent use.
type Renderer struct {
	ctx        docmodel.Context
	format     markup.Format
	dispatcher *formatting.Dispatcher
	markdown   *markdown.Transformer
	common     map[string]any
	reporter   Reporter
	recorder   metrics.Recorder
	logger     *slog.Logger

	root    *template.Template
	encoded map[*parse.Tree]struct{}
}

// New returns a renderer bound to opts.Context.
func New(opts Options) (*Renderer, error) {
	if docmodel.IsNil(opts.Context) {
		return nil, derrors.InvalidArgument("context", "must not be nil")
	}
	r := &Renderer{
		ctx:        opts.Context,
		format:     opts.Context.ContentFormatter().Format(),
		dispatcher: formatting.NewDispatcher(opts.Context),
		common:     opts.Common,
		reporter:   opts.Reporter,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
		encoded:    make(map[*parse.Tree]struct{}),
	}
	r.markdown = markdown.NewTransformer(r.format, opts.URLTransformer)
	if r.common == nil {
		r.common = make(map[string]any)
	}
	addBuiltinData(r.common, time.Now())
	if r.reporter == nil {
		r.reporter = nopReporter{}
	}
	if r.recorder == nil {
		r.recorder = metrics.NoopRecorder{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.root = template.New("").Option("missingkey=error")
	if len(opts.Funcs) > 0 {
		r.root.Funcs(opts.Funcs)
	}
	r.root.Funcs(r.funcs())
	return r, nil
}

// Common returns the data shared by every render.
func (r *Renderer) Common() map[string]any { return r.common }

// Format returns the page output format.
func (r *Renderer) Format() markup.Format { return r.format }

// Markdown returns the transformer used for markdown content.
func (r *Renderer) Markdown() *markdown.Transformer { return r.markdown }

// HasTemplate reports whether a template called name has been added, either
// directly or through a {{define}} block.
func (r *Renderer) HasTemplate(name string) bool {
	return r.lookup(name) != nil
}

func (r *Renderer) lookup(name string) *template.Template {
	t := r.root.Lookup(name)
	if t == nil || t.Tree == nil {
		return nil
	}
	return t
}

// AddTemplate compiles the template file at path under name. Adding a name
// again replaces the earlier template, which is how site templates override
// the built-in defaults.
func (r *Renderer) AddTemplate(name, path string) error {
	// #nosec G304 -- template paths come from the site configuration
	src, err := os.ReadFile(path)
	if err != nil {
		return derrors.TemplateCompile(name, path, err)
	}
	return r.compile(name, path, string(src))
}

// AddInlineTemplate compiles src under name.
func (r *Renderer) AddInlineTemplate(name, src string) error {
	return r.compile(name, "inline source", src)
}

func (r *Renderer) compile(name, origin, src string) error {
	if name == "" {
		return derrors.InvalidArgument("name", "must not be empty")
	}
	replaced := r.HasTemplate(name)

	start := time.Now()
	_, err := r.root.New(name).Parse(src)
	r.recorder.ObserveTemplateCompile(name, time.Since(start), err == nil)
	if err != nil {
		return derrors.TemplateCompile(name, origin, err)
	}

	// Parse may also have defined nested {{define}} templates; encode them all.
	for _, tmpl := range r.root.Templates() {
		if _, done := r.encoded[tmpl.Tree]; done || tmpl.Tree == nil {
			continue
		}
		autoEncode(tmpl.Tree)
		r.encoded[tmpl.Tree] = struct{}{}
	}
	r.logger.Debug("Compiled template", logfields.Template(name), logfields.Path(origin), slog.Bool("replaced", replaced))
	return nil
}

// RenderTemplate executes the template called name against data. Page data
// built by NewTemplateData is executed against its Map snapshot.
func (r *Renderer) RenderTemplate(w io.Writer, name string, data any) error {
	if w == nil {
		return derrors.InvalidArgument("writer", "must not be nil")
	}
	t := r.lookup(name)
	if t == nil {
		return derrors.TemplateNotFound(name)
	}
	if td, ok := data.(*TemplateData); ok {
		data = td.Map()
	}
	if err := t.Execute(w, data); err != nil {
		return derrors.TemplateExecution(name, err)
	}
	return nil
}

// Render renders the page for entity with the template of category.
func (r *Renderer) Render(w io.Writer, category PageCategory, entity any) error {
	if w == nil {
		return derrors.InvalidArgument("writer", "must not be nil")
	}
	if docmodel.IsNil(entity) {
		return derrors.InvalidArgument("entity", "must not be nil")
	}
	name, err := category.TemplateName()
	if err != nil {
		return err
	}
	data, err := NewTemplateData(r.common, PrimaryKey, entity)
	if err != nil {
		return err
	}

	r.reporter.Step(fmt.Sprintf("Rendering %s page for %s", category, docmodel.Describe(entity)))
	start := time.Now()
	err = r.RenderTemplate(w, name, data)
	elapsed := time.Since(start)
	r.recorder.ObservePageRender(category.String(), elapsed, err == nil)
	if err != nil {
		r.logger.Debug("Page render failed",
			logfields.Category(category.String()),
			logfields.Entity(docmodel.Describe(entity)),
			logfields.Error(err))
	}
	return err
}
