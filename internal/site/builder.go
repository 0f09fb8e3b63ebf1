// Package site builds a documentation site: it loads the model and topics
// named by the configuration, binds a template renderer to a Resolver and
// writes one page per namespace, type, member group and topic.
package site

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docrender/internal/config"
	"git.home.luguber.info/inful/docrender/internal/docmodel"
	derrors "git.home.luguber.info/inful/docrender/internal/errors"
	"git.home.luguber.info/inful/docrender/internal/logfields"
	"git.home.luguber.info/inful/docrender/internal/markdown"
	"git.home.luguber.info/inful/docrender/internal/metrics"
	"git.home.luguber.info/inful/docrender/internal/templates"
	"git.home.luguber.info/inful/docrender/internal/topics"
)

// TopicTemplatePrefix prefixes the template name a topic body is compiled under.
const TopicTemplatePrefix = "topic:"

// Result summarizes one build.
type Result struct {
	OutputDir string
	Pages     int
	Failed    int
	Warnings  int
	Duration  time.Duration
	Outcome   metrics.BuildOutcomeLabel
}

// Builder renders the site described by a configuration. A Builder can
// build repeatedly; every build reloads the model, topics and templates.
type Builder struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	registry *prom.Registry
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithMetrics records build metrics with rec. When reg is set and the
// configuration names a metrics textfile, reg is written there after every
// build.
func WithMetrics(reg *prom.Registry, rec metrics.Recorder) Option {
	return func(b *Builder) {
		b.registry = reg
		b.recorder = rec
	}
}

// NewBuilder returns a builder for cfg.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(b)
	}
	if b.recorder == nil {
		b.recorder = metrics.NoopRecorder{}
	}
	return b
}

// Build renders and writes every page. With output.continue_on_error, page
// failures are logged and counted and Build returns an error once all other
// pages are written.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{OutputDir: b.cfg.Resolve(b.cfg.Output.Directory)}
	err := b.build(ctx, res)
	res.Duration = time.Since(start)

	switch {
	case err != nil && res.Failed == 0:
		res.Outcome = metrics.BuildOutcomeFailed
	case res.Failed > 0 || res.Warnings > 0:
		res.Outcome = metrics.BuildOutcomeWarning
	default:
		res.Outcome = metrics.BuildOutcomeSuccess
	}
	b.recorder.ObserveBuildDuration(res.Duration)
	b.recorder.IncBuildOutcome(res.Outcome)
	b.recorder.SetPagesWritten(res.Pages)
	b.exportMetrics()

	if err != nil {
		b.logger.Error("Site build failed",
			logfields.Count(res.Pages),
			slog.Int("failed", res.Failed),
			logfields.DurationMS(float64(res.Duration.Milliseconds())),
			logfields.Error(err))
		return res, err
	}
	b.logger.Info("Site built",
		logfields.Path(res.OutputDir),
		logfields.Format(b.cfg.Format().String()),
		logfields.Count(res.Pages),
		slog.Int("warnings", res.Warnings),
		logfields.DurationMS(float64(res.Duration.Milliseconds())))
	return res, nil
}

func (b *Builder) build(ctx context.Context, res *Result) error {
	cfg := b.cfg
	format := cfg.Format()

	modelPath := cfg.Resolve(cfg.Model)
	model, err := docmodel.LoadModel(modelPath)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "load documentation model").
			WithContext("path", modelPath)
	}
	topicList, err := b.loadTopics()
	if err != nil {
		return err
	}

	resolver := NewResolver(model, topicList, format, cfg.Site.BaseURL, cfg.Site.InlineMembers)
	linker := newTopicLinker(resolver)
	common := b.commonData(model, topicList, resolver)

	renderer, err := templates.New(templates.Options{
		Context:        resolver,
		Common:         common,
		Reporter:       templates.LogReporter{Logger: b.logger},
		Recorder:       b.recorder,
		URLTransformer: linker,
		Funcs:          resolver.funcs(),
		Logger:         b.logger,
	})
	if err != nil {
		return err
	}
	if err := loadTemplates(renderer, format, cfg.Resolve(cfg.Templates.Dir)); err != nil {
		return err
	}

	skipped, err := b.compileTopics(renderer, linker, topicList, res)
	if err != nil {
		return err
	}

	pages := PlanPages(model, topicList, resolver)
	res.Warnings += b.warnDuplicatePaths(pages)

	if cfg.Output.Clean {
		if err := cleanOutput(res.OutputDir, cfg.BaseDir); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return derrors.Wrap(err, derrors.CategoryInternal, derrors.SeverityFatal, "build cancelled")
		}
		if t, ok := page.Entity.(*docmodel.FileTopic); ok && skipped[t] {
			continue
		}
		buf.Reset()
		if err := b.renderPage(renderer, &buf, page); err != nil {
			if !cfg.Output.ContinueOnError {
				return err
			}
			res.Failed++
			b.logger.Error("Page failed", logfields.Page(page.Path), logfields.Error(err))
			continue
		}
		if _, err := WritePage(res.OutputDir, page.Path, buf.Bytes()); err != nil {
			return err
		}
		res.Pages++
	}

	if res.Failed > 0 {
		return derrors.New(derrors.CategoryExecution, derrors.SeverityError,
			fmt.Sprintf("%d of %d pages failed", res.Failed, len(pages))).WithContext("failed", res.Failed)
	}
	return nil
}

func (b *Builder) loadTopics() ([]*docmodel.FileTopic, error) {
	dir := b.cfg.Resolve(b.cfg.Topics.Dir)
	if dir == "" {
		return []*docmodel.FileTopic{}, nil
	}
	loaded, err := topics.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	order := b.cfg.Topics.Order
	if order == nil {
		order = []string{}
	}
	return topics.Sort(loaded, order)
}

// commonData is the data shared by every page: the configured common map
// plus the site settings, the namespaces and the ordered topics.
func (b *Builder) commonData(model *docmodel.Model, topicList []*docmodel.FileTopic, r *Resolver) map[string]any {
	common := make(map[string]any, len(b.cfg.Common)+3)
	for k, v := range b.cfg.Common {
		common[k] = v
	}
	common["Site"] = map[string]any{
		"Title":   b.cfg.Site.Title,
		"BaseURL": r.BaseURL(),
		"Format":  b.cfg.Format().String(),
	}
	common["Namespaces"] = model.Namespaces
	common["Topics"] = topicList
	return common
}

// compileTopics transforms every topic body and compiles it as an inline
// template rendered as the topic's content. Topics that fail to compile are
// returned as skipped when the build continues on errors.
func (b *Builder) compileTopics(r *templates.Renderer, linker *topicLinker, topicList []*docmodel.FileTopic, res *Result) (map[*docmodel.FileTopic]bool, error) {
	skipped := make(map[*docmodel.FileTopic]bool)
	for _, t := range topicList {
		linker.setCurrent(t.Path)
		res.Warnings += b.checkTopicLinks(linker, t)

		err := b.compileTopic(r, t)
		if err == nil {
			continue
		}
		if !b.cfg.Output.ContinueOnError {
			return nil, err
		}
		res.Failed++
		skipped[t] = true
		b.logger.Error("Topic failed to compile", logfields.Topic(t.Path), logfields.Error(err))
	}
	linker.setCurrent("")
	return skipped, nil
}

func (b *Builder) compileTopic(r *templates.Renderer, t *docmodel.FileTopic) error {
	body, err := r.Markdown().Transform(t.Body)
	if err != nil {
		return err
	}
	name := TopicTemplatePrefix + t.Path
	if err := r.AddInlineTemplate(name, body); err != nil {
		return err
	}
	data, err := templates.NewTemplateData(r.Common(), templates.PrimaryKey, t)
	if err != nil {
		return err
	}
	rendering := false
	t.SetContentRenderer(func(w io.Writer) error {
		if rendering {
			return derrors.New(derrors.CategoryExecution, derrors.SeverityError, "topic content includes itself").
				WithContext("topic", t.Path)
		}
		rendering = true
		defer func() { rendering = false }()
		return r.RenderTemplate(w, name, data)
	})
	return nil
}

// checkTopicLinks warns about relative .md links that match no topic.
func (b *Builder) checkTopicLinks(linker *topicLinker, t *docmodel.FileTopic) int {
	warnings := 0
	for _, link := range markdown.ExtractLinks([]byte(t.Body)) {
		if link.Kind == markdown.LinkKindAuto {
			continue
		}
		target, _, ok := linker.topicTarget(link.Destination)
		if !ok {
			continue
		}
		if _, found := linker.resolver.Topic(target); found {
			continue
		}
		warnings++
		b.logger.Warn("Broken topic link",
			logfields.Topic(t.Path),
			slog.String("destination", link.Destination))
	}
	return warnings
}

func (b *Builder) warnDuplicatePaths(pages []Page) int {
	seen := make(map[string]any, len(pages))
	warnings := 0
	for _, p := range pages {
		if prev, dup := seen[p.Path]; dup {
			warnings++
			b.logger.Warn("Pages share an output path; the later page wins",
				logfields.Page(p.Path),
				logfields.Entity(docmodel.Describe(prev)),
				slog.String("replaced_by", docmodel.Describe(p.Entity)))
			continue
		}
		seen[p.Path] = p.Entity
	}
	return warnings
}

func (b *Builder) renderPage(r *templates.Renderer, w io.Writer, page Page) error {
	if page.Index {
		data, err := templates.NewTemplateData(r.Common(), templates.PrimaryKey, nil)
		if err != nil {
			return err
		}
		return r.RenderTemplate(w, IndexTemplate, data)
	}
	return r.Render(w, page.Category, page.Entity)
}

func (b *Builder) exportMetrics() {
	if b.registry == nil || b.cfg.Metrics.Textfile == "" {
		return
	}
	path := b.cfg.Resolve(b.cfg.Metrics.Textfile)
	if err := metrics.WriteTextfile(b.registry, path); err != nil {
		b.logger.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
	}
}
