package site

import (
	"path"
	"strings"
	"unicode"

	"git.home.luguber.info/inful/docrender/internal/comments"
	"git.home.luguber.info/inful/docrender/internal/docmodel"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

// Resolver is the documentation context of a site: it maps model entities
// and topics to page paths and URLs, and resolves documentation ids found in
// comments.
type Resolver struct {
	model   *docmodel.Model
	baseURL string
	ext     string
	inline  bool
	content *comments.Formatter

	groupOf map[*docmodel.MemberDoc]*docmodel.OverloadGroup
	topics  map[string]*docmodel.FileTopic
}

// NewResolver returns the resolver for model and topics. baseURL prefixes
// every URL; an empty base makes URLs root relative. With inline set, member
// URLs point at anchors on their type page.
func NewResolver(model *docmodel.Model, topicList []*docmodel.FileTopic, format markup.Format, baseURL string, inline bool) *Resolver {
	r := &Resolver{
		model:   model,
		baseURL: normalizeBaseURL(baseURL),
		ext:     format.Extension(),
		inline:  inline,
		groupOf: make(map[*docmodel.MemberDoc]*docmodel.OverloadGroup),
		topics:  make(map[string]*docmodel.FileTopic, len(topicList)),
	}
	r.content = comments.NewFormatter(format, r)
	if model != nil {
		for _, t := range model.Types() {
			for _, g := range t.Groups() {
				for _, m := range g.Members {
					r.groupOf[m] = g
				}
			}
		}
	}
	for _, t := range topicList {
		r.topics[t.Path] = t
	}
	return r
}

func normalizeBaseURL(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return "/"
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// BaseURL returns the normalized base URL, always ending in a slash.
func (r *Resolver) BaseURL() string { return r.baseURL }

// Inline reports whether members are rendered on their type page.
func (r *Resolver) Inline() bool { return r.inline }

func (r *Resolver) ContentFormatter() docmodel.ContentFormatter { return r.content }

func (r *Resolver) NamespaceURL(ns docmodel.Namespace) string {
	if docmodel.IsNil(ns) {
		return ""
	}
	return r.baseURL + r.NamespacePath(ns)
}

func (r *Resolver) TopicURL(t docmodel.Topic) string {
	p := r.TopicPagePath(t)
	if p == "" {
		return ""
	}
	return r.baseURL + p
}

// MemberURL returns the page URL of a type or member group. Members without
// a page in this site, such as external types, have no URL.
func (r *Resolver) MemberURL(m docmodel.Member) string {
	switch e := m.(type) {
	case *docmodel.TypeDoc:
		if e == nil {
			return ""
		}
		return r.baseURL + r.TypePath(e)
	case *docmodel.OverloadGroup:
		if e == nil {
			return ""
		}
		return r.groupURL(e)
	case *docmodel.MemberDoc:
		if g := r.groupOf[e]; g != nil {
			return r.groupURL(g)
		}
	}
	return ""
}

func (r *Resolver) groupURL(g *docmodel.OverloadGroup) string {
	t := g.Type()
	if t == nil {
		return ""
	}
	if r.inline || !hasMemberPages(t) {
		return r.baseURL + r.TypePath(t) + "#" + Anchor(g)
	}
	return r.baseURL + r.GroupPath(g)
}

// ResolveCref resolves a documentation id against the model.
func (r *Resolver) ResolveCref(cref string) (label, url string, ok bool) {
	if r.model == nil {
		return "", "", false
	}
	v, found := r.model.Lookup(cref)
	if !found {
		return "", "", false
	}
	switch e := v.(type) {
	case *docmodel.NamespaceDoc:
		return e.Name, r.NamespaceURL(e), true
	case *docmodel.TypeDoc:
		return docmodel.QualifiedName(e), r.MemberURL(e), true
	case *docmodel.OverloadGroup:
		return docmodel.QualifiedName(e), r.MemberURL(e), true
	}
	return "", "", false
}

// Topic returns the topic loaded from source path p.
func (r *Resolver) Topic(p string) (*docmodel.FileTopic, bool) {
	t, ok := r.topics[p]
	return t, ok
}

// NamespacePath is the page path of a namespace relative to the output directory.
func (r *Resolver) NamespacePath(ns docmodel.Namespace) string {
	return path.Join("api", pathSegment(ns.NamespaceName()), "index") + r.ext
}

// TypePath is the page path of a type. Nested types are joined to their
// declaring type with a dot.
func (r *Resolver) TypePath(t *docmodel.TypeDoc) string {
	return path.Join("api", namespaceSegment(t), typeSegment(t)) + r.ext
}

// GroupPath is the page path of a member group.
func (r *Resolver) GroupPath(g *docmodel.OverloadGroup) string {
	t := g.Type()
	return path.Join("api", namespaceSegment(t), typeSegment(t), memberSegment(g)) + r.ext
}

// TopicPagePath is the page path of a topic: its source path with the page
// extension instead of .md.
func (r *Resolver) TopicPagePath(t docmodel.Topic) string {
	ft, ok := t.(*docmodel.FileTopic)
	if !ok || ft == nil || ft.Path == "" {
		return ""
	}
	p := path.Clean(strings.ReplaceAll(ft.Path, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(p, path.Ext(p)) + r.ext
}

// hasMemberPages reports whether the members of t get their own pages when
// members are not inlined. Enum values and delegate signatures stay on the
// type page.
func hasMemberPages(t *docmodel.TypeDoc) bool {
	return t.Kind != docmodel.KindEnum && t.Kind != docmodel.KindDelegate
}

// Anchor returns the fragment identifying a member group on its type page.
func Anchor(g *docmodel.OverloadGroup) string {
	return string(g.Kind) + "-" + pathSegment(g.Name)
}

func namespaceSegment(t *docmodel.TypeDoc) string {
	if ns := t.Namespace(); ns != nil && ns.Name != "" {
		return pathSegment(ns.Name)
	}
	return "global"
}

func typeSegment(t *docmodel.TypeDoc) string {
	name := t.Name
	for d := t.DeclaringType(); d != nil; {
		dt, ok := d.(*docmodel.TypeDoc)
		if !ok {
			break
		}
		name = dt.Name + "." + name
		d = dt.DeclaringType()
	}
	return pathSegment(name)
}

func memberSegment(g *docmodel.OverloadGroup) string {
	if g.Kind == docmodel.KindConstructor {
		return "ctor"
	}
	return pathSegment(g.Name)
}

// pathSegment maps a name to a file name safe segment. Generic arity
// markers and other punctuation become dashes.
func pathSegment(name string) string {
	seg := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, name)
	seg = strings.Trim(seg, "-.")
	if seg == "" {
		return "_"
	}
	return seg
}
