package site

import (
	"net/url"
	"path"
	"strings"
)

// topicLinker rewrites relative links to markdown topics into the URL of the
// rendered topic page. Links are resolved against the directory of the topic
// currently being transformed; outside a topic they resolve against the
// topics root.
type topicLinker struct {
	resolver *Resolver
	current  string
}

func newTopicLinker(r *Resolver) *topicLinker {
	return &topicLinker{resolver: r}
}

// setCurrent sets the source path of the topic being transformed.
func (l *topicLinker) setCurrent(topicPath string) { l.current = topicPath }

func (l *topicLinker) MayTransformURLs() bool { return len(l.resolver.topics) > 0 }

func (l *topicLinker) TryTransformURL(raw string) (string, bool) {
	target, fragment, ok := l.topicTarget(raw)
	if !ok {
		return "", false
	}
	t, found := l.resolver.Topic(target)
	if !found {
		return "", false
	}
	out := l.resolver.TopicURL(t)
	if fragment != "" {
		out += "#" + fragment
	}
	return out, true
}

// topicTarget returns the topic source path a relative .md link points at.
func (l *topicLinker) topicTarget(raw string) (target, fragment string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") || strings.HasPrefix(raw, "/") {
		return "", "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.RawQuery != "" {
		return "", "", false
	}
	if !strings.EqualFold(path.Ext(u.Path), ".md") {
		return "", "", false
	}
	target = path.Clean(path.Join(path.Dir(l.current), u.Path))
	if target == ".." || strings.HasPrefix(target, "../") {
		return "", "", false
	}
	return target, u.Fragment, true
}
