package site

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docrender/internal/docmodel"
	"git.home.luguber.info/inful/docrender/internal/markup"
)

func TestTopicLinker(t *testing.T) {
	topicList := []*docmodel.FileTopic{
		docmodel.NewFileTopic("intro.md", "Intro"),
		docmodel.NewFileTopic("guides/setup.md", "Setup"),
	}
	l := newTopicLinker(NewResolver(nil, topicList, markup.FormatHTML, "", false))
	require.True(t, l.MayTransformURLs())

	tests := []struct {
		current string
		link    string
		want    string
		ok      bool
	}{
		{current: "intro.md", link: "guides/setup.md", want: "/guides/setup.html", ok: true},
		{current: "guides/setup.md", link: "../intro.md#top", want: "/intro.html#top", ok: true},
		{current: "", link: "./intro.md", want: "/intro.html", ok: true},
		{current: "intro.md", link: "missing.md"},
		{current: "intro.md", link: "https://example.com/intro.md"},
		{current: "intro.md", link: "/intro.md"},
		{current: "intro.md", link: "#section"},
		{current: "intro.md", link: "image.png"},
		{current: "intro.md", link: "../../intro.md"},
	}
	for _, tt := range tests {
		l.setCurrent(tt.current)
		got, ok := l.TryTransformURL(tt.link)
		require.Equal(t, tt.ok, ok, tt.link)
		require.Equal(t, tt.want, got, tt.link)
	}
}

func TestTopicLinker_NoTopics(t *testing.T) {
	l := newTopicLinker(NewResolver(nil, nil, markup.FormatHTML, "", false))
	require.False(t, l.MayTransformURLs())
}
