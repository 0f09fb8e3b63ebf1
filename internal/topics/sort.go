// Package topics loads file-backed topics and orders them for navigation.
package topics

import (
	"path"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

// Sortable is a topic that can be ordered by source path and title.
type Sortable interface {
	TopicPath() string
	TopicTitle() string
}

var folder = cases.Fold()

// Sort returns topics with the ones named by order first, in order, followed
// by the rest sorted case-insensitively by title. Order entries are path
// fragments matched against the end of each topic's source path at a
// directory boundary, with or without the file extension and with either
// separator style. Each topic is taken at most once; entries matching nothing
// are skipped.
//
// A nil topics or order slice is rejected; empty slices are fine.
func Sort[T Sortable](topics []T, order []string) ([]T, error) {
	if topics == nil {
		return nil, derrors.InvalidArgument("topics", "must not be nil")
	}
	if order == nil {
		return nil, derrors.InvalidArgument("order", "must not be nil")
	}

	remaining := slices.Clone(topics)
	sorted := make([]T, 0, len(topics))

	for _, entry := range order {
		entry = normalize(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		idx := slices.IndexFunc(remaining, func(t T) bool {
			return matches(normalize(t.TopicPath()), entry)
		})
		if idx < 0 {
			continue
		}
		sorted = append(sorted, remaining[idx])
		remaining = slices.Delete(remaining, idx, idx+1)
	}

	slices.SortStableFunc(remaining, func(a, b T) int {
		return strings.Compare(strings.ToUpper(a.TopicTitle()), strings.ToUpper(b.TopicTitle()))
	})
	return append(sorted, remaining...), nil
}

// normalize folds case and converts backslashes to forward slashes.
func normalize(p string) string {
	return folder.String(strings.ReplaceAll(p, `\`, "/"))
}

// matches reports whether entry names the topic at topicPath, either as a
// subpath of the full path or of the path without its extension.
func matches(topicPath, entry string) bool {
	if isSubpath(topicPath, entry) {
		return true
	}
	if ext := path.Ext(topicPath); ext != "" {
		return isSubpath(strings.TrimSuffix(topicPath, ext), entry)
	}
	return false
}

func isSubpath(p, suffix string) bool {
	suffix = strings.TrimLeft(strings.TrimPrefix(suffix, "./"), "/")
	return p == suffix || strings.HasSuffix(p, "/"+suffix)
}
