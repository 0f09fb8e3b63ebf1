package site

import (
	"git.home.luguber.info/inful/docrender/internal/docmodel"
	"git.home.luguber.info/inful/docrender/internal/templates"
)

// Page is one output file of the site.
type Page struct {
	// Path is relative to the output directory, with forward slashes.
	Path     string
	Category templates.PageCategory
	Entity   any
	// Index marks the landing page, rendered from IndexTemplate without an entity.
	Index bool
}

// PlanPages lists every page of the site in render order: the landing page,
// topics, then each namespace followed by its types and their members.
func PlanPages(model *docmodel.Model, topicList []*docmodel.FileTopic, r *Resolver) []Page {
	pages := []Page{{Path: "index" + r.ext, Index: true}}
	for _, t := range topicList {
		pages = append(pages, Page{Path: r.TopicPagePath(t), Category: templates.CategoryTopic, Entity: t})
	}
	if model == nil {
		return pages
	}
	for _, ns := range model.Namespaces {
		pages = append(pages, Page{Path: r.NamespacePath(ns), Category: templates.CategoryNamespace, Entity: ns})
		var visit func(types []*docmodel.TypeDoc)
		visit = func(types []*docmodel.TypeDoc) {
			for _, t := range types {
				pages = append(pages, Page{Path: r.TypePath(t), Category: TypeCategory(t, r.inline), Entity: t})
				if !r.inline && hasMemberPages(t) {
					for _, g := range t.Groups() {
						pages = append(pages, Page{Path: r.GroupPath(g), Category: GroupCategory(g), Entity: g})
					}
				}
				visit(t.Nested)
			}
		}
		visit(ns.Types)
	}
	return pages
}

// TypeCategory returns the page category of a type.
func TypeCategory(t *docmodel.TypeDoc, inline bool) templates.PageCategory {
	switch t.Kind {
	case docmodel.KindStruct:
		if inline {
			return templates.CategoryStructWithMembers
		}
		return templates.CategoryStruct
	case docmodel.KindInterface:
		if inline {
			return templates.CategoryInterfaceWithMembers
		}
		return templates.CategoryInterface
	case docmodel.KindEnum:
		return templates.CategoryEnum
	case docmodel.KindDelegate:
		return templates.CategoryDelegate
	default:
		if inline {
			return templates.CategoryClassWithMembers
		}
		return templates.CategoryClass
	}
}

// GroupCategory returns the page category of a member group. Kinds that can
// be overloaded use their overloads category when the group has several
// members.
func GroupCategory(g *docmodel.OverloadGroup) templates.PageCategory {
	over := g.Overloaded()
	switch g.Kind {
	case docmodel.KindConstructor:
		if over {
			return templates.CategoryConstructorOverloads
		}
		return templates.CategoryConstructor
	case docmodel.KindField:
		return templates.CategoryField
	case docmodel.KindEvent:
		return templates.CategoryEvent
	case docmodel.KindProperty:
		if over {
			return templates.CategoryPropertyOverloads
		}
		return templates.CategoryProperty
	case docmodel.KindOperator:
		if over {
			return templates.CategoryOperatorOverloads
		}
		return templates.CategoryOperator
	default:
		if over {
			return templates.CategoryMethodOverloads
		}
		return templates.CategoryMethod
	}
}
