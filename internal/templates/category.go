package templates

import (
	"strconv"

	derrors "git.home.luguber.info/inful/docrender/internal/errors"
)

// PageCategory is the kind of page being rendered. Each category is rendered
// by exactly one template.
type PageCategory int

const (
	CategoryTopic PageCategory = iota
	CategoryNamespace
	CategoryClass
	CategoryClassWithMembers
	CategoryStruct
	CategoryStructWithMembers
	CategoryInterface
	CategoryInterfaceWithMembers
	CategoryEnum
	CategoryDelegate
	CategoryConstructor
	CategoryConstructorOverloads
	CategoryField
	CategoryEvent
	CategoryProperty
	CategoryPropertyOverloads
	CategoryMethod
	CategoryMethodOverloads
	CategoryOperator
	CategoryOperatorOverloads
)

type categoryInfo struct {
	name     string
	template string
}

var categories = [...]categoryInfo{
	CategoryTopic:                {"Topic", "topic"},
	CategoryNamespace:            {"Namespace", "namespace"},
	CategoryClass:                {"Class", "class"},
	CategoryClassWithMembers:     {"ClassWithMembers", "class-members"},
	CategoryStruct:               {"Struct", "struct"},
	CategoryStructWithMembers:    {"StructWithMembers", "struct-members"},
	CategoryInterface:            {"Interface", "interface"},
	CategoryInterfaceWithMembers: {"InterfaceWithMembers", "interface-members"},
	CategoryEnum:                 {"Enum", "enum"},
	CategoryDelegate:             {"Delegate", "delegate"},
	CategoryConstructor:          {"Constructor", "constructor"},
	CategoryConstructorOverloads: {"ConstructorOverloads", "constructor-overloads"},
	CategoryField:                {"Field", "field"},
	CategoryEvent:                {"Event", "event"},
	CategoryProperty:             {"Property", "property"},
	CategoryPropertyOverloads:    {"PropertyOverloads", "property-overloads"},
	CategoryMethod:               {"Method", "method"},
	CategoryMethodOverloads:      {"MethodOverloads", "method-overloads"},
	CategoryOperator:             {"Operator", "operator"},
	CategoryOperatorOverloads:    {"OperatorOverloads", "operator-overloads"},
}

// Categories returns every page category in declaration order.
func Categories() []PageCategory {
	out := make([]PageCategory, len(categories))
	for i := range categories {
		out[i] = PageCategory(i)
	}
	return out
}

func (c PageCategory) valid() bool { return c >= 0 && int(c) < len(categories) }

func (c PageCategory) String() string {
	if !c.valid() {
		return "PageCategory(" + strconv.Itoa(int(c)) + ")"
	}
	return categories[c].name
}

// TemplateName returns the name of the template rendering pages of category c.
// Values outside the enumeration are a programming error.
func (c PageCategory) TemplateName() (string, error) {
	if !c.valid() {
		return "", derrors.UnknownCategory(c.String())
	}
	return categories[c].template, nil
}

// TemplateNames returns the template name of every category, in category order.
func TemplateNames() []string {
	out := make([]string, len(categories))
	for i, info := range categories {
		out[i] = info.template
	}
	return out
}
