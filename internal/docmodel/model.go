package docmodel

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// TypeKind classifies a documented type.
type TypeKind string

const (
	KindClass     TypeKind = "class"
	KindStruct    TypeKind = "struct"
	KindInterface TypeKind = "interface"
	KindEnum      TypeKind = "enum"
	KindDelegate  TypeKind = "delegate"
)

// MemberKind classifies a type member.
type MemberKind string

const (
	KindConstructor MemberKind = "constructor"
	KindField       MemberKind = "field"
	KindEvent       MemberKind = "event"
	KindProperty    MemberKind = "property"
	KindMethod      MemberKind = "method"
	KindOperator    MemberKind = "operator"
)

// Model is a documentation model read from a YAML file. It is the simple,
// already resolved model the CLI renders; richer models only need to satisfy
// the capability interfaces.
type Model struct {
	Namespaces []*NamespaceDoc `yaml:"namespaces"`

	index map[string]any
}

// NamespaceDoc documents a namespace.
type NamespaceDoc struct {
	Name    string     `yaml:"name"`
	Summary *Comment   `yaml:"summary,omitempty"`
	Types   []*TypeDoc `yaml:"types,omitempty"`
}

func (n *NamespaceDoc) NamespaceName() string { return n.Name }

// TypeDoc documents a type.
type TypeDoc struct {
	Name       string          `yaml:"name"`
	Kind       TypeKind        `yaml:"kind"`
	Signature  string          `yaml:"signature,omitempty"`
	Summary    *Comment        `yaml:"summary,omitempty"`
	Remarks    *Comment        `yaml:"remarks,omitempty"`
	Attributes []*AttributeDoc `yaml:"attributes,omitempty"`
	Members    []*MemberDoc    `yaml:"members,omitempty"`
	Nested     []*TypeDoc      `yaml:"nested,omitempty"`

	namespace *NamespaceDoc
	declaring *TypeDoc
	groups    []*OverloadGroup
}

func (t *TypeDoc) MemberName() string { return t.Name }

func (t *TypeDoc) DeclaringType() Member {
	if t.declaring == nil {
		return nil
	}
	return t.declaring
}

// Namespace returns the namespace the type belongs to.
func (t *TypeDoc) Namespace() *NamespaceDoc { return t.namespace }

// FullName returns the namespace-qualified name, nested types joined with dots.
func (t *TypeDoc) FullName() string {
	name := t.Name
	for d := t.declaring; d != nil; d = d.declaring {
		name = d.Name + "." + name
	}
	if t.namespace != nil && t.namespace.Name != "" {
		return t.namespace.Name + "." + name
	}
	return name
}

// Groups returns the members grouped by kind and name, in declaration order.
func (t *TypeDoc) Groups() []*OverloadGroup { return t.groups }

// GroupsOf returns the member groups of one kind.
func (t *TypeDoc) GroupsOf(kind MemberKind) []*OverloadGroup {
	var out []*OverloadGroup
	for _, g := range t.groups {
		if g.Kind == kind {
			out = append(out, g)
		}
	}
	return out
}

func (t *TypeDoc) Constructors() []*OverloadGroup { return t.GroupsOf(KindConstructor) }
func (t *TypeDoc) Fields() []*OverloadGroup       { return t.GroupsOf(KindField) }
func (t *TypeDoc) Events() []*OverloadGroup       { return t.GroupsOf(KindEvent) }
func (t *TypeDoc) Properties() []*OverloadGroup   { return t.GroupsOf(KindProperty) }
func (t *TypeDoc) Methods() []*OverloadGroup      { return t.GroupsOf(KindMethod) }
func (t *TypeDoc) Operators() []*OverloadGroup    { return t.GroupsOf(KindOperator) }

// MemberDoc documents a single member (one overload).
type MemberDoc struct {
	Name       string          `yaml:"name"`
	Kind       MemberKind      `yaml:"kind"`
	Signature  string          `yaml:"signature,omitempty"`
	Summary    *Comment        `yaml:"summary,omitempty"`
	Remarks    *Comment        `yaml:"remarks,omitempty"`
	Returns    *Comment        `yaml:"returns,omitempty"`
	Parameters []*ParameterDoc `yaml:"parameters,omitempty"`
	Attributes []*AttributeDoc `yaml:"attributes,omitempty"`

	declaring *TypeDoc
}

func (m *MemberDoc) MemberName() string { return m.Name }

func (m *MemberDoc) DeclaringType() Member {
	if m.declaring == nil {
		return nil
	}
	return m.declaring
}

// Type returns the declaring type.
func (m *MemberDoc) Type() *TypeDoc { return m.declaring }

// ParameterDoc documents a parameter.
type ParameterDoc struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type,omitempty"`
	Description *Comment `yaml:"description,omitempty"`
}

// OverloadGroup is every member of a type sharing a kind and a name. It is the
// entity of member pages, so overloads share one page.
type OverloadGroup struct {
	Name    string
	Kind    MemberKind
	Members []*MemberDoc

	declaring *TypeDoc
}

func (g *OverloadGroup) MemberName() string { return g.Name }

func (g *OverloadGroup) DeclaringType() Member {
	if g.declaring == nil {
		return nil
	}
	return g.declaring
}

// Type returns the declaring type.
func (g *OverloadGroup) Type() *TypeDoc { return g.declaring }

// Overloaded reports whether the group has more than one member.
func (g *OverloadGroup) Overloaded() bool { return len(g.Members) > 1 }

// First returns the first member of the group.
func (g *OverloadGroup) First() *MemberDoc { return g.Members[0] }

// AttributeDoc is a custom attribute applied to a type or member.
type AttributeDoc struct {
	Type  string             `yaml:"type"`
	Args  []any              `yaml:"args,omitempty"`
	Named []NamedArgumentDoc `yaml:"named,omitempty"`

	resolved Member
}

// NamedArgumentDoc is the YAML form of a named attribute argument.
type NamedArgumentDoc struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

func (a *AttributeDoc) AttributeType() Member {
	if a.resolved != nil {
		return a.resolved
	}
	return &ExternalType{Name: a.Type}
}

func (a *AttributeDoc) ConstructorArguments() []any { return a.Args }

func (a *AttributeDoc) NamedArguments() []NamedArgument {
	out := make([]NamedArgument, 0, len(a.Named))
	for _, n := range a.Named {
		out = append(out, NamedArgument{Name: n.Name, Value: n.Value})
	}
	return out
}

// ExternalType is a type referenced by the model but not documented in it.
type ExternalType struct {
	Name string
}

func (e *ExternalType) MemberName() string {
	if i := strings.LastIndex(e.Name, "."); i >= 0 {
		return e.Name[i+1:]
	}
	return e.Name
}

func (e *ExternalType) DeclaringType() Member { return nil }

// LoadModel reads a YAML documentation model from path.
func LoadModel(path string) (*Model, error) {
	// #nosec G304 -- the model path comes from trusted configuration.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return ParseModel(data)
}

// ParseModel parses a YAML documentation model and links parents, overload
// groups and attribute types.
func ParseModel(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if err := m.link(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Types returns every type in the model, nested types after their parent.
func (m *Model) Types() []*TypeDoc {
	var out []*TypeDoc
	var visit func(types []*TypeDoc)
	visit = func(types []*TypeDoc) {
		for _, t := range types {
			out = append(out, t)
			visit(t.Nested)
		}
	}
	for _, ns := range m.Namespaces {
		visit(ns.Types)
	}
	return out
}

// Lookup resolves a documentation id such as "T:Acme.Widget" or
// "M:Acme.Widget.Spin(System.Int32)". Member ids resolve to their overload group.
func (m *Model) Lookup(cref string) (any, bool) {
	key := cref
	if i := strings.IndexByte(key, '('); i >= 0 {
		key = key[:i]
	}
	v, ok := m.index[key]
	return v, ok
}

func (m *Model) link() error {
	m.index = make(map[string]any)
	for _, ns := range m.Namespaces {
		if ns.Name == "" {
			return fmt.Errorf("parse model: namespace without name")
		}
		m.index["N:"+ns.Name] = ns
		for _, t := range ns.Types {
			if err := m.linkType(ns, nil, t); err != nil {
				return err
			}
		}
	}
	for _, t := range m.Types() {
		m.resolveAttributes(t.namespace, t.Attributes)
		for _, mem := range t.Members {
			m.resolveAttributes(t.namespace, mem.Attributes)
		}
	}
	return nil
}

func (m *Model) linkType(ns *NamespaceDoc, declaring, t *TypeDoc) error {
	if t.Name == "" {
		return fmt.Errorf("parse model: type without name in namespace %s", ns.Name)
	}
	if t.Kind == "" {
		t.Kind = KindClass
	}
	t.namespace = ns
	t.declaring = declaring
	full := t.FullName()
	if _, dup := m.index["T:"+full]; dup {
		return fmt.Errorf("parse model: duplicate type %s", full)
	}
	m.index["T:"+full] = t

	t.groups = nil
	byKey := make(map[string]*OverloadGroup)
	for _, mem := range t.Members {
		if mem.Kind == "" {
			mem.Kind = KindMethod
		}
		if mem.Kind == KindConstructor && mem.Name == "" {
			mem.Name = t.Name
		}
		if mem.Name == "" {
			return fmt.Errorf("parse model: member without name in %s", full)
		}
		mem.declaring = t
		key := string(mem.Kind) + ":" + mem.Name
		g := byKey[key]
		if g == nil {
			g = &OverloadGroup{Name: mem.Name, Kind: mem.Kind, declaring: t}
			byKey[key] = g
			t.groups = append(t.groups, g)
			m.index[crefPrefix(mem.Kind)+full+"."+crefMemberName(mem)] = g
		}
		g.Members = append(g.Members, mem)
	}
	for _, nested := range t.Nested {
		if err := m.linkType(ns, t, nested); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) resolveAttributes(ns *NamespaceDoc, attrs []*AttributeDoc) {
	for _, a := range attrs {
		name := a.Type
		candidates := []string{name, name + "Attribute"}
		if ns != nil {
			candidates = append(candidates, ns.Name+"."+name, ns.Name+"."+name+"Attribute")
		}
		for _, candidate := range candidates {
			if t, ok := m.index["T:"+candidate].(*TypeDoc); ok {
				a.resolved = t
				break
			}
		}
	}
}

func crefPrefix(kind MemberKind) string {
	switch kind {
	case KindProperty:
		return "P:"
	case KindField:
		return "F:"
	case KindEvent:
		return "E:"
	default:
		return "M:"
	}
}

func crefMemberName(mem *MemberDoc) string {
	if mem.Kind == KindConstructor {
		return "#ctor"
	}
	return mem.Name
}
