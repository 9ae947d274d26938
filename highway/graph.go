package highway

import "github.com/swagg-dev/swagg/resolver"

// Graph is the finished set of named components. It is read-only: every
// accessor returns copies.
type Graph struct {
	components []*Component
	byName     map[string]*Component
	refs       map[refKey]string
	names      *NameRegistry
}

// Components returns the components in build order.
func (g *Graph) Components() []Component {
	out := make([]Component, len(g.components))
	for i, c := range g.components {
		out[i] = c.clone()
	}
	return out
}

// ByOrigin returns the components declared in one namespace, in build
// order.
func (g *Graph) ByOrigin(o Origin) []Component {
	var out []Component
	for _, c := range g.components {
		if c.Origin == o {
			out = append(out, c.clone())
		}
	}
	return out
}

// Lookup returns the component called name.
func (g *Graph) Lookup(name string) (Component, bool) {
	c, ok := g.byName[name]
	if !ok {
		return Component{}, false
	}
	return c.clone(), true
}

// Kind returns the kind of the component called name.
func (g *Graph) Kind(name string) (Kind, bool) {
	c, ok := g.byName[name]
	if !ok {
		return 0, false
	}
	return c.Kind, true
}

// Has reports whether the graph holds a component called name.
func (g *Graph) Has(name string) bool {
	_, ok := g.byName[name]
	return ok
}

// ByRef returns the graph name of the component a reference points at.
// ok is false for malformed references and for components that were
// skipped or never produced a component.
func (g *Graph) ByRef(kind resolver.Kind, ref string) (string, bool) {
	key, err := resolver.Name(kind, ref)
	if err != nil {
		return "", false
	}
	name, ok := g.refs[refKey{kind, key}]
	return name, ok
}

// Len returns the number of components.
func (g *Graph) Len() int {
	return len(g.components)
}

// Names returns a copy of the namespace claimed by the graph, including
// enum constants. Later phases register their own names in it.
func (g *Graph) Names() *NameRegistry {
	out := NewNameRegistry()
	for _, name := range g.names.order {
		out.owners[name] = g.names.owners[name]
		out.order = append(out.order, name)
	}
	return out
}
