package highway

import "github.com/swagg-dev/swagg/oaserrors"

// NameRegistry owns the generated type namespace. Every name is registered
// exactly once; a second registration is a NameCollision, never a silent
// rename, so regenerating from the same document keeps every name stable.
type NameRegistry struct {
	owners map[string]string
	order  []string
}

// NewNameRegistry returns an empty registry.
func NewNameRegistry() *NameRegistry {
	return &NameRegistry{owners: make(map[string]string)}
}

// Register claims name for owner, a description of the declaring item
// (e.g. "components.schemas.Pet").
func (r *NameRegistry) Register(name, owner string) error {
	if existing, ok := r.owners[name]; ok {
		return &oaserrors.BuildError{
			Kind:     oaserrors.BuildNameCollision,
			Proposed: name,
			Existing: existing,
			Path:     owner,
		}
	}
	r.owners[name] = owner
	r.order = append(r.order, name)
	return nil
}

// Owner returns the owner of name.
func (r *NameRegistry) Owner(name string) (string, bool) {
	owner, ok := r.owners[name]
	return owner, ok
}

// Has reports whether name is taken.
func (r *NameRegistry) Has(name string) bool {
	_, ok := r.owners[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *NameRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered names.
func (r *NameRegistry) Len() int {
	return len(r.order)
}
