// Package effects models externally-authored visual-effect modules: their
// export shapes, the optional capabilities of constructed components, and
// the declarative lifecycle descriptor a catalog entry may attach.
//
// Effect modules are structurally inconsistent. One ships its
// constructor as the default export, another wraps it in a namespace, a
// third only has named exports. The host never assumes a shape; it probes
// the candidates the catalog lists, in order.
package effects

// Module is a loaded effect module. Exactly one of the shapes is typically
// populated, but the host tolerates any combination:
//
//   - Default holds the module's primary export: a constructor, or a
//     namespace of named members, or nil.
//   - Named holds the module's named exports.
//
// Export values are opaque; the host's instantiation strategies decide
// what is constructible.
type Module struct {
	Default any
	Named   map[string]any
}

// Namespace is a non-constructible container export: a default export that
// is itself a bag of named members.
type Namespace map[string]any

// Lookup returns the named export, checking the default-export namespace
// first and the module's named exports second.
func (m Module) Lookup(name string) (any, bool) {
	if ns, ok := m.Default.(Namespace); ok {
		if v, ok := ns[name]; ok {
			return v, true
		}
	}
	v, ok := m.Named[name]
	return v, ok
}
