package ir

// Registry maps schema keys and model names onto emitted model names.
// Raw schema keys take precedence over normalized names.
type Registry struct {
	lookup map[string]string
	names  map[string]bool
}

// NewRegistry indexes models by raw key, then by name.
func NewRegistry(models []ModelDef) *Registry {
	r := &Registry{lookup: make(map[string]string, len(models)*2), names: make(map[string]bool, len(models))}
	for _, m := range models {
		r.lookup[m.RawName] = m.Name
		r.names[m.Name] = true
	}
	for _, m := range models {
		if _, taken := r.lookup[m.Name]; !taken {
			r.lookup[m.Name] = m.Name
		}
	}
	return r
}

// Lookup resolves a reference target to a model name.
func (r *Registry) Lookup(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.lookup[key]
	return name, ok
}

// Has reports whether name is an emitted model.
func (r *Registry) Has(name string) bool {
	return r != nil && r.names[name]
}

// Len returns the number of models.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
