package domain

// Patch carries the fields of a partial update keyed by their JSON names.
// Fields absent from the patch keep their stored value.
type Patch map[string]any

// Set records a field only when v is non-nil, which lets optional request
// fields be copied without checks at every call site.
func Set[T any](p Patch, field string, v *T) {
	if v != nil {
		p[field] = *v
	}
}
